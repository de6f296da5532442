package models

import "time"

const (
	DefaultDurationMinutes     = 60
	DefaultCallDurationMinutes = 30
)

// Repeat intervals offered by the occurrence editor. Any other positive
// value is a custom interval in days.
const (
	RepeatNone    = 0
	RepeatDaily   = 1
	RepeatWeekly  = 7
	RepeatMonthly = 30
	RepeatYearly  = 365
)

type Occurrence struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null;uniqueIndex:uidx_occurrence_series_day_hour" json:"name"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uidx_occurrence_series_day_hour;index" json:"date"`
	Hour            int       `gorm:"not null;default:0;uniqueIndex:uidx_occurrence_series_day_hour" json:"hour"`
	Minute          int       `gorm:"not null;default:0" json:"minute"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	AllDay          bool      `gorm:"not null;default:false" json:"all_day"`
	CategoryID      uint      `gorm:"not null;default:2" json:"category_id"`
	Done            bool      `gorm:"not null;default:false" json:"done"`
	IntervalDays    int       `gorm:"not null;default:0" json:"interval_days"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Occurrence) TableName() string {
	return "occurrences"
}

func (occurrence Occurrence) IsRepeating() bool {
	return occurrence.IntervalDays > 0
}

func (occurrence Occurrence) IsCall() bool {
	return occurrence.CategoryID == CategoryCallsID
}
