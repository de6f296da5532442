package models

import (
	"fmt"
	"time"
)

const (
	CallNamePrefix     = "Call "
	birthdayNameSuffix = "'s Birthday"
)

type Friend struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null;uniqueIndex" json:"name"`
	CadenceDays   int        `gorm:"not null;default:0" json:"cadence_days"`
	BirthdayMonth int        `gorm:"not null;default:0" json:"birthday_month,omitempty"`
	BirthdayDay   int        `gorm:"not null;default:0" json:"birthday_day,omitempty"`
	LastCall      *time.Time `gorm:"type:date" json:"last_call,omitempty"`
	BirthdayOnly  bool       `gorm:"not null;default:false" json:"birthday_only"`
}

func (Friend) TableName() string {
	return "friends"
}

func (friend Friend) HasBirthday() bool {
	return friend.BirthdayMonth >= 1 && friend.BirthdayMonth <= 12 && friend.BirthdayDay >= 1 && friend.BirthdayDay <= 31
}

// SchedulesCalls reports whether the friend takes part in cadence scheduling.
func (friend Friend) SchedulesCalls() bool {
	return friend.CadenceDays > 0 && !friend.BirthdayOnly
}

func (friend Friend) CallSeriesName() string {
	return CallNamePrefix + friend.Name
}

func (friend Friend) BirthdaySeriesName() string {
	return fmt.Sprintf("%s%s", friend.Name, birthdayNameSuffix)
}
