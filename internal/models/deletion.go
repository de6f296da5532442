package models

import "time"

// Deletion is an append-only ledger entry. Rows are never updated or removed.
type Deletion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OccurrenceID uint      `gorm:"not null" json:"occurrence_id"`
	Name         string    `gorm:"not null;index:idx_deletion_series_day" json:"name"`
	Date         time.Time `gorm:"type:date;not null;index:idx_deletion_series_day" json:"date"`
	Hour         int       `gorm:"not null;default:0" json:"hour"`
	CancelFuture bool      `gorm:"not null;default:false" json:"cancel_future"`
	DeletedAt    time.Time `gorm:"not null" json:"deleted_at"`
}

func (Deletion) TableName() string {
	return "deletions"
}
