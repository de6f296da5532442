package services

import (
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
)

// DeletionLedger records user deletions of materialized occurrences and
// answers whether a series is suppressed on a given day.
type DeletionLedger struct {
	deletions DeletionRepository
	now       func() time.Time
}

func NewDeletionLedger(deletions DeletionRepository, now func() time.Time) *DeletionLedger {
	if now == nil {
		now = time.Now
	}
	return &DeletionLedger{
		deletions: deletions,
		now:       now,
	}
}

// RecordDeletion appends a ledger entry. With cancelFuture the entry also
// suppresses every later day of the series.
func (ledger *DeletionLedger) RecordDeletion(occurrenceID uint, seriesName string, instanceDate time.Time, instanceHour int, cancelFuture bool) (models.Deletion, error) {
	entry := models.Deletion{
		OccurrenceID: occurrenceID,
		Name:         seriesName,
		Date:         CalendarDay(instanceDate),
		Hour:         instanceHour,
		CancelFuture: cancelFuture,
		DeletedAt:    ledger.now().UTC(),
	}
	if err := ledger.deletions.Create(&entry); err != nil {
		return models.Deletion{}, err
	}
	return entry, nil
}

// SeriesCancelled reports whether any deletion of the series cancelled all
// of its future occurrences.
func (ledger *DeletionLedger) SeriesCancelled(seriesName string) (bool, error) {
	entries, err := ledger.deletions.ListBySeries(seriesName)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.CancelFuture {
			return true, nil
		}
	}
	return false, nil
}

func (ledger *DeletionLedger) IsDeleted(seriesName string, day time.Time) (bool, error) {
	dayStart, dayEnd := DayRange(day)
	return ledger.deletions.ExistsForSeriesOnDay(seriesName, dayStart, dayEnd)
}
