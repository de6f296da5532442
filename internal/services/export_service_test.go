package services

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/terraincognita07/rhythm/internal/models"
)

func TestBuildICSRendersTimedAndAllDayEvents(t *testing.T) {
	service := NewExportService(fixedClock(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)))
	occurrences := []models.Occurrence{
		{ID: 1, Name: "Gym", Date: mustDay(t, "2024-06-03"), Hour: 18, Minute: 30, DurationMinutes: 45, CategoryID: models.CategoryLifeID},
		{ID: 2, Name: "Call Ana", Date: mustDay(t, "2024-06-08"), AllDay: true, DurationMinutes: 30, CategoryID: models.CategoryCallsID},
	}

	rendered := service.BuildICS(occurrences, categoriesByID())

	calendar, err := ics.ParseCalendar(strings.NewReader(rendered))
	if err != nil {
		t.Fatalf("ParseCalendar() unexpected error: %v", err)
	}
	events := calendar.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	gym := events[0]
	if got := gym.GetProperty(ics.ComponentPropertySummary).Value; got != "Gym" {
		t.Fatalf("expected summary Gym, got %q", got)
	}
	if got := gym.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20240603T183000Z" {
		t.Fatalf("expected timed start, got %q", got)
	}
	if got := gym.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20240603T191500Z" {
		t.Fatalf("expected end after duration, got %q", got)
	}
	if got := gym.GetProperty(ics.ComponentPropertyCategories).Value; got != "Life" {
		t.Fatalf("expected category Life, got %q", got)
	}

	call := events[1]
	if got := call.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20240608" {
		t.Fatalf("expected all-day start date, got %q", got)
	}
	if got := call.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20240609" {
		t.Fatalf("expected all-day end date, got %q", got)
	}
}

func TestOccurrenceUIDIsStable(t *testing.T) {
	entry := models.Occurrence{ID: 10, Name: "Gym", Date: mustDay(t, "2024-06-03"), Hour: 18}
	moved := entry
	moved.ID = 11

	if OccurrenceUID(entry) != OccurrenceUID(moved) {
		t.Fatal("expected UID to depend on series slot, not row id")
	}
	other := entry
	other.Date = mustDay(t, "2024-06-10")
	if OccurrenceUID(entry) == OccurrenceUID(other) {
		t.Fatal("expected different days to get different UIDs")
	}
	if !strings.HasSuffix(OccurrenceUID(entry), "@rhythm") {
		t.Fatalf("unexpected UID format %q", OccurrenceUID(entry))
	}
}
