package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/db"
	"github.com/terraincognita07/rhythm/internal/models"
	"github.com/terraincognita07/rhythm/internal/services"
)

// MaterializeOptions configures the offline materialize command.
type MaterializeOptions struct {
	DBPath       string
	Location     *time.Location
	MaxRangeDays int
	From         string
	To           string
}

// RunMaterializeCommand runs the day pipeline for every day in the requested
// range against the database at DBPath and prints what each day holds.
func RunMaterializeCommand(ctx context.Context, options MaterializeOptions, logger logrus.FieldLogger, out io.Writer) error {
	database, err := db.OpenSQLite(options.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	store := db.NewStore(database)
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("close database")
		}
	}()

	calendar := services.NewCalendarService(store, options.Location, options.MaxRangeDays, logger)
	from, to, err := services.ParseDayRange(options.From, options.To, calendar.Today())
	if err != nil {
		return err
	}

	days, err := calendar.ViewRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("materialize %s..%s: %w", services.FormatDay(from), services.FormatDay(to), err)
	}

	return writeDays(out, days)
}

func writeDays(out io.Writer, days []services.DayOccurrences) error {
	for _, day := range days {
		if _, err := fmt.Fprintf(out, "%s (%d)\n", day.Date, len(day.Occurrences)); err != nil {
			return err
		}
		for _, entry := range day.Occurrences {
			if _, err := fmt.Fprintf(out, "  %s %s\n", formatSlot(entry), entry.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatSlot(entry models.Occurrence) string {
	if entry.AllDay {
		return "all-day"
	}
	return fmt.Sprintf("%02d:%02d  ", entry.Hour, entry.Minute)
}
