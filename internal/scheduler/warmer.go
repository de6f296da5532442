package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
	"github.com/terraincognita07/rhythm/internal/services"
)

const warmupTimeout = 2 * time.Minute

type DayMaterializer interface {
	Today() time.Time
	ViewDay(ctx context.Context, day time.Time) ([]models.Occurrence, error)
}

// Warmer materializes the upcoming days on a cron schedule so calls and
// birthdays exist before anyone opens those days.
type Warmer struct {
	cronEngine  *cron.Cron
	calendar    DayMaterializer
	logger      logrus.FieldLogger
	spec        string
	horizonDays int
}

func NewWarmer(calendar DayMaterializer, spec string, horizonDays int, location *time.Location, logger logrus.FieldLogger) *Warmer {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Warmer{
		cronEngine:  cron.New(cron.WithLocation(location)),
		calendar:    calendar,
		logger:      logger,
		spec:        spec,
		horizonDays: horizonDays,
	}
}

// Start registers the warm-up job. An empty spec leaves the warmer idle.
func (warmer *Warmer) Start() error {
	if warmer.spec == "" {
		warmer.logger.Info("warm-up scheduler disabled")
		return nil
	}

	_, err := warmer.cronEngine.AddFunc(warmer.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
		defer cancel()
		if _, err := warmer.WarmUp(ctx); err != nil {
			warmer.logger.WithError(err).Error("warm-up failed")
		}
	})
	if err != nil {
		return fmt.Errorf("add warm-up job: %w", err)
	}

	warmer.cronEngine.Start()
	warmer.logger.WithFields(logrus.Fields{
		"spec":         warmer.spec,
		"horizon_days": warmer.horizonDays,
	}).Info("warm-up scheduler started")
	return nil
}

func (warmer *Warmer) Stop() {
	ctx := warmer.cronEngine.Stop()
	<-ctx.Done()
	warmer.logger.Info("warm-up scheduler stopped")
}

// WarmUp materializes today through today+horizonDays and returns the number
// of days processed.
func (warmer *Warmer) WarmUp(ctx context.Context) (int, error) {
	today := warmer.calendar.Today()
	processed := 0
	for offset := 0; offset <= warmer.horizonDays; offset++ {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		day := services.AddDays(today, offset)
		if _, err := warmer.calendar.ViewDay(ctx, day); err != nil {
			return processed, fmt.Errorf("warm up %s: %w", services.FormatDay(day), err)
		}
		processed++
	}
	warmer.logger.WithFields(logrus.Fields{
		"from": services.FormatDay(today),
		"days": processed,
	}).Debug("warm-up complete")
	return processed, nil
}
