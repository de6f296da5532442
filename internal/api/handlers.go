package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/db"
	"github.com/terraincognita07/rhythm/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	store      *db.Store
	location   *time.Location
	logger     logrus.FieldLogger
	calendar   *services.CalendarService
	friends    *services.FriendService
	categories *services.CategoryLookup
	exporter   *services.ExportService
}

func NewHandler(database *gorm.DB, location *time.Location, maxRangeDays int, logger logrus.FieldLogger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	handler := &Handler{
		location: location,
		logger:   logger,
	}
	return handler.withDependencies(database, maxRangeDays), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, maxRangeDays int) *Handler {
	handler.store = db.NewStore(database)
	handler.calendar = services.NewCalendarService(handler.store, handler.location, maxRangeDays, handler.logger)
	handler.friends = services.NewFriendService(handler.store, handler.location, handler.logger)
	handler.categories = services.NewCategoryLookup(handler.store)
	handler.exporter = services.NewExportService(nil)
	return handler
}

// Calendar exposes the calendar service for background jobs sharing the
// handler's store.
func (handler *Handler) Calendar() *services.CalendarService {
	return handler.calendar
}
