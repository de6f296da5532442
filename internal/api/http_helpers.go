package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rhythm/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errors.New("date is required")
	}
	return services.ParseDay(raw)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseBoolQuery(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// parseRangeQuery reads the from/to query pair. A missing from defaults to
// today and a missing to defaults to from.
func (handler *Handler) parseRangeQuery(c *fiber.Ctx) (time.Time, time.Time, string) {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"), handler.calendar.Today())
	switch {
	case err == nil:
		return from, to, ""
	case errors.Is(err, services.ErrRangeFromInvalid):
		return time.Time{}, time.Time{}, "invalid from date"
	case errors.Is(err, services.ErrRangeToInvalid):
		return time.Time{}, time.Time{}, "invalid to date"
	default:
		return time.Time{}, time.Time{}, "invalid range"
	}
}

func serviceErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrOccurrenceNotFound):
		return apiError(c, fiber.StatusNotFound, "occurrence not found")
	case errors.Is(err, services.ErrFriendNotFound):
		return apiError(c, fiber.StatusNotFound, "friend not found")
	case errors.Is(err, services.ErrOccurrenceExists):
		return apiError(c, fiber.StatusConflict, "occurrence already exists")
	case errors.Is(err, services.ErrFriendExists):
		return apiError(c, fiber.StatusConflict, "friend already exists")
	case errors.Is(err, services.ErrInvalidOccurrenceInput):
		return apiError(c, fiber.StatusBadRequest, "invalid occurrence input")
	case errors.Is(err, services.ErrInvalidFriendInput):
		return apiError(c, fiber.StatusBadRequest, "invalid friend input")
	case errors.Is(err, services.ErrInvalidRange):
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
