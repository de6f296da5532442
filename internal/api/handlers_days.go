package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rhythm/internal/services"
)

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	occurrences, err := handler.calendar.ViewDay(c.UserContext(), day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load day")
	}

	return c.JSON(services.DayOccurrences{
		Day:         day,
		Date:        services.FormatDay(day),
		Occurrences: occurrences,
	})
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseRangeQuery(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	days, err := handler.calendar.ViewRange(c.UserContext(), from, to)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to load days")
	}
	return c.JSON(days)
}

func (handler *Handler) GetMonth(c *fiber.Ctx) error {
	month, err := time.Parse("2006-01", c.Params("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	states, err := handler.calendar.ViewMonth(c.UserContext(), month)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load month")
	}
	return c.JSON(states)
}
