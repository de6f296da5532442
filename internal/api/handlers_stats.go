package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rhythm/internal/services"
)

func (handler *Handler) GetCategories(c *fiber.Ctx) error {
	categories, err := handler.categories.List(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}
	return c.JSON(categories)
}

func (handler *Handler) GetBalance(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseRangeQuery(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	days, err := handler.calendar.ViewRange(c.UserContext(), from, to)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to load balance")
	}
	categories, err := handler.categories.All(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}

	return c.JSON(fiber.Map{
		"from":   services.FormatDay(from),
		"to":     services.FormatDay(to),
		"shares": services.BalanceForRange(services.FlattenDays(days), categories),
	})
}

func (handler *Handler) ExportICS(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseRangeQuery(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	days, err := handler.calendar.ViewRange(c.UserContext(), from, to)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to export calendar")
	}
	categories, err := handler.categories.All(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}

	body := handler.exporter.BuildICS(services.FlattenDays(days), categories)
	filename := fmt.Sprintf("rhythm-%s-%s.ics", services.FormatDay(from), services.FormatDay(to))
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.SendString(body)
}
