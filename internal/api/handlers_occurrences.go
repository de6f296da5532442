package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateOccurrence(c *fiber.Ctx) error {
	payload := occurrencePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.toInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	created, err := handler.calendar.CreateOccurrence(c.UserContext(), input)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to create occurrence")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) UpdateOccurrence(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	payload := occurrencePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.toInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	updated, err := handler.calendar.UpdateOccurrence(c.UserContext(), id, input)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to update occurrence")
	}
	return c.JSON(updated)
}

func (handler *Handler) SetOccurrenceDone(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	payload := donePayload{}
	if err := c.BodyParser(&payload); err != nil || payload.Done == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := handler.calendar.SetOccurrenceDone(c.UserContext(), id, *payload.Done)
	if err != nil {
		return serviceErrorResponse(c, err, "failed to update occurrence")
	}
	return c.JSON(updated)
}

// DeleteOccurrence removes one instance. ?future=true also cancels every
// later instance of the series.
func (handler *Handler) DeleteOccurrence(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var day time.Time
	if raw := c.Query("date"); raw != "" {
		day, err = parseDayParam(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
	}

	if _, err := handler.calendar.DeleteOccurrence(c.UserContext(), id, day, parseBoolQuery(c.Query("future"))); err != nil {
		return serviceErrorResponse(c, err, "failed to delete occurrence")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
