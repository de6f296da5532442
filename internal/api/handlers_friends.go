package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rhythm/internal/services"
)

func (handler *Handler) GetFriends(c *fiber.Ctx) error {
	friends, err := handler.friends.ListFriends(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load friends")
	}
	return c.JSON(friends)
}

func (handler *Handler) CreateFriend(c *fiber.Ctx) error {
	payload := friendPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	friend, scheduled, err := handler.friends.CreateFriend(c.UserContext(), payload.toInput())
	if err != nil {
		return serviceErrorResponse(c, err, "failed to create friend")
	}

	calls := make([]string, 0, len(scheduled))
	for _, day := range scheduled {
		calls = append(calls, services.FormatDay(day))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"friend":          friend,
		"scheduled_calls": calls,
	})
}

func (handler *Handler) UpdateFriend(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	payload := friendPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	friend, err := handler.friends.UpdateFriend(c.UserContext(), id, payload.toInput())
	if err != nil {
		return serviceErrorResponse(c, err, "failed to update friend")
	}
	return c.JSON(friend)
}

func (handler *Handler) DeleteFriend(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := handler.friends.DeleteFriend(c.UserContext(), id); err != nil {
		return serviceErrorResponse(c, err, "failed to delete friend")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
