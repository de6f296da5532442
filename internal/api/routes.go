package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	days := api.Group("/days")
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	api.Get("/months/:month", handler.GetMonth)

	occurrences := api.Group("/occurrences")
	occurrences.Post("", handler.CreateOccurrence)
	occurrences.Put("/:id", handler.UpdateOccurrence)
	occurrences.Patch("/:id/done", handler.SetOccurrenceDone)
	occurrences.Delete("/:id", handler.DeleteOccurrence)

	friends := api.Group("/friends")
	friends.Get("", handler.GetFriends)
	friends.Post("", handler.CreateFriend)
	friends.Put("/:id", handler.UpdateFriend)
	friends.Delete("/:id", handler.DeleteFriend)

	api.Get("/categories", handler.GetCategories)
	api.Get("/balance", handler.GetBalance)
	api.Get("/export/ics", handler.ExportICS)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
