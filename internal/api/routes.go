package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	onboarding := api.Group("/onboarding")
	onboarding.Get("/concerns", handler.GetConcerns)
	onboarding.Post("/sessions", handler.StartOnboarding)
	onboarding.Get("", handler.SessionRequired, handler.GetOnboarding)
	onboarding.Patch("/record", handler.SessionRequired, handler.UpdateRecord)
	onboarding.Post("/babies", handler.SessionRequired, handler.AddBaby)
	onboarding.Patch("/babies/:index", handler.SessionRequired, handler.UpdateBaby)
	onboarding.Delete("/babies/:index", handler.SessionRequired, handler.RemoveBaby)
	onboarding.Post("/concerns/toggle", handler.SessionRequired, handler.ToggleConcern)
	onboarding.Post("/next", handler.SessionRequired, handler.NextStep)
	onboarding.Post("/back", handler.SessionRequired, handler.PreviousStep)

	submissions := api.Group("/submissions")
	submissions.Get("/:id", handler.GetSubmission)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
