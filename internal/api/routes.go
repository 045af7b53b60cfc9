package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", metricsHandler())
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)
	api.Get("/state", handler.GetState)
	api.Get("/dashboard", handler.GetDashboard)

	quiz := api.Group("/quiz")
	quiz.Get("", handler.GetQuiz)
	quiz.Post("/start", handler.StartQuiz)
	quiz.Post("/answer", handler.AnswerQuiz)
	quiz.Post("/lead", handler.SubmitLead)
	quiz.Post("/retry", handler.RetryDiagnostic)
	quiz.Post("/restart", handler.RestartQuiz)

	api.Post("/landing/start", handler.StartJourney)
	api.Post("/welcome/dismiss", handler.DismissWelcome)

	days := api.Group("/days")
	days.Delete("/selected", handler.CloseDay)
	days.Post("/:day/open", handler.OpenDay)
	days.Post("/:day/complete", handler.CompleteDay)

	api.Get("/reflection", handler.GetReflection)
	api.Get("/word", handler.GetShareableWord)
	api.Post("/word/share", handler.ShareWord)
	api.Post("/candle", handler.LightCandle)
	api.Post("/settings/api-key", handler.OpenKeySelector)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
