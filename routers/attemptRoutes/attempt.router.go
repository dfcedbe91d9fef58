package attemptRoutes

import (
	attemptController "quizapi/controllers/attempt"
	attemptValidator "quizapi/validators/attempt"

	"github.com/gofiber/fiber/v2"
)

func SetupAttemptRoutes(app *fiber.App) {
	app.Post("/attempts", attemptValidator.SubmitAnswers(), attemptController.SubmitAnswers)
	app.Get("/history/:student", attemptController.GetHistory)
}
