package quizRoutes

import (
	"time"

	quizController "quizapi/controllers/quiz"
	quizValidator "quizapi/validators/quiz"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quizzes")

	// Generation fans out to the paid text API, so it gets its own per-IP limit
	generateLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":  false,
				"message": "Too many requests. Please try again later.",
			})
		},
	})

	quizGroup.Post("/", generateLimiter, quizValidator.GenerateQuiz(), quizController.GenerateQuiz)
	quizGroup.Get("/", quizController.ListQuizzes)
	quizGroup.Put("/:id", quizValidator.UpdateQuiz(), quizController.UpdateQuiz)
	quizGroup.Delete("/:id", quizController.DeleteQuiz)
}
