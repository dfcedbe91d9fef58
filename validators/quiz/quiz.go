package quizValidator

import (
	"quizapi/middleware"
	"quizapi/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateQuiz validates a quiz generation request
func GenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Topic string `json:"topic"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Topic == "" {
			errors["topic"] = "Topic is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerateQuiz", reqData)
		return c.Next()
	}
}

// UpdateQuiz validates a quiz update request
func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Topic     *string           `json:"topic"`
			Summary   *string           `json:"summary"`
			Questions []models.Question `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Topic == nil && reqData.Summary == nil && reqData.Questions == nil {
			errors["body"] = "At least one of topic, summary or questions is required!"
		}

		for _, q := range reqData.Questions {
			if q.Prompt == "" {
				errors["questions"] = "Every question needs a prompt!"
				break
			}
			if len(q.Choices) != len(models.ChoiceLabels) {
				errors["questions"] = "Every question needs exactly four choices (A, B, C, D)!"
				break
			}
			if _, ok := q.Choices[q.Correct]; !ok {
				errors["questions"] = "Correct label must be one of the question's choices!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateQuiz", reqData)
		return c.Next()
	}
}
