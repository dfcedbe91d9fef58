package attemptValidator

import (
	"quizapi/middleware"
	"quizapi/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswers validates an answer submission request
func SubmitAnswers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Student string                   `json:"student"`
			QuizID  uint                     `json:"quizId"`
			Answers []models.SubmittedAnswer `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Student == "" {
			errors["student"] = "Student is required!"
		}
		if reqData.QuizID == 0 {
			errors["quizId"] = "Quiz ID is required!"
		}
		// An empty answers array is a valid (zero-score) submission, a missing one is not.
		if reqData.Answers == nil {
			errors["answers"] = "Answers array is required!"
		}
		for _, ans := range reqData.Answers {
			if ans.Number < 1 {
				errors["answers"] = "Every answer needs a positive question number!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitAnswers", reqData)
		return c.Next()
	}
}
