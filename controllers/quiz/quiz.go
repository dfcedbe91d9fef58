package quizControllers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"quizapi/database"
	"quizapi/middleware"
	"quizapi/models"
	"quizapi/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentGenerator is the generator used by GenerateQuiz. Package-level so
// tests can swap in a dummy or locally-served instance.
var ContentGenerator *utils.Generator

// publicQuestions strips the correct labels before a quiz leaves the server
func publicQuestions(questions []models.Question) []fiber.Map {
	public := make([]fiber.Map, len(questions))
	for i, q := range questions {
		public[i] = fiber.Map{
			"number":  q.Number,
			"prompt":  q.Prompt,
			"choices": q.Choices,
		}
	}
	return public
}

// GenerateQuiz generates content for a topic and persists it as a new quiz
func GenerateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGenerateQuiz").(*struct {
		Topic string `json:"topic"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	generator := ContentGenerator
	if generator == nil {
		generator = utils.NewGenerator()
	}

	content, err := generator.Generate(reqData.Topic)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidAPIKey) {
			// Credential problems are an operator issue, not a caller one.
			log.Printf("Text API credential rejected: %v", err)
		} else {
			log.Printf("Generation failed for topic %q: %v", reqData.Topic, err)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate content!", nil)
	}

	questionsJSON, err := json.Marshal(content.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode questions!", nil)
	}

	quiz := models.Quiz{
		Topic:     reqData.Topic,
		Summary:   content.Summary,
		Questions: datatypes.JSON(questionsJSON),
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		log.Printf("Failed to save quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz generated successfully!", fiber.Map{
		"id":        quiz.ID,
		"topic":     quiz.Topic,
		"summary":   quiz.Summary,
		"questions": publicQuestions(content.Questions),
	})
}

// ListQuizzes returns every stored quiz, correct labels included
func ListQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	if err := database.Database.Db.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		log.Printf("Failed to list quizzes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// UpdateQuiz overwrites the provided fields of a stored quiz
func UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateQuiz").(*struct {
		Topic     *string           `json:"topic"`
		Summary   *string           `json:"summary"`
		Questions []models.Question `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	if reqData.Topic != nil {
		quiz.Topic = *reqData.Topic
	}
	if reqData.Summary != nil {
		quiz.Summary = *reqData.Summary
	}
	if reqData.Questions != nil {
		questionsJSON, err := json.Marshal(reqData.Questions)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode questions!", nil)
		}
		quiz.Questions = datatypes.JSON(questionsJSON)
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		log.Printf("Failed to update quiz %d: %v", quizID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// DeleteQuiz permanently removes a stored quiz
func DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&quiz).Error; err != nil {
		log.Printf("Failed to delete quiz %d: %v", quizID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
