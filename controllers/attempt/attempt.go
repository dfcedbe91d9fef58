package attemptControllers

import (
	"encoding/json"
	"errors"
	"log"

	"quizapi/database"
	"quizapi/middleware"
	"quizapi/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitAnswers grades a submission against a stored quiz and persists the attempt
func SubmitAnswers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmitAnswers").(*struct {
		Student string                   `json:"student"`
		QuizID  uint                     `json:"quizId"`
		Answers []models.SubmittedAnswer `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, reqData.QuizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		log.Printf("Failed to fetch quiz %d: %v", reqData.QuizID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	questions, err := quiz.DecodeQuestions()
	if err != nil {
		log.Printf("Stored questions for quiz %d are unreadable: %v", quiz.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read quiz questions!", nil)
	}

	results, score := EvaluateAnswers(questions, reqData.Answers)

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode answers!", nil)
	}

	attempt := models.QuizAttempt{
		Student: reqData.Student,
		Topic:   quiz.Topic,
		QuizID:  quiz.ID,
		Answers: datatypes.JSON(resultsJSON),
		Score:   score,
		Total:   len(questions), // the full question set, not just what was submitted
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("Failed to save attempt for student %q: %v", reqData.Student, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers submitted successfully!", fiber.Map{
		"student": attempt.Student,
		"topic":   attempt.Topic,
		"score":   attempt.Score,
		"total":   attempt.Total,
		"answers": results,
	})
}

// GetHistory returns a student's graded attempts, newest first
func GetHistory(c *fiber.Ctx) error {
	student := c.Params("student")
	if student == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student is required!", nil)
	}

	var attempts []models.QuizAttempt
	if err := database.Database.Db.Where("student = ?", student).Order("created_at DESC").Find(&attempts).Error; err != nil {
		log.Printf("Failed to fetch history for student %q: %v", student, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	if len(attempts) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No history found for this student!", nil)
	}

	history := make([]fiber.Map, len(attempts))
	for i, attempt := range attempts {
		var answers []models.AnswerResult
		if err := json.Unmarshal(attempt.Answers, &answers); err != nil {
			log.Printf("Stored answers for attempt %d are unreadable: %v", attempt.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read attempt answers!", nil)
		}
		history[i] = fiber.Map{
			"topic":     attempt.Topic,
			"createdAt": attempt.CreatedAt,
			"score":     attempt.Score,
			"total":     attempt.Total,
			"answers":   answers,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "History fetched successfully!", fiber.Map{
		"student": student,
		"history": history,
	})
}
