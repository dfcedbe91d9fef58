package attemptControllers

import (
	"strings"

	"quizapi/models"
)

// EvaluateAnswers grades submitted labels against the quiz questions.
// Labels are compared case-insensitively. An answer whose number matches no
// question is recorded as incorrect, never rejected.
func EvaluateAnswers(questions []models.Question, submitted []models.SubmittedAnswer) ([]models.AnswerResult, int) {
	byNumber := make(map[int]models.Question, len(questions))
	for _, q := range questions {
		byNumber[q.Number] = q
	}

	results := make([]models.AnswerResult, 0, len(submitted))
	score := 0
	for _, ans := range submitted {
		result := models.AnswerResult{
			Number:    ans.Number,
			Submitted: strings.ToUpper(ans.Resposta),
		}
		if q, ok := byNumber[ans.Number]; ok {
			result.Correct = strings.ToUpper(q.Correct)
			result.IsCorrect = result.Submitted == result.Correct
		}
		if result.IsCorrect {
			score++
		}
		results = append(results, result)
	}
	return results, score
}
