package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmittedAnswer is one answer in a submission request
type SubmittedAnswer struct {
	Number   int    `json:"number"`
	Resposta string `json:"resposta"`
}

// AnswerResult is one graded answer stored inside QuizAttempt.Answers
type AnswerResult struct {
	Number    int    `json:"number"`
	Submitted string `json:"submittedLabel"`
	Correct   string `json:"correctLabel"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizAttempt model
type QuizAttempt struct {
	gorm.Model
	Student string         `json:"student" gorm:"index"`
	Topic   string         `json:"topic"` // copied from the quiz at scoring time
	QuizID  uint           `json:"quizId" gorm:"index"`
	Answers datatypes.JSON `json:"answers"` // serialized []AnswerResult
	Score   int            `json:"score"`
	Total   int            `json:"total"`
}
