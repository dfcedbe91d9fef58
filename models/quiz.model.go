package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChoiceLabels is the fixed label set every question carries
var ChoiceLabels = []string{"A", "B", "C", "D"}

// Question is one multiple-choice item stored inside Quiz.Questions
type Question struct {
	Number  int               `json:"number"`
	Prompt  string            `json:"prompt"`
	Choices map[string]string `json:"choices"`
	Correct string            `json:"correctLabel"`
}

// Quiz model
type Quiz struct {
	gorm.Model
	Topic     string         `json:"topic"`
	Summary   string         `json:"summary"`
	Questions datatypes.JSON `json:"questions"` // serialized []Question
}

// DecodeQuestions unmarshals the stored questions column
func (q *Quiz) DecodeQuestions() ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
