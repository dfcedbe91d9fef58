package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"quizapi/config"
	"quizapi/models"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors so controllers can distinguish credential failures from
// exhausted retries when translating to a response.
var (
	ErrInvalidAPIKey = errors.New("text API key rejected (401)")
	ErrMaxRetries    = errors.New("max retries exceeded for rate-limited text API")
)

// GeneratedContent is the summary plus question set produced for a topic
type GeneratedContent struct {
	Summary   string            `json:"summary"`
	Questions []models.Question `json:"questions"`
}

// Generator produces quiz content, either canned (dummy mode) or via the
// external chat-completion API with bounded retry on rate limiting.
type Generator struct {
	Dummy       bool
	APIURL      string
	APIKey      string
	Model       string
	MaxAttempts int
	RetryDelay  time.Duration
}

// NewGenerator builds a Generator from the loaded application config
func NewGenerator() *Generator {
	return &Generator{
		Dummy:       config.AppConfig.UseDummyData,
		APIURL:      config.AppConfig.OpenAIURL,
		APIKey:      config.AppConfig.OpenAIKey,
		Model:       config.AppConfig.OpenAIModel,
		MaxAttempts: config.AppConfig.GenMaxAttempts,
		RetryDelay:  time.Duration(config.AppConfig.GenRetryDelayMs) * time.Millisecond,
	}
}

const questionCount = 5

const generationPrompt = `Briefly summarize the topic %q and create 5 multiple-choice questions with 4 choices each (A, B, C, D), indicating the correct choice. Return strict JSON in the format:
{
  "summary": "...",
  "questions": [
    {
      "prompt": "...",
      "choices": { "A": "...", "B": "...", "C": "...", "D": "..." },
      "correctLabel": "A"
    }
  ]
}`

// Generate returns content for the topic, dispatching on dummy mode
func (g *Generator) Generate(topic string) (*GeneratedContent, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if g.Dummy {
		return g.generateDummy(topic), nil
	}
	return g.generateLive(topic)
}

// generateDummy builds deterministic offline content for the topic
func (g *Generator) generateDummy(topic string) *GeneratedContent {
	content := &GeneratedContent{
		Summary: fmt.Sprintf("This is a short summary about the topic %q.", topic),
	}
	for i := 0; i < questionCount; i++ {
		choices := make(map[string]string, len(models.ChoiceLabels))
		for _, label := range models.ChoiceLabels {
			choices[label] = "Choice " + label
		}
		content.Questions = append(content.Questions, models.Question{
			Number:  i + 1,
			Prompt:  fmt.Sprintf("Question %d about the topic %q", i+1, topic),
			Choices: choices,
			Correct: models.ChoiceLabels[i%len(models.ChoiceLabels)],
		})
	}
	return content
}

// generateLive calls the chat-completion API, retrying only on 429.
// 401 fails immediately: a rejected credential is not transient.
func (g *Generator) generateLive(topic string) (*GeneratedContent, error) {
	client := resty.New()
	payload := map[string]interface{}{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(generationPrompt, topic)},
		},
		"temperature": 0.7,
	}

	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		resp, err := client.R().
			SetHeader("Authorization", "Bearer "+g.APIKey).
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(g.APIURL)
		if err != nil {
			return nil, fmt.Errorf("text API request failed: %w", err)
		}

		switch resp.StatusCode() {
		case http.StatusOK:
			return parseChatResponse(resp.Body())
		case http.StatusTooManyRequests:
			log.Printf("Text API rate limited, attempt %d/%d", attempt, g.MaxAttempts)
			time.Sleep(g.RetryDelay)
		case http.StatusUnauthorized:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("text API returned status %d: %s", resp.StatusCode(), resp.String())
		}
	}

	return nil, ErrMaxRetries
}

// parseChatResponse extracts the model's message and parses it as quiz JSON
func parseChatResponse(body []byte) (*GeneratedContent, error) {
	var chat struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("invalid text API response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("text API response contained no choices")
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &content); err != nil {
		return nil, fmt.Errorf("text API returned unparseable quiz JSON: %w", err)
	}

	// Question order from the model is authoritative; numbers are ours.
	for i := range content.Questions {
		content.Questions[i].Number = i + 1
	}
	return &content, nil
}
