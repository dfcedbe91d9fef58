package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatBody wraps quiz content the way the chat-completion API returns it:
// as a JSON string inside choices[0].message.content.
func chatBody(t *testing.T, content GeneratedContent) []byte {
	t.Helper()

	inner, err := json.Marshal(content)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": string(inner)}},
		},
	})
	require.NoError(t, err)
	return body
}

func sampleContent() GeneratedContent {
	content := GeneratedContent{Summary: "A short summary about photosynthesis."}
	for i := 0; i < 5; i++ {
		content.Questions = append(content.Questions, models.Question{
			Prompt: fmt.Sprintf("Prompt %d", i+1),
			Choices: map[string]string{
				"A": "first", "B": "second", "C": "third", "D": "fourth",
			},
			Correct: "B",
		})
	}
	return content
}

func liveGenerator(url string, maxAttempts int) *Generator {
	return &Generator{
		APIURL:      url,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		MaxAttempts: maxAttempts,
		RetryDelay:  5 * time.Millisecond,
	}
}

func TestGenerateDummyStructure(t *testing.T) {
	g := &Generator{Dummy: true}

	content, err := g.Generate("Photosynthesis")
	require.NoError(t, err)

	assert.Contains(t, content.Summary, "Photosynthesis")
	require.Len(t, content.Questions, 5)

	wantCorrect := []string{"A", "B", "C", "D", "A"}
	for i, q := range content.Questions {
		assert.Equal(t, i+1, q.Number)
		assert.NotEmpty(t, q.Prompt)
		assert.Equal(t, wantCorrect[i], q.Correct)
		for _, label := range models.ChoiceLabels {
			assert.Contains(t, q.Choices, label)
		}
		assert.Contains(t, q.Choices, q.Correct)
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	g := &Generator{Dummy: true}

	_, err := g.Generate("")
	assert.Error(t, err)
}

func TestGenerateLiveSuccess(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write(chatBody(t, sampleContent()))
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)
	content, err := g.Generate("Photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "A short summary about photosynthesis.", content.Summary)
	require.Len(t, content.Questions, 5)
	for i, q := range content.Questions {
		assert.Equal(t, i+1, q.Number) // numbers are assigned server-side, in order
		assert.Equal(t, "B", q.Correct)
	}
}

func TestGenerateLiveRetriesOnRateLimit(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(chatBody(t, sampleContent()))
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)

	start := time.Now()
	content, err := g.Generate("Photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	assert.Len(t, content.Questions, 5)
	// Two rate-limited attempts mean two waits before the one that succeeds.
	assert.GreaterOrEqual(t, time.Since(start), 2*g.RetryDelay)
}

func TestGenerateLiveExhaustsRetries(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 3)

	_, err := g.Generate("Photosynthesis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMaxRetries))
	assert.Equal(t, 3, requests)
}

func TestGenerateLiveAuthErrorFailsFast(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)

	_, err := g.Generate("Photosynthesis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAPIKey))
	assert.Equal(t, 1, requests)
}

func TestGenerateLiveServerErrorNoRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)

	_, err := g.Generate("Photosynthesis")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMaxRetries))
	assert.False(t, errors.Is(err, ErrInvalidAPIKey))
	assert.Equal(t, 1, requests)
}

func TestGenerateLiveUnparseableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Sorry, here is your quiz: ..."}},
			},
		})
		w.Write(body)
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)

	_, err := g.Generate("Photosynthesis")
	assert.Error(t, err)
}

func TestGenerateLiveEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	g := liveGenerator(server.URL, 5)

	_, err := g.Generate("Photosynthesis")
	assert.Error(t, err)
}
