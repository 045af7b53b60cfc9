package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiGenerator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGeminiGenerator(GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/",
		ProModel:   "pro-model",
		FlashModel: "flash-model",
		Timeout:    5 * time.Second,
	}, nil)
}

func TestGeminiGenerateSendsSchemaAndExtractsText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"blessing\":"},{"text":"\"Luz\"}"}]}}]}`)
	})

	text, err := generator.Generate(context.Background(), candleBlessingRequest("paz", "Ana"))
	require.NoError(t, err)
	assert.Equal(t, `{"blessing":"Luz"}`, text)

	assert.Equal(t, "/v1beta/models/flash-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	generationConfig, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", generationConfig["responseMimeType"])
	schema, ok := generationConfig["responseSchema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "OBJECT", schema["type"])
	assert.Equal(t, []any{"blessing"}, schema["required"])
	assert.NotNil(t, gotBody["systemInstruction"])
}

func TestGeminiGenerateUsesProModelForDayContent(t *testing.T) {
	var gotPath string
	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`)
	})

	_, err := generator.Generate(context.Background(), dayContentRequest(1, "Ana"))
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/pro-model:generateContent", gotPath)
}

func TestGeminiGenerateReportsHTTPErrors(t *testing.T) {
	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := generator.Generate(context.Background(), shareableWordRequest())
	var httpErr *geminiHTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "quota exceeded")
}

func TestGeminiGenerateReportsBlockedPrompt(t *testing.T) {
	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := generator.Generate(context.Background(), shareableWordRequest())
	require.ErrorIs(t, err, ErrBlockedRequest)
}

func TestGeminiGenerateReportsEmptyResponse(t *testing.T) {
	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := generator.Generate(context.Background(), shareableWordRequest())
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiGenerateRequiresAPIKey(t *testing.T) {
	called := false
	generator := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	generator.SetAPIKey("   ")

	_, err := generator.Generate(context.Background(), shareableWordRequest())
	require.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.False(t, called)
	assert.False(t, generator.HasAPIKey())

	generator.SetAPIKey("other")
	assert.True(t, generator.HasAPIKey())
}
