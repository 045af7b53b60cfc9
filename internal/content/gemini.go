package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

var (
	ErrMissingAPIKey  = errors.New("missing gemini api key")
	ErrEmptyResponse  = errors.New("no text in generation response")
	ErrBlockedRequest = errors.New("generation blocked")
)

type GeminiConfig struct {
	APIKey        string
	BaseURL       string
	ProModel      string
	FlashModel    string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// GeminiGenerator calls the generateContent REST endpoint with a JSON response schema.
type GeminiGenerator struct {
	log        *logger.Logger
	baseURL    string
	proModel   string
	flashModel string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu     sync.RWMutex
	apiKey string
}

func NewGeminiGenerator(cfg GeminiConfig, log *logger.Logger) *GeminiGenerator {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &GeminiGenerator{
		log:        logger.OrNop(log).With("service", "GeminiGenerator"),
		baseURL:    baseURL,
		proModel:   cfg.ProModel,
		flashModel: cfg.FlashModel,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}
}

// SetAPIKey swaps the credential used by later requests.
func (g *GeminiGenerator) SetAPIKey(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.apiKey = strings.TrimSpace(key)
}

func (g *GeminiGenerator) HasAPIKey() bool {
	return g.currentAPIKey() != ""
}

func (g *GeminiGenerator) currentAPIKey() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.apiKey
}

func (g *GeminiGenerator) model(tier Tier) string {
	if tier == TierPro {
		return g.proModel
	}
	return g.flashModel
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]geminiSchema `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string       `json:"responseMimeType"`
	ResponseSchema   geminiSchema `json:"responseSchema"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func buildGeminiRequest(request GenerationRequest) geminiRequest {
	properties := make(map[string]geminiSchema, len(request.Fields))
	for _, field := range request.Fields {
		properties[field] = geminiSchema{Type: "STRING"}
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: request.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: geminiSchema{
				Type:       "OBJECT",
				Properties: properties,
				Required:   append([]string(nil), request.Fields...),
			},
		},
	}
	if strings.TrimSpace(request.SystemInstruction) != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: request.SystemInstruction}}}
	}
	return body
}

func (g *GeminiGenerator) Generate(ctx context.Context, request GenerationRequest) (string, error) {
	apiKey := g.currentAPIKey()
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildGeminiRequest(request)); err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, url.PathEscape(g.model(request.Tier)))
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("x-goog-api-key", apiKey)

	response, err := g.httpClient.Do(httpRequest)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", &geminiHTTPError{StatusCode: response.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return extractGeminiText(raw)
}

func extractGeminiText(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("decode generation response: invalid json")
	}
	if reason := gjson.GetBytes(raw, "promptFeedback.blockReason"); reason.Exists() {
		return "", fmt.Errorf("%w: %s", ErrBlockedRequest, reason.String())
	}

	var text strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		text.WriteString(part.Get("text").String())
		return true
	})
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
