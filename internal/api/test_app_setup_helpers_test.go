package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/content"
	"github.com/terraincognita07/quaresma/internal/db"
	"github.com/terraincognita07/quaresma/internal/i18n"
	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/models"
	"github.com/terraincognita07/quaresma/internal/services"
)

type instantClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *instantClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *instantClock) After(d time.Duration) <-chan time.Time {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	now := clock.now
	clock.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

type contentStub struct {
	mu               sync.Mutex
	failDayContent   bool
	failReflection   bool
	failDiagnostic   bool
	dayContentCalls  int
	candleIntentions []string
}

func (stub *contentStub) DayContent(_ context.Context, day int, userName string) *models.DayContent {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.dayContentCalls++
	if stub.failDayContent {
		return nil
	}
	return &models.DayContent{
		Day:        day,
		Reflection: "Reflexão para " + userName,
		Prayer:     "Senhor, tende piedade.",
		Purpose:    "Jejuar de palavras duras.",
		WhyReflect: "Porque o coração se converte no silêncio.",
	}
}

func (stub *contentStub) BibleReflection(context.Context, int) *models.BibleReflection {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failReflection {
		return nil
	}
	return &models.BibleReflection{Verse: "Convertei-vos a mim.", Reference: "Joel 2,12", History: "Contexto."}
}

func (stub *contentStub) QuizEncouragement(context.Context, []models.VirtueProfile) models.QuizEncouragement {
	return models.QuizEncouragement{Message: "Continue firme."}
}

func (stub *contentStub) QuizDiagnostic(_ context.Context, profile models.VirtueProfile, _ []models.VirtueProfile) *models.QuizDiagnostic {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failDiagnostic {
		return nil
	}
	return &models.QuizDiagnostic{
		Diagnostic: "Seu caminho é " + string(profile) + ".",
		Verse:      "O Senhor é meu pastor.",
		Reference:  "Sl 23,1",
	}
}

func (stub *contentStub) ShareableWord(context.Context) models.ShareableWord {
	return content.FallbackShareableWord()
}

func (stub *contentStub) CandleBlessing(_ context.Context, intention string, personName string) models.CandleBlessing {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.candleIntentions = append(stub.candleIntentions, intention)
	return models.CandleBlessing{Blessing: "Que a luz alcance " + personName + "."}
}

type testApp struct {
	app        *fiber.App
	content    *contentStub
	store      *services.StateStore
	controller *services.Controller
	dbPath     string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppAt(t, filepath.Join(t.TempDir(), "quaresma-test.db"), &contentStub{})
}

func newTestAppAt(t *testing.T, dbPath string, source *contentStub) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(dbPath, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	store := services.NewStateStore(db.NewRepositories(database).States, logger.Nop())
	controller := services.NewController(store, source, services.ControllerOptions{
		Clock: &instantClock{now: time.Date(2026, time.February, 18, 9, 0, 0, 0, time.UTC)},
	}, logger.Nop())

	i18nManager, err := i18n.NewManager("pt", i18n.Locales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(controller, nil, nil, i18nManager, logger.Nop())
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, content: source, store: store, controller: controller, dbPath: dbPath}
}

func (ta *testApp) do(t *testing.T, method string, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func (ta *testApp) mustStatus(t *testing.T, method string, path string, body any, want int) *http.Response {
	t.Helper()

	response := ta.do(t, method, path, body)
	if response.StatusCode != want {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("%s %s status = %d, want %d (body %s)", method, path, response.StatusCode, want, raw)
	}
	return response
}

// completeFunnel drives quiz, lead and landing until the app view is active.
func (ta *testApp) completeFunnel(t *testing.T, name string) {
	t.Helper()

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	for _, profile := range []models.VirtueProfile{
		models.ProfileFaith,
		models.ProfileAction,
		models.ProfileFaith,
		models.ProfileWisdom,
	} {
		ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": profile}, fiber.StatusOK)
	}
	ta.mustStatus(t, http.MethodPost, "/api/quiz/lead", fiber.Map{"name": name}, fiber.StatusOK)
	ta.mustStatus(t, http.MethodPost, "/api/landing/start", nil, fiber.StatusOK)
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %s: %v", raw, err)
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
