package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/models"
	"github.com/terraincognita07/quaresma/internal/services"
)

func TestFreshStateStartsOnQuiz(t *testing.T) {
	ta := newTestApp(t)

	response := ta.mustStatus(t, http.MethodGet, "/api/state", nil, fiber.StatusOK)
	snapshot := decodeJSON[stateResponse](t, response)
	if snapshot.View != services.ViewQuiz {
		t.Fatalf("view = %q, want quiz", snapshot.View)
	}
	if snapshot.Quiz.Step != services.QuizStepIntro {
		t.Fatalf("quiz step = %q, want intro", snapshot.Quiz.Step)
	}
	if snapshot.State.User != nil || snapshot.State.QuizResult != nil {
		t.Fatalf("expected empty journey, got %#v", snapshot.State)
	}
}

func TestFunnelCompletesOverHTTP(t *testing.T) {
	ta := newTestApp(t)

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	answers := []models.VirtueProfile{models.ProfileFaith, models.ProfileAction, models.ProfileFaith, models.ProfileWisdom}
	var last stateResponse
	for _, profile := range answers {
		response := ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": profile}, fiber.StatusOK)
		last = decodeJSON[stateResponse](t, response)
	}
	if last.Quiz.Step != services.QuizStepLead {
		t.Fatalf("quiz step after answers = %q, want lead", last.Quiz.Step)
	}
	if last.Quiz.Encouragement != "Continue firme." {
		t.Fatalf("encouragement = %q", last.Quiz.Encouragement)
	}

	response := ta.mustStatus(t, http.MethodPost, "/api/quiz/lead", fiber.Map{"name": "  Maria  "}, fiber.StatusOK)
	afterLead := decodeJSON[stateResponse](t, response)
	if afterLead.View != services.ViewLanding {
		t.Fatalf("view after lead = %q, want landing", afterLead.View)
	}
	if afterLead.State.User == nil || afterLead.State.User.Name != "Maria" {
		t.Fatalf("expected trimmed user name, got %#v", afterLead.State.User)
	}
	if afterLead.State.QuizResult == nil || afterLead.State.QuizResult.Profile != models.ProfileFaith {
		t.Fatalf("expected dominant profile Fé, got %#v", afterLead.State.QuizResult)
	}

	response = ta.mustStatus(t, http.MethodPost, "/api/landing/start", nil, fiber.StatusOK)
	started := decodeJSON[stateResponse](t, response)
	if started.View != services.ViewApp || !started.ShowWelcome {
		t.Fatalf("expected app view with welcome, got view=%q welcome=%v", started.View, started.ShowWelcome)
	}

	response = ta.mustStatus(t, http.MethodPost, "/api/welcome/dismiss", nil, fiber.StatusOK)
	if dismissed := decodeJSON[stateResponse](t, response); dismissed.ShowWelcome {
		t.Fatal("expected welcome to be dismissed")
	}
}

func TestFunnelRejectsInvalidInput(t *testing.T) {
	ta := newTestApp(t)

	response := ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": models.ProfileFaith}, fiber.StatusConflict)
	if got := readAPIError(t, response.Body); got != "invalid transition" {
		t.Fatalf("answer before start error = %q", got)
	}

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	response = ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": "Preguiça"}, fiber.StatusBadRequest)
	if got := readAPIError(t, response.Body); got != "invalid profile" {
		t.Fatalf("invalid profile error = %q", got)
	}

	response = ta.mustStatus(t, http.MethodPost, "/api/landing/start", nil, fiber.StatusConflict)
	if got := readAPIError(t, response.Body); got != "invalid transition" {
		t.Fatalf("landing start from quiz error = %q", got)
	}
}

func TestSubmitLeadRequiresName(t *testing.T) {
	ta := newTestApp(t)

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	for i := 0; i < services.QuizQuestionCount; i++ {
		ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": models.ProfileWisdom}, fiber.StatusOK)
	}

	response := ta.mustStatus(t, http.MethodPost, "/api/quiz/lead", fiber.Map{"name": "   "}, fiber.StatusBadRequest)
	payload := decodeJSON[map[string]string](t, response)
	if payload["error"] != "lead name is required" {
		t.Fatalf("error = %q", payload["error"])
	}
	if payload["message"] != "Informe o seu nome." {
		t.Fatalf("localized message = %q", payload["message"])
	}
}

func TestDiagnosticFailureOffersRetry(t *testing.T) {
	ta := newTestApp(t)
	ta.content.failDiagnostic = true

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	for i := 0; i < services.QuizQuestionCount; i++ {
		ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": models.ProfileContemplation}, fiber.StatusOK)
	}

	response := ta.mustStatus(t, http.MethodPost, "/api/quiz/lead", fiber.Map{"name": "João"}, fiber.StatusOK)
	failed := decodeJSON[stateResponse](t, response)
	if failed.View != services.ViewQuiz || !failed.Quiz.DiagnosticFailed {
		t.Fatalf("expected failed diagnostic on quiz view, got %#v", failed)
	}
	if failed.Notice == "" {
		t.Fatal("expected diagnostic failure notice")
	}
	if failed.State.User != nil {
		t.Fatal("user must not be created before the diagnostic succeeds")
	}

	ta.content.mu.Lock()
	ta.content.failDiagnostic = false
	ta.content.mu.Unlock()

	response = ta.mustStatus(t, http.MethodPost, "/api/quiz/retry", nil, fiber.StatusOK)
	retried := decodeJSON[stateResponse](t, response)
	if retried.View != services.ViewLanding {
		t.Fatalf("view after retry = %q, want landing", retried.View)
	}
	if retried.State.User == nil || retried.State.User.Name != "João" {
		t.Fatalf("expected user João after retry, got %#v", retried.State.User)
	}
}

func TestRestartQuizClearsAnswers(t *testing.T) {
	ta := newTestApp(t)

	ta.mustStatus(t, http.MethodPost, "/api/quiz/start", nil, fiber.StatusOK)
	ta.mustStatus(t, http.MethodPost, "/api/quiz/answer", fiber.Map{"profile": models.ProfileAction}, fiber.StatusOK)

	response := ta.mustStatus(t, http.MethodPost, "/api/quiz/restart", nil, fiber.StatusOK)
	restarted := decodeJSON[stateResponse](t, response)
	if restarted.Quiz.Step != services.QuizStepIntro || len(restarted.Quiz.Answers) != 0 {
		t.Fatalf("expected fresh quiz, got %#v", restarted.Quiz)
	}

	response = ta.mustStatus(t, http.MethodGet, "/api/quiz", nil, fiber.StatusOK)
	if quiz := decodeJSON[services.QuizSnapshot](t, response); quiz.Step != services.QuizStepIntro {
		t.Fatalf("GET /api/quiz step = %q", quiz.Step)
	}
}

func TestJourneyPersistsAcrossRestart(t *testing.T) {
	ta := newTestApp(t)
	ta.completeFunnel(t, "Maria")
	ta.mustStatus(t, http.MethodPost, "/api/days/1/complete", nil, fiber.StatusOK)

	reopened := newTestAppAt(t, ta.dbPath, &contentStub{})
	response := reopened.mustStatus(t, http.MethodGet, "/api/state", nil, fiber.StatusOK)
	snapshot := decodeJSON[stateResponse](t, response)
	if snapshot.View != services.ViewApp {
		t.Fatalf("view after restart = %q, want app", snapshot.View)
	}
	if snapshot.ShowWelcome {
		t.Fatal("welcome must not reappear after restart")
	}
	if len(snapshot.State.CompletedDays) != 1 || snapshot.State.CompletedDays[0] != 1 {
		t.Fatalf("completed days after restart = %v", snapshot.State.CompletedDays)
	}
}
