package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/quaresma/internal/models"
)

// View is the top-level screen of the funnel.
type View string

const (
	ViewQuiz    View = "quiz"
	ViewLanding View = "landing"
	ViewApp     View = "app"
)

var (
	ErrInvalidFunnelTransition = errors.New("invalid funnel transition")
	ErrLeadNameRequired        = errors.New("lead name is required")
)

// InitialView resumes into the app only when both the user and the quiz result survived.
func InitialView(state models.AppState) View {
	if state.User != nil && state.QuizResult != nil {
		return ViewApp
	}
	return ViewQuiz
}

// CompleteQuiz records the result. An existing user keeps its original start date.
func CompleteQuiz(state models.AppState, result models.QuizResult, userName string, now time.Time) models.AppState {
	next := state.Clone()
	next.QuizResult = &result
	if next.User == nil {
		user := models.NewUser(strings.TrimSpace(userName), now)
		next.User = &user
	}
	return next
}

func quizCompletedView(current View) (View, error) {
	if current != ViewQuiz {
		return current, ErrInvalidFunnelTransition
	}
	return ViewLanding, nil
}

func startedView(current View) (View, error) {
	if current != ViewLanding {
		return current, ErrInvalidFunnelTransition
	}
	return ViewApp, nil
}
