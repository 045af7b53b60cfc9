package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/models"
)

const (
	DefaultEncouragementDelay = 4 * time.Second
	DefaultDiagnosticDelay    = 4500 * time.Millisecond
)

var (
	ErrJourneyNotStarted    = errors.New("journey has not started")
	ErrCandleFieldsRequired = errors.New("candle person name and intention are required")
)

// ContentSource resolves generated content. Implementations never fail: they
// return a fallback literal or nil.
type ContentSource interface {
	DayContent(ctx context.Context, day int, userName string) *models.DayContent
	BibleReflection(ctx context.Context, day int) *models.BibleReflection
	QuizEncouragement(ctx context.Context, answers []models.VirtueProfile) models.QuizEncouragement
	QuizDiagnostic(ctx context.Context, profile models.VirtueProfile, answers []models.VirtueProfile) *models.QuizDiagnostic
	ShareableWord(ctx context.Context) models.ShareableWord
	CandleBlessing(ctx context.Context, intention string, personName string) models.CandleBlessing
}

type AppStateStore interface {
	Load() models.AppState
	Save(state models.AppState)
}

type ControllerOptions struct {
	Clock              Clock
	EncouragementDelay time.Duration
	DiagnosticDelay    time.Duration
	BonusCheckoutURL   string
}

type Snapshot struct {
	View        View            `json:"view"`
	State       models.AppState `json:"state"`
	ShowWelcome bool            `json:"showWelcome"`
	Quiz        QuizSnapshot    `json:"quiz"`
}

type DayView struct {
	Day         int                `json:"day"`
	Headline    string             `json:"headline"`
	IsMilestone bool               `json:"isMilestone"`
	IsFinal     bool               `json:"isFinal"`
	IsCompleted bool               `json:"isCompleted"`
	Notes       models.DayNote     `json:"notes"`
	BonusPanel  bool               `json:"bonusPanel"`
	FinalBonus  bool               `json:"finalBonus"`
	Bonus       *DayBonus          `json:"bonus,omitempty"`
	Open        bool               `json:"open"`
	Content     *models.DayContent `json:"content"`
	Stale       bool               `json:"stale"`
}

type ReflectionView struct {
	Day        int                     `json:"day"`
	Reflection *models.BibleReflection `json:"reflection"`
	Stale      bool                    `json:"stale"`
}

type DashboardView struct {
	UserName                string        `json:"userName"`
	ProgressPercent         int           `json:"progressPercent"`
	CurrentDay              int           `json:"currentDay"`
	CompletedCount          int           `json:"completedCount"`
	RemainingDays           int           `json:"remainingDays"`
	LastCompletionTimestamp *int64        `json:"lastCompletionTimestamp"`
	Status                  JourneyStatus `json:"status"`
	NextDay                 *int          `json:"nextDay"`
	SelectedDay             *int          `json:"selectedDay"`
	Tiles                   []DayTile     `json:"tiles"`
}

// Controller owns the application state. Every mutation runs under one lock:
// the reducer output replaces the snapshot and the store write comes last.
// Content fetches and pacing delays run outside the lock and are applied only
// while the token they were issued under is still current.
type Controller struct {
	store   AppStateStore
	content ContentSource
	clock   Clock
	log     *logger.Logger

	encouragementDelay time.Duration
	diagnosticDelay    time.Duration
	bonusCheckoutURL   string

	mu              sync.Mutex
	state           models.AppState
	view            View
	showWelcome     bool
	quiz            *QuizSession
	dayToken        uint64
	reflectionToken uint64
}

func NewController(store AppStateStore, content ContentSource, options ControllerOptions, log *logger.Logger) *Controller {
	clock := options.Clock
	if clock == nil {
		clock = SystemClock()
	}
	encouragementDelay := options.EncouragementDelay
	if encouragementDelay <= 0 {
		encouragementDelay = DefaultEncouragementDelay
	}
	diagnosticDelay := options.DiagnosticDelay
	if diagnosticDelay <= 0 {
		diagnosticDelay = DefaultDiagnosticDelay
	}

	state := store.Load()
	controller := &Controller{
		store:              store,
		content:            content,
		clock:              clock,
		log:                logger.OrNop(log).With("service", "Controller"),
		encouragementDelay: encouragementDelay,
		diagnosticDelay:    diagnosticDelay,
		bonusCheckoutURL:   options.BonusCheckoutURL,
		state:              state,
		view:               InitialView(state),
		quiz:               NewQuizSession(),
	}
	controller.log.Info("journey loaded", "view", controller.view, "completed_days", len(state.CompletedDays))
	return controller
}

func (controller *Controller) applyLocked(reduce func(models.AppState) models.AppState) {
	next := reduce(controller.state)
	controller.state = next
	controller.store.Save(next)
}

func (controller *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		View:        controller.view,
		State:       controller.state.Clone(),
		ShowWelcome: controller.showWelcome,
		Quiz:        controller.quiz.Snapshot(),
	}
}

func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

func (controller *Controller) State() models.AppState {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state.Clone()
}

func (controller *Controller) requireViewLocked(view View) error {
	if controller.view == view {
		return nil
	}
	if view == ViewApp {
		return ErrJourneyNotStarted
	}
	return ErrInvalidFunnelTransition
}

func (controller *Controller) StartQuiz(ctx context.Context) (Snapshot, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err := controller.requireViewLocked(ViewQuiz); err != nil {
		return controller.snapshotLocked(), err
	}
	if err := controller.quiz.Start(ctx); err != nil {
		return controller.snapshotLocked(), err
	}
	return controller.snapshotLocked(), nil
}

// AnswerQuiz records one answer. After the second and the last answer it blocks
// for max(encouragement fetch, encouragement delay) before advancing.
func (controller *Controller) AnswerQuiz(ctx context.Context, profile models.VirtueProfile) (Snapshot, error) {
	controller.mu.Lock()
	if err := controller.requireViewLocked(ViewQuiz); err != nil {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	pause, err := controller.quiz.RecordAnswer(profile)
	if err != nil || !pause {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	generation := controller.quiz.Generation()
	answers := controller.quiz.Answers()
	controller.mu.Unlock()

	started := controller.clock.Now()
	encouragement := controller.content.QuizEncouragement(ctx, answers)
	holdAtLeast(controller.clock, started, controller.encouragementDelay)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	current, err := controller.quiz.FinishEncouragement(ctx, generation, encouragement.Message)
	if !current {
		controller.log.Debug("discarding stale quiz encouragement", "generation", generation)
	}
	return controller.snapshotLocked(), err
}

func (controller *Controller) SubmitLead(ctx context.Context, name string) (Snapshot, error) {
	controller.mu.Lock()
	if err := controller.requireViewLocked(ViewQuiz); err != nil {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	if err := controller.quiz.SubmitLead(ctx, name); err != nil {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	generation := controller.quiz.Generation()
	answers := controller.quiz.Answers()
	leadName := controller.quiz.LeadName()
	controller.mu.Unlock()

	return controller.resolveDiagnostic(ctx, generation, answers, leadName), nil
}

// RetryDiagnostic re-issues the diagnostic fetch after a failed attempt.
func (controller *Controller) RetryDiagnostic(ctx context.Context) (Snapshot, error) {
	controller.mu.Lock()
	if err := controller.requireViewLocked(ViewQuiz); err != nil {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	if err := controller.quiz.BeginRetry(); err != nil {
		defer controller.mu.Unlock()
		return controller.snapshotLocked(), err
	}
	generation := controller.quiz.Generation()
	answers := controller.quiz.Answers()
	leadName := controller.quiz.LeadName()
	controller.mu.Unlock()

	return controller.resolveDiagnostic(ctx, generation, answers, leadName), nil
}

func (controller *Controller) resolveDiagnostic(ctx context.Context, generation uint64, answers []models.VirtueProfile, leadName string) Snapshot {
	profile := DominantProfile(answers)

	started := controller.clock.Now()
	diagnostic := controller.content.QuizDiagnostic(ctx, profile, answers)
	holdAtLeast(controller.clock, started, controller.diagnosticDelay)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.quiz.FinishDiagnostic(generation, diagnostic != nil) || controller.view != ViewQuiz {
		controller.log.Debug("discarding stale quiz diagnostic", "generation", generation)
		return controller.snapshotLocked()
	}
	if diagnostic == nil {
		controller.log.Warn("quiz diagnostic unavailable", "profile", profile)
		return controller.snapshotLocked()
	}

	result := models.QuizResult{
		Profile:    profile,
		Diagnostic: diagnostic.Diagnostic,
		Verse:      diagnostic.Verse,
		Reference:  diagnostic.Reference,
	}
	next, err := quizCompletedView(controller.view)
	if err != nil {
		return controller.snapshotLocked()
	}
	controller.view = next
	now := controller.clock.Now()
	controller.applyLocked(func(state models.AppState) models.AppState {
		return CompleteQuiz(state, result, leadName, now)
	})
	controller.log.Info("quiz completed", "profile", profile)
	return controller.snapshotLocked()
}

// RestartQuiz returns the quiz to its intro and invalidates pending results.
func (controller *Controller) RestartQuiz() (Snapshot, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err := controller.requireViewLocked(ViewQuiz); err != nil {
		return controller.snapshotLocked(), err
	}
	controller.quiz.Restart()
	return controller.snapshotLocked(), nil
}

// StartJourney leaves the landing page and raises the welcome flag.
func (controller *Controller) StartJourney() (Snapshot, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	next, err := startedView(controller.view)
	if err != nil {
		return controller.snapshotLocked(), err
	}
	controller.view = next
	controller.showWelcome = true
	return controller.snapshotLocked(), nil
}

func (controller *Controller) DismissWelcome() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.showWelcome = false
	return controller.snapshotLocked()
}

func (controller *Controller) Dashboard() (DashboardView, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err := controller.requireViewLocked(ViewApp); err != nil {
		return DashboardView{}, err
	}
	state := controller.state.Clone()
	dashboard := DashboardView{
		ProgressPercent:         ProgressPercent(state),
		CurrentDay:              CurrentDevotionalDay(state),
		CompletedCount:          len(state.CompletedDays),
		RemainingDays:           RemainingDays(state),
		LastCompletionTimestamp: state.LastCompletionTimestamp,
		Status:                  JourneyStatusOf(state),
		SelectedDay:             state.SelectedDay,
		Tiles:                   DayTiles(state),
	}
	if state.User != nil {
		dashboard.UserName = state.User.Name
	}
	if next, ok := NextDayToOpen(state); ok {
		dashboard.NextDay = &next
	}
	return dashboard, nil
}

func (controller *Controller) dayViewLocked(day int) DayView {
	return DayView{
		Day:         day,
		Headline:    DayHeadline(day),
		IsMilestone: IsMilestone(day),
		IsFinal:     IsFinal(day),
		IsCompleted: controller.state.IsDayCompleted(day),
		Notes:       controller.state.DayNotes[day],
		BonusPanel:  BonusPanelEligible(day, controller.state),
		FinalBonus:  FinalBonusEligible(day),
		Bonus:       DayBonusFor(day, controller.state, controller.bonusCheckoutURL),
		Open:        controller.state.SelectedDay != nil && *controller.state.SelectedDay == day,
	}
}

// OpenDay selects day and issues exactly one content fetch for it. The result is
// dropped if the view was closed or another day opened meanwhile.
func (controller *Controller) OpenDay(ctx context.Context, day int) (DayView, error) {
	if err := ValidateDay(day); err != nil {
		return DayView{}, err
	}

	controller.mu.Lock()
	if err := controller.requireViewLocked(ViewApp); err != nil {
		controller.mu.Unlock()
		return DayView{}, err
	}
	controller.applyLocked(func(state models.AppState) models.AppState {
		return SelectDay(state, day)
	})
	controller.dayToken++
	token := controller.dayToken
	userName := ""
	if controller.state.User != nil {
		userName = controller.state.User.Name
	}
	controller.mu.Unlock()

	content := controller.content.DayContent(ctx, day, userName)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	view := controller.dayViewLocked(day)
	if token != controller.dayToken || !view.Open {
		controller.log.Debug("discarding stale day content", "day", day)
		view.Stale = true
		return view, nil
	}
	view.Content = content
	return view, nil
}

// CloseDay closes the detail view. Notes are left as they are.
func (controller *Controller) CloseDay() (Snapshot, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err := controller.requireViewLocked(ViewApp); err != nil {
		return controller.snapshotLocked(), err
	}
	controller.dayToken++
	controller.applyLocked(DeselectDay)
	return controller.snapshotLocked(), nil
}

// FinishDay completes day with note and closes the detail view unless the day
// keeps it open for its bonus.
func (controller *Controller) FinishDay(day int, note models.DayNote) (DayView, error) {
	if err := ValidateDay(day); err != nil {
		return DayView{}, err
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err := controller.requireViewLocked(ViewApp); err != nil {
		return DayView{}, err
	}
	closes := ClosesAfterFinish(day)
	if closes {
		controller.dayToken++
	}
	nowMillis := controller.clock.Now().UnixMilli()
	controller.applyLocked(func(state models.AppState) models.AppState {
		next := CompleteDay(state, day, note, nowMillis)
		if closes {
			next = DeselectDay(next)
		}
		return next
	})
	controller.log.Info("day finished", "day", day, "completed_days", len(controller.state.CompletedDays))
	return controller.dayViewLocked(day), nil
}

// Reflection fetches the bible reflection for the current devotional day.
// Calling it again is the manual retry.
func (controller *Controller) Reflection(ctx context.Context) (ReflectionView, error) {
	controller.mu.Lock()
	if err := controller.requireViewLocked(ViewApp); err != nil {
		controller.mu.Unlock()
		return ReflectionView{}, err
	}
	day := CurrentDevotionalDay(controller.state)
	controller.reflectionToken++
	token := controller.reflectionToken
	controller.mu.Unlock()

	reflection := controller.content.BibleReflection(ctx, day)

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if token != controller.reflectionToken || day != CurrentDevotionalDay(controller.state) {
		return ReflectionView{Day: day, Stale: true}, nil
	}
	return ReflectionView{Day: day, Reflection: reflection}, nil
}

func (controller *Controller) ShareableWord(ctx context.Context) models.ShareableWord {
	return controller.content.ShareableWord(ctx)
}

func (controller *Controller) LightCandle(ctx context.Context, intention string, personName string) (models.CandleBlessing, error) {
	intention = strings.TrimSpace(intention)
	personName = strings.TrimSpace(personName)
	if intention == "" || personName == "" {
		return models.CandleBlessing{}, ErrCandleFieldsRequired
	}
	return controller.content.CandleBlessing(ctx, intention, personName), nil
}
