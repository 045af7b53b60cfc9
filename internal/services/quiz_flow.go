package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/fsm"
	"github.com/terraincognita07/quaresma/internal/models"
)

type QuizStep string

const (
	QuizStepIntro     QuizStep = "intro"
	QuizStepQuestions QuizStep = "questions"
	QuizStepLead      QuizStep = "lead"
	QuizStepLoading   QuizStep = "loading"
)

const QuizQuestionCount = 4

const (
	quizEventStart      = "start"
	quizEventFinish     = "finish_questions"
	quizEventSubmitLead = "submit_lead"
)

var (
	ErrQuizStepInvalid   = errors.New("quiz step does not allow this action")
	ErrQuizBusy          = errors.New("quiz is waiting for generated content")
	ErrInvalidProfile    = errors.New("invalid virtue profile")
	ErrQuizNotRetryable  = errors.New("quiz diagnostic is not retryable")
	ErrQuizAnswersFilled = errors.New("all quiz questions already answered")
)

// QuizSnapshot is the read model of one quiz run.
type QuizSnapshot struct {
	Step             QuizStep               `json:"step"`
	Question         int                    `json:"question"`
	Answers          []models.VirtueProfile `json:"answers"`
	Encouragement    string                 `json:"encouragement,omitempty"`
	Pending          bool                   `json:"pending"`
	DiagnosticFailed bool                   `json:"diagnosticFailed"`
	LeadName         string                 `json:"leadName,omitempty"`
}

// QuizSession tracks the quiz sub-steps. It is not persisted and not safe for
// concurrent use; the controller serializes access to it.
type QuizSession struct {
	machine          *fsm.FSM
	answers          []models.VirtueProfile
	encouragement    string
	leadName         string
	pending          bool
	diagnosticFailed bool
	generation       uint64
}

func NewQuizSession() *QuizSession {
	return &QuizSession{machine: newQuizMachine()}
}

func newQuizMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(QuizStepIntro),
		fsm.Events{
			{Name: quizEventStart, Src: []string{string(QuizStepIntro)}, Dst: string(QuizStepQuestions)},
			{Name: quizEventFinish, Src: []string{string(QuizStepQuestions)}, Dst: string(QuizStepLead)},
			{Name: quizEventSubmitLead, Src: []string{string(QuizStepLead)}, Dst: string(QuizStepLoading)},
		},
		fsm.Callbacks{},
	)
}

func (session *QuizSession) Step() QuizStep {
	return QuizStep(session.machine.Current())
}

// Generation changes on every restart; results carrying an older generation are stale.
func (session *QuizSession) Generation() uint64 {
	return session.generation
}

func (session *QuizSession) Answers() []models.VirtueProfile {
	return append([]models.VirtueProfile(nil), session.answers...)
}

func (session *QuizSession) LeadName() string {
	return session.leadName
}

func (session *QuizSession) fire(ctx context.Context, event string) error {
	if !session.machine.Can(event) {
		return ErrQuizStepInvalid
	}
	if err := session.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("quiz %s: %w", event, err)
	}
	return nil
}

func (session *QuizSession) Start(ctx context.Context) error {
	return session.fire(ctx, quizEventStart)
}

// RecordAnswer reports whether the answer opens an encouragement pause.
func (session *QuizSession) RecordAnswer(profile models.VirtueProfile) (bool, error) {
	if session.Step() != QuizStepQuestions {
		return false, ErrQuizStepInvalid
	}
	if session.pending {
		return false, ErrQuizBusy
	}
	if !models.IsValidVirtueProfile(profile) {
		return false, ErrInvalidProfile
	}
	if len(session.answers) >= QuizQuestionCount {
		return false, ErrQuizAnswersFilled
	}

	session.answers = append(session.answers, profile)
	session.encouragement = ""
	if isEncouragementPoint(len(session.answers)) {
		session.pending = true
		return true, nil
	}
	return false, nil
}

func isEncouragementPoint(answered int) bool {
	return answered == 2 || answered == QuizQuestionCount
}

// FinishEncouragement ends a pause started by RecordAnswer. After the last
// question the session moves on to the lead form.
func (session *QuizSession) FinishEncouragement(ctx context.Context, generation uint64, message string) (bool, error) {
	if generation != session.generation || !session.pending {
		return false, nil
	}
	session.pending = false
	session.encouragement = message
	if len(session.answers) == QuizQuestionCount {
		if err := session.fire(ctx, quizEventFinish); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (session *QuizSession) SubmitLead(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if session.Step() != QuizStepLead {
		return ErrQuizStepInvalid
	}
	if trimmed == "" {
		return ErrLeadNameRequired
	}
	if err := session.fire(ctx, quizEventSubmitLead); err != nil {
		return err
	}
	session.leadName = trimmed
	session.encouragement = ""
	session.pending = true
	session.diagnosticFailed = false
	return nil
}

// BeginRetry re-arms the diagnostic fetch after a failed attempt.
func (session *QuizSession) BeginRetry() error {
	if session.Step() != QuizStepLoading || session.pending || !session.diagnosticFailed {
		return ErrQuizNotRetryable
	}
	session.pending = true
	session.diagnosticFailed = false
	return nil
}

// FinishDiagnostic records the outcome of a diagnostic fetch and reports
// whether it still belongs to the current run.
func (session *QuizSession) FinishDiagnostic(generation uint64, succeeded bool) bool {
	if generation != session.generation || !session.pending || session.Step() != QuizStepLoading {
		return false
	}
	session.pending = false
	session.diagnosticFailed = !succeeded
	return true
}

func (session *QuizSession) Restart() {
	session.generation++
	session.machine = newQuizMachine()
	session.answers = nil
	session.encouragement = ""
	session.leadName = ""
	session.pending = false
	session.diagnosticFailed = false
}

func (session *QuizSession) Snapshot() QuizSnapshot {
	snapshot := QuizSnapshot{
		Step:             session.Step(),
		Answers:          session.Answers(),
		Encouragement:    session.encouragement,
		Pending:          session.pending,
		DiagnosticFailed: session.diagnosticFailed,
		LeadName:         session.leadName,
	}
	if snapshot.Answers == nil {
		snapshot.Answers = []models.VirtueProfile{}
	}
	if snapshot.Step == QuizStepQuestions {
		snapshot.Question = min(len(session.answers)+1, QuizQuestionCount)
		if session.pending {
			snapshot.Question = len(session.answers)
		}
	}
	return snapshot
}

// DominantProfile picks the most frequent answer. Ties go to the profile that
// was answered first.
func DominantProfile(answers []models.VirtueProfile) models.VirtueProfile {
	counts := make(map[models.VirtueProfile]int, len(answers))
	for _, answer := range answers {
		counts[answer]++
	}

	var dominant models.VirtueProfile
	best := 0
	for _, answer := range answers {
		if counts[answer] > best {
			best = counts[answer]
			dominant = answer
		}
	}
	return dominant
}
