package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/models"
)

// StorageKey carries the schema version; bump the suffix on any breaking change.
// Rows stored under older keys are left behind untouched.
const StorageKey = "quaresma_app_state_v5"

var ErrStateResetFailed = errors.New("reset state failed")

type StateRepository interface {
	Find(key string) (models.StateEntry, bool, error)
	Put(key string, value string) error
}

type StateStore struct {
	repo StateRepository
	key  string
	log  *logger.Logger
}

func NewStateStore(repo StateRepository, log *logger.Logger) *StateStore {
	return &StateStore{
		repo: repo,
		key:  StorageKey,
		log:  logger.OrNop(log).With("service", "StateStore"),
	}
}

// Load never fails: a missing, unreadable or malformed entry yields the default state.
func (store *StateStore) Load() models.AppState {
	entry, found, err := store.repo.Find(store.key)
	if err != nil {
		store.log.Error("load app state failed", "key", store.key, "error", err.Error())
		return models.DefaultAppState()
	}
	if !found {
		return models.DefaultAppState()
	}

	state, err := decodeAppState(entry.Value)
	if err != nil {
		store.log.Warn("discarding malformed app state", "key", store.key, "error", err.Error())
		return models.DefaultAppState()
	}
	return state
}

// Save writes the whole snapshot. Failures are logged and otherwise ignored.
func (store *StateStore) Save(state models.AppState) {
	encoded, err := json.Marshal(normalizeAppState(state))
	if err != nil {
		store.log.Error("encode app state failed", "error", err.Error())
		return
	}
	if err := store.repo.Put(store.key, string(encoded)); err != nil {
		store.log.Error("save app state failed", "key", store.key, "error", err.Error())
	}
}

// Reset persists ResetJourney under the current key. Unlike Save it reports
// failures, since it is an explicit user action.
func (store *StateStore) Reset() error {
	encoded, err := json.Marshal(ResetJourney())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateResetFailed, err)
	}
	if err := store.repo.Put(store.key, string(encoded)); err != nil {
		return fmt.Errorf("%w: %v", ErrStateResetFailed, err)
	}
	store.log.Info("app state reset", "key", store.key)
	return nil
}

func decodeAppState(raw string) (models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.AppState{}, err
	}
	return normalizeAppState(state), nil
}

// normalizeAppState enforces the range and uniqueness rules on data that may
// have been written by an older or buggy client.
func normalizeAppState(state models.AppState) models.AppState {
	normalized := state.Clone()

	days := make([]int, 0, len(normalized.CompletedDays))
	seen := make(map[int]struct{}, len(normalized.CompletedDays))
	for _, day := range normalized.CompletedDays {
		if !models.IsJourneyDay(day) {
			continue
		}
		if _, duplicate := seen[day]; duplicate {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	normalized.CompletedDays = days

	if normalized.SelectedDay != nil && !models.IsJourneyDay(*normalized.SelectedDay) {
		normalized.SelectedDay = nil
	}

	for day := range normalized.DayNotes {
		if !models.IsJourneyDay(day) {
			delete(normalized.DayNotes, day)
		}
	}

	if normalized.QuizResult != nil && !models.IsValidVirtueProfile(normalized.QuizResult.Profile) {
		normalized.QuizResult = nil
	}
	return normalized
}
