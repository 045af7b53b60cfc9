package models

// AppState is the single persisted record of a journey.
type AppState struct {
	User                    *User           `json:"user"`
	CompletedDays           []int           `json:"completedDays"`
	SelectedDay             *int            `json:"selectedDay"`
	LastCompletionTimestamp *int64          `json:"lastCompletionTimestamp"`
	DayNotes                map[int]DayNote `json:"dayNotes"`
	QuizResult              *QuizResult     `json:"quizResult"`
}

func DefaultAppState() AppState {
	return AppState{
		CompletedDays: []int{},
		DayNotes:      map[int]DayNote{},
	}
}

// Clone returns a deep copy so reducers never share memory with a previous snapshot.
func (state AppState) Clone() AppState {
	cloned := AppState{
		CompletedDays: make([]int, len(state.CompletedDays)),
		DayNotes:      make(map[int]DayNote, len(state.DayNotes)),
	}
	copy(cloned.CompletedDays, state.CompletedDays)
	for day, note := range state.DayNotes {
		cloned.DayNotes[day] = note
	}
	if state.User != nil {
		user := *state.User
		cloned.User = &user
	}
	if state.SelectedDay != nil {
		selected := *state.SelectedDay
		cloned.SelectedDay = &selected
	}
	if state.LastCompletionTimestamp != nil {
		timestamp := *state.LastCompletionTimestamp
		cloned.LastCompletionTimestamp = &timestamp
	}
	if state.QuizResult != nil {
		result := *state.QuizResult
		cloned.QuizResult = &result
	}
	return cloned
}

func (state AppState) IsDayCompleted(day int) bool {
	for _, completed := range state.CompletedDays {
		if completed == day {
			return true
		}
	}
	return false
}
