package models

import "time"

// BlankResult records one blank's judgment inside a cloze or dictation item.
type BlankResult struct {
	Key      string   `json:"key"`
	OK       bool     `json:"ok"`
	Value    string   `json:"value"`
	Answers  []string `json:"answers"`
	Feedback string   `json:"feedback,omitempty"`
}

// Placement records where one drag-and-drop entry ended up. PlacedColumn is
// nil when the entry was never moved out of the tray.
type Placement struct {
	ID            string  `json:"id"`
	PlacedColumn  *string `json:"placed_column"`
	CorrectColumn string  `json:"correct_column"`
	OK            bool    `json:"ok"`
}

// Result is the recorded outcome of grading one item. It carries enough to
// re-render the item in its locked state and to rebuild the summary without
// re-grading; only the fields matching the item type are populated.
type Result struct {
	ItemID   string       `json:"item_id"`
	Type     ExerciseType `json:"type"`
	Correct  bool         `json:"correct"`
	Feedback string       `json:"feedback,omitempty"`
	Checked  bool         `json:"checked"`

	Choice   *bool   `json:"choice,omitempty"`   // true/false
	Selected *string `json:"selected,omitempty"` // single choice
	Value    *string `json:"value,omitempty"`    // dictation raw submission

	Blanks []BlankResult `json:"blanks,omitempty"` // cloze

	Placements   []Placement `json:"placements,omitempty"` // drag and drop
	CorrectCount int         `json:"correct_count,omitempty"`
	Total        int         `json:"total,omitempty"`
}

// SessionState is the single source of truth for one learner's run through
// an exercise. Rendering reads from it; it is mutated only by Apply and by
// navigation.
type SessionState struct {
	ExerciseID  string            `json:"exercise_id"`
	Index       int               `json:"index"`
	Correct     int               `json:"correct"`
	Responses   map[string]Result `json:"responses"`
	StartedAt   time.Time         `json:"started_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

func NewSessionState(exerciseID string) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		ExerciseID: exerciseID,
		Responses:  make(map[string]Result),
		StartedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply records a grading result and adjusts the running score by the net
// judgment delta. Every evaluation event goes through here: either a new
// entry is inserted, or an existing entry's judgment is corrected with a
// signed adjustment. The prior stored judgment is always consulted first,
// so re-answering or re-rendering can never double-count.
func (s *SessionState) Apply(r Result) {
	if s.Responses == nil {
		s.Responses = make(map[string]Result)
	}
	prev, answered := s.Responses[r.ItemID]
	switch {
	case !answered && r.Correct:
		s.Correct++
	case answered && prev.Correct && !r.Correct:
		s.Correct--
	case answered && !prev.Correct && r.Correct:
		s.Correct++
	}
	s.Responses[r.ItemID] = r
	s.UpdatedAt = time.Now().UTC()
}

// Answered reports whether the item already has a recorded result.
func (s *SessionState) Answered(itemID string) bool {
	_, ok := s.Responses[itemID]
	return ok
}

// Reset returns the session to a fresh start-of-exercise state; used by Retry.
func (s *SessionState) Reset() {
	s.Index = 0
	s.Correct = 0
	s.Responses = make(map[string]Result)
	s.CompletedAt = nil
	s.UpdatedAt = time.Now().UTC()
}
