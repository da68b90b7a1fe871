package models

import "time"

// ReviewEntry is one row of the end-of-exercise report. Everything here is
// derived from the recorded Result; building a summary never re-grades.
type ReviewEntry struct {
	ItemID        string       `json:"item_id"`
	Index         int          `json:"index"`
	Type          ExerciseType `json:"type"`
	Correct       bool         `json:"correct"`
	Prompt        string       `json:"prompt"`
	YourAnswer    string       `json:"your_answer"`
	CorrectAnswer string       `json:"correct_answer"`
	Feedback      string       `json:"feedback,omitempty"`

	Blanks     []BlankResult `json:"blanks,omitempty"`
	Placements []Placement   `json:"placements,omitempty"`
}

type Summary struct {
	ExerciseID  string        `json:"exercise_id"`
	Title       string        `json:"title"`
	Score       int           `json:"score"`
	Total       int           `json:"total"`
	Percent     int           `json:"percent"`
	Passed      bool          `json:"passed"`
	Review      []ReviewEntry `json:"review"`
	CompletedAt time.Time     `json:"completed_at"`
}
