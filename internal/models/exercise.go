package models

import (
	"encoding/json"
	"regexp"
)

type ExerciseType string

const (
	TrueFalse    ExerciseType = "true_false"
	SingleChoice ExerciseType = "single_choice"
	Cloze        ExerciseType = "cloze"
	DragDropText ExerciseType = "dnd_text"
	Dictation    ExerciseType = "dictation"
)

// ExerciseTypes lists every supported type. The grading engine dispatches
// over this closed set; an unknown type is a definition error, never a
// silent fallback.
var ExerciseTypes = []ExerciseType{TrueFalse, SingleChoice, Cloze, DragDropText, Dictation}

func (t ExerciseType) Valid() bool {
	for _, known := range ExerciseTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Exercise struct {
	ID           string       `json:"id" validate:"required"`
	Title        string       `json:"title" validate:"required,min=1,max=200"`
	Type         ExerciseType `json:"type" validate:"required,exercise_type"`
	Instructions string       `json:"instructions,omitempty"`
	Items        []Item       `json:"items" validate:"required,min=1,dive"`
	Settings     Settings     `json:"settings"`
	Version      int          `json:"version,omitempty"`
}

// Settings is the union of the per-type authoring options. Dictation reads
// the three *_sensitive flags; DragDrop reads the board options; MCQ reads
// Shuffle. Unused flags are ignored by the other matchers.
type Settings struct {
	PassThreshold        int  `json:"pass_threshold" validate:"min=0,max=100"`
	Shuffle              bool `json:"shuffle,omitempty"`
	ShuffleItems         bool `json:"shuffle_items,omitempty"`
	AllowPartialSubmit   bool `json:"allow_partial_submit,omitempty"`
	ShowHints            bool `json:"show_hints,omitempty"`
	MaxColumns           int  `json:"max_columns,omitempty"`
	CaseSensitive        bool `json:"case_sensitive,omitempty"`
	PunctuationSensitive bool `json:"punctuation_sensitive,omitempty"`
	AccentSensitive      bool `json:"accent_sensitive,omitempty"`
}

// ItemByID returns the item with the given id, or nil.
func (e *Exercise) ItemByID(id string) *Item {
	for i := range e.Items {
		if e.Items[i].ID == id {
			return &e.Items[i]
		}
	}
	return nil
}

// Media references are opaque to the engine and passed through to the
// rendering layer untouched.
type Media struct {
	Image      *string `json:"image,omitempty"`
	ImageAlt   *string `json:"image_alt,omitempty"`
	Audio      *string `json:"audio,omitempty"`
	Video      *string `json:"video,omitempty"`
	YouTubeURL *string `json:"youtube_url,omitempty"`
}

// Item is a closed tagged union: Type selects which content pointer is set,
// and the definition validator enforces that exactly one is.
type Item struct {
	ID                string       `json:"id" validate:"required"`
	Type              ExerciseType `json:"type" validate:"required,exercise_type"`
	Hint              *string      `json:"hint,omitempty"`
	FeedbackCorrect   *string      `json:"feedback_correct,omitempty"`
	FeedbackIncorrect *string      `json:"feedback_incorrect,omitempty"`
	Media             *Media       `json:"media,omitempty"`

	TrueFalse    *TrueFalseContent    `json:"true_false,omitempty"`
	SingleChoice *SingleChoiceContent `json:"single_choice,omitempty"`
	Cloze        *ClozeContent        `json:"cloze,omitempty"`
	DragDrop     *DragDropContent     `json:"dnd_text,omitempty"`
	Dictation    *DictationContent    `json:"dictation,omitempty"`
}

type TrueFalseContent struct {
	Prompt string `json:"prompt"`
	Answer bool   `json:"answer"`

	// Per-choice feedback overrides; resolution falls back to the item's
	// generic feedback, then the built-in default.
	FeedbackTrueCorrect    *string `json:"feedback_true_correct,omitempty"`
	FeedbackFalseCorrect   *string `json:"feedback_false_correct,omitempty"`
	FeedbackTrueIncorrect  *string `json:"feedback_true_incorrect,omitempty"`
	FeedbackFalseIncorrect *string `json:"feedback_false_incorrect,omitempty"`
}

type Choice struct {
	Key               string  `json:"key" validate:"required"`
	Label             string  `json:"label" validate:"required"`
	FeedbackIncorrect *string `json:"feedback_incorrect,omitempty"`
}

type SingleChoiceContent struct {
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices" validate:"required,min=2,dive"`
	Answer  string   `json:"answer" validate:"required"`
}

type Blank struct {
	Key     string   `json:"key" validate:"required"`
	Answers []string `json:"answers"`

	CaseSensitive bool `json:"case_sensitive"`
	// nil means true: authors rarely set the flag and the original format
	// treats absence as "strip accents".
	NormalizeAccents     *bool `json:"normalize_accents,omitempty"`
	PunctuationSensitive bool  `json:"punctuation_sensitive,omitempty"`

	Hint              *string `json:"hint,omitempty"`
	FeedbackCorrect   *string `json:"feedback_correct,omitempty"`
	FeedbackIncorrect *string `json:"feedback_incorrect,omitempty"`
}

// StripAccents reports whether grading should fold diacritics for this blank.
func (b *Blank) StripAccents() bool {
	return b.NormalizeAccents == nil || *b.NormalizeAccents
}

type ClozeContent struct {
	Prompt string  `json:"prompt" validate:"required"`
	Blanks []Blank `json:"blanks" validate:"required,min=1,dive"`
}

var blankTokenPattern = regexp.MustCompile(`\[\[(B\d+)\]\]`)

// PromptKeys returns the blank keys referenced by the prompt, in order of
// appearance. Keys may legitimately differ from the Blanks list when the
// author made a mistake; grading treats such tokens as always incorrect.
func (c *ClozeContent) PromptKeys() []string {
	matches := blankTokenPattern.FindAllStringSubmatch(c.Prompt, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}

// BlankByKey returns the blank definition for key, or nil when the prompt
// references a token the author never defined.
func (c *ClozeContent) BlankByKey(key string) *Blank {
	for i := range c.Blanks {
		if c.Blanks[i].Key == key {
			return &c.Blanks[i]
		}
	}
	return nil
}

type DragColumn struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label"`
}

type DragEntry struct {
	ID            string `json:"id" validate:"required"`
	Text          string `json:"text"`
	CorrectColumn string `json:"correct_column"`

	Hint              *string `json:"hint,omitempty"`
	FeedbackCorrect   *string `json:"feedback_correct,omitempty"`
	FeedbackIncorrect *string `json:"feedback_incorrect,omitempty"`
	Media             *Media  `json:"media,omitempty"`
}

type DragDropContent struct {
	Columns []DragColumn `json:"columns" validate:"required,min=2,dive"`
	Entries []DragEntry  `json:"items" validate:"required,min=1,dive"`
}

// HasColumn reports whether id names a defined column. An entry whose
// correct_column is missing is gradable, just never correct.
func (c *DragDropContent) HasColumn(id string) bool {
	for _, col := range c.Columns {
		if col.ID == id {
			return true
		}
	}
	return false
}

type DictationContent struct {
	Prompt string     `json:"prompt,omitempty"`
	Answer AnswerList `json:"answer"`
}

// AnswerList accepts either a single string or an alternation list, the two
// shapes the authoring tool emits.
type AnswerList []string

func (a *AnswerList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*a = nil
		} else {
			*a = AnswerList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*a = AnswerList(many)
	return nil
}
