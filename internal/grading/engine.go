package grading

import (
	"errors"
	"fmt"
	"math"

	"github.com/pp-platform/exercise-engine/internal/models"
)

var (
	// ErrUnknownItemType is returned when an item carries a type the engine
	// has no matcher for. New types require a new matcher; there is no
	// generic fallback.
	ErrUnknownItemType = errors.New("unknown item type")

	// ErrUngradeableItem is returned when an item's content payload is
	// missing or does not match its declared type.
	ErrUngradeableItem = errors.New("item is not gradeable")

	// ErrMissingResponse is returned when the submitted response does not
	// carry the field the item type needs.
	ErrMissingResponse = errors.New("response payload missing for item type")
)

// Response carries a learner submission. Exactly one field group is
// consulted, chosen by the item's type; the others are ignored.
type Response struct {
	Choice     *bool             `json:"choice,omitempty"`     // true/false
	Selected   *string           `json:"selected,omitempty"`   // single choice key
	Values     map[string]string `json:"values,omitempty"`     // cloze blank key -> raw input
	Text       *string           `json:"text,omitempty"`       // dictation transcript
	Placements map[string]string `json:"placements,omitempty"` // drag entry id -> column id
}

// Grade evaluates a single item against the learner's response and returns
// an immutable judgment. Settings supplies the exercise-level sensitivity
// flags that dictation items inherit; the other types carry their own.
func Grade(item *models.Item, settings models.Settings, resp Response) (models.Result, error) {
	switch item.Type {
	case models.TrueFalse:
		if resp.Choice == nil {
			return models.Result{}, fmt.Errorf("%w: item %q wants a choice", ErrMissingResponse, item.ID)
		}
		return GradeTrueFalse(item, *resp.Choice)
	case models.SingleChoice:
		if resp.Selected == nil {
			return models.Result{}, fmt.Errorf("%w: item %q wants a selected key", ErrMissingResponse, item.ID)
		}
		return GradeSingleChoice(item, *resp.Selected)
	case models.Cloze:
		return GradeCloze(item, resp.Values)
	case models.Dictation:
		if resp.Text == nil {
			return models.Result{}, fmt.Errorf("%w: item %q wants a transcript", ErrMissingResponse, item.ID)
		}
		return GradeDictation(item, settings, *resp.Text)
	case models.DragDropText:
		return GradeDragDrop(item, resp.Placements)
	default:
		return models.Result{}, fmt.Errorf("%w: %q", ErrUnknownItemType, item.Type)
	}
}

// ScorePercent rounds correct/total to a whole percentage. A non-positive
// total yields 0 instead of dividing by zero.
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
