package grading

import (
	"fmt"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// GradeTrueFalse compares the learner's choice with the authored answer.
// Feedback resolves from the per-choice override, then the item-level
// message, then the shared default.
func GradeTrueFalse(item *models.Item, choice bool) (models.Result, error) {
	content := item.TrueFalse
	if content == nil {
		return models.Result{}, fmt.Errorf("%w: item %q has no true/false content", ErrUngradeableItem, item.ID)
	}

	correct := choice == content.Answer

	var feedback string
	if correct {
		override := content.FeedbackTrueCorrect
		if !choice {
			override = content.FeedbackFalseCorrect
		}
		feedback = resolveFeedback(DefaultCorrectFeedback, override, item.FeedbackCorrect)
	} else {
		override := content.FeedbackTrueIncorrect
		if !choice {
			override = content.FeedbackFalseIncorrect
		}
		feedback = resolveFeedback(DefaultRetryFeedback, override, item.FeedbackIncorrect)
	}

	return models.Result{
		ItemID:   item.ID,
		Type:     item.Type,
		Correct:  correct,
		Feedback: feedback,
		Checked:  true,
		Choice:   models.BoolPtr(choice),
	}, nil
}
