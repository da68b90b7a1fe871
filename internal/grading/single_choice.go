package grading

import (
	"fmt"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// GradeSingleChoice compares the selected choice key with the authored
// answer key. An incorrect selection prefers the distractor's own feedback
// over the item-level message.
func GradeSingleChoice(item *models.Item, selected string) (models.Result, error) {
	content := item.SingleChoice
	if content == nil {
		return models.Result{}, fmt.Errorf("%w: item %q has no single choice content", ErrUngradeableItem, item.ID)
	}

	correct := selected == content.Answer

	var feedback string
	if correct {
		feedback = resolveFeedback(DefaultCorrectFeedback, item.FeedbackCorrect)
	} else {
		var choiceFeedback *string
		for i := range content.Choices {
			if content.Choices[i].Key == selected {
				choiceFeedback = content.Choices[i].FeedbackIncorrect
				break
			}
		}
		feedback = resolveFeedback(DefaultIncorrectFeedback, choiceFeedback, item.FeedbackIncorrect)
	}

	return models.Result{
		ItemID:   item.ID,
		Type:     item.Type,
		Correct:  correct,
		Feedback: feedback,
		Checked:  true,
		Selected: models.StringPtr(selected),
	}, nil
}
