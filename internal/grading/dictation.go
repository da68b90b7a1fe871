package grading

import (
	"fmt"
	"strings"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// GradeDictation compares the transcript with the acceptable answer list
// under the exercise-level sensitivity flags. An empty answer list grades
// as incorrect rather than erroring; authors see that through validation.
func GradeDictation(item *models.Item, settings models.Settings, text string) (models.Result, error) {
	content := item.Dictation
	if content == nil {
		return models.Result{}, fmt.Errorf("%w: item %q has no dictation content", ErrUngradeableItem, item.ID)
	}

	trimmed := strings.TrimSpace(text)
	opts := NormalizeOptions{
		CaseSensitive:        settings.CaseSensitive,
		AccentSensitive:      settings.AccentSensitive,
		PunctuationSensitive: settings.PunctuationSensitive,
	}
	correct := matchesAny(trimmed, content.Answer, opts)

	var feedback string
	if correct {
		feedback = resolveFeedback(DefaultCorrectFeedback, item.FeedbackCorrect)
	} else {
		feedback = resolveFeedback(DefaultIncorrectFeedback, item.FeedbackIncorrect)
	}

	return models.Result{
		ItemID:   item.ID,
		Type:     item.Type,
		Correct:  correct,
		Feedback: feedback,
		Checked:  true,
		Value:    models.StringPtr(trimmed),
	}, nil
}
