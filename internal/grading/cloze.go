package grading

import (
	"fmt"
	"strings"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// GradeCloze evaluates every blank the prompt references and ANDs the
// per-blank outcomes into the item judgment. A prompt token without a blank
// definition counts as incorrect but never aborts the rest of the item;
// blanks defined but not referenced by the prompt are skipped.
func GradeCloze(item *models.Item, values map[string]string) (models.Result, error) {
	content := item.Cloze
	if content == nil {
		return models.Result{}, fmt.Errorf("%w: item %q has no cloze content", ErrUngradeableItem, item.ID)
	}

	keys := content.PromptKeys()
	blanks := make([]models.BlankResult, 0, len(keys))
	allOK := true

	for _, key := range keys {
		raw := strings.TrimSpace(values[key])
		blank := content.BlankByKey(key)
		if blank == nil {
			allOK = false
			blanks = append(blanks, models.BlankResult{
				Key:      key,
				OK:       false,
				Value:    raw,
				Feedback: DefaultBlankIncorrectFeedback,
			})
			continue
		}

		opts := NormalizeOptions{
			CaseSensitive:        blank.CaseSensitive,
			AccentSensitive:      !blank.StripAccents(),
			PunctuationSensitive: blank.PunctuationSensitive,
		}
		ok := matchesAny(raw, blank.Answers, opts)
		if !ok {
			allOK = false
		}

		var feedback string
		if ok {
			feedback = resolveFeedback(DefaultCorrectFeedback, blank.FeedbackCorrect)
		} else {
			feedback = resolveFeedback(DefaultBlankIncorrectFeedback, blank.FeedbackIncorrect)
		}
		blanks = append(blanks, models.BlankResult{
			Key:      key,
			OK:       ok,
			Value:    raw,
			Answers:  blank.Answers,
			Feedback: feedback,
		})
	}

	var feedback string
	if allOK {
		feedback = resolveFeedback(DefaultCorrectFeedback, item.FeedbackCorrect)
	} else {
		feedback = resolveFeedback(DefaultIncorrectFeedback, item.FeedbackIncorrect)
	}

	return models.Result{
		ItemID:   item.ID,
		Type:     item.Type,
		Correct:  allOK,
		Feedback: feedback,
		Checked:  true,
		Blanks:   blanks,
	}, nil
}
