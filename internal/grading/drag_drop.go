package grading

import (
	"fmt"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// GradeDragDrop checks every entry's placement against its authored column.
// An entry is correct only when it is placed, its target column is declared
// and exists, and the two match. Grading a partially placed board is legal;
// the submission gate lives with the caller via AllPlaced.
func GradeDragDrop(item *models.Item, placements map[string]string) (models.Result, error) {
	content := item.DragDrop
	if content == nil {
		return models.Result{}, fmt.Errorf("%w: item %q has no drag and drop content", ErrUngradeableItem, item.ID)
	}

	results := make([]models.Placement, 0, len(content.Entries))
	correctCount := 0
	for _, entry := range content.Entries {
		placed := placements[entry.ID]
		ok := placed != "" && entry.CorrectColumn != "" &&
			placed == entry.CorrectColumn && content.HasColumn(entry.CorrectColumn)
		if ok {
			correctCount++
		}

		p := models.Placement{
			ID:            entry.ID,
			CorrectColumn: entry.CorrectColumn,
			OK:            ok,
		}
		if placed != "" {
			p.PlacedColumn = models.StringPtr(placed)
		}
		results = append(results, p)
	}

	total := len(content.Entries)
	allOK := total > 0 && correctCount == total

	var feedback string
	if allOK {
		feedback = resolveFeedback(DefaultCorrectFeedback, item.FeedbackCorrect)
	} else {
		feedback = resolveFeedback(DefaultIncorrectFeedback, item.FeedbackIncorrect)
	}

	return models.Result{
		ItemID:       item.ID,
		Type:         item.Type,
		Correct:      allOK,
		Feedback:     feedback,
		Checked:      true,
		Placements:   results,
		CorrectCount: correctCount,
		Total:        total,
	}, nil
}

// AllPlaced reports whether every entry has been dropped into some column.
// Exercises without allow_partial_submit gate grading on this.
func AllPlaced(content *models.DragDropContent, placements map[string]string) bool {
	for _, entry := range content.Entries {
		if placements[entry.ID] == "" {
			return false
		}
	}
	return true
}
