package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/pp-platform/exercise-engine/internal/grading"
	"github.com/pp-platform/exercise-engine/internal/models"
)

// locksAfterGrading reports whether a graded item refuses further
// submissions. True/false items stay open so a learner can change their
// mind (the score delta is handled by SessionState.Apply), and drag and
// drop boards are re-graded wholesale on every submit.
func locksAfterGrading(t models.ExerciseType) bool {
	switch t {
	case models.TrueFalse, models.DragDropText:
		return false
	default:
		return true
	}
}

// reconcile drops recorded responses that no longer line up with the served
// definition, then recomputes the score and clamps the index. Snapshots
// written against an older definition version degrade to partially fresh
// sessions instead of failing.
func (s *sessionService) reconcile(exercise *models.Exercise, state *models.SessionState) {
	dropped := 0
	correct := 0
	for itemID, result := range state.Responses {
		item := exercise.ItemByID(itemID)
		if item == nil || item.Type != result.Type {
			delete(state.Responses, itemID)
			dropped++
			continue
		}
		if result.Correct {
			correct++
		}
	}
	state.Correct = correct

	if len(exercise.Items) == 0 {
		state.Index = 0
	} else if state.Index < 0 {
		state.Index = 0
	} else if state.Index >= len(exercise.Items) {
		state.Index = len(exercise.Items) - 1
	}

	if dropped > 0 {
		state.CompletedAt = nil
		s.logger.Info("dropped stale responses from session",
			"exercise_id", exercise.ID, "dropped", dropped)
	}
}

func (s *sessionService) view(exercise *models.Exercise, state *models.SessionState) *SessionView {
	view := &SessionView{
		ExerciseID: exercise.ID,
		Title:      exercise.Title,
		Type:       exercise.Type,
		Index:      state.Index,
		Total:      len(exercise.Items),
		Correct:    state.Correct,
		Answered:   len(state.Responses),
		Completed:  state.CompletedAt != nil,
	}

	if state.Index >= 0 && state.Index < len(exercise.Items) {
		view.Item = &exercise.Items[state.Index]
		if result, ok := state.Responses[view.Item.ID]; ok {
			view.Result = &result
		}
	}
	return view
}

// buildSummary derives the report from the recorded responses without
// re-grading anything.
func buildSummary(exercise *models.Exercise, state *models.SessionState) *models.Summary {
	total := len(exercise.Items)
	percent := grading.ScorePercent(state.Correct, total)

	completedAt := time.Now().UTC()
	if state.CompletedAt != nil {
		completedAt = *state.CompletedAt
	}

	review := make([]models.ReviewEntry, 0, total)
	for i := range exercise.Items {
		item := &exercise.Items[i]
		result := state.Responses[item.ID]
		review = append(review, reviewEntry(item, i, result))
	}

	return &models.Summary{
		ExerciseID:  exercise.ID,
		Title:       exercise.Title,
		Score:       state.Correct,
		Total:       total,
		Percent:     percent,
		Passed:      percent >= exercise.Settings.PassThreshold,
		Review:      review,
		CompletedAt: completedAt,
	}
}

func reviewEntry(item *models.Item, index int, result models.Result) models.ReviewEntry {
	entry := models.ReviewEntry{
		ItemID:     item.ID,
		Index:      index,
		Type:       item.Type,
		Correct:    result.Correct,
		Feedback:   reviewFeedback(result),
		Blanks:     result.Blanks,
		Placements: result.Placements,
	}

	switch item.Type {
	case models.TrueFalse:
		if item.TrueFalse != nil {
			entry.Prompt = item.TrueFalse.Prompt
			entry.CorrectAnswer = trueFalseLabel(item.TrueFalse.Answer)
		}
		if result.Choice != nil {
			entry.YourAnswer = trueFalseLabel(*result.Choice)
		}
	case models.SingleChoice:
		if item.SingleChoice != nil {
			entry.Prompt = item.SingleChoice.Prompt
			entry.CorrectAnswer = choiceLabel(item.SingleChoice, item.SingleChoice.Answer)
			if result.Selected != nil {
				entry.YourAnswer = choiceLabel(item.SingleChoice, *result.Selected)
			}
		}
	case models.Cloze:
		if item.Cloze != nil {
			entry.Prompt = item.Cloze.Prompt
		}
		entry.YourAnswer = joinBlankValues(result.Blanks)
		entry.CorrectAnswer = joinBlankAnswers(result.Blanks)
	case models.Dictation:
		if item.Dictation != nil {
			entry.Prompt = item.Dictation.Prompt
			entry.CorrectAnswer = strings.Join(item.Dictation.Answer, ", ")
		}
		if result.Value != nil {
			entry.YourAnswer = *result.Value
		}
	case models.DragDropText:
		entry.YourAnswer = fmt.Sprintf("%d / %d", result.CorrectCount, result.Total)
	}

	return entry
}

// reviewFeedback swaps the immediate-mode retry wording for the summary's
// calmer one; authored feedback passes through untouched.
func reviewFeedback(result models.Result) string {
	if result.Correct {
		return result.Feedback
	}
	switch result.Feedback {
	case grading.DefaultIncorrectFeedback, grading.DefaultRetryFeedback:
		return grading.DefaultReviewIncorrectFeedback
	default:
		return result.Feedback
	}
}

func trueFalseLabel(v bool) string {
	if v {
		return "Verdadero"
	}
	return "Falso"
}

func choiceLabel(content *models.SingleChoiceContent, key string) string {
	for _, choice := range content.Choices {
		if choice.Key == key {
			if choice.Label != "" {
				return choice.Label
			}
			return choice.Key
		}
	}
	return key
}

func joinBlankValues(blanks []models.BlankResult) string {
	parts := make([]string, 0, len(blanks))
	for _, b := range blanks {
		value := b.Value
		if value == "" {
			value = "—"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", b.Key, value))
	}
	return strings.Join(parts, ", ")
}

func joinBlankAnswers(blanks []models.BlankResult) string {
	parts := make([]string, 0, len(blanks))
	for _, b := range blanks {
		parts = append(parts, fmt.Sprintf("%s: %s", b.Key, strings.Join(b.Answers, " / ")))
	}
	return strings.Join(parts, ", ")
}
