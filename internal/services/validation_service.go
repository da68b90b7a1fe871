package services

import (
	"fmt"
	"log/slog"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

// ValidationService checks exercise definitions at authoring time. Runtime
// grading is deliberately more lenient; the checks here catch what an
// author can still fix.
type ValidationService interface {
	ValidateExercise(exercise *models.Exercise) ValidationErrors
}

type validationService struct {
	logger    *slog.Logger
	validator *utils.Validator
}

func NewValidationService(logger *slog.Logger, validator *utils.Validator) ValidationService {
	return &validationService{
		logger:    logger,
		validator: validator,
	}
}

func (s *validationService) ValidateExercise(exercise *models.Exercise) ValidationErrors {
	var errs ValidationErrors

	if err := s.validator.Struct(exercise); err != nil {
		errs = append(errs, toValidationErrors(err)...)
	}

	if exercise.Settings.PassThreshold < 0 || exercise.Settings.PassThreshold > 100 {
		errs = append(errs, ValidationError{
			Field:   "settings.pass_threshold",
			Message: "must be between 0 and 100",
			Value:   exercise.Settings.PassThreshold,
		})
	}

	seenIDs := make(map[string]bool, len(exercise.Items))
	for i, item := range exercise.Items {
		field := fmt.Sprintf("items[%d]", i)

		if seenIDs[item.ID] {
			errs = append(errs, ValidationError{
				Field:   field + ".id",
				Message: "duplicate item id",
				Value:   item.ID,
			})
		}
		seenIDs[item.ID] = true

		errs = append(errs, validateItemContent(field, &exercise.Items[i])...)
	}

	if len(errs) > 0 {
		s.logger.Debug("exercise definition failed validation",
			"exercise_id", exercise.ID,
			"error_count", len(errs))
	}
	return errs
}

// validateItemContent enforces that exactly the content payload matching the
// declared type is present, then runs the type-specific checks.
func validateItemContent(field string, item *models.Item) ValidationErrors {
	var errs ValidationErrors

	payloads := 0
	for _, present := range []bool{
		item.TrueFalse != nil,
		item.SingleChoice != nil,
		item.Cloze != nil,
		item.DragDrop != nil,
		item.Dictation != nil,
	} {
		if present {
			payloads++
		}
	}
	if payloads != 1 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "must carry exactly one content payload",
			Value:   payloads,
		})
		return errs
	}

	switch item.Type {
	case models.TrueFalse:
		if item.TrueFalse == nil {
			errs = append(errs, mismatchError(field, item))
		}
	case models.SingleChoice:
		if item.SingleChoice == nil {
			errs = append(errs, mismatchError(field, item))
			break
		}
		errs = append(errs, validateSingleChoice(field, item.SingleChoice)...)
	case models.Cloze:
		if item.Cloze == nil {
			errs = append(errs, mismatchError(field, item))
			break
		}
		errs = append(errs, validateCloze(field, item.Cloze)...)
	case models.DragDropText:
		if item.DragDrop == nil {
			errs = append(errs, mismatchError(field, item))
			break
		}
		errs = append(errs, validateDragDrop(field, item.DragDrop)...)
	case models.Dictation:
		if item.Dictation == nil {
			errs = append(errs, mismatchError(field, item))
			break
		}
		if len(item.Dictation.Answer) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".dictation.answer",
				Message: "must list at least one acceptable answer",
			})
		}
	}

	return errs
}

func mismatchError(field string, item *models.Item) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("content payload does not match type %q", item.Type),
		Value:   string(item.Type),
	}
}

func validateSingleChoice(field string, content *models.SingleChoiceContent) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]bool, len(content.Choices))
	answerExists := false
	for i, choice := range content.Choices {
		if seen[choice.Key] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.single_choice.choices[%d].key", field, i),
				Message: "duplicate choice key",
				Value:   choice.Key,
			})
		}
		seen[choice.Key] = true
		if choice.Key == content.Answer {
			answerExists = true
		}
	}
	if !answerExists {
		errs = append(errs, ValidationError{
			Field:   field + ".single_choice.answer",
			Message: "must match one of the choice keys",
			Value:   content.Answer,
		})
	}
	return errs
}

func validateCloze(field string, content *models.ClozeContent) ValidationErrors {
	var errs ValidationErrors

	keys := content.PromptKeys()
	if len(keys) == 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".cloze.prompt",
			Message: "must reference at least one blank token",
		})
	}
	for _, key := range keys {
		if content.BlankByKey(key) == nil {
			errs = append(errs, ValidationError{
				Field:   field + ".cloze.blanks",
				Message: "prompt token has no blank definition",
				Value:   key,
			})
		}
	}

	seen := make(map[string]bool, len(content.Blanks))
	for i, blank := range content.Blanks {
		if seen[blank.Key] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.cloze.blanks[%d].key", field, i),
				Message: "duplicate blank key",
				Value:   blank.Key,
			})
		}
		seen[blank.Key] = true
		if len(blank.Answers) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.cloze.blanks[%d].answers", field, i),
				Message: "must list at least one acceptable answer",
				Value:   blank.Key,
			})
		}
	}
	return errs
}

func validateDragDrop(field string, content *models.DragDropContent) ValidationErrors {
	var errs ValidationErrors

	seenColumns := make(map[string]bool, len(content.Columns))
	for i, col := range content.Columns {
		if seenColumns[col.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.dnd_text.columns[%d].id", field, i),
				Message: "duplicate column id",
				Value:   col.ID,
			})
		}
		seenColumns[col.ID] = true
	}

	seenEntries := make(map[string]bool, len(content.Entries))
	for i, entry := range content.Entries {
		if seenEntries[entry.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.dnd_text.items[%d].id", field, i),
				Message: "duplicate item id",
				Value:   entry.ID,
			})
		}
		seenEntries[entry.ID] = true

		if entry.CorrectColumn == "" || !seenColumns[entry.CorrectColumn] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.dnd_text.items[%d].correct_column", field, i),
				Message: "must reference a defined column",
				Value:   entry.CorrectColumn,
			})
		}
	}
	return errs
}
