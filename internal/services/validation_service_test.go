package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

func newValidationService() ValidationService {
	return NewValidationService(slog.Default(), utils.NewValidator())
}

func validExercise() *models.Exercise {
	return &models.Exercise{
		ID:    "ex-1",
		Title: "Repaso",
		Type:  models.Cloze,
		Items: []models.Item{
			{
				ID:   "i1",
				Type: models.Cloze,
				Cloze: &models.ClozeContent{
					Prompt: "Yo [[B1]] estudiante.",
					Blanks: []models.Blank{{Key: "B1", Answers: []string{"soy"}}},
				},
			},
		},
	}
}

func TestValidateExerciseAccepts(t *testing.T) {
	errs := newValidationService().ValidateExercise(validExercise())
	assert.Empty(t, errs)
}

func TestValidateExerciseRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Exercise)
		field  string
	}{
		{
			name: "pass threshold out of range",
			mutate: func(e *models.Exercise) {
				e.Settings.PassThreshold = 120
			},
			field: "settings.pass_threshold",
		},
		{
			name: "duplicate item ids",
			mutate: func(e *models.Exercise) {
				e.Items = append(e.Items, e.Items[0])
			},
			field: "items[1].id",
		},
		{
			name: "content payload does not match type",
			mutate: func(e *models.Exercise) {
				e.Items[0].Type = models.TrueFalse
			},
			field: "items[0]",
		},
		{
			name: "two content payloads",
			mutate: func(e *models.Exercise) {
				e.Items[0].TrueFalse = &models.TrueFalseContent{Answer: true}
			},
			field: "items[0]",
		},
		{
			name: "prompt token without blank definition",
			mutate: func(e *models.Exercise) {
				e.Items[0].Cloze.Prompt = "Yo [[B1]] y [[B2]]."
			},
			field: "items[0].cloze.blanks",
		},
		{
			name: "blank without answers",
			mutate: func(e *models.Exercise) {
				e.Items[0].Cloze.Blanks[0].Answers = nil
			},
			field: "items[0].cloze.blanks[0].answers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exercise := validExercise()
			tt.mutate(exercise)

			errs := newValidationService().ValidateExercise(exercise)
			require.NotEmpty(t, errs)

			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected an error on %s, got %v", tt.field, errs)
		})
	}
}

func TestValidateSingleChoiceAnswerKey(t *testing.T) {
	exercise := &models.Exercise{
		ID:    "ex-2",
		Title: "Vocabulario",
		Type:  models.SingleChoice,
		Items: []models.Item{
			{
				ID:   "i1",
				Type: models.SingleChoice,
				SingleChoice: &models.SingleChoiceContent{
					Prompt: "¿Cómo se dice 'cat'?",
					Choices: []models.Choice{
						{Key: "a", Label: "el gato"},
						{Key: "b", Label: "el perro"},
					},
					Answer: "z",
				},
			},
		},
	}

	errs := newValidationService().ValidateExercise(exercise)
	require.NotEmpty(t, errs)
	assert.Equal(t, "items[0].single_choice.answer", errs[0].Field)
}

func TestValidateDragDropColumns(t *testing.T) {
	exercise := &models.Exercise{
		ID:    "ex-3",
		Title: "Ser o estar",
		Type:  models.DragDropText,
		Items: []models.Item{
			{
				ID:   "board",
				Type: models.DragDropText,
				DragDrop: &models.DragDropContent{
					Columns: []models.DragColumn{{ID: "ser"}, {ID: "estar"}},
					Entries: []models.DragEntry{
						{ID: "e1", Text: "alto", CorrectColumn: "nope"},
					},
				},
			},
		},
	}

	errs := newValidationService().ValidateExercise(exercise)
	require.NotEmpty(t, errs)
	assert.Equal(t, "items[0].dnd_text.items[0].correct_column", errs[0].Field)
}
