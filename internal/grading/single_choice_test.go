package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func singleChoiceItem() *models.Item {
	return &models.Item{
		ID:   "i1",
		Type: models.SingleChoice,
		SingleChoice: &models.SingleChoiceContent{
			Prompt: "¿Cómo se dice 'apple'?",
			Choices: []models.Choice{
				{Key: "a", Label: "la manzana"},
				{Key: "b", Label: "la naranja", FeedbackIncorrect: models.StringPtr("esa es 'orange'")},
				{Key: "c", Label: "el plátano"},
			},
			Answer: "a",
		},
	}
}

func TestGradeSingleChoice(t *testing.T) {
	t.Run("correct key", func(t *testing.T) {
		result, err := GradeSingleChoice(singleChoiceItem(), "a")
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, DefaultCorrectFeedback, result.Feedback)
		require.NotNil(t, result.Selected)
		assert.Equal(t, "a", *result.Selected)
	})

	t.Run("distractor feedback wins", func(t *testing.T) {
		result, err := GradeSingleChoice(singleChoiceItem(), "b")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, "esa es 'orange'", result.Feedback)
	})

	t.Run("distractor without feedback falls back", func(t *testing.T) {
		result, err := GradeSingleChoice(singleChoiceItem(), "c")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, DefaultIncorrectFeedback, result.Feedback)
	})

	t.Run("unknown key grades incorrect", func(t *testing.T) {
		result, err := GradeSingleChoice(singleChoiceItem(), "z")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, DefaultIncorrectFeedback, result.Feedback)
	})
}
