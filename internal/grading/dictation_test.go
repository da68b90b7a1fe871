package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func dictationItem(answers ...string) *models.Item {
	return &models.Item{
		ID:        "i1",
		Type:      models.Dictation,
		Dictation: &models.DictationContent{Answer: models.AnswerList(answers)},
	}
}

func TestGradeDictation(t *testing.T) {
	t.Run("folds per exercise settings", func(t *testing.T) {
		result, err := GradeDictation(dictationItem("¿Dónde está la biblioteca?"), models.Settings{},
			"donde esta la biblioteca")
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, DefaultCorrectFeedback, result.Feedback)
	})

	t.Run("accent sensitive rejects folded input", func(t *testing.T) {
		settings := models.Settings{AccentSensitive: true}
		result, err := GradeDictation(dictationItem("¿Dónde está?"), settings, "donde esta")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, DefaultIncorrectFeedback, result.Feedback)
	})

	t.Run("any alternative matches", func(t *testing.T) {
		item := dictationItem("No pasa nada", "no importa")
		result, err := GradeDictation(item, models.Settings{}, "  No importa. ")
		require.NoError(t, err)
		assert.True(t, result.Correct)
		require.NotNil(t, result.Value)
		assert.Equal(t, "No importa.", *result.Value, "recorded transcript is trimmed only")
	})

	t.Run("empty answer list grades incorrect", func(t *testing.T) {
		result, err := GradeDictation(dictationItem(), models.Settings{}, "hola")
		require.NoError(t, err)
		assert.False(t, result.Correct)
	})
}
