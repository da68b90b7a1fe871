package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func clozeItem() *models.Item {
	return &models.Item{
		ID:   "i1",
		Type: models.Cloze,
		Cloze: &models.ClozeContent{
			Prompt: "Yo [[B1]] de Argentina y [[B2]] en Madrid.",
			Blanks: []models.Blank{
				{Key: "B1", Answers: []string{"soy"}},
				{Key: "B2", Answers: []string{"vivo", "estoy"}},
			},
		},
	}
}

func TestGradeCloze(t *testing.T) {
	t.Run("all blanks correct", func(t *testing.T) {
		result, err := GradeCloze(clozeItem(), map[string]string{"B1": " Soy ", "B2": "VIVO"})
		require.NoError(t, err)
		assert.True(t, result.Correct)
		require.Len(t, result.Blanks, 2)
		assert.True(t, result.Blanks[0].OK)
		assert.True(t, result.Blanks[1].OK)
		assert.Equal(t, "Soy", result.Blanks[0].Value, "recorded value is trimmed, not folded")
	})

	t.Run("one wrong blank fails the item but evaluates the rest", func(t *testing.T) {
		result, err := GradeCloze(clozeItem(), map[string]string{"B1": "es", "B2": "estoy"})
		require.NoError(t, err)
		assert.False(t, result.Correct)
		require.Len(t, result.Blanks, 2)
		assert.False(t, result.Blanks[0].OK)
		assert.Equal(t, DefaultBlankIncorrectFeedback, result.Blanks[0].Feedback)
		assert.True(t, result.Blanks[1].OK)
		assert.Equal(t, DefaultCorrectFeedback, result.Blanks[1].Feedback)
	})

	t.Run("missing submission counts as empty", func(t *testing.T) {
		result, err := GradeCloze(clozeItem(), map[string]string{"B1": "soy"})
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.False(t, result.Blanks[1].OK)
		assert.Equal(t, "", result.Blanks[1].Value)
	})

	t.Run("prompt token without a definition is incorrect", func(t *testing.T) {
		item := &models.Item{
			ID:   "i1",
			Type: models.Cloze,
			Cloze: &models.ClozeContent{
				Prompt: "Yo [[B1]] y tú [[B9]].",
				Blanks: []models.Blank{{Key: "B1", Answers: []string{"soy"}}},
			},
		}
		result, err := GradeCloze(item, map[string]string{"B1": "soy", "B9": "eres"})
		require.NoError(t, err)
		assert.False(t, result.Correct)
		require.Len(t, result.Blanks, 2)
		assert.True(t, result.Blanks[0].OK)
		assert.False(t, result.Blanks[1].OK)
	})

	t.Run("blank not referenced by the prompt is skipped", func(t *testing.T) {
		item := &models.Item{
			ID:   "i1",
			Type: models.Cloze,
			Cloze: &models.ClozeContent{
				Prompt: "Yo [[B1]].",
				Blanks: []models.Blank{
					{Key: "B1", Answers: []string{"soy"}},
					{Key: "B2", Answers: []string{"vivo"}},
				},
			},
		}
		result, err := GradeCloze(item, map[string]string{"B1": "soy"})
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Len(t, result.Blanks, 1)
	})

	t.Run("blank with empty answer list never matches", func(t *testing.T) {
		item := &models.Item{
			ID:   "i1",
			Type: models.Cloze,
			Cloze: &models.ClozeContent{
				Prompt: "Yo [[B1]].",
				Blanks: []models.Blank{{Key: "B1"}},
			},
		}
		result, err := GradeCloze(item, map[string]string{"B1": "cualquiera"})
		require.NoError(t, err)
		assert.False(t, result.Correct)
	})

	t.Run("per-blank sensitivity flags", func(t *testing.T) {
		item := &models.Item{
			ID:   "i1",
			Type: models.Cloze,
			Cloze: &models.ClozeContent{
				Prompt: "Él [[B1]] temprano.",
				Blanks: []models.Blank{{
					Key:              "B1",
					Answers:          []string{"Llegó"},
					CaseSensitive:    true,
					NormalizeAccents: models.BoolPtr(false),
				}},
			},
		}

		result, err := GradeCloze(item, map[string]string{"B1": "llego"})
		require.NoError(t, err)
		assert.False(t, result.Correct)

		result, err = GradeCloze(item, map[string]string{"B1": "Llegó"})
		require.NoError(t, err)
		assert.True(t, result.Correct)
	})
}
