package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func dragDropItem() *models.Item {
	return &models.Item{
		ID:   "i1",
		Type: models.DragDropText,
		DragDrop: &models.DragDropContent{
			Columns: []models.DragColumn{
				{ID: "ser", Label: "Ser"},
				{ID: "estar", Label: "Estar"},
			},
			Entries: []models.DragEntry{
				{ID: "e1", Text: "alto", CorrectColumn: "ser"},
				{ID: "e2", Text: "cansado", CorrectColumn: "estar"},
				{ID: "e3", Text: "médico", CorrectColumn: "ser"},
			},
		},
	}
}

func TestGradeDragDrop(t *testing.T) {
	t.Run("all placed correctly", func(t *testing.T) {
		result, err := GradeDragDrop(dragDropItem(), map[string]string{
			"e1": "ser", "e2": "estar", "e3": "ser",
		})
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, 3, result.CorrectCount)
		assert.Equal(t, 3, result.Total)
	})

	t.Run("partial board grades what is placed", func(t *testing.T) {
		result, err := GradeDragDrop(dragDropItem(), map[string]string{
			"e1": "ser", "e2": "ser",
		})
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, 1, result.CorrectCount)
		require.Len(t, result.Placements, 3)
		assert.True(t, result.Placements[0].OK)
		assert.False(t, result.Placements[1].OK)
		assert.False(t, result.Placements[2].OK)
		assert.Nil(t, result.Placements[2].PlacedColumn, "unplaced entries carry no column")
	})

	t.Run("correct column must exist", func(t *testing.T) {
		item := dragDropItem()
		item.DragDrop.Entries[0].CorrectColumn = "gone"
		result, err := GradeDragDrop(item, map[string]string{
			"e1": "gone", "e2": "estar", "e3": "ser",
		})
		require.NoError(t, err)
		assert.False(t, result.Placements[0].OK)
		assert.Equal(t, 2, result.CorrectCount)
	})

	t.Run("empty correct column is never correct", func(t *testing.T) {
		item := dragDropItem()
		item.DragDrop.Entries[0].CorrectColumn = ""
		result, err := GradeDragDrop(item, map[string]string{
			"e1": "ser", "e2": "estar", "e3": "ser",
		})
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Equal(t, 2, result.CorrectCount)
	})
}

func TestAllPlaced(t *testing.T) {
	content := dragDropItem().DragDrop

	assert.True(t, AllPlaced(content, map[string]string{"e1": "ser", "e2": "estar", "e3": "ser"}))
	assert.False(t, AllPlaced(content, map[string]string{"e1": "ser", "e2": "estar"}))
	assert.False(t, AllPlaced(content, map[string]string{"e1": "ser", "e2": "estar", "e3": ""}))
	assert.False(t, AllPlaced(content, nil))
}
