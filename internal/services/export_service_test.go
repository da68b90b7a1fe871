package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func sampleSummary() *models.Summary {
	return &models.Summary{
		ExerciseID: "ex-1",
		Title:      "Repaso",
		Score:      1,
		Total:      2,
		Percent:    50,
		Passed:     false,
		Review: []models.ReviewEntry{
			{
				ItemID:        "i1",
				Index:         0,
				Type:          models.TrueFalse,
				Correct:       true,
				Prompt:        "Madrid es la capital.",
				YourAnswer:    "Verdadero",
				CorrectAnswer: "Verdadero",
				Feedback:      "¡Correcto!",
			},
			{
				ItemID:        "i2",
				Index:         1,
				Type:          models.SingleChoice,
				Correct:       false,
				Prompt:        "¿Cómo se dice 'dog'?",
				YourAnswer:    "el gato",
				CorrectAnswer: "el perro",
			},
		},
		CompletedAt: time.Now().UTC(),
	}
}

func TestExportSummaryToCSV(t *testing.T) {
	svc := NewExportService(slog.Default())

	data, err := svc.ExportSummaryToCSV(context.Background(), sampleSummary())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header, two rows, totals")
	assert.Equal(t, summaryHeaders, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "yes", records[1][2])
	assert.Equal(t, "el perro", records[2][5])
	assert.Equal(t, "Score", records[3][0])
}

func TestExportSummaryToExcel(t *testing.T) {
	svc := NewExportService(slog.Default())

	data, err := svc.ExportSummaryToExcel(context.Background(), sampleSummary())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, "true_false", rows[1][1])
	assert.Equal(t, "el gato", rows[2][4])
}
