package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// ExportService renders a session summary as a downloadable file so results
// can leave the engine without a reporting backend.
type ExportService interface {
	ExportSummaryToCSV(ctx context.Context, summary *models.Summary) ([]byte, error)
	ExportSummaryToExcel(ctx context.Context, summary *models.Summary) ([]byte, error)
}

type exportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) ExportService {
	return &exportService{logger: logger}
}

var summaryHeaders = []string{
	"Item", "Type", "Correct", "Prompt", "Your Answer", "Correct Answer", "Feedback",
}

func (s *exportService) ExportSummaryToCSV(ctx context.Context, summary *models.Summary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(summaryHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, entry := range summary.Review {
		if err := writer.Write(summaryRow(entry)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	if err := writer.Write([]string{
		"Score", "", strconv.Itoa(summary.Score),
		fmt.Sprintf("%d items, %d%%", summary.Total, summary.Percent),
		"", "", "",
	}); err != nil {
		return nil, fmt.Errorf("failed to write CSV totals: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Exported summary to CSV",
		"exercise_id", summary.ExerciseID,
		"rows", len(summary.Review))
	return buf.Bytes(), nil
}

func (s *exportService) ExportSummaryToExcel(ctx context.Context, summary *models.Summary) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Summary"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range summaryHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, entry := range summary.Review {
		row := summaryRow(entry)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	totalsRow := len(summary.Review) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "Score")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalsRow), summary.Score)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalsRow),
		fmt.Sprintf("%d items, %d%%", summary.Total, summary.Percent))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported summary to Excel",
		"exercise_id", summary.ExerciseID,
		"rows", len(summary.Review))
	return buf.Bytes(), nil
}

func summaryRow(entry models.ReviewEntry) []string {
	correct := "no"
	if entry.Correct {
		correct = "yes"
	}
	return []string{
		strconv.Itoa(entry.Index + 1),
		string(entry.Type),
		correct,
		entry.Prompt,
		entry.YourAnswer,
		entry.CorrectAnswer,
		entry.Feedback,
	}
}
