package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/xuri/excelize/v2"
)

const MatchSheet = "Matches"

var matchHeader = []interface{}{
	"Match ID", "User 1 ID", "User 1 Name", "User 2 ID", "User 2 Name", "Request ID", "Created At",
}

// MatchLister loads every match with both users populated.
type MatchLister interface {
	ListAllMatches(ctx context.Context) ([]models.Match, error)
}

// BuildMatchReport lays matches out one per row under a bold header.
func BuildMatchReport(matches []models.Match) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename the default sheet so the workbook has a single named tab
	if err := f.SetSheetName("Sheet1", MatchSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(MatchSheet, "A1", &matchHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(MatchSheet, "A1", "G1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, m := range matches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			m.ID,
			m.User1ID, m.User1.Name,
			m.User2ID, m.User2.Name,
			m.RequestID,
			m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(MatchSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(MatchSheet, "A", "G", 24)
	return f, nil
}

// ExportMatches writes the match report for everything lister returns and
// reports how many matches it contained.
func ExportMatches(ctx context.Context, lister MatchLister, w io.Writer) (int, error) {
	matches, err := lister.ListAllMatches(ctx)
	if err != nil {
		return 0, err
	}

	f, err := BuildMatchReport(matches)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(matches), nil
}
