package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/credexa/credexa-cli/internal/report"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet        = "Summary"
	explainabilitySheet = "Explainability"
	suggestionsSheet    = "Suggestions"
)

// fills per colour band, matching the terminal colours.
var bandFills = map[report.ColorBand]string{
	report.ColorGreen: "22C55E",
	report.ColorBlue:  "2563EB",
	report.ColorAmber: "F59E0B",
	report.ColorRed:   "EF4444",
}

// ToExcel writes the report as a workbook with one sheet per report group.
func ToExcel(r *report.Report, outputPath string) error {
	if r == nil {
		return errNilReport
	}

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(explainabilitySheet); err != nil {
		return fmt.Errorf("create explainability sheet: %w", err)
	}
	if _, err := f.NewSheet(suggestionsSheet); err != nil {
		return fmt.Errorf("create suggestions sheet: %w", err)
	}

	if err := writeSummary(f, r); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeExplainability(f, r.Explainability); err != nil {
		return fmt.Errorf("write explainability sheet: %w", err)
	}
	if err := writeSuggestions(f, r.Suggestions); err != nil {
		return fmt.Errorf("write suggestions sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook %s: %w", outputPath, err)
	}

	return nil
}

func writeSummary(f *excelize.File, r *report.Report) error {
	rows := [][]any{
		{"Match Score", r.Badge.Score},
		{"Fit", r.Badge.Label},
	}
	for _, factor := range r.Factors {
		rows = append(rows, []any{factor.Label, factor.Value})
	}

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 40); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{bandFills[r.Badge.Color]}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	return f.SetCellStyle(summarySheet, "B1", "B2", style)
}

func writeExplainability(f *excelize.File, items []report.Item) error {
	rows := [][]any{{"Type", "Detail"}}
	for _, item := range items {
		rows = append(rows, []any{string(item.Kind), item.Text})
	}

	if err := writeRows(f, explainabilitySheet, rows); err != nil {
		return err
	}

	return f.SetColWidth(explainabilitySheet, "B", "B", 80)
}

func writeSuggestions(f *excelize.File, suggestions []report.Suggestion) error {
	rows := [][]any{{"Priority", "Action", "Potential impact"}}
	for _, s := range suggestions {
		rows = append(rows, []any{string(s.Priority), s.Action, s.Impact})
	}

	if err := writeRows(f, suggestionsSheet, rows); err != nil {
		return err
	}

	return f.SetColWidth(suggestionsSheet, "B", "B", 60)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
