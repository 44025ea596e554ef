package worksheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	questionSheet = "Worksheet"
	answerSheet   = "Answers"
)

// ExportXLSX renders the sheet as a workbook. The answer page is added only
// when ShowAnswers is set and always lists id and answer.
func ExportXLSX(s *Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), questionSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	_ = f.SetCellValue(questionSheet, "A1", s.MetaText())
	headers := []string{"no", "prompt", "answer"}
	if s.Mode == ModeB {
		headers = []string{"no", "answer", "explanation"}
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(questionSheet, cell, h)
	}
	for i, it := range s.Items {
		row := i + 4
		noCell, _ := excelize.CoordinatesToCellName(1, row)
		leadCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(questionSheet, noCell, it.No)
		_ = f.SetCellValue(questionSheet, leadCell, it.Lead(s.Mode))
		if s.Mode == ModeB {
			_ = f.SetCellStyle(questionSheet, leadCell, leadCell, bold)
		}
	}
	_ = f.SetColWidth(questionSheet, "A", "A", 6)
	_ = f.SetColWidth(questionSheet, "B", "C", 40)

	if s.ShowAnswers {
		if _, err := f.NewSheet(answerSheet); err != nil {
			return nil, fmt.Errorf("create answer sheet: %w", err)
		}
		for i, h := range []string{"no", "id", "answer"} {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(answerSheet, cell, h)
		}
		for i, it := range s.Items {
			row := i + 2
			values := []any{it.No, it.ID, it.Answer}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(answerSheet, cell, v)
			}
		}
		_ = f.SetColWidth(answerSheet, "A", "B", 12)
		_ = f.SetColWidth(answerSheet, "C", "C", 40)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}
