package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	FreezeHeader    bool   `json:"freeze_header"`
	AutoFilter      bool   `json:"auto_filter"`
	TimestampFormat string `json:"timestamp_format"`
	HeaderFill      string `json:"header_fill"`
	HeaderFont      string `json:"header_font"`
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		FreezeHeader:    true,
		AutoFilter:      true,
		TimestampFormat: "2006-01-02 15:04:05",
		HeaderFill:      "4472C4",
		HeaderFont:      "FFFFFF",
	}
}

// WriteExcel writes t as a single-sheet workbook.
func WriteExcel(w io.Writer, t Table, options ExcelOptions) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: options.HeaderFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{options.HeaderFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header %d: %w", i+1, err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", cell, err)
		}
	}
	if len(t.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return fmt.Errorf("failed to address header row: %w", err)
		}
		if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header row: %w", err)
		}
	}

	for r, row := range t.Rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to address row %d column %d: %w", r+2, c+1, err)
			}
			if err := file.SetCellValue(sheet, cell, excelValue(val, options)); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if options.FreezeHeader {
		err := file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if options.AutoFilter && len(t.Headers) > 0 && len(t.Rows) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return fmt.Errorf("failed to address filter range: %w", err)
		}
		if err := file.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, len(t.Rows)+1), nil); err != nil {
			return fmt.Errorf("failed to add auto filter: %w", err)
		}
	}

	return file.Write(w)
}

func excelValue(val any, options ExcelOptions) any {
	switch v := val.(type) {
	case nil:
		return ""
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case *int64:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		return v.Format(options.TimestampFormat)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(options.TimestampFormat)
	default:
		return v
	}
}
