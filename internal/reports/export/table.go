// Package export renders tabular moderation queues as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
)

// Table is a header row plus data rows for one sheet.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// ParseFormat accepts xlsx or csv, defaulting to xlsx when empty.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(raw)) {
	case "", FormatExcel:
		return FormatExcel, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write renders t in the given format.
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatCSV {
		return WriteCSV(w, t)
	}
	return WriteExcel(w, t, DefaultExcelOptions())
}
