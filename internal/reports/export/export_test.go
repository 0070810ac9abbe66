package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	answer := "yes"
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return Table{
		Sheet:   "Questions",
		Headers: []string{"id", "question", "answer", "created_at"},
		Rows: [][]any{
			{int64(1), "Is the project verified?", (*string)(nil), created},
			{int64(2), "Price, per tonne", &answer, created},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv", f.ContentType())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleTable()))

	want := "id,question,answer,created_at\n" +
		"1,Is the project verified?,,2026-03-01T10:00:00Z\n" +
		"2,\"Price, per tonne\",yes,2026-03-01T10:00:00Z\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatExcel, sampleTable()))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "question", "answer", "created_at"}, rows[0])
	assert.Equal(t, "Is the project verified?", rows[1][1])
	assert.Equal(t, "yes", rows[2][2])
	assert.Equal(t, "2026-03-01 10:00:00", rows[2][3])
}

func TestWriteExcelTooManyColumns(t *testing.T) {
	// a sheet holds at most 16384 columns
	headers := make([]string, 16385)
	for i := range headers {
		headers[i] = "c"
	}

	var buf bytes.Buffer
	err := WriteExcel(&buf, Table{Sheet: "Wide", Headers: headers}, DefaultExcelOptions())

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
