package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/tdd-builder/internal/report"
)

func sampleRows() []*report.SummaryRow {
	return []*report.SummaryRow{
		{
			File:         "invoice.xml",
			DocumentID:   "INV-1",
			DocumentType: "invoice",
			TypeCode:     "S",
			UUID:         "1780de4f-a87c-50cc-9d8a-f982abe36912",
			Status:       report.StatusBuilt,
			Warnings:     1,
			Output:       "out/invoice.tdd.xml",
		},
		{
			File:    "broken.xml",
			Status:  report.StatusFailed,
			Message: "unsupported document, root element Order",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "File", records[0][0])
	assert.Equal(t, []string{"invoice.xml", "INV-1", "invoice", "S", "1780de4f-a87c-50cc-9d8a-f982abe36912", "built", "0", "1", "out/invoice.tdd.xml", ""}, records[1])
	assert.Equal(t, "unsupported document, root element Order", records[2][9])
}

func TestWrite_Formats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, "json", sampleRows()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "INV-1", decoded[0]["document_id"])

	buf.Reset()
	require.NoError(t, report.Write(&buf, "table", sampleRows()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "INV-1")
	assert.Contains(t, lines[3], "ERROR: unsupported document")

	assert.Error(t, report.Write(&buf, "yaml", sampleRows()))
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, report.WriteWorkbook(path, sampleRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Status", rows[0][5])
	assert.Equal(t, "INV-1", rows[1][1])
	assert.Equal(t, "1", rows[1][7])
	assert.Equal(t, "failed", rows[2][5])
}
