// Package report writes per-file batch summaries of TDD builds.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

// Status values of a summary row
const (
	StatusBuilt   = "built"
	StatusOmitted = "omitted"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
)

// SheetName is the worksheet written by WriteWorkbook
const SheetName = "Summary"

// SummaryRow is the outcome of one input file
type SummaryRow struct {
	File         string `json:"file"`
	DocumentID   string `json:"document_id,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	TypeCode     string `json:"type_code,omitempty"`
	UUID         string `json:"uuid,omitempty"`
	Status       string `json:"status"`
	Errors       int    `json:"errors"`
	Warnings     int    `json:"warnings"`
	Output       string `json:"output,omitempty"`
	Message      string `json:"message,omitempty"`
}

var columns = []string{
	"File",
	"Document ID",
	"Document Type",
	"TDD Type",
	"UUID",
	"Status",
	"Errors",
	"Warnings",
	"Output",
	"Message",
}

func (r *SummaryRow) values() []string {
	return []string{
		r.File,
		r.DocumentID,
		r.DocumentType,
		r.TypeCode,
		r.UUID,
		r.Status,
		strconv.Itoa(r.Errors),
		strconv.Itoa(r.Warnings),
		r.Output,
		r.Message,
	}
}

// Write renders rows in the given format: json, table or csv
func Write(w io.Writer, format string, rows []*SummaryRow) error {
	switch format {
	case "json":
		return WriteJSON(w, rows)
	case "table":
		return WriteTable(w, rows)
	case "csv":
		return WriteCSV(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteJSON writes rows as an indented JSON array
func WriteJSON(w io.Writer, rows []*SummaryRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// WriteTable writes rows as an aligned text table
func WriteTable(w io.Writer, rows []*SummaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tID\tTYPE\tSTATUS\tERRORS\tWARNINGS\tOUTPUT")
	fmt.Fprintln(tw, "----\t--\t----\t------\t------\t--------\t------")

	for _, r := range rows {
		if r.Status == StatusFailed {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Message)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.File,
			r.DocumentID,
			r.TypeCode,
			r.Status,
			r.Errors,
			r.Warnings,
			r.Output,
		)
	}

	return tw.Flush()
}

// WriteCSV writes a header row followed by one record per row
func WriteCSV(w io.Writer, rows []*SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkbook saves rows to an .xlsx file with a single Summary sheet
func WriteWorkbook(path string, rows []*SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	// A new workbook starts with "Sheet1"
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, 1, columns); err != nil {
		return err
	}
	for i, r := range rows {
		if err := writeSummaryRow(f, i+2, r); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return setRow(f, row, cells)
}

// writeSummaryRow keeps the counters numeric so they can be summed in a spreadsheet
func writeSummaryRow(f *excelize.File, row int, r *SummaryRow) error {
	return setRow(f, row, []any{
		r.File,
		r.DocumentID,
		r.DocumentType,
		r.TypeCode,
		r.UUID,
		r.Status,
		r.Errors,
		r.Warnings,
		r.Output,
		r.Message,
	})
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
