package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/report"
	"github.com/rezonia/tdd-builder/internal/service"
)

var (
	typeCode     string
	outputDir    string
	summaryFile  string
	deriveUUID   bool
	checkOutput  bool
	buildTimeout time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build [files...]",
	Short: "Build TDDs from UBL invoices and credit notes",
	Long: `Build a Tax Data Document for each UBL 2.1 invoice or credit note.

Reporter settings (reporting party, receiving party, representative,
tax authority) come from the configuration.

Document type codes:
  S  submit      R  resubmit    W  withdraw
  D  disregard   F  failed

With a single input and no --output-dir the TDD is written to stdout.
Otherwise each TDD is written to <output-dir>/<name>.tdd.xml and a
summary is printed in the selected format.

Examples:
  tdd-builder build invoice.xml
  tdd-builder build invoice.xml --type R --derive-uuid
  tdd-builder build invoices/ --output-dir out --check -f csv
  tdd-builder build *.xml --output-dir out --summary summary.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&typeCode, "type", "t", "", "Document type code (default from config)")
	buildCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated TDDs")
	buildCmd.Flags().StringVar(&summaryFile, "summary", "", "Write a summary workbook (.xlsx)")
	buildCmd.Flags().BoolVar(&deriveUUID, "derive-uuid", false, "Derive the TDD UUID from the source document")
	buildCmd.Flags().BoolVar(&checkOutput, "check", false, "Run the conformance check on each TDD")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", 30*time.Second, "Processing timeout per file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}
	if len(files) > 1 && outputDir == "" {
		return fmt.Errorf("--output-dir is required for more than one input file")
	}

	opts := service.Options{Validate: checkOutput}
	if typeCode != "" {
		code, err := codelist.ParseDocumentTypeCode(typeCode)
		if err != nil {
			return err
		}
		opts.TypeCode = code
	}
	if cmd.Flags().Changed("derive-uuid") {
		opts.DeriveUUID = &deriveUUID
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	printVerbose("Found %d files to process\n", len(files))

	converter := service.NewConverter(cfg)
	rows := make([]*report.SummaryRow, 0, len(files))
	for _, file := range files {
		printVerbose("Processing: %s\n", file)

		row, xml := buildFile(converter, file, opts)
		rows = append(rows, row)

		if outputDir == "" && xml != nil {
			if _, err := os.Stdout.Write(xml); err != nil {
				return err
			}
		}
	}

	if summaryFile != "" {
		if err := report.WriteWorkbook(summaryFile, rows); err != nil {
			return err
		}
		printVerbose("Summary written to %s\n", summaryFile)
	}

	if outputDir != "" {
		if err := report.Write(os.Stdout, outputFormat, rows); err != nil {
			return err
		}
	} else {
		printFindings(rows[0])
	}

	for _, r := range rows {
		if r.Status == report.StatusFailed || r.Status == report.StatusInvalid {
			return fmt.Errorf("%d of %d files could not be converted", countFailed(rows), len(rows))
		}
	}
	return nil
}

// buildFile converts one file. The XML is nil unless a TDD was built.
func buildFile(converter *service.Converter, file string, opts service.Options) (*report.SummaryRow, []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	row := &report.SummaryRow{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		row.Status = report.StatusFailed
		row.Message = fmt.Sprintf("failed to read file: %v", err)
		return row, nil
	}

	result, err := converter.Convert(ctx, data, opts)
	if result != nil && result.Source != nil {
		row.DocumentID = result.Source.Header().ID
		row.DocumentType = string(result.Source.Kind())
	}
	if result != nil && result.Validation != nil {
		row.Errors = result.Validation.ErrorCount()
		row.Warnings = len(result.Validation.Warnings())
	}
	if err != nil {
		row.Status = report.StatusFailed
		var vr *model.ValidationReport
		if errors.As(err, &vr) {
			row.Status = report.StatusInvalid
			row.Message = firstMessage(vr)
		} else {
			row.Message = err.Error()
		}
		return row, nil
	}

	row.UUID = result.TaxData.UUID
	row.TypeCode = result.TaxData.DocumentTypeCode
	row.Status = report.StatusBuilt
	if result.Omitted {
		row.Status = report.StatusOmitted
	}
	if result.Conformance != nil && !result.Conformance.OK() {
		row.Status = report.StatusInvalid
		row.Errors += len(result.Conformance.Failed)
		row.Message = result.Conformance.Failed[0].ID + ": " + result.Conformance.Failed[0].Text
	}

	if outputDir != "" {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".tdd.xml"
		row.Output = filepath.Join(outputDir, name)
		if err := os.WriteFile(row.Output, result.XML, 0o644); err != nil {
			row.Status = report.StatusFailed
			row.Message = fmt.Sprintf("failed to write output: %v", err)
			row.Output = ""
			return row, nil
		}
	}

	return row, result.XML
}

func printFindings(row *report.SummaryRow) {
	if row.Message != "" {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", row.File, row.Status, row.Message)
	}
}

func firstMessage(r *model.ValidationReport) string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	msg := errs[0].Builder + "." + errs[0].Field + ": " + errs[0].Message
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(errs)-1)
	}
	return msg
}

func countFailed(rows []*report.SummaryRow) int {
	n := 0
	for _, r := range rows {
		if r.Status == report.StatusFailed || r.Status == report.StatusInvalid {
			n++
		}
	}
	return n
}
