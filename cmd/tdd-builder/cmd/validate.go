package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/conformance"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check TDD files for conformance",
	Long: `Check one or more Tax Data Documents against the structural rules
of the TDD schema set ` + conformance.SchemaVersion + ` and ruleset ` + conformance.RulesetVersion + `.

Checks performed:
  - Root element and namespace, mandatory header elements, valid codes
  - 0242 scheme on receiving party and reporter's representative
  - One reported transaction, reported document unless omittable
  - Tax currency pairing and amount currencies
  - Custom content keys, embedded UBL source document

Examples:
  tdd-builder validate out/invoice.tdd.xml
  tdd-builder validate out/ -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult holds the conformance outcome of one file
type ValidationResult struct {
	File   string              `json:"file"`
	Valid  bool                `json:"valid"`
	Report *conformance.Report `json:"report,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	validator := conformance.NewStructuralValidator()
	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(validator, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	// Output results
	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
				continue
			}
			fmt.Printf("✗ %s: INVALID\n", r.File)
			if r.Error != "" {
				fmt.Printf("  - %s\n", r.Error)
				continue
			}
			for _, a := range r.Report.Failed {
				fmt.Printf("  - [%s] %s (%s)\n", a.ID, a.Text, a.Location)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(validator conformance.Validator, filePath string) *ValidationResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := &ValidationResult{File: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	report, err := validator.Validate(ctx, data)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Report = report
	result.Valid = report.OK()
	return result
}
