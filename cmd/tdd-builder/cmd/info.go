package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about XML files",
	Long: `Display information about XML files without building anything.

Shows:
  - Detected document kind (Invoice, CreditNote, TaxData)
  - Root element and namespace
  - Identifier, type code and currency of UBL documents

Examples:
  tdd-builder info invoice.xml
  tdd-builder info invoices/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	for _, file := range files {
		printFileInfo(file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	// Get file info
	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	// Read file content
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	name, err := ubl.RootElement(data)
	if err != nil {
		fmt.Printf("  Error: not an XML document (%v)\n", err)
		return
	}
	kind := ubl.DetectKind(data)
	fmt.Printf("  Kind: %s\n", kind)
	fmt.Printf("  Root: %s\n", name.Local)
	if name.Space != "" {
		fmt.Printf("  Namespace: %s\n", name.Space)
	}

	if !kind.IsSource() {
		if kind == model.KindTaxData {
			fmt.Println("  Use 'tdd-builder validate' to check this document")
		}
		return
	}

	src, err := ubl.NewRegistry().Parse(context.Background(), data)
	if err != nil {
		fmt.Printf("  Error parsing document: %v\n", err)
		return
	}
	h := src.Header()
	fmt.Printf("  ID: %s\n", h.ID)
	fmt.Printf("  Issue Date: %s\n", h.IssueDate)
	fmt.Printf("  Type Code: %s\n", src.TypeCode())
	fmt.Printf("  Currency: %s\n", h.DocumentCurrencyCode)
	if h.TaxCurrencyCode != "" {
		fmt.Printf("  Tax Currency: %s\n", h.TaxCurrencyCode)
	}
	fmt.Printf("  Lines: %d\n", len(src.DocumentLines()))
}
