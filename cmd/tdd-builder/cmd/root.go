package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/config"
	"github.com/rezonia/tdd-builder/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configFile   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tdd-builder",
	Short: "Build Peppol Tax Data Documents from UBL invoices",
	Long: `TDD Builder creates Peppol Tax Data Documents (TDD) from UBL 2.1
invoices and credit notes and checks them for conformance.

Configuration is read from an optional YAML file (--config) and from
TDD_ prefixed environment variables, e.g. TDD_REPORTER_RECEIVING_PARTY.
A .env file in the working directory is loaded first.

Examples:
  # Build a TDD and print it
  tdd-builder build invoice.xml

  # Build TDDs for a directory, write a summary workbook
  tdd-builder build invoices/ --output-dir out --summary summary.xlsx

  # Check a TDD
  tdd-builder validate out/invoice.tdd.xml

  # Derive a document UUID
  tdd-builder uuid5 0088 5060012349998 380 33445566 2026-01-13`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (YAML)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig := cfg.LoggerConfig()
	if verbose {
		logConfig.Level = "debug"
	}
	return logger.Setup(logConfig)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				files = append(files, match)
				continue
			}
			// Walk directory
			err = filepath.Walk(match, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isSupportedFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xml"
}
