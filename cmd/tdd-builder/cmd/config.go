package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/config"
)

var (
	configOutput string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration as YAML",
	Long: `Write the effective configuration (defaults, config file and
environment) as a YAML file that can be passed to --config.

Examples:
  tdd-builder config init
  tdd-builder config init -o tdd.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "Output file (default: stdout)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if configOutput == "" {
		return config.WriteExample(os.Stdout, cfg)
	}

	if _, err := os.Stat(configOutput); err == nil && !configForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", configOutput)
	}

	f, err := os.Create(configOutput)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := config.WriteExample(f, cfg); err != nil {
		return err
	}
	printVerbose("Configuration written to %s\n", configOutput)
	return nil
}
