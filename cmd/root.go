// =============================================================================
// Monarch Importer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (monarch-importer)
//   ├── processCmd (monarch-importer process)
//   └── versionCmd (monarch-importer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Initializing logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/pkg/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// cfg is the loaded configuration, available to all commands after
// initialization.
var cfg *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "monarch-importer",

	Short: "Monarch Importer - Convert business record exports to Monarch ERP import files",

	Long: `Monarch Importer is a CLI tool that converts tabular business records
(customer lists, sales orders, work-in-progress job sheets) supplied as
CSV/XLSX/ZIP exports into the fixed-width positional text files consumed by
the Monarch ERP import facility.

Key Features:
  - Byte-exact fixed-width customer (758) and job (561) record layouts
  - Invoice grouping into main and numbered sub jobs
  - Customer resolution against the Monarch directory service
  - Rejection and skip reports for records excluded from the output
  - Automatic archival of processed input files

Example Usage:
  monarch-importer process --type customer --file accounts.csv
  monarch-importer process --type job --file batch.zip
  monarch-importer process --type wip --file wip_sheet.xlsx`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file and initializes logging. Called
// by commands that need configuration (not by version).
func loadConfig() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: cfg.LogFormat})

	rowparser.ApplyOverrides(cfg.HeaderSynonyms)

	return nil
}
