// =============================================================================
// Monarch Importer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts input files into
// Monarch fixed-width import files.
//
// COMMAND USAGE:
//   monarch-importer process [flags]
//
// FLAGS:
//   --type        : Record type to import (customer, job, wip)
//   --file        : Path to a specific file to process
//   --dry-run     : Run the conversion without writing output files
//
// PROCESSING PIPELINE:
//   1. Load configuration and initialize logging
//   2. Select the input files (--file, or scan the input directory)
//   3. For each file (sequentially):
//      a. Decode the input (CSV / ZIP container / XLSX workbook)
//      b. Run the matching importer (customer, job or WIP)
//      c. Write the fixed-width output and any rejection/skip reports
//      d. Archive the processed input
//   4. Print a summary
//
// Files are processed one at a time: each run owns its own rejection and
// output accumulators, and customer resolution is issued sequentially
// against the Monarch directory.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/monarch-importer/internal/importer"
	"github.com/ginjaninja78/monarch-importer/internal/monarch"
	"github.com/ginjaninja78/monarch-importer/internal/types"
	"github.com/ginjaninja78/monarch-importer/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// recordType selects which importer runs: "customer", "job" or "wip".
// When empty, the type is inferred from the file name.
var recordType string

// inputFile is the path to a specific file to process. When empty, the
// input directory is scanned.
var inputFile string

// dryRun runs the conversion without writing output files.
var dryRun bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert input files to Monarch fixed-width import files",
	Long: `The process command converts business record exports into the fixed-width
positional text files consumed by the Monarch ERP import facility.

Three record types are supported:
  customer : CRM account export (.csv, or .zip with customer + user files)
  job      : order export (.zip with customer/order/payment files, or .csv)
  wip      : work-in-progress job sheet (.xlsx or .csv)

On successful processing:
  - The fixed-width file is placed in the output directory
  - Rejection and skip reports (CSV) are written alongside it
  - The input file is moved to the archive directory

A customer that cannot be resolved against the Monarch directory rejects
that record only; the batch continues and reports the rejection counts.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&recordType,
		"type",
		"",
		"Record type to import: customer, job or wip (inferred from file name when omitted)",
	)

	processCmd.Flags().StringVar(
		&inputFile,
		"file",
		"",
		"Path to a specific file to process (scans the input directory when omitted)",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the conversion without writing output files",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the conversion pipeline.
func runProcess() error {
	startTime := time.Now()

	if err := loadConfig(); err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	fm.ArchiveOnSuccess = !dryRun
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// Select the input files.
	var files []string
	if inputFile != "" {
		files = []string{inputFile}
	} else {
		discovered, err := fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
		files = discovered
	}

	if len(files) == 0 {
		fmt.Println("No input files found.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(files))

	var successCount, errorCount int
	for _, file := range files {
		if err := processFile(fm, file); err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
		} else {
			successCount++
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:  %d\n", len(files))
	fmt.Printf("Successful:   %d\n", successCount)
	fmt.Printf("Errors:       %d\n", errorCount)
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime))

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) failed", errorCount)
	}
	return nil
}

// processFile runs one importer batch for one input file.
func processFile(fm *utils.FileManager, file string) error {
	rtype := recordType
	if rtype == "" {
		rtype = inferRecordType(file)
	}

	var result types.Result
	switch rtype {
	case "customer":
		result = importer.NewCustomerImporter(cfg).ImportFile(file)
	case "job":
		result = importer.NewJobImporter(cfg, newResolver()).ImportFile(file)
	case "wip":
		result = importer.NewWIPImporter(cfg, newResolver()).ImportFile(file)
	default:
		return fmt.Errorf("cannot determine record type for %s (use --type)", filepath.Base(file))
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Printf("  ✓ %s: %s\n", filepath.Base(file), result.Message)

	if dryRun {
		return nil
	}

	outputPath, err := fm.WriteOutput(cfg.OutputNameFormat, rtype, result.Output)
	if err != nil {
		return err
	}
	fmt.Printf("    -> %s\n", outputPath)

	if result.RejectionReport != "" {
		reportPath, err := fm.WriteOutput("{type}_rejections_{timestamp}.csv", rtype, result.RejectionReport)
		if err != nil {
			return err
		}
		fmt.Printf("    -> %s (%d rejected)\n", reportPath, result.Summary.Rejected)
	}

	if result.SkipReport != "" {
		skipPath, err := fm.WriteOutput("{type}_skipped_{timestamp}.csv", rtype, result.SkipReport)
		if err != nil {
			return err
		}
		fmt.Printf("    -> %s (%d skipped)\n", skipPath, result.Summary.Skipped)
	}

	if _, err := fm.ArchiveInputFile(file); err != nil {
		// Archival failure is not worth failing the batch over; the
		// output is already written.
		fmt.Printf("    ! failed to archive input: %v\n", err)
	}

	return nil
}

// newResolver builds the Monarch directory client from configuration.
func newResolver() importer.Resolver {
	return monarch.NewClient(monarch.Config{
		BaseURL:  cfg.Monarch.BaseURL,
		Username: cfg.Monarch.Username,
		Password: cfg.Monarch.Password,
		Timeout:  cfg.Monarch.Timeout(),
	})
}

// inferRecordType guesses the record type from the file name, matching how
// upload batches are conventionally named.
func inferRecordType(file string) string {
	name := strings.ToLower(filepath.Base(file))
	switch {
	case strings.Contains(name, "wip"):
		return "wip"
	case strings.Contains(name, "customer") || strings.Contains(name, "account"):
		return "customer"
	case strings.Contains(name, "job") || strings.Contains(name, "order"):
		return "job"
	}
	return ""
}
