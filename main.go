// =============================================================================
// Monarch Importer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Monarch Importer CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   monarch-importer process --type customer --file list.csv
//   monarch-importer process --type job --file batch.zip
//   monarch-importer process --type wip --file wip.xlsx
//   monarch-importer version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities and logging setup
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/monarch-importer/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
