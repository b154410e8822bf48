// =============================================================================
// Monarch Importer - Batch Orchestration
// =============================================================================
//
// Shared machinery for the three importers (customer list, job/order, WIP).
//
// STATE MODEL:
//   Each run moves through Parsing -> Grouping (job/WIP) -> Resolving ->
//   Encoding -> Reporting. Parse failures are batch-fatal; resolver misses
//   and structural skips are per-record and never abort a batch.
//
// ERROR BOUNDARY:
//   Importers never panic or return raw errors past their boundary. Every
//   operation returns a types.Result; all internal errors are caught and
//   converted to the failure shape so the caller can render a message and
//   counts without re-parsing anything.
//
// OWNERSHIP:
//   One importer instance owns one run's accumulators (rejections, skips,
//   encoded instances). Use a fresh instance per upload; nothing is shared
//   across runs.
//
// =============================================================================

package importer

import (
	"fmt"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/layout"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// Resolver looks up a Monarch customer identifier by customer name. The
// production implementation is monarch.Client; tests supply fakes.
type Resolver interface {
	Resolve(customerName string) (string, error)
}

// RecordObserver is an optional callback invoked once per encoded record.
// It replaces the old pattern of patching importer behavior after
// construction: viewers and progress reporters compose in via the observer
// instead.
type RecordObserver func(recordType string, inst layout.Instance)

// agentTable builds the immutable sales-agent lookup from configuration.
func agentTable(cfg *config.Config) layout.SalesAgentTable {
	return layout.SalesAgentTable{
		Agents:  cfg.SalesAgents.Table,
		Default: cfg.SalesAgents.Default,
	}
}

// failure builds the failure Result shape.
func failure(format string, args ...any) types.Result {
	return types.Result{
		Success: false,
		Message: fmt.Sprintf(format, args...),
	}
}

// recoverToResult converts a panic inside an importer into the failure
// shape. Decoding third-party spreadsheets has hit slice-bounds panics in
// the past; the boundary guarantee has to hold anyway.
func recoverToResult(result *types.Result) {
	if r := recover(); r != nil {
		*result = failure("internal error: %v", r)
	}
}
