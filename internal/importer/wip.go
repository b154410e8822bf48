// =============================================================================
// Monarch Importer - Work-In-Progress Import
// =============================================================================
//
// Converts a WIP job sheet (one spreadsheet) into 561-byte Monarch job
// records with "N"-prefixed job ids.
//
// PIPELINE:
//   parse -> structural filter -> resolve customer -> encode -> reports.
//
// The structural filter runs before any directory lookup: rows whose order
// id is not a 4-7 digit number are recorded as SkippedRows (a data-quality
// bucket, distinct from lookup rejections) and never reach the resolver.
//
// =============================================================================

package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/csvparser"
	"github.com/ginjaninja78/monarch-importer/internal/layout"
	"github.com/ginjaninja78/monarch-importer/internal/monarch"
	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
	"github.com/ginjaninja78/monarch-importer/internal/validation"
	"github.com/ginjaninja78/monarch-importer/internal/xlsxparser"
	"github.com/ginjaninja78/monarch-importer/pkg/logger"
)

// WIPImporter orchestrates one work-in-progress import run.
type WIPImporter struct {
	cfg      *config.Config
	resolver Resolver

	// OnRecordEncoded, when set, is called once per encoded record.
	OnRecordEncoded RecordObserver
}

// NewWIPImporter creates a fresh importer for one run.
func NewWIPImporter(cfg *config.Config, resolver Resolver) *WIPImporter {
	return &WIPImporter{cfg: cfg, resolver: resolver}
}

// ImportFile decodes the input (.xlsx workbook or .csv export) and runs the
// import.
func (wi *WIPImporter) ImportFile(path string) (result types.Result) {
	defer recoverToResult(&result)

	var rows []types.RawRow

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		data, err := xlsxparser.Parse(path)
		if err != nil {
			return failure("failed to parse WIP workbook: %v", err)
		}
		rows = data.Rows

	case ".csv":
		data, err := csvparser.Parse(path, wi.cfg.CSV)
		if err != nil {
			return failure("failed to parse WIP file: %v", err)
		}
		rows = data.Rows

	default:
		return failure("unsupported file format: %s", filepath.Ext(path))
	}

	return wi.ImportRows(rows)
}

// ImportRows runs the import on already-decoded rows.
func (wi *WIPImporter) ImportRows(rows []types.RawRow) (result types.Result) {
	defer recoverToResult(&result)

	log := logger.ForRun("wip", "")

	if len(rows) == 0 {
		return failure("WIP sheet contains no rows")
	}

	agents := agentTable(wi.cfg)

	var instances []layout.Instance
	var rejections []types.RejectedRecord
	var skipped []types.SkippedRow

	for _, row := range rows {
		orderID := rowparser.Lookup(row, rowparser.SynOrderID)
		customerName := rowparser.Lookup(row, rowparser.SynAccountName)

		reject := func(reason string) {
			rejections = append(rejections, types.RejectedRecord{
				SourceID:     orderID,
				CustomerName: customerName,
				Product:      rowparser.Lookup(row, rowparser.SynProject),
				DueDate:      rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynDueDate)),
				Amount:       rowparser.ParseMoney(rowparser.Lookup(row, rowparser.SynAmount)),
				Reason:       reason,
			})
		}

		// Skips come first: malformed keys never reach the resolver.
		if issue := validation.CheckWIPRow(row); issue != nil {
			if issue.Severity == validation.SeveritySkip {
				skipped = append(skipped, types.SkippedRow{
					OrderID:      orderID,
					CustomerName: customerName,
					Reason:       issue.Message,
				})
			} else {
				reject(issue.Message)
			}
			continue
		}

		customerID, err := wi.resolver.Resolve(customerName)
		if err != nil {
			if errors.Is(err, monarch.ErrNotFound) {
				reject("Customer not found in Monarch database")
			} else {
				reject("API Error: " + err.Error())
			}
			log.Warn("WIP row rejected", "order_id", orderID, "customer", customerName, "error", err)
			continue
		}

		inst := layout.MapWIP(row, customerID, agents)
		instances = append(instances, inst)
		if wi.OnRecordEncoded != nil {
			wi.OnRecordEncoded("wip", inst)
		}
	}

	output := layout.EncodeBatch(instances, layout.JobLayout, layout.WriteNonEmpty)

	report := ""
	if len(rejections) > 0 {
		report = WIPRejectionReport(rejections)
	}
	skipReport := ""
	if len(skipped) > 0 {
		skipReport = WIPSkipReport(skipped)
	}

	log.Info("WIP import complete",
		"rows", len(rows),
		"valid", len(instances),
		"skipped", len(skipped),
		"rejected", len(rejections))

	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Processed %d WIP rows: %d encoded, %d skipped, %d rejected",
			len(rows), len(instances), len(skipped), len(rejections)),
		Output:          output,
		RejectionReport: report,
		SkipReport:      skipReport,
		Summary: types.Summary{
			RowsParsed:     len(rows),
			RecordsEncoded: len(instances),
			Rejected:       len(rejections),
			Skipped:        len(skipped),
		},
	}
}
