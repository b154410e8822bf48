// =============================================================================
// Monarch Importer - Job/Order Import
// =============================================================================
//
// Converts order exports into 561-byte Monarch job records. The upload is a
// ZIP container whose members are classified by filename substring
// ("customer", "order", "payment"), or a single delimited order file.
//
// PIPELINE:
//   parse -> group by invoice -> resolve customer (once per group, not once
//   per line) -> encode main + sub job lines -> rejection report.
//
// A group whose customer cannot be resolved is excluded from the output and
// recorded as one RejectedRecord; the batch continues. Resolution is issued
// sequentially because the rejection and output accumulators are owned by
// the single run goroutine.
//
// =============================================================================

package importer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/csvparser"
	"github.com/ginjaninja78/monarch-importer/internal/grouper"
	"github.com/ginjaninja78/monarch-importer/internal/layout"
	"github.com/ginjaninja78/monarch-importer/internal/monarch"
	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
	"github.com/ginjaninja78/monarch-importer/internal/validation"
	"github.com/ginjaninja78/monarch-importer/pkg/logger"
	"github.com/ginjaninja78/monarch-importer/pkg/utils"
)

// JobImporter orchestrates one job/order import run.
type JobImporter struct {
	cfg      *config.Config
	resolver Resolver

	// OnRecordEncoded, when set, is called once per encoded record.
	OnRecordEncoded RecordObserver
}

// NewJobImporter creates a fresh importer for one run. resolver is usually
// monarch.NewClient(...); tests inject fakes.
func NewJobImporter(cfg *config.Config, resolver Resolver) *JobImporter {
	return &JobImporter{cfg: cfg, resolver: resolver}
}

// ImportFile decodes the input (a .zip container or a single .csv order
// file) and runs the import.
func (ji *JobImporter) ImportFile(path string) (result types.Result) {
	defer recoverToResult(&result)

	var orders, customers, payments []types.RawRow

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := csvparser.Parse(path, ji.cfg.CSV)
		if err != nil {
			return failure("failed to parse order file: %v", err)
		}
		orders = data.Rows

	case ".zip":
		members, err := utils.ExtractArchive(path)
		if err != nil {
			return failure("failed to open archive: %v", err)
		}
		for _, m := range members {
			data, err := csvparser.ParseReader(bytes.NewReader(m.Data), ji.cfg.CSV)
			if err != nil {
				return failure("failed to parse archive member %s: %v", m.Name, err)
			}
			switch m.Kind {
			case "order":
				orders = append(orders, data.Rows...)
			case "customer":
				customers = append(customers, data.Rows...)
			case "payment":
				payments = append(payments, data.Rows...)
			}
		}
		if orders == nil {
			return failure("archive contains no order file")
		}

	default:
		return failure("unsupported file format: %s", filepath.Ext(path))
	}

	return ji.ImportRows(orders, customers, payments)
}

// ImportRows runs the import on already-decoded rows. customers and
// payments may be nil; when present they backfill contact details and paid
// amounts respectively.
func (ji *JobImporter) ImportRows(orders, customers, payments []types.RawRow) (result types.Result) {
	defer recoverToResult(&result)

	log := logger.ForRun("job", "")

	if len(orders) == 0 {
		return failure("order file contains no rows")
	}

	agents := agentTable(ji.cfg)
	contacts := buildContactIndex(customers)
	paid := buildPaymentIndex(payments)

	groups := grouper.Group(orders)

	var instances []layout.Instance
	var rejections []types.RejectedRecord

	for _, group := range groups {
		main := group.Rows[0]
		customerName := rowparser.Lookup(main, rowparser.SynAccountName)

		reject := func(reason string) {
			rejections = append(rejections, types.RejectedRecord{
				SourceID:     group.Invoice,
				CustomerName: customerName,
				Product:      rowparser.Lookup(main, rowparser.SynProduct),
				PONumber:     rowparser.Lookup(main, rowparser.SynPONumber),
				DueDate:      rowparser.ParseDate(rowparser.Lookup(main, rowparser.SynDueDate)),
				Amount:       rowparser.ParseMoney(rowparser.Lookup(main, rowparser.SynAmount)),
				Reason:       reason,
			})
		}

		if issue := validation.CheckOrderGroup(main); issue != nil {
			reject(issue.Message)
			continue
		}

		// One lookup per invoice group, not one per line item.
		customerID, err := ji.resolver.Resolve(customerName)
		if err != nil {
			if errors.Is(err, monarch.ErrNotFound) {
				reject("Customer not found in Monarch database")
			} else {
				reject("API Error: " + err.Error())
			}
			log.Warn("invoice group rejected", "invoice", group.Invoice, "customer", customerName, "error", err)
			continue
		}

		for i, row := range group.Rows {
			subJobID := ""
			if i > 0 {
				subJobID = grouper.SubJobID(i)
			}

			merged := mergeAuxiliary(row, contacts[customerName], paid[group.Invoice])
			inst := layout.MapJob(merged, group.JobID, subJobID, customerID, agents)
			instances = append(instances, inst)
			if ji.OnRecordEncoded != nil {
				ji.OnRecordEncoded("job", inst)
			}
		}
	}

	output := layout.EncodeBatch(instances, layout.JobLayout, layout.WriteNonEmpty)

	report := ""
	if len(rejections) > 0 {
		report = JobRejectionReport(rejections)
	}

	log.Info("job import complete",
		"groups", len(groups),
		"records", len(instances),
		"rejected", len(rejections))

	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Processed %d invoices: %d job lines encoded, %d rejected",
			len(groups), len(instances), len(rejections)),
		Output:          output,
		RejectionReport: report,
		Summary: types.Summary{
			RowsParsed:     len(orders),
			RecordsEncoded: len(instances),
			GroupsCreated:  len(groups),
			Rejected:       len(rejections),
		},
	}
}

// buildContactIndex indexes customer rows by account name so order lines can
// be backfilled with contact details.
func buildContactIndex(customers []types.RawRow) map[string]types.RawRow {
	index := make(map[string]types.RawRow, len(customers))
	for _, row := range customers {
		if name := rowparser.Lookup(row, rowparser.SynAccountName); name != "" {
			if _, exists := index[name]; !exists {
				index[name] = row
			}
		}
	}
	return index
}

// buildPaymentIndex indexes payment rows by invoice number.
func buildPaymentIndex(payments []types.RawRow) map[string]types.RawRow {
	index := make(map[string]types.RawRow, len(payments))
	for _, row := range payments {
		if invoice := rowparser.Lookup(row, rowparser.SynInvoice); invoice != "" {
			if _, exists := index[invoice]; !exists {
				index[invoice] = row
			}
		}
	}
	return index
}

// mergeAuxiliary overlays contact and payment data onto an order line
// without mutating the original row. Order-line values win; auxiliary files
// only fill gaps.
func mergeAuxiliary(row types.RawRow, contact, payment types.RawRow) types.RawRow {
	if contact == nil && payment == nil {
		return row
	}

	merged := make(types.RawRow, len(row)+len(contact)+len(payment))
	for k, v := range contact {
		merged[k] = v
	}
	for k, v := range payment {
		merged[k] = v
	}
	for k, v := range row {
		if strings.TrimSpace(v) != "" {
			merged[k] = v
		} else if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return merged
}
