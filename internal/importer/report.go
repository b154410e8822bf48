// =============================================================================
// Monarch Importer - Rejection Reports
// =============================================================================
//
// Rejected records are excluded from the fixed-width output but must always
// be individually reportable. The reports are plain CSV with the exact
// header rows the back office expects; fields containing commas or quotes
// are double-quote-escaped by encoding/csv.
//
// =============================================================================

package importer

import (
	"encoding/csv"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// JobRejectionReport renders the rejection report for the job/order import.
func JobRejectionReport(rejections []types.RejectedRecord) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Invoice Number", "Customer Name", "Product", "PO Number", "Due Date", "Amount", "Rejection Reason"})
	for _, r := range rejections {
		w.Write([]string{r.SourceID, r.CustomerName, r.Product, r.PONumber, r.DueDate, r.Amount, r.Reason})
	}

	w.Flush()
	return b.String()
}

// WIPRejectionReport renders the rejection report for the WIP import.
func WIPRejectionReport(rejections []types.RejectedRecord) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Order ID", "Customer Name", "Project Name", "Due Date", "Order Value", "Rejection Reason"})
	for _, r := range rejections {
		w.Write([]string{r.SourceID, r.CustomerName, r.Product, r.DueDate, r.Amount, r.Reason})
	}

	w.Flush()
	return b.String()
}

// WIPSkipReport renders the skipped-row report for the WIP import. Skipped
// rows failed the structural order-id check before any lookup was attempted,
// so the report carries only what the row itself provided.
func WIPSkipReport(skipped []types.SkippedRow) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Order ID", "Customer Name", "Skip Reason"})
	for _, s := range skipped {
		w.Write([]string{s.OrderID, s.CustomerName, s.Reason})
	}

	w.Flush()
	return b.String()
}
