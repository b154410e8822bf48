// =============================================================================
// Monarch Importer - Record Validation
// =============================================================================
//
// This module provides the pre-import checks that run on each record before
// any directory lookup or encoding happens. It covers:
//   - Structural key checks (order id shape)
//   - Required field checks (customer name)
//
// VALIDATION STRATEGY:
//   Checks are performed per record and issues are collected, never thrown:
//   one bad record must not abort the batch. Each issue carries a severity
//   that decides which bookkeeping bucket the record lands in:
//
//   "skip"   : structural defect - the row is not a processable record at
//              all (e.g. a subtotal line without a numeric order id). These
//              feed the skip report and never reach the resolver.
//   "reject" : a processable record that fails a business rule (e.g. no
//              customer name to resolve). These feed the rejection report.
//
// ERROR HANDLING:
//   - Each issue includes field, value and rule context for troubleshooting
//   - Issue implements the error interface so callers can log it directly
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity values for Issue.
const (
	// SeveritySkip marks a structurally invalid row (skip report bucket).
	SeveritySkip = "skip"

	// SeverityReject marks a business-rule failure (rejection report bucket).
	SeverityReject = "reject"
)

// Issue represents a single validation finding for one record.
type Issue struct {
	// Severity is SeveritySkip or SeverityReject.
	Severity string

	// Field is the logical name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is the human-readable reason written to the report.
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	return fmt.Sprintf("[%s] Field '%s': %s (value: '%s')",
		strings.ToUpper(i.Severity), i.Field, i.Message, i.Value)
}

// =============================================================================
// RECORD CHECKS
// =============================================================================

// CheckWIPRow validates one work-in-progress row. The structural order-id
// gate runs before the required-field check so subtotal and banner rows
// land in the skip bucket rather than the rejection report.
//
// RETURNS:
//   - nil when the row is processable, otherwise the first Issue found.
func CheckWIPRow(row types.RawRow) *Issue {
	orderID := rowparser.Lookup(row, rowparser.SynOrderID)

	if !rowparser.ValidOrderID(orderID) {
		return &Issue{
			Severity: SeveritySkip,
			Field:    "order id",
			Value:    orderID,
			Rule:     "order_id_format",
			Message:  fmt.Sprintf("Invalid order id %q: expected 4-7 digits", orderID),
		}
	}

	return checkCustomerName(row)
}

// CheckOrderGroup validates the main row of an invoice group. Group-level
// checks run once per invoice, not once per line item.
func CheckOrderGroup(main types.RawRow) *Issue {
	return checkCustomerName(main)
}

// checkCustomerName enforces the one field no import can proceed without:
// a resolvable customer name.
func checkCustomerName(row types.RawRow) *Issue {
	if rowparser.Lookup(row, rowparser.SynAccountName) == "" {
		return &Issue{
			Severity: SeverityReject,
			Field:    "customer name",
			Rule:     "required",
			Message:  "Missing customer name",
		}
	}
	return nil
}
