// =============================================================================
// Monarch Importer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - rowparser
//   - grouper
//   - layout
//   - importer
//
// =============================================================================

package types

// =============================================================================
// INPUT TYPES
// =============================================================================

// RawRow is one decoded input line: a mapping from header name to raw value.
// Header names are whatever the source file used; the rowparser package is
// responsible for locating fields by synonym, so no fixed schema is assumed.
//
// Values are already stringified by the decoding layer (csvparser/xlsxparser).
// A RawRow is immutable after creation.
type RawRow map[string]string

// =============================================================================
// GROUPING TYPES
// =============================================================================

// InvoiceGroup is an ordered set of order lines sharing one invoice number.
// The first row (by original file order) is the "main job"; subsequent rows
// are "sub jobs" numbered 1..N-1.
type InvoiceGroup struct {
	// Invoice is the grouping key. It may be empty when the source rows
	// carried no invoice number; such rows all land in the same group.
	Invoice string

	// JobID is the 8-character job identifier derived from Invoice.
	JobID string

	// Rows contains the member order lines in original file order.
	// Invariant: never empty.
	Rows []RawRow
}

// =============================================================================
// FAILURE BOOKKEEPING TYPES
// =============================================================================

// RejectedRecord captures a record that could not be completed, most commonly
// because the customer name was not found in the Monarch directory. Rejected
// records are excluded from the fixed-width output but are never silently
// dropped: every one is counted and individually reportable.
type RejectedRecord struct {
	// SourceID is the invoice number (job import) or order id (WIP import).
	SourceID string

	// CustomerName is the customer name the lookup was attempted with.
	CustomerName string

	// Product is the product or project name, for the rejection report.
	Product string

	// PONumber is the purchase order number, if any (job import only).
	PONumber string

	// DueDate is the due date as it appeared after normalization.
	DueDate string

	// Amount is the order amount as it appeared after normalization.
	Amount string

	// Reason is the human-readable rejection reason, e.g.
	// "Customer not found in Monarch database" or "API Error: <message>".
	Reason string
}

// SkippedRow captures a WIP input row whose key field failed the structural
// validity check before any customer lookup was attempted. Tracked separately
// from RejectedRecord because the failure is a data-quality issue in the
// input file, not an external-lookup issue.
type SkippedRow struct {
	// OrderID is the offending key value as found in the row.
	OrderID string

	// CustomerName is carried along for the skip report.
	CustomerName string

	// Reason describes the structural failure.
	Reason string
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result is the discriminated outcome of one importer run. Orchestrators
// never panic or return raw errors past their boundary; every internal
// failure is converted into a Result with Success=false.
type Result struct {
	// Success indicates whether the batch produced output. Per-record
	// rejections do not flip this to false; only batch-level failures
	// (unsupported format, unparseable input) do.
	Success bool

	// Message is a short, user-facing description of the outcome.
	Message string

	// Output is the generated fixed-width text, one newline-terminated
	// line per encoded record. Empty when Success is false.
	Output string

	// RejectionReport is the CSV rejection report, when any records were
	// rejected. Empty otherwise.
	RejectionReport string

	// SkipReport is the CSV skipped-row report (WIP import only), when any
	// rows failed the structural key check. Empty otherwise.
	SkipReport string

	// Summary holds machine-readable counts for the caller.
	Summary Summary
}

// Summary contains processing counts for one importer run.
type Summary struct {
	// RowsParsed is the number of input rows decoded from the source file(s).
	RowsParsed int

	// RecordsEncoded is the number of fixed-width lines produced.
	RecordsEncoded int

	// CustomersProcessed is the number of customer records encoded
	// (customer import only).
	CustomersProcessed int

	// UsersProcessed is the number of user/contact rows seen
	// (customer import only).
	UsersProcessed int

	// EmailsMatched is the number of customer records whose e-mail was
	// backfilled from the users file (customer import only).
	EmailsMatched int

	// GroupsCreated is the number of invoice groups formed (job import only).
	GroupsCreated int

	// Rejected is the number of RejectedRecords accumulated.
	Rejected int

	// Skipped is the number of SkippedRows accumulated (WIP import only).
	Skipped int
}
