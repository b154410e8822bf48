// =============================================================================
// Monarch Importer - Row Parser / Normalizer
// =============================================================================
//
// This module turns heterogeneous raw rows (differing header spellings, Excel
// serial dates, typed-then-stringified values) into a canonical field lookup
// that the mapping tables can consume without defensive checks.
//
// FEATURES:
//   - Ordered header-synonym lookup (case-insensitive, whitespace-trimmed)
//   - Excel 1900-epoch date serial conversion
//   - Generic string-date parsing over a list of accepted layouts
//   - Currency cleanup ("$1,234.50" -> "1234.50"), defaulting to "0.00"
//   - Structural order-id validation for WIP rows
//
// The synonym lists are data, not branching code: new header spellings are
// added to the tables below (or overridden via configuration), never to the
// lookup logic.
//
// =============================================================================

package rowparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// =============================================================================
// HEADER SYNONYM TABLES
// =============================================================================

// Synonyms is an ordered list of acceptable header spellings for one logical
// field. Order matters: the first present, non-empty match wins.
type Synonyms []string

// Default synonym tables for the fields the importers read. These cover the
// header spellings observed across customer exports, order exports and WIP
// job sheets. Additional spellings can be layered on via configuration.
var (
	SynAccountName = Synonyms{"Account Name", "AccountName", "Customer", "Customer Name", "Company"}
	SynInvoice     = Synonyms{"Invoice Number", "Invoice", "Order Number", "Order ID", "OrderID", "Job Number"}
	SynOrderID     = Synonyms{"Order ID", "OrderID", "Order Number", "Job Number", "Job #"}
	SynProduct     = Synonyms{"Product", "Product Name", "Item", "Description", "Project Name"}
	SynProject     = Synonyms{"Project Name", "Project", "Job Name", "Description"}
	SynPONumber    = Synonyms{"PO Number", "PO#", "PO", "Purchase Order", "Customer PO"}
	SynDueDate     = Synonyms{"Due Date", "DueDate", "Ship Date", "Date Due", "Promised Date"}
	SynOrderDate   = Synonyms{"Order Date", "Date Ordered", "Created Date", "Date"}
	SynAmount      = Synonyms{"Amount", "Total", "Order Total", "Order Value", "Price", "Grand Total"}
	SynQuantity    = Synonyms{"Quantity", "Qty", "Qty Ordered"}
	SynSalesRep    = Synonyms{"Sales Rep", "SalesRep", "Rep", "Sales Rep ID", "Salesperson"}
	SynContactID   = Synonyms{"Contact ID", "ContactID", "User ID", "UserID", "Primary Contact"}
	SynEmail       = Synonyms{"Email", "E-mail", "Email Address", "Contact Email"}
)

// orderIDPattern is the structural gate applied to WIP order ids before any
// customer lookup is attempted: 4 to 7 digits, nothing else.
var orderIDPattern = regexp.MustCompile(`^\d{4,7}$`)

// synonymTables names the extendable tables for configuration overrides.
var synonymTables = map[string]*Synonyms{
	"account_name": &SynAccountName,
	"invoice":      &SynInvoice,
	"order_id":     &SynOrderID,
	"product":      &SynProduct,
	"project":      &SynProject,
	"po_number":    &SynPONumber,
	"due_date":     &SynDueDate,
	"order_date":   &SynOrderDate,
	"amount":       &SynAmount,
	"quantity":     &SynQuantity,
	"sales_rep":    &SynSalesRep,
	"contact_id":   &SynContactID,
	"email":        &SynEmail,
}

// ApplyOverrides appends site-specific header spellings to the synonym
// tables. Keys are the logical field names above; unknown keys are ignored.
// Built-in spellings keep priority: overrides are appended, not prepended.
// Called once at startup, before any import runs.
func ApplyOverrides(overrides map[string][]string) {
	for name, extra := range overrides {
		if table, ok := synonymTables[name]; ok {
			*table = append(*table, extra...)
		}
	}
}

// =============================================================================
// FIELD LOOKUP
// =============================================================================

// Lookup finds the first present, non-empty value in the row for any of the
// given synonyms. Header matching is case-insensitive and whitespace-trimmed
// on both sides. Returns the empty string when no synonym matches.
func Lookup(row types.RawRow, synonyms Synonyms) string {
	for _, want := range synonyms {
		key := canonicalKey(want)
		for header, value := range row {
			if canonicalKey(header) != key {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				return v
			}
		}
	}
	return ""
}

// LookupOr is Lookup with a literal fallback for when no synonym matches.
func LookupOr(row types.RawRow, synonyms Synonyms, fallback string) string {
	if v := Lookup(row, synonyms); v != "" {
		return v
	}
	return fallback
}

// canonicalKey normalizes a header name for comparison: lowercased, with all
// whitespace removed. "Order ID", "order id" and "OrderID" all collapse to
// "orderid".
func canonicalKey(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// DATE HANDLING
// =============================================================================

// excelEpochOffsetDays is the day count between the Excel 1900 epoch (with
// its leap-year bug baked in) and the Unix epoch. Serial 25569 is 1970-01-01.
const excelEpochOffsetDays = 25569

// dateLayouts are tried in order when parsing a string date.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate converts a raw date value to "MM/DD/YYYY". It accepts Excel
// 1900-epoch serials (integer or fractional day counts) and common string
// layouts. Unparseable values yield the empty string, never an error:
// a bad date in one column must not fail the whole record.
func ParseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// Excel serial dates arrive as bare numbers. Anything that parses as a
	// float in a plausible serial range is treated as a day count.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < 1 || serial > 200000 {
			return ""
		}
		secs := int64((serial - excelEpochOffsetDays) * 86400)
		return time.Unix(secs, 0).UTC().Format("01/02/2006")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("01/02/2006")
		}
	}

	return ""
}

// =============================================================================
// MONEY HANDLING
// =============================================================================

// ParseMoney cleans a currency value and formats it with two decimals.
// Currency symbols, thousands separators and surrounding whitespace are
// stripped before parsing; parenthesized values are treated as negative.
// Unparseable values format to "0.00".
func ParseMoney(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "0.00"
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "0.00"
	}
	if negative {
		v = -v
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// =============================================================================
// STRUCTURAL VALIDATION
// =============================================================================

// ValidOrderID reports whether a WIP order id passes the structural gate:
// a 4-7 digit numeric value. Rows failing this check are recorded as
// SkippedRows and never reach the customer resolver.
func ValidOrderID(id string) bool {
	return orderIDPattern.MatchString(strings.TrimSpace(id))
}

// =============================================================================
// CUSTOMER ROW NORMALIZATION
// =============================================================================

// customerDefaults are the domain defaults applied to customer rows so that
// the mapping tables never see a missing key. The keys are the canonical
// header spellings the customer mapping table reads.
var customerDefaults = map[string]string{
	"btCountry":      "USA",
	"stCountry":      "USA",
	"financeCharge":  "N",
	"isTaxable":      "N",
	"poRequired":     "N",
	"creditHold":     "N",
	"statementCycle": "M",
	"invoiceCopies":  "1",
	"currency":       "USD",
}

// NormalizeCustomer returns a copy of a customer row with defaults applied.
// The input row is not modified: rows are owned by the batch and treated as
// immutable after decoding.
func NormalizeCustomer(row types.RawRow) types.RawRow {
	out := make(types.RawRow, len(row)+len(customerDefaults))
	for k, v := range row {
		out[k] = strings.TrimSpace(v)
	}
	for key, def := range customerDefaults {
		if Lookup(out, Synonyms{key}) == "" {
			out[key] = def
		}
	}
	return out
}
