// =============================================================================
// Monarch Importer - Job Record Layout
// =============================================================================
//
// Fixed-width job / sub-job record: 561 bytes per line (560 data bytes plus
// one trailing pad byte). Used by both the order import and the WIP import;
// the two differ only in how the job id is derived and in which source
// columns feed the descriptive fields.
//
// =============================================================================

package layout

import (
	"github.com/ginjaninja78/monarch-importer/internal/grouper"
	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// JobLayout is the Monarch job import record: 24 fields over a 561-byte line.
var JobLayout = Layout{
	LineLen: 561,
	Fields: []Field{
		{Name: "job_id", Pos: 1, Len: 8},
		{Name: "sub_job_id", Pos: 9, Len: 4},
		{Name: "job_description", Pos: 13, Len: 254},
		{Name: "job_type", Pos: 267, Len: 19},
		{Name: "customer_id", Pos: 286, Len: 8},
		{Name: "po_number", Pos: 294, Len: 20},
		{Name: "due_date", Pos: 314, Len: 10},
		{Name: "quantity", Pos: 324, Len: 12},
		{Name: "unit_price", Pos: 336, Len: 14},
		{Name: "amount", Pos: 350, Len: 14},
		{Name: "sales_rep", Pos: 364, Len: 10},
		{Name: "taken_by", Pos: 374, Len: 10},
		{Name: "order_date", Pos: 384, Len: 10},
		{Name: "ship_via", Pos: 394, Len: 15},
		{Name: "priority", Pos: 409, Len: 2},
		{Name: "unit_of_measure", Pos: 411, Len: 10},
		{Name: "job_status", Pos: 421, Len: 4},
		{Name: "billing_code", Pos: 425, Len: 4},
		{Name: "department", Pos: 429, Len: 10},
		{Name: "promise_date", Pos: 439, Len: 10},
		{Name: "contact_name", Pos: 449, Len: 30},
		{Name: "contact_phone", Pos: 479, Len: 17},
		{Name: "job_title", Pos: 496, Len: 50},
		{Name: "forest_type_id", Pos: 546, Len: 15},
	},
}

// =============================================================================
// SALES AGENT TABLE
// =============================================================================

// SalesAgentTable maps sales-representative ids from the source system to
// named Monarch sales agents. The table is immutable configuration data
// injected per run; it is never mutated by the mapping functions.
type SalesAgentTable struct {
	Agents  map[string]string
	Default string
}

// Resolve returns the agent name for a rep id, falling back to the default
// agent when the id is unknown or empty.
func (t SalesAgentTable) Resolve(repID string) string {
	if name, ok := t.Agents[repID]; ok {
		return name
	}
	return t.Default
}

// =============================================================================
// ORDER-LINE MAPPING
// =============================================================================

// MapJob binds one order line to the job layout. jobID and subJobID come
// from the invoice grouper: the main job carries a blank subJobID, sub jobs
// carry their 1-based index. customerID is the resolved Monarch customer
// identifier for the invoice's customer (at most 8 characters).
func MapJob(row types.RawRow, jobID, subJobID, customerID string, agents SalesAgentTable) Instance {
	description := grouper.CleanDescription(rowparser.Lookup(row, rowparser.SynProduct))

	return Instance{
		"job_id":          jobID,
		"sub_job_id":      subJobID,
		"job_description": description,
		"job_type":        "Commercial Print",
		"customer_id":     customerID,
		"po_number":       rowparser.Lookup(row, rowparser.SynPONumber),
		"due_date":        rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynDueDate)),
		"quantity":        rowparser.LookupOr(row, rowparser.SynQuantity, "1"),
		"unit_price":      rowparser.ParseMoney(rowparser.Lookup(row, synUnitPrice)),
		"amount":          rowparser.ParseMoney(rowparser.Lookup(row, rowparser.SynAmount)),
		"sales_rep":       agents.Resolve(rowparser.Lookup(row, rowparser.SynSalesRep)),
		"taken_by":        "IMPORT",
		"order_date":      rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynOrderDate)),
		"ship_via":        rowparser.Lookup(row, synJobShipVia),
		"priority":        "",
		"unit_of_measure": "Each",
		"job_status":      "O",
		"billing_code":    "",
		"department":      "",
		"promise_date":    rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynDueDate)),
		"contact_name":    rowparser.Lookup(row, synJobContact),
		"contact_phone":   rowparser.Lookup(row, synJobPhone),
		"job_title":       description,
		"forest_type_id":  "",
	}
}

// MapWIP binds one work-in-progress row to the job layout. WIP rows are
// single jobs (no sub-job lines); the job id carries the "N" prefix that
// distinguishes WIP-loaded jobs in Monarch.
func MapWIP(row types.RawRow, customerID string, agents SalesAgentTable) Instance {
	description := grouper.CleanDescription(rowparser.Lookup(row, rowparser.SynProject))

	return Instance{
		"job_id":          grouper.WIPJobID(rowparser.Lookup(row, rowparser.SynOrderID)),
		"sub_job_id":      "",
		"job_description": description,
		"job_type":        "Work In Progress",
		"customer_id":     customerID,
		"po_number":       rowparser.Lookup(row, rowparser.SynPONumber),
		"due_date":        rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynDueDate)),
		"quantity":        rowparser.LookupOr(row, rowparser.SynQuantity, "1"),
		"unit_price":      "",
		"amount":          rowparser.ParseMoney(rowparser.Lookup(row, rowparser.SynAmount)),
		"sales_rep":       agents.Resolve(rowparser.Lookup(row, rowparser.SynSalesRep)),
		"taken_by":        "WIP",
		"order_date":      rowparser.ParseDate(rowparser.Lookup(row, rowparser.SynOrderDate)),
		"ship_via":        "",
		"priority":        "",
		"unit_of_measure": "Each",
		"job_status":      "O",
		"billing_code":    "",
		"department":      "",
		"promise_date":    "",
		"contact_name":    rowparser.Lookup(row, synJobContact),
		"contact_phone":   rowparser.Lookup(row, synJobPhone),
		"job_title":       description,
		"forest_type_id":  "",
	}
}

// Synonyms specific to order / WIP sheets.
var (
	synUnitPrice  = rowparser.Synonyms{"Unit Price", "UnitPrice", "Price Each", "Each Price"}
	synJobShipVia = rowparser.Synonyms{"Ship Via", "Shipping Method", "Ship Method"}
	synJobContact = rowparser.Synonyms{"Contact", "Contact Name", "Ordered By"}
	synJobPhone   = rowparser.Synonyms{"Phone", "Contact Phone", "Phone Number"}
)
