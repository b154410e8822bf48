// =============================================================================
// Monarch Importer - Invoice/Order Grouper
// =============================================================================
//
// This module groups order line-items by invoice number and derives the job
// identifiers Monarch expects. Within a group, the first line (by original
// file order) becomes the "main job" with a blank sub-job id; subsequent
// lines become numbered sub-jobs.
//
// KNOWN BEHAVIOR:
//   Rows with an empty invoice number all share the empty-string group key,
//   which can merge unrelated orders into one synthetic job. This matches
//   the historical importer behavior and is pinned by a test; fix it only
//   together with the Monarch side.
//
// =============================================================================

package grouper

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// Group partitions order lines into invoice groups, preserving first-seen
// group order and original row order within each group.
func Group(rows []types.RawRow) []types.InvoiceGroup {
	index := make(map[string]int)
	var groups []types.InvoiceGroup

	for _, row := range rows {
		invoice := strings.TrimSpace(rowparser.Lookup(row, rowparser.SynInvoice))
		i, ok := index[invoice]
		if !ok {
			i = len(groups)
			index[invoice] = i
			groups = append(groups, types.InvoiceGroup{
				Invoice: invoice,
				JobID:   JobID(invoice),
			})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}

// JobID derives the 8-character job id for an order invoice number: leading
// zeros are dropped and the remainder is left-aligned in an 8-character
// space-padded field ("520" -> "520     ", "00123" -> "123     "). An empty
// invoice yields 8 spaces.
func JobID(invoice string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(invoice), "0")
	if len(trimmed) > 8 {
		trimmed = trimmed[:8]
	}
	return trimmed + strings.Repeat(" ", 8-len(trimmed))
}

// WIPJobID derives the job id for a WIP order id: a literal "N" prefix, then
// space-padded to 8 characters ("12345" -> "N12345  "). WIP ids pass the
// 4-7 digit structural gate before reaching this point, so the result always
// fits.
func WIPJobID(orderID string) string {
	id := "N" + strings.TrimSpace(orderID)
	if len(id) > 8 {
		id = id[:8]
	}
	return id + strings.Repeat(" ", 8-len(id))
}

// SubJobID formats a 1-based sub-job index into its 4-character field
// (1 -> "1   ").
func SubJobID(index int) string {
	return fmt.Sprintf("%-4d", index)
}

// =============================================================================
// DESCRIPTION CLEANUP
// =============================================================================

// CleanDescription strips the shipping-address and sample annotations that
// upstream product names embed after a " : " delimiter, so they never appear
// in the Monarch job title.
//
// Rules:
//   - A description that is exactly "Shipping" (any case) passes through.
//   - If the description contains " : ", the remainder after the delimiter
//     is truncated at " - Sample" or at a generic " - " continuation, and
//     the prefix and truncated remainder are rejoined.
//
// Example: "Booklet - 6.5in : mailing - Sample" -> "Booklet - 6.5in : mailing"
func CleanDescription(desc string) string {
	if strings.EqualFold(strings.TrimSpace(desc), "Shipping") {
		return desc
	}

	prefix, remainder, found := strings.Cut(desc, " : ")
	if !found {
		return desc
	}

	if i := strings.Index(remainder, " - Sample"); i >= 0 {
		remainder = remainder[:i]
	} else if i := strings.Index(remainder, " - "); i >= 0 {
		remainder = remainder[:i]
	}

	return prefix + " : " + remainder
}
