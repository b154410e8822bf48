// =============================================================================
// Monarch Importer - Customer Record Layout
// =============================================================================
//
// Fixed-width customer record: 758 bytes per line, fields at positions 1-757.
// The source rows come from CRM account exports, which use camelCase headers
// (accountName, btCity, stZipcode, ...); older exports use spaced headers
// ("Account Name", "Billing City"). Both are handled by the synonym lookup.
//
// FIELD DERIVATION:
//   Every field applies its documented fallback chain (source column A, else
//   column B, else literal default) and is truncated to its declared length
//   by the encoder. The literal defaults (USA, USD, DESTINATION, ...) are
//   part of the Monarch contract and must not drift.
//
// =============================================================================

package layout

import (
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

// CustomerLayout is the Monarch customer import record: 53 fields over a
// 758-byte line.
var CustomerLayout = Layout{
	LineLen: 758,
	Fields: []Field{
		{Name: "Cust-code", Pos: 1, Len: 8},
		{Name: "Cust-name", Pos: 9, Len: 40},
		{Name: "Bt-address-1", Pos: 49, Len: 40},
		{Name: "Bt-address-2", Pos: 89, Len: 40},
		{Name: "Bt-address-3", Pos: 129, Len: 40},
		{Name: "Bt-city", Pos: 169, Len: 40},
		{Name: "Bt-state", Pos: 209, Len: 3},
		{Name: "Bt-zip", Pos: 212, Len: 10},
		{Name: "Bt-country", Pos: 222, Len: 20},
		{Name: "Phone", Pos: 242, Len: 14},
		{Name: "Phone-ext", Pos: 256, Len: 6},
		{Name: "Fax", Pos: 262, Len: 20},
		{Name: "Contact-name", Pos: 282, Len: 30},
		{Name: "Contact-email", Pos: 312, Len: 50},
		{Name: "Contact-title", Pos: 362, Len: 10},
		{Name: "Salesperson", Pos: 372, Len: 4},
		{Name: "Terms-code", Pos: 376, Len: 4},
		{Name: "Credit-limit", Pos: 380, Len: 12},
		{Name: "AR-Tax-Code", Pos: 392, Len: 1},
		{Name: "Finance-charge", Pos: 393, Len: 1},
		{Name: "Statement-flag", Pos: 394, Len: 1},
		{Name: "PO-required", Pos: 395, Len: 1},
		{Name: "Currency-code", Pos: 396, Len: 3},
		{Name: "Price-level", Pos: 399, Len: 2},
		{Name: "Ship-via", Pos: 401, Len: 15},
		{Name: "St-name", Pos: 416, Len: 40},
		{Name: "St-address-1", Pos: 456, Len: 40},
		{Name: "St-address-2", Pos: 496, Len: 40},
		{Name: "St-city", Pos: 536, Len: 40},
		{Name: "St-state", Pos: 576, Len: 3},
		{Name: "St-zip", Pos: 579, Len: 10},
		{Name: "St-country", Pos: 589, Len: 20},
		{Name: "Open-date", Pos: 609, Len: 10},
		{Name: "Credit-hold", Pos: 619, Len: 1},
		{Name: "Customer-type", Pos: 620, Len: 4},
		{Name: "Territory", Pos: 624, Len: 4},
		{Name: "Contact-2-name", Pos: 628, Len: 30},
		{Name: "Contact-2-phone", Pos: 658, Len: 20},
		{Name: "Resale-number", Pos: 678, Len: 12},
		{Name: "SIC-code", Pos: 690, Len: 3},
		{Name: "Tax-exempt-cert", Pos: 693, Len: 12},
		{Name: "Tax-schedule", Pos: 705, Len: 3},
		{Name: "Late-charge-rate", Pos: 708, Len: 6},
		{Name: "Discount-percent", Pos: 714, Len: 6},
		{Name: "Statement-cycle", Pos: 720, Len: 1},
		{Name: "Dunning-flag", Pos: 721, Len: 1},
		{Name: "Balance-method", Pos: 722, Len: 1},
		{Name: "Invoice-copies", Pos: 723, Len: 2},
		{Name: "Label-copies", Pos: 725, Len: 2},
		{Name: "Tax-locale", Pos: 727, Len: 4},
		{Name: "FOB", Pos: 731, Len: 8},
		{Name: "Carrier-code", Pos: 739, Len: 8},
		{Name: "PointOfTitleTransfer", Pos: 747, Len: 11},
	},
}

// Synonym tables for the customer source columns. CRM exports use camelCase;
// spreadsheet exports use spaced headers. First non-empty match wins.
var (
	synCustCode     = rowparser.Synonyms{"Customer ID", "CustomerID", "Account Number", "accountNumber", "Cust Code"}
	synAccountName  = rowparser.Synonyms{"accountName", "Account Name", "Customer Name", "Company"}
	synBtStreet1    = rowparser.Synonyms{"btStreet1", "Billing Street", "Billing Address 1", "Address 1"}
	synBtStreet2    = rowparser.Synonyms{"btStreet2", "Billing Address 2", "Address 2"}
	synBtStreet3    = rowparser.Synonyms{"btStreet3", "Billing Address 3", "Address 3"}
	synBtCity       = rowparser.Synonyms{"btCity", "Billing City", "City"}
	synBtState      = rowparser.Synonyms{"btState", "Billing State", "State"}
	synBtZip        = rowparser.Synonyms{"btZipcode", "btZip", "Billing Zip", "Zip", "Postal Code"}
	synBtCountry    = rowparser.Synonyms{"btCountry", "Billing Country", "Country"}
	synPhone        = rowparser.Synonyms{"phone", "Phone", "Phone Number", "Main Phone"}
	synPhoneExt     = rowparser.Synonyms{"phoneExt", "Phone Ext", "Extension"}
	synFax          = rowparser.Synonyms{"fax", "Fax", "Fax Number"}
	synContactName  = rowparser.Synonyms{"contactName", "Contact Name", "Primary Contact Name", "Contact"}
	synContactEmail = rowparser.Synonyms{"email", "Email", "Contact Email", "Primary Contact Email"}
	synContactTitle = rowparser.Synonyms{"contactTitle", "Contact Title", "Title"}
	synSalesRepID   = rowparser.Synonyms{"salesRep", "Sales Rep", "Sales Rep ID", "Rep"}
	synTermsCode    = rowparser.Synonyms{"terms", "Terms", "Payment Terms"}
	synCreditLimit  = rowparser.Synonyms{"creditLimit", "Credit Limit"}
	synIsTaxable    = rowparser.Synonyms{"isTaxable", "Taxable", "Tax Flag"}
	synFinCharge    = rowparser.Synonyms{"financeCharge", "Finance Charge", "Finance Charge Flag"}
	synPORequired   = rowparser.Synonyms{"poRequired", "PO Required", "Requires PO"}
	synStName       = rowparser.Synonyms{"stName", "Shipping Name", "Ship To Name"}
	synStStreet1    = rowparser.Synonyms{"stStreet1", "Shipping Street", "Shipping Address 1"}
	synStStreet2    = rowparser.Synonyms{"stStreet2", "Shipping Address 2"}
	synStCity       = rowparser.Synonyms{"stCity", "Shipping City"}
	synStState      = rowparser.Synonyms{"stState", "Shipping State"}
	synStZip        = rowparser.Synonyms{"stZipcode", "stZip", "Shipping Zip"}
	synStCountry    = rowparser.Synonyms{"stCountry", "Shipping Country"}
	synOpenDate     = rowparser.Synonyms{"createdDate", "Created Date", "Open Date", "Date Opened"}
	synCreditHold   = rowparser.Synonyms{"creditHold", "Credit Hold"}
	synCustType     = rowparser.Synonyms{"customerType", "Customer Type", "Type"}
	synTerritory    = rowparser.Synonyms{"territory", "Territory", "Region"}
	synContact2Name = rowparser.Synonyms{"contact2Name", "Secondary Contact", "Alt Contact"}
	synContact2Phn  = rowparser.Synonyms{"contact2Phone", "Secondary Contact Phone", "Alt Phone"}
	synResaleNumber = rowparser.Synonyms{"resaleNumber", "Resale Number", "Resale #"}
	synSICCode      = rowparser.Synonyms{"sicCode", "SIC Code", "SIC"}
	synTaxExemptNo  = rowparser.Synonyms{"taxExemptNumber", "Tax Exempt Number", "Exemption Cert"}
	synShipVia      = rowparser.Synonyms{"shipVia", "Ship Via", "Shipping Method"}
	synCurrency     = rowparser.Synonyms{"currency", "Currency", "Currency Code"}
)

// MapCustomer binds one normalized customer row to the customer layout.
// Every layout field receives exactly one entry; fields with no source data
// and no domain default bind to the empty string, which the customer encoder
// writes as a no-op.
func MapCustomer(row types.RawRow) Instance {
	taxable := "3"
	if strings.EqualFold(rowparser.Lookup(row, synIsTaxable), "Y") {
		taxable = "1"
	}

	poRequired := "0"
	if strings.EqualFold(rowparser.Lookup(row, synPORequired), "Y") {
		poRequired = "1"
	}

	name := rowparser.Lookup(row, synAccountName)

	return Instance{
		"Cust-code":            CustomerCode(row),
		"Cust-name":            name,
		"Bt-address-1":         rowparser.Lookup(row, synBtStreet1),
		"Bt-address-2":         rowparser.Lookup(row, synBtStreet2),
		"Bt-address-3":         rowparser.Lookup(row, synBtStreet3),
		"Bt-city":              rowparser.Lookup(row, synBtCity),
		"Bt-state":             rowparser.Lookup(row, synBtState),
		"Bt-zip":               rowparser.Lookup(row, synBtZip),
		"Bt-country":           rowparser.LookupOr(row, synBtCountry, "USA"),
		"Phone":                rowparser.Lookup(row, synPhone),
		"Phone-ext":            rowparser.Lookup(row, synPhoneExt),
		"Fax":                  rowparser.Lookup(row, synFax),
		"Contact-name":         rowparser.Lookup(row, synContactName),
		"Contact-email":        rowparser.Lookup(row, synContactEmail),
		"Contact-title":        rowparser.Lookup(row, synContactTitle),
		"Salesperson":          rowparser.Lookup(row, synSalesRepID),
		"Terms-code":           rowparser.LookupOr(row, synTermsCode, "N30"),
		"Credit-limit":         rowparser.ParseMoney(rowparser.Lookup(row, synCreditLimit)),
		"AR-Tax-Code":          taxable,
		"Finance-charge":       rowparser.LookupOr(row, synFinCharge, "N"),
		"Statement-flag":       "Y",
		"PO-required":          poRequired,
		"Currency-code":        rowparser.LookupOr(row, synCurrency, "USD"),
		"Price-level":          "1",
		"Ship-via":             rowparser.Lookup(row, synShipVia),
		"St-name":              rowparser.LookupOr(row, synStName, name),
		"St-address-1":         rowparser.Lookup(row, synStStreet1),
		"St-address-2":         rowparser.Lookup(row, synStStreet2),
		"St-city":              rowparser.Lookup(row, synStCity),
		"St-state":             rowparser.Lookup(row, synStState),
		"St-zip":               rowparser.Lookup(row, synStZip),
		"St-country":           rowparser.LookupOr(row, synStCountry, "USA"),
		"Open-date":            rowparser.ParseDate(rowparser.Lookup(row, synOpenDate)),
		"Credit-hold":          rowparser.LookupOr(row, synCreditHold, "N"),
		"Customer-type":        rowparser.LookupOr(row, synCustType, "REG"),
		"Territory":            rowparser.Lookup(row, synTerritory),
		"Contact-2-name":       rowparser.Lookup(row, synContact2Name),
		"Contact-2-phone":      rowparser.Lookup(row, synContact2Phn),
		"Resale-number":        rowparser.Lookup(row, synResaleNumber),
		"SIC-code":             rowparser.Lookup(row, synSICCode),
		"Tax-exempt-cert":      rowparser.Lookup(row, synTaxExemptNo),
		"Tax-schedule":         "NV",
		"Late-charge-rate":     "1.50",
		"Discount-percent":     "0.00",
		"Statement-cycle":      "M",
		"Dunning-flag":         "N",
		"Balance-method":       "O",
		"Invoice-copies":       "1",
		"Label-copies":         "1",
		"Tax-locale":           "NV01",
		"FOB":                  "ORIGIN",
		"Carrier-code":         "",
		"PointOfTitleTransfer": "DESTINATION",
	}
}

// CustomerCode derives the 8-character Monarch customer code for a source
// row: the exported customer id when present, otherwise the account name
// uppercased with non-alphanumerics removed. Truncation to 8 bytes is the
// encoder's job, but the code is also used as a join key, so it is clipped
// here as well.
func CustomerCode(row types.RawRow) string {
	code := rowparser.Lookup(row, synCustCode)
	if code == "" {
		var b strings.Builder
		for _, r := range strings.ToUpper(rowparser.Lookup(row, synAccountName)) {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		code = b.String()
	}
	if len(code) > 8 {
		code = code[:8]
	}
	return code
}
