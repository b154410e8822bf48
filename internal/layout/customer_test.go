package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
)

func TestMapCustomerBindsEveryField(t *testing.T) {
	inst := MapCustomer(types.RawRow{"accountName": "Acme"})

	// Every layout field gets exactly one entry, empty or not, so the
	// encoder's defined-write mode sees a complete record.
	require.Len(t, inst, len(CustomerLayout.Fields))
	for _, f := range CustomerLayout.Fields {
		_, ok := inst[f.Name]
		assert.True(t, ok, "field %s not bound", f.Name)
	}
}

func TestMapCustomerScenario(t *testing.T) {
	row := rowparser.NormalizeCustomer(types.RawRow{
		"accountName": "Acme Printing Co",
		"btStreet1":   "400 Mill St",
		"btCity":      "Reno",
		"btState":     "NV",
		"btZipcode":   "89502",
		"isTaxable":   "Y",
		"poRequired":  "N",
		"phone":       "775-555-0142",
	})

	inst := MapCustomer(row)

	assert.Equal(t, "ACMEPRIN", inst["Cust-code"])
	assert.Equal(t, "Acme Printing Co", inst["Cust-name"])
	assert.Equal(t, "Reno", inst["Bt-city"])
	assert.Equal(t, "1", inst["AR-Tax-Code"])
	assert.Equal(t, "0", inst["PO-required"])
	assert.Equal(t, "USA", inst["Bt-country"])
	assert.Equal(t, "USD", inst["Currency-code"])
	assert.Equal(t, "DESTINATION", inst["PointOfTitleTransfer"])
	// Shipping name falls back to the account name.
	assert.Equal(t, "Acme Printing Co", inst["St-name"])

	line := Encode(inst, CustomerLayout, WriteDefined)
	require.Len(t, line, 758)
	assert.Equal(t, "ACMEPRIN", line[0:8])
	assert.Equal(t, "Acme Printing Co", line[8:24])
	assert.Equal(t, "Reno", line[168:172])
	assert.Equal(t, "1", line[391:392]) // AR-Tax-Code
	assert.Equal(t, "DESTINATION", line[746:757])
}

func TestMapCustomerTaxAndPOFlags(t *testing.T) {
	tests := []struct {
		taxable    string
		poRequired string
		wantTax    string
		wantPO     string
	}{
		{"Y", "Y", "1", "1"},
		{"y", "y", "1", "1"},
		{"N", "N", "3", "0"},
		{"", "", "3", "0"},
		{"anything", "X", "3", "0"},
	}

	for _, tt := range tests {
		inst := MapCustomer(types.RawRow{
			"accountName": "Acme",
			"isTaxable":   tt.taxable,
			"poRequired":  tt.poRequired,
		})
		assert.Equal(t, tt.wantTax, inst["AR-Tax-Code"], "isTaxable=%q", tt.taxable)
		assert.Equal(t, tt.wantPO, inst["PO-required"], "poRequired=%q", tt.poRequired)
	}
}

func TestCustomerCode(t *testing.T) {
	tests := []struct {
		name string
		row  types.RawRow
		want string
	}{
		{
			"explicit id wins",
			types.RawRow{"Customer ID": "C-00042", "accountName": "Acme"},
			"C-00042",
		},
		{
			"derived from name",
			types.RawRow{"accountName": "Acme Printing Co"},
			"ACMEPRIN",
		},
		{
			"short name not padded",
			types.RawRow{"accountName": "Bo's"},
			"BOS",
		},
		{
			"long id clipped",
			types.RawRow{"Customer ID": "CUSTOMER-000123"},
			"CUSTOMER",
		},
		{
			"nothing at all",
			types.RawRow{},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CustomerCode(tt.row))
		})
	}
}
