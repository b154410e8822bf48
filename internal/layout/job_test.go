package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/monarch-importer/internal/types"
)

var testAgents = SalesAgentTable{
	Agents:  map[string]string{"1": "R. Delgado", "2": "S. Whitfield"},
	Default: "House",
}

func TestSalesAgentTableResolve(t *testing.T) {
	assert.Equal(t, "R. Delgado", testAgents.Resolve("1"))
	assert.Equal(t, "S. Whitfield", testAgents.Resolve("2"))
	assert.Equal(t, "House", testAgents.Resolve("99"))
	assert.Equal(t, "House", testAgents.Resolve(""))
}

func TestMapJob(t *testing.T) {
	row := types.RawRow{
		"Product":   "Booklet - 6.5in : mailing - Sample",
		"PO Number": "PO-9981",
		"Due Date":  "2024-03-15",
		"Quantity":  "250",
		"Amount":    "$1,250.00",
		"Sales Rep": "1",
	}

	inst := MapJob(row, "520     ", "", "MON001", testAgents)

	assert.Equal(t, "520     ", inst["job_id"])
	assert.Equal(t, "", inst["sub_job_id"])
	assert.Equal(t, "Booklet - 6.5in : mailing", inst["job_description"])
	assert.Equal(t, "Booklet - 6.5in : mailing", inst["job_title"])
	assert.Equal(t, "Commercial Print", inst["job_type"])
	assert.Equal(t, "MON001", inst["customer_id"])
	assert.Equal(t, "PO-9981", inst["po_number"])
	assert.Equal(t, "03/15/2024", inst["due_date"])
	assert.Equal(t, "250", inst["quantity"])
	assert.Equal(t, "1250.00", inst["amount"])
	assert.Equal(t, "R. Delgado", inst["sales_rep"])
	assert.Equal(t, "IMPORT", inst["taken_by"])
	assert.Equal(t, "Each", inst["unit_of_measure"])
	assert.Equal(t, "O", inst["job_status"])
}

func TestMapJobDefaults(t *testing.T) {
	inst := MapJob(types.RawRow{}, "520     ", "1   ", "MON001", testAgents)

	assert.Equal(t, "1   ", inst["sub_job_id"])
	assert.Equal(t, "1", inst["quantity"])
	assert.Equal(t, "0.00", inst["amount"])
	assert.Equal(t, "House", inst["sales_rep"])
}

func TestMapJobEncodesAtJobPositions(t *testing.T) {
	inst := MapJob(types.RawRow{"Product": "Flyer"}, "520     ", "1   ", "MON001", testAgents)

	line := Encode(inst, JobLayout, WriteNonEmpty)
	require.Len(t, line, 561)

	assert.Equal(t, "520     ", line[0:8])
	assert.Equal(t, "1   ", line[8:12])
	assert.Equal(t, "Flyer", line[12:17])
	assert.Equal(t, "Commercial Print", line[266:282])
	assert.Equal(t, "MON001", line[285:291])
	assert.Equal(t, "Flyer", line[495:500]) // job_title
}

func TestMapWIP(t *testing.T) {
	row := types.RawRow{
		"Order ID":     "12345",
		"Project Name": "Annual Report",
		"Due Date":     "45292",
		"Order Value":  "(350)",
		"Sales Rep":    "2",
	}

	inst := MapWIP(row, "MON002", testAgents)

	assert.Equal(t, "N12345  ", inst["job_id"])
	assert.Equal(t, "", inst["sub_job_id"])
	assert.Equal(t, "Annual Report", inst["job_description"])
	assert.Equal(t, "Work In Progress", inst["job_type"])
	assert.Equal(t, "MON002", inst["customer_id"])
	assert.Equal(t, "01/01/2024", inst["due_date"])
	assert.Equal(t, "-350.00", inst["amount"])
	assert.Equal(t, "S. Whitfield", inst["sales_rep"])
	assert.Equal(t, "WIP", inst["taken_by"])
}
