package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/monarch-importer/internal/types"
)

func TestCheckWIPRowValid(t *testing.T) {
	row := types.RawRow{"Order ID": "12345", "Account Name": "Acme"}
	assert.Nil(t, CheckWIPRow(row))
}

func TestCheckWIPRowStructuralSkip(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
	}{
		{"alphanumeric", "ABC12"},
		{"too short", "123"},
		{"too long", "12345678"},
		{"empty", ""},
		{"subtotal row", "Subtotal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := types.RawRow{"Order ID": tt.orderID, "Account Name": "Acme"}
			issue := CheckWIPRow(row)

			require.NotNil(t, issue)
			assert.Equal(t, SeveritySkip, issue.Severity)
			assert.Equal(t, "order_id_format", issue.Rule)
			assert.Contains(t, issue.Message, "expected 4-7 digits")
		})
	}
}

// A structurally broken row is a skip even when the name is also missing:
// the order-id gate runs first.
func TestCheckWIPRowSkipBeatsReject(t *testing.T) {
	issue := CheckWIPRow(types.RawRow{"Order ID": "bad"})

	require.NotNil(t, issue)
	assert.Equal(t, SeveritySkip, issue.Severity)
}

func TestCheckWIPRowMissingName(t *testing.T) {
	issue := CheckWIPRow(types.RawRow{"Order ID": "12345"})

	require.NotNil(t, issue)
	assert.Equal(t, SeverityReject, issue.Severity)
	assert.Equal(t, "Missing customer name", issue.Message)
}

func TestCheckOrderGroup(t *testing.T) {
	assert.Nil(t, CheckOrderGroup(types.RawRow{"Account Name": "Acme"}))

	issue := CheckOrderGroup(types.RawRow{})
	require.NotNil(t, issue)
	assert.Equal(t, SeverityReject, issue.Severity)
	assert.Equal(t, "Missing customer name", issue.Message)
}

func TestIssueError(t *testing.T) {
	issue := &Issue{Severity: SeveritySkip, Field: "order id", Value: "bad", Message: "nope"}
	assert.Equal(t, "[SKIP] Field 'order id': nope (value: 'bad')", issue.Error())
}
