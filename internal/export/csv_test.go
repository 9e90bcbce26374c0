package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/healthsync-golang/internal/models"
)

func TestWriteCSV_Format(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, models.InventoryTable{{
		LocationID:          "NY",
		ItemName:            "Widget, large",
		Status:              models.StatusCritical,
		CurrentStock:        5,
		AvgDailyUsage:       2,
		DaysRemaining:       2.5,
		SuggestedReorderQty: 50,
	}})
	require.NoError(t, err)

	want := "LOCATION_ID,ITEM_NAME,STATUS,CURRENT_STOCK,AVG_DAILY_USAGE,DAYS_REMAINING,SUGGESTED_REORDER_QTY\n" +
		"NY,\"Widget, large\",CRITICAL (Stockout Risk),5,2,2.5,50\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EmptyTableHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	table, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestRoundTrip(t *testing.T) {
	table := models.InventoryTable{
		{LocationID: "NY", ItemName: "Widget", Status: models.StatusCritical, CurrentStock: 5, AvgDailyUsage: 2, DaysRemaining: 2.5, SuggestedReorderQty: 50},
		{LocationID: "NY", ItemName: "Gadget", Status: models.StatusGood, CurrentStock: 900, AvgDailyUsage: 10, DaysRemaining: 90, SuggestedReorderQty: 0},
		{LocationID: "LA", ItemName: "Café \"special\"", Status: models.StatusWarning, CurrentStock: 7, AvgDailyUsage: 0.3333333333333333, DaysRemaining: 21.000000000000004, SuggestedReorderQty: 13},
		{LocationID: "SF", ItemName: "multi\nline", Status: models.StatusGood, CurrentStock: 0, AvgDailyUsage: 0, DaysRemaining: 0, SuggestedReorderQty: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	got, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestParseCSV_Errors(t *testing.T) {
	header := strings.Join(models.InventoryColumns, ",") + "\n"
	tests := []struct {
		name   string
		input  string
		substr string
	}{
		{"empty", "", "header row"},
		{"wrong header", "A,B,C,D,E,F,G\n", "header mismatch"},
		{"short row", header + "NY,Widget\n", "read CSV"},
		{"bad stock", header + "NY,W,GOOD,x,1,1,1\n", "CURRENT_STOCK"},
		{"bad usage", header + "NY,W,GOOD,1,x,1,1\n", "AVG_DAILY_USAGE"},
		{"bad days", header + "NY,W,GOOD,1,1,x,1\n", "DAYS_REMAINING"},
		{"bad reorder", header + "NY,W,GOOD,1,1,1,1.5\n", "SUGGESTED_REORDER_QTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.substr)
		})
	}
}
