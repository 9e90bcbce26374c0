package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		status string
		want   StatusLevel
	}{
		{StatusCritical, LevelCritical},
		{StatusWarning, LevelWarning},
		{StatusGood, LevelGood},
		{"CRITICAL", LevelCritical},
		{"WARNING - check", LevelWarning},
		{"CRITICAL/WARNING", LevelCritical},
		{"", LevelGood},
		{"critical", LevelGood},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelOf(tt.status))
		})
	}
}

func TestToActionItem(t *testing.T) {
	r := InventoryRecord{
		LocationID:          "NY",
		ItemName:            "Widget",
		Status:              StatusCritical,
		CurrentStock:        5,
		AvgDailyUsage:       2,
		DaysRemaining:       2.5,
		SuggestedReorderQty: 50,
	}

	assert.Equal(t, ActionItem{
		LocationID:          "NY",
		ItemName:            "Widget",
		CurrentStock:        5,
		DaysRemaining:       2.5,
		SuggestedReorderQty: 50,
		Status:              StatusCritical,
	}, r.ToActionItem())
}

func TestFilterSelection(t *testing.T) {
	sel := NewFilterSelection([]string{"NY", "LA"}, []string{StatusGood})

	assert.True(t, sel.Matches(InventoryRecord{LocationID: "NY", Status: StatusGood}))
	assert.False(t, sel.Matches(InventoryRecord{LocationID: "NY", Status: StatusWarning}))
	assert.False(t, sel.Matches(InventoryRecord{LocationID: "SF", Status: StatusGood}))

	empty := NewFilterSelection(nil, nil)
	assert.False(t, empty.Matches(InventoryRecord{LocationID: "NY", Status: StatusGood}))
}
