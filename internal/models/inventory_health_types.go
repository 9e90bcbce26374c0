package models

import "strings"

// Status labels as they appear in the STATUS column.
const (
	StatusCritical = "CRITICAL (Stockout Risk)"
	StatusWarning  = "WARNING (Reorder Soon)"
	StatusGood     = "GOOD"
)

// StatusLevel is the closed classification of a STATUS label.
// Labels embed a code plus a parenthetical description, so the level is
// decided by substring containment rather than equality.
type StatusLevel string

const (
	LevelCritical StatusLevel = "CRITICAL"
	LevelWarning  StatusLevel = "WARNING"
	LevelGood     StatusLevel = "GOOD"
)

// LevelOf classifies a raw status label. CRITICAL wins over WARNING when a
// label contains both codes.
func LevelOf(status string) StatusLevel {
	switch {
	case strings.Contains(status, string(LevelCritical)):
		return LevelCritical
	case strings.Contains(status, string(LevelWarning)):
		return LevelWarning
	default:
		return LevelGood
	}
}

// Warehouse column names, in the order the fixed query selects them.
const (
	ColLocationID          = "LOCATION_ID"
	ColItemName            = "ITEM_NAME"
	ColStatus              = "STATUS"
	ColCurrentStock        = "CURRENT_STOCK"
	ColAvgDailyUsage       = "AVG_DAILY_USAGE"
	ColDaysRemaining       = "DAYS_REMAINING"
	ColSuggestedReorderQty = "SUGGESTED_REORDER_QTY"
)

// InventoryColumns lists every column of the inventory health table.
var InventoryColumns = []string{
	ColLocationID,
	ColItemName,
	ColStatus,
	ColCurrentStock,
	ColAvgDailyUsage,
	ColDaysRemaining,
	ColSuggestedReorderQty,
}

// InventoryRecord is one row of the INVENTORY_HEALTH_METRICS table.
// DaysRemaining is computed upstream (stock / usage) and taken as given.
type InventoryRecord struct {
	LocationID          string  `json:"locationId" db:"LOCATION_ID"`
	ItemName            string  `json:"itemName" db:"ITEM_NAME"`
	Status              string  `json:"status" db:"STATUS"`
	CurrentStock        int64   `json:"currentStock" db:"CURRENT_STOCK"`
	AvgDailyUsage       float64 `json:"avgDailyUsage" db:"AVG_DAILY_USAGE"`
	DaysRemaining       float64 `json:"daysRemaining" db:"DAYS_REMAINING"`
	SuggestedReorderQty int64   `json:"suggestedReorderQty" db:"SUGGESTED_REORDER_QTY"`
}

// Level returns the classified status of the record.
func (r InventoryRecord) Level() StatusLevel {
	return LevelOf(r.Status)
}

// InventoryTable is an ordered set of records. A location may appear once
// per item; no field is unique.
type InventoryTable []InventoryRecord

// ActionItem is the projection of a record shown on the procurement desk.
type ActionItem struct {
	LocationID          string  `json:"locationId"`
	ItemName            string  `json:"itemName"`
	CurrentStock        int64   `json:"currentStock"`
	DaysRemaining       float64 `json:"daysRemaining"`
	SuggestedReorderQty int64   `json:"suggestedReorderQty"`
	Status              string  `json:"status"`
}

// ToActionItem projects the record onto the procurement columns.
func (r InventoryRecord) ToActionItem() ActionItem {
	return ActionItem{
		LocationID:          r.LocationID,
		ItemName:            r.ItemName,
		CurrentStock:        r.CurrentStock,
		DaysRemaining:       r.DaysRemaining,
		SuggestedReorderQty: r.SuggestedReorderQty,
		Status:              r.Status,
	}
}
