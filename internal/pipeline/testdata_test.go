package pipeline

import "github.com/01moynul/healthsync-golang/internal/models"

func rec(loc, item, status string, stock int64, days float64) models.InventoryRecord {
	return models.InventoryRecord{
		LocationID:          loc,
		ItemName:            item,
		Status:              status,
		CurrentStock:        stock,
		AvgDailyUsage:       1,
		DaysRemaining:       days,
		SuggestedReorderQty: 10,
	}
}

func sampleTable() models.InventoryTable {
	return models.InventoryTable{
		rec("NY", "Widget", models.StatusCritical, 5, 2.5),
		rec("NY", "Gadget", models.StatusGood, 900, 90),
		rec("LA", "Widget", models.StatusWarning, 40, 8),
		rec("LA", "Bandage", models.StatusGood, 300, 60),
		rec("SF", "Syringe", models.StatusCritical, 0, 0),
		rec("SF", "Gauze", models.StatusWarning, 20, 8),
	}
}
