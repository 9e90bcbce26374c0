package pipeline

import "github.com/01moynul/healthsync-golang/internal/models"

// HeatmapDomainMax is the days-of-cover value at the green end of the scale.
const HeatmapDomainMax = 45.0

// HeatmapCell is one location × item square of the coverage chart.
type HeatmapCell struct {
	LocationID    string             `json:"locationId"`
	ItemName      string             `json:"itemName"`
	DaysRemaining float64            `json:"daysRemaining"`
	CurrentStock  int64              `json:"currentStock"`
	Status        string             `json:"status"`
	Level         models.StatusLevel `json:"level"`
	// Intensity is DaysRemaining scaled onto [0, 1] against HeatmapDomainMax.
	Intensity float64 `json:"intensity"`
}

// Heatmap builds the coverage chart cells in table order.
func Heatmap(table models.InventoryTable) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(table))
	for _, r := range table {
		cells = append(cells, HeatmapCell{
			LocationID:    r.LocationID,
			ItemName:      r.ItemName,
			DaysRemaining: r.DaysRemaining,
			CurrentStock:  r.CurrentStock,
			Status:        r.Status,
			Level:         r.Level(),
			Intensity:     intensity(r.DaysRemaining),
		})
	}
	return cells
}

func intensity(days float64) float64 {
	switch {
	case days <= 0:
		return 0
	case days >= HeatmapDomainMax:
		return 1
	default:
		return days / HeatmapDomainMax
	}
}
