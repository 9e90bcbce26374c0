package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/01moynul/healthsync-golang/internal/models"
)

// TopRiskLimit is how many rows the risk chart shows.
const TopRiskLimit = 10

// Metrics are the dashboard figures for one filtered table.
type Metrics struct {
	TotalLocations int     `json:"totalLocations"`
	TotalSkus      int     `json:"totalSkus"`
	CriticalCount  int     `json:"criticalCount"`
	WarningCount   int     `json:"warningCount"`
	GoodCount      int     `json:"goodCount"`
	LowStockPct    float64 `json:"lowStockPct"`

	// Delta labels shown under the critical and warning KPI cards.
	CriticalDelta string `json:"criticalDelta"`
	WarningDelta  string `json:"warningDelta"`

	TopRisks           models.InventoryTable `json:"topRisks"`
	StatusDistribution []StatusGroup         `json:"statusDistribution"`
	ActionList         []models.ActionItem   `json:"actionList"`
}

// StatusGroup is one slice of the alert distribution chart.
type StatusGroup struct {
	Status string             `json:"status"`
	Key    string             `json:"key"`
	Level  models.StatusLevel `json:"level"`
	Count  int                `json:"count"`
}

// ComputeMetrics derives every dashboard figure from the filtered table.
// CRITICAL and WARNING are matched by substring, so a label counts once even
// if it also carries a description.
func ComputeMetrics(filtered models.InventoryTable) Metrics {
	m := Metrics{
		TotalSkus:          len(filtered),
		TopRisks:           TopRisks(filtered, TopRiskLimit),
		StatusDistribution: StatusDistribution(filtered),
		ActionList:         ActionList(filtered),
	}

	locations := make(map[string]struct{})
	for _, r := range filtered {
		locations[r.LocationID] = struct{}{}

		isCritical := strings.Contains(r.Status, string(models.LevelCritical))
		isWarning := strings.Contains(r.Status, string(models.LevelWarning))
		if isCritical {
			m.CriticalCount++
		}
		if isWarning {
			m.WarningCount++
		}
		if !isCritical && !isWarning {
			m.GoodCount++
		}
	}
	m.TotalLocations = len(locations)
	m.LowStockPct = LowStockPct(m.CriticalCount, m.WarningCount, m.TotalSkus)

	m.CriticalDelta = "Stable"
	if m.CriticalCount > 0 {
		m.CriticalDelta = "-Urgent"
	}
	m.WarningDelta = "Monitor"
	return m
}

// LowStockPct is 100*(critical+warning)/total rounded to one decimal place,
// or 0 for an empty table.
func LowStockPct(critical, warning, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(critical + warning)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
	return pct.InexactFloat64()
}

// TopRisks returns up to limit records with the fewest days of cover.
// Ties keep their table order.
func TopRisks(table models.InventoryTable, limit int) models.InventoryTable {
	sorted := slices.Clone(table)
	if sorted == nil {
		sorted = models.InventoryTable{}
	}
	slices.SortStableFunc(sorted, func(a, b models.InventoryRecord) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// StatusDistribution counts records per raw status label, in order of first
// appearance.
func StatusDistribution(table models.InventoryTable) []StatusGroup {
	groups := []StatusGroup{}
	index := make(map[string]int)
	for _, r := range table {
		i, ok := index[r.Status]
		if !ok {
			i = len(groups)
			index[r.Status] = i
			groups = append(groups, StatusGroup{
				Status: r.Status,
				Key:    slug.Make(r.Status),
				Level:  r.Level(),
			})
		}
		groups[i].Count++
	}
	return groups
}

// ActionList keeps every record whose status is not exactly "GOOD" and
// projects it onto the procurement columns.
func ActionList(table models.InventoryTable) []models.ActionItem {
	items := []models.ActionItem{}
	for _, r := range table {
		if r.Status == models.StatusGood {
			continue
		}
		items = append(items, r.ToActionItem())
	}
	return items
}
