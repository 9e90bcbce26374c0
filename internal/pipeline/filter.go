// Package pipeline narrows the inventory table to the operator's selection
// and derives the dashboard figures from it. Everything here is pure.
package pipeline

import (
	"slices"

	"github.com/01moynul/healthsync-golang/internal/models"
)

// FilterOptions are the values an operator can pick from. They always come
// from the unfiltered table so that filtering never narrows future choices.
type FilterOptions struct {
	Locations []string `json:"locations"`
	Statuses  []string `json:"statuses"`
}

// Filter returns the records whose location and status are both selected,
// in their original order. The input table is not modified.
func Filter(table models.InventoryTable, sel models.FilterSelection) models.InventoryTable {
	out := make(models.InventoryTable, 0, len(table))
	for _, r := range table {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Options lists the sorted distinct locations and statuses of table.
func Options(table models.InventoryTable) FilterOptions {
	locs := make(map[string]struct{})
	statuses := make(map[string]struct{})
	for _, r := range table {
		locs[r.LocationID] = struct{}{}
		statuses[r.Status] = struct{}{}
	}
	return FilterOptions{
		Locations: sortedKeys(locs),
		Statuses:  sortedKeys(statuses),
	}
}

// AllSelected is the default selection: every location and every status.
func AllSelected(table models.InventoryTable) models.FilterSelection {
	opts := Options(table)
	return models.NewFilterSelection(opts.Locations, opts.Statuses)
}

// Restrict keeps only requested values that are actually offered, so a
// selection is always a subset of the last loaded table's values.
func Restrict(requested, offered []string) []string {
	out := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, v := range requested {
		if _, dup := seen[v]; dup {
			continue
		}
		if slices.Contains(offered, v) {
			out = append(out, v)
			seen[v] = struct{}{}
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
