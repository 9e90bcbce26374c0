package models

// FilterSelection holds the chosen locations and statuses.
// An empty set selects nothing, it does not mean "all".
type FilterSelection struct {
	Locations map[string]struct{}
	Statuses  map[string]struct{}
}

// NewFilterSelection builds a selection from the given value lists.
func NewFilterSelection(locations, statuses []string) FilterSelection {
	return FilterSelection{
		Locations: toSet(locations),
		Statuses:  toSet(statuses),
	}
}

// HasLocation reports whether the location is selected.
func (s FilterSelection) HasLocation(loc string) bool {
	_, ok := s.Locations[loc]
	return ok
}

// HasStatus reports whether the status label is selected.
func (s FilterSelection) HasStatus(status string) bool {
	_, ok := s.Statuses[status]
	return ok
}

// Matches reports whether a record passes both selections.
func (s FilterSelection) Matches(r InventoryRecord) bool {
	return s.HasLocation(r.LocationID) && s.HasStatus(r.Status)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
