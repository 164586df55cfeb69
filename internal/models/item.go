package models

// Vehicle flow levels, in cascade order
const (
	LevelMake = iota
	LevelModel
	LevelSubmodel
	LevelEngine
	LevelYear
)

// Catalog flow levels, in cascade order
const (
	LevelCar = iota
	LevelCarModel
	LevelDetail
)

// SelectableItem is one option of a select: a make, model, submodel, engine, year
// or catalog entry.
type SelectableItem struct {
	ID          string
	DisplayName string
	RangeStart  *int // Only engines carry a year range
	RangeEnd    *int
}

// YearRange returns the item's year bounds, absent bounds count as 0.
func (i SelectableItem) YearRange() (int, int) {
	var start, end int
	if i.RangeStart != nil {
		start = *i.RangeStart
	}
	if i.RangeEnd != nil {
		end = *i.RangeEnd
	}
	return start, end
}

// NamedItems builds items whose ID and display name are the same string.
func NamedItems(names []string) []SelectableItem {
	items := make([]SelectableItem, len(names))
	for i, name := range names {
		items[i] = SelectableItem{ID: name, DisplayName: name}
	}
	return items
}
