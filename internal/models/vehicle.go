package models

import "strconv"

// VehicleRecord is returned by the makes, models and submodels endpoints.
type VehicleRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r VehicleRecord) Item() SelectableItem {
	return SelectableItem{
		ID:          strconv.FormatInt(r.ID, 10),
		DisplayName: r.Name,
	}
}

// EngineRecord is returned by the engines endpoint.
type EngineRecord struct {
	ID         int64  `json:"id"`
	EngineName string `json:"engine_name"`
	YearStart  *int   `json:"year_start"`
	YearEnd    *int   `json:"year_end"`
}

func (r EngineRecord) Item() SelectableItem {
	return SelectableItem{
		ID:          strconv.FormatInt(r.ID, 10),
		DisplayName: r.EngineName,
		RangeStart:  r.YearStart,
		RangeEnd:    r.YearEnd,
	}
}
