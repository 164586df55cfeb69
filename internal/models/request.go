package models

// PartRequestPayload is the body of POST /part-request. Nil pointers are sent as
// JSON null, keys are never omitted.
type PartRequestPayload struct {
	MakeID     *int64  `json:"make_id"`
	ModelID    *int64  `json:"model_id"`
	SubmodelID *int64  `json:"submodel_id"`
	EngineID   *int64  `json:"engine_id"`
	Year       *int64  `json:"year"`
	OEM        *string `json:"oem"`
	VIN        *string `json:"vin"`
	Phone      string  `json:"phone"`
	PartName   *string `json:"part_name"`
	Notes      *string `json:"notes"`
}

// PartRequestResponse is the backend answer to a stored part request.
type PartRequestResponse struct {
	Status    string `json:"status"`
	RequestID int64  `json:"request_id"`
}
