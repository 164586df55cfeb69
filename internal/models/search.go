package models

// PartSearchResult is the body of GET /api/part. Either Error or the success
// fields are meaningful.
type PartSearchResult struct {
	FinalPrice *float64 `json:"final_price,omitempty"`
	Photo      *string  `json:"photo,omitempty"`
	Error      *string  `json:"error,omitempty"`
}
