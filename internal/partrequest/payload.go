// Package partrequest builds and validates the part request sent on submit.
package partrequest

import (
	"strconv"
	"strings"

	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/models"
)

// Fields are the free text inputs of the request form.
type Fields struct {
	OEM   string
	VIN   string
	Phone string
	Notes string
}

// Build creates the payload from the selected vehicle ids, indexed by level, and
// the text fields. Missing or non-numeric ids and empty text become null.
func Build(values []string, fields Fields) models.PartRequestPayload {
	return models.PartRequestPayload{
		MakeID:     idAt(values, models.LevelMake),
		ModelID:    idAt(values, models.LevelModel),
		SubmodelID: idAt(values, models.LevelSubmodel),
		EngineID:   idAt(values, models.LevelEngine),
		Year:       idAt(values, models.LevelYear),
		OEM:        optional(fields.OEM),
		VIN:        optional(fields.VIN),
		Phone:      fields.Phone,
		PartName:   nil,
		Notes:      optional(fields.Notes),
	}
}

// Validate checks what the backend cannot do without: a contact phone.
func Validate(p models.PartRequestPayload) error {
	if strings.TrimSpace(p.Phone) == "" {
		return apperr.Validation("Phone is required")
	}
	return nil
}

func idAt(values []string, level int) *int64 {
	if level >= len(values) || values[level] == "" {
		return nil
	}
	id, err := strconv.ParseInt(values[level], 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
