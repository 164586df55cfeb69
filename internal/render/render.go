// Package render turns part search responses into what the result panel shows.
package render

import (
	"strconv"

	"github.com/Rorical/RoriParts/internal/models"
)

const (
	noImageText     = "No image available"
	unavailableText = "Price unavailable"
	loadingText     = "Loading..."
)

// Display is the state of the result panel. Only one of Loading, Error or the
// image/price pair is shown.
type Display struct {
	Loading  bool
	Error    string
	ImageURL string // Empty shows NoImage
	NoImage  string
	Price    string
}

// Empty reports whether nothing has been rendered yet.
func (d Display) Empty() bool {
	return d == Display{}
}

// Result maps a search response to a display. Fields other than error,
// final_price and photo are ignored.
func Result(res models.PartSearchResult) Display {
	if res.Error != nil && *res.Error != "" {
		return Display{Error: *res.Error}
	}

	var d Display
	if res.Photo != nil && *res.Photo != "" {
		d.ImageURL = *res.Photo
	} else {
		d.NoImage = noImageText
	}
	if res.FinalPrice != nil {
		d.Price = "Price: " + strconv.FormatFloat(*res.FinalPrice, 'f', -1, 64) + " €"
	} else {
		d.Price = unavailableText
	}
	return d
}

// Error shows message alone.
func Error(message string) Display {
	return Display{Error: message}
}

// Loading is shown while a search is in flight.
func Loading() Display {
	return Display{Loading: true}
}

// LoadingText is the text of the loading indicator.
func LoadingText() string {
	return loadingText
}

// Lines is the display as plain text, one line per shown field.
func (d Display) Lines() []string {
	switch {
	case d.Loading:
		return []string{loadingText}
	case d.Error != "":
		return []string{d.Error}
	case d.Empty():
		return nil
	}
	image := d.ImageURL
	if image == "" {
		image = d.NoImage
	}
	return []string{image, d.Price}
}
