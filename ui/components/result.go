package components

import (
	"strings"

	"github.com/Rorical/RoriParts/internal/render"
	"github.com/Rorical/RoriParts/ui/styles"
)

// RenderResult draws the search result panel. Nothing is drawn before the first
// search.
func RenderResult(d render.Display, loadingDots int, width int) string {
	if d.Empty() {
		return ""
	}
	return styles.ResultStyle(width).Render(ResultText(d, loadingDots))
}

// ResultText is the unstyled panel content, one line per field.
func ResultText(d render.Display, loadingDots int) string {
	switch {
	case d.Loading:
		return render.LoadingText() + strings.Repeat(".", loadingDots)
	case d.Error != "":
		return styles.ErrorStyle().Render(d.Error)
	}

	var lines []string
	if d.ImageURL != "" {
		lines = append(lines, styles.ImageStyle().Render(d.ImageURL))
	} else {
		lines = append(lines, styles.HelpStyle().Render(d.NoImage))
	}
	lines = append(lines, styles.PriceStyle().Render(d.Price))
	return strings.Join(lines, "\n")
}
