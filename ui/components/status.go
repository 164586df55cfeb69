package components

import (
	"strings"

	"github.com/Rorical/RoriParts/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += " " + strings.Repeat("●", loadingDots)
	}

	return statusStyle.Render(statusContent)
}

func RenderHelp(keys string) string {
	return styles.HelpStyle().Render(keys)
}

func RenderTitle(title string, width int) string {
	return styles.TitleStyle(width).Render(title)
}
