package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriParts/ui/styles"
)

// RenderInput draws a labelled text field. view is the textinput's own rendering.
func RenderInput(label, view string, focused bool, width int) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.LabelStyle().Render(label),
		styles.InputStyle(width, focused).Render(view),
	)
}
