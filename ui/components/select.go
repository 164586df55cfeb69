package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriParts/internal/cascade"
	"github.com/Rorical/RoriParts/ui/styles"
)

// RenderSelect draws one select of a chain as "‹ choice ›", with its position in
// the option list.
func RenderSelect(label string, sel cascade.Select, focused bool) string {
	text := SelectText(sel)
	if !sel.Disabled {
		text = "‹ " + text + " ›"
		if sel.Selected >= 0 {
			text += fmt.Sprintf("  %d/%d", sel.Selected+1, len(sel.Items))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.LabelStyle().Render(label),
		styles.SelectStyle(focused, sel.Disabled).Render(text),
	)
}

// SelectText is what a select shows: the chosen option, else its placeholder.
func SelectText(sel cascade.Select) string {
	if item, ok := sel.Item(); ok {
		if item.DisplayName != "" {
			return item.DisplayName
		}
		return item.ID
	}
	if sel.Placeholder != "" {
		return sel.Placeholder
	}
	return "-"
}
