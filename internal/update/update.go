package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/eventbus"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// LevelChangedMsg selects Value at Level of the active chain. Every selection
// change of a view goes through the chain the same way, whichever key caused it.
type LevelChangedMsg struct {
	Level int
	Value string
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Viewport holds the terminal size and the loading animation shared by both views.
type Viewport struct {
	Width       int
	Height      int
	LoadingDots int
}

func (v *Viewport) resize(msg tea.WindowSizeMsg) {
	v.Width = msg.Width
	v.Height = msg.Height
}

func (v *Viewport) tick(loading bool) tea.Cmd {
	// Only handle UI animations - loading dots
	if loading {
		v.LoadingDots = (v.LoadingDots + 1) % 4
	}
	return TickCmd()
}

// focusRing moves focus by delta over n positions, wrapping around.
func focusRing(current, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((current+delta)%n + n) % n
}
