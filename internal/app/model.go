package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/dispatcher"
	"github.com/Rorical/RoriParts/internal/update"
	"github.com/Rorical/RoriParts/ui/components"
)

var (
	vehicleLabels = []string{"Make", "Model", "Submodel", "Engine", "Year"}
	fieldLabels   = []string{"OEM", "VIN", "Phone", "Notes"}
	catalogLabels = []string{"Car", "Model", "Detail"}
)

const (
	requestHelp = "tab/shift+tab: move • ←/→: choose • enter: send request • esc: quit"
	searchHelp  = "tab/shift+tab: move • ←/→: choose • enter: search • esc: quit"
)

// RequestModel is the part request form.
type RequestModel struct {
	state      *update.RequestState
	dispatcher *dispatcher.EventDispatcher
}

func (m *RequestModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
		update.StartRequest(m.state, m.dispatcher.GetEventBus()),
	)
}

func (m *RequestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := update.HandleRequest(m.state, msg, m.dispatcher.GetEventBus())
	// Handle core events and continue listening
	if _, ok := msg.(update.CoreEventMsg); ok {
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}
	return m, cmd
}

func (m *RequestModel) View() string {
	s := m.state
	var b strings.Builder

	b.WriteString(components.RenderTitle("RoriParts · Part request", s.Width))
	b.WriteString("\n\n")
	for level, label := range vehicleLabels {
		b.WriteString(components.RenderSelect(label, s.Chain.Select(level), s.Focus == level))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, label := range fieldLabels {
		b.WriteString(components.RenderInput(label, s.Inputs[i].View(), s.FocusedInput() == i, s.Width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(s.Status, s.Pending, s.LoadingDots, s.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(requestHelp))

	return b.String()
}

// SearchModel is the part search view.
type SearchModel struct {
	state      *update.SearchState
	dispatcher *dispatcher.EventDispatcher
}

func (m *SearchModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
		update.StartSearch(m.state, m.dispatcher.GetEventBus()),
	)
}

func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := update.HandleSearch(m.state, msg, m.dispatcher.GetEventBus())
	if _, ok := msg.(update.CoreEventMsg); ok {
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}
	return m, cmd
}

func (m *SearchModel) View() string {
	s := m.state
	var b strings.Builder

	b.WriteString(components.RenderTitle("RoriParts · Part search", s.Width))
	b.WriteString("\n\n")
	b.WriteString(components.RenderInput("Search", s.Query.View(), s.FocusedLevel() < 0, s.Width))
	b.WriteString("\n\n")
	for level, label := range catalogLabels {
		b.WriteString(components.RenderSelect(label, s.Chain.Select(level), s.FocusedLevel() == level))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if result := components.RenderResult(s.Result, s.LoadingDots, s.Width); result != "" {
		b.WriteString(result)
		b.WriteString("\n")
	}
	b.WriteString(components.RenderHelp(searchHelp))

	return b.String()
}
