package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/cascade"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/models"
	"github.com/Rorical/RoriParts/internal/partrequest"
)

// Text fields of the request form, in focus order after the selects
const (
	FieldOEM = iota
	FieldVIN
	FieldPhone
	FieldNotes
)

const (
	statusSending = "Sending..."
	statusReady   = "Ready"
)

// RequestState is the vehicle part request form.
type RequestState struct {
	Chain   *cascade.Chain
	Inputs  []textinput.Model
	Focus   int // Selects first, then Inputs
	Status  string
	Pending bool
	Viewport
}

func NewRequestState() *RequestState {
	s := &RequestState{
		Chain: cascade.NewChain(
			"Select make",
			"Select model",
			"Select submodel",
			"Select engine",
			"Select year",
		),
		Inputs: []textinput.Model{
			newInput("OEM code", 64),
			newInput("Vehicle identification number", 17),
			newInput("Phone", 32),
			newInput("Anything we should know", 256),
		},
		Status: statusReady,
	}
	return s
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// Fields returns the current text of the form.
func (s *RequestState) Fields() partrequest.Fields {
	return partrequest.Fields{
		OEM:   s.Inputs[FieldOEM].Value(),
		VIN:   s.Inputs[FieldVIN].Value(),
		Phone: s.Inputs[FieldPhone].Value(),
		Notes: s.Inputs[FieldNotes].Value(),
	}
}

// FocusedInput returns the index of the focused text field, -1 while a select has focus.
func (s *RequestState) FocusedInput() int {
	if s.Focus < s.Chain.Len() {
		return -1
	}
	return s.Focus - s.Chain.Len()
}

func (s *RequestState) positions() int {
	return s.Chain.Len() + len(s.Inputs)
}

// StartRequest asks the core for the list of makes.
func StartRequest(s *RequestState, eb *eventbus.EventBus) tea.Cmd {
	f := s.Chain.Begin(models.LevelMake)
	if err := eb.SendToCore(eventbus.LoadOptionsEvent{Level: f.Level, Token: f.Token}); err != nil {
		s.Status = "Error loading makes: " + err.Error()
	}
	return nil
}

// HandleRequest applies msg to the request form.
func HandleRequest(s *RequestState, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleRequestKey(s, msg, eb)
	case LevelChangedMsg:
		f, ok := s.Chain.Change(msg.Level, msg.Value)
		requestNext(s, eb, f, ok)
		return nil
	case tea.WindowSizeMsg:
		s.resize(msg)
		return nil
	case TickMsg:
		return s.tick(s.Pending)
	case CoreEventMsg:
		handleRequestCoreEvent(s, msg)
		return nil
	}
	return s.updateInput(msg)
}

func handleRequestKey(s *RequestState, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "tab", "down":
		return s.setFocus(focusRing(s.Focus, 1, s.positions()))
	case "shift+tab", "up":
		return s.setFocus(focusRing(s.Focus, -1, s.positions()))
	case "enter":
		submit(s, eb)
		return nil
	case "left", "right":
		if s.FocusedInput() < 0 {
			delta := 1
			if keyMsg.String() == "left" {
				delta = -1
			}
			f, ok, moved := s.Chain.Move(s.Focus, delta)
			if moved {
				requestNext(s, eb, f, ok)
			}
			return nil
		}
	}
	return s.updateInput(keyMsg)
}

// requestNext resolves the fetch produced by a level change. Years come from the
// chosen engine, every other level from the backend.
func requestNext(s *RequestState, eb *eventbus.EventBus, f cascade.Fetch, ok bool) {
	if !ok {
		return
	}
	if f.Level == models.LevelYear {
		engine, _ := s.Chain.Select(models.LevelEngine).Item()
		s.Chain.Populate(models.LevelYear, f.Token, cascade.Years(engine.YearRange()))
		return
	}
	event := eventbus.LoadOptionsEvent{Level: f.Level, ParentID: f.ParentID, Token: f.Token}
	if err := eb.SendToCore(event); err != nil {
		s.Status = "Error loading data: " + err.Error()
	}
}

func submit(s *RequestState, eb *eventbus.EventBus) {
	if s.Pending {
		return
	}
	payload := partrequest.Build(s.Chain.Values(), s.Fields())
	if err := partrequest.Validate(payload); err != nil {
		s.Status = err.Error()
		return
	}

	if err := eb.SendToCore(eventbus.SubmitRequestEvent{Payload: payload}); err != nil {
		s.Status = "Error sending request: " + err.Error()
		return
	}
	s.Status = statusSending
	s.Pending = true
}

func handleRequestCoreEvent(s *RequestState, msg CoreEventMsg) {
	switch event := msg.Event.(type) {
	case eventbus.OptionsLoadedEvent:
		if event.Err != nil {
			if s.Chain.Fail(event.Level, event.Token) {
				s.Status = "Error loading data: " + event.Err.Error()
			}
			return
		}
		s.Chain.Populate(event.Level, event.Token, event.Items)
	case eventbus.RequestSubmittedEvent:
		s.Pending = false
		if event.Err != nil {
			s.Status = "Error sending request: " + event.Err.Error()
			return
		}
		s.Status = fmt.Sprintf("Request sent. ID: %d", event.Response.RequestID)
		s.reset()
	}
}

// reset clears the form after a stored request. Makes stay loaded.
func (s *RequestState) reset() {
	s.Chain.Reset()
	for i := range s.Inputs {
		s.Inputs[i].Reset()
	}
}

func (s *RequestState) setFocus(pos int) tea.Cmd {
	s.Focus = pos
	var cmd tea.Cmd
	for i := range s.Inputs {
		if i == s.FocusedInput() {
			cmd = s.Inputs[i].Focus()
		} else {
			s.Inputs[i].Blur()
		}
	}
	return cmd
}

func (s *RequestState) updateInput(msg tea.Msg) tea.Cmd {
	i := s.FocusedInput()
	if i < 0 {
		return nil
	}
	var cmd tea.Cmd
	s.Inputs[i], cmd = s.Inputs[i].Update(msg)
	return cmd
}

