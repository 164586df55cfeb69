package update

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/models"
)

func intPtr(v int) *int { return &v }

func nextUIEvent(t *testing.T, eb *eventbus.EventBus) eventbus.UIEvent {
	t.Helper()
	select {
	case ev := <-eb.UIToCore():
		return ev
	default:
		t.Fatal("no event sent to core")
		return nil
	}
}

func noUIEvent(t *testing.T, eb *eventbus.EventBus) {
	t.Helper()
	select {
	case ev := <-eb.UIToCore():
		t.Fatalf("unexpected event %#v", ev)
	default:
	}
}

// answer feeds the core's reply to the last LoadOptionsEvent back into the form.
func answer(t *testing.T, s *RequestState, eb *eventbus.EventBus, items []models.SelectableItem) {
	t.Helper()
	ev, ok := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	if !ok {
		t.Fatal("expected a LoadOptionsEvent")
	}
	HandleRequest(s, CoreEventMsg{Event: eventbus.OptionsLoadedEvent{Level: ev.Level, Token: ev.Token, Items: items}}, eb)
}

// filledForm walks the form down to the year level.
func filledForm(t *testing.T) (*RequestState, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	s := NewRequestState()

	StartRequest(s, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "1", DisplayName: "BMW"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelMake, Value: "1"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "10", DisplayName: "3 Series"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelModel, Value: "10"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "100", DisplayName: "320d"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelSubmodel, Value: "100"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "7", DisplayName: "N47", RangeStart: intPtr(2010), RangeEnd: intPtr(2013)}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelEngine, Value: "7"}, eb)
	HandleRequest(s, LevelChangedMsg{Level: models.LevelYear, Value: "2012"}, eb)
	noUIEvent(t, eb)

	s.Inputs[FieldPhone].SetValue("555-0100")
	return s, eb
}

func TestStartRequestLoadsMakes(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewRequestState()

	StartRequest(s, eb)
	ev, ok := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	if !ok || ev.Level != models.LevelMake || ev.ParentID != "" {
		t.Fatalf("event = %#v", ev)
	}
}

func TestLevelChangeClearsLaterLevels(t *testing.T) {
	s, eb := filledForm(t)

	HandleRequest(s, LevelChangedMsg{Level: models.LevelModel, Value: "10"}, eb)

	for level := models.LevelSubmodel; level <= models.LevelYear; level++ {
		sel := s.Chain.Select(level)
		if !sel.Disabled || len(sel.Items) != 0 || sel.Value() != "" {
			t.Errorf("level %d = %+v, want cleared and disabled", level, sel)
		}
	}
	ev, ok := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	if !ok || ev.Level != models.LevelSubmodel || ev.ParentID != "10" {
		t.Errorf("event = %#v", ev)
	}
}

func TestYearsDerivedFromEngine(t *testing.T) {
	s, _ := filledForm(t)

	var got []string
	for _, item := range s.Chain.Select(models.LevelYear).Items {
		got = append(got, item.ID)
	}
	if strings.Join(got, ",") != "2010,2011,2012,2013" {
		t.Errorf("years = %v", got)
	}
}

func TestReversedEngineYearsDisableYear(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewRequestState()

	StartRequest(s, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "1"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelMake, Value: "1"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "2"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelModel, Value: "2"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "3"}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelSubmodel, Value: "3"}, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "4", RangeStart: intPtr(2015), RangeEnd: intPtr(2012)}})
	HandleRequest(s, LevelChangedMsg{Level: models.LevelEngine, Value: "4"}, eb)

	year := s.Chain.Select(models.LevelYear)
	if !year.Disabled || len(year.Items) != 0 {
		t.Errorf("year = %+v, want empty and disabled", year)
	}
}

func TestStaleOptionsAreDropped(t *testing.T) {
	s, eb := filledForm(t)

	HandleRequest(s, LevelChangedMsg{Level: models.LevelModel, Value: "10"}, eb)
	first := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	HandleRequest(s, LevelChangedMsg{Level: models.LevelModel, Value: "10"}, eb)
	second := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)

	HandleRequest(s, CoreEventMsg{Event: eventbus.OptionsLoadedEvent{Level: first.Level, Token: first.Token, Err: errors.New("boom")}}, eb)
	if strings.Contains(s.Status, "boom") {
		t.Errorf("stale failure reached the status: %q", s.Status)
	}
	HandleRequest(s, CoreEventMsg{Event: eventbus.OptionsLoadedEvent{Level: first.Level, Token: first.Token, Items: []models.SelectableItem{{ID: "old"}}}}, eb)
	if len(s.Chain.Select(models.LevelSubmodel).Items) != 0 {
		t.Error("stale items were applied")
	}

	HandleRequest(s, CoreEventMsg{Event: eventbus.OptionsLoadedEvent{Level: second.Level, Token: second.Token, Items: []models.SelectableItem{{ID: "new"}}}}, eb)
	if sel := s.Chain.Select(models.LevelSubmodel); sel.Disabled || len(sel.Items) != 1 {
		t.Errorf("submodel = %+v", sel)
	}
}

func TestOptionsFailureShowsStatus(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewRequestState()

	StartRequest(s, eb)
	ev := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	err := &apperr.NetworkError{Op: "load makes", Status: 502}
	HandleRequest(s, CoreEventMsg{Event: eventbus.OptionsLoadedEvent{Level: ev.Level, Token: ev.Token, Err: err}}, eb)

	if !strings.Contains(s.Status, "unexpected status 502") {
		t.Errorf("status = %q", s.Status)
	}
	if !s.Chain.Select(models.LevelMake).Disabled {
		t.Error("make select should stay disabled")
	}
}

func TestSubmitRequiresPhone(t *testing.T) {
	s, eb := filledForm(t)
	s.Inputs[FieldPhone].SetValue("  ")

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyEnter}, eb)

	if s.Status != "Phone is required" || s.Pending {
		t.Errorf("status = %q pending = %v", s.Status, s.Pending)
	}
	noUIEvent(t, eb)
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	s, eb := filledForm(t)
	s.Inputs[FieldOEM].SetValue("11427953129")

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	if s.Status != statusSending || !s.Pending {
		t.Fatalf("status = %q pending = %v", s.Status, s.Pending)
	}
	ev, ok := nextUIEvent(t, eb).(eventbus.SubmitRequestEvent)
	if !ok {
		t.Fatal("expected a SubmitRequestEvent")
	}
	p := ev.Payload
	if p.MakeID == nil || *p.MakeID != 1 || p.Year == nil || *p.Year != 2012 || p.OEM == nil || p.VIN != nil || p.PartName != nil {
		t.Errorf("payload = %+v", p)
	}

	HandleRequest(s, CoreEventMsg{Event: eventbus.RequestSubmittedEvent{Response: models.PartRequestResponse{Status: "ok", RequestID: 42}}}, eb)

	if !strings.Contains(s.Status, "42") || s.Pending {
		t.Errorf("status = %q pending = %v", s.Status, s.Pending)
	}
	if s.Chain.Value(models.LevelMake) != "" || len(s.Chain.Select(models.LevelMake).Items) != 1 {
		t.Errorf("make = %+v, want placeholder with options kept", s.Chain.Select(models.LevelMake))
	}
	for level := models.LevelModel; level <= models.LevelYear; level++ {
		if !s.Chain.Select(level).Disabled {
			t.Errorf("level %d should be disabled", level)
		}
	}
	for i, in := range s.Inputs {
		if in.Value() != "" {
			t.Errorf("input %d = %q, want empty", i, in.Value())
		}
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	s, eb := filledForm(t)

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	nextUIEvent(t, eb)
	err := &apperr.NetworkError{Op: "submit part request", Status: 500}
	HandleRequest(s, CoreEventMsg{Event: eventbus.RequestSubmittedEvent{Err: err}}, eb)

	if !strings.Contains(s.Status, "Error") || s.Pending {
		t.Errorf("status = %q pending = %v", s.Status, s.Pending)
	}
	want := []string{"1", "10", "100", "7", "2012"}
	for level, v := range want {
		if got := s.Chain.Value(level); got != v {
			t.Errorf("level %d = %q, want %q", level, got, v)
		}
	}
	if s.Inputs[FieldPhone].Value() != "555-0100" {
		t.Error("phone was cleared")
	}
}

func TestArrowKeysMoveFocusedSelect(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewRequestState()

	StartRequest(s, eb)
	answer(t, s, eb, []models.SelectableItem{{ID: "1"}, {ID: "2"}})

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyRight}, eb)
	if s.Chain.Value(models.LevelMake) != "1" {
		t.Fatalf("make = %q", s.Chain.Value(models.LevelMake))
	}
	ev := nextUIEvent(t, eb).(eventbus.LoadOptionsEvent)
	if ev.Level != models.LevelModel || ev.ParentID != "1" {
		t.Errorf("event = %#v", ev)
	}

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyLeft}, eb)
	if s.Chain.Value(models.LevelMake) != "" {
		t.Errorf("make = %q, want placeholder", s.Chain.Value(models.LevelMake))
	}
	noUIEvent(t, eb)
}

func TestTabReachesTextFields(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewRequestState()

	for i := 0; i < s.Chain.Len()+FieldPhone; i++ {
		HandleRequest(s, tea.KeyMsg{Type: tea.KeyTab}, eb)
	}
	if s.FocusedInput() != FieldPhone || !s.Inputs[FieldPhone].Focused() {
		t.Fatalf("focused input = %d", s.FocusedInput())
	}

	HandleRequest(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("55")}, eb)
	if s.Inputs[FieldPhone].Value() != "55" {
		t.Errorf("phone = %q", s.Inputs[FieldPhone].Value())
	}
}
