package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/catalog"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/models"
	"github.com/Rorical/RoriParts/internal/render"
)

const carsJSON = `{
	"Toyota": {
		"Corolla": {"Brakes": ["Pads", "Discs"], "Engine": ["Filter"]},
		"Yaris": {}
	},
	"Audi": {
		"A4": {"Lights": ["Bulb"]}
	}
}`

func loadedSearch(t *testing.T) (*SearchState, *eventbus.EventBus) {
	t.Helper()
	c, err := catalog.Parse([]byte(carsJSON))
	if err != nil {
		t.Fatal(err)
	}
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	s := NewSearchState()

	StartSearch(s, eb)
	if _, ok := nextUIEvent(t, eb).(eventbus.LoadCatalogEvent); !ok {
		t.Fatal("expected a LoadCatalogEvent")
	}
	HandleSearch(s, CoreEventMsg{Event: eventbus.CatalogLoadedEvent{Catalog: c}}, eb)
	return s, eb
}

func TestCatalogSelectsFirstOptions(t *testing.T) {
	s, _ := loadedSearch(t)

	want := []string{"Toyota", "Corolla", "Pads"}
	for level, v := range want {
		if got := s.Chain.Value(level); got != v {
			t.Errorf("level %d = %q, want %q", level, got, v)
		}
	}
	if n := len(s.Chain.Select(models.LevelDetail).Items); n != 3 {
		t.Errorf("details = %d, want 3", n)
	}
}

func TestCatalogCascadeOnChange(t *testing.T) {
	s, eb := loadedSearch(t)

	HandleSearch(s, LevelChangedMsg{Level: models.LevelCarModel, Value: "Yaris"}, eb)
	detail := s.Chain.Select(models.LevelDetail)
	if !detail.Disabled || detail.Value() != "" {
		t.Errorf("detail = %+v, want empty and disabled", detail)
	}

	HandleSearch(s, LevelChangedMsg{Level: models.LevelCar, Value: "Audi"}, eb)
	if s.Chain.Value(models.LevelCarModel) != "A4" || s.Chain.Value(models.LevelDetail) != "Bulb" {
		t.Errorf("values = %v", s.Chain.Values())
	}
}

func TestCatalogFailureLeavesSelectsEmpty(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewSearchState()

	HandleSearch(s, CoreEventMsg{Event: eventbus.CatalogLoadedEvent{Err: errors.New("404")}}, eb)
	if s.Catalog != nil || !s.Chain.Select(models.LevelCar).Disabled {
		t.Error("catalog failure should leave the view empty")
	}
	if !s.Result.Empty() {
		t.Errorf("result = %+v, want nothing shown", s.Result)
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	s, eb := loadedSearch(t)
	s.Query.SetValue("   ")

	HandleSearch(s, tea.KeyMsg{Type: tea.KeyEnter}, eb)

	if s.Result.Error != msgEmptyTerm {
		t.Errorf("result = %+v", s.Result)
	}
	noUIEvent(t, eb)
}

func TestSearchByTerm(t *testing.T) {
	s, eb := loadedSearch(t)
	s.Query.SetValue(" 04465-02220 ")

	HandleSearch(s, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	if !s.Result.Loading {
		t.Fatalf("result = %+v, want loading", s.Result)
	}
	ev := nextUIEvent(t, eb).(eventbus.SearchPartEvent)
	if ev.Query != "04465-02220" {
		t.Errorf("query = %q", ev.Query)
	}

	price := 19.5
	HandleSearch(s, CoreEventMsg{Event: eventbus.SearchCompletedEvent{Seq: ev.Seq, Result: models.PartSearchResult{FinalPrice: &price}}}, eb)
	if s.Result.Price != "Price: 19.5 €" || s.Result.NoImage == "" {
		t.Errorf("result = %+v", s.Result)
	}
}

func TestSearchFailure(t *testing.T) {
	s, eb := loadedSearch(t)
	s.Query.SetValue("pads")

	Search(s, eb)
	ev := nextUIEvent(t, eb).(eventbus.SearchPartEvent)
	HandleSearch(s, CoreEventMsg{Event: eventbus.SearchCompletedEvent{Seq: ev.Seq, Err: errors.New("503")}}, eb)

	if s.Result != render.Error(msgSearchFailure) {
		t.Errorf("result = %+v", s.Result)
	}
}

func TestOlderSearchIsIgnored(t *testing.T) {
	s, eb := loadedSearch(t)

	s.Query.SetValue("first")
	Search(s, eb)
	first := nextUIEvent(t, eb).(eventbus.SearchPartEvent)
	s.Query.SetValue("second")
	Search(s, eb)
	second := nextUIEvent(t, eb).(eventbus.SearchPartEvent)

	photo := "https://img.example/p.jpg"
	HandleSearch(s, CoreEventMsg{Event: eventbus.SearchCompletedEvent{Seq: second.Seq, Result: models.PartSearchResult{Photo: &photo}}}, eb)
	HandleSearch(s, CoreEventMsg{Event: eventbus.SearchCompletedEvent{Seq: first.Seq, Err: errors.New("late")}}, eb)

	if s.Result.ImageURL != photo || s.Result.Error != "" {
		t.Errorf("result = %+v", s.Result)
	}
}

func TestSearchByDetail(t *testing.T) {
	s, eb := loadedSearch(t)

	SearchByDetail(s, eb)

	if s.Query.Value() != "Toyota Corolla Pads" {
		t.Errorf("query field = %q", s.Query.Value())
	}
	ev := nextUIEvent(t, eb).(eventbus.SearchPartEvent)
	if ev.Query != "Toyota Corolla Pads" {
		t.Errorf("query = %q", ev.Query)
	}
}

func TestSearchByDetailNeedsAllLevels(t *testing.T) {
	s, eb := loadedSearch(t)
	HandleSearch(s, LevelChangedMsg{Level: models.LevelCarModel, Value: "Yaris"}, eb)

	SearchByDetail(s, eb)

	if s.Result.Error != msgIncomplete {
		t.Errorf("result = %+v", s.Result)
	}
	noUIEvent(t, eb)
}

func TestDetailSelectMovesByPosition(t *testing.T) {
	c, err := catalog.Parse([]byte(`{"VW": {"Golf": {"A": ["Pads"], "B": ["Pads", "Hose"]}}}`))
	if err != nil {
		t.Fatal(err)
	}
	eb := eventbus.NewEventBus()
	defer eb.Close()
	s := NewSearchState()
	HandleSearch(s, CoreEventMsg{Event: eventbus.CatalogLoadedEvent{Catalog: c}}, eb)

	s.Focus = models.LevelDetail + 1
	HandleSearch(s, tea.KeyMsg{Type: tea.KeyRight}, eb)
	HandleSearch(s, tea.KeyMsg{Type: tea.KeyRight}, eb)

	if s.Chain.Value(models.LevelDetail) != "Hose" {
		t.Errorf("detail = %q, want Hose", s.Chain.Value(models.LevelDetail))
	}
}
