package update

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/cascade"
	"github.com/Rorical/RoriParts/internal/catalog"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/models"
	"github.com/Rorical/RoriParts/internal/render"
)

const (
	msgEmptyTerm     = "Please enter a search term."
	msgIncomplete    = "Please select car, model, and detail."
	msgSearchFailure = "Failed to fetch offers."
)

// SearchState is the part search view: a free text query and the
// car, model and detail selects fed by the catalog.
type SearchState struct {
	Chain   *cascade.Chain
	Catalog *catalog.Catalog
	Query   textinput.Model
	Focus   int // 0 is the query, then one position per select
	Result  render.Display
	seq     uint64
	Viewport
}

func NewSearchState() *SearchState {
	q := textinput.New()
	q.Placeholder = "OEM code or part name"
	q.Prompt = ""
	q.CharLimit = 128
	q.Focus()

	return &SearchState{
		Chain: cascade.NewChain("", "", ""),
		Query: q,
	}
}

// FocusedLevel returns the chain level with focus, -1 while the query has it.
func (s *SearchState) FocusedLevel() int {
	return s.Focus - 1
}

// StartSearch asks the core for the catalog.
func StartSearch(s *SearchState, eb *eventbus.EventBus) tea.Cmd {
	if err := eb.SendToCore(eventbus.LoadCatalogEvent{}); err != nil {
		log.Printf("Unable to load cars.json: %v", err)
	}
	return textinput.Blink
}

// HandleSearch applies msg to the search view.
func HandleSearch(s *SearchState, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleSearchKey(s, msg, eb)
	case LevelChangedMsg:
		f, ok := s.Chain.Change(msg.Level, msg.Value)
		s.cascade(f, ok)
		return nil
	case tea.WindowSizeMsg:
		s.resize(msg)
		return nil
	case TickMsg:
		return s.tick(s.Result.Loading)
	case CoreEventMsg:
		handleSearchCoreEvent(s, msg)
		return nil
	}
	if s.FocusedLevel() < 0 {
		var cmd tea.Cmd
		s.Query, cmd = s.Query.Update(msg)
		return cmd
	}
	return nil
}

func handleSearchKey(s *SearchState, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	positions := s.Chain.Len() + 1
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "tab", "down":
		return s.setFocus(focusRing(s.Focus, 1, positions))
	case "shift+tab", "up":
		return s.setFocus(focusRing(s.Focus, -1, positions))
	case "enter":
		if s.FocusedLevel() < 0 {
			Search(s, eb)
		} else {
			SearchByDetail(s, eb)
		}
		return nil
	case "left", "right":
		if level := s.FocusedLevel(); level >= 0 {
			delta := 1
			if keyMsg.String() == "left" {
				delta = -1
			}
			f, ok, _ := s.Chain.Move(level, delta)
			s.cascade(f, ok)
			return nil
		}
	}

	if s.FocusedLevel() >= 0 {
		return nil
	}
	var cmd tea.Cmd
	s.Query, cmd = s.Query.Update(keyMsg)
	return cmd
}

// Search looks up offers for the query field.
func Search(s *SearchState, eb *eventbus.EventBus) {
	term := strings.TrimSpace(s.Query.Value())
	if term == "" {
		s.showError(apperr.Validation(msgEmptyTerm))
		return
	}

	s.seq++
	if err := eb.SendToCore(eventbus.SearchPartEvent{Query: term, Seq: s.seq}); err != nil {
		log.Printf("search %q: %v", term, err)
		s.Result = render.Error(msgSearchFailure)
		return
	}
	s.Result = render.Loading()
}

// SearchByDetail searches for "<car> <model> <detail>" and copies that query into
// the search field.
func SearchByDetail(s *SearchState, eb *eventbus.EventBus) {
	car := s.Chain.Value(models.LevelCar)
	model := s.Chain.Value(models.LevelCarModel)
	detail := s.Chain.Value(models.LevelDetail)
	if car == "" || model == "" || detail == "" {
		s.showError(apperr.Validation(msgIncomplete))
		return
	}

	s.Query.SetValue(car + " " + model + " " + detail)
	Search(s, eb)
}

func handleSearchCoreEvent(s *SearchState, msg CoreEventMsg) {
	switch event := msg.Event.(type) {
	case eventbus.CatalogLoadedEvent:
		if event.Err != nil {
			log.Printf("Unable to load cars.json: %v", event.Err)
			return
		}
		s.Catalog = event.Catalog
		f := s.Chain.Begin(models.LevelCar)
		s.Chain.Populate(models.LevelCar, f.Token, models.NamedItems(s.Catalog.CarNames()))
		s.cascade(s.Chain.Choose(models.LevelCar, s.Chain.Select(models.LevelCar).Selected))
	case eventbus.SearchCompletedEvent:
		if event.Seq != s.seq {
			return
		}
		if event.Err != nil {
			s.Result = render.Error(msgSearchFailure)
			return
		}
		s.Result = render.Result(event.Result)
	}
}

// cascade fills the levels after a change from the catalog. Levels without a
// placeholder select their first option, so the chain settles down to the detail.
func (s *SearchState) cascade(f cascade.Fetch, ok bool) {
	for ok {
		var names []string
		switch f.Level {
		case models.LevelCarModel:
			names = s.Catalog.ModelNames(f.ParentID)
		case models.LevelDetail:
			names = s.Catalog.DetailsFor(s.Chain.Value(models.LevelCar), f.ParentID)
		}
		s.Chain.Populate(f.Level, f.Token, models.NamedItems(names))
		f, ok = s.Chain.Choose(f.Level, s.Chain.Select(f.Level).Selected)
	}
}

func (s *SearchState) showError(err error) {
	s.Result = render.Error(err.Error())
}

func (s *SearchState) setFocus(pos int) tea.Cmd {
	s.Focus = pos
	if s.FocusedLevel() < 0 {
		return s.Query.Focus()
	}
	s.Query.Blur()
	return nil
}
