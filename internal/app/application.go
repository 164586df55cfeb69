package app

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriParts/internal/api"
	"github.com/Rorical/RoriParts/internal/catalog"
	"github.com/Rorical/RoriParts/internal/config"
	"github.com/Rorical/RoriParts/internal/core"
	"github.com/Rorical/RoriParts/internal/dispatcher"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/update"
)

// Mode selects which view the application runs.
type Mode int

const (
	ModeRequest Mode = iota
	ModeSearch
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	model      tea.Model
}

func NewApplication(mode Mode) (*Application, error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Create event bus
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("event bus: %v", e)
	})

	// Create dispatcher
	disp := dispatcher.NewEventDispatcher(eb)

	vehicles := api.NewClient(cfg.GetAPIBaseURL(), cfg.GetTimeout())
	search := api.NewClient(cfg.GetSearchBaseURL(), cfg.GetTimeout())
	service := core.NewService(vehicles, search, NewCatalogLoader(cfg, search), eb)

	var model tea.Model
	switch mode {
	case ModeSearch:
		model = &SearchModel{state: update.NewSearchState(), dispatcher: disp}
	default:
		model = &RequestModel{state: update.NewRequestState(), dispatcher: disp}
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

// NewCatalogLoader reads the catalog from the profile's catalog_path when set,
// otherwise from cars.json on the search backend.
func NewCatalogLoader(cfg *config.Config, search *api.Client) *catalog.Loader {
	if path := cfg.GetCatalogPath(); path != "" {
		return catalog.NewLoader(func(context.Context) (*catalog.Catalog, error) {
			return catalog.ReadFile(path)
		})
	}
	return catalog.NewLoader(search.FetchCatalog)
}

func (app *Application) Start() error {
	// Anything written to stderr would tear the screen
	if path := os.Getenv("RORIPARTS_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "roriparts")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	defer log.SetOutput(os.Stderr)

	log.Printf("profile %q api=%s search=%s", app.config.ActiveProfile, app.config.GetAPIBaseURL(), app.config.GetSearchBaseURL())

	// Start background services
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}
