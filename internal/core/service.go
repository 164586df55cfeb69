package core

import (
	"context"
	"log"
	"sync"

	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/catalog"
	"github.com/Rorical/RoriParts/internal/eventbus"
	"github.com/Rorical/RoriParts/internal/models"
)

// VehicleBackend serves the vehicle levels and stores part requests.
type VehicleBackend interface {
	Options(ctx context.Context, level int, parentID string) ([]models.SelectableItem, error)
	SubmitPartRequest(ctx context.Context, payload models.PartRequestPayload) (models.PartRequestResponse, error)
}

// PartSearcher looks up offers for a part.
type PartSearcher interface {
	SearchPart(ctx context.Context, query string) (models.PartSearchResult, error)
}

// CatalogLoader returns the car catalog.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// Service performs the network work requested by the UI. Every UI event is served
// on its own goroutine and answered with exactly one core event.
type Service struct {
	vehicles VehicleBackend
	search   PartSearcher
	catalog  CatalogLoader
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewService creates a service. Backends a flow does not use may be nil.
func NewService(vehicles VehicleBackend, search PartSearcher, catalog CatalogLoader, eb *eventbus.EventBus) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		vehicles: vehicles,
		search:   search,
		catalog:  catalog,
		eventBus: eb,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the event loop in a goroutine
func (s *Service) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.eventLoop()
	}()
}

// Stop cancels in-flight requests and waits for their goroutines.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleUIEvent(event)
			}()
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.LoadOptionsEvent:
		s.loadOptions(e)
	case eventbus.SubmitRequestEvent:
		s.submit(e)
	case eventbus.SearchPartEvent:
		s.searchPart(e)
	case eventbus.LoadCatalogEvent:
		s.loadCatalog()
	}
}

func (s *Service) loadOptions(e eventbus.LoadOptionsEvent) {
	if s.vehicles == nil {
		s.push(eventbus.OptionsLoadedEvent{Level: e.Level, Token: e.Token, Err: errNotConfigured("vehicle backend")})
		return
	}
	items, err := s.vehicles.Options(s.ctx, e.Level, e.ParentID)
	if err != nil {
		log.Printf("load options level=%d parent=%q kind=%s: %v", e.Level, e.ParentID, apperr.Kind(err), err)
	}
	s.push(eventbus.OptionsLoadedEvent{Level: e.Level, Token: e.Token, Items: items, Err: err})
}

func (s *Service) submit(e eventbus.SubmitRequestEvent) {
	if s.vehicles == nil {
		s.push(eventbus.RequestSubmittedEvent{Err: errNotConfigured("vehicle backend")})
		return
	}
	resp, err := s.vehicles.SubmitPartRequest(s.ctx, e.Payload)
	if err != nil {
		log.Printf("submit part request kind=%s: %v", apperr.Kind(err), err)
	} else {
		log.Printf("part request stored id=%d", resp.RequestID)
	}
	s.push(eventbus.RequestSubmittedEvent{Response: resp, Err: err})
}

func (s *Service) searchPart(e eventbus.SearchPartEvent) {
	if s.search == nil {
		s.push(eventbus.SearchCompletedEvent{Seq: e.Seq, Err: errNotConfigured("search backend")})
		return
	}
	result, err := s.search.SearchPart(s.ctx, e.Query)
	if err != nil {
		log.Printf("search part q=%q kind=%s: %v", e.Query, apperr.Kind(err), err)
	}
	s.push(eventbus.SearchCompletedEvent{Seq: e.Seq, Result: result, Err: err})
}

func (s *Service) loadCatalog() {
	if s.catalog == nil {
		s.push(eventbus.CatalogLoadedEvent{Err: errNotConfigured("catalog")})
		return
	}
	c, err := s.catalog.Load(s.ctx)
	s.push(eventbus.CatalogLoadedEvent{Catalog: c, Err: err})
}

func (s *Service) push(event eventbus.CoreEvent) {
	if s.ctx.Err() != nil {
		return
	}
	if err := s.eventBus.SendToUI(event); err != nil {
		log.Printf("Error sending event to UI: %v", err)
	}
}

func errNotConfigured(what string) error {
	return &apperr.NetworkError{Op: what + " is not configured"}
}
