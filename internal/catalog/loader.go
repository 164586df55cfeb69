package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Source fetches the catalog document.
type Source func(ctx context.Context) (*Catalog, error)

// Loader fetches the catalog once and keeps it for the life of the process.
// Concurrent loads share one fetch. A failed fetch is not cached.
type Loader struct {
	source Source
	group  singleflight.Group

	mu     sync.RWMutex
	loaded *Catalog
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the cached catalog or fetches it.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	if c := l.Cached(); c != nil {
		return c, nil
	}

	v, err, _ := l.group.Do("catalog", func() (interface{}, error) {
		if c := l.Cached(); c != nil {
			return c, nil
		}
		c, err := l.source(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.loaded = c
		l.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Cached returns the catalog if it has been loaded.
func (l *Loader) Cached() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}
