package feed

import (
	"context"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/atomfeed/pkg/atom"
)

//go:generate moq -out mocks/feed_loader.go -pkg mocks -skip-ensure -fmt goimports . FeedLoader

// FeedLoader loads and maps one source
type FeedLoader interface {
	Load(ctx context.Context, src string) (*atom.Feed, error)
}

// Result is the outcome of loading one source
type Result struct {
	Source string
	Feed   *atom.Feed
	Err    error
}

// Manager loads many sources concurrently
type Manager struct {
	loader        FeedLoader
	maxConcurrent int
}

// NewManager creates a new feed manager, maxConcurrent below 1 means one source at a time
func NewManager(loader FeedLoader, maxConcurrent int) *Manager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Manager{loader: loader, maxConcurrent: maxConcurrent}
}

// LoadAll loads all sources and returns one result per source in input order.
// A failing source doesn't stop the others, its error is kept in its result.
func (m *Manager) LoadAll(ctx context.Context, sources []string) []Result {
	results := make([]Result, len(sources))
	var failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(m.maxConcurrent)
	for i, src := range sources {
		g.Go(func() error {
			lgr.Printf("[DEBUG] loading %s", src)
			feed, err := m.loader.Load(ctx, src)
			results[i] = Result{Source: src, Feed: feed, Err: err}
			if err != nil {
				failed.Add(1)
				lgr.Printf("[WARN] failed to load %s: %v", src, err)
				return nil
			}
			lgr.Printf("[INFO] loaded %s, %d entries", src, len(feed.Entries))
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] loaded %d/%d sources", len(sources)-int(failed.Load()), len(sources))
	return results
}
