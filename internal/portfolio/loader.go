// Package portfolio loads the projects and experiences shown on the site and
// holds the per-visitor view state for the tabbed panels.
package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/showcase/internal/cache"
)

// ErrClosed is returned by Load when the loader was closed before the fetch finished.
var ErrClosed = errors.New("portfolio: loader closed")

// Loader serves cached lists immediately and replaces them once a fresh
// fetch of both collections succeeds.
type Loader struct {
	source Source
	cache  cache.Cache

	mu          sync.RWMutex
	projects    []Project
	experiences []Experience
	closed      bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoader(source Source, c cache.Cache) *Loader {
	return &Loader{
		source:      source,
		cache:       c,
		projects:    []Project{},
		experiences: []Experience{},
	}
}

// Start hydrates from the cache and then fetches once in the background.
func (l *Loader) Start(ctx context.Context) {
	l.Hydrate()

	loadCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.mu.Lock()
	l.cancel = cancel
	l.done = done
	l.mu.Unlock()

	go func() {
		defer close(done)
		if err := l.Load(loadCtx); err == nil {
			p, e := l.Snapshot()
			log.Printf("[loader] loaded %d projects, %d experiences", len(p), len(e))
		}
	}()
}

// Close cancels an in-flight load and waits for it. No commit happens after Close.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Hydrate replaces in-memory lists with whatever snapshots the cache holds.
// Missing keys leave the current list as is.
func (l *Loader) Hydrate() {
	var (
		projects    []Project
		experiences []Experience
	)
	hasProjects := readSnapshot(l.cache, cache.KeyProjects, &projects)
	hasExperiences := readSnapshot(l.cache, cache.KeyExperiences, &experiences)

	l.mu.Lock()
	defer l.mu.Unlock()
	if hasProjects {
		l.projects = nonNil(projects)
	}
	if hasExperiences {
		l.experiences = nonNil(experiences)
	}
}

func readSnapshot(c cache.Cache, key string, dest any) bool {
	raw, ok := c.Get(key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("[loader] ignoring unreadable %s snapshot: %v", key, err)
		return false
	}
	return true
}

// Load fetches both collections concurrently. Both lists and both cache
// entries are replaced only if both fetches succeed; otherwise state is unchanged.
func (l *Loader) Load(ctx context.Context) error {
	var (
		projects    []Project
		experiences []Experience
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = l.source.Projects(gctx)
		if err != nil {
			return fmt.Errorf("fetch projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		experiences, err = l.source.Experiences(gctx)
		if err != nil {
			return fmt.Errorf("fetch experiences: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("[loader] error fetching data: %v", err)
		return err
	}

	return l.commit(ctx, nonNil(projects), nonNil(experiences))
}

func (l *Loader) commit(ctx context.Context, projects []Project, experiences []Experience) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.projects = projects
	l.experiences = experiences

	writeSnapshot(l.cache, cache.KeyProjects, projects)
	writeSnapshot(l.cache, cache.KeyExperiences, experiences)
	return nil
}

func writeSnapshot(c cache.Cache, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[loader] encode %s snapshot: %v", key, err)
		return
	}
	if err := c.Set(key, string(data)); err != nil {
		log.Printf("[loader] write %s snapshot: %v", key, err)
	}
}

// Snapshot returns copies of the current lists.
func (l *Loader) Snapshot() ([]Project, []Experience) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	projects := make([]Project, len(l.projects))
	copy(projects, l.projects)
	experiences := make([]Experience, len(l.experiences))
	copy(experiences, l.experiences)
	return projects, experiences
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
