package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a copy of r.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty ID: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a copy of the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// LatestRun returns the run with the greatest ID.
func (s *Store) LatestRun(ctx context.Context) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := ""
	for id := range s.runs {
		if id > latest {
			latest = id
		}
	}
	if latest == "" {
		return store.Run{}, false, nil
	}
	return copyRun(s.runs[latest]), true, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.RunInfo, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, store.RunInfo{ID: r.ID, CreatedAt: r.CreatedAt, Documents: r.Documents, Terms: len(r.Terms)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	out := r
	out.Terms = make([]store.Term, len(r.Terms))
	for i, t := range r.Terms {
		t.Variants = append([]store.Variant(nil), t.Variants...)
		out.Terms[i] = t
	}
	out.Labels = append([]store.Label(nil), r.Labels...)
	out.Acronyms = append([]store.Acronym(nil), r.Acronyms...)
	return out
}
