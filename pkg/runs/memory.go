package runs

import (
	"context"
	"sync"

	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
)

// MemoryStore keeps the most recent runs in process. When full, Put drops
// the oldest run.
type MemoryStore struct {
	mu    sync.RWMutex
	max   int
	runs  map[string]tsio.Result
	order []string // run IDs, oldest first
}

// NewMemoryStore returns a store holding up to max runs. max <= 0 means no
// bound.
func NewMemoryStore(max int) *MemoryStore {
	return &MemoryStore{max: max, runs: make(map[string]tsio.Result)}
}

func (s *MemoryStore) Put(_ context.Context, r tsio.Result) error {
	if r.RunID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "result has no run id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.RunID]; !ok {
		for s.max > 0 && len(s.order) >= s.max {
			delete(s.runs, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, r.RunID)
	}
	r.Cached = false
	s.runs[r.RunID] = r
	return nil
}

func (s *MemoryStore) Get(_ context.Context, runID string) (tsio.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runID]
	if !ok {
		return tsio.Result{}, errors.New(errors.ErrCodeNotFound, "run %s not found", runID)
	}
	return r, nil
}

// Len returns the number of archived runs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
