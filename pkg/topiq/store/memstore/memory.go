// Package memstore is an in-memory Store for tests and dry runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/topiq/pkg/topiq/internalerr"
	"github.com/cognicore/topiq/pkg/topiq/store"
)

type memStore struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{runs: make(map[string]store.Run)}
}

func (m *memStore) Close() error {
	return nil
}

func (m *memStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("memstore: run id required: %w", internalerr.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = r
	return nil
}

func (m *memStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("memstore: run %s: %w", id, internalerr.ErrNotFound)
	}
	return run, nil
}

func (m *memStore) ListRuns(ctx context.Context, limit int) ([]store.RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]store.RunInfo, 0, len(m.runs))
	for _, run := range m.runs {
		infos = append(infos, store.RunInfo{
			ID:        run.ID,
			StartedAt: run.StartedAt,
			Model:     run.Model,
			DocCount:  len(run.Docs),
		})
	}
	// Newest first; ULIDs sort lexicographically by time.
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID > infos[j].ID })
	if len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}
