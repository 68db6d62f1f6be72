// Package memory provides an in-memory ingestion state store for
// tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// Store keeps ingestion state in memory.
type Store struct {
	mu      sync.RWMutex
	last    *domain.IngestState
	history []domain.IngestState
}

// NewStore creates an empty in-memory state store.
func NewStore() *Store {
	return &Store{}
}

// Last returns the most recently ingested document, or (nil, nil) when
// nothing has been ingested yet.
func (s *Store) Last(ctx context.Context) (*domain.IngestState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, nil
	}
	state := *s.last
	return &state, nil
}

// Record replaces the current state and appends to the history log.
func (s *Store) Record(ctx context.Context, state domain.IngestState) error {
	if state.Path == "" {
		return fmt.Errorf("%w: state path is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &state
	s.history = append(s.history, state)
	return nil
}

// History returns past ingestions, newest first, capped at limit.
// A non-positive limit returns everything.
func (s *Store) History(ctx context.Context, limit int) ([]domain.IngestState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]domain.IngestState, 0, len(s.history))
	for i := len(s.history) - 1; i >= 0; i-- {
		states = append(states, s.history[i])
		if limit > 0 && len(states) == limit {
			break
		}
	}
	return states, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
