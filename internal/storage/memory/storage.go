package memory

import (
	"context"
	"sync"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	league *model.League
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetLeague(ctx context.Context) (*model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.league == nil {
		return nil, model.ErrNoData
	}
	return s.league.Clone(), nil
}

func (s *Storage) SaveLeague(ctx context.Context, league *model.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.league = league.Clone()
	return nil
}

func (s *Storage) DeleteLeague(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.league = nil
	return nil
}

func (s *Storage) Close() error {
	return nil
}
