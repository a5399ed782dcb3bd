package storage

import (
	"context"

	"github.com/mcoot/kmnx-league/internal/model"
)

// Storage keeps the edited league document between runs.
// Implementations store whole documents and hand out copies.
type Storage interface {
	// GetLeague returns the stored document, or model.ErrNoData if nothing
	// has been saved
	GetLeague(ctx context.Context) (*model.League, error)
	// SaveLeague replaces the stored document
	SaveLeague(ctx context.Context, league *model.League) error
	// DeleteLeague removes the stored document. Deleting nothing is not an error.
	DeleteLeague(ctx context.Context) error

	Close() error
}
