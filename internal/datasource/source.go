package datasource

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/mcoot/kmnx-league/internal/model"
)

// Source produces a league document
type Source interface {
	// Name identifies the source in logs and errors
	Name() string
	Load(ctx context.Context) (*model.League, error)
}

// Decode reads a league document. Missing lists decode as empty lists,
// records that are not objects are dropped, badly typed text fields keep
// their text and malformed score and kill fields decode as absent. Only a
// document that is not valid JSON fails.
func Decode(r io.Reader) (*model.League, error) {
	var league model.League
	if err := json.NewDecoder(r).Decode(&league); err != nil {
		return nil, fmt.Errorf("failed to parse league data: %w", err)
	}
	if league.Teams == nil {
		league.Teams = []model.Team{}
	}
	if league.Matches == nil {
		league.Matches = []model.Match{}
	}
	return &league, nil
}
