package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mcoot/kmnx-league/internal/model"
)

// Chain tries each source in order and returns the first document that loads
type Chain struct {
	sources []Source
	logger  zerolog.Logger
}

var _ Source = (*Chain)(nil)

// NewChain creates a chain over sources
func NewChain(logger zerolog.Logger, sources ...Source) *Chain {
	return &Chain{
		sources: sources,
		logger:  logger.With().Str("component", "datasource").Logger(),
	}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, " -> ")
}

func (c *Chain) Load(ctx context.Context) (*model.League, error) {
	var errs []error
	for _, s := range c.sources {
		league, err := s.Load(ctx)
		if err == nil {
			c.logger.Debug().Str("source", s.Name()).Int("matches", len(league.Matches)).Msg("loaded league data")
			return league, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		event := c.logger.Warn()
		if errors.Is(err, fs.ErrNotExist) {
			event = c.logger.Debug()
		}
		event.Err(err).Str("source", s.Name()).Msg("data source unavailable, trying next")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, model.ErrNoData
	}
	return nil, fmt.Errorf("%w: %w", model.ErrNoData, errors.Join(errs...))
}

// ForLocation picks a file or HTTP source for a --data value.
// An empty location yields nil.
func ForLocation(location string) Source {
	switch {
	case location == "":
		return nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location)
	default:
		return NewFileSource(location)
	}
}
