package league

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcoot/kmnx-league/internal/datasource"
	"github.com/mcoot/kmnx-league/internal/dependencies/clock"
	"github.com/mcoot/kmnx-league/internal/dependencies/ids"
	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
	"github.com/mcoot/kmnx-league/internal/services/results"
	"github.com/mcoot/kmnx-league/internal/services/standings"
	"github.com/mcoot/kmnx-league/internal/storage"
)

// DefaultMap is used when a fixture is scheduled without a map
const DefaultMap = "Map X"

// NewMatch is the input for scheduling a fixture
type NewMatch struct {
	TeamA string
	TeamB string
	Date  string
	Time  string
	Map   string
}

// Controller owns the league document: it loads it from storage or the
// data source, applies edits and re-runs the derived views on demand
type Controller struct {
	storage    storage.Storage
	source     datasource.Source
	classifier *classifier.Service
	standings  *standings.Service
	results    *results.Service
	clock      clock.Clock
	ids        ids.Generator
	logger     zerolog.Logger
}

// NewController creates a new league Controller
func NewController(
	storage storage.Storage,
	source datasource.Source,
	classifier *classifier.Service,
	standings *standings.Service,
	results *results.Service,
	clock clock.Clock,
	ids ids.Generator,
	logger zerolog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		source:     source,
		classifier: classifier,
		standings:  standings,
		results:    results,
		clock:      clock,
		ids:        ids,
		logger:     logger.With().Str("component", "league").Logger(),
	}
}

// Now returns the instant the views are computed for
func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Load returns the current league document: the stored copy if there is one,
// otherwise the data source's. Matches without an ID get a derived one.
func (c *Controller) Load(ctx context.Context) (*model.League, error) {
	league, err := c.storage.GetLeague(ctx)
	switch {
	case err == nil:
		c.logger.Debug().Int("matches", len(league.Matches)).Msg("loaded stored league")
	case errors.Is(err, model.ErrNoData):
		league, err = c.loadSource(ctx)
		if err != nil {
			return nil, err
		}
	default:
		// Unreadable state behaves like no state: the source still renders
		c.logger.Warn().Err(err).Msg("stored league unreadable, using data source")
		league, err = c.loadSource(ctx)
		if err != nil {
			return nil, err
		}
	}

	if league.Teams == nil {
		league.Teams = []model.Team{}
	}
	if league.Matches == nil {
		league.Matches = []model.Match{}
	}
	assignMissingIDs(league)
	return league, nil
}

func (c *Controller) loadSource(ctx context.Context) (*model.League, error) {
	if c.source == nil {
		return nil, model.ErrNoData
	}
	league, err := c.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load league data: %w", err)
	}
	return league, nil
}

// assignMissingIDs derives IDs from each fixture's date, time, teams and map.
// Identical fixtures are told apart by their occurrence number.
func assignMissingIDs(league *model.League) {
	used := make(map[model.MatchID]bool, len(league.Matches))
	for _, m := range league.Matches {
		if m.ID != "" {
			used[m.ID] = true
		}
	}

	for i := range league.Matches {
		m := &league.Matches[i]
		if m.ID != "" {
			continue
		}
		parts := []string{m.Date, m.Time, string(m.TeamA), string(m.TeamB), m.Map}
		id := model.MatchID(ids.Derive(parts...))
		for n := 2; used[id]; n++ {
			id = model.MatchID(ids.Derive(append(parts, strconv.Itoa(n))...))
		}
		m.ID = id
		used[id] = true
	}
}

// Leaderboard returns the ranked standings
func (c *Controller) Leaderboard(ctx context.Context) ([]model.StandingsRow, error) {
	league, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.standings.Aggregate(league.Matches, league.TeamNames(), c.clock.Now()), nil
}

// Results returns matches grouped into live, upcoming and ended
func (c *Controller) Results(ctx context.Context) (results.Buckets, error) {
	league, err := c.Load(ctx)
	if err != nil {
		return results.Buckets{}, err
	}
	return c.results.Buckets(league.Matches, c.clock.Now()), nil
}

// Schedule returns every match in start order with its state
func (c *Controller) Schedule(ctx context.Context) ([]results.Entry, error) {
	league, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.results.Schedule(league.Matches, c.clock.Now()), nil
}

// Next returns the next live or upcoming match; ok is false if there is none
func (c *Controller) Next(ctx context.Context) (entry results.Entry, ok bool, err error) {
	league, err := c.Load(ctx)
	if err != nil {
		return results.Entry{}, false, err
	}
	entry, ok = c.results.Next(league.Matches, c.clock.Now())
	return entry, ok, nil
}

// Match looks up a match by ID or unique ID prefix
func (c *Controller) Match(ctx context.Context, ref string) (model.Match, error) {
	league, err := c.Load(ctx)
	if err != nil {
		return model.Match{}, err
	}
	idx, err := league.FindMatch(ref)
	if err != nil {
		return model.Match{}, fmt.Errorf("%q: %w", ref, err)
	}
	return league.Matches[idx], nil
}

// AddTeam adds a team to the roster
func (c *Controller) AddTeam(ctx context.Context, name string) (model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Team{}, model.ErrInvalidTeam
	}

	league, err := c.Load(ctx)
	if err != nil {
		return model.Team{}, err
	}
	if !league.EnsureTeam(model.TeamName(name)) {
		return model.Team{}, fmt.Errorf("%q: %w", name, model.ErrTeamExists)
	}

	if err := c.save(ctx, league); err != nil {
		return model.Team{}, err
	}

	c.logger.Info().Str("team", name).Msg("team added")
	return model.Team{Name: model.TeamName(name)}, nil
}

// ScheduleMatch adds a fixture without a result. Both teams join the roster
// if they are not on it yet.
func (c *Controller) ScheduleMatch(ctx context.Context, in NewMatch) (model.Match, error) {
	m := model.Match{
		Date:  strings.TrimSpace(in.Date),
		Time:  strings.TrimSpace(in.Time),
		Map:   strings.TrimSpace(in.Map),
		TeamA: model.TeamName(strings.TrimSpace(in.TeamA)),
		TeamB: model.TeamName(strings.TrimSpace(in.TeamB)),
	}
	if m.TeamA == "" || m.TeamB == "" || m.Date == "" || m.Time == "" {
		return model.Match{}, model.ErrInvalidMatch
	}
	if _, ok := c.classifier.StartTime(m); !ok {
		return model.Match{}, fmt.Errorf("%w: unreadable date %q or time %q", model.ErrInvalidMatch, m.Date, m.Time)
	}
	if m.Map == "" {
		m.Map = DefaultMap
	}

	league, err := c.Load(ctx)
	if err != nil {
		return model.Match{}, err
	}

	m.ID = model.MatchID(c.ids.NewID())
	league.Matches = append(league.Matches, m)
	league.EnsureTeam(m.TeamA)
	league.EnsureTeam(m.TeamB)

	if err := c.save(ctx, league); err != nil {
		return model.Match{}, err
	}

	c.logger.Info().
		Str("match_id", string(m.ID)).
		Str("team1", string(m.TeamA)).
		Str("team2", string(m.TeamB)).
		Str("date", m.Date).
		Str("time", m.Time).
		Msg("match scheduled")
	return m, nil
}

// RecordScore applies a score update to the referenced match and saves it
func (c *Controller) RecordScore(ctx context.Context, update model.ScoreUpdate) (model.Match, error) {
	league, err := c.Load(ctx)
	if err != nil {
		return model.Match{}, err
	}

	idx, err := league.FindMatch(string(update.MatchID))
	if err != nil {
		return model.Match{}, fmt.Errorf("%q: %w", update.MatchID, err)
	}

	updated := ApplyScoreUpdate(league.Matches[idx], update)
	league.Matches[idx] = updated

	if err := c.save(ctx, league); err != nil {
		return model.Match{}, err
	}

	c.logger.Info().
		Str("match_id", string(updated.ID)).
		Stringer("score1", updated.ScoreA).
		Stringer("score2", updated.ScoreB).
		Stringer("kills1", updated.KillsA).
		Stringer("kills2", updated.KillsB).
		Str("state", string(c.classifier.Classify(updated, c.clock.Now()))).
		Msg("score recorded")
	return updated, nil
}

// Reset discards stored edits so the next load reads the data source again
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.storage.DeleteLeague(ctx); err != nil {
		return fmt.Errorf("failed to reset league: %w", err)
	}
	c.logger.Info().Msg("stored league reset")
	return nil
}

func (c *Controller) save(ctx context.Context, league *model.League) error {
	if err := c.storage.SaveLeague(ctx, league); err != nil {
		c.logger.Error().Err(err).Msg("failed to save league")
		return fmt.Errorf("failed to save league: %w", err)
	}
	return nil
}

// ApplyScoreUpdate returns m with all four result fields replaced by the
// update's values. The match ID and schedule are never changed.
func ApplyScoreUpdate(m model.Match, update model.ScoreUpdate) model.Match {
	m.ScoreA = update.ScoreA
	m.ScoreB = update.ScoreB
	m.KillsA = update.KillsA
	m.KillsB = update.KillsB
	return m
}
