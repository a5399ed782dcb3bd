package league

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mcoot/kmnx-league/internal/datasource"
	"github.com/mcoot/kmnx-league/internal/dependencies/ids"
	"github.com/mcoot/kmnx-league/internal/dependencies/mocks"
	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
	"github.com/mcoot/kmnx-league/internal/services/results"
	"github.com/mcoot/kmnx-league/internal/services/standings"
	"github.com/mcoot/kmnx-league/internal/storage/memory"
	"github.com/mcoot/kmnx-league/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	ids        *mocks.MockIDs
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	// Ten minutes into the embedded TEST Clan 3 vs TEST Clan 4 fixture
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 12, 20, 10, 0, 0, classifier.DefaultLocation))
	s.ids = mocks.NewMockIDs()
	s.controller = s.newController(datasource.EmbeddedSource{})
	s.ctx = context.Background()
}

func (s *ControllerSuite) newController(source datasource.Source) *Controller {
	cls := classifier.New(classifier.DefaultConfig())
	return NewController(
		s.storage,
		source,
		cls,
		standings.New(cls),
		results.New(cls),
		s.clock,
		s.ids,
		testutil.NopLogger(),
	)
}

type staticSource struct {
	league *model.League
	err    error
}

func (f *staticSource) Name() string { return "static" }

func (f *staticSource) Load(context.Context) (*model.League, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.league.Clone(), nil
}

// Load tests

func (s *ControllerSuite) TestLoadFallsBackToSource() {
	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)

	s.Len(league.Teams, 4)
	s.Len(league.Matches, 2)
}

func (s *ControllerSuite) TestLoadPrefersStoredState() {
	stored := &model.League{Teams: []model.Team{{Name: "Stored"}}, Matches: []model.Match{}}
	s.Require().NoError(s.storage.SaveLeague(s.ctx, stored))

	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.TeamName{"Stored"}, league.TeamNames())
}

func (s *ControllerSuite) TestLoadAssignsStableIDs() {
	first, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	second, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)

	for i := range first.Matches {
		s.NotEmpty(first.Matches[i].ID)
		s.Equal(first.Matches[i].ID, second.Matches[i].ID)
	}
	s.NotEqual(first.Matches[0].ID, first.Matches[1].ID)
	s.Zero(s.ids.Issued())
}

func (s *ControllerSuite) TestLoadSeparatesIdenticalFixtures() {
	m := model.Match{Date: "2025-10-19", Time: "20:00", Map: "Map X", TeamA: "A", TeamB: "B"}
	source := &staticSource{league: &model.League{Matches: []model.Match{m, m}}}

	league, err := s.newController(source).Load(s.ctx)
	s.Require().NoError(err)

	s.NotEqual(league.Matches[0].ID, league.Matches[1].ID)
	s.NotNil(league.Teams)
}

func (s *ControllerSuite) TestLoadKeepsExistingIDs() {
	source := &staticSource{league: &model.League{Matches: []model.Match{{ID: "given", TeamA: "A", TeamB: "B"}}}}

	league, err := s.newController(source).Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.MatchID("given"), league.Matches[0].ID)
}

func (s *ControllerSuite) TestLoadSourceFailure() {
	source := &staticSource{err: errors.New("offline")}

	_, err := s.newController(source).Load(s.ctx)
	s.Error(err)
}

func (s *ControllerSuite) TestLoadWithoutSource() {
	_, err := s.newController(nil).Load(s.ctx)
	s.ErrorIs(err, model.ErrNoData)
}

// View tests

func (s *ControllerSuite) TestLeaderboard() {
	rows, err := s.controller.Leaderboard(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(rows, 4)
	s.Equal(model.StandingsRow{Name: "TEST Clan 1", GamesPlayed: 1, Wins: 1, Points: 3, Kills: 52}, rows[0])
	s.Equal(model.StandingsRow{Name: "TEST Clan 2", GamesPlayed: 1, Losses: 1, Kills: 48}, rows[1])
	s.Equal(model.TeamName("TEST Clan 3"), rows[2].Name)
	s.Equal(model.TeamName("TEST Clan 4"), rows[3].Name)
}

func (s *ControllerSuite) TestResults() {
	buckets, err := s.controller.Results(s.ctx)
	s.Require().NoError(err)

	s.Len(buckets.Live, 1)
	s.Len(buckets.Ended, 1)
	s.Empty(buckets.Upcoming)
	s.Equal(model.TeamName("TEST Clan 3"), buckets.Live[0].Match.TeamA)
}

func (s *ControllerSuite) TestResultsFollowClock() {
	s.clock.Advance(time.Hour)

	buckets, err := s.controller.Results(s.ctx)
	s.Require().NoError(err)

	s.Empty(buckets.Live)
	s.Len(buckets.Upcoming, 1)
}

func (s *ControllerSuite) TestSchedule() {
	entries, err := s.controller.Schedule(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(entries, 2)
	s.Equal(model.MatchStateEnded, entries[0].State)
	s.Equal(model.MatchStateLive, entries[1].State)
}

func (s *ControllerSuite) TestNext() {
	entry, ok, err := s.controller.Next(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(model.MatchStateLive, entry.State)
}

func (s *ControllerSuite) TestMatchByPrefix() {
	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	id := league.Matches[1].ID

	m, err := s.controller.Match(s.ctx, string(id)[:8])
	s.Require().NoError(err)
	s.Equal(id, m.ID)

	_, err = s.controller.Match(s.ctx, "zzz")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// AddTeam tests

func (s *ControllerSuite) TestAddTeam() {
	team, err := s.controller.AddTeam(s.ctx, "  New Clan ")
	s.Require().NoError(err)
	s.Equal(model.TeamName("New Clan"), team.Name)

	rows, err := s.controller.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Len(rows, 5)

	stored, err := s.storage.GetLeague(s.ctx)
	s.Require().NoError(err)
	s.True(stored.HasTeam("New Clan"))
}

func (s *ControllerSuite) TestAddTeamRequiresName() {
	_, err := s.controller.AddTeam(s.ctx, "   ")
	s.ErrorIs(err, model.ErrInvalidTeam)
}

func (s *ControllerSuite) TestAddTeamDuplicate() {
	_, err := s.controller.AddTeam(s.ctx, "TEST Clan 1")
	s.ErrorIs(err, model.ErrTeamExists)

	_, err = s.storage.GetLeague(s.ctx)
	s.ErrorIs(err, model.ErrNoData)
}

// ScheduleMatch tests

func (s *ControllerSuite) TestScheduleMatch() {
	s.ids.Queue("new-match")

	m, err := s.controller.ScheduleMatch(s.ctx, NewMatch{
		TeamA: "TEST Clan 1",
		TeamB: "Newcomers",
		Date:  "2025-10-19",
		Time:  "20:00",
	})
	s.Require().NoError(err)

	s.Equal(model.MatchID("new-match"), m.ID)
	s.Equal(DefaultMap, m.Map)
	s.False(m.ScoreA.Valid())

	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(league.Matches, 3)
	s.True(league.HasTeam("Newcomers"))
	s.Len(league.Teams, 5)

	entry, ok, err := s.controller.Next(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	// The live fixture still comes first
	s.Equal(model.MatchStateLive, entry.State)
}

func (s *ControllerSuite) TestScheduleMatchRequiresFields() {
	tests := []NewMatch{
		{TeamB: "B", Date: "2025-10-19", Time: "20:00"},
		{TeamA: "A", Date: "2025-10-19", Time: "20:00"},
		{TeamA: "A", TeamB: "B", Time: "20:00"},
		{TeamA: "A", TeamB: "B", Date: "2025-10-19", Time: " "},
	}
	for _, in := range tests {
		_, err := s.controller.ScheduleMatch(s.ctx, in)
		s.ErrorIs(err, model.ErrInvalidMatch)
	}
}

func (s *ControllerSuite) TestScheduleMatchRejectsUnreadableDate() {
	_, err := s.controller.ScheduleMatch(s.ctx, NewMatch{TeamA: "A", TeamB: "B", Date: "19.10.2025", Time: "20:00"})
	s.ErrorIs(err, model.ErrInvalidMatch)

	_, err = s.controller.ScheduleMatch(s.ctx, NewMatch{TeamA: "A", TeamB: "B", Date: "2025-10-19", Time: "8pm"})
	s.ErrorIs(err, model.ErrInvalidMatch)
}

// RecordScore tests

func (s *ControllerSuite) TestRecordScoreEndsMatch() {
	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	live := league.Matches[1]

	updated, err := s.controller.RecordScore(s.ctx, model.ScoreUpdate{
		MatchID: live.ID,
		ScoreA:  model.Int(1),
		ScoreB:  model.Int(2),
		KillsA:  model.Int(30),
		KillsB:  model.Int(35),
	})
	s.Require().NoError(err)
	s.Equal(live.ID, updated.ID)
	s.True(updated.HasResult())

	rows, err := s.controller.Leaderboard(s.ctx)
	s.Require().NoError(err)
	// Both winners have 3 points; kills decide
	s.Equal(model.TeamName("TEST Clan 1"), rows[0].Name)
	s.Equal(model.StandingsRow{Name: "TEST Clan 4", GamesPlayed: 1, Wins: 1, Points: 3, Kills: 35}, rows[1])
	s.Equal(model.TeamName("TEST Clan 2"), rows[2].Name)
	s.Equal(model.StandingsRow{Name: "TEST Clan 3", GamesPlayed: 1, Losses: 1, Kills: 30}, rows[3])
}

func (s *ControllerSuite) TestRecordScoreClearsResult() {
	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	ended := league.Matches[0]

	updated, err := s.controller.RecordScore(s.ctx, model.ScoreUpdate{MatchID: ended.ID})
	s.Require().NoError(err)
	s.False(updated.HasResult())

	rows, err := s.controller.Leaderboard(s.ctx)
	s.Require().NoError(err)
	for _, r := range rows {
		s.Zero(r.GamesPlayed)
	}
}

func (s *ControllerSuite) TestRecordScoreUnknownMatch() {
	_, err := s.controller.RecordScore(s.ctx, model.ScoreUpdate{MatchID: "missing", ScoreA: model.Int(1)})
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Reset tests

func (s *ControllerSuite) TestResetRestoresSource() {
	_, err := s.controller.AddTeam(s.ctx, "Temporary")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Reset(s.ctx))

	league, err := s.controller.Load(s.ctx)
	s.Require().NoError(err)
	s.False(league.HasTeam("Temporary"))
}

func TestApplyScoreUpdate(t *testing.T) {
	m := model.Match{
		ID:     "m-1",
		Date:   "2025-10-12",
		Time:   "20:00",
		TeamA:  "A",
		TeamB:  "B",
		ScoreA: model.Int(1),
		KillsA: model.Int(9),
	}

	got := ApplyScoreUpdate(m, model.ScoreUpdate{
		MatchID: "other",
		ScoreA:  model.Int(3),
		ScoreB:  model.Int(0),
		KillsB:  model.Int(4),
	})

	assert.Equal(t, model.MatchID("m-1"), got.ID)
	assert.Equal(t, "2025-10-12", got.Date)
	assert.Equal(t, 3, got.ScoreA.Value())
	assert.Equal(t, 0, got.ScoreB.Value())
	assert.True(t, got.ScoreB.Valid())
	assert.False(t, got.KillsA.Valid())
	assert.Equal(t, 4, got.KillsB.Value())
	// Input is untouched
	assert.Equal(t, 1, m.ScoreA.Value())
	assert.Equal(t, 9, m.KillsA.Value())
}

func TestDerivedIDsMatchGenerator(t *testing.T) {
	league := &model.League{Matches: []model.Match{{Date: "d", Time: "t", Map: "m", TeamA: "A", TeamB: "B"}}}

	assignMissingIDs(league)

	assert.Equal(t, model.MatchID(ids.Derive("d", "t", "A", "B", "m")), league.Matches[0].ID)
}
