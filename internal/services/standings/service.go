package standings

import (
	"sort"
	"time"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
)

// PointsPerWin is awarded to the strict winner of an ended match
const PointsPerWin = 3

// Service folds match results into a ranked table
type Service struct {
	classifier *classifier.Service
}

// New creates a new standings service
func New(classifier *classifier.Service) *Service {
	return &Service{
		classifier: classifier,
	}
}

// Aggregate builds one row per team and ranks them by points, then kills.
// Rows for equal points and kills keep the order in which their team first
// appeared (known names first, then match order).
func (s *Service) Aggregate(matches []model.Match, known []model.TeamName, now time.Time) []model.StandingsRow {
	rows := make([]model.StandingsRow, 0, len(known))
	index := make(map[model.TeamName]int, len(known))

	row := func(name model.TeamName) *model.StandingsRow {
		i, ok := index[name]
		if !ok {
			i = len(rows)
			index[name] = i
			rows = append(rows, model.StandingsRow{Name: name})
		}
		return &rows[i]
	}

	for _, name := range known {
		row(name)
	}

	for _, m := range matches {
		// Register both teams before taking pointers: append may reallocate
		row(m.TeamA)
		row(m.TeamB)

		if s.classifier.Classify(m, now) != model.MatchStateEnded {
			continue
		}

		a, b := row(m.TeamA), row(m.TeamB)
		scoreA, scoreB := m.ScoreA.Value(), m.ScoreB.Value()

		a.GamesPlayed++
		b.GamesPlayed++

		switch {
		case scoreA > scoreB:
			a.Wins++
			a.Points += PointsPerWin
			b.Losses++
		case scoreB > scoreA:
			b.Wins++
			b.Points += PointsPerWin
			a.Losses++
		}

		a.Kills += m.KillsA.Or(0)
		b.Kills += m.KillsB.Or(0)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Kills > rows[j].Kills
	})

	return rows
}

// Leader returns the name of the top row, or "" when first place is shared
// or there are no rows
func Leader(rows []model.StandingsRow) model.TeamName {
	if len(rows) == 0 {
		return ""
	}
	if len(rows) > 1 && rows[1].Points == rows[0].Points && rows[1].Kills == rows[0].Kills {
		return ""
	}
	return rows[0].Name
}
