package model

// MatchID uniquely identifies a match within a league document
type MatchID string

// MatchState is the display bucket of a match at a given instant
type MatchState string

const (
	MatchStateEnded    MatchState = "ended"    // Both scores recorded
	MatchStateLive     MatchState = "live"     // Inside its scheduled window, no result yet
	MatchStateUpcoming MatchState = "upcoming" // Not started, or overdue without a result
)

// Match is one fixture between two teams.
// JSON keys follow the site's data.json (team1/score1/kills1, ...).
type Match struct {
	ID   MatchID `json:"id,omitempty"`
	Date string  `json:"date"` // YYYY-MM-DD, league-local
	Time string  `json:"time"` // HH:MM, league-local
	Map  string  `json:"map"`

	TeamA TeamName `json:"team1"`
	TeamB TeamName `json:"team2"`

	ScoreA OptionalInt `json:"score1"`
	ScoreB OptionalInt `json:"score2"`
	KillsA OptionalInt `json:"kills1"`
	KillsB OptionalInt `json:"kills2"`
}

// HasResult returns true if both final scores are recorded
func (m Match) HasResult() bool {
	return m.ScoreA.Valid() && m.ScoreB.Valid()
}

// ScoreUpdate is a structured result entry for one match.
// All four fields replace the stored values; absent clears them.
type ScoreUpdate struct {
	MatchID MatchID     `json:"matchId"`
	ScoreA  OptionalInt `json:"score1"`
	ScoreB  OptionalInt `json:"score2"`
	KillsA  OptionalInt `json:"kills1"`
	KillsB  OptionalInt `json:"kills2"`
}
