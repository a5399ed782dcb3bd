package model

// TeamName identifies a team (case-sensitive)
type TeamName string

// Team is a roster entry
type Team struct {
	Name TeamName `json:"name"`
}

// StandingsRow is the derived per-team summary shown on the leaderboard
type StandingsRow struct {
	Name        TeamName `json:"name"`
	GamesPlayed int      `json:"gamesPlayed"`
	Wins        int      `json:"wins"`
	Losses      int      `json:"losses"`
	Points      int      `json:"points"`
	Kills       int      `json:"kills"`
}
