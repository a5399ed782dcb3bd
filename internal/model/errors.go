package model

import "errors"

// Common errors used across the application
var (
	// State errors
	ErrNoData = errors.New("no league data stored")

	// Match errors
	ErrMatchNotFound  = errors.New("match not found")
	ErrAmbiguousMatch = errors.New("match reference is ambiguous")
	ErrInvalidMatch   = errors.New("team1, team2, date and time are required")

	// Team errors
	ErrInvalidTeam = errors.New("team name is required")
	ErrTeamExists  = errors.New("team already exists")
)
