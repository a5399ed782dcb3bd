package model

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// looseString decodes any JSON scalar as text. Objects, arrays and null
// decode as empty.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	*s = ""

	switch {
	case len(raw) == 0 || raw[0] == '{' || raw[0] == '[' || string(raw) == "null":
		return nil
	case raw[0] == '"':
		text, err := strconv.Unquote(string(raw))
		if err != nil {
			return nil
		}
		*s = looseString(text)
	default:
		*s = looseString(raw)
	}
	return nil
}

// UnmarshalJSON decodes a team record. A name of the wrong type is kept as
// its text.
func (t *Team) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name looseString `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Team{Name: TeamName(raw.Name)}
	return nil
}

// UnmarshalJSON decodes a match record field by field, so one badly typed
// field never rejects the record
func (m *Match) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     looseString `json:"id"`
		Date   looseString `json:"date"`
		Time   looseString `json:"time"`
		Map    looseString `json:"map"`
		TeamA  looseString `json:"team1"`
		TeamB  looseString `json:"team2"`
		ScoreA OptionalInt `json:"score1"`
		ScoreB OptionalInt `json:"score2"`
		KillsA OptionalInt `json:"kills1"`
		KillsB OptionalInt `json:"kills2"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Match{
		ID:     MatchID(raw.ID),
		Date:   string(raw.Date),
		Time:   string(raw.Time),
		Map:    string(raw.Map),
		TeamA:  TeamName(raw.TeamA),
		TeamB:  TeamName(raw.TeamB),
		ScoreA: raw.ScoreA,
		ScoreB: raw.ScoreB,
		KillsA: raw.KillsA,
		KillsB: raw.KillsB,
	}
	return nil
}

// UnmarshalJSON decodes the document record by record. Records that are not
// objects are dropped and the rest are kept; a list that is not an array
// decodes as empty.
func (l *League) UnmarshalJSON(data []byte) error {
	var raw struct {
		Teams   json.RawMessage `json:"teams"`
		Matches json.RawMessage `json:"matches"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	league := League{Teams: []Team{}, Matches: []Match{}}
	for _, rec := range records(raw.Teams) {
		var t Team
		if json.Unmarshal(rec, &t) == nil {
			league.Teams = append(league.Teams, t)
		}
	}
	for _, rec := range records(raw.Matches) {
		var m Match
		if json.Unmarshal(rec, &m) == nil {
			league.Matches = append(league.Matches, m)
		}
	}

	*l = league
	return nil
}

// records splits a JSON array into its object elements
func records(data json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		return nil
	}
	objects := items[:0]
	for _, item := range items {
		if trimmed := bytes.TrimSpace(item); len(trimmed) > 0 && trimmed[0] == '{' {
			objects = append(objects, item)
		}
	}
	return objects
}
