package model

import "strings"

// League is the whole data document: roster plus fixtures.
// It has the same shape as the site's data.json.
type League struct {
	Teams   []Team  `json:"teams"`
	Matches []Match `json:"matches"`
}

// Clone returns a deep copy
func (l *League) Clone() *League {
	if l == nil {
		return nil
	}
	clone := &League{
		Teams:   make([]Team, len(l.Teams)),
		Matches: make([]Match, len(l.Matches)),
	}
	copy(clone.Teams, l.Teams)
	copy(clone.Matches, l.Matches)
	return clone
}

// TeamNames returns roster names in roster order
func (l *League) TeamNames() []TeamName {
	names := make([]TeamName, 0, len(l.Teams))
	for _, t := range l.Teams {
		names = append(names, t.Name)
	}
	return names
}

// HasTeam returns true if the roster contains the name
func (l *League) HasTeam(name TeamName) bool {
	for _, t := range l.Teams {
		if t.Name == name {
			return true
		}
	}
	return false
}

// EnsureTeam adds the name to the roster if missing.
// Returns true if the roster changed.
func (l *League) EnsureTeam(name TeamName) bool {
	if l.HasTeam(name) {
		return false
	}
	l.Teams = append(l.Teams, Team{Name: name})
	return true
}

// FindMatch returns the index of the match whose ID equals ref, or failing
// that the only match whose ID starts with ref
func (l *League) FindMatch(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, ErrMatchNotFound
	}

	for i, m := range l.Matches {
		if string(m.ID) == ref {
			return i, nil
		}
	}

	found := -1
	for i, m := range l.Matches {
		if strings.HasPrefix(string(m.ID), ref) {
			if found >= 0 {
				return -1, ErrAmbiguousMatch
			}
			found = i
		}
	}
	if found < 0 {
		return -1, ErrMatchNotFound
	}
	return found, nil
}
