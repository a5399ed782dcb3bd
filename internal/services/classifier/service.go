package classifier

import (
	"strings"
	"time"

	"github.com/mcoot/kmnx-league/internal/model"
)

// DefaultDuration is how long a match is considered live after kick-off
const DefaultDuration = 45 * time.Minute

const dateLayout = "2006-01-02"

// clockLayouts are tried in order when reading a match's local start time
var clockLayouts = []string{"15:04", "15:04:05"}

// DefaultLocation is the league's historical fixed offset (CEST)
var DefaultLocation = time.FixedZone("UTC+02:00", 2*60*60)

// Config holds the league-wide timing rules
type Config struct {
	// Duration is the live window after the scheduled start (default 45m)
	Duration time.Duration
	// Location interprets match dates and times (default UTC+02:00)
	Location *time.Location
}

// DefaultConfig returns the timing rules the league has always used
func DefaultConfig() Config {
	return Config{
		Duration: DefaultDuration,
		Location: DefaultLocation,
	}
}

// Service decides whether a match is ended, live or upcoming
type Service struct {
	duration time.Duration
	location *time.Location
}

// New creates a new classifier. Zero values in cfg fall back to defaults.
func New(cfg Config) *Service {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Location == nil {
		cfg.Location = DefaultLocation
	}
	return &Service{
		duration: cfg.Duration,
		location: cfg.Location,
	}
}

// Classify returns the state of m at now. It never fails: a match without a
// usable date or time is upcoming.
func (s *Service) Classify(m model.Match, now time.Time) model.MatchState {
	if m.HasResult() {
		return model.MatchStateEnded
	}

	start, end, ok := s.Window(m)
	if !ok {
		return model.MatchStateUpcoming
	}
	if !now.Before(start) && !now.After(end) {
		return model.MatchStateLive
	}

	// Before kick-off, or overdue with no result: keep it visible as upcoming
	return model.MatchStateUpcoming
}

// Window returns the scheduled live window of m
func (s *Service) Window(m model.Match) (start, end time.Time, ok bool) {
	start, ok = s.StartTime(m)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, start.Add(s.duration), true
}

// StartTime combines the match's date and time in the league location
func (s *Service) StartTime(m model.Match) (time.Time, bool) {
	date := strings.TrimSpace(m.Date)
	clock := strings.TrimSpace(m.Time)
	if date == "" || clock == "" {
		return time.Time{}, false
	}

	day, err := time.ParseInLocation(dateLayout, date, s.location)
	if err != nil {
		return time.Time{}, false
	}

	for _, layout := range clockLayouts {
		tod, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			tod.Hour(), tod.Minute(), tod.Second(), 0, s.location), true
	}
	return time.Time{}, false
}

// Location returns the league location
func (s *Service) Location() *time.Location {
	return s.location
}
