package results

import (
	"fmt"
	"sort"
	"time"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
)

// LiveLabel is shown instead of a countdown once a match has started
const LiveLabel = "LIVE"

// Entry is a match with its state and scheduled start at one instant
type Entry struct {
	Match model.Match      `json:"match"`
	State model.MatchState `json:"state"`
	// Start is zero when the match has no usable date or time
	Start time.Time `json:"start"`
}

// Scheduled returns true if the match has a usable start time
func (e Entry) Scheduled() bool {
	return !e.Start.IsZero()
}

// Buckets splits matches by state, each list in start order
type Buckets struct {
	Live     []Entry `json:"live"`
	Upcoming []Entry `json:"upcoming"`
	Ended    []Entry `json:"ended"`
}

// Service builds the schedule and results views
type Service struct {
	classifier *classifier.Service
}

// New creates a new results service
func New(classifier *classifier.Service) *Service {
	return &Service{
		classifier: classifier,
	}
}

// Schedule returns every match in start order with its state.
// Matches without a start time sort last, in input order.
func (s *Service) Schedule(matches []model.Match, now time.Time) []Entry {
	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		start, _ := s.classifier.StartTime(m)
		entries = append(entries, Entry{
			Match: m,
			State: s.classifier.Classify(m, now),
			Start: start,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Scheduled() != b.Scheduled() {
			return a.Scheduled()
		}
		return a.Start.Before(b.Start)
	})

	return entries
}

// Buckets groups the schedule into live, upcoming and ended lists
func (s *Service) Buckets(matches []model.Match, now time.Time) Buckets {
	b := Buckets{
		Live:     []Entry{},
		Upcoming: []Entry{},
		Ended:    []Entry{},
	}
	for _, e := range s.Schedule(matches, now) {
		switch e.State {
		case model.MatchStateLive:
			b.Live = append(b.Live, e)
		case model.MatchStateEnded:
			b.Ended = append(b.Ended, e)
		default:
			b.Upcoming = append(b.Upcoming, e)
		}
	}
	return b
}

// Next returns the first live or upcoming match in start order
func (s *Service) Next(matches []model.Match, now time.Time) (Entry, bool) {
	for _, e := range s.Schedule(matches, now) {
		if e.State != model.MatchStateEnded {
			return e, true
		}
	}
	return Entry{}, false
}

// Countdown formats the time left until start as "<d>d HH:MM:SS",
// or LiveLabel once start has passed
func Countdown(start, now time.Time) string {
	diff := start.Sub(now)
	if diff <= 0 {
		return LiveLabel
	}

	total := int64(diff / time.Second)
	days := total / 86400
	hours := total / 3600 % 24
	minutes := total / 60 % 60
	seconds := total % 60
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
}
