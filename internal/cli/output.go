package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/results"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// shortIDLen is how much of a match ID text output shows; any unique
// prefix is accepted back by the score command
const shortIDLen = 8

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// ValidFormat reports whether format is a known output format
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatHTML:
		return true
	}
	return false
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	switch o.format {
	case FormatJSON:
		return o.printJSON(data)
	case FormatHTML:
		return o.printHTML(data)
	default:
		return o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == FormatJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// View types rendered by the commands

// LeaderboardView is the ranked standings table
type LeaderboardView struct {
	Leader model.TeamName       `json:"leader,omitempty"`
	Rows   []model.StandingsRow `json:"rows"`
}

// TeamsView is the team cards grid
type TeamsView struct {
	Teams []model.StandingsRow `json:"teams"`
}

// ResultsView is the live / upcoming / ended lists
type ResultsView struct {
	results.Buckets
}

// ScheduleView is every fixture in start order
type ScheduleView struct {
	Matches []results.Entry `json:"matches"`
}

// NextView is the home page's next match card
type NextView struct {
	Next      *results.Entry `json:"next"`
	Countdown string         `json:"countdown"`
}

// MatchView is a single match after an edit
type MatchView struct {
	Match model.Match      `json:"match"`
	State model.MatchState `json:"state"`
}

// TeamView is a single roster entry after an edit
type TeamView struct {
	Team model.Team `json:"team"`
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case LeaderboardView:
		return o.printLeaderboard(v)
	case TeamsView:
		o.printTeams(v)
	case ResultsView:
		o.printResults(v)
	case ScheduleView:
		return o.printSchedule(v)
	case NextView:
		o.printNext(v)
	case MatchView:
		o.printMatch(v)
	case TeamView:
		fmt.Fprintf(o.w, "Team: %s\n", v.Team.Name)
	default:
		// Fallback to JSON for unknown types
		return o.printJSON(data)
	}
	return nil
}

func shortID(id model.MatchID) string {
	if len(id) <= shortIDLen {
		return string(id)
	}
	return string(id[:shortIDLen])
}

func (o *Output) printLeaderboard(v LeaderboardView) error {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTEAM\tGP\tW\tL\tK\tPTS")
	for i, r := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\n", i+1, r.Name, r.GamesPlayed, r.Wins, r.Losses, r.Kills, r.Points)
	}
	return tw.Flush()
}

func (o *Output) printTeams(v TeamsView) {
	if len(v.Teams) == 0 {
		fmt.Fprintln(o.w, "No teams yet")
		return
	}
	for _, t := range v.Teams {
		fmt.Fprintf(o.w, "%s\n  %d GP • %d W • %d L • %d K\n", t.Name, t.GamesPlayed, t.Wins, t.Losses, t.Kills)
	}
}

func (o *Output) printResults(v ResultsView) {
	sections := []struct {
		title   string
		entries []results.Entry
		empty   string
	}{
		{"Live", v.Live, "No live matches right now"},
		{"Upcoming", v.Upcoming, "No upcoming matches"},
		{"Ended", v.Ended, "No ended matches yet"},
	}

	for i, sec := range sections {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		fmt.Fprintf(o.w, "%s:\n", sec.title)
		if len(sec.entries) == 0 {
			fmt.Fprintf(o.w, "  %s\n", sec.empty)
			continue
		}
		for _, e := range sec.entries {
			m := e.Match
			fmt.Fprintf(o.w, "  [%s] %s vs %s  %s • %s • %s  %s\n",
				shortID(m.ID), m.TeamA, m.TeamB, m.Date, m.Time, m.Map, resultLabel(e))
		}
	}
}

// resultLabel is the right-hand side of a results card
func resultLabel(e results.Entry) string {
	switch e.State {
	case model.MatchStateEnded:
		return fmt.Sprintf("%s : %s (%d K • %d K)",
			e.Match.ScoreA, e.Match.ScoreB, e.Match.KillsA.Or(0), e.Match.KillsB.Or(0))
	case model.MatchStateLive:
		return results.LiveLabel
	default:
		return "Upcoming"
	}
}

func (o *Output) printSchedule(v ScheduleView) error {
	if len(v.Matches) == 0 {
		fmt.Fprintln(o.w, "No scheduled matches")
		return nil
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tMATCH\tMAP\tSTATE\tSCORE")
	for _, e := range v.Matches {
		m := e.Match
		score := ""
		if e.State == model.MatchStateEnded {
			score = m.ScoreA.String() + " : " + m.ScoreB.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s vs %s\t%s\t%s\t%s\n",
			shortID(m.ID), m.Date, m.Time, m.TeamA, m.TeamB, m.Map, strings.ToUpper(string(e.State)), score)
	}
	return tw.Flush()
}

func (o *Output) printNext(v NextView) {
	if v.Next == nil {
		fmt.Fprintln(o.w, "No scheduled matches")
		fmt.Fprintln(o.w, v.Countdown)
		return
	}
	m := v.Next.Match
	fmt.Fprintf(o.w, "%s vs %s - %s (%s • %s)\n", m.TeamA, m.TeamB, m.Map, m.Date, m.Time)
	fmt.Fprintln(o.w, v.Countdown)
}

func (o *Output) printMatch(v MatchView) {
	m := v.Match
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "%s vs %s - %s • %s • %s\n", m.TeamA, m.TeamB, m.Date, m.Time, m.Map)
	fmt.Fprintf(o.w, "State: %s\n", v.State)
	if m.ScoreA.Valid() || m.ScoreB.Valid() {
		fmt.Fprintf(o.w, "Score: %s : %s\n", orDash(m.ScoreA), orDash(m.ScoreB))
	}
	if m.KillsA.Valid() || m.KillsB.Valid() {
		fmt.Fprintf(o.w, "Kills: %s : %s\n", orDash(m.KillsA), orDash(m.KillsB))
	}
}

func orDash(v model.OptionalInt) string {
	if !v.Valid() {
		return "-"
	}
	return v.String()
}
