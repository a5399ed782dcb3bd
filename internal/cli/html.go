package cli

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mcoot/kmnx-league/internal/model"
	"github.com/mcoot/kmnx-league/internal/services/results"
)

// HTML fragments use the ids and classes of the league site's pages so they
// can be dropped into its layout
var htmlTemplates = template.Must(template.New("kmnx").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"upper": func(s model.MatchState) string { return strings.ToUpper(string(s)) },
	"label": resultLabel,
}).Parse(`
{{define "leaderboard"}}<table id="leaderboardTable">
  <thead><tr><th>#</th><th>Team</th><th>GP</th><th>W</th><th>L</th><th>K</th><th>PTS</th></tr></thead>
  <tbody>
{{- range $i, $r := .Rows}}
    <tr><td class="rank">{{inc $i}}</td><td class="team">{{$r.Name}}</td><td class="gp">{{$r.GamesPlayed}}</td><td class="w">{{$r.Wins}}</td><td class="l">{{$r.Losses}}</td><td class="kills">{{$r.Kills}}</td><td class="pts">{{$r.Points}}</td></tr>
{{- end}}
  </tbody>
</table>
{{end}}

{{define "teams"}}<div id="teamsGrid">
{{- range .Teams}}
  <div class="card"><div class="team">{{.Name}}</div><div class="small">{{.GamesPlayed}} GP • {{.Wins}} W • {{.Losses}} L • {{.Kills}} K</div></div>
{{- else}}
  <div class="small">No teams yet</div>
{{- end}}
</div>
{{end}}

{{define "card"}}<div class="card" data-match-id="{{.Match.ID}}" data-state="{{.State}}"><div class="teams">{{.Match.TeamA}} vs {{.Match.TeamB}}</div><div class="small">{{.Match.Date}} • {{.Match.Time}} • {{.Match.Map}}</div><div class="result">{{label .}}</div></div>{{end}}

{{define "results"}}<div id="liveList">
{{- range .Live}}
  {{template "card" .}}
{{- else}}
  <div class="small">No live matches right now</div>
{{- end}}
</div>
<div id="upcomingList">
{{- range .Upcoming}}
  {{template "card" .}}
{{- else}}
  <div class="small">No upcoming matches</div>
{{- end}}
</div>
<div id="endedList">
{{- range .Ended}}
  {{template "card" .}}
{{- else}}
  <div class="small">No ended matches yet</div>
{{- end}}
</div>
{{end}}

{{define "schedule"}}<div id="scheduleList">
{{- range .Matches}}
  <div class="card" data-match-id="{{.Match.ID}}" data-state="{{.State}}"><div class="fixture">{{.Match.Date}} {{.Match.Time}} - {{.Match.TeamA}} vs {{.Match.TeamB}}</div><div class="small">{{.Match.Map}} • {{upper .State}}</div>{{if eq .State "ended"}}<div class="small score">{{.Match.ScoreA}} : {{.Match.ScoreB}}</div>{{end}}</div>
{{- else}}
  <div class="small">No scheduled matches</div>
{{- end}}
</div>
{{end}}

{{define "next"}}<div id="homeNextMatch">{{with .Next}}{{.Match.TeamA}} vs {{.Match.TeamB}} - {{.Match.Map}} ({{.Match.Date}} • {{.Match.Time}}){{else}}No scheduled matches{{end}}</div>
<div id="homeCountdown">{{.Countdown}}</div>
{{end}}

{{define "match"}}<div class="card" data-match-id="{{.Match.ID}}" data-state="{{.State}}"><div class="teams">{{.Match.TeamA}} vs {{.Match.TeamB}}</div><div class="small">{{.Match.Date}} • {{.Match.Time}} • {{.Match.Map}}</div><div class="small">{{.State}}</div></div>
{{end}}

{{define "team"}}<div class="card"><div class="team">{{.Team.Name}}</div></div>
{{end}}
`))

func (o *Output) printHTML(data any) error {
	var name string
	var value any = data

	switch v := data.(type) {
	case LeaderboardView:
		name = "leaderboard"
	case TeamsView:
		name = "teams"
	case ResultsView:
		name = "results"
		value = v.Buckets
	case ScheduleView:
		name = "schedule"
	case NextView:
		name = "next"
	case MatchView:
		name = "match"
	case TeamView:
		name = "team"
	case results.Entry:
		name = "card"
	default:
		return fmt.Errorf("no html view for %T", data)
	}

	return htmlTemplates.ExecuteTemplate(o.w, name, value)
}
