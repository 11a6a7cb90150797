package render

import (
	"html/template"

	"github.com/ffl-tools/trophyline/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"phaseLabel":  phaseLabel,
	"formatValue": formatValue,
	"formatScore": formatScore,
	"pairs":       contextPairs,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{phaseLabel .Phase}} - Week {{.Week}}</title></head>
<body>
<h1>{{phaseLabel .Phase}} - Week {{.Week}}</h1>
{{if .SeasonChallenges}}
<h2>Season Challenges</h2>
<table border="1">
<tr><th>Challenge</th><th>Winner</th><th>Value</th><th>Details</th></tr>
{{range .SeasonChallenges}}<tr><td>{{.Name}}</td><td>{{.Winner}}</td><td>{{formatValue .Value}}</td><td>{{range pairs .Context}}{{.}} {{end}}</td></tr>
{{end}}</table>
{{end}}
{{if .WeeklyChallenges}}
<h2>Week {{(index .WeeklyChallenges 0).Week}} Challenges</h2>
<table border="1">
<tr><th>Type</th><th>Challenge</th><th>Winner</th><th>Value</th></tr>
{{range .WeeklyChallenges}}<tr><td>{{.Type}}</td><td>{{.Name}}</td><td>{{.Winner}}</td><td>{{formatValue .Value}}</td></tr>
{{end}}</table>
{{end}}
{{range .Brackets}}
<h2>{{.Division}} Bracket</h2>
<ul>
{{range .Matchups}}<li>({{.HomeSeed}}) {{.HomeTeam}} {{formatScore .HomeScore}} vs ({{.AwaySeed}}) {{.AwayTeam}} {{formatScore .AwayScore}}{{if .Decided}} - winner {{.Winner}}{{end}}</li>
{{end}}</ul>
{{end}}
{{if .Leaderboard}}
<h2>Championship Leaderboard</h2>
<table border="1">
<tr><th>Rank</th><th>Team</th><th>Division</th><th>Score</th><th>Projected</th></tr>
{{range .Leaderboard.Entries}}<tr><td>{{.Rank}}</td><td>{{.Team}}</td><td>{{.Division}}</td><td>{{formatValue .Score}}</td><td>{{formatValue .ProjectedScore}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

// HTMLRenderer writes the report as a standalone HTML document.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Format() string { return FormatHTML }

func (r *HTMLRenderer) Render(report usecase.Report) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := htmlTemplate.Execute(buf, report); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
