package render

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/ffl-tools/trophyline/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// CSVRenderer writes one row per challenge, bracket matchup, and
// leaderboard entry, for spreadsheet import.
type CSVRenderer struct{}

func (r *CSVRenderer) Format() string { return FormatCSV }

func (r *CSVRenderer) Render(report usecase.Report) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write([]string{"section", "name", "winner", "value", "week", "details"}); err != nil {
		return nil, err
	}

	week := strconv.Itoa(report.Week)
	for _, c := range report.SeasonChallenges {
		if err := w.Write([]string{"season", c.Name, c.Winner, formatValue(c.Value), week, strings.Join(contextPairs(c.Context), " ")}); err != nil {
			return nil, err
		}
	}
	for _, c := range report.WeeklyChallenges {
		if err := w.Write([]string{"weekly_" + c.Type, c.Name, c.Winner, formatValue(c.Value), strconv.Itoa(c.Week), strings.Join(contextPairs(c.Context), " ")}); err != nil {
			return nil, err
		}
	}
	for _, bracket := range report.Brackets {
		for _, m := range bracket.Matchups {
			name := m.HomeTeam + " vs " + m.AwayTeam
			if err := w.Write([]string{"bracket_" + bracket.Division, name, m.Winner, formatScore(m.HomeScore) + "-" + formatScore(m.AwayScore), week, string(bracket.Round)}); err != nil {
				return nil, err
			}
		}
	}
	if report.Leaderboard != nil {
		for _, e := range report.Leaderboard.Entries {
			if err := w.Write([]string{"championship", e.Team, e.Division, formatValue(e.Score), strconv.Itoa(report.Leaderboard.Week), "rank=" + strconv.Itoa(e.Rank)}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
