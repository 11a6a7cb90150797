package render

import (
	"fmt"
	"strings"

	"github.com/ffl-tools/trophyline/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// TextRenderer writes the report as plain text for terminals.
type TextRenderer struct{}

func (r *TextRenderer) Format() string { return FormatText }

func (r *TextRenderer) Render(report usecase.Report) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "%s - Week %d\n", phaseLabel(report.Phase), report.Week)
	fmt.Fprintf(buf, "%s\n", strings.Repeat("=", len(phaseLabel(report.Phase))+10))

	if len(report.SeasonChallenges) > 0 {
		fmt.Fprintf(buf, "\nSeason Challenges\n-----------------\n")
		for _, c := range report.SeasonChallenges {
			fmt.Fprintf(buf, "%-26s %s (%s)", c.Name, c.Winner, formatValue(c.Value))
			if pairs := contextPairs(c.Context); len(pairs) > 0 {
				fmt.Fprintf(buf, "  [%s]", strings.Join(pairs, " "))
			}
			fmt.Fprintln(buf)
		}
	}

	if len(report.WeeklyChallenges) > 0 {
		// The awards carry their own week, which can sit one ahead of the
		// phase week while the dataset's games are still live.
		fmt.Fprintf(buf, "\nWeek %d Challenges\n------------------\n", report.WeeklyChallenges[0].Week)
		for _, c := range report.WeeklyChallenges {
			fmt.Fprintf(buf, "%-8s %-22s %s (%s)\n", c.Type, c.Name, c.Winner, formatValue(c.Value))
		}
	}

	for _, bracket := range report.Brackets {
		fmt.Fprintf(buf, "\n%s Bracket (%s)\n", bracket.Division, phaseLabel(report.Phase))
		for _, m := range bracket.Matchups {
			fmt.Fprintf(buf, "  (%d) %s %s vs (%d) %s %s",
				m.HomeSeed, m.HomeTeam, formatScore(m.HomeScore),
				m.AwaySeed, m.AwayTeam, formatScore(m.AwayScore),
			)
			if m.Decided() {
				fmt.Fprintf(buf, "  -> %s", m.Winner)
			}
			fmt.Fprintln(buf)
		}
	}

	if report.Leaderboard != nil {
		fmt.Fprintf(buf, "\nChampionship Leaderboard (week %d, %s complete)\n",
			report.Leaderboard.Week, formatPct(report.Leaderboard.CompletionPct()))
		for _, e := range report.Leaderboard.Entries {
			fmt.Fprintf(buf, "  %d. %-24s %s (proj %s, %s) - %s\n",
				e.Rank, e.Team, formatValue(e.Score), formatValue(e.ProjectedScore),
				formatPct(e.CompletionPct()), e.Division,
			)
		}
		if champion, ok := report.Leaderboard.Champion(); ok {
			fmt.Fprintf(buf, "\nChampion: %s (%s)\n", champion.Team, champion.Division)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
