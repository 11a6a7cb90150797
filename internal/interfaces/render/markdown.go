package render

import (
	"fmt"
	"strings"

	"github.com/ffl-tools/trophyline/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// MarkdownRenderer writes the report as GitHub-flavored Markdown, suitable
// for chat webhooks and READMEs.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Format() string { return FormatMarkdown }

func (r *MarkdownRenderer) Render(report usecase.Report) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "# %s - Week %d\n", phaseLabel(report.Phase), report.Week)

	if len(report.SeasonChallenges) > 0 {
		fmt.Fprintf(buf, "\n## Season Challenges\n\n")
		fmt.Fprintf(buf, "| Challenge | Winner | Value | Details |\n")
		fmt.Fprintf(buf, "| --- | --- | --- | --- |\n")
		for _, c := range report.SeasonChallenges {
			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n",
				c.Name, c.Winner, formatValue(c.Value), strings.Join(contextPairs(c.Context), ", "))
		}
	}

	if len(report.WeeklyChallenges) > 0 {
		fmt.Fprintf(buf, "\n## Week %d Challenges\n\n", report.WeeklyChallenges[0].Week)
		fmt.Fprintf(buf, "| Type | Challenge | Winner | Value |\n")
		fmt.Fprintf(buf, "| --- | --- | --- | --- |\n")
		for _, c := range report.WeeklyChallenges {
			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", c.Type, c.Name, c.Winner, formatValue(c.Value))
		}
	}

	for _, bracket := range report.Brackets {
		fmt.Fprintf(buf, "\n## %s Bracket\n\n", bracket.Division)
		for _, m := range bracket.Matchups {
			fmt.Fprintf(buf, "- **(%d) %s** %s vs **(%d) %s** %s",
				m.HomeSeed, m.HomeTeam, formatScore(m.HomeScore),
				m.AwaySeed, m.AwayTeam, formatScore(m.AwayScore),
			)
			if m.Decided() {
				fmt.Fprintf(buf, " → winner **%s**", m.Winner)
			}
			fmt.Fprintln(buf)
		}
	}

	if report.Leaderboard != nil {
		fmt.Fprintf(buf, "\n## Championship Leaderboard\n\n")
		fmt.Fprintf(buf, "| Rank | Team | Division | Score | Projected | Complete |\n")
		fmt.Fprintf(buf, "| --- | --- | --- | --- | --- | --- |\n")
		for _, e := range report.Leaderboard.Entries {
			fmt.Fprintf(buf, "| %d | %s | %s | %s | %s | %s |\n",
				e.Rank, e.Team, e.Division, formatValue(e.Score),
				formatValue(e.ProjectedScore), formatPct(e.CompletionPct()))
		}
		if champion, ok := report.Leaderboard.Champion(); ok {
			fmt.Fprintf(buf, "\n🏆 **%s** (%s)\n", champion.Team, champion.Division)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
