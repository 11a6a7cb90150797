package render

import (
	sonic "github.com/bytedance/sonic"
	"github.com/ffl-tools/trophyline/internal/domain/challenge"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/usecase"
)

// JSONRenderer writes the report as a stable JSON document for downstream
// consumers. Field names are versioned by convention: renaming one is a
// breaking change.
type JSONRenderer struct{}

func (r *JSONRenderer) Format() string { return FormatJSON }

type jsonReport struct {
	Phase            string            `json:"phase"`
	Week             int               `json:"week"`
	SeasonChallenges []jsonChallenge   `json:"season_challenges,omitempty"`
	WeeklyChallenges []jsonWeekly      `json:"weekly_challenges,omitempty"`
	Brackets         []jsonBracket     `json:"brackets,omitempty"`
	Leaderboard      *jsonLeaderboard  `json:"championship_leaderboard,omitempty"`
}

type jsonChallenge struct {
	Name    string            `json:"name"`
	Winner  string            `json:"winner"`
	Value   float64           `json:"value"`
	Context map[string]string `json:"context,omitempty"`
}

type jsonWeekly struct {
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	Winner  string            `json:"winner"`
	Value   float64           `json:"value"`
	Week    int               `json:"week"`
	Context map[string]string `json:"context,omitempty"`
}

type jsonBracket struct {
	Division string        `json:"division"`
	Round    string        `json:"round"`
	Matchups []jsonMatchup `json:"matchups"`
}

type jsonMatchup struct {
	HomeTeam  string   `json:"home_team"`
	AwayTeam  string   `json:"away_team"`
	HomeSeed  int      `json:"home_seed"`
	AwaySeed  int      `json:"away_seed"`
	HomeScore *float64 `json:"home_score"`
	AwayScore *float64 `json:"away_score"`
	Winner    string   `json:"winner,omitempty"`
}

type jsonLeaderboard struct {
	Week          int         `json:"week"`
	CompletionPct float64     `json:"completion_pct"`
	Entries       []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Rank           int     `json:"rank"`
	Team           string  `json:"team"`
	Division       string  `json:"division"`
	Score          float64 `json:"score"`
	ProjectedScore float64 `json:"projected_score"`
	CompletionPct  float64 `json:"completion_pct"`
}

func (r *JSONRenderer) Render(report usecase.Report) ([]byte, error) {
	out := jsonReport{
		Phase:            string(report.Phase),
		Week:             report.Week,
		SeasonChallenges: mapChallenges(report.SeasonChallenges),
		WeeklyChallenges: mapWeekly(report.WeeklyChallenges),
		Brackets:         mapBrackets(report.Brackets),
	}
	if report.Leaderboard != nil {
		lb := jsonLeaderboard{
			Week:          report.Leaderboard.Week,
			CompletionPct: report.Leaderboard.CompletionPct(),
		}
		for _, e := range report.Leaderboard.Entries {
			lb.Entries = append(lb.Entries, jsonEntry{
				Rank:           e.Rank,
				Team:           e.Team,
				Division:       e.Division,
				Score:          e.Score,
				ProjectedScore: e.ProjectedScore,
				CompletionPct:  e.CompletionPct(),
			})
		}
		out.Leaderboard = &lb
	}

	return sonic.Marshal(out)
}

func mapChallenges(in []challenge.Result) []jsonChallenge {
	out := make([]jsonChallenge, 0, len(in))
	for _, c := range in {
		out = append(out, jsonChallenge{Name: c.Name, Winner: c.Winner, Value: c.Value, Context: c.Context})
	}
	return out
}

func mapWeekly(in []challenge.Weekly) []jsonWeekly {
	out := make([]jsonWeekly, 0, len(in))
	for _, c := range in {
		out = append(out, jsonWeekly{Name: c.Name, Type: c.Type, Winner: c.Winner, Value: c.Value, Week: c.Week, Context: c.Context})
	}
	return out
}

func mapBrackets(in []playoff.Bracket) []jsonBracket {
	out := make([]jsonBracket, 0, len(in))
	for _, b := range in {
		jb := jsonBracket{Division: b.Division, Round: string(b.Round)}
		for _, m := range b.Matchups {
			jb.Matchups = append(jb.Matchups, jsonMatchup{
				HomeTeam:  m.HomeTeam,
				AwayTeam:  m.AwayTeam,
				HomeSeed:  m.HomeSeed,
				AwaySeed:  m.AwaySeed,
				HomeScore: m.HomeScore,
				AwayScore: m.AwayScore,
				Winner:    m.Winner,
			})
		}
		out = append(out, jb)
	}
	return out
}
