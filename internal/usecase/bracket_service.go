package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/domain/team"
)

// BracketService builds one division's winners-path bracket for a playoff
// round. Consolation games are out of scope.
type BracketService struct{}

func NewBracketService() *BracketService {
	return &BracketService{}
}

// Build seeds teams from final regular-season standing and pairs them: the
// semifinal plays 1v4 and 2v3, the final plays the two semifinal winners.
// Matchups missing a played score carry nil scores and no winner; an
// in-progress bracket is a valid, renderable state.
func (s *BracketService) Build(ctx context.Context, round playoff.Round, data division.Data) (playoff.Bracket, error) {
	_, span := startUsecaseSpan(ctx, "usecase.BracketService.Build")
	defer span.End()

	if round != playoff.RoundSemifinal && round != playoff.RoundFinal {
		return playoff.Bracket{}, fmt.Errorf("%w: unknown playoff round %q", ErrInvalidInput, round)
	}
	if len(data.Teams) < 4 {
		return playoff.Bracket{}, fmt.Errorf(
			"%w: division %s has %d teams, playoff bracket needs at least 4",
			ErrInsufficientData, data.Meta.Name, len(data.Teams),
		)
	}

	seeds := seedByStanding(data.Teams)
	semifinalWeek := data.Meta.RegularSeasonLength + 1

	semis := []playoff.Matchup{
		buildMatchup(data, seeds[0], 1, seeds[3], 4, semifinalWeek),
		buildMatchup(data, seeds[1], 2, seeds[2], 3, semifinalWeek),
	}

	if round == playoff.RoundSemifinal {
		return playoff.Bracket{
			Division: data.Meta.Name,
			Round:    playoff.RoundSemifinal,
			Matchups: semis,
		}, nil
	}

	if !semis[0].Decided() || !semis[1].Decided() {
		return playoff.Bracket{}, fmt.Errorf(
			"%w: division %s semifinal winners are not decided yet",
			ErrInsufficientData, data.Meta.Name,
		)
	}

	finalWeek := semifinalWeek + 1
	final := buildMatchup(
		data,
		teamByName(data.Teams, semis[0].Winner), matchupSeed(semis[0]),
		teamByName(data.Teams, semis[1].Winner), matchupSeed(semis[1]),
		finalWeek,
	)

	return playoff.Bracket{
		Division: data.Meta.Name,
		Round:    playoff.RoundFinal,
		Matchups: []playoff.Matchup{final},
	}, nil
}

// seedByStanding orders teams by record, then points for, then name. The
// name key has no domain meaning; it only keeps seeding deterministic when
// records and points are identical.
func seedByStanding(teams []team.Stats) []team.Stats {
	out := append([]team.Stats(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		wi := out[i].Wins*2 + out[i].Ties
		wj := out[j].Wins*2 + out[j].Ties
		if wi != wj {
			return wi > wj
		}
		if out[i].PointsFor != out[j].PointsFor {
			return out[i].PointsFor > out[j].PointsFor
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func buildMatchup(data division.Data, home team.Stats, homeSeed int, away team.Stats, awaySeed int, week int) playoff.Matchup {
	m := playoff.Matchup{
		HomeTeam: home.Name,
		AwayTeam: away.Name,
		HomeSeed: homeSeed,
		AwaySeed: awaySeed,
	}

	m.HomeScore = scoreForWeek(data, home.Name, week)
	m.AwayScore = scoreForWeek(data, away.Name, week)
	if m.HomeScore != nil && m.AwayScore != nil {
		if *m.HomeScore > *m.AwayScore {
			m.Winner = m.HomeTeam
		} else if *m.AwayScore > *m.HomeScore {
			m.Winner = m.AwayTeam
		}
	}
	return m
}

// scoreForWeek looks in completed games first, then the current-week
// results, so a finished playoff round and a round still being played both
// resolve.
func scoreForWeek(data division.Data, teamName string, week int) *float64 {
	for _, g := range data.Games {
		if g.Team == teamName && g.Week == week {
			score := g.Score
			return &score
		}
	}
	for _, g := range data.WeeklyGames {
		if g.Team == teamName && g.Week == week {
			score := g.Score
			return &score
		}
	}
	return nil
}

func teamByName(teams []team.Stats, name string) team.Stats {
	for _, t := range teams {
		if t.Name == name {
			return t
		}
	}
	return team.Stats{Name: name}
}

func matchupSeed(m playoff.Matchup) int {
	if m.Winner == m.HomeTeam {
		return m.HomeSeed
	}
	return m.AwaySeed
}
