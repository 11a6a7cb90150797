package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ffl-tools/trophyline/internal/domain/challenge"
	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/player"
)

// WeeklyChallengeService computes the current-week team and player awards.
type WeeklyChallengeService struct{}

func NewWeeklyChallengeService() *WeeklyChallengeService {
	return &WeeklyChallengeService{}
}

// Calculate returns the week's team challenges followed by its player
// challenges. The projection pair (Overachiever / Below Expectations) is
// included only when every game in scope carries a starter projection;
// otherwise the pair is omitted rather than failing, since projections are
// an enhancement and not core data. That omission is the only way the result
// set shrinks: Biggest Win and Closest Game require at least one game decided
// by a positive margin, and a week with none fails outright. Ties resolve to
// the first entry in input order.
func (s *WeeklyChallengeService) Calculate(
	ctx context.Context,
	games []game.WeeklyResult,
	players []player.WeeklyStats,
	week int,
) ([]challenge.Weekly, error) {
	_, span := startUsecaseSpan(ctx, "usecase.WeeklyChallengeService.Calculate")
	defer span.End()

	if week <= 0 {
		return nil, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no weekly games provided", ErrInsufficientData)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no weekly players provided", ErrInsufficientData)
	}

	out := make([]challenge.Weekly, 0, 13)
	teams, err := teamChallenges(games, week)
	if err != nil {
		return nil, err
	}
	out = append(out, teams...)
	out = append(out, playerChallenges(players, week)...)
	return out, nil
}

func teamChallenges(games []game.WeeklyResult, week int) ([]challenge.Weekly, error) {
	out := make([]challenge.Weekly, 0, 6)

	highest := games[0]
	lowest := games[0]
	for _, g := range games[1:] {
		if g.Score > highest.Score {
			highest = g
		}
		if g.Score < lowest.Score {
			lowest = g
		}
	}
	out = append(out,
		teamChallenge(challenge.HighestScore, highest.Team, highest.Score, week, weeklyContext(highest)),
		teamChallenge(challenge.LowestScore, lowest.Team, lowest.Score, week, weeklyContext(lowest)),
	)

	margins, err := marginChallenges(games, week)
	if err != nil {
		return nil, err
	}
	out = append(out, margins...)
	out = append(out, projectionChallenges(games, week)...)
	return out, nil
}

// marginChallenges scans winner-side records only, so each decided matchup
// contributes once. Ties and games without a posted opponent score carry no
// win, so a week with nothing else cannot award the pair.
func marginChallenges(games []game.WeeklyResult, week int) ([]challenge.Weekly, error) {
	found := false
	var biggest, closest game.WeeklyResult
	var biggestMargin, closestMargin float64

	for _, g := range games {
		margin, ok := g.Margin()
		if !ok || margin <= 0 {
			continue
		}
		if !found {
			biggest, closest = g, g
			biggestMargin, closestMargin = margin, margin
			found = true
			continue
		}
		if margin > biggestMargin {
			biggest = g
			biggestMargin = margin
		}
		if margin < closestMargin {
			closest = g
			closestMargin = margin
		}
	}
	if !found {
		return nil, fmt.Errorf(
			"%w: no games decided by a positive margin for %s and %s",
			ErrInsufficientData, challenge.BiggestWin, challenge.ClosestGame,
		)
	}

	biggestCtx := weeklyContext(biggest)
	biggestCtx["margin"] = formatPoints(biggestMargin)
	closestCtx := weeklyContext(closest)
	closestCtx["margin"] = formatPoints(closestMargin)

	return []challenge.Weekly{
		teamChallenge(challenge.BiggestWin, biggest.Team, biggestMargin, week, biggestCtx),
		teamChallenge(challenge.ClosestGame, closest.Team, closestMargin, week, closestCtx),
	}, nil
}

func projectionChallenges(games []game.WeeklyResult, week int) []challenge.Weekly {
	for _, g := range games {
		if g.StarterProjection == nil {
			return nil
		}
	}

	over := games[0]
	overDelta, _ := over.Overperformance()
	under := games[0]
	underDelta := overDelta
	for _, g := range games[1:] {
		delta, _ := g.Overperformance()
		if delta > overDelta {
			over = g
			overDelta = delta
		}
		if delta < underDelta {
			under = g
			underDelta = delta
		}
	}

	overCtx := weeklyContext(over)
	overCtx["projected"] = formatPoints(*over.StarterProjection)
	underCtx := weeklyContext(under)
	underCtx["projected"] = formatPoints(*under.StarterProjection)

	return []challenge.Weekly{
		teamChallenge(challenge.Overachiever, over.Team, overDelta, week, overCtx),
		teamChallenge(challenge.BelowExpectations, under.Team, underDelta, week, underCtx),
	}
}

func playerChallenges(players []player.WeeklyStats, week int) []challenge.Weekly {
	out := make([]challenge.Weekly, 0, 7)

	top := players[0]
	for _, p := range players[1:] {
		if p.Points > top.Points {
			top = p
		}
	}
	out = append(out, playerChallenge(challenge.TopScorerOverall, top, week))

	for _, pos := range player.OrderedPositions {
		found := false
		var best player.WeeklyStats
		for _, p := range players {
			if p.Position != pos {
				continue
			}
			if !found || p.Points > best.Points {
				best = p
				found = true
			}
		}
		// A position with no starters simply produces no entry.
		if !found {
			continue
		}
		out = append(out, playerChallenge(fmt.Sprintf("Best %s", pos), best, week))
	}

	return out
}

func teamChallenge(name, winner string, value float64, week int, ctx map[string]string) challenge.Weekly {
	return challenge.Weekly{
		Name:    name,
		Type:    challenge.TypeTeam,
		Winner:  winner,
		Value:   value,
		Week:    week,
		Context: ctx,
	}
}

func playerChallenge(name string, p player.WeeklyStats, week int) challenge.Weekly {
	return challenge.Weekly{
		Name:   name,
		Type:   challenge.TypePlayer,
		Winner: p.Name,
		Value:  p.Points,
		Week:   week,
		Context: map[string]string{
			"team":     p.Team,
			"position": string(p.Position),
			"division": p.Division,
		},
	}
}

func weeklyContext(g game.WeeklyResult) map[string]string {
	ctx := map[string]string{
		"division": g.Division,
		"score":    formatPoints(g.Score),
	}
	if g.Opponent != "" {
		ctx["opponent"] = g.Opponent
	}
	if g.OpponentScore != nil {
		ctx["opponent_score"] = formatPoints(*g.OpponentScore)
	}
	if g.Week > 0 {
		ctx["week"] = strconv.Itoa(g.Week)
	}
	return ctx
}
