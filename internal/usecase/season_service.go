package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/ffl-tools/trophyline/internal/domain/challenge"
	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/team"
)

// SeasonChallengeService computes the five season-long awards from combined
// division data. All methods are pure: same input, same output, no I/O.
type SeasonChallengeService struct{}

func NewSeasonChallengeService() *SeasonChallengeService {
	return &SeasonChallengeService{}
}

// Calculate returns exactly five results in fixed order: Most Points
// Overall, Most Points in One Game, Most Points in a Loss, Least Points in a
// Win, Closest Victory. Ties resolve to the first achiever in chronological
// order, then input order.
func (s *SeasonChallengeService) Calculate(ctx context.Context, divisions []division.Data) ([]challenge.Result, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SeasonChallengeService.Calculate")
	defer span.End()

	if len(divisions) == 0 {
		return nil, fmt.Errorf("%w: no divisions provided", ErrInsufficientData)
	}

	combined := division.Combine(divisions)
	if len(combined.Teams) == 0 {
		return nil, fmt.Errorf("%w: no teams in combined divisions", ErrInsufficientData)
	}

	mostPointsOverall, err := calcMostPointsOverall(combined.Teams)
	if err != nil {
		return nil, err
	}

	games := chronological(combined.Games)

	mostPointsOneGame, err := calcMostPointsOneGame(games)
	if err != nil {
		return nil, err
	}
	mostPointsInLoss, err := calcMostPointsInLoss(games)
	if err != nil {
		return nil, err
	}
	leastPointsInWin, err := calcLeastPointsInWin(games)
	if err != nil {
		return nil, err
	}
	closestVictory, err := calcClosestVictory(games)
	if err != nil {
		return nil, err
	}

	return []challenge.Result{
		mostPointsOverall,
		mostPointsOneGame,
		mostPointsInLoss,
		leastPointsInWin,
		closestVictory,
	}, nil
}

// chronological orders games by ascending week while preserving input order
// within a week, so a forward first-wins scan honors "first to achieve".
func chronological(games []game.Result) []game.Result {
	out := append([]game.Result(nil), games...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Week < out[j].Week
	})
	return out
}

func calcMostPointsOverall(teams []team.Stats) (challenge.Result, error) {
	best := teams[0]
	for _, t := range teams[1:] {
		if t.PointsFor > best.PointsFor {
			best = t
		}
	}

	return challenge.Result{
		Name:   challenge.MostPointsOverall,
		Winner: best.Name,
		Value:  best.PointsFor,
		Context: map[string]string{
			"division": best.Division,
			"owner":    best.Owner,
		},
	}, nil
}

func calcMostPointsOneGame(games []game.Result) (challenge.Result, error) {
	found := false
	var best game.Result
	for _, g := range games {
		if !found || g.Score > best.Score {
			best = g
			found = true
		}
	}
	if !found {
		return challenge.Result{}, fmt.Errorf("%w: no games recorded for %s", ErrInsufficientData, challenge.MostPointsOneGame)
	}

	return challenge.Result{
		Name:    challenge.MostPointsOneGame,
		Winner:  best.Team,
		Value:   best.Score,
		Context: gameContext(best),
	}, nil
}

func calcMostPointsInLoss(games []game.Result) (challenge.Result, error) {
	found := false
	var best game.Result
	for _, g := range games {
		if !g.IsLoss() {
			continue
		}
		if !found || g.Score > best.Score {
			best = g
			found = true
		}
	}
	if !found {
		return challenge.Result{}, fmt.Errorf("%w: no losses recorded for %s", ErrInsufficientData, challenge.MostPointsInLoss)
	}

	return challenge.Result{
		Name:    challenge.MostPointsInLoss,
		Winner:  best.Team,
		Value:   best.Score,
		Context: gameContext(best),
	}, nil
}

func calcLeastPointsInWin(games []game.Result) (challenge.Result, error) {
	found := false
	var best game.Result
	for _, g := range games {
		if !g.IsWin() {
			continue
		}
		if !found || g.Score < best.Score {
			best = g
			found = true
		}
	}
	if !found {
		return challenge.Result{}, fmt.Errorf("%w: no wins recorded for %s", ErrInsufficientData, challenge.LeastPointsInWin)
	}

	return challenge.Result{
		Name:    challenge.LeastPointsInWin,
		Winner:  best.Team,
		Value:   best.Score,
		Context: gameContext(best),
	}, nil
}

func calcClosestVictory(games []game.Result) (challenge.Result, error) {
	found := false
	var best game.Result
	for _, g := range games {
		// Ties are excluded: a tie is not a victory.
		if !g.IsWin() {
			continue
		}
		if !found || g.Margin() < best.Margin() {
			best = g
			found = true
		}
	}
	if !found {
		return challenge.Result{}, fmt.Errorf("%w: no decisive games recorded for %s", ErrInsufficientData, challenge.ClosestVictory)
	}

	out := challenge.Result{
		Name:    challenge.ClosestVictory,
		Winner:  best.Team,
		Value:   best.Margin(),
		Context: gameContext(best),
	}
	out.Context["score"] = formatPoints(best.Score)
	return out, nil
}

func gameContext(g game.Result) map[string]string {
	return map[string]string{
		"week":           strconv.Itoa(g.Week),
		"opponent":       g.Opponent,
		"opponent_score": formatPoints(g.OpponentScore),
		"division":       g.Division,
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
