package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ffl-tools/trophyline/internal/domain/challenge"
	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/player"
)

func ptr(v float64) *float64 { return &v }

func weeklyGamesFixture(withProjections bool) []game.WeeklyResult {
	games := []game.WeeklyResult{
		{Team: "Team A", Opponent: "Team B", Score: 140.2, OpponentScore: ptr(101.0), Week: 7, Division: "East"},
		{Team: "Team B", Opponent: "Team A", Score: 101.0, OpponentScore: ptr(140.2), Week: 7, Division: "East"},
		{Team: "Team C", Opponent: "Team D", Score: 95.4, OpponentScore: ptr(94.9), Week: 7, Division: "West"},
		{Team: "Team D", Opponent: "Team C", Score: 94.9, OpponentScore: ptr(95.4), Week: 7, Division: "West"},
	}
	if !withProjections {
		return games
	}
	proj := []float64{120.0, 110.0, 100.0, 108.0}
	for i := range games {
		games[i].StarterProjection = ptr(proj[i])
	}
	return games
}

func weeklyPlayersFixture() []player.WeeklyStats {
	return []player.WeeklyStats{
		{Name: "QB One", Position: player.PositionQuarterback, Points: 31.2, Team: "Team A", Division: "East"},
		{Name: "QB Two", Position: player.PositionQuarterback, Points: 18.4, Team: "Team C", Division: "West"},
		{Name: "RB One", Position: player.PositionRunningBack, Points: 24.0, Team: "Team B", Division: "East"},
		{Name: "WR One", Position: player.PositionWideReceiver, Points: 33.7, Team: "Team D", Division: "West"},
		{Name: "TE One", Position: player.PositionTightEnd, Points: 12.1, Team: "Team A", Division: "East"},
		{Name: "K One", Position: player.PositionKicker, Points: 9.0, Team: "Team B", Division: "East"},
		{Name: "DST One", Position: player.PositionDefense, Points: 14.0, Team: "Team C", Division: "West"},
	}
}

func TestWeeklyChallengeService_Calculate_WithProjections(t *testing.T) {
	svc := NewWeeklyChallengeService()

	results, err := svc.Calculate(context.Background(), weeklyGamesFixture(true), weeklyPlayersFixture(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 13 {
		t.Fatalf("unexpected result count: got=%d want=13", len(results))
	}

	byName := make(map[string]challenge.Weekly, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}

	cases := []struct {
		name   string
		winner string
		value  float64
	}{
		{challenge.HighestScore, "Team A", 140.2},
		{challenge.LowestScore, "Team D", 94.9},
		{challenge.BiggestWin, "Team A", 140.2 - 101.0},
		{challenge.ClosestGame, "Team C", 95.4 - 94.9},
		{challenge.Overachiever, "Team A", 140.2 - 120.0},
		{challenge.BelowExpectations, "Team D", 94.9 - 108.0},
		{challenge.TopScorerOverall, "WR One", 33.7},
		{"Best QB", "QB One", 31.2},
		{"Best RB", "RB One", 24.0},
		{"Best WR", "WR One", 33.7},
		{"Best TE", "TE One", 12.1},
		{"Best K", "K One", 9.0},
		{"Best D/ST", "DST One", 14.0},
	}
	for _, tc := range cases {
		got, ok := byName[tc.name]
		if !ok {
			t.Fatalf("missing challenge %q", tc.name)
		}
		if got.Winner != tc.winner {
			t.Fatalf("%s: unexpected winner: got=%s want=%s", tc.name, got.Winner, tc.winner)
		}
		if diff := got.Value - tc.value; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s: unexpected value: got=%v want=%v", tc.name, got.Value, tc.value)
		}
		if got.Week != 7 {
			t.Fatalf("%s: unexpected week: got=%d want=7", tc.name, got.Week)
		}
	}
}

func TestWeeklyChallengeService_Calculate_WithoutProjections(t *testing.T) {
	svc := NewWeeklyChallengeService()

	results, err := svc.Calculate(context.Background(), weeklyGamesFixture(false), weeklyPlayersFixture(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The projection pair drops out when any game lacks a projection.
	if len(results) != 11 {
		t.Fatalf("unexpected result count: got=%d want=11", len(results))
	}
	for _, r := range results {
		if r.Name == challenge.Overachiever || r.Name == challenge.BelowExpectations {
			t.Fatalf("projection challenge %q present without projections", r.Name)
		}
	}
}

func TestWeeklyChallengeService_Calculate_PartialProjections(t *testing.T) {
	svc := NewWeeklyChallengeService()

	games := weeklyGamesFixture(true)
	games[2].StarterProjection = nil

	results, err := svc.Calculate(context.Background(), games, weeklyPlayersFixture(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Name == challenge.Overachiever || r.Name == challenge.BelowExpectations {
			t.Fatalf("projection challenge %q present with partial projections", r.Name)
		}
	}
}

func TestWeeklyChallengeService_Calculate_NoDecidedGames(t *testing.T) {
	svc := NewWeeklyChallengeService()

	t.Run("all undecided", func(t *testing.T) {
		games := []game.WeeklyResult{
			{Team: "Team A", Opponent: "Team B", Score: 110.0, Week: 7, Division: "East"},
			{Team: "Team B", Opponent: "Team A", Score: 40.0, Week: 7, Division: "East"},
		}

		_, err := svc.Calculate(context.Background(), games, weeklyPlayersFixture(), 7)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
		if !strings.Contains(err.Error(), challenge.BiggestWin) {
			t.Fatalf("error %q does not name the missing challenge", err.Error())
		}
	})

	t.Run("all ties", func(t *testing.T) {
		games := []game.WeeklyResult{
			{Team: "Team A", Opponent: "Team B", Score: 100.0, OpponentScore: ptr(100.0), Week: 7, Division: "East"},
			{Team: "Team B", Opponent: "Team A", Score: 100.0, OpponentScore: ptr(100.0), Week: 7, Division: "East"},
		}

		_, err := svc.Calculate(context.Background(), games, weeklyPlayersFixture(), 7)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})
}

func TestWeeklyChallengeService_Calculate_TieExcludedFromClosestGame(t *testing.T) {
	svc := NewWeeklyChallengeService()

	// A decided tie never wins Closest Game; a tie is not a victory.
	games := append(weeklyGamesFixture(false),
		game.WeeklyResult{Team: "Team E", Opponent: "Team F", Score: 80.0, OpponentScore: ptr(80.0), Week: 7, Division: "East"},
		game.WeeklyResult{Team: "Team F", Opponent: "Team E", Score: 80.0, OpponentScore: ptr(80.0), Week: 7, Division: "East"},
	)

	results, err := svc.Calculate(context.Background(), games, weeklyPlayersFixture(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Name == challenge.ClosestGame && r.Winner != "Team C" {
			t.Fatalf("unexpected closest game winner: %s", r.Winner)
		}
	}
}

func TestWeeklyChallengeService_Calculate_MissingPositions(t *testing.T) {
	svc := NewWeeklyChallengeService()

	players := []player.WeeklyStats{
		{Name: "QB One", Position: player.PositionQuarterback, Points: 22.0, Team: "Team A", Division: "East"},
		{Name: "RB One", Position: player.PositionRunningBack, Points: 15.5, Team: "Team B", Division: "East"},
	}

	results, err := svc.Calculate(context.Background(), weeklyGamesFixture(false), players, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		switch r.Name {
		case "Best WR", "Best TE", "Best K", "Best D/ST":
			t.Fatalf("unexpected challenge for absent position: %s", r.Name)
		}
	}
}

func TestWeeklyChallengeService_Calculate_Errors(t *testing.T) {
	svc := NewWeeklyChallengeService()

	t.Run("invalid week", func(t *testing.T) {
		_, err := svc.Calculate(context.Background(), weeklyGamesFixture(false), weeklyPlayersFixture(), 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no games", func(t *testing.T) {
		_, err := svc.Calculate(context.Background(), nil, weeklyPlayersFixture(), 7)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("no players", func(t *testing.T) {
		_, err := svc.Calculate(context.Background(), weeklyGamesFixture(false), nil, 7)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})
}
