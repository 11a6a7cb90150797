package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/domain/team"
)

func bracketFixture() division.Data {
	return division.Data{
		Meta: division.Meta{Name: "East", CurrentWeek: 15, RegularSeasonLength: 14, PlayoffRoundCount: 2},
		Teams: []team.Stats{
			{Name: "Fourth", Division: "East", Wins: 6, Losses: 8, PointsFor: 1400},
			{Name: "First", Division: "East", Wins: 11, Losses: 3, PointsFor: 1650},
			{Name: "Third", Division: "East", Wins: 8, Losses: 6, PointsFor: 1500},
			{Name: "Second", Division: "East", Wins: 9, Losses: 5, PointsFor: 1550},
		},
	}
}

func TestBracketService_Build_Semifinal(t *testing.T) {
	svc := NewBracketService()

	data := bracketFixture()
	data.Games = []game.Result{
		{Team: "First", Opponent: "Fourth", Score: 130.0, OpponentScore: 99.5, Week: 15, Division: "East"},
		{Team: "Fourth", Opponent: "First", Score: 99.5, OpponentScore: 130.0, Week: 15, Division: "East"},
		{Team: "Second", Opponent: "Third", Score: 101.1, OpponentScore: 112.3, Week: 15, Division: "East"},
		{Team: "Third", Opponent: "Second", Score: 112.3, OpponentScore: 101.1, Week: 15, Division: "East"},
	}

	bracket, err := svc.Build(context.Background(), playoff.RoundSemifinal, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bracket.Division != "East" || bracket.Round != playoff.RoundSemifinal {
		t.Fatalf("unexpected bracket header: %+v", bracket)
	}
	if len(bracket.Matchups) != 2 {
		t.Fatalf("unexpected matchup count: got=%d want=2", len(bracket.Matchups))
	}

	oneVsFour := bracket.Matchups[0]
	if oneVsFour.HomeTeam != "First" || oneVsFour.AwayTeam != "Fourth" {
		t.Fatalf("unexpected 1v4 pairing: %s vs %s", oneVsFour.HomeTeam, oneVsFour.AwayTeam)
	}
	if oneVsFour.HomeSeed != 1 || oneVsFour.AwaySeed != 4 {
		t.Fatalf("unexpected 1v4 seeds: %d vs %d", oneVsFour.HomeSeed, oneVsFour.AwaySeed)
	}
	if oneVsFour.Winner != "First" {
		t.Fatalf("unexpected 1v4 winner: %s", oneVsFour.Winner)
	}

	twoVsThree := bracket.Matchups[1]
	if twoVsThree.HomeTeam != "Second" || twoVsThree.AwayTeam != "Third" {
		t.Fatalf("unexpected 2v3 pairing: %s vs %s", twoVsThree.HomeTeam, twoVsThree.AwayTeam)
	}
	if twoVsThree.Winner != "Third" {
		t.Fatalf("unexpected 2v3 winner: %s", twoVsThree.Winner)
	}
}

func TestBracketService_Build_SemifinalInProgress(t *testing.T) {
	svc := NewBracketService()

	// No week 15 scores anywhere yet.
	bracket, err := svc.Build(context.Background(), playoff.RoundSemifinal, bracketFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range bracket.Matchups {
		if m.HomeScore != nil || m.AwayScore != nil {
			t.Fatalf("expected nil scores for unplayed matchup, got %+v", m)
		}
		if m.Winner != "" {
			t.Fatalf("expected no winner for unplayed matchup, got %s", m.Winner)
		}
		if m.Decided() {
			t.Fatalf("unplayed matchup reported decided: %+v", m)
		}
	}
}

func TestBracketService_Build_SemifinalFromWeeklyGames(t *testing.T) {
	svc := NewBracketService()

	data := bracketFixture()
	data.WeeklyGames = []game.WeeklyResult{
		{Team: "First", Opponent: "Fourth", Score: 88.0, Week: 15, Division: "East"},
		{Team: "Fourth", Opponent: "First", Score: 71.2, Week: 15, Division: "East"},
	}

	bracket, err := svc.Build(context.Background(), playoff.RoundSemifinal, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := bracket.Matchups[0]
	if m.HomeScore == nil || *m.HomeScore != 88.0 {
		t.Fatalf("expected live home score 88.0, got %+v", m.HomeScore)
	}
	if m.AwayScore == nil || *m.AwayScore != 71.2 {
		t.Fatalf("expected live away score 71.2, got %+v", m.AwayScore)
	}
}

func TestBracketService_Build_Final(t *testing.T) {
	svc := NewBracketService()

	data := bracketFixture()
	data.Meta.CurrentWeek = 16
	data.Games = []game.Result{
		{Team: "First", Opponent: "Fourth", Score: 130.0, OpponentScore: 99.5, Week: 15, Division: "East"},
		{Team: "Fourth", Opponent: "First", Score: 99.5, OpponentScore: 130.0, Week: 15, Division: "East"},
		{Team: "Second", Opponent: "Third", Score: 101.1, OpponentScore: 112.3, Week: 15, Division: "East"},
		{Team: "Third", Opponent: "Second", Score: 112.3, OpponentScore: 101.1, Week: 15, Division: "East"},
		{Team: "First", Opponent: "Third", Score: 121.0, OpponentScore: 118.6, Week: 16, Division: "East"},
		{Team: "Third", Opponent: "First", Score: 118.6, OpponentScore: 121.0, Week: 16, Division: "East"},
	}

	bracket, err := svc.Build(context.Background(), playoff.RoundFinal, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bracket.Round != playoff.RoundFinal || len(bracket.Matchups) != 1 {
		t.Fatalf("unexpected final bracket: %+v", bracket)
	}
	final := bracket.Matchups[0]
	if final.HomeTeam != "First" || final.AwayTeam != "Third" {
		t.Fatalf("unexpected final pairing: %s vs %s", final.HomeTeam, final.AwayTeam)
	}
	if final.HomeSeed != 1 || final.AwaySeed != 3 {
		t.Fatalf("unexpected final seeds: %d vs %d", final.HomeSeed, final.AwaySeed)
	}
	if final.Winner != "First" {
		t.Fatalf("unexpected champion: %s", final.Winner)
	}
}

func TestBracketService_Build_FinalBeforeSemisDecided(t *testing.T) {
	svc := NewBracketService()

	_, err := svc.Build(context.Background(), playoff.RoundFinal, bracketFixture())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBracketService_Build_Errors(t *testing.T) {
	svc := NewBracketService()

	t.Run("unknown round", func(t *testing.T) {
		_, err := svc.Build(context.Background(), playoff.Round("quarterfinal"), bracketFixture())
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("too few teams", func(t *testing.T) {
		data := bracketFixture()
		data.Teams = data.Teams[:3]
		_, err := svc.Build(context.Background(), playoff.RoundSemifinal, data)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})
}

func TestSeedByStanding(t *testing.T) {
	teams := []team.Stats{
		{Name: "B", Wins: 8, Ties: 0, PointsFor: 1500},
		{Name: "A", Wins: 8, Ties: 0, PointsFor: 1500},
		{Name: "C", Wins: 7, Ties: 2, PointsFor: 1600},
		{Name: "D", Wins: 9, Ties: 0, PointsFor: 1400},
	}

	seeds := seedByStanding(teams)

	// D leads on record, C matches 16 record points and falls to points for,
	// then A beats B on the deterministic name key.
	want := []string{"D", "C", "A", "B"}
	for i, name := range want {
		if seeds[i].Name != name {
			t.Fatalf("seed %d: got=%s want=%s", i+1, seeds[i].Name, name)
		}
	}
}
