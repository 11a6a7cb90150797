package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ffl-tools/trophyline/internal/domain/playoff"
)

// ChampionshipEntrant is one division winner's championship-week roster,
// already filtered to the week's starting slots.
type ChampionshipEntrant struct {
	Team     string
	Division string
	Starters []playoff.RosterEntry
}

// ChampionshipService synthesizes final-round scores. The provider reports
// no native matchup once a league is marked complete, so each qualifying
// team's score is rebuilt by summing its starters' recorded points for the
// championship week.
type ChampionshipService struct{}

func NewChampionshipService() *ChampionshipService {
	return &ChampionshipService{}
}

// Resolve builds the championship leaderboard: entries sorted by synthesized
// score descending, ties broken by division name then team name ascending
// (a single-week event has no chronological axis to break ties on). Starter
// game status follows the points/projection heuristic documented on
// playoff.RosterEntry.
func (s *ChampionshipService) Resolve(ctx context.Context, entrants []ChampionshipEntrant, week int) (playoff.Leaderboard, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Resolve")
	defer span.End()

	if week <= 0 {
		return playoff.Leaderboard{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if len(entrants) == 0 {
		return playoff.Leaderboard{}, fmt.Errorf("%w: no championship entrants provided", ErrInsufficientData)
	}

	entries := make([]playoff.Entry, 0, len(entrants))
	for _, entrant := range entrants {
		entry, err := resolveEntry(entrant)
		if err != nil {
			return playoff.Leaderboard{}, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Division != entries[j].Division {
			return entries[i].Division < entries[j].Division
		}
		return entries[i].Team < entries[j].Team
	})
	for idx := range entries {
		entries[idx].Rank = idx + 1
	}

	return playoff.Leaderboard{Week: week, Entries: entries}, nil
}

func resolveEntry(entrant ChampionshipEntrant) (playoff.Entry, error) {
	if entrant.Team == "" {
		return playoff.Entry{}, fmt.Errorf("%w: championship entrant team is required", ErrInvalidInput)
	}
	if entrant.Division == "" {
		return playoff.Entry{}, fmt.Errorf("%w: championship entrant division is required for %s", ErrInvalidInput, entrant.Team)
	}
	if len(entrant.Starters) == 0 {
		return playoff.Entry{}, fmt.Errorf("%w: no starters recorded for %s", ErrInsufficientData, entrant.Team)
	}

	entry := playoff.Entry{
		Team:          entrant.Team,
		Division:      entrant.Division,
		StartersTotal: len(entrant.Starters),
	}
	for _, starter := range entrant.Starters {
		if err := starter.Validate(); err != nil {
			return playoff.Entry{}, fmt.Errorf("championship entrant %s: %w", entrant.Team, err)
		}
		entry.Score += starter.Points
		entry.ProjectedScore += starter.Projection
		if starter.Status() == playoff.GameStatusFinal {
			entry.StartersFinal++
		}
	}

	return entry, nil
}
