package division

import (
	"fmt"

	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/player"
	"github.com/ffl-tools/trophyline/internal/domain/team"
)

// Meta carries the league metadata the phase detector consumes. ScoredGames
// counts this week's games with a posted score; ScheduledGames counts all
// games the provider scheduled for the week. The detector uses the pair to
// decide whether the nominal current week is actually finished.
type Meta struct {
	Name                string
	CurrentWeek         int
	RegularSeasonLength int
	PlayoffRoundCount   int
	ScoredGames         int
	ScheduledGames      int
}

func (m Meta) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("division name is required")
	}
	if m.CurrentWeek <= 0 {
		return fmt.Errorf("division current week must be greater than zero for %s", m.Name)
	}
	if m.RegularSeasonLength <= 0 {
		return fmt.Errorf("division regular season length must be greater than zero for %s", m.Name)
	}
	if m.PlayoffRoundCount < 0 {
		return fmt.Errorf("division playoff round count must be non-negative for %s", m.Name)
	}

	return nil
}

// Data is one division's already-fetched dataset, the unit every calculator
// consumes. Calculators borrow it read-only.
type Data struct {
	Meta          Meta
	Teams         []team.Stats
	Games         []game.Result
	WeeklyGames   []game.WeeklyResult
	WeeklyPlayers []player.WeeklyStats
}

func (d Data) Validate() error {
	if err := d.Meta.Validate(); err != nil {
		return err
	}
	for _, item := range d.Teams {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("division %s: %w", d.Meta.Name, err)
		}
	}
	for _, item := range d.Games {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("division %s: %w", d.Meta.Name, err)
		}
	}
	for _, item := range d.WeeklyGames {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("division %s: %w", d.Meta.Name, err)
		}
	}
	for _, item := range d.WeeklyPlayers {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("division %s: %w", d.Meta.Name, err)
		}
	}

	return nil
}

// Combined flattens multiple divisions by concatenation, preserving input
// order. Tie-breaks downstream depend on this order being stable.
type Combined struct {
	Teams         []team.Stats
	Games         []game.Result
	WeeklyGames   []game.WeeklyResult
	WeeklyPlayers []player.WeeklyStats
}

func Combine(divisions []Data) Combined {
	out := Combined{}
	for _, d := range divisions {
		out.Teams = append(out.Teams, d.Teams...)
		out.Games = append(out.Games, d.Games...)
		out.WeeklyGames = append(out.WeeklyGames, d.WeeklyGames...)
		out.WeeklyPlayers = append(out.WeeklyPlayers, d.WeeklyPlayers...)
	}
	return out
}
