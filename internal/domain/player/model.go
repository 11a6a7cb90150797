package player

import "fmt"

// Position represents lineup slot categories used for weekly player awards.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "D/ST"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// OrderedPositions fixes the iteration order for per-position awards.
var OrderedPositions = []Position{
	PositionQuarterback,
	PositionRunningBack,
	PositionWideReceiver,
	PositionTightEnd,
	PositionKicker,
	PositionDefense,
}

// WeeklyStats is one starting player's line for the current week. Bench
// players are excluded upstream and never reach this type.
type WeeklyStats struct {
	Name     string
	Position Position
	Points   float64
	Team     string
	Division string
}

func (s WeeklyStats) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[s.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", s.Position)
	}
	if s.Team == "" {
		return fmt.Errorf("player team is required for %s", s.Name)
	}

	return nil
}
