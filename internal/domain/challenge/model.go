package challenge

import "fmt"

const (
	TypeTeam   = "team"
	TypePlayer = "player"
)

// Season challenge names, in the fixed order Calculate returns them.
const (
	MostPointsOverall = "Most Points Overall"
	MostPointsOneGame = "Most Points in One Game"
	MostPointsInLoss  = "Most Points in a Loss"
	LeastPointsInWin  = "Least Points in a Win"
	ClosestVictory    = "Closest Victory"
)

// Weekly challenge names.
const (
	HighestScore      = "Highest Score"
	LowestScore       = "Lowest Score"
	BiggestWin        = "Biggest Win"
	ClosestGame       = "Closest Game"
	Overachiever      = "Overachiever"
	BelowExpectations = "Below Expectations"
	TopScorerOverall  = "Top Scorer Overall"
)

// Result binds a season challenge to its winning team and achieved value.
// Context carries renderer-facing details (week, opponent, margin, division).
type Result struct {
	Name    string
	Winner  string
	Value   float64
	Context map[string]string
}

func (r Result) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("challenge name is required")
	}
	if r.Winner == "" {
		return fmt.Errorf("challenge winner is required for %s", r.Name)
	}

	return nil
}

// Weekly binds a current-week award to its winning team or player.
type Weekly struct {
	Name    string
	Type    string
	Winner  string
	Value   float64
	Week    int
	Context map[string]string
}

func (w Weekly) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("weekly challenge name is required")
	}
	if w.Type != TypeTeam && w.Type != TypePlayer {
		return fmt.Errorf("invalid weekly challenge type for %s: %s", w.Name, w.Type)
	}
	if w.Winner == "" {
		return fmt.Errorf("weekly challenge winner is required for %s", w.Name)
	}
	if w.Week <= 0 {
		return fmt.Errorf("weekly challenge week must be greater than zero for %s", w.Name)
	}

	return nil
}
