package game

import "fmt"

// Result is one completed regular-season game from one team's side.
type Result struct {
	Team          string
	Opponent      string
	Score         float64
	OpponentScore float64
	Week          int
	Division      string
}

func (r Result) Validate() error {
	if r.Team == "" {
		return fmt.Errorf("game team is required")
	}
	if r.Opponent == "" {
		return fmt.Errorf("game opponent is required for %s", r.Team)
	}
	if r.Score < 0 {
		return fmt.Errorf("game score must be non-negative for %s", r.Team)
	}
	if r.OpponentScore < 0 {
		return fmt.Errorf("game opponent score must be non-negative for %s", r.Team)
	}
	if r.Week <= 0 {
		return fmt.Errorf("game week must be greater than zero for %s", r.Team)
	}
	if r.Division == "" {
		return fmt.Errorf("game division is required for %s", r.Team)
	}

	return nil
}

func (r Result) IsWin() bool {
	return r.Score > r.OpponentScore
}

func (r Result) IsLoss() bool {
	return r.Score < r.OpponentScore
}

// Margin is positive for a win, negative for a loss, zero for a tie.
func (r Result) Margin() float64 {
	return r.Score - r.OpponentScore
}

// WeeklyResult is one team's current-week performance. StarterProjection is
// the sum of each starter's pre-game projection; it is retained separately
// from the provider's live projection, which drifts during play and is
// unsuitable for expectation analysis. A nil StarterProjection means the
// provider exposed no usable starter projections for this game.
type WeeklyResult struct {
	Team              string
	Opponent          string
	Score             float64
	OpponentScore     *float64
	LiveProjection    float64
	StarterProjection *float64
	Week              int
	Division          string
}

func (r WeeklyResult) Validate() error {
	if r.Team == "" {
		return fmt.Errorf("weekly result team is required")
	}
	if r.Score < 0 {
		return fmt.Errorf("weekly result score must be non-negative for %s", r.Team)
	}
	if r.Week <= 0 {
		return fmt.Errorf("weekly result week must be greater than zero for %s", r.Team)
	}
	if r.Division == "" {
		return fmt.Errorf("weekly result division is required for %s", r.Team)
	}
	if r.OpponentScore != nil && *r.OpponentScore < 0 {
		return fmt.Errorf("weekly result opponent score must be non-negative for %s", r.Team)
	}
	if r.StarterProjection != nil && *r.StarterProjection < 0 {
		return fmt.Errorf("weekly result starter projection must be non-negative for %s", r.Team)
	}

	return nil
}

// Margin is score minus opponent score; ok is false when the opponent side
// has no posted score yet.
func (r WeeklyResult) Margin() (float64, bool) {
	if r.OpponentScore == nil {
		return 0, false
	}
	return r.Score - *r.OpponentScore, true
}

// Overperformance is score minus starter projection; ok is false when no
// starter projection was recorded.
func (r WeeklyResult) Overperformance() (float64, bool) {
	if r.StarterProjection == nil {
		return 0, false
	}
	return r.Score - *r.StarterProjection, true
}
