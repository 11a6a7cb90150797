package team

import "fmt"

// Stats is one team's cumulative regular-season record.
type Stats struct {
	Name          string
	Owner         string
	Division      string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
}

func (s Stats) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if s.Division == "" {
		return fmt.Errorf("team division is required for %s", s.Name)
	}
	if s.Wins < 0 || s.Losses < 0 || s.Ties < 0 {
		return fmt.Errorf("team record must be non-negative for %s", s.Name)
	}
	if s.PointsFor < 0 {
		return fmt.Errorf("team points for must be non-negative for %s", s.Name)
	}
	if s.PointsAgainst < 0 {
		return fmt.Errorf("team points against must be non-negative for %s", s.Name)
	}

	return nil
}
