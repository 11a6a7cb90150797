package usecase

import (
	"context"
	"fmt"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
)

// PhaseService classifies the global league state from per-division
// metadata. Divisions under analysis must agree on phase and week; rendering
// downstream assumes one global phase, so any mismatch is terminal.
type PhaseService struct{}

func NewPhaseService() *PhaseService {
	return &PhaseService{}
}

// Detect resolves every division's effective week and phase and verifies
// they match. At the boundary into the first playoff week the detector
// prefers the most recently completed week over the nominal current week, so
// a bracket is never shown before the games seeding it are all final.
func (s *PhaseService) Detect(ctx context.Context, metas []division.Meta) (playoff.PhaseReport, error) {
	_, span := startUsecaseSpan(ctx, "usecase.PhaseService.Detect")
	defer span.End()

	if len(metas) == 0 {
		return playoff.PhaseReport{}, fmt.Errorf("%w: no division metadata provided", ErrInsufficientData)
	}

	first, err := resolveDivisionPhase(metas[0])
	if err != nil {
		return playoff.PhaseReport{}, err
	}

	for _, meta := range metas[1:] {
		got, err := resolveDivisionPhase(meta)
		if err != nil {
			return playoff.PhaseReport{}, err
		}
		if got.Week != first.Week {
			return playoff.PhaseReport{}, fmt.Errorf(
				"%w: division %s is at week %d while %s is at week %d",
				ErrDivisionSync, meta.Name, got.Week, metas[0].Name, first.Week,
			)
		}
		if got.Phase != first.Phase {
			return playoff.PhaseReport{}, fmt.Errorf(
				"%w: division %s resolved phase %s while %s resolved %s",
				ErrDivisionSync, meta.Name, got.Phase, metas[0].Name, first.Phase,
			)
		}
	}

	return first, nil
}

func resolveDivisionPhase(meta division.Meta) (playoff.PhaseReport, error) {
	if err := meta.Validate(); err != nil {
		return playoff.PhaseReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	week := effectiveWeek(meta)
	return playoff.PhaseReport{
		Phase: classifyWeek(week, meta.RegularSeasonLength),
		Week:  week,
	}, nil
}

// effectiveWeek resolves the week a division is actually in. The provider
// advances its week pointer into the first playoff week before the closing
// regular-season games are all scored; while that boundary week is still
// incomplete, the division stays on the final regular-season week. Mid-season
// live weeks keep the nominal week.
func effectiveWeek(meta division.Meta) int {
	week := meta.CurrentWeek
	if week == meta.RegularSeasonLength+1 && meta.ScheduledGames > 0 && meta.ScoredGames < meta.ScheduledGames {
		week--
	}
	return week
}

func classifyWeek(week, regularSeasonLength int) playoff.Phase {
	switch {
	case week <= regularSeasonLength:
		return playoff.PhaseRegularSeason
	case week == regularSeasonLength+1:
		return playoff.PhaseSemifinal
	case week == regularSeasonLength+2:
		return playoff.PhaseFinal
	case week == regularSeasonLength+3:
		return playoff.PhaseChampionshipWeek
	default:
		return playoff.PhaseComplete
	}
}
