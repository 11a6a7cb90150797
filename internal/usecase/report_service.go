package usecase

import (
	"context"
	"fmt"

	"github.com/ffl-tools/trophyline/internal/domain/challenge"
	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/platform/logging"
)

// Report is the stable result shape every renderer consumes: one phase, one
// week, and whichever result collections that phase produces.
type Report struct {
	Phase            playoff.Phase
	Week             int
	SeasonChallenges []challenge.Result
	WeeklyChallenges []challenge.Weekly
	Brackets         []playoff.Bracket
	Leaderboard      *playoff.Leaderboard
}

// ReportService routes a fully-fetched dataset through the calculators the
// current phase calls for.
type ReportService struct {
	fetch        *FetchService
	phase        *PhaseService
	season       *SeasonChallengeService
	weekly       *WeeklyChallengeService
	bracket      *BracketService
	championship *ChampionshipService
	logger       *logging.Logger
}

func NewReportService(
	fetch *FetchService,
	phase *PhaseService,
	season *SeasonChallengeService,
	weekly *WeeklyChallengeService,
	bracket *BracketService,
	championship *ChampionshipService,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{
		fetch:        fetch,
		phase:        phase,
		season:       season,
		weekly:       weekly,
		bracket:      bracket,
		championship: championship,
		logger:       logger,
	}
}

func (s *ReportService) Build(ctx context.Context, seasonYear int, refs []DivisionRef) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Build")
	defer span.End()

	divisions, err := s.fetch.FetchAll(ctx, seasonYear, refs)
	if err != nil {
		return Report{}, err
	}

	metas := make([]division.Meta, 0, len(divisions))
	for _, d := range divisions {
		metas = append(metas, d.Meta)
	}
	phaseReport, err := s.phase.Detect(ctx, metas)
	if err != nil {
		return Report{}, err
	}
	s.logger.InfoContext(ctx, "phase detected", "phase", phaseReport.Phase, "week", phaseReport.Week)

	report := Report{Phase: phaseReport.Phase, Week: phaseReport.Week}

	report.SeasonChallenges, err = s.season.Calculate(ctx, divisions)
	if err != nil {
		return Report{}, err
	}

	switch phaseReport.Phase {
	case playoff.PhaseRegularSeason, playoff.PhaseSemifinal, playoff.PhaseFinal:
		combined := division.Combine(divisions)
		// Weekly datasets are keyed on the provider's nominal current week,
		// which sits one ahead of the effective phase week at the playoff
		// boundary; the awards carry the week their data came from.
		report.WeeklyChallenges, err = s.weekly.Calculate(ctx, combined.WeeklyGames, combined.WeeklyPlayers, divisions[0].Meta.CurrentWeek)
		if err != nil {
			return Report{}, err
		}
	}

	switch phaseReport.Phase {
	case playoff.PhaseSemifinal:
		report.Brackets, err = s.buildBrackets(ctx, playoff.RoundSemifinal, divisions)
	case playoff.PhaseFinal:
		report.Brackets, err = s.buildBrackets(ctx, playoff.RoundFinal, divisions)
	case playoff.PhaseChampionshipWeek, playoff.PhaseComplete:
		report.Leaderboard, err = s.buildLeaderboard(ctx, seasonYear, refs, divisions, phaseReport)
	}
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

func (s *ReportService) buildBrackets(ctx context.Context, round playoff.Round, divisions []division.Data) ([]playoff.Bracket, error) {
	out := make([]playoff.Bracket, 0, len(divisions))
	for _, d := range divisions {
		bracket, err := s.bracket.Build(ctx, round, d)
		if err != nil {
			return nil, err
		}
		out = append(out, bracket)
	}
	return out, nil
}

func (s *ReportService) buildLeaderboard(
	ctx context.Context,
	seasonYear int,
	refs []DivisionRef,
	divisions []division.Data,
	phaseReport playoff.PhaseReport,
) (*playoff.Leaderboard, error) {
	week := phaseReport.Week
	if phaseReport.Phase == playoff.PhaseComplete {
		// A completed league keeps advancing its week pointer; pin the
		// leaderboard to the championship week itself.
		week = divisions[0].Meta.RegularSeasonLength + 3
	}

	entrants, err := s.fetch.FetchChampionshipEntrants(ctx, seasonYear, refs, week)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.championship.Resolve(ctx, entrants, week)
	if err != nil {
		return nil, fmt.Errorf("resolve championship leaderboard: %w", err)
	}
	return &leaderboard, nil
}
