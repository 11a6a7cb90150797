package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/platform/cache"
	"github.com/ffl-tools/trophyline/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

// DivisionProvider supplies already-validated division datasets from the
// fantasy data provider. Implementations own transport concerns; the engine
// never issues network calls itself.
type DivisionProvider interface {
	FetchDivision(ctx context.Context, name string, seasonYear int, leagueID int64) (division.Data, error)
	FetchChampionshipEntrant(ctx context.Context, name string, seasonYear int, leagueID int64, week int) (ChampionshipEntrant, error)
}

// DivisionRef identifies one configured division to fetch.
type DivisionRef struct {
	Name     string
	LeagueID int64
}

const defaultFetchWorkers = 4

// FetchService materializes every configured division before any
// calculation runs. Fetches run concurrently, one worker per division at
// most, and the invocation is all-or-nothing: a single failure aborts it, so
// partial-division calculation can never happen.
type FetchService struct {
	provider   DivisionProvider
	store      *cache.Store[division.Data]
	logger     *logging.Logger
	maxWorkers int
}

func NewFetchService(provider DivisionProvider, cacheTTL time.Duration, logger *logging.Logger) *FetchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchService{
		provider:   provider,
		store:      cache.NewStore[division.Data](cacheTTL),
		logger:     logger,
		maxWorkers: defaultFetchWorkers,
	}
}

func (s *FetchService) FetchAll(ctx context.Context, seasonYear int, refs []DivisionRef) ([]division.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchAll")
	defer span.End()

	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year must be greater than zero", ErrInvalidInput)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no divisions configured", ErrInsufficientData)
	}
	for _, ref := range refs {
		if ref.Name == "" || ref.LeagueID <= 0 {
			return nil, fmt.Errorf("%w: division ref needs a name and a positive league id", ErrInvalidInput)
		}
	}

	workerCount := s.maxWorkers
	if workerCount > len(refs) {
		workerCount = len(refs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create fetch worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]division.Data, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup

	for idx, ref := range refs {
		idx, ref := idx, ref
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			started := time.Now()
			data, fetchErr := s.store.GetOrFetch(ctx, s.cacheKey(seasonYear, ref), func(ctx context.Context) (division.Data, error) {
				return s.provider.FetchDivision(ctx, ref.Name, seasonYear, ref.LeagueID)
			})
			if fetchErr != nil {
				errs[idx] = fmt.Errorf("fetch division %s: %w", ref.Name, fetchErr)
				return
			}
			s.logger.DebugContext(ctx, "division fetched",
				"division", ref.Name,
				"league_id", ref.LeagueID,
				"duration_ms", time.Since(started).Milliseconds(),
			)
			out[idx] = data
		})
		if submitErr != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("submit fetch for division %s: %w", ref.Name, submitErr)
		}
	}
	wg.Wait()

	for _, fetchErr := range errs {
		if fetchErr != nil {
			return nil, fetchErr
		}
	}
	return out, nil
}

// FetchChampionshipEntrants pulls every division winner's championship-week
// roster. Same all-or-nothing contract as FetchAll.
func (s *FetchService) FetchChampionshipEntrants(ctx context.Context, seasonYear int, refs []DivisionRef, week int) ([]ChampionshipEntrant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchChampionshipEntrants")
	defer span.End()

	if week <= 0 {
		return nil, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no divisions configured", ErrInsufficientData)
	}

	out := make([]ChampionshipEntrant, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup

	workerCount := s.maxWorkers
	if workerCount > len(refs) {
		workerCount = len(refs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create fetch worker pool: %w", err)
	}
	defer pool.Release()

	for idx, ref := range refs {
		idx, ref := idx, ref
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			entrant, fetchErr := s.provider.FetchChampionshipEntrant(ctx, ref.Name, seasonYear, ref.LeagueID, week)
			if fetchErr != nil {
				errs[idx] = fmt.Errorf("fetch championship entrant for %s: %w", ref.Name, fetchErr)
				return
			}
			out[idx] = entrant
		})
		if submitErr != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("submit championship fetch for %s: %w", ref.Name, submitErr)
		}
	}
	wg.Wait()

	for _, fetchErr := range errs {
		if fetchErr != nil {
			return nil, fetchErr
		}
	}
	return out, nil
}

func (s *FetchService) cacheKey(seasonYear int, ref DivisionRef) string {
	return fmt.Sprintf("division:%d:%d", seasonYear, ref.LeagueID)
}
