package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ffl-tools/trophyline/internal/platform/logging"
	"github.com/ffl-tools/trophyline/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

var errProviderUnavailable = crerr.New("fantasy provider unavailable")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	SWID           string
	ESPNS2         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is a read-only client for the ESPN fantasy football v3 API. It
// never retries; a failed fetch surfaces to the caller before any
// calculation starts.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	swid           string
	espnS2         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		swid:           strings.TrimSpace(cfg.SWID),
		espnS2:         strings.TrimSpace(cfg.ESPNS2),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeague pulls one league's full snapshot for a season: teams, members,
// settings, current-period matchups, and rosters. The views are fetched as
// parallel requests and merged, since asking for every view at once makes
// the provider trim roster stat splits.
func (c *Client) FetchLeague(ctx context.Context, seasonYear int, leagueID int64) (leagueResponse, error) {
	if seasonYear <= 0 {
		return leagueResponse{}, fmt.Errorf("season year must be greater than zero")
	}
	if leagueID <= 0 {
		return leagueResponse{}, fmt.Errorf("league id must be greater than zero")
	}

	key := fmt.Sprintf("league:%d:%d", seasonYear, leagueID)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		return c.fetchLeagueViews(ctx, seasonYear, leagueID)
	})
	if err != nil {
		return leagueResponse{}, err
	}
	return out.(leagueResponse), nil
}

func (c *Client) fetchLeagueViews(ctx context.Context, seasonYear int, leagueID int64) (leagueResponse, error) {
	path := fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", seasonYear, leagueID)

	var core, matchups, rosters leagueResponse
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, path, url.Values{"view": {"mTeam", "mSettings"}}, &core)
	})
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, path, url.Values{"view": {"mMatchupScore", "mMatchup"}}, &matchups)
	})
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, path, url.Values{"view": {"mRoster"}}, &rosters)
	})
	if err := p.Wait(); err != nil {
		return leagueResponse{}, fmt.Errorf("fetch league views league_id=%d: %w", leagueID, err)
	}

	core.Schedule = matchups.Schedule
	rosterByTeam := make(map[int]teamRoster, len(rosters.Teams))
	for _, t := range rosters.Teams {
		rosterByTeam[t.ID] = t.Roster
	}
	for idx := range core.Teams {
		core.Teams[idx].Roster = rosterByTeam[core.Teams[idx].ID]
	}

	return core, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return crerr.Wrap(errProviderUnavailable, err.Error())
		}
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.swid != "" && c.espnS2 != "" {
		req.Header.Set("Cookie", fmt.Sprintf("SWID=%s; espn_s2=%s", c.swid, c.espnS2))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return crerr.Wrapf(errProviderUnavailable, "request %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return crerr.Wrapf(errProviderUnavailable, "read response %s: %v", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			c.recordFailure()
			return crerr.Wrapf(errProviderUnavailable, "status %d from %s", resp.StatusCode, path)
		}
		c.recordSuccess()
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		c.recordSuccess()
		return fmt.Errorf("decode response %s: %w", path, err)
	}

	c.recordSuccess()
	return nil
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}
