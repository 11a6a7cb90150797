package espn

import (
	"context"
	"fmt"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/usecase"
)

// Provider adapts the ESPN client to the engine's division-data contract.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) FetchDivision(ctx context.Context, name string, seasonYear int, leagueID int64) (division.Data, error) {
	resp, err := p.client.FetchLeague(ctx, seasonYear, leagueID)
	if err != nil {
		return division.Data{}, fmt.Errorf("fetch division %s: %w", name, err)
	}
	return mapDivision(name, resp)
}

func (p *Provider) FetchChampionshipEntrant(ctx context.Context, name string, seasonYear int, leagueID int64, week int) (usecase.ChampionshipEntrant, error) {
	resp, err := p.client.FetchLeague(ctx, seasonYear, leagueID)
	if err != nil {
		return usecase.ChampionshipEntrant{}, fmt.Errorf("fetch championship roster for %s: %w", name, err)
	}
	return mapChampionshipEntrant(name, resp, week)
}
