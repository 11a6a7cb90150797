package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ffl-tools/trophyline/internal/domain/playoff"
)

func TestChampionshipService_Resolve(t *testing.T) {
	svc := NewChampionshipService()

	entrants := []ChampionshipEntrant{
		{
			Team:     "East Champ",
			Division: "East",
			Starters: []playoff.RosterEntry{
				{PlayerName: "Starter One", Points: 22.68, Projection: 20.0},
				{PlayerName: "Starter Two", Points: 0, Projection: 0},
			},
		},
		{
			Team:     "West Champ",
			Division: "West",
			Starters: []playoff.RosterEntry{
				{PlayerName: "Starter Three", Points: 18.4, Projection: 19.5},
				{PlayerName: "Starter Four", Points: 0, Projection: 12.0},
			},
		},
	}

	board, err := svc.Resolve(context.Background(), entrants, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Week != 17 {
		t.Fatalf("unexpected week: got=%d want=17", board.Week)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("unexpected entry count: got=%d want=2", len(board.Entries))
	}

	east := board.Entries[0]
	if east.Team != "East Champ" || east.Rank != 1 {
		t.Fatalf("unexpected leader: %+v", east)
	}
	if east.Score != 22.68 {
		t.Fatalf("unexpected score: got=%v want=22.68", east.Score)
	}
	// A zero-points, zero-projection starter still counts as final.
	if east.StartersTotal != 2 || east.StartersFinal != 2 {
		t.Fatalf("unexpected starter counts: %+v", east)
	}
	if east.CompletionPct() != 1.0 {
		t.Fatalf("unexpected completion: got=%v want=1.0", east.CompletionPct())
	}

	west := board.Entries[1]
	if west.Rank != 2 || west.StartersFinal != 1 {
		t.Fatalf("unexpected runner-up: %+v", west)
	}

	champ, ok := board.Champion()
	if !ok || champ.Team != "East Champ" {
		t.Fatalf("unexpected champion: ok=%v entry=%+v", ok, champ)
	}
}

func TestChampionshipService_Resolve_TieBreaks(t *testing.T) {
	svc := NewChampionshipService()

	entrants := []ChampionshipEntrant{
		{Team: "Zeta", Division: "West", Starters: []playoff.RosterEntry{{PlayerName: "P1", Points: 100}}},
		{Team: "Alpha", Division: "West", Starters: []playoff.RosterEntry{{PlayerName: "P2", Points: 100}}},
		{Team: "Anyone", Division: "East", Starters: []playoff.RosterEntry{{PlayerName: "P3", Points: 100}}},
	}

	board, err := svc.Resolve(context.Background(), entrants, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equal scores order by division name, then team name.
	want := []string{"Anyone", "Alpha", "Zeta"}
	for i, name := range want {
		if board.Entries[i].Team != name {
			t.Fatalf("entry %d: got=%s want=%s", i, board.Entries[i].Team, name)
		}
		if board.Entries[i].Rank != i+1 {
			t.Fatalf("entry %d: unexpected rank %d", i, board.Entries[i].Rank)
		}
	}
}

func TestChampionshipService_Resolve_Errors(t *testing.T) {
	svc := NewChampionshipService()

	valid := ChampionshipEntrant{
		Team:     "East Champ",
		Division: "East",
		Starters: []playoff.RosterEntry{{PlayerName: "P1", Points: 10}},
	}

	t.Run("invalid week", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), []ChampionshipEntrant{valid}, 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no entrants", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), nil, 17)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("entrant without starters", func(t *testing.T) {
		entrant := valid
		entrant.Starters = nil
		_, err := svc.Resolve(context.Background(), []ChampionshipEntrant{entrant}, 17)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("entrant without division", func(t *testing.T) {
		entrant := valid
		entrant.Division = ""
		_, err := svc.Resolve(context.Background(), []ChampionshipEntrant{entrant}, 17)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRosterEntryStatus(t *testing.T) {
	cases := []struct {
		name  string
		entry playoff.RosterEntry
		want  playoff.GameStatus
	}{
		{"points posted", playoff.RosterEntry{PlayerName: "P", Points: 22.68, Projection: 20.0}, playoff.GameStatusFinal},
		{"zero points zero projection", playoff.RosterEntry{PlayerName: "P", Points: 0, Projection: 0}, playoff.GameStatusFinal},
		{"zero points positive projection", playoff.RosterEntry{PlayerName: "P", Points: 0, Projection: 11.5}, playoff.GameStatusNotStarted},
		{"negative points", playoff.RosterEntry{PlayerName: "P", Points: -1.2, Projection: 4.0}, playoff.GameStatusFinal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.Status(); got != tc.want {
				t.Fatalf("unexpected status: got=%s want=%s", got, tc.want)
			}
		})
	}
}
