package division

import (
	"testing"

	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/team"
)

func TestMetaValidate(t *testing.T) {
	valid := Meta{Name: "East", CurrentWeek: 7, RegularSeasonLength: 14, PlayoffRoundCount: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Meta)
	}{
		{"missing name", func(m *Meta) { m.Name = "" }},
		{"zero week", func(m *Meta) { m.CurrentWeek = 0 }},
		{"zero season length", func(m *Meta) { m.RegularSeasonLength = 0 }},
		{"negative playoff rounds", func(m *Meta) { m.PlayoffRoundCount = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := valid
			tc.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDataValidate_WrapsDivisionName(t *testing.T) {
	data := Data{
		Meta:  Meta{Name: "East", CurrentWeek: 7, RegularSeasonLength: 14},
		Games: []game.Result{{Team: "A", Opponent: "B", Score: -1, OpponentScore: 0, Week: 1, Division: "East"}},
	}

	err := data.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); got[:13] != "division East" {
		t.Fatalf("error should name the division: %q", got)
	}
}

func TestCombinePreservesOrder(t *testing.T) {
	divisions := []Data{
		{
			Meta:  Meta{Name: "East", CurrentWeek: 7, RegularSeasonLength: 14},
			Teams: []team.Stats{{Name: "E1", Division: "East"}, {Name: "E2", Division: "East"}},
		},
		{
			Meta:  Meta{Name: "West", CurrentWeek: 7, RegularSeasonLength: 14},
			Teams: []team.Stats{{Name: "W1", Division: "West"}},
		},
	}

	combined := Combine(divisions)

	want := []string{"E1", "E2", "W1"}
	if len(combined.Teams) != len(want) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(combined.Teams), len(want))
	}
	for i, name := range want {
		if combined.Teams[i].Name != name {
			t.Fatalf("team %d: got=%s want=%s", i, combined.Teams[i].Name, name)
		}
	}
}
