package playoff

import "fmt"

// Phase is the global league state the detector resolves.
type Phase string

const (
	PhaseRegularSeason    Phase = "regular_season"
	PhaseSemifinal        Phase = "semifinal"
	PhaseFinal            Phase = "final"
	PhaseChampionshipWeek Phase = "championship_week"
	PhaseComplete         Phase = "complete"
)

type Round string

const (
	RoundSemifinal Round = "semifinal"
	RoundFinal     Round = "final"
)

// PhaseReport is the detector's output: one phase and one effective week
// shared by every division under analysis.
type PhaseReport struct {
	Phase Phase
	Week  int
}

// Matchup is a seeded pairing for a playoff round. Scores are nil until the
// game is played; Winner stays empty while the matchup is undecided.
type Matchup struct {
	HomeTeam  string
	AwayTeam  string
	HomeSeed  int
	AwaySeed  int
	HomeScore *float64
	AwayScore *float64
	Winner    string
}

func (m Matchup) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("matchup requires two teams")
	}
	if m.HomeSeed <= 0 || m.AwaySeed <= 0 {
		return fmt.Errorf("matchup seeds must be greater than zero for %s vs %s", m.HomeTeam, m.AwayTeam)
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return fmt.Errorf("matchup home score must be non-negative for %s", m.HomeTeam)
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return fmt.Errorf("matchup away score must be non-negative for %s", m.AwayTeam)
	}

	return nil
}

func (m Matchup) Decided() bool {
	return m.Winner != ""
}

// Bracket is one division's winners-path bracket for a single round.
type Bracket struct {
	Division string
	Round    Round
	Matchups []Matchup
}

// GameStatus classifies a championship-week starter's game from posted
// points and projection alone. The provider exposes no live game state for
// this round, so the classification is an approximation: once any points
// post, in-progress and final are indistinguishable.
type GameStatus string

const (
	GameStatusFinal      GameStatus = "final"
	GameStatusNotStarted GameStatus = "not_started"
)

// RosterEntry is one starter's line for the championship week.
type RosterEntry struct {
	PlayerName string
	Points     float64
	Projection float64
	SlotID     int
}

func (e RosterEntry) Validate() error {
	if e.PlayerName == "" {
		return fmt.Errorf("roster entry player name is required")
	}
	if e.Projection < 0 {
		return fmt.Errorf("roster entry projection must be non-negative for %s", e.PlayerName)
	}

	return nil
}

// Status applies the points/projection heuristic: zero points with a positive
// projection means the game has not started; anything else counts as final
// (either points have posted or a zero projection ruled the player out).
func (e RosterEntry) Status() GameStatus {
	if e.Points == 0 && e.Projection > 0 {
		return GameStatusNotStarted
	}
	return GameStatusFinal
}

// Entry is one division winner's synthesized championship-week line.
type Entry struct {
	Team           string
	Division       string
	Score          float64
	ProjectedScore float64
	Rank           int
	StartersTotal  int
	StartersFinal  int
}

// CompletionPct is the share of this entry's starters classified final.
func (e Entry) CompletionPct() float64 {
	if e.StartersTotal == 0 {
		return 0
	}
	return float64(e.StartersFinal) / float64(e.StartersTotal)
}

// Leaderboard ranks division winners by synthesized championship score,
// descending, ties broken by division name then team name ascending. The top
// entry is the overall champion.
type Leaderboard struct {
	Week    int
	Entries []Entry
}

func (l Leaderboard) Champion() (Entry, bool) {
	if len(l.Entries) == 0 {
		return Entry{}, false
	}
	return l.Entries[0], true
}

// CompletionPct aggregates starter completion across all entries.
func (l Leaderboard) CompletionPct() float64 {
	total := 0
	final := 0
	for _, e := range l.Entries {
		total += e.StartersTotal
		final += e.StartersFinal
	}
	if total == 0 {
		return 0
	}
	return float64(final) / float64(total)
}
