package espn

import (
	"fmt"
	"strings"

	"github.com/ffl-tools/trophyline/internal/domain/division"
	"github.com/ffl-tools/trophyline/internal/domain/game"
	"github.com/ffl-tools/trophyline/internal/domain/player"
	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/domain/team"
	"github.com/ffl-tools/trophyline/internal/usecase"
)

// positionByDefaultID translates ESPN default position IDs into lineup slot
// categories. IDs outside the map (IDP, punters) carry no weekly award and
// are skipped.
var positionByDefaultID = map[int]player.Position{
	1:  player.PositionQuarterback,
	2:  player.PositionRunningBack,
	3:  player.PositionWideReceiver,
	4:  player.PositionTightEnd,
	5:  player.PositionKicker,
	16: player.PositionDefense,
}

// mapDivision translates one league snapshot into the engine's division
// dataset. Every record is validated here so the calculators never see
// loosely-typed provider data.
func mapDivision(name string, resp leagueResponse) (division.Data, error) {
	if strings.TrimSpace(name) == "" {
		name = resp.Settings.Name
	}
	if strings.TrimSpace(name) == "" {
		return division.Data{}, fmt.Errorf("division name is required for league %d", resp.ID)
	}

	currentWeek := resp.Status.CurrentMatchupPeriod
	scored, scheduled := countCurrentWeek(resp.Schedule, currentWeek)

	data := division.Data{
		Meta: division.Meta{
			Name:                name,
			CurrentWeek:         currentWeek,
			RegularSeasonLength: resp.Settings.ScheduleSettings.MatchupPeriodCount,
			PlayoffRoundCount:   playoffRounds(resp.Settings.ScheduleSettings.PlayoffTeamCount),
			ScoredGames:         scored,
			ScheduledGames:      scheduled,
		},
	}

	names := teamNames(resp)
	owners := ownerNames(resp)

	for _, t := range resp.Teams {
		data.Teams = append(data.Teams, team.Stats{
			Name:          names[t.ID],
			Owner:         owners[t.ID],
			Division:      name,
			Wins:          t.Record.Overall.Wins,
			Losses:        t.Record.Overall.Losses,
			Ties:          t.Record.Overall.Ties,
			PointsFor:     t.Record.Overall.PointsFor,
			PointsAgainst: t.Record.Overall.PointsAgainst,
		})
	}

	for _, m := range resp.Schedule {
		week := matchupWeek(m)
		if m.Home.TeamID == 0 || m.Away.TeamID == 0 {
			continue
		}
		if week < currentWeek && matchupDecided(m) {
			data.Games = append(data.Games,
				sideResult(m.Home, m.Away, week, name, names),
				sideResult(m.Away, m.Home, week, name, names),
			)
			continue
		}
		if week == currentWeek {
			decided := matchupDecided(m)
			data.WeeklyGames = append(data.WeeklyGames,
				weeklySideResult(m.Home, m.Away, decided, week, name, names, resp.ScoringPeriodID),
				weeklySideResult(m.Away, m.Home, decided, week, name, names, resp.ScoringPeriodID),
			)
			data.WeeklyPlayers = append(data.WeeklyPlayers, sideStarters(m.Home, name, names, resp.ScoringPeriodID)...)
			data.WeeklyPlayers = append(data.WeeklyPlayers, sideStarters(m.Away, name, names, resp.ScoringPeriodID)...)
		}
	}

	if err := data.Validate(); err != nil {
		return division.Data{}, fmt.Errorf("map league %d: %w", resp.ID, err)
	}
	return data, nil
}

// mapChampionshipEntrant extracts a division's champion and its
// championship-week starters from the full-roster view. The champion is the
// decided winners-bracket final when one exists, otherwise the top playoff
// seed.
func mapChampionshipEntrant(name string, resp leagueResponse, week int) (usecase.ChampionshipEntrant, error) {
	names := teamNames(resp)

	championID := winnersBracketChampion(resp)
	if championID == 0 {
		for _, t := range resp.Teams {
			if t.PlayoffSeed == 1 {
				championID = t.ID
				break
			}
		}
	}
	if championID == 0 {
		return usecase.ChampionshipEntrant{}, fmt.Errorf("no champion resolvable for league %d", resp.ID)
	}

	var roster teamRoster
	for _, t := range resp.Teams {
		if t.ID == championID {
			roster = t.Roster
			break
		}
	}

	starters := make([]playoff.RosterEntry, 0, len(roster.Entries))
	for _, e := range roster.Entries {
		if !isStarterSlot(e.LineupSlotID) {
			continue
		}
		starters = append(starters, playoff.RosterEntry{
			PlayerName: e.PlayerPoolEntry.Player.FullName,
			Points:     appliedTotal(e.PlayerPoolEntry.Player.Stats, statSourceActual, week),
			Projection: appliedTotal(e.PlayerPoolEntry.Player.Stats, statSourceProjected, week),
			SlotID:     e.LineupSlotID,
		})
	}

	return usecase.ChampionshipEntrant{
		Team:     names[championID],
		Division: name,
		Starters: starters,
	}, nil
}

func winnersBracketChampion(resp leagueResponse) int {
	finalWeek := resp.Settings.ScheduleSettings.MatchupPeriodCount + 2
	for _, m := range resp.Schedule {
		if matchupWeek(m) != finalWeek || m.PlayoffTierType != playoffTierWinners {
			continue
		}
		switch m.Winner {
		case winnerHome:
			return m.Home.TeamID
		case winnerAway:
			return m.Away.TeamID
		}
	}
	return 0
}

func sideResult(side, opponent matchupSide, week int, divisionName string, names map[int]string) game.Result {
	return game.Result{
		Team:          names[side.TeamID],
		Opponent:      names[opponent.TeamID],
		Score:         side.TotalPoints,
		OpponentScore: opponent.TotalPoints,
		Week:          week,
		Division:      divisionName,
	}
}

// weeklySideResult leaves the opponent score unset until the matchup is
// decided: a live opponent total reads downstream as a posted margin and
// would let an in-progress blowout claim a win-based award.
func weeklySideResult(side, opponent matchupSide, decided bool, week int, divisionName string, names map[int]string, scoringPeriod int) game.WeeklyResult {
	out := game.WeeklyResult{
		Team:           names[side.TeamID],
		Opponent:       names[opponent.TeamID],
		Score:          sideScore(side),
		LiveProjection: side.TotalProjectedPointsLive,
		Week:           week,
		Division:       divisionName,
	}
	if decided {
		opponentScore := sideScore(opponent)
		out.OpponentScore = &opponentScore
	}
	if projection, ok := starterProjection(side.RosterForCurrentScoringPeriod.Entries, scoringPeriod); ok {
		out.StarterProjection = &projection
	}
	return out
}

// sideScore prefers live points: the provider keeps totalPoints at the last
// finalized value while games are in progress.
func sideScore(side matchupSide) float64 {
	if side.TotalPointsLive > 0 {
		return side.TotalPointsLive
	}
	return side.TotalPoints
}

// starterProjection sums starters' pre-game projections. Unlike the
// provider's live projection this does not drift during play, which is what
// makes it usable for expectation analysis. ok is false when no starter has
// a projection at all.
func starterProjection(entries []rosterEntry, scoringPeriod int) (float64, bool) {
	total := 0.0
	found := false
	for _, e := range entries {
		if !isStarterSlot(e.LineupSlotID) {
			continue
		}
		for _, s := range e.PlayerPoolEntry.Player.Stats {
			if s.StatSourceID == statSourceProjected && s.ScoringPeriodID == scoringPeriod {
				total += s.AppliedTotal
				found = true
				break
			}
		}
	}
	return total, found
}

func sideStarters(side matchupSide, divisionName string, names map[int]string, scoringPeriod int) []player.WeeklyStats {
	out := make([]player.WeeklyStats, 0, len(side.RosterForCurrentScoringPeriod.Entries))
	for _, e := range side.RosterForCurrentScoringPeriod.Entries {
		if !isStarterSlot(e.LineupSlotID) {
			continue
		}
		position, ok := positionByDefaultID[e.PlayerPoolEntry.Player.DefaultPositionID]
		if !ok {
			continue
		}
		out = append(out, player.WeeklyStats{
			Name:     e.PlayerPoolEntry.Player.FullName,
			Position: position,
			Points:   appliedTotal(e.PlayerPoolEntry.Player.Stats, statSourceActual, scoringPeriod),
			Team:     names[side.TeamID],
			Division: divisionName,
		})
	}
	return out
}

func appliedTotal(stats []statLine, source, scoringPeriod int) float64 {
	for _, s := range stats {
		if s.StatSourceID == source && s.ScoringPeriodID == scoringPeriod {
			return s.AppliedTotal
		}
	}
	return 0
}

func countCurrentWeek(schedule []matchupPeriod, week int) (scored, scheduled int) {
	for _, m := range schedule {
		if matchupWeek(m) != week {
			continue
		}
		scheduled++
		if matchupDecided(m) {
			scored++
		}
	}
	return scored, scheduled
}

func matchupWeek(m matchupPeriod) int {
	return m.MatchupPeriodID
}

func matchupDecided(m matchupPeriod) bool {
	return m.Winner != "" && m.Winner != winnerUndecided
}

func teamNames(resp leagueResponse) map[int]string {
	out := make(map[int]string, len(resp.Teams))
	for _, t := range resp.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			name = t.Abbrev
		}
		out[t.ID] = name
	}
	return out
}

func ownerNames(resp leagueResponse) map[int]string {
	byMember := make(map[string]string, len(resp.Members))
	for _, m := range resp.Members {
		display := strings.TrimSpace(m.DisplayName)
		if display == "" {
			display = strings.TrimSpace(m.FirstName + " " + m.LastName)
		}
		byMember[m.ID] = display
	}

	out := make(map[int]string, len(resp.Teams))
	for _, t := range resp.Teams {
		if len(t.Owners) > 0 {
			out[t.ID] = byMember[t.Owners[0]]
		}
	}
	return out
}

func playoffRounds(playoffTeamCount int) int {
	rounds := 0
	for n := playoffTeamCount; n > 1; n /= 2 {
		rounds++
	}
	return rounds
}
