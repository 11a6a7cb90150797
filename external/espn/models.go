package espn

// Wire shapes for the ESPN fantasy football v3 read API. Only the fields
// the mapper consumes are modeled; the API returns far more.

type leagueResponse struct {
	ID              int             `json:"id"`
	SeasonID        int             `json:"seasonId"`
	ScoringPeriodID int             `json:"scoringPeriodId"`
	Status          leagueStatus    `json:"status"`
	Settings        leagueSettings  `json:"settings"`
	Teams           []leagueTeam    `json:"teams"`
	Members         []leagueMember  `json:"members"`
	Schedule        []matchupPeriod `json:"schedule"`
}

type leagueStatus struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type leagueSettings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	ScheduleSettings scheduleSettings `json:"scheduleSettings"`
}

type scheduleSettings struct {
	MatchupPeriodCount int `json:"matchupPeriodCount"`
	PlayoffTeamCount   int `json:"playoffTeamCount"`
}

type leagueMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type leagueTeam struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Abbrev      string     `json:"abbrev"`
	PlayoffSeed int        `json:"playoffSeed"`
	Owners      []string   `json:"owners"`
	Record      teamRecord `json:"record"`
	Roster      teamRoster `json:"roster"`
}

type teamRecord struct {
	Overall recordDetails `json:"overall"`
}

type recordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type teamRoster struct {
	Entries []rosterEntry `json:"entries"`
}

type matchupPeriod struct {
	ID              int          `json:"id"`
	MatchupPeriodID int          `json:"matchupPeriodId"`
	Home            matchupSide  `json:"home"`
	Away            matchupSide  `json:"away"`
	Winner          string       `json:"winner"`
	PlayoffTierType string       `json:"playoffTierType"`
}

type matchupSide struct {
	TeamID                        int          `json:"teamId"`
	TotalPoints                   float64      `json:"totalPoints"`
	TotalPointsLive               float64      `json:"totalPointsLive"`
	TotalProjectedPointsLive      float64      `json:"totalProjectedPointsLive"`
	RosterForCurrentScoringPeriod periodRoster `json:"rosterForCurrentScoringPeriod"`
}

type periodRoster struct {
	Entries []rosterEntry `json:"entries"`
}

type rosterEntry struct {
	LineupSlotID    int             `json:"lineupSlotId"`
	PlayerPoolEntry playerPoolEntry `json:"playerPoolEntry"`
}

type playerPoolEntry struct {
	ID     int        `json:"id"`
	Player wirePlayer `json:"player"`
}

type wirePlayer struct {
	ID                int        `json:"id"`
	FullName          string     `json:"fullName"`
	DefaultPositionID int        `json:"defaultPositionId"`
	Stats             []statLine `json:"stats"`
}

type statLine struct {
	StatSourceID    int     `json:"statSourceId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}

const (
	statSourceActual    = 0
	statSourceProjected = 1
)

// Lineup slot IDs that do not count as starters.
const (
	slotBench          = 20
	slotInjuredReserve = 21
)

func isStarterSlot(slotID int) bool {
	return slotID != slotBench && slotID != slotInjuredReserve
}

const (
	winnerHome      = "HOME"
	winnerAway      = "AWAY"
	winnerUndecided = "UNDECIDED"
)

const playoffTierWinners = "WINNERS_BRACKET"
