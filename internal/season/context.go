// Package season holds the immutable per-manager season data every analyzer
// reads, plus the loader that builds it from the raw JSON store.
package season

import "time"

// Position is the FPL element_type: 1=GK 2=DEF 3=MID 4=FWD.
type Position int

const (
	GK  Position = 1
	DEF Position = 2
	MID Position = 3
	FWD Position = 4
)

func (p Position) String() string {
	switch p {
	case GK:
		return "GK"
	case DEF:
		return "DEF"
	case MID:
		return "MID"
	case FWD:
		return "FWD"
	default:
		return "UNK"
	}
}

// ChipName uses the API's chip identifiers.
type ChipName string

const (
	BenchBoost    ChipName = "bboost"
	TripleCaptain ChipName = "3xc"
	FreeHit       ChipName = "freehit"
	Wildcard      ChipName = "wildcard"
)

// Chips is the fixed reporting order.
var Chips = []ChipName{BenchBoost, TripleCaptain, FreeHit, Wildcard}

func (c ChipName) Label() string {
	switch c {
	case BenchBoost:
		return "Bench Boost"
	case TripleCaptain:
		return "Triple Captain"
	case FreeHit:
		return "Free Hit"
	case Wildcard:
		return "Wildcard"
	default:
		return string(c)
	}
}

// MaxStarterPosition is the last starting slot; 12..15 are the bench.
const MaxStarterPosition = 11

type Player struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Position     Position `json:"position"`
	TeamID       int      `json:"team_id"`
	TeamShort    string   `json:"team_short"`
	OwnershipPct float64  `json:"ownership_pct"`
}

type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

func (p Pick) Starter() bool { return p.Position >= 1 && p.Position <= MaxStarterPosition }

type LiveStats struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
}

type Transfer struct {
	ElementIn      int       `json:"element_in"`
	ElementInCost  int       `json:"element_in_cost"`
	ElementOut     int       `json:"element_out"`
	ElementOutCost int       `json:"element_out_cost"`
	Event          int       `json:"event"`
	Time           time.Time `json:"time"`
}

type ChipPlay struct {
	Name  ChipName  `json:"name"`
	Event int       `json:"event"`
	Time  time.Time `json:"time"`
}

type GameweekHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type Event struct {
	ID            int              `json:"id"`
	Deadline      time.Time        `json:"deadline_time"`
	AverageScore  int              `json:"average_entry_score"`
	HighestScore  int              `json:"highest_score"`
	MostCaptained int              `json:"most_captained"`
	Finished      bool             `json:"finished"`
	ChipPlays     map[ChipName]int `json:"chip_plays"`
}

// Context is one manager's fully resolved season. It is never mutated after
// the loader returns it.
type Context struct {
	EntryID      int
	EntryName    string
	ManagerName  string
	TotalPlayers int

	Finished  []int
	Picks     map[int][]Pick
	Live      map[int]map[int]LiveStats
	Transfers []Transfer
	Chips     []ChipPlay
	History   map[int]GameweekHistory
	Events    map[int]Event
	Players   map[int]Player
}

// Windowed returns c restricted to its finished gameweeks: transfers and
// chips logged for any other gameweek are dropped. c itself is returned when
// nothing falls outside the window, otherwise a shallow copy.
func (c *Context) Windowed() *Context {
	done := make(map[int]bool, len(c.Finished))
	for _, gw := range c.Finished {
		done[gw] = true
	}

	transfers := make([]Transfer, 0, len(c.Transfers))
	for _, t := range c.Transfers {
		if done[t.Event] {
			transfers = append(transfers, t)
		}
	}
	chips := make([]ChipPlay, 0, len(c.Chips))
	for _, ch := range c.Chips {
		if done[ch.Event] {
			chips = append(chips, ch)
		}
	}
	if len(transfers) == len(c.Transfers) && len(chips) == len(c.Chips) {
		return c
	}

	out := *c
	out.Transfers = transfers
	out.Chips = chips
	return &out
}

// ChipEvent returns the gameweek a chip was played in, or 0.
func (c *Context) ChipEvent(name ChipName) int {
	for _, ch := range c.Chips {
		if ch.Name == name {
			return ch.Event
		}
	}
	return 0
}

// ChipAt returns the chip played in gw, if any.
func (c *Context) ChipAt(gw int) (ChipName, bool) {
	for _, ch := range c.Chips {
		if ch.Event == gw {
			return ch.Name, true
		}
	}
	return "", false
}

// FinalHistory is the history row of the last finished gameweek.
func (c *Context) FinalHistory() (GameweekHistory, bool) {
	for i := len(c.Finished) - 1; i >= 0; i-- {
		if h, ok := c.History[c.Finished[i]]; ok {
			return h, true
		}
	}
	return GameweekHistory{}, false
}
