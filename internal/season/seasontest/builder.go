// Package seasontest builds season.Context values for tests.
package seasontest

import (
	"sort"
	"time"

	"fpl-season-mcp/internal/season"
)

// BaseDeadline is the GW1 deadline; GWn is (n-1) weeks later.
var BaseDeadline = time.Date(2024, time.August, 16, 17, 30, 0, 0, time.UTC)

func Deadline(gw int) time.Time {
	return BaseDeadline.Add(time.Duration(gw-1) * 7 * 24 * time.Hour)
}

type Builder struct {
	c *season.Context
}

func New() *Builder {
	return &Builder{c: &season.Context{
		EntryID:      1,
		EntryName:    "Test XI",
		ManagerName:  "Test Manager",
		TotalPlayers: 10_000_000,
		Picks:        map[int][]season.Pick{},
		Live:         map[int]map[int]season.LiveStats{},
		History:      map[int]season.GameweekHistory{},
		Events:       map[int]season.Event{},
		Players:      map[int]season.Player{},
	}}
}

func (b *Builder) Player(id int, name string, pos season.Position, ownership float64) *Builder {
	b.c.Players[id] = season.Player{ID: id, Name: name, Position: pos, OwnershipPct: ownership}
	return b
}

// Gameweek marks gw finished and records its history row and event meta.
func (b *Builder) Gameweek(gw int, h season.GameweekHistory, ev season.Event) *Builder {
	h.Event = gw
	b.c.History[gw] = h
	ev.ID = gw
	ev.Finished = true
	if ev.Deadline.IsZero() {
		ev.Deadline = Deadline(gw)
	}
	b.c.Events[gw] = ev
	b.finish(gw)
	return b
}

// Squad sets gw's 15 picks in slot order; the captain gets multiplier 2 and
// bench slots 12..15 get multiplier 0.
func (b *Builder) Squad(gw int, captain int, elements ...int) *Builder {
	picks := make([]season.Pick, 0, len(elements))
	for i, el := range elements {
		pos := i + 1
		mult := 1
		if pos > season.MaxStarterPosition {
			mult = 0
		}
		p := season.Pick{Element: el, Position: pos, Multiplier: mult}
		if el == captain {
			p.IsCaptain = true
			p.Multiplier = 2
		}
		picks = append(picks, p)
	}
	b.c.Picks[gw] = picks
	b.finish(gw)
	return b
}

// Multiplier overrides the multiplier of element in gw.
func (b *Builder) Multiplier(gw, element, mult int) *Builder {
	for i := range b.c.Picks[gw] {
		if b.c.Picks[gw][i].Element == element {
			b.c.Picks[gw][i].Multiplier = mult
		}
	}
	return b
}

func (b *Builder) Score(gw, element, points int) *Builder {
	if b.c.Live[gw] == nil {
		b.c.Live[gw] = map[int]season.LiveStats{}
	}
	b.c.Live[gw][element] = season.LiveStats{Minutes: 90, TotalPoints: points}
	return b
}

// Scores assigns points to elements in squad slot order.
func (b *Builder) Scores(gw int, elements []int, points []int) *Builder {
	for i, el := range elements {
		if i < len(points) {
			b.Score(gw, el, points[i])
		}
	}
	return b
}

func (b *Builder) Transfer(gw, in, out int, at time.Time) *Builder {
	if at.IsZero() {
		at = Deadline(gw).Add(-48 * time.Hour)
	}
	b.c.Transfers = append(b.c.Transfers, season.Transfer{ElementIn: in, ElementOut: out, Event: gw, Time: at})
	return b
}

func (b *Builder) Chip(name season.ChipName, gw int) *Builder {
	b.c.Chips = append(b.c.Chips, season.ChipPlay{Name: name, Event: gw, Time: Deadline(gw).Add(-time.Hour)})
	return b
}

func (b *Builder) finish(gw int) {
	for _, g := range b.c.Finished {
		if g == gw {
			return
		}
	}
	b.c.Finished = append(b.c.Finished, gw)
	sort.Ints(b.c.Finished)
}

func (b *Builder) Build() *season.Context {
	sort.SliceStable(b.c.Transfers, func(i, j int) bool {
		return b.c.Transfers[i].Event < b.c.Transfers[j].Event
	})
	sort.Slice(b.c.Chips, func(i, j int) bool { return b.c.Chips[i].Event < b.c.Chips[j].Event })
	return b.c
}

// Range returns ids lo..lo+n-1, handy for 15-man squads.
func Range(lo, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + i
	}
	return out
}
