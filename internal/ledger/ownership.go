// Package ledger tracks how long a manager held each player.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"fpl-season-mcp/internal/season"
)

// Span is one continuous ownership of a player, first buy to sell (or the
// last finished gameweek).
type Span struct {
	Element   int `json:"element"`
	FirstGW   int `json:"first_gw"`
	LastGW    int `json:"last_gw"`
	Gameweeks int `json:"gameweeks"`
}

// Length counts gameweeks from FirstGW to LastGW inclusive.
func (s Span) Length() int { return s.LastGW - s.FirstGW + 1 }

// Ledger is an arena of spans with a per-player index into it.
type Ledger struct {
	EntryID int    `json:"entry_id"`
	Spans   []Span `json:"spans"`

	byElement map[int][]int
}

// Build walks finished gameweeks in order. Free Hit squads are temporary and
// gameweeks without picks carry no information, so both are passed over
// without opening or closing spans.
func Build(c *season.Context) *Ledger {
	fh := c.ChipEvent(season.FreeHit)
	open := make(map[int]int) // element -> index into spans
	spans := make([]Span, 0, 64)

	for _, gw := range c.Finished {
		picks, ok := c.Picks[gw]
		if !ok || len(picks) == 0 || gw == fh {
			continue
		}
		present := make(map[int]bool, len(picks))
		for _, p := range picks {
			present[p.Element] = true
			if i, ok := open[p.Element]; ok {
				spans[i].LastGW = gw
				spans[i].Gameweeks++
				continue
			}
			open[p.Element] = len(spans)
			spans = append(spans, Span{Element: p.Element, FirstGW: gw, LastGW: gw, Gameweeks: 1})
		}
		for el := range open {
			if !present[el] {
				delete(open, el)
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Element != spans[j].Element {
			return spans[i].Element < spans[j].Element
		}
		return spans[i].FirstGW < spans[j].FirstGW
	})
	l := &Ledger{EntryID: c.EntryID, Spans: spans, byElement: make(map[int][]int)}
	for i, s := range spans {
		l.byElement[s.Element] = append(l.byElement[s.Element], i)
	}
	return l
}

func (l *Ledger) SpansOf(element int) []Span {
	idx := l.byElement[element]
	out := make([]Span, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.Spans[i])
	}
	return out
}

// HeldAt reports whether element was owned across gw, including a Free Hit
// week sitting inside a span.
func (l *Ledger) HeldAt(element, gw int) bool {
	for _, i := range l.byElement[element] {
		if s := l.Spans[i]; gw >= s.FirstGW && gw <= s.LastGW {
			return true
		}
	}
	return false
}

// LongHolds counts distinct players with at least one span of min gameweeks.
func (l *Ledger) LongHolds(min int) int {
	n := 0
	for _, idx := range l.byElement {
		for _, i := range idx {
			if l.Spans[i].Length() >= min {
				n++
				break
			}
		}
	}
	return n
}

// Longest returns up to n spans ordered by length, then element id.
func (l *Ledger) Longest(n int) []Span {
	out := make([]Span, len(l.Spans))
	copy(out, l.Spans)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Length() != out[j].Length() {
			return out[i].Length() > out[j].Length()
		}
		if out[i].Element != out[j].Element {
			return out[i].Element < out[j].Element
		}
		return out[i].FirstGW < out[j].FirstGW
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func WriteLedger(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
