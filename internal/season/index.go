package season

import (
	"sort"
	"strconv"
)

// Index is a write-once lookup table over a Context. It is fully built by
// NewIndex and only read afterwards, so it can be shared between analyzers.
type Index struct {
	ctx      *Context
	squad    map[int]map[int]Pick
	starters map[int][]Pick
	bench    map[int][]Pick
	captain  map[int]Pick
	nextGW   map[int]int
	prevGW   map[int]int
}

// NewIndex indexes c.Windowed(), so Context() never exposes transfers or
// chips outside the finished gameweeks.
func NewIndex(c *Context) *Index {
	c = c.Windowed()
	ix := &Index{
		ctx:      c,
		squad:    make(map[int]map[int]Pick, len(c.Picks)),
		starters: make(map[int][]Pick, len(c.Picks)),
		bench:    make(map[int][]Pick, len(c.Picks)),
		captain:  make(map[int]Pick, len(c.Picks)),
		nextGW:   make(map[int]int, len(c.Finished)),
		prevGW:   make(map[int]int, len(c.Finished)),
	}
	for gw, picks := range c.Picks {
		ordered := make([]Pick, len(picks))
		copy(ordered, picks)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

		byElem := make(map[int]Pick, len(ordered))
		for _, p := range ordered {
			byElem[p.Element] = p
			if p.Starter() {
				ix.starters[gw] = append(ix.starters[gw], p)
				if p.IsCaptain {
					ix.captain[gw] = p
				}
			} else {
				ix.bench[gw] = append(ix.bench[gw], p)
			}
		}
		ix.squad[gw] = byElem
	}
	for i, gw := range c.Finished {
		if i+1 < len(c.Finished) {
			ix.nextGW[gw] = c.Finished[i+1]
		}
		if i > 0 {
			ix.prevGW[gw] = c.Finished[i-1]
		}
	}
	return ix
}

func (ix *Index) Context() *Context { return ix.ctx }

// Points is the raw live score of element in gw; unknown players score 0.
func (ix *Index) Points(gw, element int) int {
	return ix.ctx.Live[gw][element].TotalPoints
}

func (ix *Index) Player(id int) (Player, bool) {
	p, ok := ix.ctx.Players[id]
	return p, ok
}

// PlayerName falls back to "#<id>" for players missing from the catalog.
func (ix *Index) PlayerName(id int) string {
	if p, ok := ix.ctx.Players[id]; ok && p.Name != "" {
		return p.Name
	}
	return "#" + strconv.Itoa(id)
}

func (ix *Index) HasPicks(gw int) bool { return len(ix.squad[gw]) > 0 }

func (ix *Index) InSquad(gw, element int) bool {
	_, ok := ix.squad[gw][element]
	return ok
}

// Starters are ordered by squad position 1..11.
func (ix *Index) Starters(gw int) []Pick { return ix.starters[gw] }

// Bench is ordered by squad position 12..15.
func (ix *Index) Bench(gw int) []Pick { return ix.bench[gw] }

func (ix *Index) Captain(gw int) (Pick, bool) {
	p, ok := ix.captain[gw]
	return p, ok
}

// NextFinished is the finished gameweek after gw.
func (ix *Index) NextFinished(gw int) (int, bool) {
	n, ok := ix.nextGW[gw]
	return n, ok
}

// PrevFinished is the finished gameweek before gw.
func (ix *Index) PrevFinished(gw int) (int, bool) {
	p, ok := ix.prevGW[gw]
	return p, ok
}
