package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fpl-season-mcp/internal/season"
)

// GameweekMismatch lists where the squad replayed from the transfer log
// disagrees with the picks recorded for a gameweek.
type GameweekMismatch struct {
	Gameweek     int   `json:"gameweek"`
	NotOwned     []int `json:"not_owned"`
	NotPicked    []int `json:"not_picked"`
	TotalPicks   int   `json:"total_picks"`
	TotalOwned   int   `json:"total_owned"`
	MissingPicks bool  `json:"missing_picks"`
}

type Report struct {
	EntryID  int                `json:"entry_id"`
	AnchorGW int                `json:"anchor_gw"`
	Checked  int                `json:"checked"`
	Entries  []GameweekMismatch `json:"entries"`
}

// BuildReport replays transfers on top of the first recorded non-Free-Hit
// squad and compares the result with each later gameweek's picks. Free Hit
// transfers only apply to the Free Hit week itself.
func BuildReport(c *season.Context) *Report {
	fh := c.ChipEvent(season.FreeHit)
	report := &Report{EntryID: c.EntryID, Entries: make([]GameweekMismatch, 0)}

	anchor := 0
	for _, gw := range c.Finished {
		if gw != fh && len(c.Picks[gw]) > 0 {
			anchor = gw
			break
		}
	}
	if anchor == 0 {
		for _, gw := range c.Finished {
			report.Entries = append(report.Entries, GameweekMismatch{Gameweek: gw, MissingPicks: true})
		}
		return report
	}
	report.AnchorGW = anchor

	owned := squadSet(c.Picks[anchor])
	next := 0
	for next < len(c.Transfers) && c.Transfers[next].Event <= anchor {
		next++
	}

	for _, gw := range c.Finished {
		picks := c.Picks[gw]
		if gw < anchor {
			if len(picks) == 0 {
				report.Entries = append(report.Entries, GameweekMismatch{Gameweek: gw, MissingPicks: true})
			}
			continue
		}
		if gw == anchor {
			continue
		}

		var fhSquad map[int]bool
		for next < len(c.Transfers) && c.Transfers[next].Event <= gw {
			t := c.Transfers[next]
			target := owned
			if t.Event == fh {
				if fhSquad == nil {
					fhSquad = copySet(owned)
				}
				target = fhSquad
			}
			delete(target, t.ElementOut)
			target[t.ElementIn] = true
			next++
		}
		squad := owned
		if gw == fh {
			if fhSquad == nil {
				fhSquad = copySet(owned)
			}
			squad = fhSquad
		}

		if len(picks) == 0 {
			report.Entries = append(report.Entries, GameweekMismatch{Gameweek: gw, MissingPicks: true})
			continue
		}
		report.Checked++

		picked := squadSet(picks)
		m := GameweekMismatch{
			Gameweek:   gw,
			NotOwned:   difference(picked, squad),
			NotPicked:  difference(squad, picked),
			TotalPicks: len(picks),
			TotalOwned: len(squad),
		}
		if len(m.NotOwned) > 0 || len(m.NotPicked) > 0 {
			report.Entries = append(report.Entries, m)
		}
	}
	return report
}

// Warnings renders the report as short human-readable lines.
func (r *Report) Warnings() []string {
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		switch {
		case e.MissingPicks:
			out = append(out, fmt.Sprintf("GW%d: no picks recorded", e.Gameweek))
		default:
			out = append(out, fmt.Sprintf("GW%d: %d picked players not explained by transfers, %d expected players missing",
				e.Gameweek, len(e.NotOwned), len(e.NotPicked)))
		}
	}
	return out
}

func squadSet(picks []season.Pick) map[int]bool {
	out := make(map[int]bool, len(picks))
	for _, p := range picks {
		out[p.Element] = true
	}
	return out
}

func copySet(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func difference(a, b map[int]bool) []int {
	out := make([]int, 0)
	for el := range a {
		if !b[el] {
			out = append(out, el)
		}
	}
	sort.Ints(out)
	return out
}

func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
