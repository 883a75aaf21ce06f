package season

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fpl-season-mcp/internal/store"
)

type bootstrapRaw struct {
	TotalPlayers int `json:"total_players"`
	Events       []struct {
		ID            int    `json:"id"`
		DeadlineTime  string `json:"deadline_time"`
		AverageScore  int    `json:"average_entry_score"`
		HighestScore  int    `json:"highest_score"`
		Finished      bool   `json:"finished"`
		MostCaptained int    `json:"most_captained"`
		ChipPlays     []struct {
			ChipName  string `json:"chip_name"`
			NumPlayed int    `json:"num_played"`
		} `json:"chip_plays"`
	} `json:"events"`
	Elements []struct {
		ID                int    `json:"id"`
		FirstName         string `json:"first_name"`
		SecondName        string `json:"second_name"`
		WebName           string `json:"web_name"`
		Team              int    `json:"team"`
		ElementType       int    `json:"element_type"`
		SelectedByPercent string `json:"selected_by_percent"`
	} `json:"elements"`
	Teams []struct {
		ID        int    `json:"id"`
		ShortName string `json:"short_name"`
	} `json:"teams"`
}

type entryRaw struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	PlayerFirstName string `json:"player_first_name"`
	PlayerLastName  string `json:"player_last_name"`
}

type historyRaw struct {
	Current []GameweekHistory `json:"current"`
	Chips   []struct {
		Name  string `json:"name"`
		Time  string `json:"time"`
		Event int    `json:"event"`
	} `json:"chips"`
}

type transferRaw struct {
	ElementIn      int    `json:"element_in"`
	ElementInCost  int    `json:"element_in_cost"`
	ElementOut     int    `json:"element_out"`
	ElementOutCost int    `json:"element_out_cost"`
	Event          int    `json:"event"`
	Time           string `json:"time"`
}

type picksRaw struct {
	ActiveChip string `json:"active_chip"`
	Picks      []Pick `json:"picks"`
}

type liveRaw struct {
	Elements []struct {
		ID    int       `json:"id"`
		Stats LiveStats `json:"stats"`
	} `json:"elements"`
}

// Loader resolves a Context from the raw store layout written by fetch.Client.
type Loader struct {
	Store *store.JSONStore
	Log   *logrus.Entry
	// MaxGW caps the finished gameweeks considered (0 = all).
	MaxGW int
}

func NewLoader(st *store.JSONStore, log *logrus.Entry) *Loader {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{Store: st, Log: log}
}

func (l *Loader) Load(entryID int) (*Context, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("entry_id is required")
	}

	var boot bootstrapRaw
	if err := l.Store.ReadJSON("bootstrap/bootstrap-static.json", &boot); err != nil {
		return nil, fmt.Errorf("load bootstrap: %w", err)
	}
	var entry entryRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("entry/%d/entry.json", entryID), &entry); err != nil {
		return nil, fmt.Errorf("load entry %d: %w", entryID, err)
	}
	var hist historyRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("entry/%d/history.json", entryID), &hist); err != nil {
		return nil, fmt.Errorf("load history %d: %w", entryID, err)
	}
	var transfers []transferRaw
	if err := l.Store.ReadJSON(fmt.Sprintf("entry/%d/transfers.json", entryID), &transfers); err != nil {
		return nil, fmt.Errorf("load transfers %d: %w", entryID, err)
	}

	c := &Context{
		EntryID:      entryID,
		EntryName:    entry.Name,
		ManagerName:  strings.TrimSpace(entry.PlayerFirstName + " " + entry.PlayerLastName),
		TotalPlayers: boot.TotalPlayers,
		Picks:        make(map[int][]Pick),
		Live:         make(map[int]map[int]LiveStats),
		History:      make(map[int]GameweekHistory, len(hist.Current)),
		Events:       make(map[int]Event, len(boot.Events)),
		Players:      make(map[int]Player, len(boot.Elements)),
	}

	teamShort := make(map[int]string, len(boot.Teams))
	for _, t := range boot.Teams {
		teamShort[t.ID] = t.ShortName
	}
	for _, e := range boot.Elements {
		name := e.WebName
		if name == "" {
			name = strings.TrimSpace(e.FirstName + " " + e.SecondName)
		}
		own, _ := strconv.ParseFloat(e.SelectedByPercent, 64)
		c.Players[e.ID] = Player{
			ID:           e.ID,
			Name:         name,
			Position:     Position(e.ElementType),
			TeamID:       e.Team,
			TeamShort:    teamShort[e.Team],
			OwnershipPct: own,
		}
	}

	for _, ev := range boot.Events {
		out := Event{
			ID:            ev.ID,
			Deadline:      parseTime(ev.DeadlineTime),
			AverageScore:  ev.AverageScore,
			HighestScore:  ev.HighestScore,
			MostCaptained: ev.MostCaptained,
			Finished:      ev.Finished,
			ChipPlays:     make(map[ChipName]int, len(ev.ChipPlays)),
		}
		for _, cp := range ev.ChipPlays {
			out.ChipPlays[ChipName(cp.ChipName)] = cp.NumPlayed
		}
		c.Events[ev.ID] = out
		if ev.Finished && (l.MaxGW == 0 || ev.ID <= l.MaxGW) {
			c.Finished = append(c.Finished, ev.ID)
		}
	}
	sort.Ints(c.Finished)

	for _, h := range hist.Current {
		c.History[h.Event] = h
	}

	seen := make(map[ChipName]bool, 4)
	for _, ch := range hist.Chips {
		name := ChipName(ch.Name)
		if seen[name] {
			// Only the first play of each chip is analysed.
			continue
		}
		seen[name] = true
		c.Chips = append(c.Chips, ChipPlay{Name: name, Event: ch.Event, Time: parseTime(ch.Time)})
	}
	sort.Slice(c.Chips, func(i, j int) bool { return c.Chips[i].Event < c.Chips[j].Event })

	c.Transfers = make([]Transfer, 0, len(transfers))
	for _, t := range transfers {
		c.Transfers = append(c.Transfers, Transfer{
			ElementIn:      t.ElementIn,
			ElementInCost:  t.ElementInCost,
			ElementOut:     t.ElementOut,
			ElementOutCost: t.ElementOutCost,
			Event:          t.Event,
			Time:           parseTime(t.Time),
		})
	}
	sort.SliceStable(c.Transfers, func(i, j int) bool {
		a, b := c.Transfers[i], c.Transfers[j]
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return a.ElementIn < b.ElementIn
	})
	if w := c.Windowed(); w != c {
		l.Log.WithFields(logrus.Fields{
			"entry":     entryID,
			"transfers": len(c.Transfers) - len(w.Transfers),
			"chips":     len(c.Chips) - len(w.Chips),
		}).Debug("dropped activity outside finished gameweeks")
		c = w
	}

	for _, gw := range c.Finished {
		live, err := l.loadLive(gw)
		if err != nil {
			return nil, err
		}
		if live != nil {
			c.Live[gw] = live
		}
		var pr picksRaw
		err = l.Store.ReadJSON(fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw), &pr)
		if errors.Is(err, os.ErrNotExist) {
			l.Log.WithFields(logrus.Fields{"entry": entryID, "gw": gw}).Debug("no picks recorded")
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(pr.Picks) > 0 {
			c.Picks[gw] = pr.Picks
		}
	}

	l.Log.WithFields(logrus.Fields{
		"entry":     entryID,
		"finished":  len(c.Finished),
		"transfers": len(c.Transfers),
		"chips":     len(c.Chips),
	}).Debug("season loaded")
	return c, nil
}

func (l *Loader) loadLive(gw int) (map[int]LiveStats, error) {
	var lr liveRaw
	err := l.Store.ReadJSON(fmt.Sprintf("gw/%d/live.json", gw), &lr)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[int]LiveStats, len(lr.Elements))
	for _, e := range lr.Elements {
		out[e.ID] = e.Stats
	}
	return out, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
