package season

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpl-season-mcp/internal/store"
)

// writeFixture lays out the raw store the way fetch.Client does.
func writeFixture(t *testing.T, st *store.JSONStore) {
	t.Helper()
	files := map[string]any{
		"bootstrap/bootstrap-static.json": map[string]any{
			"total_players": 1000,
			"events": []map[string]any{
				{"id": 1, "deadline_time": "2024-08-16T17:30:00Z", "average_entry_score": 55, "finished": true, "most_captained": 10,
					"chip_plays": []map[string]any{{"chip_name": "bboost", "num_played": 100}}},
				{"id": 2, "deadline_time": "2024-08-24T10:00:00Z", "average_entry_score": 48, "finished": true, "most_captained": 11},
				{"id": 3, "deadline_time": "2024-08-31T10:00:00Z", "finished": false},
			},
			"elements": []map[string]any{
				{"id": 10, "web_name": "Salah", "element_type": 3, "team": 1, "selected_by_percent": "45.2"},
				{"id": 11, "first_name": "Erling", "second_name": "Haaland", "element_type": 4, "team": 2, "selected_by_percent": "60.0"},
			},
			"teams": []map[string]any{{"id": 1, "short_name": "LIV"}, {"id": 2, "short_name": "MCI"}},
		},
		"entry/7/entry.json": map[string]any{"id": 7, "name": "Seven FC", "player_first_name": "Sam", "player_last_name": "Lee"},
		"entry/7/history.json": map[string]any{
			"current": []map[string]any{
				{"event": 1, "points": 60, "value": 1000, "overall_rank": 5000},
				{"event": 2, "points": 40, "value": 1004, "overall_rank": 4000, "event_transfers": 2, "event_transfers_cost": 4},
			},
			"chips": []map[string]any{
				{"name": "wildcard", "event": 2, "time": "2024-08-20T10:00:00Z"},
				{"name": "wildcard", "event": 20, "time": "2025-01-01T10:00:00Z"},
			},
		},
		"entry/7/transfers.json": []map[string]any{
			{"element_in": 11, "element_out": 12, "event": 2, "time": "2024-08-23T09:00:00.123456Z"},
			{"element_in": 10, "element_out": 13, "event": 2, "time": "2024-08-22T09:00:00Z"},
		},
		"entry/7/gw/1/picks.json": map[string]any{"picks": []map[string]any{
			{"element": 10, "position": 1, "multiplier": 2, "is_captain": true},
		}},
		"gw/1/live.json": map[string]any{"elements": []map[string]any{
			{"id": 10, "stats": map[string]any{"minutes": 90, "total_points": 12}},
		}},
	}
	for rel, v := range files {
		require.NoError(t, st.WriteJSON(rel, v))
	}
}

func TestLoader_Load(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeFixture(t, st)

	c, err := NewLoader(st, nil).Load(7)
	require.NoError(t, err)

	assert.Equal(t, "Seven FC", c.EntryName)
	assert.Equal(t, "Sam Lee", c.ManagerName)
	assert.Equal(t, []int{1, 2}, c.Finished)
	assert.Equal(t, 1000, c.TotalPlayers)

	assert.Equal(t, "Salah", c.Players[10].Name)
	assert.Equal(t, "Erling Haaland", c.Players[11].Name)
	assert.Equal(t, MID, c.Players[10].Position)
	assert.InDelta(t, 45.2, c.Players[10].OwnershipPct, 1e-9)
	assert.Equal(t, "LIV", c.Players[10].TeamShort)

	assert.Equal(t, 100, c.Events[1].ChipPlays[BenchBoost])
	assert.Equal(t, 10, c.Events[1].MostCaptained)

	require.Len(t, c.Chips, 1, "second wildcard dropped")
	assert.Equal(t, 2, c.ChipEvent(Wildcard))

	require.Len(t, c.Transfers, 2)
	assert.Equal(t, 10, c.Transfers[0].ElementIn, "transfers sorted by time within a gameweek")

	assert.Len(t, c.Picks[1], 1)
	_, hasGW2 := c.Picks[2]
	assert.False(t, hasGW2, "missing picks file is tolerated")
	assert.Equal(t, 12, c.Live[1][10].TotalPoints)

	h, ok := c.FinalHistory()
	require.True(t, ok)
	assert.Equal(t, 1004, h.Value)
}

func TestLoader_MaxGW(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeFixture(t, st)
	l := NewLoader(st, nil)
	l.MaxGW = 1

	c, err := l.Load(7)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, c.Finished)
}

func TestLoader_MissingHistoryPropagates(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeFixture(t, st)
	require.NoError(t, os.Remove(st.Path("entry/7/history.json")))

	_, err := NewLoader(st, nil).Load(7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_RequiresEntryID(t *testing.T) {
	_, err := NewLoader(store.NewJSONStore(t.TempDir()), nil).Load(0)
	assert.Error(t, err)
}

func TestIndex_Lookups(t *testing.T) {
	c := &Context{
		Finished: []int{1, 3},
		Picks: map[int][]Pick{1: {
			{Element: 5, Position: 12},
			{Element: 4, Position: 2, Multiplier: 2, IsCaptain: true},
			{Element: 3, Position: 1, Multiplier: 1},
		}},
		Live:    map[int]map[int]LiveStats{1: {4: {TotalPoints: 7}}},
		Players: map[int]Player{4: {ID: 4, Name: "Four"}},
	}
	ix := NewIndex(c)

	assert.Equal(t, 7, ix.Points(1, 4))
	assert.Equal(t, 0, ix.Points(1, 99), "unknown players score zero")
	assert.Equal(t, 0, ix.Points(2, 4))
	assert.Equal(t, "Four", ix.PlayerName(4))
	assert.Equal(t, "#99", ix.PlayerName(99))

	st := ix.Starters(1)
	require.Len(t, st, 2)
	assert.Equal(t, 3, st[0].Element, "starters ordered by position")
	assert.Len(t, ix.Bench(1), 1)

	capt, ok := ix.Captain(1)
	require.True(t, ok)
	assert.Equal(t, 4, capt.Element)

	assert.True(t, ix.InSquad(1, 5))
	assert.False(t, ix.HasPicks(3))
	next, ok := ix.NextFinished(1)
	assert.True(t, ok)
	assert.Equal(t, 3, next)
	_, ok = ix.NextFinished(3)
	assert.False(t, ok)
	prev, _ := ix.PrevFinished(3)
	assert.Equal(t, 1, prev)
}

func TestLoader_DropsActivityOutsideFinished(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeFixture(t, st)
	// GW3 is not finished yet.
	require.NoError(t, st.WriteJSON("entry/7/transfers.json", []map[string]any{
		{"element_in": 11, "element_out": 12, "event": 2, "time": "2024-08-23T09:00:00Z"},
		{"element_in": 14, "element_out": 10, "event": 3, "time": "2024-08-30T09:00:00Z"},
	}))
	require.NoError(t, st.WriteJSON("entry/7/history.json", map[string]any{
		"current": []map[string]any{{"event": 1, "points": 60}, {"event": 2, "points": 40}},
		"chips": []map[string]any{
			{"name": "wildcard", "event": 2, "time": "2024-08-20T10:00:00Z"},
			{"name": "3xc", "event": 3, "time": "2024-08-30T10:00:00Z"},
		},
	}))

	c, err := NewLoader(st, nil).Load(7)
	require.NoError(t, err)
	require.Len(t, c.Transfers, 1)
	assert.Equal(t, 2, c.Transfers[0].Event)
	assert.Equal(t, 0, c.ChipEvent(TripleCaptain))
	assert.Equal(t, 2, c.ChipEvent(Wildcard))

	l := NewLoader(st, nil)
	l.MaxGW = 1
	c, err = l.Load(7)
	require.NoError(t, err)
	assert.Empty(t, c.Transfers)
	assert.Empty(t, c.Chips)
}

func TestContext_Windowed(t *testing.T) {
	c := &Context{
		Finished:  []int{1, 2},
		Transfers: []Transfer{{Event: 1}, {Event: 2}},
		Chips:     []ChipPlay{{Name: Wildcard, Event: 2}},
	}
	assert.Same(t, c, c.Windowed(), "nothing outside the window")

	c.Transfers = append(c.Transfers, Transfer{Event: 3})
	c.Chips = append(c.Chips, ChipPlay{Name: FreeHit, Event: 5})
	w := c.Windowed()
	assert.NotSame(t, c, w)
	assert.Len(t, w.Transfers, 2)
	assert.Equal(t, []ChipPlay{{Name: Wildcard, Event: 2}}, w.Chips)
	assert.Len(t, c.Transfers, 3, "input untouched")

	empty := (&Context{Transfers: []Transfer{{Event: 1}}, Chips: []ChipPlay{{Name: BenchBoost, Event: 1}}}).Windowed()
	assert.Empty(t, empty.Transfers)
	assert.Empty(t, empty.Chips)
}

func TestIndex_ContextIsWindowed(t *testing.T) {
	c := &Context{Finished: []int{1}, Chips: []ChipPlay{{Name: TripleCaptain, Event: 4}}}
	ix := NewIndex(c)
	assert.Equal(t, 0, ix.Context().ChipEvent(TripleCaptain))
	assert.Equal(t, 4, c.ChipEvent(TripleCaptain))
}
