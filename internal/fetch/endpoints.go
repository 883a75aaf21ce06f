package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// /bootstrap-static/
func (c *Client) BootstrapStatic(ctx context.Context, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "/bootstrap-static/", "bootstrap/bootstrap-static.json", force)
}

// /entry/{entry_id}/
func (c *Client) Entry(ctx context.Context, entryID int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/", entryID),
		fmt.Sprintf("entry/%d/entry.json", entryID),
		force,
	)
	return err
}

// /entry/{entry_id}/history/
func (c *Client) EntryHistory(ctx context.Context, entryID int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/history/", entryID),
		fmt.Sprintf("entry/%d/history.json", entryID),
		force,
	)
	return err
}

// /entry/{entry_id}/transfers/
func (c *Client) EntryTransfers(ctx context.Context, entryID int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/transfers/", entryID),
		fmt.Sprintf("entry/%d/transfers.json", entryID),
		force,
	)
	return err
}

// /entry/{entry_id}/event/{gw}/picks/
func (c *Client) EntryPicks(ctx context.Context, entryID int, gw int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw),
		fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw),
		force,
	)
	return err
}

// /event/{gw}/live/
func (c *Client) EventLive(ctx context.Context, gw int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/event/%d/live/", gw),
		fmt.Sprintf("gw/%d/live.json", gw),
		force,
	)
	return err
}

// FinishedEvents lists finished gameweek ids from a bootstrap-static body.
func FinishedEvents(bootstrap []byte) ([]int, error) {
	var resp struct {
		Events []struct {
			ID       int  `json:"id"`
			Finished bool `json:"finished"`
		} `json:"events"`
	}
	if err := json.Unmarshal(bootstrap, &resp); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(resp.Events))
	for _, e := range resp.Events {
		if e.Finished {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

// Season fetches everything a season analysis needs for one entry up to maxGW
// (0 = every finished gameweek).
func (c *Client) Season(ctx context.Context, entryID int, maxGW int, force bool) ([]int, error) {
	boot, err := c.BootstrapStatic(ctx, force)
	if err != nil {
		return nil, err
	}
	gws, err := FinishedEvents(boot)
	if err != nil {
		return nil, fmt.Errorf("parse bootstrap events: %w", err)
	}
	if err := c.Entry(ctx, entryID, force); err != nil {
		return nil, err
	}
	if err := c.EntryHistory(ctx, entryID, force); err != nil {
		return nil, err
	}
	if err := c.EntryTransfers(ctx, entryID, force); err != nil {
		return nil, err
	}

	fetched := make([]int, 0, len(gws))
	for _, gw := range gws {
		if maxGW > 0 && gw > maxGW {
			break
		}
		if err := c.EventLive(ctx, gw, force); err != nil {
			return nil, err
		}
		if err := c.EntryPicks(ctx, entryID, gw, force); err != nil {
			// Entries created mid-season have no picks for earlier gameweeks.
			if errors.Is(err, ErrNotFound) {
				c.Log.WithField("gw", gw).Debug("no picks for gameweek")
				continue
			}
			return nil, err
		}
		fetched = append(fetched, gw)
	}
	return fetched, nil
}
