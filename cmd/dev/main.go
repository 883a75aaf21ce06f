package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fpl-season-mcp/internal/config"
	"fpl-season-mcp/internal/fetch"
	"fpl-season-mcp/internal/ledger"
	"fpl-season-mcp/internal/logging"
	"fpl-season-mcp/internal/points"
	"fpl-season-mcp/internal/reconcile"
	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/store"
	"fpl-season-mcp/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	var (
		entryID     = flag.Int("entry", 0, "classic FPL entry id (required)")
		gwMax       = flag.Int("gw-max", 0, "last gameweek to fetch and analyse (0 = all finished)")
		rawRoot     = flag.String("raw-root", cfg.RawRoot, "root directory for raw JSON")
		derivedRoot = flag.String("derived-root", cfg.DerivedRoot, "root directory for derived JSON")
		refresh     = flag.Bool("refresh", false, "re-download raw files even when cached")
		offline     = flag.Bool("offline", false, "skip fetching and use the raw cache only")
		sleepMS     = flag.Int("sleep-ms", cfg.SleepMS, "sleep between requests in ms")
	)
	flag.Parse()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	log := logging.WithComponent(logger, "dev")
	if *entryID <= 0 {
		log.Fatal("-entry is required")
	}
	cfg.SleepMS = *sleepMS

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := store.NewJSONStore(*rawRoot)
	if !*offline {
		client := fetch.NewClient(st)
		client.BaseURL = cfg.BaseURL
		client.Sleep = cfg.Sleep()
		client.Log = log.WithField("component", "fetch")
		gws, err := client.Season(ctx, *entryID, *gwMax, *refresh)
		must(log, err)
		log.WithFields(logrus.Fields{"entry": *entryID, "gameweeks": len(gws)}).Info("season fetched")
	}

	loader := season.NewLoader(st, log)
	loader.MaxGW = *gwMax
	c, err := loader.Load(*entryID)
	must(log, err)

	report := reconcile.BuildReport(c)
	for _, w := range report.Warnings() {
		log.WithField("entry", *entryID).Warn(w)
	}
	must(log, reconcile.WriteReport(derivedPath(*derivedRoot, "reconcile", *entryID), report))

	must(log, ledger.WriteLedger(derivedPath(*derivedRoot, "ledger", *entryID), ledger.Build(c)))

	for _, gw := range c.Finished {
		picks, ok := c.Picks[gw]
		if !ok {
			continue
		}
		res := points.BuildResult(c.EntryID, gw, picks, c.Live[gw])
		path := filepath.Join(*derivedRoot, "points", fmt.Sprintf("%d", *entryID), "gw", fmt.Sprintf("%d.json", gw))
		must(log, points.WriteResult(path, res))
	}

	out := summary.Build(c, summary.Options{Tuning: cfg.Tuning()})
	must(log, summary.WriteSummary(derivedPath(*derivedRoot, "summary", *entryID), out))

	log.WithFields(logrus.Fields{
		"entry":      *entryID,
		"gameweeks":  out.Totals.Gameweeks,
		"persona":    out.Persona.Name,
		"overall":    out.Grades.Overall,
		"mismatches": len(report.Entries),
	}).Info("summary written")
}

func derivedPath(root, kind string, entryID int) string {
	return filepath.Join(root, kind, fmt.Sprintf("%d.json", entryID))
}

func must(log *logrus.Entry, err error) {
	if err != nil {
		log.WithError(err).Fatal("dev run failed")
	}
}
