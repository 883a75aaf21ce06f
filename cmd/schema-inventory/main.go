package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"fpl-season-mcp/internal/config"
	"fpl-season-mcp/internal/logging"
	"fpl-season-mcp/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	var (
		rawRoot  = flag.String("raw-root", cfg.RawRoot, "root directory for raw JSON")
		outPath  = flag.String("out", "data/derived/schema_inventory.json", "output path")
		maxFiles = flag.Int("max-files", 0, "max files per endpoint (0 = no limit)")
	)
	flag.Parse()

	log := logging.WithComponent(logging.New(cfg.LogLevel, cfg.LogFormat), "schema-inventory")

	inv, err := store.NewJSONStore(*rawRoot).Inventory(store.ClassicEndpoints, *maxFiles)
	if err != nil {
		log.WithError(err).Fatal("inventory failed")
	}
	for _, rel := range inv.Skipped {
		log.WithField("file", rel).Warn("unreadable raw file")
	}
	if err := store.WriteInventory(*outPath, inv); err != nil {
		log.WithError(err).Fatal("write inventory")
	}
	log.WithFields(logrus.Fields{"out": *outPath, "endpoints": len(inv.Endpoints)}).Info("inventory written")
}
