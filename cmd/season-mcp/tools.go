package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"fpl-season-mcp/internal/config"
	"fpl-season-mcp/internal/fetch"
	"fpl-season-mcp/internal/logging"
	"fpl-season-mcp/internal/persona"
	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/store"
	"fpl-season-mcp/internal/summary"
	"fpl-season-mcp/internal/telemetry"
)

type EntryArgs struct {
	EntryID int  `json:"entry_id" jsonschema:"Classic FPL entry id (required)"`
	Refresh bool `json:"refresh,omitempty" jsonschema:"Re-download the season before analysing"`
}

type CatalogArgs struct{}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// service holds what every tool call shares. Each call loads a fresh season
// context, so handlers never share mutable state.
type service struct {
	cfg     *config.Config
	store   *store.JSONStore
	client  *fetch.Client
	log     *logrus.Entry
	metrics *telemetry.Manager
}

func newService(cfg *config.Config, log *logrus.Entry, metrics *telemetry.Manager) *service {
	st := store.NewJSONStore(cfg.RawRoot)
	client := fetch.NewClient(st)
	client.BaseURL = cfg.BaseURL
	client.Sleep = cfg.Sleep()
	client.Log = log.WithField("component", "fetch")
	return &service{cfg: cfg, store: st, client: client, log: log, metrics: metrics}
}

func (s *service) register(server *mcp.Server) []toolInfo {
	registry := make([]toolInfo, 0, 3)

	addTool(server, &registry, &mcp.Tool{
		Name:        "season_summary",
		Description: "Full season analysis for a manager: transfers, captaincy, bench, chips, grades and persona",
	}, instrument(s, "season_summary", func(ctx context.Context, log *logrus.Entry, args EntryArgs) (any, error) {
		return s.summary(ctx, log, args)
	}))

	addTool(server, &registry, &mcp.Tool{
		Name:        "manager_persona",
		Description: "Behavioral persona for a manager with traits, signals and memorable moments",
	}, instrument(s, "manager_persona", func(ctx context.Context, log *logrus.Entry, args EntryArgs) (any, error) {
		sum, err := s.summary(ctx, log, args)
		if err != nil {
			return nil, err
		}
		return sum.Persona, nil
	}))

	addTool(server, &registry, &mcp.Tool{
		Name:        "persona_catalog",
		Description: "The fixed persona catalog in selection order",
	}, instrument(s, "persona_catalog", func(ctx context.Context, log *logrus.Entry, args CatalogArgs) (any, error) {
		return map[string]any{"personas": persona.Catalog, "default": persona.BlankSlate}, nil
	}))

	return registry
}

func (s *service) summary(ctx context.Context, log *logrus.Entry, args EntryArgs) (summary.SeasonSummary, error) {
	c, err := s.loadSeason(ctx, log, args.EntryID, args.Refresh)
	s.metrics.RecordSeasonLoad(err)
	if err != nil {
		return summary.SeasonSummary{}, err
	}
	out := summary.Build(c, summary.Options{Tuning: s.cfg.Tuning()})
	s.metrics.RecordPersona(out.Persona.Key)
	for _, w := range out.DataWarnings {
		log.WithField("entry", args.EntryID).Warn(w)
	}
	return out, nil
}

// loadSeason reads the raw store, downloading the season first when asked to
// or when files are missing.
func (s *service) loadSeason(ctx context.Context, log *logrus.Entry, entryID int, refresh bool) (*season.Context, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("entry_id is required")
	}
	loader := season.NewLoader(s.store, log)
	if !refresh {
		c, err := loader.Load(entryID)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return c, err
		}
		log.WithField("entry", entryID).Info("raw season missing, fetching")
	}
	if _, err := s.client.Season(ctx, entryID, 0, refresh); err != nil {
		return nil, fmt.Errorf("fetch season %d: %w", entryID, err)
	}
	return loader.Load(entryID)
}

// instrument adds a request id, logging and metrics around a tool handler and
// renders its result as indented JSON.
func instrument[T any](s *service, name string, h func(context.Context, *logrus.Entry, T) (any, error)) func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		log := logging.WithRequest(s.log, uuid.NewString(), name)

		out, err := h(ctx, log, args)
		status := telemetry.StatusOK
		if err != nil {
			status = telemetry.StatusError
		}
		elapsed := time.Since(start)
		s.metrics.ObserveToolCall(name, status, elapsed)
		log.WithFields(logrus.Fields{"status": status, "elapsed_ms": elapsed.Milliseconds()}).Info("tool call")

		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(out, "", "  "))
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
