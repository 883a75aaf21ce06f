package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"fpl-season-mcp/internal/config"
	"fpl-season-mcp/internal/logging"
	"fpl-season-mcp/internal/telemetry"
)

const apiKeyEnv = "FPL_MCP_API_KEY"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	log := logging.WithComponent(logger, "season-mcp")

	metrics := telemetry.NewManager()
	svc := newService(cfg, log, metrics)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-season-mcp",
			Version: "0.3.0",
		},
		nil,
	)
	registry := svc.register(server)

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if cfg.RequireAuth && apiKey == "" {
		log.Fatalf("%s is required (set it or FPL_PERSONA_REQUIRE_AUTH=false)", apiKeyEnv)
	}
	withAuth := authMiddleware(apiKey, cfg.AuthHeader)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc("/metrics", withAuth(metrics.Handler().ServeHTTP))
	mux.HandleFunc(cfg.MCPPath, withAuth(handler.ServeHTTP))

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "path": cfg.MCPPath, "raw_root": cfg.RawRoot}).Info("MCP HTTP server listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// authMiddleware checks the API key from header, or a bearer token. An empty
// apiKey disables the check.
func authMiddleware(apiKey, header string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(header))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}
}
