// Package config holds process configuration shared by the server and the
// dev CLI.
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"fpl-season-mcp/internal/persona"
)

type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	Addr        string `koanf:"addr"`
	MCPPath     string `koanf:"mcp_path"`
	RequireAuth bool   `koanf:"require_auth"`
	AuthHeader  string `koanf:"auth_header"`

	RawRoot     string `koanf:"raw_root"`
	DerivedRoot string `koanf:"derived_root"`

	BaseURL string `koanf:"base_url"`
	SleepMS int    `koanf:"sleep_ms"`

	// Timezone is an IANA name used for late-night transfer detection.
	Timezone             string  `koanf:"timezone"`
	TemplateOwnershipPct float64 `koanf:"template_ownership_pct"`
	CompetitiveRatio     float64 `koanf:"competitive_ratio"`
}

func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":8080",
		MCPPath:              "/mcp",
		RequireAuth:          true,
		AuthHeader:           "X-API-Key",
		RawRoot:              "data/raw",
		DerivedRoot:          "data/derived",
		BaseURL:              "https://fantasy.premierleague.com/api",
		SleepMS:              250,
		Timezone:             "Europe/London",
		TemplateOwnershipPct: 15,
		CompetitiveRatio:     0.90,
	}
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.RawRoot == "" || c.DerivedRoot == "" {
		return errors.New("raw_root and derived_root must not be empty")
	}
	if c.CompetitiveRatio <= 0 || c.CompetitiveRatio > 1 {
		return fmt.Errorf("competitive_ratio must be in (0,1], got %v", c.CompetitiveRatio)
	}
	if c.TemplateOwnershipPct < 0 || c.TemplateOwnershipPct > 100 {
		return fmt.Errorf("template_ownership_pct must be in [0,100], got %v", c.TemplateOwnershipPct)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Tuning converts the persona knobs. Call after Validate.
func (c *Config) Tuning() persona.Tuning {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return persona.Tuning{
		CompetitiveRatio:     c.CompetitiveRatio,
		TemplateOwnershipPct: c.TemplateOwnershipPct,
		Location:             loc,
	}
}

func (c *Config) Sleep() time.Duration {
	return time.Duration(c.SleepMS) * time.Millisecond
}
