// Package config provides configuration loaded from environment variables and an
// optional .env file. Shared by the CLI commands and the dashboard server.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Placeholder values shipped in the sample .env; treated the same as unset.
const (
	PlaceholderAPIKey        = "YOUR_API_KEY_HERE"
	PlaceholderSpreadsheetID = "YOUR_SPREADSHEET_ID_HERE"
	PlaceholderSheetName     = "YOUR_SHEET_NAME_HERE"
	PlaceholderFormURL       = "YOUR_GOOGLE_FORM_URL_HERE"
)

// ErrNotConfigured means the data source settings are missing or still placeholders.
// Callers show setup instructions rather than an error panel.
var ErrNotConfigured = errors.New("data source not configured")

// Config is populated from environment variables.
type Config struct {
	// Sheet source
	APIKey        string
	SpreadsheetID string
	SheetName     string
	SheetsBaseURL string
	PublishedURL  string // published-to-web HTML; used when no API key is set

	// Data-entry form shown behind the "Add Score" toggle
	FormURL string

	// Storage
	DBPath       string
	SnapshotKeep int

	// Dashboard server
	APIHost          string
	APIPort          int
	CORSAllowOrigins []string

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	RefreshInterval time.Duration
}

// Load reads an optional env file and then the environment. A missing env file
// is not an error; an empty path skips it.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	return &Config{
		APIKey:        envOr("SHEETS_API_KEY", ""),
		SpreadsheetID: envOr("SHEETS_SPREADSHEET_ID", ""),
		SheetName:     envOr("SHEETS_SHEET_NAME", ""),
		SheetsBaseURL: envOr("SHEETS_API_BASE", "https://sheets.googleapis.com"),
		PublishedURL:  envOr("SHEETS_PUBLISHED_URL", ""),

		FormURL: envOr("MATCH_FORM_URL", ""),

		DBPath:       envOr("TENNISDASH_DB", DefaultDBPath()),
		SnapshotKeep: envInt("SNAPSHOT_KEEP", 50),

		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envInt("API_PORT", envInt("PORT", 8080)),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:8080",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		RefreshInterval: time.Duration(envInt("REFRESH_INTERVAL", 0)) * time.Second,
	}
}

// UsesAPI reports whether the Sheets API source is fully configured.
func (c *Config) UsesAPI() bool {
	return isSet(c.APIKey, PlaceholderAPIKey) &&
		isSet(c.SpreadsheetID, PlaceholderSpreadsheetID) &&
		isSet(c.SheetName, PlaceholderSheetName)
}

// UsesPublished reports whether the published HTML source should be used
// instead, which happens only when the API source is incomplete.
func (c *Config) UsesPublished() bool {
	return !c.UsesAPI() && c.PublishedURL != ""
}

// Configured reports whether any data source can be built.
func (c *Config) Configured() bool {
	return c.UsesAPI() || c.UsesPublished()
}

// Missing lists the environment variables still needed for the API source.
func (c *Config) Missing() []string {
	var out []string
	if !isSet(c.APIKey, PlaceholderAPIKey) {
		out = append(out, "SHEETS_API_KEY")
	}
	if !isSet(c.SpreadsheetID, PlaceholderSpreadsheetID) {
		out = append(out, "SHEETS_SPREADSHEET_ID")
	}
	if !isSet(c.SheetName, PlaceholderSheetName) {
		out = append(out, "SHEETS_SHEET_NAME")
	}
	return out
}

// Form returns the data-entry form URL, or "" when unset or a placeholder.
func (c *Config) Form() string {
	if !isSet(c.FormURL, PlaceholderFormURL) {
		return ""
	}
	return c.FormURL
}

// DefaultDBPath is ~/.tennisdash/matches.db, falling back to the working directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tennisdash", "matches.db")
}

func isSet(v, placeholder string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != placeholder
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
