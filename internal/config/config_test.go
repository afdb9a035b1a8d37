package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SHEETS_API_KEY", "SHEETS_SPREADSHEET_ID", "SHEETS_SHEET_NAME",
		"SHEETS_PUBLISHED_URL", "MATCH_FORM_URL", "REFRESH_INTERVAL", "CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigured(t *testing.T) {
	cases := []struct {
		name             string
		key, id, sheet   string
		published        string
		wantAPI, wantPub bool
	}{
		{"all set", "k", "id", "Form Responses 1", "", true, false},
		{"placeholder key", PlaceholderAPIKey, "id", "Sheet1", "", false, false},
		{"placeholder id", "k", PlaceholderSpreadsheetID, "Sheet1", "", false, false},
		{"missing sheet", "k", "id", "", "", false, false},
		{"whitespace key", "  ", "id", "Sheet1", "", false, false},
		{"published fallback", "", "", "", "https://docs.google.com/x/pubhtml", false, true},
		{"api wins over published", "k", "id", "Sheet1", "https://docs.google.com/x/pubhtml", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{APIKey: tc.key, SpreadsheetID: tc.id, SheetName: tc.sheet, PublishedURL: tc.published}
			if got := c.UsesAPI(); got != tc.wantAPI {
				t.Errorf("UsesAPI: want %v, got %v", tc.wantAPI, got)
			}
			if got := c.UsesPublished(); got != tc.wantPub {
				t.Errorf("UsesPublished: want %v, got %v", tc.wantPub, got)
			}
			if got := c.Configured(); got != (tc.wantAPI || tc.wantPub) {
				t.Errorf("Configured: got %v", got)
			}
		})
	}
}

func TestMissing(t *testing.T) {
	c := &Config{APIKey: PlaceholderAPIKey, SpreadsheetID: "id"}
	got := c.Missing()
	if len(got) != 2 || got[0] != "SHEETS_API_KEY" || got[1] != "SHEETS_SHEET_NAME" {
		t.Errorf("unexpected missing list %v", got)
	}
}

func TestForm(t *testing.T) {
	if got := (&Config{FormURL: PlaceholderFormURL}).Form(); got != "" {
		t.Errorf("placeholder form URL should be hidden, got %q", got)
	}
	if got := (&Config{FormURL: "https://forms.example/view"}).Form(); got != "https://forms.example/view" {
		t.Errorf("unexpected form URL %q", got)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SHEETS_API_KEY=abc\nSHEETS_SPREADSHEET_ID=sheet\nSHEETS_SHEET_NAME=Form Responses 1\nREFRESH_INTERVAL=30\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, so unset them.
	for _, k := range []string{"SHEETS_API_KEY", "SHEETS_SPREADSHEET_ID", "SHEETS_SHEET_NAME", "REFRESH_INTERVAL"} {
		os.Unsetenv(k)
	}

	c := Load(path)
	if !c.UsesAPI() {
		t.Fatalf("expected API source configured, missing %v", c.Missing())
	}
	if c.SheetName != "Form Responses 1" {
		t.Errorf("sheet name: got %q", c.SheetName)
	}
	if c.RefreshInterval != 30*time.Second {
		t.Errorf("refresh interval: got %v", c.RefreshInterval)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c := Load("")
	if c.Configured() {
		t.Error("empty environment should not be configured")
	}
	if c.RefreshInterval != 0 {
		t.Errorf("auto refresh should default off, got %v", c.RefreshInterval)
	}
	if len(c.CORSAllowOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}
