package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	configContent := `
server:
  port: 9090
api:
  base_url: "https://api.portal.test"
  timeout_seconds: 30
  token_cookie: "session_token"
ui:
  page_size: 24
  debounce_ms: 500
  hash_display_length: 12
  max_drafts: 25
log:
  level: "debug"
  format: "json"
`
	path := writeTempConfig(t, configContent)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://api.portal.test" {
		t.Errorf("Expected base_url https://api.portal.test, got %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout_seconds 30, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.API.TokenCookie != "session_token" {
		t.Errorf("Expected token_cookie session_token, got %s", cfg.API.TokenCookie)
	}
	if cfg.UI.PageSize != 24 {
		t.Errorf("Expected page_size 24, got %d", cfg.UI.PageSize)
	}
	if cfg.UI.DebounceMillis != 500 {
		t.Errorf("Expected debounce_ms 500, got %d", cfg.UI.DebounceMillis)
	}
	if cfg.UI.HashDisplayLength != 12 {
		t.Errorf("Expected hash_display_length 12, got %d", cfg.UI.HashDisplayLength)
	}
	if cfg.UI.MaxDrafts != 25 {
		t.Errorf("Expected max_drafts 25, got %d", cfg.UI.MaxDrafts)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
}

func TestLoadDefaults(t *testing.T) {
	configContent := `
api:
  base_url: "https://api.portal.test"
`
	path := writeTempConfig(t, configContent)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.API.TimeoutSeconds != 60 {
		t.Errorf("Expected default timeout_seconds 60, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.API.TokenCookie != "portal_token" {
		t.Errorf("Expected default token_cookie portal_token, got %s", cfg.API.TokenCookie)
	}
	if cfg.UI.PageSize != 12 {
		t.Errorf("Expected default page_size 12, got %d", cfg.UI.PageSize)
	}
	if cfg.UI.DebounceMillis != 300 {
		t.Errorf("Expected default debounce_ms 300, got %d", cfg.UI.DebounceMillis)
	}
	if cfg.UI.HashDisplayLength != 16 {
		t.Errorf("Expected default hash_display_length 16, got %d", cfg.UI.HashDisplayLength)
	}
	if cfg.UI.MaxDrafts != 100 {
		t.Errorf("Expected default max_drafts 100, got %d", cfg.UI.MaxDrafts)
	}
	if cfg.Log.Level != "" {
		t.Errorf("Expected empty log level, got %s", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	configContent := `
server:
  port: 9090
api:
  base_url: "https://file.portal.test"
`
	path := writeTempConfig(t, configContent)

	t.Setenv("PORTAL_SERVER_PORT", "7070")
	t.Setenv("PORTAL_API_BASE_URL", "https://env.portal.test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Expected env-overridden port 7070, got %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://env.portal.test" {
		t.Errorf("Expected env-overridden base_url, got %s", cfg.API.BaseURL)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "invalid: yaml: content:")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
