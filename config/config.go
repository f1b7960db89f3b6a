package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port" envconfig:"SERVER_PORT"`
}

// APIConfig describes the upstream contract-management API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"API_BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"API_TIMEOUT_SECONDS"`
	TokenCookie    string `yaml:"token_cookie" envconfig:"API_TOKEN_COOKIE"`
}

type UIConfig struct {
	PageSize          int `yaml:"page_size" envconfig:"UI_PAGE_SIZE"`
	DebounceMillis    int `yaml:"debounce_ms" envconfig:"UI_DEBOUNCE_MS"`
	HashDisplayLength int `yaml:"hash_display_length" envconfig:"UI_HASH_DISPLAY_LENGTH"`
	MaxDrafts         int `yaml:"max_drafts" envconfig:"UI_MAX_DRAFTS"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Environment variables override file values
	if err := envconfig.Process("portal", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 60
	}
	if cfg.API.TokenCookie == "" {
		cfg.API.TokenCookie = "portal_token"
	}
	if cfg.UI.PageSize == 0 {
		cfg.UI.PageSize = 12
	}
	if cfg.UI.DebounceMillis == 0 {
		cfg.UI.DebounceMillis = 300
	}
	if cfg.UI.HashDisplayLength == 0 {
		cfg.UI.HashDisplayLength = 16
	}
	if cfg.UI.MaxDrafts == 0 {
		cfg.UI.MaxDrafts = 100
	}

	return &cfg, nil
}
