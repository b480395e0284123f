package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config is the root configuration structure.
type Config struct {
	API          APIConfig          `json:"api" toml:"api"`
	Contributors ContributorsConfig `json:"contributors" toml:"contributors"`
	Output       OutputConfig       `json:"output" toml:"output"`
}

// APIConfig holds remote commit API options.
type APIConfig struct {
	BaseURL        string `json:"baseURL" toml:"baseURL"`               // Default: https://api.github.com
	UserAgent      string `json:"userAgent" toml:"userAgent"`           // Empty means the repository owner
	PerPage        int    `json:"perPage" toml:"perPage"`               // Default: 100
	Retry          bool   `json:"retry" toml:"retry"`                   // Retry 202 responses with backoff
	TimeoutSeconds int    `json:"timeoutSeconds" toml:"timeoutSeconds"` // Per-request timeout; 0 disables
}

// ContributorsConfig holds contributor aggregation options.
type ContributorsConfig struct {
	ExcludeBot      bool     `json:"excludeBot" toml:"excludeBot"`
	BotLogin        string   `json:"botLogin" toml:"botLogin"`               // Default: greenkeeperio-bot
	ExcludePatterns []string `json:"excludePatterns" toml:"excludePatterns"` // Glob patterns matched against logins
}

// OutputConfig holds report output defaults.
type OutputConfig struct {
	Top    int    `json:"top" toml:"top"` // 0 means all rows
	Format string `json:"format" toml:"format"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.github.com",
			PerPage:        100,
			Retry:          true,
			TimeoutSeconds: 30,
		},
		Contributors: ContributorsConfig{
			BotLogin:        "greenkeeperio-bot",
			ExcludePatterns: []string{},
		},
		Output: OutputConfig{
			Format: "console",
		},
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.API),
		validation.Field(&c.Output),
	)
}

// Validate checks the API section.
func (a APIConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BaseURL, validation.Required, is.URL),
		validation.Field(&a.PerPage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&a.TimeoutSeconds, validation.Min(0)),
	)
}

// Validate checks the output section.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Top, validation.Min(0)),
		validation.Field(&o.Format, validation.In("", "console", "json", "csv", "markdown", "ci")),
	)
}

var candidateNames = []string{".contribspots.json", ".contribspots.toml"}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := append([]string{}, candidateNames...)
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			for _, name := range candidateNames {
				candidates = append(candidates, filepath.Join(home, name))
			}
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			for _, name := range candidateNames {
				candidates = append(candidates, filepath.Join(envHome, name))
			}
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
