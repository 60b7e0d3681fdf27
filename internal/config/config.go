package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/myfinances/internal/model"
)

// FileName is the config file inside a data directory.
const FileName = "myfinances.yaml"

// Config represents the top-level myfinances.yaml configuration.
type Config struct {
	Currency         model.Currency  `yaml:"currency"`
	IncomeCategories []string        `yaml:"income_categories"`
	Dashboard        DashboardConfig `yaml:"dashboard"`
	Server           ServerConfig    `yaml:"server"`
	Git              GitConfig       `yaml:"git"`
}

// DashboardConfig controls how much the dashboard shows.
type DashboardConfig struct {
	RecentCount int `yaml:"recent_count"`
	TrendMonths int `yaml:"trend_months"`
}

// ServerConfig controls the JSON feed.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// DefaultIncomeCategories are offered when entering income.
var DefaultIncomeCategories = []string{"Salary", "Freelance", "Investment", "Business", "Other Income"}

// Load reads a myfinances.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Path returns the config file location inside a data directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// LoadDir reads <dir>/myfinances.yaml, falling back to Default when the file
// does not exist.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Currency:         model.Rupee,
		IncomeCategories: append([]string(nil), DefaultIncomeCategories...),
		Dashboard: DashboardConfig{
			RecentCount: 5,
			TrendMonths: 6,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "MyFinances",
			AuthorEmail: "myfinances@localhost",
		},
	}
}

// Validate reports the first problem found in cfg.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Currency.Symbol) == "":
		return errors.New("currency.symbol is required")
	case len(c.IncomeCategories) == 0:
		return errors.New("income_categories must not be empty")
	case c.Dashboard.RecentCount <= 0:
		return fmt.Errorf("dashboard.recent_count must be positive, got %d", c.Dashboard.RecentCount)
	case c.Dashboard.TrendMonths <= 0:
		return fmt.Errorf("dashboard.trend_months must be positive, got %d", c.Dashboard.TrendMonths)
	case strings.TrimSpace(c.Server.Addr) == "":
		return errors.New("server.addr is required")
	}
	return nil
}
