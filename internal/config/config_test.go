package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/myfinances/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	cfg.Dashboard.TrendMonths = 12

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.IncomeCategories, got.IncomeCategories)
	assert.Equal(t, 12, got.Dashboard.TrendMonths)
	assert.Equal(t, cfg.Dashboard.RecentCount, got.Dashboard.RecentCount)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, got.Server.CORSOrigins)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, model.Rupee, cfg.Currency)
	assert.Equal(t, []string{"Salary", "Freelance", "Investment", "Business", "Other Income"}, cfg.IncomeCategories)
	assert.Equal(t, 5, cfg.Dashboard.RecentCount)
	assert.Equal(t, 6, cfg.Dashboard.TrendMonths)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Empty(t, cfg.Server.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  recent_count: 10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Dashboard.RecentCount)
	assert.Equal(t, 6, cfg.Dashboard.TrendMonths)
	assert.Equal(t, "₹", cfg.Currency.Symbol)
}

func TestLoadDir_MissingFile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"blank symbol", func(c *Config) { c.Currency.Symbol = " " }, "currency.symbol"},
		{"no income categories", func(c *Config) { c.IncomeCategories = nil }, "income_categories"},
		{"zero recent", func(c *Config) { c.Dashboard.RecentCount = 0 }, "recent_count"},
		{"negative trend", func(c *Config) { c.Dashboard.TrendMonths = -1 }, "trend_months"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
