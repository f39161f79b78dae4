package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /var/lib/spades/spades.db
winning_score: 250
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/spades/spades.db", cfg.DBPath)
	assert.Equal(t, 250, cfg.WinningScore)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "winning_score: 300\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.WinningScore)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "winnning_score: 300\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"zero winning score", func(c *Config) { c.WinningScore = 0 }, true},
		{"negative winning score", func(c *Config) { c.WinningScore = -100 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"warn level", func(c *Config) { c.LogLevel = "warn" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "INFO", cfg.SlogLevel().String())
	cfg.LogLevel = "error"
	assert.Equal(t, "ERROR", cfg.SlogLevel().String())
}
