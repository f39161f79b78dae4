// Package config loads and validates the server configuration.
//
// Configuration is a small YAML file; every field has a default, so an
// absent file is valid. Loaded values are checked against an embedded CUE
// schema, which keeps the validation rules declarative and in one place.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Config is the server configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path" json:"db_path"`

	// WinningScore is the match-winning threshold.
	WinningScore int `yaml:"winning_score" json:"winning_score"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DBPath:       "spades.db",
		WinningScore: 500,
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path skips the file and returns the defaults. Unknown
// keys are rejected so typos fail loudly instead of silently keeping a
// default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate unifies cfg with the embedded schema and requires a concrete,
// valid result.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return errors.New("config schema missing #Config")
	}

	unified := def.Unify(ctx.Encode(cfg))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel maps the configured level name onto slog's scale.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
