// Package cli implements the spades command-line interface. Each command
// acts as one authenticated user; authentication itself is out of scope, the
// user name given on the command line is trusted.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/XanaduBarchetta/swe681-spades/internal/config"
	"github.com/XanaduBarchetta/swe681-spades/internal/engine"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file path; empty means built-in defaults
	DB      string // database path override
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the spades CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spades",
		Short: "Spades - four-player trick-taking match engine",
		Long:  "Join a table of spades, bid, play cards, and inspect match state.\nMatches persist in SQLite, so any command can resume where the last one left off.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to SQLite database (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewJoinCommand(opts))
	cmd.AddCommand(NewBidCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openEngine loads the configuration and opens the engine over the store.
// The returned cleanup closes the database.
func (o *RootOptions) openEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if o.DB != "" {
		cfg.DBPath = o.DB
	}

	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	s, err := store.Open(cfg.DBPath, log)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open database", err)
	}

	eng := engine.New(s,
		engine.WithLogger(log),
		engine.WithWinningScore(cfg.WinningScore),
	)
	return eng, func() { s.Close() }, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
