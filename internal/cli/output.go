package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/XanaduBarchetta/swe681-spades/internal/engine"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected action (rule violation, bad input, no match)
	ExitCommandError = 2 // Command error (bad config, database failure, corrupted state)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// ErrorCode classifies an engine error for machine-readable output. Rule
// violations surface their rule code directly.
func ErrorCode(err error) string {
	switch {
	case engine.IsInputError(err):
		return "INVALID_INPUT"
	case errors.Is(err, engine.ErrNoActiveMatch):
		return "NO_ACTIVE_MATCH"
	case game.IsRuleViolation(err):
		return string(game.RuleCodeOf(err))
	case game.IsBadState(err):
		return "BAD_STATE"
	default:
		return "INTERNAL"
	}
}

// reportError renders err in the configured format and converts it into an
// ExitError so main can pick the process exit code. Rejected actions exit 1;
// corruption and infrastructure failures exit 2. Commands return the result
// with SilenceErrors set, so nothing is printed twice.
func reportError(f *OutputFormatter, err error) error {
	code := ErrorCode(err)
	_ = f.Error(code, err.Error())

	exit := ExitFailure
	if code == "BAD_STATE" || code == "INTERNAL" {
		exit = ExitCommandError
	}
	return &ExitError{Code: exit, Message: code, Err: err}
}
