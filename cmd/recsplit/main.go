package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alnah/go-recsplit/internal/cli"
	"github.com/alnah/go-recsplit/internal/config"
	"github.com/alnah/go-recsplit/internal/logging"
	"github.com/alnah/go-recsplit/internal/partition"
	"github.com/alnah/go-recsplit/internal/prompt"
	"github.com/alnah/go-recsplit/internal/record"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create the CLI environment with production defaults.
	env := cli.DefaultEnv()

	// Bootstrap logger from the environment until flags are parsed.
	env.Logger = logging.Setup(os.Stderr,
		os.Getenv(config.EnvName(config.KeyLogLevel)),
		os.Getenv(config.EnvName(config.KeyLogFormat)))

	rootCmd := cli.NewRootCmd(env, fmt.Sprintf("%s (commit: %s)", version, commit))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := exitCode(err)
		if code != ExitInterrupt {
			env.Logger.Debug("command failed", "error", err)
			env.Console.Errorf("%s", userMessage(err))
		}
		cancel()
		os.Exit(code)
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors and bad
	// global flag values.
	if isCobraUsageError(err) || errors.Is(err, cli.ErrInvalidOption) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3): configuration.
	if errors.Is(err, cli.ErrUnknownConfigKey) || errors.Is(err, cli.ErrInvalidConfigValue) ||
		errors.Is(err, config.ErrInvalidKey) || errors.Is(err, config.ErrInvalidValue) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, prompt.ErrFileNotFound) || errors.Is(err, prompt.ErrInvalidFormat) ||
		errors.Is(err, prompt.ErrInvalidNumber) || errors.Is(err, prompt.ErrNoInput) ||
		errors.Is(err, record.ErrUnknownMode) || errors.Is(err, partition.ErrOutputExists) {
		return ExitValidation
	}

	return ExitGeneral
}

// userMessages are shown alone, without the wrapped detail, so input
// mistakes read exactly as the interactive tool words them.
var userMessages = []error{
	prompt.ErrFileNotFound,
	prompt.ErrInvalidFormat,
	prompt.ErrInvalidNumber,
}

// userMessage returns the text printed in red for err.
func userMessage(err error) string {
	for _, sentinel := range userMessages {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",          // Missing required flag
	"unknown flag",           // Flag doesn't exist
	"unknown shorthand",      // Short flag doesn't exist
	"unknown command",        // Subcommand doesn't exist
	"flag needs an argument", // Flag provided without value
	"invalid argument",       // Invalid flag value type
	"accepts ",               // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",      // Too few arguments
	"requires at most",       // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
