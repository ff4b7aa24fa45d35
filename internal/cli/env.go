package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-recsplit/internal/config"
	"github.com/alnah/go-recsplit/internal/console"
	"github.com/alnah/go-recsplit/internal/interrupt"
	"github.com/alnah/go-recsplit/internal/logging"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Logger and Console are replaced by the root command once the global
// flags and the configuration are known.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Output
	Logger  *slog.Logger
	Console *console.Console

	// Factories for collaborators
	ConfigLoader     ConfigLoader
	InterruptFactory InterruptFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// InterruptHandler reports Ctrl+C activity during a split.
type InterruptHandler interface {
	WasInterrupted() bool
	WaitForDecision(message string) interrupt.Decision
	Stop()
}

// InterruptFactory creates interrupt handlers bound to a context.
type InterruptFactory interface {
	NewHandler(ctx context.Context) (InterruptHandler, context.Context)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the reader used for interactive answers.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithInterruptFactory sets the interrupt handler factory.
func WithInterruptFactory(f InterruptFactory) EnvOption {
	return func(e *Env) {
		e.InterruptFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		Logger:           logging.New(os.Stderr, logging.DefaultLevel, logging.DefaultFormat),
		Console:          console.New(os.Stdout, os.Stderr, console.UseColor(os.Stderr, os.Getenv, false)),
		ConfigLoader:     &defaultConfigLoader{},
		InterruptFactory: &defaultInterruptFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
// Console and Logger follow the overridden writers.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	env.Logger = logging.New(env.Stderr, logging.DefaultLevel, logging.DefaultFormat)
	env.Console = console.New(env.Stdout, env.Stderr, console.UseColor(env.Stderr, env.Getenv, false))
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultInterruptFactory implements InterruptFactory with real signals.
type defaultInterruptFactory struct{}

func (defaultInterruptFactory) NewHandler(ctx context.Context) (InterruptHandler, context.Context) {
	return interrupt.NewHandler(ctx)
}

// Compile-time interface verification.
var (
	_ ConfigLoader     = (*defaultConfigLoader)(nil)
	_ InterruptFactory = (*defaultInterruptFactory)(nil)
	_ InterruptHandler = (*interrupt.Handler)(nil)
)
