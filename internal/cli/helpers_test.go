package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-recsplit/internal/config"
	"github.com/alnah/go-recsplit/internal/console"
	"github.com/alnah/go-recsplit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdin     string
	getenv    func(string) string
	loader    *mockConfigLoader
	interrupt *mockInterruptFactory
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withInput(s string) testEnvOption {
	return func(o *testEnvOptions) { o.stdin = s }
}

func withEnvVars(vars map[string]string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = staticEnv(vars) }
}

func withConfig(cfg config.Config) testEnvOption {
	return func(o *testEnvOptions) {
		o.loader = &mockConfigLoader{
			LoadFunc: func() (config.Config, error) { return cfg, nil },
		}
	}
}

func withInterrupt(f *mockInterruptFactory) testEnvOption {
	return func(o *testEnvOptions) { o.interrupt = f }
}

// testOutput gives access to what a command wrote.
type testOutput struct {
	stdout    *syncBuffer
	stderr    *syncBuffer
	loader    *mockConfigLoader
	interrupt *mockInterruptFactory
}

// testEnv creates a test Env with all dependencies mocked.
func testEnv(opts ...testEnvOption) (*Env, *testOutput) {
	options := &testEnvOptions{
		getenv:    staticEnv(nil),
		loader:    &mockConfigLoader{},
		interrupt: &mockInterruptFactory{},
	}
	for _, opt := range opts {
		opt(options)
	}

	out := &testOutput{
		stdout:    &syncBuffer{},
		stderr:    &syncBuffer{},
		loader:    options.loader,
		interrupt: options.interrupt,
	}

	env := &Env{
		Stdin:            strings.NewReader(options.stdin),
		Stdout:           out.stdout,
		Stderr:           out.stderr,
		Getenv:           options.getenv,
		Now:              fixedTime(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)),
		Logger:           logging.New(io.Discard, logging.DefaultLevel, logging.DefaultFormat),
		Console:          console.New(out.stdout, out.stderr, false),
		ConfigLoader:     options.loader,
		InterruptFactory: options.interrupt,
	}

	return env, out
}

// execute runs the root command with args.
func execute(t *testing.T, env *Env, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(env, "test")
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// writeInput creates an input file in a fresh temp dir and returns its path.
func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "failed to create input file")
	return path
}

// readOutput returns the content of path, or fails the test.
func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)
	return string(data)
}

// assertNotExist fails if path exists.
func assertNotExist(t *testing.T, path string) {
	t.Helper()
	assert.NoFileExists(t, path)
}

// useTempConfigDir points the config package at a fresh directory.
// Tests calling this cannot run in parallel.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range config.Keys {
		t.Setenv(config.EnvName(key), "")
	}
	return filepath.Join(dir, "recsplit", "config")
}
