package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Tests for DefaultEnv
// ---------------------------------------------------------------------------

func TestDefaultEnvReturnsValidEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	require.NotNil(t, env)

	assert.Equal(t, os.Stdin, env.Stdin)
	assert.Equal(t, os.Stdout, env.Stdout)
	assert.Equal(t, os.Stderr, env.Stderr)
	assert.NotNil(t, env.Getenv)
	assert.NotNil(t, env.Now)
	assert.NotNil(t, env.Logger)
	assert.NotNil(t, env.Console)
	assert.NotNil(t, env.ConfigLoader)
	assert.NotNil(t, env.InterruptFactory)
}

func TestDefaultEnvGetenvUsesOsGetenv(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()

	t.Setenv("RECSPLIT_TEST_KEY_12345", "test_value_xyz")

	assert.Equal(t, "test_value_xyz", DefaultEnv().Getenv("RECSPLIT_TEST_KEY_12345"))
}

func TestDefaultEnvNowReturnsCurrentTime(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := DefaultEnv().Now()
	after := time.Now()

	assert.False(t, got.Before(before), "Now() = %v, before %v", got, before)
	assert.False(t, got.After(after), "Now() = %v, after %v", got, after)
}

func TestDefaultInterruptFactory(t *testing.T) {
	t.Parallel()

	h, ctx := DefaultEnv().InterruptFactory.NewHandler(context.Background())
	defer h.Stop()

	require.NotNil(t, ctx)
	assert.False(t, h.WasInterrupted(), "WasInterrupted() should be false before any signal")
}

// ---------------------------------------------------------------------------
// Tests for NewEnv
// ---------------------------------------------------------------------------

func TestNewEnvAppliesOptions(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("answer\n")
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loader := &mockConfigLoader{}
	factory := &mockInterruptFactory{}

	env := NewEnv(
		WithStdin(stdin),
		WithStdout(&stdout),
		WithStderr(&stderr),
		WithGetenv(staticEnv(map[string]string{"K": "V"})),
		WithNow(fixedTime(fixed)),
		WithConfigLoader(loader),
		WithInterruptFactory(factory),
	)

	assert.Same(t, stdin, env.Stdin, "WithStdin not applied")
	assert.Same(t, &stdout, env.Stdout, "WithStdout not applied")
	assert.Same(t, &stderr, env.Stderr, "WithStderr not applied")
	assert.Equal(t, "V", env.Getenv("K"), "WithGetenv not applied")
	assert.True(t, env.Now().Equal(fixed), "WithNow not applied")
	assert.Same(t, loader, env.ConfigLoader, "WithConfigLoader not applied")
	assert.Same(t, factory, env.InterruptFactory, "WithInterruptFactory not applied")
}

func TestNewEnvConsoleFollowsWriters(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := NewEnv(WithStdout(&stdout), WithStderr(&stderr))

	env.Console.Infof("hello")
	env.Console.Errorf("boom")
	env.Logger.Warn("careful")

	assert.Equal(t, "hello\n", stdout.String())
	assert.Contains(t, stderr.String(), "boom\n", "stderr should contain plain error")
	assert.Contains(t, stderr.String(), "careful", "stderr should contain warning log")
}

func TestNewEnvWithNoOptionsEqualsDefault(t *testing.T) {
	t.Parallel()

	env := NewEnv()
	assert.Equal(t, os.Stderr, env.Stderr)
	assert.Equal(t, os.Stdout, env.Stdout)
}
