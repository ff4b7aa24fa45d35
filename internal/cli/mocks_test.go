package cli

import (
	"context"
	"sync"

	"github.com/alnah/go-recsplit/internal/config"
	"github.com/alnah/go-recsplit/internal/interrupt"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock InterruptFactory + InterruptHandler
// ---------------------------------------------------------------------------

// mockInterruptFactory simulates Ctrl+C after a number of lines.
// With Interrupt set, the returned context reports cancellation once
// CancelAfter lines have been handled, and the handler reports an interrupt.
// Unreported keeps WasInterrupted false while the context still cancels,
// as when the signal reaches the parent context before the handler sees it.
type mockInterruptFactory struct {
	Interrupt   bool
	Unreported  bool
	CancelAfter int
	Decision    interrupt.Decision

	mu      sync.Mutex
	handler *mockInterruptHandler
}

func (m *mockInterruptFactory) NewHandler(ctx context.Context) (InterruptHandler, context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handler = &mockInterruptHandler{interrupted: m.Interrupt && !m.Unreported, decision: m.Decision}
	if !m.Interrupt {
		return m.handler, ctx
	}
	return m.handler, &countdownContext{Context: ctx, left: m.CancelAfter + 1}
}

func (m *mockInterruptFactory) Handler() *mockInterruptHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler
}

type mockInterruptHandler struct {
	interrupted bool
	decision    interrupt.Decision

	mu        sync.Mutex
	messages  []string
	stopCalls int
}

func (m *mockInterruptHandler) WasInterrupted() bool {
	return m.interrupted
}

func (m *mockInterruptHandler) WaitForDecision(message string) interrupt.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return m.decision
}

func (m *mockInterruptHandler) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *mockInterruptHandler) WaitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func (m *mockInterruptHandler) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// countdownContext reports context.Canceled from Err after left checks.
// The record stream checks Err once before each line.
type countdownContext struct {
	context.Context

	mu   sync.Mutex
	left int
}

func (c *countdownContext) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.left <= 0 {
		return context.Canceled
	}
	c.left--
	if c.left == 0 {
		return context.Canceled
	}
	return nil
}

// Compile-time interface verification.
var (
	_ ConfigLoader     = (*mockConfigLoader)(nil)
	_ InterruptFactory = (*mockInterruptFactory)(nil)
	_ InterruptHandler = (*mockInterruptHandler)(nil)
)
