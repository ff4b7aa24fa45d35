// Package interrupt turns Ctrl+C into a graceful early stop.
//
// The first interrupt cancels the pass; lines already classified stay in
// their output files. A second interrupt within the decision window asks
// for the partial output to be discarded. Any interrupt after that exits
// the process immediately.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Decision is what happens to partial output after an early stop.
type Decision int

const (
	// Keep leaves the already-written prefix of each output in place.
	Keep Decision = iota
	// Discard removes the partial output.
	Discard
)

// String returns the string representation of the Decision.
func (d Decision) String() string {
	switch d {
	case Keep:
		return "Keep"
	case Discard:
		return "Discard"
	default:
		return fmt.Sprintf("Decision(%d)", d)
	}
}

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// decisionWindow is the time window for a second Ctrl+C to choose Discard.
const decisionWindow = 2 * time.Second

// forceMessage is printed when a third interrupt kills the process.
const forceMessage = "\nForced exit."

// Handler tracks interrupts received during a pass.
type Handler struct {
	mu             sync.Mutex
	firstInterrupt time.Time
	interrupts     int
	discarded      bool
	stopped        bool
	cancelFunc     context.CancelFunc
	discardCh      chan struct{} // Closed when the user chooses Discard
	done           chan struct{} // Signals listen goroutine to exit

	exitFunc func(int)
	nowFunc  func() time.Time
	stderr   io.Writer
}

// Options holds injectable dependencies for testing.
type Options struct {
	SigCh    <-chan os.Signal
	ExitFunc func(int)
	NowFunc  func() time.Time
	// Stderr must be safe for concurrent writes; the listener goroutine
	// and WaitForDecision both write to it.
	Stderr io.Writer
}

// NewHandler creates a handler that listens for SIGINT/SIGTERM.
// Returns the handler and a context that is canceled on first interrupt.
func NewHandler(parent context.Context) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 3)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return NewHandlerWithOptions(parent, Options{SigCh: sigCh})
}

// NewHandlerWithOptions creates a handler with injectable dependencies.
// No listener is started when opts.SigCh is nil.
func NewHandlerWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		cancelFunc: cancel,
		discardCh:  make(chan struct{}),
		done:       make(chan struct{}),
		exitFunc:   opts.ExitFunc,
		nowFunc:    opts.NowFunc,
		stderr:     opts.Stderr,
	}
	if h.exitFunc == nil {
		h.exitFunc = os.Exit
	}
	if h.nowFunc == nil {
		h.nowFunc = time.Now
	}
	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if opts.SigCh != nil {
		go h.listen(opts.SigCh)
	}

	return h, ctx
}

// listen handles incoming signals until Stop is called.
func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case _, ok := <-sigCh:
			if !ok {
				return
			}
			if exit := h.record(); exit {
				fmt.Fprintln(h.stderr, forceMessage)
				h.exitFunc(ExitInterrupt)
				return
			}
		}
	}
}

// record registers one interrupt and reports whether the process must exit.
func (h *Handler) record() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return false
	}
	now := h.nowFunc()
	h.interrupts++

	switch {
	case h.interrupts == 1:
		h.firstInterrupt = now
		h.cancelFunc()
	case h.discarded:
		return true
	case now.Sub(h.firstInterrupt) <= decisionWindow:
		h.discarded = true
		close(h.discardCh)
	}
	return false
}

// WasInterrupted returns true if at least one interrupt was received.
func (h *Handler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupts > 0
}

// WaitForDecision blocks until the decision window after the first
// interrupt has elapsed or a second interrupt arrives, and returns the
// user's choice. message is printed while waiting.
// Returns Keep immediately when no interrupt was received.
func (h *Handler) WaitForDecision(message string) Decision {
	h.mu.Lock()
	if h.interrupts == 0 {
		h.mu.Unlock()
		return Keep
	}
	if h.discarded {
		h.mu.Unlock()
		return Discard
	}
	remaining := decisionWindow - h.nowFunc().Sub(h.firstInterrupt)
	h.mu.Unlock()

	if remaining <= 0 {
		return Keep
	}

	fmt.Fprintln(h.stderr, message)

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-h.discardCh:
		return Discard
	case <-timer.C:
		// A second interrupt may have landed on the deadline.
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.discarded {
			return Discard
		}
		return Keep
	}
}

// Stop cleans up the handler. Should be called when done.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	close(h.done)
}
