// Package flow provides the small request-coordination primitives the page
// controllers share: a debouncer that collapses bursts of user input into a
// single upstream call, and a sequencer that lets callers discard responses
// that have been superseded by a newer request.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned when a newer request replaced the caller's.
var ErrSuperseded = errors.New("superseded by a newer request")

// Debouncer collapses a burst of calls into one. Every caller joins the
// burst; after the quiet window elapses only the most recent caller proceeds,
// all earlier callers receive ErrSuperseded.
type Debouncer struct {
	window time.Duration

	mu  sync.Mutex
	seq uint64
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Join registers the caller in the current burst and blocks for the debounce
// window. It returns nil only for the latest caller.
func (d *Debouncer) Join(ctx context.Context) error {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.window)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	d.mu.Lock()
	latest := d.seq
	d.mu.Unlock()

	if mine != latest {
		return ErrSuperseded
	}
	return nil
}

// Token identifies one issued request in a Sequencer.
type Token uint64

// Sequencer hands out monotonically increasing request tokens so that a
// response arriving for an old request can be detected and dropped.
type Sequencer struct {
	mu sync.Mutex
	n  uint64
}

// Begin issues a token for a new request, invalidating all earlier tokens.
func (s *Sequencer) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return Token(s.n)
}

// Current reports whether the token still belongs to the latest request.
func (s *Sequencer) Current(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(t) == s.n
}
