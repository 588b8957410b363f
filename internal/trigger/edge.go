// Package trigger provides one-shot signals shared between the note intake
// and the envelope, LFO and oscillator consumers.
package trigger

import "sync/atomic"

// Edge is a set-once, take-once flag. Raise may be called from any goroutine;
// each raise is observed by at most one Take.
type Edge struct {
	v atomic.Bool
}

func (e *Edge) Raise() { e.v.Store(true) }

// Take reports whether the edge was raised and clears it in the same step.
func (e *Edge) Take() bool { return e.v.CompareAndSwap(true, false) }

// Pending reports the flag without consuming it.
func (e *Edge) Pending() bool { return e.v.Load() }

func (e *Edge) Clear() { e.v.Store(false) }
