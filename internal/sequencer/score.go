package sequencer

import (
	"time"

	"github.com/cbegin/sprockit-go/internal/midi"
)

// Cursor walks a recorded score against a tick clock, releasing each event
// once its time has been reached.
type Cursor struct {
	score    midi.Score
	index    int
	tickRate int
	ticks    int64
	loop     bool
	loops    int
}

// NewCursor prepares a score for playback at tickRate ticks per second. A
// looping cursor restarts from the top after the last event.
func NewCursor(score midi.Score, tickRate int, loop bool) *Cursor {
	return &Cursor{score: score, tickRate: tickRate, loop: loop}
}

// Advance moves the clock forward by n ticks and hands every event that
// became due to emit, in score order.
func (c *Cursor) Advance(n int, emit func(midi.Event)) {
	c.ticks += int64(n)
	now := c.elapsed()
	for c.index < len(c.score) && c.score[c.index].At <= now {
		emit(c.score[c.index].Event)
		c.index++
	}
	if c.index == len(c.score) && c.loop && len(c.score) > 0 {
		c.index = 0
		c.ticks = 0
		c.loops++
	}
}

// Done reports whether every event has been emitted. Looping cursors are
// never done.
func (c *Cursor) Done() bool {
	return !c.loop && c.index >= len(c.score)
}

func (c *Cursor) Loops() int { return c.loops }

func (c *Cursor) elapsed() time.Duration {
	if c.tickRate <= 0 {
		return 0
	}
	return time.Duration(c.ticks * int64(time.Second) / int64(c.tickRate))
}
