package midi

import "sync/atomic"

// DefaultQueueSize matches the depth of a hardware MIDI receive FIFO.
const DefaultQueueSize = 12

// Queue hands decoded events from listener goroutines to the synth loop.
// Push never blocks: events arriving while the queue is full are dropped
// and counted.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push offers ev to the queue and reports whether it was accepted.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Pop takes the oldest event, if any, without blocking.
func (q *Queue) Pop() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}

func (q *Queue) Len() int { return len(q.ch) }

func (q *Queue) Cap() int { return cap(q.ch) }

func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
