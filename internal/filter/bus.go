package filter

import (
	"sync"
	"sync/atomic"
)

// Pot commands understood by the filter's digital potentiometers.
const (
	CmdPot2      uint8 = 0x11
	CmdPot1      uint8 = 0x12
	CmdResonance uint8 = 0x13
)

// PotWrite is one two-byte transfer to a digital pot.
type PotWrite struct {
	Command uint8
	Value   uint8
}

// Bus carries pot writes to the analog filter. Ready must not block; a bus
// that is busy reports false and the write is retried on a later turn.
type Bus interface {
	Ready() bool
	Write(w PotWrite)
}

// MemoryBus is a Bus that latches the last value per pot. It is safe to read
// from other goroutines while the synth writes to it.
type MemoryBus struct {
	pot1      atomic.Uint32
	pot2      atomic.Uint32
	resonance atomic.Uint32
	writes    atomic.Uint64

	mu      sync.Mutex
	busy    bool
	history []PotWrite
	keep    int
}

// NewMemoryBus returns a bus that also keeps the last keep writes for
// inspection. keep may be zero.
func NewMemoryBus(keep int) *MemoryBus {
	return &MemoryBus{keep: keep}
}

func (b *MemoryBus) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.busy
}

// SetBusy makes Ready report false until cleared.
func (b *MemoryBus) SetBusy(busy bool) {
	b.mu.Lock()
	b.busy = busy
	b.mu.Unlock()
}

func (b *MemoryBus) Write(w PotWrite) {
	switch w.Command {
	case CmdPot1:
		b.pot1.Store(uint32(w.Value))
	case CmdPot2:
		b.pot2.Store(uint32(w.Value))
	case CmdResonance:
		b.resonance.Store(uint32(w.Value))
	default:
		return
	}
	b.writes.Add(1)
	if b.keep == 0 {
		return
	}
	b.mu.Lock()
	b.history = append(b.history, w)
	if len(b.history) > b.keep {
		b.history = b.history[len(b.history)-b.keep:]
	}
	b.mu.Unlock()
}

// Cutoff is the combined 9-bit pot setting, 0..510.
func (b *MemoryBus) Cutoff() uint16 {
	return uint16(b.pot1.Load() + b.pot2.Load())
}

func (b *MemoryBus) Resonance() uint8 { return uint8(b.resonance.Load()) }

func (b *MemoryBus) Writes() uint64 { return b.writes.Load() }

// History returns a copy of the retained writes, oldest first.
func (b *MemoryBus) History() []PotWrite {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]PotWrite(nil), b.history...)
}
