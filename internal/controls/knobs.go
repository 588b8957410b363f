// Package controls models the front panel: eight knobs read one per turn
// with hysteresis, and the LFO and drone buttons.
package controls

import (
	"sync/atomic"

	"github.com/cbegin/sprockit-go/internal/params"
)

// Knobs is the bank of current knob positions. Any goroutine may set a knob;
// the synth loop samples them through a Reader.
type Knobs struct {
	v [params.NumKnobs]atomic.Uint32
}

func NewKnobs(initial [params.NumKnobs]uint8) *Knobs {
	k := &Knobs{}
	for i, v := range initial {
		k.v[i].Store(uint32(v))
	}
	return k
}

// Set moves knob i. Out of range knobs are ignored.
func (k *Knobs) Set(i int, v uint8) {
	if i < 0 || i >= params.NumKnobs {
		return
	}
	k.v[i].Store(uint32(v))
}

func (k *Knobs) Get(i int) uint8 {
	if i < 0 || i >= params.NumKnobs {
		return 0
	}
	return uint8(k.v[i].Load())
}

func (k *Knobs) Snapshot() [params.NumKnobs]uint8 {
	var out [params.NumKnobs]uint8
	for i := range out {
		out[i] = uint8(k.v[i].Load())
	}
	return out
}

// Reader scans the bank one knob per Step, in panel order.
type Reader struct {
	knobs *Knobs
	index int
}

func NewReader(k *Knobs) *Reader { return &Reader{knobs: k} }

// Index is the knob the next Step will read.
func (r *Reader) Index() int { return r.index }

// Step reads the next knob and reports whether it moved. A knob must move
// by at least two from its last accepted reading to count, which keeps
// converter noise from flipping sources. A moved knob takes its slot back
// from MIDI or patch control; the slot's live value is left alone while the
// LFO is modulating it.
func (r *Reader) Step(s *params.State) bool {
	i := r.index
	r.index = (r.index + 1) % params.NumKnobs

	v := r.knobs.Get(i)
	stored := s.Raw[i]
	if !((stored < 254 && v > stored+1) || (stored > 1 && v < stored-1)) {
		return false
	}

	p := params.Param(i)
	s.Raw[p] = v
	if p != s.LFOTarget() {
		s.Value[p] = v
	}
	switch p {
	case params.OscWaveshape:
		params.DecodeOscWaveshape(s, v)
	case params.ADSRLength:
		params.DecodeADSRLength(s, v)
	}
	s.Source[p] = params.Knob
	return true
}
