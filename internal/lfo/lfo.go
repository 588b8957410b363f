// Package lfo implements the low-frequency oscillator that modulates one
// synth parameter at a time.
package lfo

import (
	"github.com/cbegin/sprockit-go/internal/osc"
	"github.com/cbegin/sprockit-go/internal/params"
)

// Rates maps LFORate>>3 to a phase increment per run.
var Rates = [32]uint16{
	1, 2, 4, 8, 16, 32, 48, 64, 80, 96, 112, 128, 192,
	224, 256, 288, 320, 352, 384, 448,
	512, 576, 640, 704, 778, 896, 1024,
	1280, 1536, 2048, 2560, 3072,
}

// LFO is a free-running oscillator sampled once per run. It keeps its own
// generator so morph and noise state never leak into the audio oscillators.
type LFO struct {
	phase uint16
	gen   *osc.Generator
	last  uint8
}

func New() *LFO {
	return &LFO{gen: osc.NewGenerator()}
}

func (l *LFO) Phase() uint16 { return l.phase }

// Last is the value written to the destination on the last run.
func (l *LFO) Last() uint8 { return l.last }

// Active reports whether the amount is high enough to modulate.
func Active(amount uint8) bool { return amount > 1 }

// Reset zeros the phase and restarts the morph sequence for w. The noise
// register keeps running, so a noise LFO does not repeat on every note.
func (l *LFO) Reset(w osc.Waveform) {
	l.phase = 0
	l.gen.Sync(w)
}

// Run samples the LFO and writes the modulated value into the destination
// slot. The base value is whatever the slot's source dictates, so knob and
// MIDI changes stay audible underneath the modulation.
func (l *LFO) Run(s *params.State) {
	w := osc.Waveform(s.Value[params.LFOWaveshape])
	if s.Value[params.LFOSync] == 1 && s.LFOSync.Take() {
		l.Reset(w)
	}

	dest := s.LFOTarget()
	base := s.Governing(dest)
	amount := s.Value[params.LFOAmount]

	switch {
	case Active(amount):
		m := int(l.gen.Sample(w, l.phase, 0)) - 128
		l.last = clamp(int(base) + (m*int(amount))>>7)
	case dest == params.Amplitude:
		l.last = 255
	default:
		l.last = base
	}
	s.Value[dest] = l.last

	rate := Rates[s.Value[params.LFORate]>>3]
	l.phase = uint16((uint32(l.phase) + uint32(rate)) % params.PhaseModulus)
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
