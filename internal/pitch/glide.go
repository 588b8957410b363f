// Package pitch derives oscillator frequencies from the played note: detune
// for the second oscillator, compressed pitch shift and the portamento glide.
package pitch

import (
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/wavetable"
)

const (
	defaultSteps    = 128
	defaultStepsLog = 7
)

var portamentoSteps = [8]int{32, 64, 128, 256, 512, 1024, 2048, 4096}

// Glide holds the trajectory of both oscillators between runs. One Glide
// serves one State; Run is called from the Pitch turn of the main loop.
type Glide struct {
	valid     bool
	lastShift uint8
	lastNote  uint8

	shifted [params.NumOscillators]uint8
	prev    [params.NumOscillators]uint16
	step    [params.NumOscillators]int
	count   [params.NumOscillators]int
	counter [params.NumOscillators]int
}

func New() *Glide { return &Glide{} }

// Detune returns the second oscillator's note. The detune knob is read in
// steps of eight; 16 is unison.
func Detune(note, detune uint8) uint8 {
	d := int(detune >> 3)
	n := int(note)
	if d > 16 {
		n += d - 16
	} else {
		n -= 16 - d
	}
	return clampNote(n)
}

// Compress quarters the distance of a pitch shift value from the center.
func Compress(shift uint8) uint8 {
	if shift < params.PitchCenter {
		return params.PitchCenter - (params.PitchCenter-shift)>>2
	}
	return params.PitchCenter + (shift-params.PitchCenter)>>2
}

// Shift transposes note by a compressed shift value in semitones.
func Shift(note, shift uint8) uint8 {
	return clampNote(int(note) + int(shift) - params.PitchCenter)
}

// Steps returns the glide length and its log2 for a portamento setting.
func Steps(portamento uint8) (n int, log uint) {
	if portamento == 0 {
		return defaultSteps, defaultStepsLog
	}
	i := portamento >> 5
	return portamentoSteps[i], 5 + uint(i)
}

// Plan splits a frequency delta into a per-run step and a run count. Deltas
// smaller than the glide length move one unit per run.
func Plan(delta, n int, log uint) (step, count int) {
	switch {
	case delta >= n || delta <= -n:
		return delta / (1 << log), n
	case delta < 0:
		return -1, -delta
	default:
		return 1, delta
	}
}

// Run advances both oscillator frequencies by one glide step.
func (g *Glide) Run(s *params.State) {
	if s.Frequency(0) == 0 {
		s.SetFrequency(0, wavetable.Frequency(s.Note[0]))
	}
	s.Note[1] = Detune(s.Note[0], s.Value[params.OscDetune])

	shift := Compress(s.Value[params.PitchShift])
	porta := s.Value[params.Portamento]
	modulated := s.LFOTarget() == params.PitchShift && s.NoteOn()
	if !modulated && shift == params.PitchCenter && porta == 0 {
		g.Bypass(s)
		return
	}

	if !g.valid || shift != g.lastShift || s.Note[0] != g.lastNote {
		g.valid = true
		g.lastShift = shift
		g.lastNote = s.Note[0]
		n, log := Steps(porta)
		for i := range g.shifted {
			g.shifted[i] = Shift(s.Note[i], shift)
			from := g.prev[i]
			if porta == 0 {
				from = s.Frequency(i)
			}
			target := wavetable.Frequency(g.shifted[i])
			g.step[i], g.count[i] = Plan(int(target)-int(from), n, log)
			g.counter[i] = 0
		}
	}

	for i := range g.shifted {
		f := wavetable.Frequency(g.shifted[i])
		if g.counter[i] < g.count[i] {
			g.counter[i]++
			if g.counter[i] < g.count[i] {
				f = uint16(int(s.Frequency(i)) + g.step[i])
			}
		}
		s.SetFrequency(i, f)
		g.prev[i] = f
	}
}

// Bypass writes the unshifted table frequencies and forgets any glide in
// progress, so the next active run plans from scratch.
func (g *Glide) Bypass(s *params.State) {
	for i := range g.shifted {
		f := wavetable.Frequency(s.Note[i])
		s.SetFrequency(i, f)
		g.prev[i] = f
		g.step[i] = 0
		g.count[i] = 0
		g.counter[i] = 0
	}
	g.valid = false
}

// Settled reports whether both oscillators have reached their targets.
func (g *Glide) Settled() bool {
	for i := range g.count {
		if g.counter[i] < g.count[i] {
			return false
		}
	}
	return true
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
