package osc

import "github.com/cbegin/sprockit-go/internal/wavetable"

const (
	lfsrSeed = 0xACE1

	// squareWidth is the ramp offset that gives an even pulse.
	squareWidth = 127
	// hardSyncWidth narrows the pulse used by the hard-sync shape.
	hardSyncWidth = 126

	// halfCycle splits the raw square; phases run 0..32766.
	halfCycle = 16383

	morph1Period = 10
	morph2Period = 10
	morph2Shift  = 50
	morph3Period = 50
	morph4Period = 250
	morph5Period = 10
	morph6Period = 50
	morph7Period = 25
	morph8Period = 4000
	morph9Period = 10

	// wideSpan is the length of the two-stage morph5/morph6 sequence.
	wideSpan = 383
)

// LFSR is a 16-bit Fibonacci LFSR with taps 15, 13, 12 and 10. Both audio
// oscillators draw from one register, so each takes every other value.
type LFSR struct {
	lfsr uint16
}

func NewNoise() *LFSR { return &LFSR{lfsr: lfsrSeed} }

// Next steps the register and returns its low byte.
func (n *LFSR) Next() uint8 {
	l := n.lfsr
	bit := ((l >> 15) ^ (l >> 13) ^ (l >> 12) ^ (l >> 10)) & 1
	n.lfsr = l<<1 | bit
	return uint8(n.lfsr)
}

// Reset reseeds the register.
func (n *LFSR) Reset() { n.lfsr = lfsrSeed }

// Generator owns the running state of one oscillator instance: morph timers
// and indices and the morph2 phase shifter. The noise register may be shared.
// The zero value is not ready; use NewGenerator.
type Generator struct {
	morphTimer uint8
	morphIndex uint8
	descending bool

	wideIndex uint16
	wideTimer uint16

	shifter    uint8
	shiftTimer uint8

	noise *LFSR
}

// NewGenerator returns a generator with a noise register of its own.
func NewGenerator() *Generator {
	return NewGeneratorWithNoise(NewNoise())
}

// NewGeneratorWithNoise returns a generator drawing noise from n.
func NewGeneratorWithNoise(n *LFSR) *Generator {
	return &Generator{noise: n}
}

// Sync restarts the morph sequence on a new note. Morph7 keeps its pulse
// width across notes so repeated notes continue the sweep.
func (g *Generator) Sync(w Waveform) {
	g.descending = false
	g.wideIndex = 0
	g.morphTimer = 0
	if w != Morph7 {
		g.morphIndex = 0
	}
}

// Reset returns the generator to its power-on state, noise register included.
func (g *Generator) Reset() {
	n := g.noise
	*g = Generator{noise: n}
	n.Reset()
}

// Sample returns the 8-bit output for the given phase (0..32766) and note.
// Morph and noise waveforms advance their internal state once per call.
func (g *Generator) Sample(w Waveform, phase uint16, note uint8) uint8 {
	if note > 127 {
		note = 127
	}
	idx := uint8(phase >> 7)
	band := note >> 2

	switch w {
	case Sine:
		return interpolate(phase)
	case Ramp:
		return blend(&wavetable.Ramp, idx, note)
	case Triangle:
		return blend(&wavetable.Triangle, idx, note)
	case Square:
		return pulse(idx, band, squareWidth)

	case Morph1:
		g.tick(morph1Period)
		mi := int(g.morphIndex)
		a := int(pulse(idx, band, g.morphIndex))
		b := int(wavetable.Ramp[band][idx+127])
		return uint8((a*mi + b*(255-mi)) >> 8)

	case Morph2:
		g.tick(morph2Period)
		g.shiftTimer--
		if g.shiftTimer == 0 {
			g.shifter++
			g.shiftTimer = morph2Shift
		}
		mi := int(g.morphIndex)
		a := int(wavetable.Triangle[band][idx])
		b := int(wavetable.Ramp[band][idx+g.shifter])
		return uint8((a*mi + b*(255-mi)) >> 8)

	case Morph3:
		g.tick(morph3Period)
		d := int(wavetable.Triangle[band][idx]) - int(wavetable.Ramp[band][idx-g.morphIndex])
		return saturate(128 + d)

	case Morph4:
		if g.morphTimer == 0 {
			g.pingPong()
			g.morphTimer = morph4Period
		}
		g.morphTimer--
		return pulse(idx, band, g.morphIndex)

	case Morph5:
		return g.wide(morph5Period, idx, band, wavetable.Sine[idx])

	case Morph6:
		return g.wide(morph6Period, idx, band, wavetable.RampSimple[idx])

	case Morph7:
		g.tick(morph7Period)
		return pulse(idx, band, g.morphIndex)

	case Morph8:
		if g.wideTimer == 0 {
			g.morphIndex++
			g.wideTimer = morph8Period
		}
		g.wideTimer--
		return pulse(idx, band, g.morphIndex)

	case Morph9:
		g.tick(morph9Period)
		return pulse(idx, band, g.morphIndex)

	case HardSync:
		return pulse(uint8(phase>>8), note>>3, hardSyncWidth)

	case Noise:
		return g.noise.Next()

	case RawSquare:
		if phase > halfCycle {
			return 255
		}
		return 0

	default:
		return wavetable.Sine[idx]
	}
}

// tick advances the shared 8-bit morph index every period calls.
func (g *Generator) tick(period uint8) {
	if g.morphTimer == 0 {
		g.morphIndex++
		g.morphTimer = period
	}
	g.morphTimer--
}

func (g *Generator) pingPong() {
	if !g.descending {
		g.morphIndex++
		if g.morphIndex == 255 {
			g.descending = true
		}
		return
	}
	g.morphIndex--
	if g.morphIndex == 0 {
		g.descending = false
	}
}

// wide runs the two-stage morph: the first voice (lead, enveloped by a rising
// ramp) fades in over the first 255 steps, then a pulse voice enveloped by an
// inverted sine takes over, overlapping between steps 129 and 254.
func (g *Generator) wide(period uint8, idx, band, lead uint8) uint8 {
	if g.morphTimer == 0 {
		g.wideIndex++
		g.morphTimer = period
	}
	g.morphTimer--

	var a, b int
	wi := g.wideIndex
	if wi < 255 {
		a = (int(lead) * int(wavetable.RampSimple[wi])) >> 8
	}
	if wi > 128 && wi < wideSpan {
		env := 255 - int(wavetable.Sine[uint8(wi-128)])
		b = (int(pulse(idx, band, g.morphIndex)) * env) >> 8
	}
	if wi == wideSpan {
		g.wideIndex = 0
	}
	return uint8((a + b) >> 1)
}
