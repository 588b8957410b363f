// Package osc implements the oscillator waveforms: band-limited table
// lookups, difference-of-ramps pulse waves, the nine morphing waveforms and
// the LFSR noise source.
package osc

import "fmt"

// Waveform selects a generator recipe. Values match the waveshape parameter
// encoding; unknown values play a plain sine lookup.
type Waveform uint8

const (
	Sine Waveform = iota
	Ramp
	Square
	Triangle
	Morph1
	Morph2
	Morph3
	Morph4
	Morph5
	Morph6
	Morph7
	Morph8
	Morph9
	HardSync
	Noise
	RawSquare
)

// NumWaveforms is the count of defined waveform ids.
const NumWaveforms = 16

var waveformNames = [NumWaveforms]string{
	"sine", "ramp", "square", "triangle",
	"morph1", "morph2", "morph3", "morph4", "morph5",
	"morph6", "morph7", "morph8", "morph9",
	"hardsync", "noise", "rawsquare",
}

func (w Waveform) String() string {
	if int(w) < len(waveformNames) {
		return waveformNames[w]
	}
	return fmt.Sprintf("waveform(%d)", uint8(w))
}

// IsMorph reports whether the waveform carries a morph sequence.
func (w Waveform) IsMorph() bool { return w >= Morph1 && w <= Morph9 }

// ParseWaveform resolves a waveform name as produced by String.
func ParseWaveform(name string) (Waveform, error) {
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", name)
}
