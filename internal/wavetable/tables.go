// Package wavetable holds the fixed lookup tables shared by the oscillator,
// glide and LFO code. Every table is 256 entries of unsigned 8-bit samples
// centred on 128 and is indexed with an 8-bit phase.
package wavetable

const (
	Size  = 256
	Bands = 32

	maxHarmonic = Size/2 - 1
	// nyquist in phase-increment units (half the audio tick rate).
	nyquist = 16384
)

// Sine is one cycle of a full-scale sine.
var Sine = [Size]uint8{
	128, 131, 134, 137, 140, 143, 146, 149, 152, 155, 158, 162, 165, 167, 170, 173,
	176, 179, 182, 185, 188, 190, 193, 196, 198, 201, 203, 206, 208, 211, 213, 215,
	218, 220, 222, 224, 226, 228, 230, 232, 234, 235, 237, 238, 240, 241, 243, 244,
	245, 246, 248, 249, 250, 250, 251, 252, 253, 253, 254, 254, 254, 255, 255, 255,
	255, 255, 255, 255, 254, 254, 254, 253, 253, 252, 251, 250, 250, 249, 248, 246,
	245, 244, 243, 241, 240, 238, 237, 235, 234, 232, 230, 228, 226, 224, 222, 220,
	218, 215, 213, 211, 208, 206, 203, 201, 198, 196, 193, 190, 188, 185, 182, 179,
	176, 173, 170, 167, 165, 162, 158, 155, 152, 149, 146, 143, 140, 137, 134, 131,
	128, 124, 121, 118, 115, 112, 109, 106, 103, 100, 97, 93, 90, 88, 85, 82,
	79, 76, 73, 70, 67, 65, 62, 59, 57, 54, 52, 49, 47, 44, 42, 40,
	37, 35, 33, 31, 29, 27, 25, 23, 21, 20, 18, 17, 15, 14, 12, 11,
	10, 9, 7, 6, 5, 5, 4, 3, 2, 2, 1, 1, 1, 0, 0, 0,
	0, 0, 0, 0, 1, 1, 1, 2, 2, 3, 4, 5, 5, 6, 7, 9,
	10, 11, 12, 14, 15, 17, 18, 20, 21, 23, 25, 27, 29, 31, 33, 35,
	37, 40, 42, 44, 47, 49, 52, 54, 57, 59, 62, 65, 67, 70, 73, 76,
	79, 82, 85, 88, 90, 93, 97, 100, 103, 106, 109, 112, 115, 118, 121, 124,
}

var (
	// RampSimple is a naive rising ramp, used as a slow envelope by the morph
	// waveforms.
	RampSimple [Size]uint8

	// Ramp and Triangle are band-limited banks; band b serves notes 4b..4b+3
	// and holds only the partials that stay below nyquist for the band's top note.
	Ramp     [Bands][Size]uint8
	Triangle [Bands][Size]uint8
)

func init() {
	for i := range RampSimple {
		RampSimple[i] = uint8(i)
	}
	for b := 0; b < Bands; b++ {
		n := Harmonics(b)
		Ramp[b] = synthesize(n, rampPartial)
		Triangle[b] = synthesize(n, trianglePartial)
	}
}

// Harmonics is the number of partials band b can carry without aliasing.
func Harmonics(band int) int {
	top := band*4 + 3
	if top > len(NoteFrequency)-1 {
		top = len(NoteFrequency) - 1
	}
	n := nyquist / int(NoteFrequency[top])
	if n < 1 {
		n = 1
	}
	if n > maxHarmonic {
		n = maxHarmonic
	}
	return n
}

// Partial weights are in 1/65536 units. A rising ramp is the negated
// sin(kx)/k series; the triangle keeps odd partials at 1/k^2 with
// alternating sign.
func rampPartial(k int) int64 { return -65536 / int64(k) }

func trianglePartial(k int) int64 {
	if k%2 == 0 {
		return 0
	}
	w := 65536 / int64(k*k)
	if (k/2)%2 == 1 {
		w = -w
	}
	return w
}

// synthesize sums the first n partials from the sine table using integer
// arithmetic only and rescales the result onto 0..255.
func synthesize(n int, weight func(int) int64) [Size]uint8 {
	var acc [Size]int64
	for k := 1; k <= n; k++ {
		w := weight(k)
		if w == 0 {
			continue
		}
		for i := 0; i < Size; i++ {
			acc[i] += w * (int64(Sine[(k*i)&(Size-1)]) - 128)
		}
	}
	lo, hi := acc[0], acc[0]
	for _, v := range acc {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var out [Size]uint8
	if hi == lo {
		for i := range out {
			out[i] = 128
		}
		return out
	}
	for i, v := range acc {
		out[i] = uint8((v - lo) * 255 / (hi - lo))
	}
	return out
}
