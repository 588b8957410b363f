package osc

import "github.com/cbegin/sprockit-go/internal/wavetable"

// interpolate reads the sine table at phase>>7 and blends toward the next
// entry by the low seven phase bits.
func interpolate(phase uint16) uint8 {
	idx := uint8(phase >> 7)
	frac := int(phase & 0x7F)
	s1 := int(wavetable.Sine[idx])
	s2 := int(wavetable.Sine[idx+1])
	return uint8(s1 + ((s2-s1)*frac)>>8)
}

// blend mixes the note's band with its nearest neighbour, weighting 1:1 at the
// band edges and 3:1 inside, so sweeps do not step at band boundaries.
func blend(bank *[wavetable.Bands][wavetable.Size]uint8, idx, note uint8) uint8 {
	band := int(note >> 2)
	cur := int(bank[band][idx])
	switch note % 4 {
	case 0:
		return uint8((cur + int(bank[clampBand(band-1)][idx])) >> 1)
	case 1:
		return uint8((3*cur + int(bank[clampBand(band-1)][idx])) >> 2)
	case 2:
		return uint8((3*cur + int(bank[clampBand(band+1)][idx])) >> 2)
	default:
		return uint8((cur + int(bank[clampBand(band+1)][idx])) >> 1)
	}
}

// pulse builds a pulse wave from two ramps offset by width; the difference is
// re-centred on 128 and saturated.
func pulse(idx, band, width uint8) uint8 {
	b := clampBand(int(band))
	d := int(wavetable.Ramp[b][idx]) - int(wavetable.Ramp[b][idx-width])
	return saturate(128 + d)
}

func clampBand(b int) int {
	if b < 0 {
		return 0
	}
	if b >= wavetable.Bands {
		return wavetable.Bands - 1
	}
	return b
}

func saturate(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
