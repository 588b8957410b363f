package effects

import "math"

// Drive is a tanh waveshaper with an optional one-pole lowpass after it.
type Drive struct {
	pre   float32
	post  float32
	alpha float32
	lp    float32
}

// NewDrive creates a drive stage. A lowpass of 0 Hz or at or above Nyquist
// is disabled.
func NewDrive(sampleRate int, pre, post, lowpassHz float32) *Drive {
	d := &Drive{pre: pre, post: post}
	if lowpassHz > 0 && lowpassHz < float32(sampleRate)/2 {
		rc := 1.0 / (2.0 * math.Pi * float64(lowpassHz))
		dt := 1.0 / float64(sampleRate)
		d.alpha = float32(dt / (rc + dt))
	}
	return d
}

func (d *Drive) Process(x float32) float32 {
	x = float32(math.Tanh(float64(x*d.pre))) * d.post
	if d.alpha > 0 {
		d.lp += d.alpha * (x - d.lp)
		x = d.lp
	}
	return x
}

func (d *Drive) Reset() { d.lp = 0 }
