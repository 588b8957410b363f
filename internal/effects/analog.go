package effects

import "math"

const (
	minCutoffHz = 20.0
	// potOctaves spreads the 0..510 pot sum over ten octaves above minCutoffHz.
	potOctaves = 10.0
	potMax     = 510.0
	maxRes     = 0.95
)

// Analog models the voltage controlled lowpass that follows the VCA. Its
// cutoff and resonance come from the digital pot settings.
type Analog struct {
	rate float64
	pot  uint16
	res  uint8
	// topology preserving state variable filter coefficients and state
	a1, a2, a3 float64
	k          float64
	ic1, ic2   float64
}

func NewAnalog(sampleRate int) *Analog {
	a := &Analog{rate: float64(sampleRate)}
	a.Set(uint16(potMax), 0)
	return a
}

// CutoffHz maps a pot sum to a corner frequency.
func CutoffHz(pot uint16) float64 {
	return minCutoffHz * math.Exp2(float64(min(pot, uint16(potMax)))*potOctaves/potMax)
}

// Set updates the coefficients when the pots moved.
func (a *Analog) Set(pot uint16, resonance uint8) {
	if pot == a.pot && resonance == a.res && a.a1 != 0 {
		return
	}
	a.pot, a.res = pot, resonance
	hz := min(CutoffHz(pot), a.rate*0.45)
	g := math.Tan(math.Pi * hz / a.rate)
	a.k = 2 - 2*maxRes*float64(resonance)/255
	a.a1 = 1 / (1 + g*(g+a.k))
	a.a2 = g * a.a1
	a.a3 = g * a.a2
}

func (a *Analog) Process(x float32) float32 {
	v3 := float64(x) - a.ic2
	v1 := a.a1*a.ic1 + a.a2*v3
	v2 := a.ic2 + a.a2*a.ic1 + a.a3*v3
	a.ic1 = 2*v1 - a.ic1
	a.ic2 = 2*v2 - a.ic2
	return float32(v2)
}

func (a *Analog) Reset() { a.ic1, a.ic2 = 0, 0 }

// DCBlocker removes the offset of the unsigned sample stream.
type DCBlocker struct {
	prevIn, prevOut float32
}

func (d *DCBlocker) Process(x float32) float32 {
	y := x - d.prevIn + 0.995*d.prevOut
	d.prevIn, d.prevOut = x, y
	return y
}

func (d *DCBlocker) Reset() { *d = DCBlocker{} }
