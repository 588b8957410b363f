package audio

import (
	"errors"

	"github.com/cbegin/sprockit-go/internal/effects"
)

// Source produces unsigned 8-bit samples at its own fixed rate.
type Source interface {
	Render(dst []uint8)
}

// Amplifier reports the current VCA drive, 0..255.
type Amplifier interface {
	VCA() uint8
}

// Pots reports the filter pot settings last written to the bus.
type Pots interface {
	Cutoff() uint16
	Resonance() uint8
}

var ErrInvalidRate = errors.New("sample rate must be positive")

const chunk = 64

type StageOptions struct {
	// Amplifier scales each sample by VCA/255. Nil leaves samples at full
	// scale.
	Amplifier Amplifier
	// Pots drives the analog filter model. Nil bypasses it.
	Pots Pots
	// Effects run after the filter.
	Effects *effects.Chain
	// Tap sees every finished stereo buffer on the audio goroutine.
	Tap func([]float32)
	// Gain is the final output level; zero means 0.8.
	Gain float32
}

// Stage turns the 8-bit voice into interleaved stereo float32 at the output
// rate: VCA, linear resampling, DC removal, the analog filter model and any
// outboard effects. It implements SampleSource.
type Stage struct {
	src     Source
	amp     Amplifier
	pots    Pots
	analog  *effects.Analog
	dc      effects.DCBlocker
	chain   *effects.Chain
	tap     func([]float32)
	gain    float32
	step    float64
	pos     float64
	prev    float32
	cur     float32
	raw     [chunk]uint8
	rawNext int
	vca     float32
}

func NewStage(src Source, sourceRate, outRate int, opts StageOptions) (*Stage, error) {
	if sourceRate <= 0 || outRate <= 0 {
		return nil, ErrInvalidRate
	}
	st := &Stage{
		src:     src,
		amp:     opts.Amplifier,
		pots:    opts.Pots,
		chain:   opts.Effects,
		tap:     opts.Tap,
		gain:    opts.Gain,
		step:    float64(sourceRate) / float64(outRate),
		rawNext: chunk,
		vca:     1,
	}
	if st.gain == 0 {
		st.gain = 0.8
	}
	if st.pots != nil {
		st.analog = effects.NewAnalog(outRate)
	}
	return st, nil
}

func (st *Stage) pull() float32 {
	if st.rawNext >= chunk {
		st.src.Render(st.raw[:])
		st.rawNext = 0
		if st.amp != nil {
			st.vca = float32(st.amp.VCA()) / 255
		}
		if st.analog != nil {
			st.analog.Set(st.pots.Cutoff(), st.pots.Resonance())
		}
	}
	v := st.raw[st.rawNext]
	st.rawNext++
	return (float32(v) - 128) / 128 * st.vca
}

// Process fills dst with interleaved stereo frames.
func (st *Stage) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		st.pos += st.step
		for st.pos >= 1 {
			st.pos--
			st.prev = st.cur
			st.cur = st.pull()
		}
		x := st.prev + (st.cur-st.prev)*float32(st.pos)
		x = st.dc.Process(x)
		if st.analog != nil {
			x = st.analog.Process(x)
		}
		if st.chain != nil {
			x = st.chain.Process(x)
		}
		x *= st.gain
		dst[i], dst[i+1] = x, x
	}
	if st.tap != nil {
		st.tap(dst)
	}
}

// Finished reports whether a finishing source has run out.
func (st *Stage) Finished() bool {
	if f, ok := st.src.(interface{ Finished() bool }); ok {
		return f.Finished()
	}
	return false
}
