// Package filter runs the filter envelope and keeps the analog filter's
// digital pots in step with it over a shared bus.
package filter

import (
	"fmt"

	"github.com/cbegin/sprockit-go/internal/params"
)

const (
	// Steps is the envelope resolution; the adder carries Steps times the
	// cutoff offset.
	Steps    = 128
	stepsLog = 7
)

// Stage is a filter envelope state.
type Stage uint8

const (
	Attack Stage = iota
	Decay
	Sustain
	Release
)

func (s Stage) String() string {
	switch s {
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Envelope is the additive filter ADSR. The adder accumulates slope once per
// step and shifts back down by Steps when applied to the cutoff.
type Envelope struct {
	stage Stage
	timer uint8
	step  int
	adder int32
	slope int32
}

func (e *Envelope) Stage() Stage  { return e.stage }
func (e *Envelope) Step() int     { return e.step }
func (e *Envelope) Adder() int32  { return e.adder }
func (e *Envelope) Offset() int32 { return e.adder >> stepsLog }

// Target is the adder value the attack aims for: the signed envelope amount
// scaled by 256.
func Target(amount uint8) int32 {
	return (int32(amount) - 128) << 8
}

// Run advances the envelope one turn and returns the modulated cutoff.
func (e *Envelope) Run(s *params.State) uint8 {
	if !s.KeyPressed && !s.Drone {
		e.slope = 0
		if e.step != 0 {
			e.slope = e.adder / int32(e.step)
		}
		e.stage = Release
	}

	if s.FilterSync.Take() {
		e.stage = Attack
		e.timer = s.Value[params.FilterAttack] >> 2
		e.slope = 0
		if remaining := Steps - e.step; remaining > 0 {
			e.slope = (Target(s.Value[params.FilterEnvAmount]) - e.adder) / int32(remaining)
		}
	}

	cutoff := clampCutoff(int(e.adder>>stepsLog) + int(s.Value[params.FilterFrequency]))

	if e.timer > 0 {
		e.timer--
		return cutoff
	}

	switch e.stage {
	case Attack:
		e.attack(s)
	case Decay:
		e.decay(s)
	case Sustain:
		if s.Drone {
			e.stage = Release
		}
	case Release:
		e.release(s)
	}
	return cutoff
}

func (e *Envelope) attack(s *params.State) {
	if e.step >= Steps {
		e.adder = Target(s.Value[params.FilterEnvAmount])
		e.slope = e.adder >> stepsLog
		e.stage = Decay
		e.timer = s.Value[params.FilterDecay] >> 3
		return
	}
	a := s.Value[params.FilterAttack]
	var stride int
	switch {
	case a < 32:
		e.timer, stride = a>>4, 8
	case a < 128:
		e.timer, stride = a>>3, 4
	case a < 192:
		e.timer, stride = a>>2, 2
	default:
		e.timer, stride = a>>1, 1
	}
	stride = min(stride, Steps-e.step)
	e.step += stride
	e.adder += int32(stride) * e.slope
}

func (e *Envelope) decay(s *params.State) {
	sustain := int(s.Value[params.FilterSustain] >> 1)
	d := s.Value[params.FilterDecay]
	var stride int
	switch {
	case d < 32:
		e.timer, stride = d>>3, 6
	case d < 128:
		e.timer, stride = d>>3, 4
	case d < 192:
		e.timer, stride = d>>2, 2
	default:
		e.timer, stride = d>>1, 1
	}
	stride = max(min(stride, e.step-sustain), 0)
	e.step -= stride
	e.adder -= int32(stride) * e.slope
	if e.step <= sustain {
		e.stage = Sustain
	}
}

func (e *Envelope) release(s *params.State) {
	if e.step <= 0 {
		e.stage = Attack
		e.timer = s.Value[params.FilterAttack] >> 5
		e.step = 0
		e.adder = 0
		if s.Drone {
			s.FilterSync.Raise()
		}
		return
	}
	r := s.Value[params.FilterRelease]
	var stride int
	switch {
	case r < 16:
		e.timer, stride = r>>3, 4
	case r < 64:
		e.timer, stride = r>>2, 2
	default:
		e.timer, stride = r>>1, 1
	}
	if e.step <= stride {
		e.step = 0
		e.adder = 0
		return
	}
	e.step -= stride
	e.adder -= int32(stride) * e.slope
}

func clampCutoff(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
