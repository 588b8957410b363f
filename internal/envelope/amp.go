// Package envelope implements the amplitude ADSR that drives the VCA.
package envelope

import (
	"fmt"

	"github.com/cbegin/sprockit-go/internal/params"
)

// Stage is an envelope state.
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

// Amp is the amplitude envelope. It does not restart from the floor on a new
// note; the multiplier climbs from wherever the previous note left it.
type Amp struct {
	stage   Stage
	timer   uint8
	ceiling uint8
	sustain uint8
}

func NewAmp() *Amp {
	return &Amp{stage: Attack, ceiling: 127, sustain: 127}
}

func (a *Amp) Stage() Stage     { return a.stage }
func (a *Amp) Ceiling() uint8   { return a.ceiling }
func (a *Amp) SustainAt() uint8 { return a.sustain }

// Ceiling maps a note velocity onto the attack peak between the floor and
// full scale.
func Ceiling(velocity uint8) uint8 {
	return uint8((int(velocity)*2*(params.AmpSteps-params.AmpFloor))>>8 + params.AmpFloor)
}

// SustainLevel scales the sustain knob by the attack peak.
func SustainLevel(ceiling, sustain uint8) uint8 {
	v := (int(ceiling) * int(sustain)) >> 8
	return uint8((v*(params.AmpSteps-params.AmpFloor))>>8 + params.AmpFloor)
}

// VCA combines the envelope multiplier with the amplitude parameter. The
// result never drops below the floor the analog amplifier needs.
func VCA(multiplier, amplitude uint8) uint8 {
	v := (int(multiplier) * int(amplitude)) >> 8
	if v < params.AmpFloor {
		return params.AmpFloor
	}
	return uint8(v)
}

// Run advances the envelope by one slow tick and updates the multiplier and
// note-on flag in s.
func (a *Amp) Run(s *params.State) {
	if s.AmpSync.Take() {
		a.stage = Attack
		a.ceiling = Ceiling(s.Velocity)
	}

	if !s.KeyPressed {
		a.stage = Release
	} else {
		s.SetNoteOn(true)
	}

	if a.timer > 0 {
		a.timer--
		return
	}

	attack := s.Value[params.ADSRAttack]
	decay := s.Value[params.ADSRDecay]
	m := int(s.Multiplier)

	switch a.stage {
	case Attack:
		if m >= int(a.ceiling) {
			a.stage = Decay
			a.timer = decay >> 2
			a.sustain = SustainLevel(a.ceiling, s.Value[params.ADSRSustain])
			return
		}
		step := 1
		a.timer = attack >> 1
		if attack < 192 {
			step = 2
			a.timer = attack >> 2
		}
		s.Multiplier = uint8(min(m+step, int(a.ceiling)))

	case Decay:
		if m <= int(a.sustain) {
			a.stage = Sustain
			return
		}
		a.timer = decay
		step := 1
		switch {
		case decay < 48:
			step = 4
		case decay < 96:
			step = 2
		}
		s.Multiplier = uint8(max(m-step, int(a.sustain)))

	case Sustain:

	case Release:
		if s.KeyPressed {
			a.stage = Attack
			a.timer = attack
			return
		}
		if m > params.AmpFloor {
			s.Multiplier--
			a.timer = s.Value[params.ADSRRelease] >> 2
			return
		}
		a.stage = Attack
		a.timer = attack
		s.SetNoteOn(false)
	}
}
