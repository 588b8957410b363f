package params

import (
	"sync/atomic"

	"github.com/cbegin/sprockit-go/internal/trigger"
)

// DefaultPanel is the knob position set applied at boot, before any knob has
// been read.
var DefaultPanel = [NumKnobs]uint8{
	FilterQ:         0,
	LFORate:         64,
	FilterFrequency: 160,
	OscDetune:       128,
	ADSRLength:      127,
	LFOAmount:       0,
	OscWaveshape:    0,
	ADSRAttack:      16,
}

// State is the synth's shared parameter table. The slow-tick main loop owns
// every field except Phase, which belongs to the audio tick. Frequencies and
// the note-on flag are read from the audio tick and are published atomically.
type State struct {
	Value    [Count]uint8
	Raw      [Count]uint8
	Override [Count]uint8
	Source   [Count]Source

	Note       [NumOscillators]uint8
	Phase      [NumOscillators]uint16
	Velocity   uint8
	Multiplier uint8

	KeyPressed bool
	Drone      bool

	LFOSync    trigger.Edge
	AmpSync    trigger.Edge
	FilterSync trigger.Edge
	OscSync    trigger.Edge

	freq   [NumOscillators]atomic.Uint32
	noteOn atomic.Bool
}

func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores boot defaults. It must not run concurrently with the audio tick.
func (s *State) Reset() {
	s.Value = [Count]uint8{}
	s.Raw = [Count]uint8{}
	s.Override = [Count]uint8{}
	s.Source = [Count]Source{}
	s.Phase = [NumOscillators]uint16{}
	s.KeyPressed = false
	s.Drone = false
	for i := range s.freq {
		s.freq[i].Store(0)
	}
	s.noteOn.Store(false)
	s.LFOSync.Clear()
	s.AmpSync.Clear()
	s.FilterSync.Clear()
	s.OscSync.Clear()

	for i, v := range DefaultPanel {
		s.Raw[i] = v
		s.Value[i] = v
	}
	DecodeADSRLength(s, DefaultPanel[ADSRLength])

	s.Raw[PitchShift] = PitchCenter
	s.Value[PitchShift] = PitchCenter
	s.Raw[Amplitude] = 192
	s.Value[Amplitude] = 255
	s.Value[FilterEnvAmount] = 128
	s.Value[FilterSustain] = 127
	s.Value[OscMix] = 127
	s.Value[Osc2Waveshape] = 2
	s.Value[ArpSpeed] = 127
	s.Value[ArpLength] = 4
	s.Value[ArpGate] = 127

	s.Note[0] = 60
	s.Note[1] = 60
	s.Velocity = 127
	s.Multiplier = AmpFloor
}

func (s *State) Frequency(osc int) uint16 {
	return uint16(s.freq[osc].Load())
}

func (s *State) SetFrequency(osc int, f uint16) {
	s.freq[osc].Store(uint32(f))
}

func (s *State) NoteOn() bool      { return s.noteOn.Load() }
func (s *State) SetNoteOn(on bool) { s.noteOn.Store(on) }

// RaiseSyncs arms all four note-on sync edges.
func (s *State) RaiseSyncs() {
	s.LFOSync.Raise()
	s.AmpSync.Raise()
	s.FilterSync.Raise()
	s.OscSync.Raise()
}

// LFOTarget is the slot currently modulated by the LFO.
func (s *State) LFOTarget() Param {
	return LFOTarget(s.Value[LFODest])
}

// Governing returns the value the slot's source currently dictates: the knob
// reading, the external override, or zero for loop-sourced slots.
func (s *State) Governing(p Param) uint8 {
	if !p.Valid() {
		return 0
	}
	switch s.Source[p] {
	case Knob:
		return s.Raw[p]
	case External:
		return s.Override[p]
	default:
		return 0
	}
}
