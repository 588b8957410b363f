// Package sequencer generates notes for the synth: the pattern arpeggiator
// that plays over held keys, and a cursor that replays a recorded score
// against the synth's tick clock.
package sequencer

import "github.com/cbegin/sprockit-go/internal/params"

// Patterns holds the semitone offsets of each arpeggio, selected by the top
// four bits of ArpMode. Patterns 0 and 1 repeat the held notes untransposed.
var Patterns = [16][8]int8{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 2, 3, 4, 5, 6, 7},
	{0, -1, -2, -3, -4, -5, -6, -7},
	{0, 2, 4, 6, 8, 10, 12, 14},
	{0, 4, 7, 12, 4, 7, 12, 16},
	{0, 3, 7, 11, 3, 7, 11, 12},
	{0, -2, -4, -6, -8, -10, -12, -14},
	{0, 5, 2, 6, 5, 8, 6, 10},
	{0, -5, -2, -6, -5, -8, -6, -10},
	{0, 6, 2, 7, 6, 9, 7, 11},
	{0, -6, -2, -7, -6, -9, -7, -11},
	{0, 4, 7, 11, 4, 7, 11, 12},
	{0, 1, -1, 2, -2, 3, -3, 0},
	{0, 4, 7, 12, 7, 4, 0, 12},
	{0, 3, 7, 11, 7, 3, 0, 11},
}

const counterMax = 1023

// Notes is the held-key source the arpeggiator cycles through.
type Notes interface {
	Count() int
	NoteAt(i int) uint8
	VelocityAt(i int) uint8
}

// Step describes one arpeggio step as it is played.
type Step struct {
	Index    int
	Note     uint8
	Velocity uint8
}

type Options struct {
	// OnStep is called from the synth loop each time a new step starts.
	OnStep func(Step)
}

// Arpeggiator plays the held notes in turn, transposed by the selected
// pattern. It drives the synth through the same fields a played key sets:
// the oscillator note, velocity, key-pressed flag and envelope syncs.
type Arpeggiator struct {
	counter int
	step    int
	active  int
	onStep  func(Step)
}

func New() *Arpeggiator { return NewWithOptions(Options{}) }

func NewWithOptions(opts Options) *Arpeggiator {
	return &Arpeggiator{onStep: opts.OnStep}
}

// Enabled reports whether the arpeggiator owns the note.
func Enabled(s *params.State) bool { return s.Value[params.ArpMode] != 0 }

// Reset returns to the first step of the pattern.
func (a *Arpeggiator) Reset() {
	a.counter = 0
	a.step = 0
	a.active = 0
}

// Run advances the arpeggiator by one slow tick.
func (a *Arpeggiator) Run(s *params.State, notes Notes) {
	count := notes.Count()
	if s.Drone {
		count = 1
	}
	if count == 0 {
		a.Reset()
		return
	}

	length := clampLength(s.Value[params.ArpLength])
	if a.step >= length {
		a.step = 0
	}
	played := a.step
	transpose := Patterns[s.Value[params.ArpMode]>>4][played]

	gate := int(s.Value[params.ArpGate])
	var noteLen int
	if s.Drone && s.Source[params.ArpSpeed] != params.External {
		noteLen = int(s.Value[params.ADSRRelease])
		s.Value[params.ArpSpeed] = uint8(noteLen)
	} else {
		noteLen = int(s.Value[params.ArpSpeed])
		gate = gate * noteLen >> 7
	}
	noteLen <<= 1

	if a.counter >= noteLen {
		a.counter = 0
		if !s.Drone {
			s.AmpSync.Raise()
			s.FilterSync.Raise()
		}
		a.step++
		if a.step >= length {
			a.step = 0
		}
		a.active++
		if a.active >= count {
			a.active = 0
		}

		note, vel := s.Value[params.ADSRAttack]>>1, uint8(127)
		if !s.Drone {
			note, vel = notes.NoteAt(a.active), notes.VelocityAt(a.active)
		}
		s.Note[0] = transposeNote(note, transpose)
		s.Velocity = vel
		if a.onStep != nil {
			a.onStep(Step{Index: played, Note: s.Note[0], Velocity: vel})
		}
	}

	a.counter++
	if a.counter > counterMax {
		a.counter = 0
	}
	s.KeyPressed = a.counter < gate || s.Drone
}

func clampLength(v uint8) int {
	if v == 0 {
		return 1
	}
	if v > 8 {
		return 8
	}
	return int(v)
}

func transposeNote(note uint8, by int8) uint8 {
	n := int(note) + int(by)
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
