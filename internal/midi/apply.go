package midi

import "github.com/cbegin/sprockit-go/internal/params"

// controllerBase is the first controller number mapped onto slot 0. Lower
// controllers (the mod wheel) drive the LFO amount.
const controllerBase = 2

// SlotForController maps a controller number onto a parameter slot.
func SlotForController(cc uint8) (params.Param, bool) {
	if cc <= controllerBase {
		return params.LFOAmount, true
	}
	p := params.Param(cc - controllerBase)
	return p, p.Valid()
}

// Apply interprets one event against the synth state and the held-note list.
// While the arpeggiator is running, note-ons only join the held list and the
// arpeggiator picks the sounding note.
func Apply(s *params.State, notes *ActiveNotes, ev Event) {
	switch ev.Kind {
	case NoteOn:
		if ev.Value == 0 {
			noteOff(s, notes, ev.Key)
			return
		}
		s.RaiseSyncs()
		notes.Add(ev.Key, ev.Value)
		if s.Value[params.ArpMode] == 0 {
			s.Note[0] = ev.Key
			s.Velocity = ev.Value
			s.KeyPressed = true
		}

	case NoteOff:
		noteOff(s, notes, ev.Key)

	case ControlChange:
		slot, ok := SlotForController(ev.Key)
		if !ok {
			return
		}
		v := (ev.Value & 0x7F) << 1
		if slot != params.PitchShift {
			s.Override[slot] = v
		}
		s.Source[slot] = params.External
		if slot != s.LFOTarget() {
			s.Value[slot] = v
		}

	case PitchBend:
		s.Value[params.PitchShift] = ev.Value
	}
}

func noteOff(s *params.State, notes *ActiveNotes, key uint8) {
	notes.Remove(key)
	if note, vel, ok := notes.Last(); ok {
		s.Note[0] = note
		s.Velocity = vel
		return
	}
	s.KeyPressed = false
}
