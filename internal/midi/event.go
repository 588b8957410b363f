// Package midi turns MIDI input into synth events: decoding through gomidi,
// the bounded hand-off queue, the held-note list and the rules that apply an
// event to the parameter table.
package midi

import "fmt"

// Kind is the type of a decoded event.
type Kind uint8

const (
	NoteOn Kind = iota + 1
	NoteOff
	ControlChange
	PitchBend
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case ControlChange:
		return "cc"
	case PitchBend:
		return "pitch-bend"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a decoded channel message. Key holds the note or controller
// number; Value holds the velocity, controller value or pitch-bend MSB, all
// 0..127.
type Event struct {
	Kind    Kind
	Channel uint8
	Key     uint8
	Value   uint8
}

func NoteOnEvent(note, velocity uint8) Event {
	return Event{Kind: NoteOn, Key: note & 0x7F, Value: velocity & 0x7F}
}

func NoteOffEvent(note uint8) Event {
	return Event{Kind: NoteOff, Key: note & 0x7F}
}

func CCEvent(controller, value uint8) Event {
	return Event{Kind: ControlChange, Key: controller & 0x7F, Value: value & 0x7F}
}

func PitchBendEvent(msb uint8) Event {
	return Event{Kind: PitchBend, Value: msb & 0x7F}
}

func (e Event) String() string {
	switch e.Kind {
	case NoteOn:
		return fmt.Sprintf("note-on ch%d %d vel %d", e.Channel, e.Key, e.Value)
	case NoteOff:
		return fmt.Sprintf("note-off ch%d %d", e.Channel, e.Key)
	case ControlChange:
		return fmt.Sprintf("cc ch%d #%d = %d", e.Channel, e.Key, e.Value)
	case PitchBend:
		return fmt.Sprintf("pitch-bend ch%d %d", e.Channel, e.Value)
	}
	return e.Kind.String()
}
