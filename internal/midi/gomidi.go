package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/cbegin/sprockit-go/internal/debug"
)

// ErrNoInput is returned when no MIDI input port is available.
var ErrNoInput = errors.New("no midi input port")

// Decode converts a wire message into an Event. Note-on with velocity zero
// decodes as note-off. Messages the synth does not use report false.
func Decode(msg gomidi.Message) (Event, bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		if vel == 0 {
			return Event{Kind: NoteOff, Channel: ch, Key: key}, true
		}
		return Event{Kind: NoteOn, Channel: ch, Key: key, Value: vel}, true
	case msg.GetNoteOff(&ch, &key, &vel):
		return Event{Kind: NoteOff, Channel: ch, Key: key}, true
	case msg.GetControlChange(&ch, &key, &vel):
		return Event{Kind: ControlChange, Channel: ch, Key: key, Value: vel}, true
	}
	var rel int16
	var abs uint16
	if msg.GetPitchBend(&ch, &rel, &abs) {
		return Event{Kind: PitchBend, Channel: ch, Value: uint8(abs >> 7)}, true
	}
	return Event{}, false
}

// InPorts lists the names of the available input ports.
func InPorts() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// CloseDriver releases the registered MIDI driver.
func CloseDriver() { gomidi.CloseDriver() }

// OpenIn resolves an input port by name. An empty name picks the first port.
func OpenIn(name string) (drivers.In, error) {
	if name != "" {
		in, err := gomidi.FindInPort(name)
		if err != nil {
			return nil, fmt.Errorf("find input %q: %w", name, err)
		}
		return in, nil
	}
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, ErrNoInput
	}
	return ins[0], nil
}

// Listener feeds decoded events from one input port into a queue.
type Listener struct {
	port  drivers.In
	queue *Queue
	stop  func()
	// channel filters input; negative accepts every channel.
	channel int
}

// Listen starts delivering events from port into q. channel selects one MIDI
// channel (0..15) or all channels when negative.
func Listen(port drivers.In, q *Queue, channel int) (*Listener, error) {
	l := &Listener{port: port, queue: q, channel: channel}
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		ev, ok := Decode(msg)
		if !ok {
			return
		}
		if l.channel >= 0 && int(ev.Channel) != l.channel {
			return
		}
		if !q.Push(ev) {
			debug.Log("midi", "queue full, dropped %s", ev)
			return
		}
		debug.LogEvery(64, "midi", "in %s", ev)
	})
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", port, err)
	}
	l.stop = stop
	debug.Log("midi", "listening on %s (channel %d)", port, channel)
	return l, nil
}

func (l *Listener) Port() string { return l.port.String() }

func (l *Listener) Close() error {
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
	return nil
}
