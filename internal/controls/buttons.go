package controls

import (
	"fmt"

	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/trigger"
)

// Button identifies a panel button.
type Button uint8

const (
	LFOShape Button = iota
	LFODest
	Drone
	numButtons
)

func (b Button) String() string {
	switch b {
	case LFOShape:
		return "lfo-shape"
	case LFODest:
		return "lfo-dest"
	case Drone:
		return "drone"
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

// DebounceTicks is the number of slow ticks ignored after a handled press.
const DebounceTicks = 1000

// lfoChoices is how many shapes and destinations the buttons cycle through.
const lfoChoices = 3

// Buttons latches presses from any goroutine until the synth loop handles
// them.
type Buttons struct {
	pressed [numButtons]trigger.Edge
}

func (b *Buttons) Press(btn Button) {
	if btn < numButtons {
		b.pressed[btn].Raise()
	}
}

// Handler applies latched presses to the synth state, one per tick, with a
// debounce interval after each. The LFO buttons step from the current slot
// values, so patch recall and MIDI changes carry over to the next press.
type Handler struct {
	buttons  *Buttons
	debounce uint16
}

func NewHandler(b *Buttons) *Handler { return &Handler{buttons: b} }

// Step runs once per slow tick. It returns the button it handled, if any.
func (h *Handler) Step(s *params.State) (Button, bool) {
	if h.debounce > 0 {
		h.debounce--
		return 0, false
	}
	for btn := Button(0); btn < numButtons; btn++ {
		if !h.buttons.pressed[btn].Take() {
			continue
		}
		h.apply(s, btn)
		h.debounce = DebounceTicks
		return btn, true
	}
	return 0, false
}

func (h *Handler) apply(s *params.State, btn Button) {
	switch btn {
	case LFOShape:
		s.Value[params.LFOWaveshape] = next(s.Value[params.LFOWaveshape])
	case LFODest:
		switch s.LFOTarget() {
		case params.Amplitude:
			s.Value[params.Amplitude] = 255
		case params.PitchShift:
			s.Value[params.PitchShift] = params.PitchCenter
		}
		s.Value[params.LFODest] = next(s.Value[params.LFODest])
	case Drone:
		s.Drone = !s.Drone
	}
}

func next(v uint8) uint8 {
	if v+1 >= lfoChoices {
		return 0
	}
	return v + 1
}
