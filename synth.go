// Package sprockit is a monophonic two-oscillator synthesizer voice with an
// 8-bit output, ADSR amplifier, filter envelope, LFO, glide and arpeggiator.
//
// A Synth renders raw 8-bit samples at AudioRate. Notes, knobs and buttons
// may be driven from any goroutine; rendering happens on one.
package sprockit

import (
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/cbegin/sprockit-go/internal/controls"
	"github.com/cbegin/sprockit-go/internal/filter"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/patch"
	"github.com/cbegin/sprockit-go/internal/scheduler"
	"github.com/cbegin/sprockit-go/internal/sequencer"
)

// AudioRate is the native sample rate of Render.
const AudioRate = scheduler.AudioRate

type (
	Button   = controls.Button
	ArpStep  = sequencer.Step
	Snapshot = scheduler.Snapshot
	Patch    = patch.Patch
	Event    = midi.Event
)

const (
	ButtonLFOShape = controls.LFOShape
	ButtonLFODest  = controls.LFODest
	ButtonDrone    = controls.Drone
)

type SynthOption func(*synthConfig)

type synthConfig struct {
	patch     *patch.Patch
	bus       filter.Bus
	onStep    func(ArpStep)
	queueSize int
}

func defaultSynthConfig() synthConfig {
	return synthConfig{queueSize: midi.DefaultQueueSize}
}

// WithPatch recalls p at construction.
func WithPatch(p *Patch) SynthOption {
	return func(cfg *synthConfig) {
		cfg.patch = p
	}
}

// WithBus sends filter pot writes to b instead of an in-memory bus.
func WithBus(b filter.Bus) SynthOption {
	return func(cfg *synthConfig) {
		cfg.bus = b
	}
}

// WithArpeggiator installs a callback for every arpeggio step. It runs on
// the render goroutine; keep work brief and non-blocking.
func WithArpeggiator(onStep func(ArpStep)) SynthOption {
	return func(cfg *synthConfig) {
		cfg.onStep = onStep
	}
}

// WithQueueSize sets how many pending MIDI events are held before new ones
// are dropped.
func WithQueueSize(n int) SynthOption {
	return func(cfg *synthConfig) {
		if n > 0 {
			cfg.queueSize = n
		}
	}
}

type Synth struct {
	mu    sync.Mutex
	sched *scheduler.Scheduler
	bus   filter.Bus
	pots  *filter.MemoryBus
}

func NewSynth(opts ...SynthOption) (*Synth, error) {
	cfg := defaultSynthConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Synth{bus: cfg.bus}
	if s.bus == nil {
		s.pots = filter.NewMemoryBus(0)
		s.bus = s.pots
	} else if mb, ok := cfg.bus.(*filter.MemoryBus); ok {
		s.pots = mb
	}
	s.sched = scheduler.New(params.New(), scheduler.Options{
		Bus:         s.bus,
		Queue:       midi.NewQueue(cfg.queueSize),
		Arpeggiator: sequencer.NewWithOptions(sequencer.Options{OnStep: cfg.onStep}),
	})
	if cfg.patch != nil {
		if err := s.ApplyPatch(cfg.patch); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Render produces len(dst) samples at AudioRate.
func (s *Synth) Render(dst []uint8) {
	s.mu.Lock()
	s.sched.Render(dst)
	s.mu.Unlock()
}

// VCA is the amplifier drive, 0..255, from the last slow tick.
func (s *Synth) VCA() uint8 { return s.sched.VCA() }

// Bus returns the filter pot bus.
func (s *Synth) Bus() filter.Bus { return s.bus }

// Pots returns the in-memory pot bus, or nil when a custom bus is in use.
func (s *Synth) Pots() *filter.MemoryBus { return s.pots }

// Send queues a decoded MIDI event. It reports false when the queue is full
// and the event was dropped.
func (s *Synth) Send(ev Event) bool { return s.sched.Queue().Push(ev) }

func (s *Synth) NoteOn(note, velocity uint8) bool {
	return s.Send(midi.NoteOnEvent(note&0x7F, velocity&0x7F))
}

func (s *Synth) NoteOff(note uint8) bool {
	return s.Send(midi.NoteOffEvent(note & 0x7F))
}

func (s *Synth) ControlChange(controller, value uint8) bool {
	return s.Send(midi.CCEvent(controller&0x7F, value&0x7F))
}

func (s *Synth) PitchBend(msb uint8) bool {
	return s.Send(midi.PitchBendEvent(msb & 0x7F))
}

// Dropped counts events lost to a full queue.
func (s *Synth) Dropped() uint64 { return s.sched.Queue().Dropped() }

// SetKnob moves panel knob i (0..7).
func (s *Synth) SetKnob(i int, v uint8) { s.sched.Knobs().Set(i, v) }

func (s *Synth) Knob(i int) uint8 { return s.sched.Knobs().Get(i) }

// Press latches a panel button press.
func (s *Synth) Press(btn Button) { s.sched.Buttons().Press(btn) }

// Snapshot returns recently published voice state.
func (s *Synth) Snapshot() Snapshot { return s.sched.Snapshot() }

// ApplyPatch recalls p as external overrides.
func (s *Synth) ApplyPatch(p *Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := p.Apply(s.sched.State()); err != nil {
		return err
	}
	s.sched.Publish()
	return nil
}

// Patch captures the current slot values.
func (s *Synth) Patch() *Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return patch.Capture(s.sched.State())
}

// Listen feeds a MIDI input port into the synth. A negative channel listens
// on all channels.
func (s *Synth) Listen(port drivers.In, channel int) (*midi.Listener, error) {
	return midi.Listen(port, s.sched.Queue(), channel)
}
