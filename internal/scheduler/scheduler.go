// Package scheduler runs the synth's two clocks: the audio tick that
// produces one 8-bit sample, and the slow tick main loop that advances the
// envelopes, the control surface, MIDI intake and one round-robin task.
package scheduler

import (
	"sync/atomic"

	"github.com/cbegin/sprockit-go/internal/controls"
	"github.com/cbegin/sprockit-go/internal/debug"
	"github.com/cbegin/sprockit-go/internal/envelope"
	"github.com/cbegin/sprockit-go/internal/filter"
	"github.com/cbegin/sprockit-go/internal/lfo"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/osc"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/pitch"
	"github.com/cbegin/sprockit-go/internal/sequencer"
)

const (
	// AudioRate is the audio tick frequency in Hz.
	AudioRate = 32768
	// SlowDivider is the number of audio ticks per slow tick.
	SlowDivider = 10
	// SlowRate is the slow tick frequency in Hz, rounded down.
	SlowRate = AudioRate / SlowDivider

	snapshotEvery = 64
)

type Options struct {
	// Bus receives filter pot writes. Nil disables the bus task's writes;
	// the filter envelope still runs.
	Bus filter.Bus
	// Knobs, Buttons and Queue default to fresh instances when nil.
	Knobs   *controls.Knobs
	Buttons *controls.Buttons
	Queue   *midi.Queue
	// Arpeggiator defaults to one without callbacks.
	Arpeggiator *sequencer.Arpeggiator
	// OnTask is called after each round-robin task runs.
	OnTask func(Task)
}

// Scheduler owns one synth voice and everything that advances it. AudioTick,
// Poll and Render must be called from a single goroutine; SlowTick, the
// knob bank, the buttons and the queue may be used from any goroutine.
type Scheduler struct {
	state *params.State
	notes midi.ActiveNotes

	amp     *envelope.Amp
	filter  *filter.Filter
	glide   *pitch.Glide
	lfo     *lfo.LFO
	knobs   *controls.Knobs
	reader  *controls.Reader
	buttons *controls.Buttons
	handler *controls.Handler
	queue   *midi.Queue
	arp     *sequencer.Arpeggiator
	gens    [params.NumOscillators]*osc.Generator

	task    Task
	pending atomic.Bool
	divider int
	out     int
	polls   uint64
	vca     atomic.Uint32
	onTask  func(Task)

	snapshot atomic.Pointer[Snapshot]
}

func New(s *params.State, opts Options) *Scheduler {
	if s == nil {
		s = params.New()
	}
	knobs := opts.Knobs
	if knobs == nil {
		knobs = controls.NewKnobs(params.DefaultPanel)
	}
	buttons := opts.Buttons
	if buttons == nil {
		buttons = &controls.Buttons{}
	}
	queue := opts.Queue
	if queue == nil {
		queue = midi.NewQueue(midi.DefaultQueueSize)
	}
	arp := opts.Arpeggiator
	if arp == nil {
		arp = sequencer.New()
	}
	sc := &Scheduler{
		state:   s,
		amp:     envelope.NewAmp(),
		filter:  filter.New(opts.Bus),
		glide:   pitch.New(),
		lfo:     lfo.New(),
		knobs:   knobs,
		reader:  controls.NewReader(knobs),
		buttons: buttons,
		handler: controls.NewHandler(buttons),
		queue:   queue,
		arp:     arp,
		out:     127,
		onTask:  opts.OnTask,
	}
	noise := osc.NewNoise()
	for i := range sc.gens {
		sc.gens[i] = osc.NewGeneratorWithNoise(noise)
	}
	sc.vca.Store(params.AmpFloor)
	sc.publish()
	return sc
}

func (sc *Scheduler) State() *params.State                 { return sc.state }
func (sc *Scheduler) Notes() *midi.ActiveNotes             { return &sc.notes }
func (sc *Scheduler) Knobs() *controls.Knobs               { return sc.knobs }
func (sc *Scheduler) Buttons() *controls.Buttons           { return sc.buttons }
func (sc *Scheduler) Queue() *midi.Queue                   { return sc.queue }
func (sc *Scheduler) Filter() *filter.Filter               { return sc.filter }
func (sc *Scheduler) Amp() *envelope.Amp                   { return sc.amp }
func (sc *Scheduler) Task() Task                           { return sc.task }
func (sc *Scheduler) Arpeggiator() *sequencer.Arpeggiator { return sc.arp }

// VCA is the amplifier drive written on the last slow tick.
func (sc *Scheduler) VCA() uint8 { return uint8(sc.vca.Load()) }

// AudioTick produces one output sample.
func (sc *Scheduler) AudioTick() uint8 {
	s := sc.state
	if !s.NoteOn() {
		s.Phase[0] = 0
		s.Phase[1] = 0
		return 0
	}
	w1 := osc.Waveform(s.Value[params.Osc1Waveshape])
	w2 := osc.Waveform(s.Value[params.Osc2Waveshape])
	if s.OscSync.Take() {
		sc.gens[0].Sync(w1)
		sc.gens[1].Sync(w2)
	}
	s1 := int(sc.gens[0].Sample(w1, s.Phase[0], s.Note[0]))
	s2 := int(sc.gens[1].Sample(w2, s.Phase[1], s.Note[1]))
	mix := int(s.Value[params.OscMix])
	mixed := (s1*(255-mix) + s2*mix) >> 8
	sc.out += (mixed - sc.out) >> 2

	for i := range s.Phase {
		s.Phase[i] = uint16((uint32(s.Phase[i]) + uint32(s.Frequency(i))) % params.PhaseModulus)
	}
	return uint8(sc.out)
}

// SlowTick marks one main-loop step as due. It never blocks.
func (sc *Scheduler) SlowTick() {
	sc.pending.Store(true)
}

// Poll runs one main-loop step if a slow tick is pending and reports whether
// it did.
func (sc *Scheduler) Poll() bool {
	if !sc.pending.CompareAndSwap(true, false) {
		return false
	}
	s := sc.state

	sc.amp.Run(s)
	sc.vca.Store(uint32(envelope.VCA(s.Multiplier, s.Value[params.Amplitude])))

	if btn, ok := sc.handler.Step(s); ok {
		debug.Log("buttons", "%s pressed", btn)
	}

	if ev, ok := sc.queue.Pop(); ok {
		midi.Apply(s, &sc.notes, ev)
	}

	if sequencer.Enabled(s) {
		sc.arp.Run(s, &sc.notes)
	} else {
		sc.arp.Reset()
	}

	sc.runTask(sc.task)
	if sc.onTask != nil {
		sc.onTask(sc.task)
	}
	sc.task = sc.task.next()

	sc.polls++
	if sc.polls%snapshotEvery == 0 {
		sc.publish()
	}
	return true
}

func (sc *Scheduler) runTask(t Task) {
	s := sc.state
	switch t {
	case TaskBus:
		if sc.filter.Run(s) {
			debug.LogEvery(256, "bus", "cutoff=%d q=%d", sc.filter.Cutoff(), s.Value[params.FilterQ])
		}
	case TaskKnobs:
		sc.reader.Step(s)
	case TaskPitch:
		sc.glide.Run(s)
	case TaskLFO:
		sc.lfo.Run(s)
	}
}

// Render fills dst with audio ticks, raising a slow tick every SlowDivider
// samples and polling the main loop after each sample.
func (sc *Scheduler) Render(dst []uint8) {
	for i := range dst {
		dst[i] = sc.AudioTick()
		sc.divider++
		if sc.divider >= SlowDivider {
			sc.divider = 0
			sc.SlowTick()
		}
		sc.Poll()
	}
}
