package scheduler

import (
	"bytes"
	"testing"

	"github.com/cbegin/sprockit-go/internal/controls"
	"github.com/cbegin/sprockit-go/internal/filter"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/osc"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/wavetable"
)

func TestTaskRotation(t *testing.T) {
	want := []Task{TaskKnobs, TaskPitch, TaskLFO, TaskBus}
	task := TaskBus
	for i, w := range want {
		task = task.next()
		if task != w {
			t.Fatalf("step %d: got %s, want %s", i, task, w)
		}
	}
	if got := Task(42).next(); got != TaskBus {
		t.Fatalf("out of range next = %s", got)
	}
}

func TestRoundRobinFairness(t *testing.T) {
	var counts [numTasks]int
	var order []Task
	sc := New(nil, Options{OnTask: func(task Task) {
		counts[task]++
		if len(order) < 8 {
			order = append(order, task)
		}
	}})
	for i := 0; i < 400; i++ {
		sc.SlowTick()
		if !sc.Poll() {
			t.Fatalf("poll %d did not run", i)
		}
	}
	for task, n := range counts {
		if n != 100 {
			t.Errorf("%s ran %d times, want 100", Task(task), n)
		}
	}
	for i, task := range order {
		if task != Task(i%4) {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestPollWithoutTickIsNoop(t *testing.T) {
	sc := New(nil, Options{})
	if sc.Poll() {
		t.Fatalf("poll ran without a pending tick")
	}
	sc.SlowTick()
	sc.SlowTick()
	if !sc.Poll() || sc.Poll() {
		t.Fatalf("two slow ticks before a poll must collapse into one step")
	}
}

func TestSilentWhileNoteOff(t *testing.T) {
	sc := New(nil, Options{})
	s := sc.State()
	s.Phase[0], s.Phase[1] = 100, 200
	buf := make([]uint8, 64)
	sc.Render(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %d, want 0", i, v)
		}
	}
	if s.Phase != [2]uint16{} {
		t.Fatalf("phases not reset: %v", s.Phase)
	}
}

func TestNoteOnScenario(t *testing.T) {
	bus := filter.NewMemoryBus(0)
	sc := New(nil, Options{Bus: bus})
	s := sc.State()
	if !sc.Queue().Push(midi.NoteOnEvent(60, 100)) {
		t.Fatalf("queue rejected note")
	}

	sc.Render(make([]uint8, 100))
	if !s.NoteOn() || !s.KeyPressed {
		t.Fatalf("note on=%v key=%v", s.NoteOn(), s.KeyPressed)
	}
	if got, want := s.Frequency(0), wavetable.Frequency(60); got != want {
		t.Fatalf("osc1 frequency = %d, want %d", got, want)
	}
	if sc.Notes().Count() != 1 {
		t.Fatalf("held = %d", sc.Notes().Count())
	}

	buf := make([]uint8, AudioRate/4)
	sc.Render(buf)
	lo, hi := buf[0], buf[0]
	for _, v := range buf {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi-lo < 32 {
		t.Fatalf("output barely moves: %d..%d", lo, hi)
	}
	if sc.VCA() <= params.AmpFloor {
		t.Fatalf("vca = %d, want above floor", sc.VCA())
	}
	if bus.Writes() == 0 {
		t.Fatalf("filter bus never written")
	}
}

func TestNoteOffReleasesToSilence(t *testing.T) {
	sc := New(nil, Options{})
	s := sc.State()
	sc.Queue().Push(midi.NoteOnEvent(64, 127))
	sc.Render(make([]uint8, AudioRate/2))
	sc.Queue().Push(midi.NoteOffEvent(64))

	buf := make([]uint8, 2*AudioRate)
	sc.Render(buf)
	if s.NoteOn() {
		t.Fatalf("note still on, multiplier=%d", s.Multiplier)
	}
	if s.Multiplier != params.AmpFloor {
		t.Fatalf("multiplier = %d", s.Multiplier)
	}
	if buf[len(buf)-1] != 0 {
		t.Fatalf("tail sample = %d", buf[len(buf)-1])
	}
}

func TestKnobReachesValue(t *testing.T) {
	sc := New(nil, Options{})
	sc.Knobs().Set(int(params.FilterFrequency), 200)
	sc.Render(make([]uint8, 8*4*SlowDivider))
	s := sc.State()
	if s.Value[params.FilterFrequency] != 200 || s.Source[params.FilterFrequency] != params.Knob {
		t.Fatalf("filter frequency = %d (%s)", s.Value[params.FilterFrequency], s.Source[params.FilterFrequency])
	}
}

func TestDroneButton(t *testing.T) {
	sc := New(nil, Options{})
	sc.Buttons().Press(controls.Drone)
	sc.SlowTick()
	sc.Poll()
	if !sc.State().Drone {
		t.Fatalf("drone not toggled")
	}
}

func TestArpeggiatorOwnsNote(t *testing.T) {
	sc := New(nil, Options{})
	s := sc.State()
	s.Value[params.ArpMode] = 0x50
	sc.Queue().Push(midi.NoteOnEvent(48, 100))
	seen := map[uint8]bool{}
	for i := 0; i < 40; i++ {
		sc.Render(make([]uint8, 1024))
		seen[s.Note[0]] = true
	}
	if len(seen) < 2 {
		t.Fatalf("arpeggiator never moved the note: %v", seen)
	}
}

func TestSnapshotPublished(t *testing.T) {
	sc := New(nil, Options{})
	sc.Queue().Push(midi.NoteOnEvent(72, 90))
	sc.Render(make([]uint8, 64*SlowDivider))
	snap := sc.Snapshot()
	if snap.Held != 1 || snap.Notes[0] != 72 || !snap.NoteOn {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	render := func() []uint8 {
		sc := New(nil, Options{Bus: filter.NewMemoryBus(0)})
		s := sc.State()
		s.Value[params.Osc1Waveshape] = 8
		s.Value[params.Osc2Waveshape] = 14
		s.Value[params.LFOAmount] = 90
		s.Source[params.LFOAmount] = params.External
		sc.Queue().Push(midi.NoteOnEvent(57, 110))
		out := make([]uint8, AudioRate)
		sc.Render(out)
		return out
	}
	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Fatalf("two renders differ")
	}
}

func BenchmarkAudioTick(b *testing.B) {
	sc := New(nil, Options{})
	sc.Queue().Push(midi.NoteOnEvent(60, 100))
	sc.Render(make([]uint8, 1000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc.AudioTick()
	}
}

func BenchmarkRender(b *testing.B) {
	sc := New(nil, Options{Bus: filter.NewMemoryBus(0)})
	sc.Queue().Push(midi.NoteOnEvent(60, 100))
	buf := make([]uint8, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc.Render(buf)
	}
}

func TestOscillatorsInterleaveOneNoiseRegister(t *testing.T) {
	sc := New(nil, Options{})
	ref := osc.NewNoise()
	same := 0
	for i := 0; i < 1000; i++ {
		s1 := sc.gens[0].Sample(osc.Noise, uint16(i*7), 60)
		s2 := sc.gens[1].Sample(osc.Noise, uint16(i*11), 67)
		if s1 != ref.Next() || s2 != ref.Next() {
			t.Fatalf("tick %d: oscillators are not stepping one register", i)
		}
		if s1 == s2 {
			same++
		}
	}
	if same > 100 {
		t.Fatalf("osc1 and osc2 noise matched on %d/1000 ticks", same)
	}
}
