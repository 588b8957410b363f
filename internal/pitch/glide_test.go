package pitch

import (
	"testing"

	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/wavetable"
)

func TestDetune(t *testing.T) {
	cases := []struct {
		note, detune, want uint8
	}{
		{60, 128, 60},
		{60, 0, 44},
		{60, 255, 75},
		{60, 136, 61},
		{120, 255, 127},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := Detune(c.note, c.detune); got != c.want {
			t.Errorf("Detune(%d, %d) = %d, want %d", c.note, c.detune, got, c.want)
		}
	}
}

func TestCompress(t *testing.T) {
	cases := map[uint8]uint8{0: 48, 63: 64, 64: 64, 68: 65, 72: 66, 255: 111}
	for in, want := range cases {
		if got := Compress(in); got != want {
			t.Errorf("Compress(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPlan(t *testing.T) {
	cases := []struct {
		delta, n int
		log      uint
		step     int
		count    int
	}{
		{32, 128, 7, 1, 32},
		{-5, 128, 7, -1, 5},
		{0, 128, 7, 1, 0},
		{3689, 128, 7, 28, 128},
		{-158, 128, 7, -1, 128},
		{-300, 64, 6, -4, 64},
	}
	for _, c := range cases {
		step, count := Plan(c.delta, c.n, c.log)
		if step != c.step || count != c.count {
			t.Errorf("Plan(%d) = %d x %d, want %d x %d", c.delta, step, count, c.step, c.count)
		}
	}
}

func TestNoteOnAtCenterIsImmediate(t *testing.T) {
	s := params.New()
	g := New()
	s.Note[0] = 60
	s.Velocity = 100
	g.Run(s)
	if got := s.Frequency(0); got != wavetable.NoteFrequency[60] {
		t.Fatalf("osc1 = %d, want %d", got, wavetable.NoteFrequency[60])
	}
	if got := s.Frequency(1); got != wavetable.NoteFrequency[60] {
		t.Fatalf("osc2 = %d, want unison %d", got, wavetable.NoteFrequency[60])
	}
}

func TestBypassIgnoresPriorGlide(t *testing.T) {
	s := params.New()
	g := New()
	g.Run(s)
	s.Value[params.PitchShift] = 255
	for i := 0; i < 40; i++ {
		g.Run(s)
	}
	if g.Settled() {
		t.Fatalf("glide should still be in progress")
	}
	s.Value[params.PitchShift] = params.PitchCenter
	g.Run(s)
	if got := s.Frequency(0); got != wavetable.NoteFrequency[60] {
		t.Fatalf("bypass frequency = %d, want %d", got, wavetable.NoteFrequency[60])
	}
	if !g.Settled() {
		t.Fatalf("bypass should clear glide counters")
	}
}

func TestGlideConvergesExactly(t *testing.T) {
	cases := []struct {
		name       string
		shift      uint8
		portamento uint8
		runs       int
		target     uint8
	}{
		{"small up", 72, 0, 32, 62},
		{"large up", 255, 0, 128, 107},
		{"large down", 0, 0, 128, 44},
	}
	for _, c := range cases {
		s := params.New()
		g := New()
		g.Run(s)
		start := int(s.Frequency(0))
		want := wavetable.NoteFrequency[c.target]
		up := int(want) > start

		s.Value[params.PitchShift] = c.shift
		s.Value[params.Portamento] = c.portamento
		for i := 1; i <= c.runs; i++ {
			g.Run(s)
			f := int(s.Frequency(0))
			if i < c.runs && f == int(want) {
				t.Fatalf("%s: reached target early at run %d", c.name, i)
			}
			if up && f > int(want) || !up && f < int(want) {
				t.Fatalf("%s: overshoot at run %d: %d past %d", c.name, i, f, want)
			}
		}
		if got := s.Frequency(0); got != want {
			t.Fatalf("%s: after %d runs = %d, want %d", c.name, c.runs, got, want)
		}
		g.Run(s)
		if got := s.Frequency(0); got != want {
			t.Fatalf("%s: drifted after settling: %d", c.name, got)
		}
	}
}

func TestPortamentoGlidesBetweenNotes(t *testing.T) {
	s := params.New()
	g := New()
	g.Run(s)

	s.Value[params.Portamento] = 32
	g.Run(s)
	if got := s.Frequency(0); got != wavetable.NoteFrequency[60] {
		t.Fatalf("same-note portamento moved pitch: %d", got)
	}

	s.Note[0] = 72
	want := wavetable.NoteFrequency[72]
	for i := 1; i < 64; i++ {
		g.Run(s)
		if s.Frequency(0) >= want {
			t.Fatalf("portamento arrived early at run %d", i)
		}
	}
	g.Run(s)
	if got := s.Frequency(0); got != want {
		t.Fatalf("after 64 runs = %d, want %d", got, want)
	}
}

func TestLFOPitchTargetKeepsGlideActive(t *testing.T) {
	s := params.New()
	g := New()
	s.Value[params.LFODest] = 2
	s.SetNoteOn(true)
	g.Run(s)
	if !g.valid {
		t.Fatalf("glide should be active with the LFO on pitch")
	}
	if got := s.Frequency(0); got != wavetable.NoteFrequency[60] {
		t.Fatalf("frequency = %d, want %d", got, wavetable.NoteFrequency[60])
	}
}
