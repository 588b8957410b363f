package envelope

import (
	"testing"

	"github.com/cbegin/sprockit-go/internal/params"
)

func TestCeiling(t *testing.T) {
	cases := map[uint8]uint8{0: 47, 100: 209, 127: 253}
	for v, want := range cases {
		if got := Ceiling(v); got != want {
			t.Errorf("Ceiling(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestVCAFloor(t *testing.T) {
	cases := []struct{ m, amp, want uint8 }{
		{47, 0, 47},
		{47, 255, 47},
		{100, 128, 50},
		{255, 255, 254},
		{209, 255, 208},
	}
	for _, c := range cases {
		if got := VCA(c.m, c.amp); got != c.want {
			t.Errorf("VCA(%d, %d) = %d, want %d", c.m, c.amp, got, c.want)
		}
	}
}

func pressed(velocity uint8) *params.State {
	s := params.New()
	s.Velocity = velocity
	s.KeyPressed = true
	s.AmpSync.Raise()
	return s
}

func TestEnvelopePhasesAreMonotone(t *testing.T) {
	s := pressed(100)
	a := NewAmp()

	last := s.Multiplier
	stage := a.Stage()
	seen := map[Stage]bool{}
	for i := 0; i < 100000 && a.Stage() != Sustain; i++ {
		a.Run(s)
		seen[a.Stage()] = true
		m := s.Multiplier
		switch {
		case a.Stage() == Attack && m < last:
			t.Fatalf("attack fell %d -> %d", last, m)
		case a.Stage() == Decay && stage == Decay && m > last:
			t.Fatalf("decay rose %d -> %d", last, m)
		}
		if m > a.Ceiling() {
			t.Fatalf("multiplier %d above ceiling %d", m, a.Ceiling())
		}
		last, stage = m, a.Stage()
	}
	if !seen[Decay] || a.Stage() != Sustain {
		t.Fatalf("never reached sustain, stage %v", a.Stage())
	}
	if a.Ceiling() != 209 {
		t.Fatalf("ceiling = %d, want 209", a.Ceiling())
	}
	if s.Multiplier != a.SustainAt() {
		t.Fatalf("sustain multiplier = %d, want %d", s.Multiplier, a.SustainAt())
	}
	if !s.NoteOn() {
		t.Fatalf("note should be on while held")
	}

	s.KeyPressed = false
	last = s.Multiplier
	for i := 0; i < 100000 && s.NoteOn(); i++ {
		a.Run(s)
		if s.Multiplier > last {
			t.Fatalf("release rose %d -> %d", last, s.Multiplier)
		}
		last = s.Multiplier
	}
	if s.NoteOn() {
		t.Fatalf("release never finished")
	}
	if s.Multiplier != params.AmpFloor {
		t.Fatalf("release ended at %d, want floor", s.Multiplier)
	}
	if a.Stage() != Attack {
		t.Fatalf("finished envelope should rest in attack, got %v", a.Stage())
	}
}

func TestAttackPeaksAtCeiling(t *testing.T) {
	s := pressed(100)
	a := NewAmp()
	peak := s.Multiplier
	for i := 0; i < 10000 && a.Stage() != Decay; i++ {
		a.Run(s)
		peak = max(peak, s.Multiplier)
	}
	if peak != 209 {
		t.Fatalf("attack peak = %d, want 209", peak)
	}
}

func TestSlowAttackStepsByOne(t *testing.T) {
	s := pressed(127)
	s.Value[params.ADSRAttack] = 200
	a := NewAmp()
	a.Run(s)
	if s.Multiplier != params.AmpFloor+1 {
		t.Fatalf("slow attack step = %d, want +1", int(s.Multiplier)-params.AmpFloor)
	}
	s.Value[params.ADSRAttack] = 0
	a.timer = 0
	a.Run(s)
	if s.Multiplier != params.AmpFloor+3 {
		t.Fatalf("fast attack step: multiplier %d", s.Multiplier)
	}
}

func TestRepressDuringRelease(t *testing.T) {
	s := pressed(100)
	a := NewAmp()
	for i := 0; i < 200; i++ {
		a.Run(s)
	}
	s.KeyPressed = false
	a.Run(s)
	if a.Stage() != Release {
		t.Fatalf("stage = %v, want release", a.Stage())
	}
	a.timer = 0
	s.KeyPressed = true
	a.Run(s)
	if a.Stage() != Attack {
		t.Fatalf("re-press stage = %v, want attack", a.Stage())
	}
	if a.timer != s.Value[params.ADSRAttack] {
		t.Fatalf("re-press timer = %d, want %d", a.timer, s.Value[params.ADSRAttack])
	}
}

func TestSustainLevel(t *testing.T) {
	if got := SustainLevel(209, 92); got != 107 {
		t.Fatalf("SustainLevel(209, 92) = %d, want 107", got)
	}
	if got := SustainLevel(255, 0); got != params.AmpFloor {
		t.Fatalf("zero sustain = %d, want floor", got)
	}
}
