package sprockit

import (
	"errors"
	"testing"

	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/patch"
)

func TestSynthNoteOnSounds(t *testing.T) {
	s, err := NewSynth()
	if err != nil {
		t.Fatalf("NewSynth: %v", err)
	}
	if !s.NoteOn(67, 100) {
		t.Fatalf("note dropped")
	}
	out := RenderSamples(s, 0.25)
	if len(out) != AudioRate/4 {
		t.Fatalf("len = %d", len(out))
	}
	var moving bool
	for i := 1; i < len(out); i++ {
		if out[i] != out[i-1] {
			moving = true
			break
		}
	}
	if !moving {
		t.Fatalf("output is flat")
	}
	snap := s.Snapshot()
	if !snap.NoteOn || snap.Notes[0] != 67 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if s.VCA() <= params.AmpFloor {
		t.Fatalf("vca = %d", s.VCA())
	}
	if s.Pots().Writes() == 0 {
		t.Fatalf("no pot writes")
	}
}

func TestSynthQueueDrops(t *testing.T) {
	s, _ := NewSynth(WithQueueSize(2))
	s.NoteOn(60, 1)
	s.NoteOn(61, 1)
	if s.NoteOn(62, 1) {
		t.Fatalf("third event accepted by a queue of two")
	}
	if s.Dropped() != 1 {
		t.Fatalf("dropped = %d", s.Dropped())
	}
}

func TestSynthControlChange(t *testing.T) {
	s, _ := NewSynth()
	s.ControlChange(2+uint8(params.FilterFrequency), 50)
	s.ControlChange(2+uint8(params.PitchShift), 60)
	RenderSamples(s, 0.01)
	p := s.Patch()
	if p.Values["filter_frequency"] != 100 {
		t.Fatalf("filter_frequency = %d, want 100", p.Values["filter_frequency"])
	}
	if p.Values["pitch_shift"] != 120 {
		t.Fatalf("pitch_shift = %d, want 120", p.Values["pitch_shift"])
	}
}

func TestSynthPatchRecall(t *testing.T) {
	p := patch.Default()
	p.Values["osc1_waveshape"] = 14
	p.Values["arp_mode"] = 0x50
	s, err := NewSynth(WithPatch(p))
	if err != nil {
		t.Fatalf("NewSynth: %v", err)
	}
	got := s.Patch()
	if got.Values["osc1_waveshape"] != 14 || got.Values["arp_mode"] != 0x50 {
		t.Fatalf("recalled %v", got.Values)
	}
	bad := patch.Default()
	bad.Version = 7
	if _, err := NewSynth(WithPatch(bad)); !errors.Is(err, ErrPatchVersion) {
		t.Fatalf("err = %v", err)
	}
}

func TestSynthArpeggiatorCallback(t *testing.T) {
	var steps []ArpStep
	p := patch.Default()
	p.Values["arp_mode"] = 0x50
	p.Values["arp_speed"] = 20
	s, _ := NewSynth(WithPatch(p), WithArpeggiator(func(st ArpStep) {
		steps = append(steps, st)
	}))
	s.NoteOn(48, 90)
	RenderSamples(s, 0.5)
	if len(steps) < 4 {
		t.Fatalf("steps = %d", len(steps))
	}
	if steps[0].Note != 48 || steps[1].Note != 52 {
		t.Fatalf("first steps = %+v", steps[:2])
	}
}

func TestSynthButtonsAndKnobs(t *testing.T) {
	s, _ := NewSynth()
	s.Press(ButtonDrone)
	s.SetKnob(int(params.LFORate), 200)
	if s.Knob(int(params.LFORate)) != 200 {
		t.Fatalf("knob = %d", s.Knob(int(params.LFORate)))
	}
	RenderSamples(s, 0.2)
	snap := s.Snapshot()
	if !snap.Drone || snap.Values[params.LFORate] != 200 {
		t.Fatalf("drone=%v lfo_rate=%d", snap.Drone, snap.Values[params.LFORate])
	}
}

func TestErrorAliases(t *testing.T) {
	if !errors.Is(ErrNoMIDIInput, midi.ErrNoInput) {
		t.Fatal("ErrNoMIDIInput does not match midi.ErrNoInput")
	}
	var perr *PatchError
	_, err := patch.LoadFile(t.TempDir() + "/missing.json")
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v", err)
	}
}
