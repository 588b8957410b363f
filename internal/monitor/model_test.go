package monitor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cbegin/sprockit-go/internal/controls"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/scheduler"
)

type fakeSynth struct {
	snap    scheduler.Snapshot
	knobs   [params.NumKnobs]uint8
	pressed []controls.Button
	on      map[uint8]bool
}

func newFake() *fakeSynth {
	f := &fakeSynth{knobs: params.DefaultPanel, on: map[uint8]bool{}}
	f.snap.Notes = [2]uint8{60, 62}
	return f
}

func (f *fakeSynth) Snapshot() scheduler.Snapshot { return f.snap }
func (f *fakeSynth) Knob(i int) uint8             { return f.knobs[i] }
func (f *fakeSynth) SetKnob(i int, v uint8)       { f.knobs[i] = v }
func (f *fakeSynth) Press(b controls.Button)      { f.pressed = append(f.pressed, b) }

func (f *fakeSynth) NoteOn(n, v uint8) bool {
	f.on[n] = true
	return true
}

func (f *fakeSynth) NoteOff(n uint8) bool {
	delete(f.on, n)
	return true
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestKnobSelectionAndNudge(t *testing.T) {
	f := newFake()
	send(New(f), "3", "up", "up", "down")
	if got := f.knobs[2]; got != params.DefaultPanel[2]+4 {
		t.Fatalf("knob 3 = %d", got)
	}
	f.knobs[0] = 2
	send(New(f), "1", "down")
	if f.knobs[0] != 0 {
		t.Fatalf("knob 1 = %d, want clamp at 0", f.knobs[0])
	}
}

func TestButtonsAndTestNote(t *testing.T) {
	f := newFake()
	m := send(New(f), "s", "d", "r", " ")
	if len(f.pressed) != 3 || f.pressed[2] != controls.Drone {
		t.Fatalf("pressed = %v", f.pressed)
	}
	if !f.on[testNote] {
		t.Fatalf("test note not playing")
	}
	send(m, " ")
	if f.on[testNote] {
		t.Fatalf("test note still playing")
	}
}

func TestViewShowsState(t *testing.T) {
	f := newFake()
	f.snap.NoteOn = true
	f.snap.Held = 1
	f.snap.Dropped = 3
	m, _ := New(f).Update(TickMsg{})
	view := m.View()
	for _, want := range []string{"sounding", "notes 60/62", "filter_frequency", "dropped 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, cmd := New(newFake()).Update(key("q"))
	if cmd == nil || m.View() != "" {
		t.Fatalf("quit did not stop the program")
	}
}
