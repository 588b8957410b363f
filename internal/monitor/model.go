// Package monitor is a terminal view of a running synth: knob positions,
// envelope stages, the VCA and filter outputs, and the held notes.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cbegin/sprockit-go/internal/controls"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/scheduler"
)

// Synth is what the monitor needs from a running synth.
type Synth interface {
	Snapshot() scheduler.Snapshot
	Knob(i int) uint8
	SetKnob(i int, v uint8)
	Press(btn controls.Button)
	NoteOn(note, velocity uint8) bool
	NoteOff(note uint8) bool
}

const (
	refresh  = 50 * time.Millisecond
	barWidth = 24
	testNote = 60
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Width(18)
	selStyle    = labelStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	extStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type TickMsg time.Time

type Model struct {
	synth    Synth
	snap     scheduler.Snapshot
	selected int
	playing  bool
	quitting bool
}

func New(s Synth) Model {
	return Model{synth: s, snap: s.Snapshot()}
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.playing {
				m.synth.NoteOff(testNote)
			}
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6", "7", "8":
			m.selected = int(msg.String()[0] - '1')
		case "up", "k", "+", "=":
			m.nudge(4)
		case "down", "j", "-", "_":
			m.nudge(-4)
		case "pgup", "K":
			m.nudge(32)
		case "pgdown", "J":
			m.nudge(-32)
		case "s":
			m.synth.Press(controls.LFOShape)
		case "d":
			m.synth.Press(controls.LFODest)
		case "r":
			m.synth.Press(controls.Drone)
		case " ", "n":
			if m.playing {
				m.synth.NoteOff(testNote)
			} else {
				m.synth.NoteOn(testNote, 100)
			}
			m.playing = !m.playing
		}
	case TickMsg:
		m.snap = m.synth.Snapshot()
		return m, tick()
	}
	return m, nil
}

func (m *Model) nudge(delta int) {
	v := int(m.synth.Knob(m.selected)) + delta
	m.synth.SetKnob(m.selected, uint8(min(max(v, 0), 255)))
}

func bar(v uint8) string {
	n := int(v) * barWidth / 255
	return barStyle.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("·", barWidth-n))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.snap
	var b strings.Builder

	state := "idle"
	if s.NoteOn {
		state = "sounding"
	}
	if s.Drone {
		state += " drone"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("sprockit  %s  notes %d/%d  held %d  task %s",
		state, s.Notes[0], s.Notes[1], s.Held, s.Task)))
	b.WriteString("\n\n")

	var knobs strings.Builder
	for i := 0; i < params.NumKnobs; i++ {
		p := params.Param(i)
		style := labelStyle
		if i == m.selected {
			style = selStyle
		}
		src := ""
		if s.Sources[p] == params.External {
			src = extStyle.Render(" ext")
		}
		fmt.Fprintf(&knobs, "%d %s %s %3d%s\n", i+1, style.Render(p.String()), bar(m.synth.Knob(i)), s.Values[p], src)
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(knobs.String(), "\n")))
	b.WriteString("\n")

	var out strings.Builder
	fmt.Fprintf(&out, "%s %s %3d  %s\n", labelStyle.Render("vca"), bar(s.VCA), s.VCA, s.AmpStage)
	fmt.Fprintf(&out, "%s %s %3d  %s\n", labelStyle.Render("cutoff"), bar(s.Cutoff), s.Cutoff, s.FilterStage)
	fmt.Fprintf(&out, "%s %s %3d\n", labelStyle.Render("lfo "+params.LFOTarget(s.Values[params.LFODest]).String()),
		bar(s.Values[params.LFOAmount]), s.Values[params.LFOAmount])
	fmt.Fprintf(&out, "%s %5d / %5d", labelStyle.Render("frequency"), s.Frequencies[0], s.Frequencies[1])
	if s.Dropped > 0 {
		out.WriteString(extStyle.Render(fmt.Sprintf("  dropped %d", s.Dropped)))
	}
	b.WriteString(boxStyle.Render(out.String()))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("1-8 knob  ↑/↓ adjust  s shape  d dest  r drone  space note  q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the monitor until the user quits or ctx is done.
func Run(ctx context.Context, s Synth) error {
	_, err := tea.NewProgram(New(s), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
