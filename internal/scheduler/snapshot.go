package scheduler

import (
	"github.com/cbegin/sprockit-go/internal/envelope"
	"github.com/cbegin/sprockit-go/internal/filter"
	"github.com/cbegin/sprockit-go/internal/params"
)

// Snapshot is a copy of the voice state that other goroutines may read.
type Snapshot struct {
	Task        Task
	Values      [params.Count]uint8
	Sources     [params.Count]params.Source
	Notes       [params.NumOscillators]uint8
	Frequencies [params.NumOscillators]uint16
	Held        int
	Multiplier  uint8
	VCA         uint8
	Cutoff      uint8
	AmpStage    envelope.Stage
	FilterStage filter.Stage
	KeyPressed  bool
	NoteOn      bool
	Drone       bool
	Dropped     uint64
}

// Snapshot returns the most recently published state. It is refreshed every
// 64 main-loop steps, roughly fifty times a second at the nominal rate.
func (sc *Scheduler) Snapshot() Snapshot {
	return *sc.snapshot.Load()
}

func (sc *Scheduler) publish() {
	s := sc.state
	snap := &Snapshot{
		Task:        sc.task,
		Values:      s.Value,
		Sources:     s.Source,
		Notes:       s.Note,
		Held:        sc.notes.Count(),
		Multiplier:  s.Multiplier,
		VCA:         sc.VCA(),
		Cutoff:      sc.filter.Cutoff(),
		AmpStage:    sc.amp.Stage(),
		FilterStage: sc.filter.Env.Stage(),
		KeyPressed:  s.KeyPressed,
		NoteOn:      s.NoteOn(),
		Drone:       s.Drone,
		Dropped:     sc.queue.Dropped(),
	}
	for i := range snap.Frequencies {
		snap.Frequencies[i] = s.Frequency(i)
	}
	sc.snapshot.Store(snap)
}

// Publish refreshes the snapshot immediately. Like Poll, it must be called
// from the goroutine that drives the scheduler.
func (sc *Scheduler) Publish() { sc.publish() }
