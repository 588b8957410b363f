package filter

import "github.com/cbegin/sprockit-go/internal/params"

// Filter pairs the envelope with the pot sequencer for one bus.
type Filter struct {
	Env Envelope
	Seq Sequencer

	bus    Bus
	cutoff uint8
}

func New(bus Bus) *Filter {
	return &Filter{bus: bus}
}

func (f *Filter) Bus() Bus { return f.bus }

// Cutoff is the modulated cutoff computed on the last run.
func (f *Filter) Cutoff() uint8 { return f.cutoff }

// Run advances the envelope and, if the bus is free, sends the next pot
// update. It reports whether a write was issued.
func (f *Filter) Run(s *params.State) bool {
	f.cutoff = f.Env.Run(s)
	if f.bus == nil || !f.bus.Ready() {
		return false
	}
	return f.Seq.Step(f.bus, f.cutoff, s.Value[params.FilterQ])
}
