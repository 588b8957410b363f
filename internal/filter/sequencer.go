package filter

// update is the pot sequencer state.
type update uint8

const (
	wait update = iota
	freq1
	freq2
	resonance
)

// Sequencer spreads cutoff and resonance changes over successive bus turns.
// A cutoff change takes two writes, one per pot; resonance is written only
// between cutoff updates so it is never starved by a sweeping envelope.
type Sequencer struct {
	state       update
	lastWritten uint16
	resonance   uint8
	pot1, pot2  uint8
}

// Step issues at most one pot write for the given cutoff and resonance
// controls. It reports whether anything was written.
func (q *Sequencer) Step(bus Bus, cutoff, res uint8) bool {
	af := Antilog(cutoff)
	aq := uint8(Antilog(res) >> 1)

	switch {
	case (q.state == freq2 || q.state == wait) && q.resonance != aq:
		q.state = resonance
		q.resonance = aq
	case q.state == freq1:
		q.state = freq2
	case q.lastWritten != af:
		q.state = freq1
		q.lastWritten = af
		q.pot1 = uint8(af >> 1)
		q.pot2 = q.pot1
		if q.pot2 != 255 && af%2 == 1 {
			q.pot2++
		}
	default:
		q.state = wait
	}

	switch q.state {
	case freq1:
		bus.Write(PotWrite{Command: CmdPot1, Value: q.pot1})
	case freq2:
		bus.Write(PotWrite{Command: CmdPot2, Value: q.pot2})
	case resonance:
		bus.Write(PotWrite{Command: CmdResonance, Value: q.resonance})
	default:
		return false
	}
	return true
}
