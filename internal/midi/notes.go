package midi

// MaxActiveNotes is the number of held notes tracked; further notes are
// ignored until one is released.
const MaxActiveNotes = 12

// ActiveNotes is the ordered list of held keys, oldest first.
type ActiveNotes struct {
	note     [MaxActiveNotes]uint8
	velocity [MaxActiveNotes]uint8
	n        int
}

func (a *ActiveNotes) Count() int { return a.n }

func (a *ActiveNotes) NoteAt(i int) uint8 {
	if i < 0 || i >= a.n {
		return 0
	}
	return a.note[i]
}

func (a *ActiveNotes) VelocityAt(i int) uint8 {
	if i < 0 || i >= a.n {
		return 0
	}
	return a.velocity[i]
}

// Add appends a held note. It reports false when the list is full.
func (a *ActiveNotes) Add(note, velocity uint8) bool {
	if a.n == MaxActiveNotes {
		return false
	}
	a.note[a.n] = note
	a.velocity[a.n] = velocity
	a.n++
	return true
}

// Remove drops the first entry for note and closes the gap.
func (a *ActiveNotes) Remove(note uint8) bool {
	for i := 0; i < a.n; i++ {
		if a.note[i] != note {
			continue
		}
		copy(a.note[i:a.n], a.note[i+1:a.n])
		copy(a.velocity[i:a.n], a.velocity[i+1:a.n])
		a.n--
		a.note[a.n] = 0
		a.velocity[a.n] = 0
		return true
	}
	return false
}

// Last returns the most recently held note.
func (a *ActiveNotes) Last() (note, velocity uint8, ok bool) {
	if a.n == 0 {
		return 0, 0, false
	}
	return a.note[a.n-1], a.velocity[a.n-1], true
}

func (a *ActiveNotes) Reset() { *a = ActiveNotes{} }
