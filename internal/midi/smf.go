package midi

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Timed is an event scheduled at an offset from the start of a score.
type Timed struct {
	At    time.Duration
	Event Event
}

// Score is a time-ordered list of events, as read from a MIDI file.
type Score []Timed

// Duration is the offset of the last event.
func (sc Score) Duration() time.Duration {
	if len(sc) == 0 {
		return 0
	}
	return sc[len(sc)-1].At
}

// ReadScore loads the channel events of every track in a standard MIDI file.
func ReadScore(path string) (Score, error) {
	sc, err := collect(smf.ReadTracks(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sc, nil
}

// ReadScoreFrom is ReadScore for an already open file.
func ReadScoreFrom(r io.Reader) (Score, error) {
	return collect(smf.ReadTracksFrom(r))
}

func collect(tr *smf.TracksReader) (Score, error) {
	var sc Score
	tr.Do(func(ev smf.TrackEvent) {
		e, ok := Decode(gomidi.Message(ev.Message))
		if !ok {
			return
		}
		sc = append(sc, Timed{At: time.Duration(ev.AbsMicroSeconds) * time.Microsecond, Event: e})
	})
	if err := tr.Error(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(sc, func(a, b Timed) int { return cmp.Compare(a.At, b.At) })
	return sc, nil
}
