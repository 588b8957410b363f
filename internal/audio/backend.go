// Package audio carries the synth's output to a sound device through
// ebiten's audio context or oto directly.
package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend = errors.New("unknown audio backend")
	// ErrContextRate is returned when a device context already runs at a
	// different rate. Both libraries allow one context per process.
	ErrContextRate = errors.New("audio context rate mismatch")
)

// Backend is a running output device.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	Stop() error
}

// NewBackend opens the named backend, "ebiten" or "oto".
func NewBackend(name string, sampleRate int, source SampleSource) (Backend, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	switch name {
	case "", "ebiten":
		return NewEbitenPlayer(sampleRate, source)
	case "oto":
		return NewOtoPlayer(sampleRate, source)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

func checkRate(have, want int) error {
	if have != want {
		return fmt.Errorf("%w: running at %d Hz, asked for %d Hz", ErrContextRate, have, want)
	}
	return nil
}
