package sprockit

import (
	"errors"

	"github.com/cbegin/sprockit-go/internal/audio"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/patch"
)

// Sentinel errors for expected failure modes.
var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrUnknownBackend    = audio.ErrUnknownBackend
	ErrNoMIDIInput       = midi.ErrNoInput
	ErrPatchVersion      = patch.ErrVersion
	ErrEmptyScore        = errors.New("score has no events")
)

// PatchError reports a patch file that could not be read or applied.
type PatchError = patch.Error
