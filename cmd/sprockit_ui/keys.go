package main

import "github.com/hajimehoshi/ebiten/v2"

// pianoKeys lays one octave and a fifth over the home and top rows.
var pianoKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyW, ebiten.KeyS, ebiten.KeyE, ebiten.KeyD,
	ebiten.KeyF, ebiten.KeyT, ebiten.KeyG, ebiten.KeyY, ebiten.KeyH,
	ebiten.KeyU, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyO, ebiten.KeyL,
	ebiten.KeyP, ebiten.KeySemicolon,
}

const (
	minOctave     = 0
	maxOctave     = 8
	defaultOctave = 4
)

// noteFor returns the MIDI note a piano key plays at the given octave.
func noteFor(key ebiten.Key, octave int) (uint8, bool) {
	for i, k := range pianoKeys {
		if k == key {
			n := (octave+1)*12 + i
			if n < 0 || n > 127 {
				return 0, false
			}
			return uint8(n), true
		}
	}
	return 0, false
}
