package sprockit

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cbegin/sprockit-go/internal/midi"
)

func phrase() Score {
	var sc Score
	at := time.Duration(0)
	for _, n := range []uint8{60, 64, 67, 72} {
		sc = append(sc, midi.Timed{At: at, Event: midi.NoteOnEvent(n, 100)})
		sc = append(sc, midi.Timed{At: at + 150*time.Millisecond, Event: midi.NoteOffEvent(n)})
		at += 200 * time.Millisecond
	}
	return sc
}

func TestRenderScoreIsDeterministic(t *testing.T) {
	a, err := RenderScore(phrase(), 200*time.Millisecond)
	if err != nil {
		t.Fatalf("RenderScore: %v", err)
	}
	b, _ := RenderScore(phrase(), 200*time.Millisecond)
	if sha256.Sum256(a) != sha256.Sum256(b) {
		t.Fatalf("renders differ")
	}
	want := int((phrase().Duration() + 200*time.Millisecond).Seconds() * AudioRate)
	if len(a) != want {
		t.Fatalf("len = %d, want %d", len(a), want)
	}
	var loud int
	for _, v := range a {
		if v != 0 {
			loud++
		}
	}
	if loud < len(a)/4 {
		t.Fatalf("only %d of %d samples sound", loud, len(a))
	}
}

func TestRenderScoreNeverDrops(t *testing.T) {
	var sc Score
	for i := 0; i < 40; i++ {
		sc = append(sc, midi.Timed{Event: midi.CCEvent(2, uint8(i))})
	}
	src, err := newScoreSource(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	src.Render(make([]uint8, AudioRate/10))
	s := src.synth
	if s.Dropped() != 0 {
		t.Fatalf("dropped %d events", s.Dropped())
	}
	if got := s.Patch().Values["lfo_amount"]; got != 39<<1 {
		t.Fatalf("last cc not applied: lfo_amount = %d", got)
	}
}

func TestRenderScoreEmpty(t *testing.T) {
	if _, err := RenderScore(nil, time.Second); !errors.Is(err, ErrEmptyScore) {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderScoreStereo(t *testing.T) {
	out, err := RenderScoreStereo(phrase(), 0, 48000, "")
	if err != nil {
		t.Fatalf("RenderScoreStereo: %v", err)
	}
	if len(out) != 2*int(phrase().Duration().Seconds()*48000) {
		t.Fatalf("len = %d", len(out))
	}
	if _, err := RenderScoreStereo(nil, 0, 48000, ""); !errors.Is(err, ErrEmptyScore) {
		t.Fatalf("err = %v", err)
	}
}

func TestScoreSourceOddReads(t *testing.T) {
	a, _ := newScoreSource(phrase(), nil)
	b, _ := newScoreSource(phrase(), nil)
	whole := make([]uint8, 3000)
	a.Render(whole)
	var pieces []uint8
	for len(pieces) < len(whole) {
		buf := make([]uint8, 7)
		b.Render(buf)
		pieces = append(pieces, buf...)
	}
	for i := range whole {
		if whole[i] != pieces[i] {
			t.Fatalf("sample %d differs with 7-sample reads", i)
		}
	}
}

func TestRenderStereo(t *testing.T) {
	s, _ := NewSynth()
	s.NoteOn(57, 120)
	out, err := RenderStereo(s, 44100, 0.3, "reverb")
	if err != nil {
		t.Fatalf("RenderStereo: %v", err)
	}
	if len(out) != 2*int(0.3*44100) {
		t.Fatalf("len = %d", len(out))
	}
	var peak float64
	for _, v := range out {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak < 0.05 || peak > 1.5 {
		t.Fatalf("peak = %f", peak)
	}
	if _, err := RenderStereo(s, 0, 1, ""); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v", err)
	}
}

func TestEncodeWAVUint8(t *testing.T) {
	wav := EncodeWAVUint8([]uint8{0, 128, 255}, AudioRate)
	if len(wav) != 47 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad header % x", wav[:12])
	}
	if f := binary.LittleEndian.Uint16(wav[20:]); f != 1 {
		t.Fatalf("format = %d", f)
	}
	if r := binary.LittleEndian.Uint32(wav[24:]); r != AudioRate {
		t.Fatalf("rate = %d", r)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:]); bits != 8 {
		t.Fatalf("bits = %d", bits)
	}
	if wav[45] != 128 {
		t.Fatalf("payload = % x", wav[44:])
	}
}

func TestEncodeWAVFloat32LE(t *testing.T) {
	wav := EncodeWAVFloat32LE([]float32{0.5, -0.5}, 48000, 2)
	if len(wav) != 52 {
		t.Fatalf("len = %d", len(wav))
	}
	if f := binary.LittleEndian.Uint16(wav[20:]); f != 3 {
		t.Fatalf("format = %d", f)
	}
	if ba := binary.LittleEndian.Uint16(wav[32:]); ba != 8 {
		t.Fatalf("block align = %d", ba)
	}
	if v := math.Float32frombits(binary.LittleEndian.Uint32(wav[48:])); v != -0.5 {
		t.Fatalf("sample = %f", v)
	}
}
