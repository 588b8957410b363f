package sprockit

import (
	"encoding/binary"
	"math"
	"time"

	intaudio "github.com/cbegin/sprockit-go/internal/audio"
	"github.com/cbegin/sprockit-go/internal/effects"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/scheduler"
	"github.com/cbegin/sprockit-go/internal/sequencer"
)

type Score = midi.Score

// LoadScore reads a standard MIDI file into a score.
func LoadScore(path string) (Score, error) {
	return midi.ReadScore(path)
}

// RenderSamples runs the synth for the given duration and returns the raw
// 8-bit output at AudioRate.
func RenderSamples(s *Synth, seconds float64) []uint8 {
	out := make([]uint8, int(seconds*AudioRate))
	s.Render(out)
	return out
}

// RenderScore plays score through a fresh synth and returns the 8-bit output
// at AudioRate, followed by tail of release time.
func RenderScore(score Score, tail time.Duration, opts ...SynthOption) ([]uint8, error) {
	src, err := newScoreSource(score, opts)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, int((score.Duration()+tail).Seconds()*AudioRate))
	src.Render(out)
	return out, nil
}

// RenderScoreStereo is RenderScore through the analog output stage,
// returning interleaved stereo float32 at outRate.
func RenderScoreStereo(score Score, tail time.Duration, outRate int, effectsSpec string, opts ...SynthOption) ([]float32, error) {
	src, err := newScoreSource(score, opts)
	if err != nil {
		return nil, err
	}
	return renderStereo(src, src.synth, outRate, (score.Duration() + tail).Seconds(), effectsSpec)
}

// scoreSource renders a synth while feeding it a score in time. Events are
// never dropped: those that do not fit the queue wait for the next slow tick.
type scoreSource struct {
	synth   *Synth
	cursor  *sequencer.Cursor
	pending []midi.Event
	block   [scheduler.SlowDivider]uint8
	avail   int
}

func newScoreSource(score Score, opts []SynthOption) (*scoreSource, error) {
	if len(score) == 0 {
		return nil, ErrEmptyScore
	}
	s, err := NewSynth(opts...)
	if err != nil {
		return nil, err
	}
	return &scoreSource{synth: s, cursor: sequencer.NewCursor(score, AudioRate, false)}, nil
}

func (src *scoreSource) Render(dst []uint8) {
	q := src.synth.sched.Queue()
	for len(dst) > 0 {
		if src.avail == 0 {
			src.cursor.Advance(len(src.block), func(ev midi.Event) {
				src.pending = append(src.pending, ev)
			})
			for len(src.pending) > 0 && q.Len() < q.Cap() {
				q.Push(src.pending[0])
				src.pending = src.pending[1:]
			}
			src.synth.Render(src.block[:])
			src.avail = len(src.block)
		}
		n := copy(dst, src.block[len(src.block)-src.avail:])
		src.avail -= n
		dst = dst[n:]
	}
}

// RenderStereo runs the synth through the analog output stage and returns
// interleaved stereo float32 at outRate.
func RenderStereo(s *Synth, outRate int, seconds float64, effectsSpec string) ([]float32, error) {
	return renderStereo(s, s, outRate, seconds, effectsSpec)
}

func renderStereo(src intaudio.Source, s *Synth, outRate int, seconds float64, effectsSpec string) ([]float32, error) {
	if outRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	chain, err := effects.Parse(effectsSpec, outRate)
	if err != nil {
		return nil, err
	}
	opts := intaudio.StageOptions{Amplifier: s, Effects: chain}
	if s.Pots() != nil {
		opts.Pots = s.Pots()
	}
	stage, err := intaudio.NewStage(src, AudioRate, outRate, opts)
	if err != nil {
		return nil, err
	}
	out := make([]float32, 2*int(seconds*float64(outRate)))
	stage.Process(out)
	return out, nil
}

func wavHeader(out []byte, format uint16, channels, sampleRate, bits, dataSize int) {
	blockAlign := channels * bits / 8
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], format)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], uint16(bits))
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
}

// EncodeWAVUint8 wraps mono unsigned 8-bit samples in a PCM WAV file.
func EncodeWAVUint8(samples []uint8, sampleRate int) []byte {
	out := make([]byte, 44+len(samples))
	wavHeader(out, 1, 1, sampleRate, 8, len(samples))
	copy(out[44:], samples)
	return out
}

func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	out := make([]byte, 44+dataSize)
	wavHeader(out, 3, channels, sampleRate, 32, dataSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
