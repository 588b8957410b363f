package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"sync/atomic"
)

// SampleSource fills interleaved stereo float32 frames.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource with an end, such as a rendered score.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

const frameBytes = 8

// StreamReader serves a SampleSource as little-endian float32 stereo bytes,
// the layout both ebiten's NewPlayerF32 and oto's FormatFloat32LE expect.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
	frames atomic.Int64
	closed atomic.Bool
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

// Read fills whole frames only; a trailing partial frame of p is left unused.
// After Close it returns io.EOF without touching the source.
func (r *StreamReader) Read(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, io.EOF
	}
	n := len(p) / frameBytes
	if n == 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if cap(r.buf) < 2*n {
		r.buf = make([]float32, 2*n)
	}
	buf := r.buf[:2*n]
	r.source.Process(buf)
	out := p[:0]
	for _, v := range buf {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	r.frames.Add(int64(n))

	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return len(out), io.EOF
	}
	return len(out), nil
}

// Frames is the number of frames handed to the device so far.
func (r *StreamReader) Frames() int64 { return r.frames.Load() }

// Close ends the stream. It is safe to call more than once.
func (r *StreamReader) Close() error {
	r.closed.Store(true)
	return nil
}
