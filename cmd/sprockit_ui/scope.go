package main

import "sync"

const scopeLen = 16384

// scope keeps the most recent output in a mono ring so the window can draw
// what is playing.
type scope struct {
	mu       sync.Mutex
	ring     []float32
	writePos int
	filled   int
}

func newScope() *scope {
	return &scope{ring: make([]float32, scopeLen)}
}

// Tap runs on the audio goroutine with interleaved stereo frames.
func (s *scope) Tap(samples []float32) {
	s.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		s.ring[s.writePos] = (samples[i] + samples[i+1]) * 0.5
		s.writePos = (s.writePos + 1) % scopeLen
		if s.filled < scopeLen {
			s.filled++
		}
	}
	s.mu.Unlock()
}

// Latest copies the newest n samples, oldest first. Missing history is zero.
func (s *scope) Latest(n int) []float32 {
	if n > scopeLen {
		n = scopeLen
	}
	out := make([]float32, n)
	s.mu.Lock()
	avail := min(n, s.filled)
	start := (s.writePos - avail + scopeLen) % scopeLen
	for i := 0; i < avail; i++ {
		out[n-avail+i] = s.ring[(start+i)%scopeLen]
	}
	s.mu.Unlock()
	return out
}

// findZeroCrossing finds a rising zero crossing to hold the waveform still.
func findZeroCrossing(samples []float32, searchLen int) int {
	if searchLen > len(samples)-2 {
		searchLen = len(samples) - 2
	}
	for i := 1; i < searchLen; i++ {
		if samples[i-1] <= 0 && samples[i] > 0 {
			return i
		}
	}
	return 0
}
