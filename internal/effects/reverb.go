package effects

// Reverb is a Schroeder reverb: four parallel combs into two allpasses.
type Reverb struct {
	combs   [4]line
	allpass [2]line
	wet     float32
}

type line struct {
	buf []float32
	pos int
	fb  float32
}

// NewReverb creates a reverb. roomSize scales the delay lengths, feedback
// sets the decay and wet the mix, all in 0..1.
func NewReverb(sampleRate int, roomSize, feedback, wet float32) *Reverb {
	base := max(int(float32(sampleRate)*roomSize*0.05), 10)
	fb := clamp(feedback, 0, 0.95)
	r := &Reverb{wet: clamp(wet, 0, 1)}
	combLens := [4]int{base, base * 1117 / 1000, base * 1271 / 1000, base * 1437 / 1000}
	for i := range r.combs {
		r.combs[i] = line{buf: make([]float32, combLens[i]), fb: fb}
	}
	apLens := [2]int{base * 347 / 1000, base * 213 / 1000}
	for i := range r.allpass {
		r.allpass[i] = line{buf: make([]float32, max(apLens[i], 1)), fb: 0.5}
	}
	return r
}

func (r *Reverb) Process(x float32) float32 {
	var out float32
	for i := range r.combs {
		out += r.combs[i].comb(x)
	}
	out *= 0.25
	for i := range r.allpass {
		out = r.allpass[i].pass(out)
	}
	return x*(1-r.wet) + out*r.wet
}

func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
}

func (l *line) comb(in float32) float32 {
	out := l.buf[l.pos]
	l.buf[l.pos] = in + out*l.fb
	l.advance()
	return out
}

func (l *line) pass(in float32) float32 {
	held := l.buf[l.pos]
	l.buf[l.pos] = in + held*l.fb
	l.advance()
	return held - in
}

func (l *line) advance() {
	l.pos++
	if l.pos >= len(l.buf) {
		l.pos = 0
	}
}

func (l *line) reset() {
	clear(l.buf)
	l.pos = 0
}
