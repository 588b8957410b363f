package params

// oscLUT maps the waveshape knob (in 32 positions) to osc1, osc2 and mix.
var oscLUT = [32][3]uint8{
	{0, 0, 0},
	{1, 0, 0},
	{2, 0, 0},
	{3, 0, 0},
	{4, 0, 0},
	{5, 0, 0},
	{6, 0, 0},
	{0, 0, 127},
	{1, 3, 127},
	{1, 0, 127},
	{1, 1, 127},
	{2, 1, 127},
	{3, 1, 127},
	{4, 1, 127},
	{2, 2, 127},
	{3, 2, 127},
	{6, 6, 127},
	{7, 7, 127},
	{3, 3, 127},
	{4, 4, 127},
	{4, 5, 127},
	{5, 7, 127},
	{14, 14, 127},
	{15, 7, 127},
	{10, 10, 127},
	{11, 6, 127},
	{12, 10, 127},
	{13, 13, 127},
	{6, 9, 127},
	{1, 14, 127},
	{1, 15, 32},
	{15, 15, 127},
}

// DecodeOscWaveshape expands the single waveshape knob into both oscillator
// waveforms and the mix. Osc2 and mix only follow the knob while they are
// knob-sourced, so an external override survives knob movement.
func DecodeOscWaveshape(s *State, v uint8) {
	row := oscLUT[v>>3]
	s.Value[Osc1Waveshape] = row[0]
	if s.Source[Osc2Waveshape] == Knob {
		s.Value[Osc2Waveshape] = row[1]
	}
	if s.Source[OscMix] == Knob {
		s.Value[OscMix] = row[2]
	}
}

// DecodeADSRLength splits the length knob into decay, sustain and release in
// four regions of 64.
func DecodeADSRLength(s *State, v uint8) {
	var decay, sustain, release uint8
	switch v >> 6 {
	case 0:
		decay, sustain, release = v>>1, AmpFloor, 0
	case 1:
		decay, sustain, release = v>>1, 92, v>>1
	case 2:
		decay, sustain, release = v, 127, v>>1
	default:
		decay, sustain, release = v, 164, v
	}
	s.Value[ADSRDecay] = decay
	s.Value[ADSRSustain] = sustain
	s.Value[ADSRRelease] = release
}
