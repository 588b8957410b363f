package params

import "testing"

func TestBootDefaults(t *testing.T) {
	s := New()
	if s.Multiplier != AmpFloor {
		t.Fatalf("multiplier = %d, want floor %d", s.Multiplier, AmpFloor)
	}
	if s.Value[PitchShift] != PitchCenter {
		t.Fatalf("pitch shift = %d, want center", s.Value[PitchShift])
	}
	if s.Value[Amplitude] != 255 || s.Raw[Amplitude] != 192 {
		t.Fatalf("amplitude value/raw = %d/%d, want 255/192", s.Value[Amplitude], s.Raw[Amplitude])
	}
	if s.NoteOn() {
		t.Fatalf("note should be off at boot")
	}
	// length knob 127 lands in region 1
	if s.Value[ADSRDecay] != 63 || s.Value[ADSRSustain] != 92 || s.Value[ADSRRelease] != 63 {
		t.Fatalf("decoded length = %d/%d/%d, want 63/92/63",
			s.Value[ADSRDecay], s.Value[ADSRSustain], s.Value[ADSRRelease])
	}
	for p := Param(0); p < Count; p++ {
		if s.Source[p] != Knob {
			t.Fatalf("%s source = %s, want knob", p, s.Source[p])
		}
	}
}

func TestDecodeADSRLengthRegions(t *testing.T) {
	cases := []struct {
		in                      uint8
		decay, sustain, release uint8
	}{
		{0, 0, AmpFloor, 0},
		{63, 31, AmpFloor, 0},
		{64, 32, 92, 32},
		{128, 128, 127, 64},
		{200, 200, 164, 200},
		{255, 255, 164, 255},
	}
	s := New()
	for _, tc := range cases {
		DecodeADSRLength(s, tc.in)
		if s.Value[ADSRDecay] != tc.decay || s.Value[ADSRSustain] != tc.sustain || s.Value[ADSRRelease] != tc.release {
			t.Errorf("length %d -> %d/%d/%d, want %d/%d/%d", tc.in,
				s.Value[ADSRDecay], s.Value[ADSRSustain], s.Value[ADSRRelease],
				tc.decay, tc.sustain, tc.release)
		}
	}
}

func TestDecodeOscWaveshapeRespectsExternalSources(t *testing.T) {
	s := New()
	DecodeOscWaveshape(s, 30<<3)
	if s.Value[Osc1Waveshape] != 1 || s.Value[Osc2Waveshape] != 15 || s.Value[OscMix] != 32 {
		t.Fatalf("row 30 = %d/%d/%d, want 1/15/32",
			s.Value[Osc1Waveshape], s.Value[Osc2Waveshape], s.Value[OscMix])
	}
	s.Source[Osc2Waveshape] = External
	s.Source[OscMix] = External
	s.Value[Osc2Waveshape] = 9
	s.Value[OscMix] = 200
	DecodeOscWaveshape(s, 8<<3)
	if s.Value[Osc1Waveshape] != 1 {
		t.Fatalf("osc1 should always follow the knob, got %d", s.Value[Osc1Waveshape])
	}
	if s.Value[Osc2Waveshape] != 9 || s.Value[OscMix] != 200 {
		t.Fatalf("external osc2/mix overwritten: %d/%d", s.Value[Osc2Waveshape], s.Value[OscMix])
	}
}

func TestGoverningFollowsSource(t *testing.T) {
	s := New()
	s.Raw[FilterQ] = 10
	s.Override[FilterQ] = 20
	if got := s.Governing(FilterQ); got != 10 {
		t.Fatalf("knob governing = %d, want 10", got)
	}
	s.Source[FilterQ] = External
	if got := s.Governing(FilterQ); got != 20 {
		t.Fatalf("external governing = %d, want 20", got)
	}
	s.Source[FilterQ] = Loop
	if got := s.Governing(FilterQ); got != 0 {
		t.Fatalf("loop governing = %d, want 0", got)
	}
}

func TestLFOTargetMasksIndex(t *testing.T) {
	if got := LFOTarget(2); got != PitchShift {
		t.Fatalf("dest 2 = %s, want pitch_shift", got)
	}
	if got := LFOTarget(8); got != Amplitude {
		t.Fatalf("dest 8 should wrap to amplitude, got %s", got)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for p := Param(0); p < Count; p++ {
		got, ok := Lookup(p.String())
		if !ok || got != p {
			t.Fatalf("lookup %q = %v,%v", p.String(), got, ok)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("unknown name should not resolve")
	}
}
