package params

// Param identifies one of the 32 synth parameter slots. The numbering is the
// panel's storage order and is used by control-change mapping (controller-2).
type Param uint8

const (
	FilterQ Param = iota
	LFORate
	FilterFrequency
	OscDetune
	ADSRLength
	LFOAmount
	OscWaveshape
	ADSRAttack
	FilterSustain
	FilterEnvAmount
	FilterAttack
	OscMix
	LFOShape
	FilterDecay
	ADSRRelease
	Osc1Waveshape
	Osc2Waveshape
	ADSRSustain
	FilterRelease
	PitchShift
	Amplitude
	LFODest
	FilterType
	LFOWaveshape
	LFOSync
	Portamento
	ArpMode
	ArpSpeed
	ArpLength
	ArpGate
	ADSRDecay
	Reserved
)

const (
	// Count is the number of parameter slots.
	Count = 32
	// NumKnobs is the number of physical knobs; knob i drives slot i.
	NumKnobs = 8
	// NumOscillators is fixed: one note, two detuned oscillators.
	NumOscillators = 2

	// PhaseModulus is one full oscillator/LFO cycle in phase units.
	PhaseModulus = 32767
	// PitchCenter is the pitch-shift value that means "no bend".
	PitchCenter = 64
	// AmpFloor is the lowest VCA drive the analog stage responds to.
	AmpFloor = 47
	// AmpSteps is the full-scale envelope multiplier.
	AmpSteps = 255
)

var names = [Count]string{
	"filter_q",
	"lfo_rate",
	"filter_frequency",
	"osc_detune",
	"adsr_length",
	"lfo_amount",
	"osc_waveshape",
	"adsr_attack",
	"filter_sustain",
	"filter_env_amount",
	"filter_attack",
	"osc_mix",
	"lfo_shape",
	"filter_decay",
	"adsr_release",
	"osc1_waveshape",
	"osc2_waveshape",
	"adsr_sustain",
	"filter_release",
	"pitch_shift",
	"amplitude",
	"lfo_dest",
	"filter_type",
	"lfo_waveshape",
	"lfo_sync",
	"portamento",
	"arp_mode",
	"arp_speed",
	"arp_length",
	"arp_gate",
	"adsr_decay",
	"reserved",
}

func (p Param) Valid() bool { return p < Count }

func (p Param) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return names[p]
}

// Lookup resolves a parameter by its snake_case name.
func Lookup(name string) (Param, bool) {
	for i, n := range names {
		if n == name {
			return Param(i), true
		}
	}
	return 0, false
}

// Source tags which input currently governs a slot.
type Source uint8

const (
	Knob Source = iota
	Loop
	External
)

func (s Source) String() string {
	switch s {
	case Knob:
		return "knob"
	case Loop:
		return "loop"
	case External:
		return "external"
	default:
		return "unknown"
	}
}

var lfoDestinations = [8]Param{
	Amplitude,
	FilterFrequency,
	PitchShift,
	FilterQ,
	OscMix,
	OscDetune,
	FilterEnvAmount,
	FilterAttack,
}

// LFOTarget decodes an LFO destination setting into the slot it modulates.
// Only the low three bits are significant.
func LFOTarget(v uint8) Param {
	return lfoDestinations[v&7]
}
