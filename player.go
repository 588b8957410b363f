package sprockit

import (
	"fmt"
	"sync"

	intaudio "github.com/cbegin/sprockit-go/internal/audio"
	"github.com/cbegin/sprockit-go/internal/debug"
	"github.com/cbegin/sprockit-go/internal/effects"
)

// DefaultOutputRate is the device rate used when none is given.
const DefaultOutputRate = 48000

type PlayerOption func(*playerConfig)

type playerConfig struct {
	backend    string
	outputRate int
	sampleTap  func([]float32)
	effects    string
	gain       float32
	synthOpts  []SynthOption
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{backend: "ebiten", outputRate: DefaultOutputRate}
}

// WithBackend selects the audio backend: "ebiten" (default) or "oto".
func WithBackend(name string) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = name
	}
}

func WithOutputRate(rate int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.outputRate = rate
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// WithEffects adds outboard effects after the filter, for example
// "delay 250,0.4,0.3; reverb 0.5,0.7,0.25".
func WithEffects(spec string) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.effects = spec
	}
}

// WithGain sets the output level; the default is 0.8.
func WithGain(gain float32) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.gain = gain
	}
}

// WithSynthOptions configures the Synth the player creates.
func WithSynthOptions(opts ...SynthOption) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.synthOpts = append(cfg.synthOpts, opts...)
	}
}

// Player plays a Synth through an audio device.
type Player struct {
	mu      sync.Mutex
	synth   *Synth
	stage   *intaudio.Stage
	backend string
	rate    int
	audio   intaudio.Backend
}

func NewPlayer(opts ...PlayerOption) (*Player, error) {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.outputRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	switch cfg.backend {
	case "ebiten", "oto":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.backend)
	}
	chain, err := effects.Parse(cfg.effects, cfg.outputRate)
	if err != nil {
		return nil, err
	}
	synth, err := NewSynth(cfg.synthOpts...)
	if err != nil {
		return nil, err
	}
	stageOpts := intaudio.StageOptions{
		Amplifier: synth,
		Effects:   chain,
		Tap:       cfg.sampleTap,
		Gain:      cfg.gain,
	}
	if synth.Pots() != nil {
		stageOpts.Pots = synth.Pots()
	}
	stage, err := intaudio.NewStage(synth, AudioRate, cfg.outputRate, stageOpts)
	if err != nil {
		return nil, err
	}
	return &Player{
		synth:   synth,
		stage:   stage,
		backend: cfg.backend,
		rate:    cfg.outputRate,
	}, nil
}

func (p *Player) Synth() *Synth { return p.synth }

func (p *Player) OutputRate() int { return p.rate }

// Start opens the audio device and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
		return nil
	}
	backend, err := intaudio.NewBackend(p.backend, p.rate, p.stage)
	if err != nil {
		return err
	}
	p.audio = backend
	p.audio.Play()
	debug.Log("player", "started %s at %d Hz", p.backend, p.rate)
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.audio != nil && p.audio.IsPlaying()
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio == nil {
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	debug.Log("player", "stopped")
	return err
}
