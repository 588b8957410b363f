// Package effects holds the float stage that follows the 8-bit voice: the
// analog filter model driven by the pot bus, a DC blocker, and optional
// outboard effects configured from a short text spec.
package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// Effector processes mono audio one sample at a time.
type Effector interface {
	Process(x float32) float32
	Reset()
}

// Chain applies a sequence of effects in order.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

func (c *Chain) Process(x float32) float32 {
	for _, e := range c.effects {
		x = e.Process(x)
	}
	return x
}

func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}

func (c *Chain) Len() int { return len(c.effects) }

// Parse builds a chain from a semicolon separated list such as
// "drive 4,0.5; delay 250,0.4,0.3; reverb 0.5,0.7,0.25". Missing parameters
// take their defaults. An empty spec yields a nil chain.
func Parse(spec string, sampleRate int) (*Chain, error) {
	var chain *Chain
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, " ", 2)
		kind := strings.ToLower(strings.TrimSpace(fields[0]))
		var args []float64
		if len(fields) > 1 {
			for _, a := range strings.Split(fields[1], ",") {
				a = strings.TrimSpace(a)
				if a == "" {
					continue
				}
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return nil, fmt.Errorf("effect %q: bad parameter %q", kind, a)
				}
				args = append(args, v)
			}
		}
		e, err := create(kind, args, sampleRate)
		if err != nil {
			return nil, err
		}
		if chain == nil {
			chain = NewChain()
		}
		chain.Add(e)
	}
	return chain, nil
}

func create(kind string, args []float64, sampleRate int) (Effector, error) {
	arg := func(i int, def float64) float64 {
		if i < len(args) {
			return args[i]
		}
		return def
	}
	switch kind {
	case "delay":
		return NewDelay(sampleRate,
			arg(0, 250),          // ms
			float32(arg(1, 0.4)), // feedback
			float32(arg(2, 0.3)), // wet
		), nil
	case "reverb":
		return NewReverb(sampleRate,
			float32(arg(0, 0.5)),  // room size
			float32(arg(1, 0.7)),  // feedback
			float32(arg(2, 0.25)), // wet
		), nil
	case "drive", "dist", "distortion":
		return NewDrive(sampleRate,
			float32(arg(0, 4)),    // pre gain
			float32(arg(1, 0.5)),  // post gain
			float32(arg(2, 8000)), // lowpass Hz
		), nil
	}
	return nil, fmt.Errorf("unknown effect %q", kind)
}
