package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbegin/sprockit-go"
	"github.com/cbegin/sprockit-go/internal/patch"
)

var (
	scorePath  string
	outputPath string
	wavFormat  string
	outputRate int
	seconds    float64
	testNote   uint8
	tail       time.Duration
	patchName  string
	effectSpec string
)

const defaultTail = 1500 * time.Millisecond

func synthOptions() ([]sprockit.SynthOption, error) {
	if patchName == "" {
		return nil, nil
	}
	p, err := patch.Load(patchName)
	if err != nil {
		return nil, err
	}
	return []sprockit.SynthOption{sprockit.WithPatch(p)}, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := synthOptions()
	if err != nil {
		return err
	}

	var wav []byte
	var length time.Duration
	if scorePath != "" {
		score, err := sprockit.LoadScore(scorePath)
		if err != nil {
			return err
		}
		if tail == 0 {
			tail = defaultTail
		}
		length = score.Duration() + tail
		wav, err = renderScore(score, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", scorePath, err)
		}
	} else {
		length = time.Duration(seconds * float64(time.Second))
		wav, err = renderNote(opts)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(outputPath, wav, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", outputPath, length.Round(time.Millisecond))
	return nil
}

func renderScore(score sprockit.Score, opts []sprockit.SynthOption) ([]byte, error) {
	switch wavFormat {
	case "u8":
		raw, err := sprockit.RenderScore(score, tail, opts...)
		if err != nil {
			return nil, err
		}
		return sprockit.EncodeWAVUint8(raw, sprockit.AudioRate), nil
	case "f32":
		samples, err := sprockit.RenderScoreStereo(score, tail, outputRate, effectSpec, opts...)
		if err != nil {
			return nil, err
		}
		return sprockit.EncodeWAVFloat32LE(samples, outputRate, 2), nil
	}
	return nil, fmt.Errorf("invalid --format %q (expected u8|f32)", wavFormat)
}

func renderNote(opts []sprockit.SynthOption) ([]byte, error) {
	synth, err := sprockit.NewSynth(opts...)
	if err != nil {
		return nil, err
	}
	synth.NoteOn(testNote, 100)
	switch wavFormat {
	case "u8":
		return sprockit.EncodeWAVUint8(sprockit.RenderSamples(synth, seconds), sprockit.AudioRate), nil
	case "f32":
		samples, err := sprockit.RenderStereo(synth, outputRate, seconds, effectSpec)
		if err != nil {
			return nil, err
		}
		return sprockit.EncodeWAVFloat32LE(samples, outputRate, 2), nil
	}
	return nil, fmt.Errorf("invalid --format %q (expected u8|f32)", wavFormat)
}
