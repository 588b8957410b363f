package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/cbegin/sprockit-go/internal/debug"
)

var version = "0.1.0"

var debugLog bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sprockit",
	Short: "Monophonic 8-bit synth voice",
	Long: `sprockit is a two-oscillator 8-bit synthesizer voice with ADSR,
filter envelope, LFO, glide and arpeggiator.

Play it live from a MIDI keyboard or render MIDI files to WAV.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugLog {
			return debug.Enable()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Disable()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a MIDI file or a test note to WAV",
	Long: `Render a standard MIDI file through the synth and write a WAV file.

Examples:
  sprockit render --score song.mid -o song.wav
  sprockit render --note 48 --seconds 2 --format u8 -o raw.wav
  sprockit render --score song.mid --patch bright --effects "delay 300,0.4,0.3"`,
	RunE: runRender,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the synth live from a MIDI input",
	Long: `Open a MIDI input and an audio device and play until interrupted.
A terminal monitor shows the voice state and lets you turn the knobs.

Examples:
  sprockit play
  sprockit play --port "Keystation" --channel 0 --backend oto`,
	RunE: runPlay,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input ports",
	RunE:  runPorts,
}

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Manage saved patches",
	Long: `List, show or create patch files.

Subcommands:
  list      List saved patches
  show      Print a patch as JSON
  init      Save the boot panel as a new patch`,
}

var patchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved patches",
	RunE:  runPatchList,
}

var patchShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a patch as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatchShow,
}

var patchInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Save the boot panel as a new patch",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatchInit,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write a debug log to the config directory")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(patchCmd)

	patchCmd.AddCommand(patchListCmd)
	patchCmd.AddCommand(patchShowCmd)
	patchCmd.AddCommand(patchInitCmd)

	renderCmd.Flags().StringVarP(&scorePath, "score", "s", "", "Standard MIDI file to render")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "sprockit.wav", "Output WAV file")
	renderCmd.Flags().StringVar(&wavFormat, "format", "f32", "WAV format: u8 (raw 32768 Hz mono) or f32 (filtered stereo)")
	renderCmd.Flags().IntVar(&outputRate, "rate", 48000, "Output sample rate for f32")
	renderCmd.Flags().Float64Var(&seconds, "seconds", 2, "Length when rendering a test note")
	renderCmd.Flags().Uint8Var(&testNote, "note", 60, "Test note when no score is given")
	renderCmd.Flags().DurationVar(&tail, "tail", 0, "Extra time after the last event (default: release time)")
	renderCmd.Flags().StringVarP(&patchName, "patch", "p", "", "Saved patch to recall")
	renderCmd.Flags().StringVar(&effectSpec, "effects", "", "Outboard effects, e.g. \"reverb 0.5,0.7,0.25\"")

	playCmd.Flags().StringVar(&portName, "port", "", "MIDI input port (default: first port)")
	playCmd.Flags().IntVar(&channel, "channel", -1, "MIDI channel 0-15 (default: all)")
	playCmd.Flags().StringVar(&backendName, "backend", "ebiten", "Audio backend: ebiten or oto")
	playCmd.Flags().IntVar(&outputRate, "rate", 48000, "Output sample rate")
	playCmd.Flags().StringVarP(&patchName, "patch", "p", "", "Saved patch to recall")
	playCmd.Flags().StringVar(&effectSpec, "effects", "", "Outboard effects")
	playCmd.Flags().BoolVar(&noMonitor, "no-monitor", false, "Run without the terminal monitor")
	playCmd.Flags().BoolVar(&noMIDI, "no-midi", false, "Run without a MIDI input")
}
