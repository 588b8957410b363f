package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/cbegin/sprockit-go"
	"github.com/cbegin/sprockit-go/internal/midi"
	"github.com/cbegin/sprockit-go/internal/monitor"
)

var (
	portName    string
	channel     int
	backendName string
	noMonitor   bool
	noMIDI      bool
)

func runPlay(cmd *cobra.Command, args []string) error {
	opts, err := synthOptions()
	if err != nil {
		return err
	}
	pl, err := sprockit.NewPlayer(
		sprockit.WithBackend(backendName),
		sprockit.WithOutputRate(outputRate),
		sprockit.WithEffects(effectSpec),
		sprockit.WithSynthOptions(opts...),
	)
	if err != nil {
		return err
	}

	if !noMIDI {
		defer midi.CloseDriver()
		in, err := midi.OpenIn(portName)
		if errors.Is(err, sprockit.ErrNoMIDIInput) {
			return fmt.Errorf("%w (use --no-midi to play from the monitor only)", err)
		}
		if err != nil {
			return err
		}
		listener, err := pl.Synth().Listen(in, channel)
		if err != nil {
			return err
		}
		defer listener.Close()
		fmt.Printf("listening on %s\n", listener.Port())
	}

	if err := pl.Start(); err != nil {
		return err
	}
	defer pl.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	if !noMonitor && term.IsTerminal(int(os.Stdout.Fd())) {
		g.Go(func() error {
			defer stop()
			return monitor.Run(ctx, pl.Synth())
		})
	} else {
		fmt.Println("playing, press ctrl+c to stop")
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

func runPorts(cmd *cobra.Command, args []string) error {
	defer midi.CloseDriver()
	ports := midi.InPorts()
	if len(ports) == 0 {
		return sprockit.ErrNoMIDIInput
	}
	for i, name := range ports {
		fmt.Printf("%d: %s\n", i, name)
	}
	return nil
}
