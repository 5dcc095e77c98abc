package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/max-tan123/gestedj/config"
	"github.com/max-tan123/gestedj/debug"
	"github.com/max-tan123/gestedj/deck"
	"github.com/max-tan123/gestedj/engine"
	"github.com/max-tan123/gestedj/midi"
	"github.com/max-tan123/gestedj/theme"
	"github.com/max-tan123/gestedj/tracker"
	"github.com/max-tan123/gestedj/tui"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable debug logging to ~/.config/gestedj/debug.log")
	headless := flag.Bool("headless", false, "run without the terminal UI")
	noMIDI := flag.Bool("no-midi", false, "run without creating MIDI ports (geometry only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if err := deck.ValidateSpecs(); err != nil {
		fmt.Printf("control specs: %v\n", err)
		os.Exit(1)
	}

	if *verbose || cfg.Verbose {
		debug.Enable()
		defer debug.Disable()
	}

	channels := map[deck.ID]uint8{
		deck.Deck1: cfg.MIDI.Deck1Channel,
		deck.Deck2: cfg.MIDI.Deck2Channel,
	}

	var output *midi.Output
	var feedback *midi.FeedbackCache
	if !*noMIDI {
		device, err := midi.NewDevice(cfg.MIDI.DeviceName, channels)
		if err != nil {
			fmt.Printf("MIDI unavailable, continuing without it: %v\n", err)
		} else {
			defer device.Close()
			output = midi.NewOutput(device.SendCC, channels, cfg.MIDI.Smoothing)
			feedback = device.Feedback()
			// Announce a known state before any gesture traffic.
			output.Reset()
		}
	}

	eng := engine.New(engine.Config{
		SendRateHz: cfg.MIDI.SendRateHz,
		Params: deck.Params{
			MaxAngleSpan:      cfg.Gesture.MaxAngleSpan,
			PinchDistancePx:   cfg.Gesture.PinchDistancePx,
			VolumeSensitivity: cfg.Gesture.VolumeSensitivity,
		},
	}, output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go eng.Run(ctx)
	defer eng.Stop()

	srv := tracker.NewServer(cfg.Tracker.ListenAddr)
	go func() {
		if err := srv.Run(ctx); err != nil {
			fmt.Printf("tracker server: %v\n", err)
		}
	}()
	go func() {
		for frames := range srv.Frames() {
			eng.ProcessFrames(frames)
		}
	}()

	fmt.Println("GesteDJ")
	fmt.Printf("Tracker endpoint: ws://%s/landmarks\n", cfg.Tracker.ListenAddr)
	if output != nil {
		fmt.Printf("Virtual MIDI device: %s (deck 1 ch %d, deck 2 ch %d)\n",
			cfg.MIDI.DeviceName, cfg.MIDI.Deck1Channel, cfg.MIDI.Deck2Channel)
	}
	fmt.Println("")

	if *headless {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return
	}

	palette := theme.Default()
	if cfg.UI.Palette != "" {
		p, err := theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			fmt.Printf("palette %s: %v, using built-in\n", cfg.UI.Palette, err)
		} else {
			palette = p
		}
	}

	m := tui.NewModel(eng, feedback, theme.New(palette))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
