// miditest is a wire-level diagnostic for the GesteDJ virtual device:
// list ports, sweep the control mapping, monitor what the device emits.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/max-tan123/gestedj/deck"
	"github.com/max-tan123/gestedj/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "sweep":
		sweep()
	case "monitor":
		monitor()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("GesteDJ MIDI test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list     - List all MIDI ports")
	fmt.Println("  sweep    - Send the control mapping test sequence to the GesteDJ port")
	fmt.Println("  monitor  - Print CC messages arriving from the GesteDJ port")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range gomidi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range gomidi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

// sweep connects to the GesteDJ input port (as the mixer would see it
// in reverse) and drives min/center/max on every control of both decks.
func sweep() {
	outPort := findPort()
	if outPort == "" {
		fmt.Println("No GesteDJ port found. Is gestedj running?")
		return
	}

	out, err := gomidi.FindOutPort(outPort)
	if err != nil {
		fmt.Printf("open %q: %v\n", outPort, err)
		return
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		fmt.Printf("open output: %v\n", err)
		return
	}

	channels := map[deck.ID]uint8{deck.Deck1: 0, deck.Deck2: 1}
	output := midi.NewOutput(func(ch, cc, val uint8) error {
		fmt.Printf("  ch=%d cc=%d val=%d\n", ch+1, cc, val)
		return send(gomidi.ControlChange(ch, cc, val))
	}, channels, 0)

	for _, id := range []deck.ID{deck.Deck1, deck.Deck2} {
		fmt.Printf("Deck %d sweep:\n", id)
		output.TestSequence(id, 100*time.Millisecond)
	}
	fmt.Println("Sweep complete.")
}

func monitor() {
	inPort := findPort()
	if inPort == "" {
		fmt.Println("No GesteDJ port found. Is gestedj running?")
		return
	}

	in, err := gomidi.FindInPort(inPort)
	if err != nil {
		fmt.Printf("open %q: %v\n", inPort, err)
		return
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, cc, val uint8
		if msg.GetControlChange(&ch, &cc, &val) {
			name := "?"
			if c, ok := midi.CCControl(cc); ok {
				name = string(c)
			}
			fmt.Printf("ch=%d cc=%d (%s) val=%d\n", ch+1, cc, name, val)
		}
	})
	if err != nil {
		fmt.Printf("listen: %v\n", err)
		return
	}
	defer stop()

	fmt.Printf("Monitoring %q, Ctrl-C to stop...\n", inPort)
	select {}
}

func findPort() string {
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), "gestedj") {
			return p.String()
		}
	}
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), "gestedj") {
			return p.String()
		}
	}
	return ""
}
