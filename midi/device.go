package midi

import (
	"fmt"
	"sync"

	"github.com/max-tan123/gestedj/debug"
	"github.com/max-tan123/gestedj/deck"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Device owns a pair of virtual MIDI ports: an output the mixer connects to
// for gesture control, and an input on which the mixer reports control codes
// back. Inbound messages land in the feedback cache only.
type Device struct {
	name string

	drv     *rtmididrv.Driver
	outPort drivers.Out
	inPort  drivers.In
	sendMu  sync.Mutex // toggles send from the frame goroutine, CCs from the sender loop
	send    func(msg gomidi.Message) error
	stop    func()

	channels map[deck.ID]uint8
	feedback *FeedbackCache
}

// NewDevice creates the virtual ports and starts the feedback listener.
// channels maps each deck onto its MIDI channel; the same mapping routes
// outbound controls and demuxes inbound feedback.
func NewDevice(name string, channels map[deck.ID]uint8) (*Device, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midi driver: %w", err)
	}

	d := &Device{
		name:     name,
		drv:      drv,
		channels: make(map[deck.ID]uint8, len(channels)),
		feedback: NewFeedbackCache(),
	}
	for id, ch := range channels {
		d.channels[id] = ch
	}

	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open virtual out %q: %w", name, err)
	}
	d.outPort = out

	send, err := gomidi.SendTo(out)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open output: %w", err)
	}
	d.send = send

	in, err := drv.OpenVirtualIn(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open virtual in %q: %w", name, err)
	}
	d.inPort = in

	stop, err := gomidi.ListenTo(in, d.handleInbound)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open input: %w", err)
	}
	d.stop = stop

	debug.Log("midi", "virtual ports %q open", name)
	return d, nil
}

// handleInbound demuxes mixer feedback into the cache. Anything that is not
// a CC on a known deck channel with a known control number is ignored.
func (d *Device) handleInbound(msg gomidi.Message, timestampms int32) {
	var channel, cc, value uint8
	if !msg.GetControlChange(&channel, &cc, &value) {
		return
	}

	control, ok := CCControl(cc)
	if !ok {
		return
	}
	for id, ch := range d.channels {
		if ch == channel {
			d.feedback.Set(id, control, value)
			debug.LogEvery(30, "midi-in", "deck %d %s feedback=%d", id, control, value)
			return
		}
	}
}

// SendCC transmits one Control Change message, clamping the value into the
// protocol range.
func (d *Device) SendCC(channel, cc, value uint8) error {
	if value > 127 {
		value = 127
	}
	d.sendMu.Lock()
	defer d.sendMu.Unlock()
	return d.send(gomidi.ControlChange(channel, cc, value))
}

// Feedback returns the inbound feedback cache.
func (d *Device) Feedback() *FeedbackCache { return d.feedback }

// Channels returns a copy of the deck→channel routing table.
func (d *Device) Channels() map[deck.ID]uint8 {
	out := make(map[deck.ID]uint8, len(d.channels))
	for id, ch := range d.channels {
		out[id] = ch
	}
	return out
}

// Name returns the virtual port name.
func (d *Device) Name() string { return d.name }

// Close stops the listener and tears down both ports.
func (d *Device) Close() error {
	if d.stop != nil {
		d.stop()
	}
	if d.drv != nil {
		return d.drv.Close()
	}
	return nil
}
