// Package engine is the concurrency core: it owns the two decks behind one
// lock, ingests landmark frames from the tracker, runs the fixed-rate MIDI
// sender loop, and coordinates shutdown.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/max-tan123/gestedj/debug"
	"github.com/max-tan123/gestedj/deck"
	"github.com/max-tan123/gestedj/gesture"
	"github.com/max-tan123/gestedj/midi"
)

// Config holds the engine's runtime parameters.
type Config struct {
	SendRateHz int
	Params     deck.Params
}

// Snapshot is a consistent copy of both decks, taken under one lock
// acquisition so the sender and UI never observe a torn mix of values.
type Snapshot struct {
	Deck1 deck.Snapshot
	Deck2 deck.Snapshot
}

// Engine wires frame processing to the output adapter.
//
// Three goroutines touch it: the frame-processing goroutine (ProcessFrames),
// the sender loop (Run), and the MIDI inbound callback — which only writes
// the feedback cache and never takes the engine lock.
type Engine struct {
	cfg    Config
	output *midi.Output // nil when running without a MIDI device

	mu    sync.Mutex
	decks map[gesture.Handedness]*deck.Deck

	stopOnce  sync.Once
	stopChan  chan struct{}
	doneChan  chan struct{}
	testChan  chan struct{}
	resetChan chan struct{}

	// UpdateChan signals the UI that state changed. Buffered; drops when the
	// UI is behind.
	UpdateChan chan struct{}
}

// New creates an engine with one deck per hand side.
func New(cfg Config, output *midi.Output) *Engine {
	return &Engine{
		cfg:    cfg,
		output: output,
		decks: map[gesture.Handedness]*deck.Deck{
			gesture.Left:  deck.New(deck.Deck1, gesture.Left, cfg.Params),
			gesture.Right: deck.New(deck.Deck2, gesture.Right, cfg.Params),
		},
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
		testChan:   make(chan struct{}, 1),
		resetChan:  make(chan struct{}, 1),
		UpdateChan: make(chan struct{}, 1),
	}
}

type toggleSend struct {
	id deck.ID
	cc uint8
}

// ProcessFrames ingests one camera frame's worth of hands. Zero hands
// triggers detection-loss handling for every deck. Toggle messages fire
// after the lock is released so MIDI I/O never extends the critical section.
func (e *Engine) ProcessFrames(frames []gesture.Frame) {
	now := time.Now()
	var toggles []toggleSend

	e.mu.Lock()
	if len(frames) == 0 {
		for _, d := range e.decks {
			d.DetectionLoss()
		}
	} else {
		seen := make(map[gesture.Handedness]bool, 2)
		for i := range frames {
			f := &frames[i]
			d, ok := e.decks[f.Handedness]
			if !ok {
				continue
			}
			seen[f.Handedness] = true

			if !f.Valid() {
				d.DetectionLoss()
				continue
			}

			for _, ev := range d.Apply(buildInput(f), now) {
				switch ev {
				case deck.EventPlayToggle:
					toggles = append(toggles, toggleSend{d.ID(), midi.CCPlayToggle})
				case deck.EventEffectToggle:
					toggles = append(toggles, toggleSend{d.ID(), midi.CCEffectToggle})
				}
			}
		}
		for side, d := range e.decks {
			if !seen[side] {
				d.NoFrame()
			}
		}
	}
	e.mu.Unlock()

	if e.output != nil {
		for _, t := range toggles {
			if err := e.output.SendToggle(t.id, t.cc); err != nil {
				debug.Log("engine", "toggle cc=%d deck=%d failed: %v", t.cc, t.id, err)
			}
		}
	}

	e.notify()
}

// buildInput computes one frame's geometry for its deck.
func buildInput(f *gesture.Frame) deck.Input {
	flags := gesture.ExtendedFingers(f)
	return deck.Input{
		Flags:           flags,
		Angle:           gesture.PointerAngle(f),
		PointerUp:       gesture.PointerUp(f),
		ThumbsUp:        gesture.ThumbsUp(f),
		PinchMRP:        flags.Middle && flags.Ring && flags.Pinky,
		PinchDistancePx: gesture.PinchDistancePx(f),
		PinchMidY:       gesture.PinchMidY(f),
	}
}

// Run is the sender loop: at a fixed rate it snapshots both decks under the
// lock, releases it, then pushes values through the output adapter. Blocking
// — run in a goroutine. Returns when the context is cancelled or Stop is
// called.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.doneChan)

	interval := time.Second / time.Duration(e.cfg.SendRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopChan:
			return
		case <-e.testChan:
			if e.output != nil {
				e.output.TestSequence(deck.Deck1, 0)
				e.output.TestSequence(deck.Deck2, 0)
			}
		case <-e.resetChan:
			if e.output != nil {
				e.output.Reset()
			}
		case <-ticker.C:
			snap := e.Snapshot()
			if e.output == nil {
				continue
			}
			sent := e.output.UpdateDeck(snap.Deck1) + e.output.UpdateDeck(snap.Deck2)
			if sent > 0 {
				debug.LogEvery(30, "engine", "sender cycle pushed %d updates", sent)
			}
		}
	}
}

// TriggerTest asks the sender loop to run the mapping test sequence on its
// next wakeup. Output state is only ever touched on that goroutine.
func (e *Engine) TriggerTest() {
	select {
	case e.testChan <- struct{}{}:
	default:
	}
}

// TriggerReset asks the sender loop to force-send every control's default.
func (e *Engine) TriggerReset() {
	select {
	case e.resetChan <- struct{}{}:
	default:
	}
}

// Stop asks the sender loop to exit and waits for it with a bounded timeout.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopChan) })
	select {
	case <-e.doneChan:
	case <-time.After(time.Second):
		debug.Log("engine", "sender loop did not stop within 1s")
	}
}

// Snapshot copies both decks under one lock acquisition.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Deck1: e.decks[gesture.Left].Snapshot(),
		Deck2: e.decks[gesture.Right].Snapshot(),
	}
}

func (e *Engine) notify() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}
