package midi

import (
	"sync"

	"github.com/max-tan123/gestedj/deck"
)

// FeedbackCache holds the latest control codes reported back by the mixer.
// The inbound listener writes it, the UI reads it. It is never fed back into
// deck state, so inbound traffic cannot create a control loop. Its lock is
// disjoint from the engine's so feedback bursts never stall frame
// processing.
type FeedbackCache struct {
	mu     sync.RWMutex
	values map[feedbackKey]uint8
}

type feedbackKey struct {
	deck    deck.ID
	control deck.Control
}

// NewFeedbackCache creates an empty cache.
func NewFeedbackCache() *FeedbackCache {
	return &FeedbackCache{values: make(map[feedbackKey]uint8)}
}

// Set records a received code for one deck's control.
func (fc *FeedbackCache) Set(id deck.ID, c deck.Control, code uint8) {
	fc.mu.Lock()
	fc.values[feedbackKey{id, c}] = code
	fc.mu.Unlock()
}

// Get returns the last received code, or false if none arrived yet.
func (fc *FeedbackCache) Get(id deck.ID, c deck.Control) (uint8, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	code, ok := fc.values[feedbackKey{id, c}]
	return code, ok
}

// Snapshot copies the cache for one deck.
func (fc *FeedbackCache) Snapshot(id deck.ID) map[deck.Control]uint8 {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	out := make(map[deck.Control]uint8)
	for k, v := range fc.values {
		if k.deck == id {
			out[k.control] = v
		}
	}
	return out
}
