package play

import (
	"time"

	"github.com/mverhelle/folio/internal/steer"
)

type Key int

const (
	KeyForward Key = iota
	KeyReverse
	KeyLeft
	KeyRight
	numKeys
)

// DefaultHoldWindow covers the usual terminal key-repeat interval.
const DefaultHoldWindow = 150 * time.Millisecond

// DefaultHoldDelay covers the pause most terminals leave between the first
// press and the first repeat.
const DefaultHoldDelay = 500 * time.Millisecond

// HoldTracker turns key-press events into held-key snapshots for hosts that
// never report key releases. A fresh press counts as held for delay; once
// repeats arrive, each one extends the hold by window.
type HoldTracker struct {
	window   time.Duration
	delay    time.Duration
	last     [numKeys]time.Time
	repeated [numKeys]bool
}

func NewHoldTracker(window, delay time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	if delay <= 0 {
		delay = DefaultHoldDelay
	}
	if delay < window {
		delay = window
	}
	return &HoldTracker{window: window, delay: delay}
}

func (h *HoldTracker) Press(k Key, at time.Time) {
	if k < 0 || k >= numKeys {
		return
	}
	h.repeated[k] = h.Held(k, at)
	h.last[k] = at
	// Opposite directions cancel: pressing one releases the other.
	switch k {
	case KeyLeft:
		h.Release(KeyRight)
	case KeyRight:
		h.Release(KeyLeft)
	case KeyForward:
		h.Release(KeyReverse)
	case KeyReverse:
		h.Release(KeyForward)
	}
}

// Release drops a key immediately, for hosts that do report releases.
func (h *HoldTracker) Release(k Key) {
	if k < 0 || k >= numKeys {
		return
	}
	h.last[k] = time.Time{}
	h.repeated[k] = false
}

func (h *HoldTracker) Held(k Key, at time.Time) bool {
	t := h.last[k]
	w := h.window
	if !h.repeated[k] {
		w = h.delay
	}
	return !t.IsZero() && !at.Before(t) && at.Sub(t) < w
}

// Input returns the held keys at time at.
func (h *HoldTracker) Input(at time.Time) steer.Input {
	return steer.Input{
		Forward: h.Held(KeyForward, at),
		Reverse: h.Held(KeyReverse, at),
		Left:    h.Held(KeyLeft, at),
		Right:   h.Held(KeyRight, at),
	}
}

func (h *HoldTracker) Clear() {
	h.last = [numKeys]time.Time{}
	h.repeated = [numKeys]bool{}
}
