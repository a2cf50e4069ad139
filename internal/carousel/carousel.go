// Package carousel implements an auto-advancing, wrap-around slide index
// with fading controls.
package carousel

import "time"

const (
	DefaultInterval = 10 * time.Second
	DefaultFade     = time.Second
)

// Carousel cycles through a fixed list. Auto-advance runs only with two or
// more items and is re-armed whenever the index changes.
type Carousel[T any] struct {
	items    []T
	index    int
	visible  bool
	closed   bool
	interval time.Duration
	fade     time.Duration
	sched    Scheduler

	cancelAdvance func()
	cancelFade    func()

	// OnChange, if set, is called after every index change.
	OnChange func(index int)
}

// New builds a carousel over a copy of items. Non-positive durations fall
// back to the defaults.
func New[T any](items []T, sched Scheduler, interval, fade time.Duration) *Carousel[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if fade <= 0 {
		fade = DefaultFade
	}
	c := &Carousel[T]{
		items:    append([]T(nil), items...),
		interval: interval,
		fade:     fade,
		sched:    sched,
	}
	c.armAdvance()
	return c
}

func (c *Carousel[T]) Len() int   { return len(c.items) }
func (c *Carousel[T]) Index() int { return c.index }

// Current returns the item on display, or false for an empty carousel.
func (c *Carousel[T]) Current() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[c.index], true
}

// HasControls reports whether arrows are rendered at all.
func (c *Carousel[T]) HasControls() bool { return len(c.items) > 1 }

// ControlsVisible reports whether the arrows are currently revealed.
func (c *Carousel[T]) ControlsVisible() bool { return c.HasControls() && c.visible }

func (c *Carousel[T]) Next() { c.move(1) }
func (c *Carousel[T]) Prev() { c.move(-1) }

// GoTo jumps to index i, wrapped into range.
func (c *Carousel[T]) GoTo(i int) {
	if len(c.items) == 0 {
		return
	}
	c.set(mod(i, len(c.items)))
}

// Reveal shows the controls and (re)starts the fade timer.
func (c *Carousel[T]) Reveal() {
	if c.closed || !c.HasControls() {
		return
	}
	c.visible = true
	if c.cancelFade != nil {
		c.cancelFade()
	}
	c.cancelFade = c.sched.AfterFunc(c.fade, func() {
		c.visible = false
		c.cancelFade = nil
	})
}

// Close cancels every pending timer. Further calls are no-ops.
func (c *Carousel[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.visible = false
	if c.cancelAdvance != nil {
		c.cancelAdvance()
		c.cancelAdvance = nil
	}
	if c.cancelFade != nil {
		c.cancelFade()
		c.cancelFade = nil
	}
}

func (c *Carousel[T]) move(delta int) {
	if len(c.items) == 0 {
		return
	}
	c.set(mod(c.index+delta, len(c.items)))
}

func (c *Carousel[T]) set(i int) {
	if c.closed {
		return
	}
	c.index = i
	c.armAdvance()
	if c.OnChange != nil {
		c.OnChange(i)
	}
}

func (c *Carousel[T]) armAdvance() {
	if c.cancelAdvance != nil {
		c.cancelAdvance()
		c.cancelAdvance = nil
	}
	if c.closed || len(c.items) < 2 {
		return
	}
	c.cancelAdvance = c.sched.AfterFunc(c.interval, func() {
		c.cancelAdvance = nil
		c.Next()
	})
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
