package carousel

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs f once after d. The returned cancel is safe to call more
// than once and after f has run.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// LoopScheduler backs timers with the runtime clock but never runs callbacks
// on the timer goroutine: expired callbacks are handed to the owning loop
// through Wait, so carousel state is only touched from one goroutine.
type LoopScheduler struct {
	mu     sync.Mutex
	timers map[uint64]*time.Timer
	nextID uint64
	closed bool

	ch   chan func()
	done chan struct{}
}

func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{
		timers: make(map[uint64]*time.Timer),
		ch:     make(chan func()),
		done:   make(chan struct{}),
	}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	id := s.nextID
	s.nextID++
	var cancelled atomic.Bool

	// Cancellation can race with delivery; the flag is checked again when the
	// loop runs the callback.
	run := func() {
		if !cancelled.Load() {
			f()
		}
	}
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if !live {
			return
		}
		select {
		case s.ch <- run:
		case <-s.done:
		}
	})

	return func() {
		cancelled.Store(true)
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

// Wait blocks until a timer expires and returns its callback. It reports
// false once the scheduler is closed.
func (s *LoopScheduler) Wait() (func(), bool) {
	select {
	case f := <-s.ch:
		return f, true
	case <-s.done:
		return nil, false
	}
}

// Pending returns the number of armed timers.
func (s *LoopScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every timer and releases goroutines blocked in delivery or Wait.
func (s *LoopScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	close(s.done)
}

// ManualScheduler is a fake clock. Callbacks run synchronously inside
// Advance, in deadline order. Not safe for concurrent use.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	seq       uint64
	f         func()
	cancelled bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := &manualTimer{at: s.now + d, seq: s.seq, f: f}
	s.seq++
	s.pending = append(s.pending, t)
	return func() { t.cancelled = true }
}

// Now returns the elapsed fake time.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of armed, uncancelled timers.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers armed by a callback fire in the same call if they fall within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		i := s.earliest(end)
		if i < 0 {
			break
		}
		t := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.now = t.at
		t.f()
	}
	s.now = end
	s.compact()
}

func (s *ManualScheduler) earliest(end time.Duration) int {
	best := -1
	for i, t := range s.pending {
		if t.cancelled || t.at > end {
			continue
		}
		if best < 0 || t.at < s.pending[best].at ||
			(t.at == s.pending[best].at && t.seq < s.pending[best].seq) {
			best = i
		}
	}
	return best
}

func (s *ManualScheduler) compact() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.pending = live
}
