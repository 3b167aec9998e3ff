package canvas

import (
	"sync"
	"time"
)

// DefaultFrameDelay is roughly one display frame.
const DefaultFrameDelay = 16 * time.Millisecond

// FrameScheduler coalesces redraw requests: each Request cancels the pending
// draw and schedules a new one, so only the latest state is drawn.
type FrameScheduler struct {
	mu    sync.Mutex
	delay time.Duration
	draw  func()
	timer *time.Timer
	gen   uint64
}

func NewFrameScheduler(delay time.Duration, draw func()) *FrameScheduler {
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	return &FrameScheduler{delay: delay, draw: draw}
}

func (s *FrameScheduler) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// Pending reports whether a draw is scheduled.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Flush runs a scheduled draw immediately.
func (s *FrameScheduler) Flush() {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.gen++
	s.mu.Unlock()

	s.draw()
}

// Stop drops a scheduled draw without running it.
func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *FrameScheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.draw()
}
