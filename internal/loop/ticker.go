package loop

import (
	"sync"
	"time"
)

// TickerScheduler schedules callbacks on a fixed timestep. Deadlines advance
// by exactly one interval per frame so the rate does not drift; if the
// caller falls more than two intervals behind, the schedule restarts from
// now instead of bursting to catch up.
type TickerScheduler struct {
	interval time.Duration

	mu       sync.Mutex
	next     Handle
	timers   map[Handle]*time.Timer
	deadline time.Time
}

// NewTickerScheduler creates a scheduler firing every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
	}
}

// IntervalForTPS converts a ticks-per-second rate to a frame interval.
func IntervalForTPS(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// Interval returns the configured frame interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Schedule runs fn at the next frame deadline on a timer goroutine.
func (s *TickerScheduler) Schedule(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.deadline.IsZero() || now.Sub(s.deadline) > 2*s.interval {
		s.deadline = now
	}
	s.deadline = s.deadline.Add(s.interval)

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.deadline.Sub(now), func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return h
}

// Cancel stops a pending timer.
func (s *TickerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
	// Restart the timestep on the next Schedule after a cancel.
	s.deadline = time.Time{}
}

// Pending returns the number of outstanding timers.
func (s *TickerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
