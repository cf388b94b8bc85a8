package loop

import "sync"

// PumpScheduler queues callbacks until the host's frame hook calls Pump.
// Hosts that own their own loop (such as a windowed engine's Update) use it
// to run frames on the host's cadence and goroutine.
type PumpScheduler struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

// NewPumpScheduler creates an empty PumpScheduler.
func NewPumpScheduler() *PumpScheduler {
	return &PumpScheduler{pending: make(map[Handle]func())}
}

// Schedule queues fn for the next Pump.
func (s *PumpScheduler) Schedule(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

// Cancel drops a queued callback.
func (s *PumpScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, h)
}

// Pump runs every callback queued before the call and returns how many ran.
// Callbacks scheduled while pumping wait for the next Pump.
func (s *PumpScheduler) Pump() int {
	s.mu.Lock()
	order := s.order
	s.order = nil
	fns := make([]func(), 0, len(order))
	for _, h := range order {
		if fn, ok := s.pending[h]; ok {
			fns = append(fns, fn)
			delete(s.pending, h)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending returns the number of queued callbacks.
func (s *PumpScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
