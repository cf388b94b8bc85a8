package loop

import "sync"

// ManualScheduler queues callbacks until Fire is called. Tests use it as a
// deterministic stand-in for a display refresh.
type ManualScheduler struct {
	mu    sync.Mutex
	next  Handle
	queue []scheduled
}

type scheduled struct {
	h  Handle
	fn func()
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fn.
func (m *ManualScheduler) Schedule(fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.queue = append(m.queue, scheduled{h: m.next, fn: fn})
	return m.next
}

// Cancel removes a queued callback.
func (m *ManualScheduler) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.queue {
		if s.h == h {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Fire runs the oldest queued callback. It returns false if nothing was queued.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return false
	}
	s := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	s.fn()
	return true
}

// FireN fires up to n callbacks and returns how many ran.
func (m *ManualScheduler) FireN(n int) int {
	ran := 0
	for ran < n && m.Fire() {
		ran++
	}
	return ran
}
