// Package loop drives the game frame by frame. A Driver owns the repeating
// schedule; the cadence itself comes from a Scheduler, which may be a host's
// display refresh, a fixed-rate timer, or a manual pump in tests.
package loop

import (
	"sync"
	"sync/atomic"
)

// Handle identifies a scheduled invocation.
type Handle uint64

// Scheduler runs a callback once at the host's next frame.
type Scheduler interface {
	// Schedule arranges for fn to run once and returns a handle for Cancel.
	Schedule(fn func()) Handle
	// Cancel drops a pending invocation. Cancelling a handle that already
	// ran or was never issued is a no-op.
	Cancel(h Handle)
}

// Driver repeatedly invokes a frame callback through a Scheduler.
// At most one invocation is outstanding at any time, and a new one is only
// scheduled after the current frame returns.
type Driver struct {
	sched Scheduler
	frame func()

	mu      sync.Mutex
	running bool
	pending Handle
	gen     uint64 // bumped on every Start/Stop to invalidate stale callbacks

	frames atomic.Uint64
}

// NewDriver creates a stopped Driver.
func NewDriver(s Scheduler, frame func()) *Driver {
	return &Driver{sched: s, frame: frame}
}

// Start begins scheduling frames. Calling Start on a running Driver does
// nothing.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.gen++
	d.scheduleLocked()
}

// Stop cancels the pending frame. A frame already executing completes, but
// no further frame runs until Start is called again.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	d.gen++
	d.sched.Cancel(d.pending)
	d.pending = 0
}

// Running reports whether the Driver is scheduling frames.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Frames returns how many frames have run.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

func (d *Driver) scheduleLocked() {
	gen := d.gen
	d.pending = d.sched.Schedule(func() { d.tick(gen) })
}

func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	if !d.running || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = 0
	d.mu.Unlock()

	// The frame runs unlocked so it may call Stop or Start itself.
	d.frame()
	d.frames.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running && gen == d.gen && d.pending == 0 {
		d.scheduleLocked()
	}
}
