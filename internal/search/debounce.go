package search

import (
	"sync"
	"time"
)

// State is the phase of a Debouncer.
type State int

const (
	// Idle means nothing has been started yet.
	Idle State = iota
	// Pending means a timer is armed and waiting for input to settle.
	Pending
	// Fired means the last timer elapsed and its input was handed on.
	Fired
	// Cancelled means the last timer was dropped before it elapsed.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fired:
		return "fired"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Debouncer delays an action until its input has been quiet for a fixed
// interval. Only the most recent input is ever handed to the action;
// intermediate inputs are dropped, not queued.
//
// Fired and Cancelled describe how the last cycle ended and hold until the
// next Start. The action runs on the timer's goroutine.
type Debouncer struct {
	delay time.Duration
	fire  func(input string)

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	state    State
	disposed bool
}

// NewDebouncer returns an idle Debouncer that calls fire with the latest
// input once delay has passed without a new Start.
func NewDebouncer(delay time.Duration, fire func(input string)) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

// Start arms the timer with input, replacing any pending one.
// It is a no-op after Dispose.
func (d *Debouncer) Start(input string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.state = Pending
	d.timer = time.AfterFunc(d.delay, func() { d.elapse(gen, input) })
}

// Cancel drops a pending timer without firing. It is a no-op otherwise.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Dispose cancels any pending timer and turns every later Start into a no-op.
func (d *Debouncer) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.disposed = true
}

// State returns the current phase.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Debouncer) cancelLocked() {
	if d.state != Pending {
		return
	}
	d.stopLocked()
	// A timer that already elapsed may be blocked on mu; bumping gen makes
	// it return without firing.
	d.gen++
	d.state = Cancelled
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) elapse(gen uint64, input string) {
	d.mu.Lock()
	if gen != d.gen || d.disposed {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.state = Fired
	d.mu.Unlock()

	d.fire(input)
}
