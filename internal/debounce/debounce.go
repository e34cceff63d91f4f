// Package debounce delays propagation of a rapidly changing value until it
// has been stable for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds the latest value passed to Set and publishes it on C once
// no newer value has arrived for the configured delay. Intermediate values
// are dropped. Delivery is latest-wins: if the consumer has not yet read a
// previously settled value, it is replaced.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	pending T
	armed   bool
	closed  bool
	out     chan T
}

// New creates a debouncer with the given delay.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// C returns the channel settled values are delivered on. It is closed by Close.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Set records v and restarts the delay timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush publishes the pending value immediately, if any.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || !d.armed {
		return
	}
	d.stopLocked()
	d.publishLocked()
}

// Cancel drops the pending value without publishing it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Close cancels any pending value and closes C. Later calls are no-ops.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopLocked()
	d.closed = true
	close(d.out)
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// A Set, Flush or Cancel after this timer was armed supersedes it.
	if d.closed || gen != d.gen || !d.armed {
		return
	}
	d.timer = nil
	d.publishLocked()
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.armed = false
}

// publishLocked must be called with mu held; it is the only sender on out.
func (d *Debouncer[T]) publishLocked() {
	v := d.pending
	d.armed = false
	var zero T
	d.pending = zero

	select {
	case <-d.out:
	default:
	}
	d.out <- v
}
