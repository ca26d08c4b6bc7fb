// Package observe provides the small reactive cell the core state logic is
// built on: a single-writer, multi-reader observable value.
package observe

import (
	"context"
	"sync"
)

// Cell holds a value and notifies subscribers on every Set. Subscriber
// channels have a buffer of one and are written with a drop-stale policy:
// a slow subscriber misses intermediate values but always eventually observes
// the latest one, and the writer never blocks.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
	subs  map[chan T]struct{}
}

func NewCell[T any]() *Cell[T] {
	return &Cell[T]{subs: make(map[chan T]struct{})}
}

// Get returns the current value and whether one has been set.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.set
}

// Set replaces the value and notifies all subscribers.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.set = true
	subs := make([]chan T, 0, len(c.subs))
	for ch := range c.subs {
		subs = append(subs, ch)
	}
	c.mu.Unlock()

	for _, ch := range subs {
		// Drain a stale pending value so the buffer always holds the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Subscribe returns a channel receiving every value set after (and, if one is
// already set, the value current at) subscription time. The subscription ends
// when ctx is done.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	c.mu.Lock()
	if c.set {
		ch <- c.value
	}
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, ch)
		c.mu.Unlock()
	}()

	return ch
}
