// Package state holds the reactive cells widgets keep their state in.
//
// A Cell notifies subscribers synchronously on every Set. Renderers
// subscribe, then re-read getters, instead of relying on implicit
// dependency tracking.
package state

import (
	"sync"
	"sync/atomic"
)

type subscription[T any] struct {
	id     uint64
	fn     func(T)
	active atomic.Bool // read during delivery without the lock
}

// Cell is a value with change notification.
type Cell[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   []*subscription[T]
	nextID uint64
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies subscribers in registration order.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	active := make([]*subscription[T], 0, len(c.subs))
	for _, s := range c.subs {
		if s.active.Load() {
			active = append(active, s)
		}
	}
	c.subs = active
	c.mu.Unlock()

	for _, s := range active {
		if s.active.Load() {
			s.fn(v)
		}
	}
}

// Update applies fn to the current value and stores the result.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.Get()))
}

// Subscribe registers fn for future changes. The returned function stops
// delivery; calling it more than once is harmless.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	c.nextID++
	s := &subscription[T]{id: c.nextID, fn: fn}
	s.active.Store(true)
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	return func() { s.active.Store(false) }
}
