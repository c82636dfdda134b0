package loop

import "sync"

// Owner ties resources to a lifetime. Cleanups run when the owner is
// disposed, most recent first.
type Owner struct {
	mu       sync.Mutex
	cleanups []cleanup
	nextID   uint64
	values   map[any]any
	disposed bool
}

type cleanup struct {
	id uint64
	fn func()
}

// NewOwner creates a live owner.
func NewOwner() *Owner {
	return &Owner{values: make(map[any]any)}
}

// OnCleanup registers fn to run on Dispose and returns a function that
// deregisters it without running it. Registering on a disposed owner runs
// fn immediately.
func (o *Owner) OnCleanup(fn func()) (remove func()) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		fn()
		return func() {}
	}
	o.nextID++
	id := o.nextID
	o.cleanups = append(o.cleanups, cleanup{id: id, fn: fn})
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, c := range o.cleanups {
			if c.id == id {
				o.cleanups = append(o.cleanups[:i], o.cleanups[i+1:]...)
				return
			}
		}
	}
}

// Cleanups returns how many cleanups are registered.
func (o *Owner) Cleanups() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.cleanups)
}

// Dispose runs every cleanup once. Later calls do nothing.
func (o *Owner) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	cleanups := o.cleanups
	o.cleanups = nil
	o.values = make(map[any]any)
	o.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i].fn()
	}
}

// Disposed reports whether Dispose has been called.
func (o *Owner) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}

// Value returns a value stored on the owner.
func (o *Owner) Value(key any) (any, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[key]
	return v, ok
}

// SetValue stores a value on the owner for its lifetime.
func (o *Owner) SetValue(key, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.values[key] = v
}
