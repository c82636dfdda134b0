// Package loop provides the cooperative scheduler the primitives run on.
//
// Work is queued as microtasks (run at the next Flush) or animation-frame
// callbacks (run at the next Frame). Everything executes on the goroutine
// calling Flush, Frame or Run; other goroutines hand work over with Post.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/primitives/internal/logger"
)

// FrameID identifies a pending animation-frame callback.
type FrameID uint64

type frameCallback struct {
	id FrameID
	fn func(time.Time)
}

// Loop queues microtasks and animation-frame callbacks.
type Loop struct {
	mu     sync.Mutex
	posted []func()
	wake   chan struct{}

	microtasks []func()
	frames     []frameCallback
	cancelled  map[FrameID]bool
	nextFrame  FrameID
	log        *logger.Logger
}

// New creates an idle loop. log may be nil.
func New(log *logger.Logger) *Loop {
	return &Loop{
		wake:      make(chan struct{}, 1),
		cancelled: make(map[FrameID]bool),
		log:       log.Component("loop"),
	}
}

// QueueMicrotask schedules fn to run at the next Flush.
func (l *Loop) QueueMicrotask(fn func()) {
	l.microtasks = append(l.microtasks, fn)
}

// RequestAnimationFrame schedules fn for the next Frame.
func (l *Loop) RequestAnimationFrame(fn func(time.Time)) FrameID {
	l.nextFrame++
	l.frames = append(l.frames, frameCallback{id: l.nextFrame, fn: fn})
	return l.nextFrame
}

// CancelAnimationFrame drops a pending frame callback.
func (l *Loop) CancelAnimationFrame(id FrameID) {
	for _, f := range l.frames {
		if f.id == id {
			l.cancelled[id] = true
			return
		}
	}
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (l *Loop) PendingFrames() int {
	n := 0
	for _, f := range l.frames {
		if !l.cancelled[f.id] {
			n++
		}
	}
	return n
}

// Post hands fn to the loop from any goroutine. It runs at the next Flush.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Flush runs posted work and then microtasks until none remain, including
// microtasks queued while flushing.
func (l *Loop) Flush() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	for len(l.microtasks) > 0 {
		task := l.microtasks[0]
		l.microtasks = l.microtasks[1:]
		task()
	}
}

// Frame runs every frame callback requested before the call, then
// flushes. Callbacks requested during the frame wait for the next one.
func (l *Loop) Frame(now time.Time) {
	l.Flush()

	due := l.frames
	l.frames = nil
	for _, f := range due {
		if l.cancelled[f.id] {
			delete(l.cancelled, f.id)
			continue
		}
		f.fn(now)
	}
	l.Flush()
}

// Run drives frames every interval until ctx is done and then returns
// ctx.Err(). Posted work is flushed as soon as it arrives.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("loop stopped")
			return ctx.Err()
		case now := <-ticker.C:
			l.Frame(now)
		case <-l.wake:
			l.Flush()
		}
	}
}
