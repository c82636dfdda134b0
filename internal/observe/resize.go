// Package observe fans size and visibility observation of document nodes
// out to many callbacks. One manager exists per owner; it watches layout
// once per animation frame and stops when the owner is disposed.
package observe

import (
	"errors"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
)

// ErrLoopLimitExceeded is reported when callbacks keep resizing observed
// nodes within one frame. The remaining notifications are delivered on the
// next frame; nothing is lost.
var ErrLoopLimitExceeded = errors.New("ResizeObserver loop completed with undelivered notifications")

// IsBenign reports whether err is the informational loop-limit signal,
// including the wording browsers use for it.
func IsBenign(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrLoopLimitExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "ResizeObserver loop limit exceeded") ||
		strings.Contains(msg, "ResizeObserver loop completed with undelivered notifications")
}

// ResizeEntry describes the new box of an observed node.
type ResizeEntry struct {
	Target *dom.Node
	Rect   geometry.Rect
}

// ResizeCallback receives entries for one observed node.
type ResizeCallback func(ResizeEntry)

type resizeSub struct {
	fn      ResizeCallback
	primed  bool
	removed bool
}

type resizeManagerKey struct{}

// ResizeManager observes node sizes for one owner.
type ResizeManager struct {
	doc  *dom.Document
	lp   *loop.Loop
	log  *logger.Logger
	subs map[*dom.Node][]*resizeSub
	// order keeps delivery deterministic.
	order []*dom.Node
	last  map[*dom.Node]geometry.Rect
	seen  map[*dom.Node]bool

	frame     loop.FrameID
	scheduled bool
	closed    bool
	onError   func(error)
}

// ResizeManagerFor returns the owner's manager, creating it on first use.
// The manager disconnects when the owner is disposed.
func ResizeManagerFor(owner *loop.Owner, doc *dom.Document, lp *loop.Loop, log *logger.Logger) *ResizeManager {
	if v, ok := owner.Value(resizeManagerKey{}); ok {
		return v.(*ResizeManager)
	}
	m := &ResizeManager{
		doc:  doc,
		lp:   lp,
		log:  log.Component("resize-observer"),
		subs: make(map[*dom.Node][]*resizeSub),
		last: make(map[*dom.Node]geometry.Rect),
		seen: make(map[*dom.Node]bool),
	}
	m.onError = m.logError
	owner.SetValue(resizeManagerKey{}, m)
	owner.OnCleanup(m.Disconnect)
	return m
}

// OnError replaces the handler for observation errors.
func (m *ResizeManager) OnError(fn func(error)) {
	m.onError = fn
}

func (m *ResizeManager) logError(err error) {
	if IsBenign(err) {
		m.log.Debug(err.Error())
		return
	}
	m.log.Error(err, "resize observation failed")
}

// Observe registers cb for size changes of n. The callback also receives
// the current size on the next frame. The returned function removes this
// callback only.
func (m *ResizeManager) Observe(n *dom.Node, cb ResizeCallback) func() {
	if m.closed {
		return func() {}
	}
	sub := &resizeSub{fn: cb}
	if _, ok := m.subs[n]; !ok {
		m.order = append(m.order, n)
	}
	m.subs[n] = append(m.subs[n], sub)
	m.schedule()

	return func() { m.remove(n, sub) }
}

// Unobserve removes every callback for n and stops observing it.
func (m *ResizeManager) Unobserve(n *dom.Node) {
	for _, sub := range m.subs[n] {
		sub.removed = true
	}
	m.drop(n)
}

// Observed reports whether n has callbacks.
func (m *ResizeManager) Observed(n *dom.Node) bool {
	return len(m.subs[n]) > 0
}

// Disconnect stops all observation. The manager ignores later calls.
func (m *ResizeManager) Disconnect() {
	if m.closed {
		return
	}
	m.closed = true
	if m.scheduled {
		m.lp.CancelAnimationFrame(m.frame)
		m.scheduled = false
	}
	for n := range m.subs {
		m.Unobserve(n)
	}
}

func (m *ResizeManager) remove(n *dom.Node, sub *resizeSub) {
	if sub.removed {
		return
	}
	sub.removed = true
	list := m.subs[n]
	for i, s := range list {
		if s == sub {
			m.subs[n] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(m.subs[n]) == 0 {
		m.drop(n)
	}
}

func (m *ResizeManager) drop(n *dom.Node) {
	delete(m.subs, n)
	delete(m.last, n)
	delete(m.seen, n)
	for i, o := range m.order {
		if o == n {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *ResizeManager) schedule() {
	if m.scheduled || m.closed || len(m.order) == 0 {
		return
	}
	m.scheduled = true
	m.frame = m.lp.RequestAnimationFrame(m.tick)
}

func (m *ResizeManager) tick(time.Time) {
	m.scheduled = false
	if m.closed {
		return
	}

	m.deliver(m.changed())

	// Changes made by callbacks are left for the next frame.
	if len(m.changed()) > 0 {
		m.onError(ErrLoopLimitExceeded)
	}
	m.schedule()
}

func (m *ResizeManager) changed() []ResizeEntry {
	var out []ResizeEntry
	for _, n := range m.order {
		r, ok := m.doc.Rect(n)
		if !ok {
			continue
		}
		if m.seen[n] && m.last[n] == r {
			continue
		}
		out = append(out, ResizeEntry{Target: n, Rect: r})
	}
	return out
}

func (m *ResizeManager) deliver(entries []ResizeEntry) {
	for _, e := range entries {
		m.last[e.Target] = e.Rect
		m.seen[e.Target] = true
	}
	for _, e := range entries {
		subs := append([]*resizeSub(nil), m.subs[e.Target]...)
		for _, s := range subs {
			if !s.removed {
				s.primed = true
				s.fn(e)
			}
		}
	}

	// Callbacks added to an already observed node still get its current
	// size once.
	for _, n := range append([]*dom.Node(nil), m.order...) {
		r, ok := m.last[n]
		if !ok {
			continue
		}
		for _, s := range append([]*resizeSub(nil), m.subs[n]...) {
			if !s.removed && !s.primed {
				s.primed = true
				s.fn(ResizeEntry{Target: n, Rect: r})
			}
		}
	}
}
