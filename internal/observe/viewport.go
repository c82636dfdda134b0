package observe

import (
	"math"
	"time"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
)

// ViewportEntry describes how much of a node is inside the viewport.
type ViewportEntry struct {
	Target         *dom.Node
	Rect           geometry.Rect
	IsIntersecting bool
	Ratio          float64
}

// ViewportCallback receives entries for one observed node.
type ViewportCallback func(ViewportEntry)

// ViewportOptions tunes a single observation.
type ViewportOptions struct {
	// Threshold is the visible ratio at which a node counts as
	// intersecting. Zero means any overlap.
	Threshold float64
	// RootMargin grows (or, when negative, shrinks) the viewport on every
	// side.
	RootMargin float64
}

type viewportSub struct {
	fn      ViewportCallback
	opts    ViewportOptions
	primed  bool
	last    bool
	removed bool
}

type viewportManagerKey struct{}

// ViewportManager reports viewport entry and exit for one owner.
type ViewportManager struct {
	doc   *dom.Document
	lp    *loop.Loop
	log   *logger.Logger
	subs  map[*dom.Node][]*viewportSub
	order []*dom.Node

	frame     loop.FrameID
	scheduled bool
	closed    bool
}

// ViewportManagerFor returns the owner's manager, creating it on first use.
func ViewportManagerFor(owner *loop.Owner, doc *dom.Document, lp *loop.Loop, log *logger.Logger) *ViewportManager {
	if v, ok := owner.Value(viewportManagerKey{}); ok {
		return v.(*ViewportManager)
	}
	m := &ViewportManager{
		doc:  doc,
		lp:   lp,
		log:  log.Component("viewport-observer"),
		subs: make(map[*dom.Node][]*viewportSub),
	}
	owner.SetValue(viewportManagerKey{}, m)
	owner.OnCleanup(m.Disconnect)
	return m
}

// Observe registers cb for n. The callback fires on the next frame with the
// current state and again whenever n crosses its threshold.
func (m *ViewportManager) Observe(n *dom.Node, cb ViewportCallback, opts ...ViewportOptions) func() {
	if m.closed {
		return func() {}
	}
	sub := &viewportSub{fn: cb}
	if len(opts) > 0 {
		sub.opts = opts[0]
	}
	if _, ok := m.subs[n]; !ok {
		m.order = append(m.order, n)
	}
	m.subs[n] = append(m.subs[n], sub)
	m.schedule()

	return func() {
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
			m.Unobserve(n)
		}
	}
}

// Unobserve removes every callback for n.
func (m *ViewportManager) Unobserve(n *dom.Node) {
	for _, s := range m.subs[n] {
		s.removed = true
	}
	delete(m.subs, n)
	for i, o := range m.order {
		if o == n {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
}

// Disconnect stops all observation.
func (m *ViewportManager) Disconnect() {
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
	m.log.Debug("disconnected")
}

func (m *ViewportManager) schedule() {
	if m.scheduled || m.closed || len(m.order) == 0 {
		return
	}
	m.scheduled = true
	m.frame = m.lp.RequestAnimationFrame(m.tick)
}

func (m *ViewportManager) tick(time.Time) {
	m.scheduled = false
	if m.closed {
		return
	}

	for _, n := range append([]*dom.Node(nil), m.order...) {
		r, ok := m.doc.Rect(n)
		if !ok {
			continue
		}
		for _, s := range append([]*viewportSub(nil), m.subs[n]...) {
			if s.removed {
				continue
			}
			entry := m.entry(n, r, s.opts)
			if s.primed && s.last == entry.IsIntersecting {
				continue
			}
			s.primed = true
			s.last = entry.IsIntersecting
			s.fn(entry)
		}
	}
	m.schedule()
}

func (m *ViewportManager) entry(n *dom.Node, r geometry.Rect, opts ViewportOptions) ViewportEntry {
	vp := m.doc.Viewport()
	root := geometry.Rect{
		X:      vp.X - opts.RootMargin,
		Y:      vp.Y - opts.RootMargin,
		Width:  vp.Width + 2*opts.RootMargin,
		Height: vp.Height + 2*opts.RootMargin,
	}

	ratio := intersectionRatio(r, root)
	intersecting := !geometry.FullyOutside(r, root)
	if opts.Threshold > 0 {
		intersecting = ratio >= opts.Threshold
	}
	return ViewportEntry{Target: n, Rect: r, IsIntersecting: intersecting, Ratio: ratio}
}

func intersectionRatio(r, root geometry.Rect) float64 {
	area := r.Width * r.Height
	if area <= 0 {
		return 0
	}
	w := math.Min(r.Right(), root.Right()) - math.Max(r.X, root.X)
	h := math.Min(r.Bottom(), root.Bottom()) - math.Max(r.Y, root.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return (w * h) / area
}
