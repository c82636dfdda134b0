// Package anchor keeps a floating node positioned next to a reference node
// as either one moves, resizes or scrolls.
package anchor

import (
	"strconv"
	"time"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
	"github.com/alexisbeaulieu97/primitives/internal/observe"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const component = "anchor"

// Options configures a binding.
type Options struct {
	Placement geometry.Placement
	Strategy  geometry.Strategy
	Offset    *geometry.Offset
	Flip      *geometry.Flip
	Shift     *geometry.Shift
	// Middleware runs after shift and before the hide checks.
	Middleware []geometry.Middleware
	// Arrow is positioned along the shared edge when set.
	Arrow        *dom.Node
	ArrowPadding float64
	// Boundary defaults to the document viewport.
	Boundary *geometry.Rect
	// AnimationFrame polls the reference box every frame, for movement
	// that neither resize nor scroll observation reports.
	AnimationFrame bool
	// OnUpdate is called after every applied recompute.
	OnUpdate func(geometry.Position)
}

// Binder creates bindings that share a document, loop and owner.
type Binder struct {
	doc   *dom.Document
	lp    *loop.Loop
	owner *loop.Owner
	log   *logger.Logger
}

// NewBinder returns a Binder. Bindings it creates are closed when owner is
// disposed.
func NewBinder(doc *dom.Document, lp *loop.Loop, owner *loop.Owner, log *logger.Logger) *Binder {
	return &Binder{doc: doc, lp: lp, owner: owner, log: log.Component(component)}
}

// BindSelector resolves selector against the document and binds it.
func (b *Binder) BindSelector(selector string, floating *dom.Node, opts Options) (*Binding, error) {
	ref, err := dom.Query(b.doc.Root, selector)
	if err != nil {
		return nil, primerrors.NewAssertionError(component, "invalid reference selector "+strconv.Quote(selector)+": "+err.Error(), "pass an #id or an XPath expression")
	}
	if ref == nil {
		return nil, primerrors.NewAssertionError(component, "reference selector "+strconv.Quote(selector)+" matched nothing", "make sure the reference is rendered before the floating element binds")
	}
	return b.Bind(ref, floating, opts)
}

// MustBind is Bind that panics on misuse.
func (b *Binder) MustBind(reference, floating *dom.Node, opts Options) *Binding {
	bd, err := b.Bind(reference, floating, opts)
	if err != nil {
		panic(err)
	}
	return bd
}

// Bind starts positioning floating next to reference.
func (b *Binder) Bind(reference, floating *dom.Node, opts Options) (*Binding, error) {
	if err := primerrors.Assert(dom.IsElement(reference), component, "reference must be an element", "a text node or nil was passed as the reference"); err != nil {
		return nil, err
	}
	if err := primerrors.Assert(dom.IsElement(floating), component, "floating must be an element", "a text node or nil was passed as the floating element"); err != nil {
		return nil, err
	}
	if err := primerrors.Assert(reference != floating, component, "reference and floating are the same node", "anchor the floating element to a different element"); err != nil {
		return nil, err
	}

	if opts.Strategy == "" {
		opts.Strategy = geometry.Absolute
	}
	if opts.Placement == "" {
		opts.Placement = geometry.Bottom
	}

	bd := &Binding{
		binder:    b,
		reference: reference,
		floating:  floating,
		opts:      opts,
	}

	// Stale offsets would skew the first measurement.
	dom.SetStyles(floating, map[string]string{
		"position": string(opts.Strategy),
		"top":      "0",
		"left":     "0",
	})

	bd.subscribe()
	bd.deregister = b.owner.OnCleanup(bd.Close)
	bd.Update()
	return bd, nil
}

// Binding is a live reference/floating pair.
type Binding struct {
	binder    *Binder
	reference *dom.Node
	floating  *dom.Node
	opts      Options

	pending  bool
	closed   bool
	last     *geometry.Position
	lastRef  geometry.Rect
	frame    loop.FrameID
	polling  bool
	releases []func()

	// deregister drops Close from the owner when the binding closes first.
	deregister func()
}

func (bd *Binding) subscribe() {
	b := bd.binder
	resize := observe.ResizeManagerFor(b.owner, b.doc, b.lp, b.log)
	onResize := func(observe.ResizeEntry) { bd.Update() }
	bd.releases = append(bd.releases,
		resize.Observe(bd.reference, onResize),
		resize.Observe(bd.floating, onResize),
	)

	seen := make(map[*dom.Node]bool)
	for _, start := range []*dom.Node{bd.reference, bd.floating} {
		for n := start.Parent; n != nil; n = n.Parent {
			if seen[n] {
				continue
			}
			seen[n] = true
			bd.releases = append(bd.releases, b.doc.AddEventListener(n, dom.EventScroll, func(*dom.Event) { bd.Update() }))
		}
	}

	if bd.opts.AnimationFrame {
		bd.polling = true
		bd.lastRef, _ = b.doc.Rect(bd.reference)
		bd.frame = b.lp.RequestAnimationFrame(bd.poll)
	}
}

func (bd *Binding) poll(time.Time) {
	if bd.closed {
		return
	}
	if r, ok := bd.binder.doc.Rect(bd.reference); ok && r != bd.lastRef {
		bd.lastRef = r
		bd.Update()
	}
	bd.frame = bd.binder.lp.RequestAnimationFrame(bd.poll)
}

// Update schedules a recompute. Calls made before it runs are coalesced.
func (bd *Binding) Update() {
	if bd.closed || bd.pending {
		return
	}
	bd.pending = true
	bd.binder.lp.QueueMicrotask(bd.recompute)
}

// Position returns the last applied position, if any.
func (bd *Binding) Position() (geometry.Position, bool) {
	if bd.last == nil {
		return geometry.Position{}, false
	}
	return *bd.last, true
}

// Close stops positioning and releases every observer and listener.
func (bd *Binding) Close() {
	if bd.closed {
		return
	}
	bd.closed = true
	if bd.deregister != nil {
		bd.deregister()
	}
	for _, release := range bd.releases {
		release()
	}
	bd.releases = nil
	if bd.polling {
		bd.binder.lp.CancelAnimationFrame(bd.frame)
	}
}

// Closed reports whether the binding has been closed.
func (bd *Binding) Closed() bool {
	return bd.closed
}

func (bd *Binding) recompute() {
	bd.pending = false
	// A result that arrives after teardown must not touch the detached node.
	if bd.closed {
		return
	}

	doc := bd.binder.doc
	refRect, ok := doc.Rect(bd.reference)
	if !ok {
		bd.binder.log.Debug("reference has no layout yet; skipping")
		return
	}
	floatRect, ok := doc.Rect(bd.floating)
	if !ok {
		bd.binder.log.Debug("floating element has no layout yet; skipping")
		return
	}

	boundary := doc.Viewport()
	if bd.opts.Boundary != nil {
		boundary = *bd.opts.Boundary
	}

	extra := append([]geometry.Middleware(nil), bd.opts.Middleware...)
	var arrowSize geometry.Size
	if bd.opts.Arrow != nil {
		if r, ok := doc.Rect(bd.opts.Arrow); ok {
			arrowSize = r.Size()
		}
		extra = append(extra, geometry.Arrow{Size: arrowSize, Padding: bd.opts.ArrowPadding})
	}

	pos := geometry.ComputePosition(refRect, floatRect.Size(), geometry.Config{
		Placement: bd.opts.Placement,
		Strategy:  bd.opts.Strategy,
		Boundary:  boundary,
		Middleware: geometry.Chain(geometry.ChainOptions{
			Offset: bd.opts.Offset,
			Flip:   bd.opts.Flip,
			Shift:  bd.opts.Shift,
			Extra:  extra,
		}),
	})

	visibility := "visible"
	if pos.Data.Hide != nil && pos.Data.Hide.ReferenceHidden {
		visibility = "hidden"
	}
	dom.SetStyles(bd.floating, map[string]string{
		"position":   string(pos.Strategy),
		"top":        px(pos.Y),
		"left":       px(pos.X),
		"margin":     "0",
		"visibility": visibility,
	})
	if bd.opts.Arrow != nil && pos.Data.Arrow != nil {
		applyArrow(bd.opts.Arrow, *pos.Data.Arrow, arrowSize)
	}

	bd.last = &pos
	if bd.binder.log.DebugEnabled() {
		bd.binder.log.DebugFields("positioned", map[string]any{
			"placement": string(pos.Placement),
			"x":         pos.X,
			"y":         pos.Y,
		})
	}
	if bd.opts.OnUpdate != nil {
		bd.opts.OnUpdate(pos)
	}
}

func applyArrow(arrow *dom.Node, data geometry.ArrowData, size geometry.Size) {
	for _, side := range []string{"top", "right", "bottom", "left"} {
		dom.RemoveStyle(arrow, side)
	}
	styles := map[string]string{}
	if data.X != nil {
		styles["left"] = px(*data.X)
	}
	if data.Y != nil {
		styles["top"] = px(*data.Y)
	}
	half := size.Height / 2
	if !data.StaticSide.Vertical() {
		half = size.Width / 2
	}
	styles[string(data.StaticSide)] = px(-half)
	dom.SetStyles(arrow, styles)
}

func px(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
