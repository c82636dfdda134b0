// Package dialog implements an open/closed dialog whose element is adopted
// once rendering settles.
package dialog

import (
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const component = "dialog"

// Options configures a Dialog.
type Options struct {
	Open bool
	// OnOpenChange makes the dialog controlled; apply the state with
	// SetOpen.
	OnOpenChange func(bool)
}

// Dialog tracks whether a dialog element is shown.
type Dialog struct {
	env         widgets.Env
	open        *state.Controlled[bool]
	id          string
	el          *html.Node
	trigger     *html.Node
	returnFocus *html.Node
	removes     []func()
	log         *logger.Logger
}

// New creates a Dialog.
func New(env widgets.Env, opts Options) *Dialog {
	d := &Dialog{
		env:  env,
		open: state.NewControlled(opts.Open, opts.OnOpenChange),
		id:   widgets.NewID("dialog"),
		log:  env.Logger(component),
	}
	d.removes = append(d.removes, d.open.Subscribe(d.sync))
	env.Owner.OnCleanup(d.release)
	return d
}

// IsOpen reports whether the dialog is open.
func (d *Dialog) IsOpen() bool { return d.open.Value() }

// Open requests the open state.
func (d *Dialog) Open() {
	if !d.open.Value() {
		d.open.Set(true)
	}
}

// Close requests the closed state.
func (d *Dialog) Close() {
	if d.open.Value() {
		d.open.Set(false)
	}
}

// SetOpen applies a state supplied by the caller.
func (d *Dialog) SetOpen(open bool) {
	if open != d.open.Value() {
		d.open.SyncExternal(open)
	}
}

// Element returns the registered dialog element, or nil before
// registration has settled.
func (d *Dialog) Element() *html.Node { return d.el }

// Register adopts el as the dialog element. Adoption happens on the next
// microtask, after the current render pass.
func (d *Dialog) Register(el *html.Node) error {
	if err := primerrors.Assert(dom.IsElement(el), component, "dialog must be an element", "register the rendered <dialog> element"); err != nil {
		return err
	}
	d.env.Loop.QueueMicrotask(func() {
		if d.env.Owner.Disposed() {
			return
		}
		d.el = el
		d.removes = append(d.removes, d.env.Doc.AddEventListener(el, dom.EventKeyDown, func(ev *dom.Event) {
			if ev.Key == "Escape" {
				ev.PreventDefault()
				d.Close()
			}
		}))
		d.log.Debug("element registered")
		d.sync(d.IsOpen())
	})
	return nil
}

// BindTrigger makes node open the dialog on click.
func (d *Dialog) BindTrigger(node *html.Node) error {
	if err := primerrors.Assert(dom.IsElement(node), component, "trigger must be an element", "bind the rendered trigger button"); err != nil {
		return err
	}
	d.trigger = node
	d.removes = append(d.removes, d.env.Doc.AddEventListener(node, dom.EventClick, func(*dom.Event) { d.Open() }))
	widgets.Apply(node, d.TriggerAttrs())
	return nil
}

// Attrs returns the dialog element attributes.
func (d *Dialog) Attrs() widgets.Attrs {
	open := d.IsOpen()
	return widgets.Attrs{
		"id":              d.id,
		"role":            "dialog",
		"aria-modal":      "true",
		widgets.AttrState: widgets.OpenState(open),
	}.Flag("open", open)
}

// TriggerAttrs returns the trigger attributes.
func (d *Dialog) TriggerAttrs() widgets.Attrs {
	open := d.IsOpen()
	return widgets.Attrs{
		"aria-haspopup":      "dialog",
		widgets.AttrExpanded: widgets.Bool(open),
		widgets.AttrControls: d.id,
		widgets.AttrState:    widgets.OpenState(open),
	}
}

func (d *Dialog) sync(open bool) {
	if d.trigger != nil {
		widgets.Apply(d.trigger, d.TriggerAttrs())
	}
	if d.el == nil {
		return
	}
	wasOpen := dom.HasAttr(d.el, "open")
	widgets.Apply(d.el, d.Attrs(), "open")
	if open == wasOpen {
		return
	}

	if open {
		d.returnFocus = d.env.Doc.ActiveElement()
		if first := dom.FirstFocusable(d.el); first != nil {
			d.env.Doc.Focus(first)
		}
		return
	}
	if d.returnFocus != nil {
		d.env.Doc.Focus(d.returnFocus)
		d.returnFocus = nil
	}
}

func (d *Dialog) release() {
	for _, remove := range d.removes {
		remove()
	}
	d.removes = nil
}
