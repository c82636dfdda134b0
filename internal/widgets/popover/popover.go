// Package popover composes the portal registry and the anchor binder:
// content is moved to the nearest popover target and kept positioned next
// to its reference.
package popover

import (
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/anchor"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/portal"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
)

// Options configures a Popover.
type Options struct {
	// Target names the portal target. Defaults to portal.Popover.
	Target string
	// Inline leaves the content where it was rendered.
	Inline bool
	Anchor anchor.Options
}

// Popover shows content anchored to a reference.
type Popover struct {
	binder  *anchor.Binder
	portals *portal.Registry
	opts    Options
	mount   *portal.Mount
	binding *anchor.Binding
	log     *logger.Logger
}

// New creates a hidden Popover. It is hidden again when env.Owner is
// disposed.
func New(env widgets.Env, portals *portal.Registry, opts Options) *Popover {
	if opts.Target == "" {
		opts.Target = portal.Popover
	}
	p := &Popover{
		binder:  anchor.NewBinder(env.Doc, env.Loop, env.Owner, env.Log),
		portals: portals,
		opts:    opts,
		log:     env.Logger("popover"),
	}
	env.Owner.OnCleanup(p.Hide)
	return p
}

// Check reports whether content could be shown next to reference: when
// the popover portals, a target must enclose reference.
func (p *Popover) Check(reference *html.Node) error {
	if p.opts.Inline {
		return nil
	}
	_, err := p.portals.Resolve(reference, p.opts.Target)
	return err
}

// Show portals content and starts positioning it against reference.
// Showing an already shown popover does nothing.
func (p *Popover) Show(reference, content *html.Node) error {
	if p.binding != nil {
		return nil
	}
	if !p.opts.Inline {
		m, err := p.portals.MountNearest(reference, p.opts.Target, content)
		if err != nil {
			return err
		}
		p.mount = m
	}

	bd, err := p.binder.Bind(reference, content, p.opts.Anchor)
	if err != nil {
		p.unmount()
		return err
	}
	p.binding = bd
	p.log.Debug("shown")
	return nil
}

// Hide stops positioning and detaches portaled content. The content
// subtree is kept for the next Show.
func (p *Popover) Hide() {
	if p.binding == nil {
		return
	}
	p.binding.Close()
	p.binding = nil
	p.unmount()
	p.log.Debug("hidden")
}

func (p *Popover) unmount() {
	if p.mount != nil {
		p.mount.Unmount()
		p.mount = nil
	}
}

// Shown reports whether the popover is visible.
func (p *Popover) Shown() bool { return p.binding != nil }

// Binding returns the live anchor binding, or nil while hidden.
func (p *Popover) Binding() *anchor.Binding { return p.binding }
