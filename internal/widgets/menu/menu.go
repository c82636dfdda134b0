// Package menu implements a dropdown menu: a trigger that toggles portaled,
// anchored content which closes on outside click or Escape.
package menu

import (
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/portal"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/popover"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const component = "menu"

// Options configures a Menu.
type Options struct {
	Open bool
	// OnOpenChange makes the menu controlled; apply the requested state
	// with SetOpen.
	OnOpenChange func(bool)
	Popover      popover.Options
}

// Menu is a trigger plus dismissible content.
type Menu struct {
	env       widgets.Env
	open      *state.Controlled[bool]
	pop       *popover.Popover
	trigger   *html.Node
	content   *html.Node
	triggerID string
	contentID string
	items     []*html.Node
	listening []func()
	showErr   error
	log       *logger.Logger
}

// New creates a Menu. Content is portaled through portals.
func New(env widgets.Env, portals *portal.Registry, opts Options) *Menu {
	m := &Menu{
		env:       env,
		open:      state.NewControlled(opts.Open, opts.OnOpenChange),
		pop:       popover.New(env, portals, opts.Popover),
		triggerID: widgets.NewID("menu-trigger"),
		contentID: widgets.NewID("menu-content"),
		log:       env.Logger(component),
	}
	unsubscribe := m.open.Subscribe(m.sync)
	env.Owner.OnCleanup(func() {
		unsubscribe()
		m.stopListening()
	})
	return m
}

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool { return m.open.Value() }

// Toggle opens a closed menu and closes an open one. Opening fails, and
// leaves the menu closed, when the content cannot be shown.
func (m *Menu) Toggle() error {
	if m.open.Value() {
		m.Close()
		return nil
	}
	return m.Open()
}

// Open requests the open state. See Toggle for failures.
func (m *Menu) Open() error {
	if m.open.Value() {
		return nil
	}
	return m.settle(func() { m.open.Set(true) })
}

// Close requests the closed state.
func (m *Menu) Close() {
	if m.open.Value() {
		m.open.Set(false)
	}
}

// SetOpen applies an open state supplied by the caller. See Toggle for
// failures.
func (m *Menu) SetOpen(open bool) error {
	if open == m.open.Value() {
		return nil
	}
	return m.settle(func() { m.open.SyncExternal(open) })
}

// settle runs change and rolls the open state back when showing the
// content failed, so the attributes never claim an open menu whose content
// is detached.
func (m *Menu) settle(change func()) error {
	m.showErr = nil
	change()
	err := m.showErr
	if err == nil {
		return nil
	}
	m.showErr = nil
	m.open.SyncExternal(false)
	return err
}

// BindTrigger wires the rendered trigger button.
func (m *Menu) BindTrigger(node *html.Node) error {
	if err := primerrors.Assert(dom.IsElement(node), component, "trigger must be an element", "bind the rendered trigger button"); err != nil {
		return err
	}
	m.trigger = node
	if err := m.checkTarget(); err != nil {
		m.trigger = nil
		return err
	}
	remove := m.env.Doc.AddEventListener(node, dom.EventClick, func(*dom.Event) {
		if err := m.Toggle(); err != nil {
			m.log.Error(err, "menu content could not be shown")
		}
	})
	m.env.Owner.OnCleanup(remove)
	m.render()
	m.sync(m.IsOpen())
	return nil
}

// BindContent wires the rendered menu content. Closed content is detached
// until the menu opens.
func (m *Menu) BindContent(node *html.Node) error {
	if err := primerrors.Assert(dom.IsElement(node), component, "content must be an element", "bind the rendered menu content"); err != nil {
		return err
	}
	m.content = node
	if err := m.checkTarget(); err != nil {
		m.content = nil
		return err
	}
	remove := m.env.Doc.AddEventListener(node, dom.EventKeyDown, m.onContentKey)
	m.env.Owner.OnCleanup(remove)
	if !m.IsOpen() && node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
	m.render()
	m.sync(m.IsOpen())
	return nil
}

// BindItem wires a menu item. Clicking it runs onSelect and closes the
// menu.
func (m *Menu) BindItem(node *html.Node, onSelect func()) error {
	if err := primerrors.Assert(dom.IsElement(node), component, "item must be an element", "bind the rendered menu item"); err != nil {
		return err
	}
	m.items = append(m.items, node)
	widgets.Apply(node, widgets.Attrs{"role": "menuitem"})
	remove := m.env.Doc.AddEventListener(node, dom.EventClick, func(*dom.Event) {
		if onSelect != nil {
			onSelect()
		}
		m.Close()
	})
	m.env.Owner.OnCleanup(remove)
	return nil
}

// TriggerAttrs returns the trigger attributes.
func (m *Menu) TriggerAttrs() widgets.Attrs {
	open := m.IsOpen()
	return widgets.Attrs{
		"id":                 m.triggerID,
		"aria-haspopup":      "menu",
		widgets.AttrExpanded: widgets.Bool(open),
		widgets.AttrControls: m.contentID,
		widgets.AttrState:    widgets.OpenState(open),
	}
}

// ContentAttrs returns the content attributes.
func (m *Menu) ContentAttrs() widgets.Attrs {
	return widgets.Attrs{
		"id":                   m.contentID,
		"role":                 "menu",
		"tabindex":             "-1",
		widgets.AttrLabelledBy: m.triggerID,
		widgets.AttrState:      widgets.OpenState(m.IsOpen()),
	}
}

// checkTarget fails once trigger and content are both bound but the
// content has nowhere to be portaled.
func (m *Menu) checkTarget() error {
	if m.trigger == nil || m.content == nil {
		return nil
	}
	return m.pop.Check(m.trigger)
}

func (m *Menu) render() {
	if m.trigger != nil {
		widgets.Apply(m.trigger, m.TriggerAttrs())
	}
	if m.content != nil {
		widgets.Apply(m.content, m.ContentAttrs())
	}
}

func (m *Menu) sync(open bool) {
	m.render()
	if m.trigger == nil || m.content == nil {
		return
	}
	if open == m.pop.Shown() {
		return
	}

	if !open {
		m.stopListening()
		m.pop.Hide()
		if active := m.env.Doc.ActiveElement(); active == nil || dom.Contains(m.content, active) {
			m.env.Doc.Focus(m.trigger)
		}
		m.log.Debug("closed")
		return
	}

	if err := m.pop.Show(m.trigger, m.content); err != nil {
		m.showErr = err
		return
	}
	root := m.env.Doc.Root
	m.listening = append(m.listening,
		m.env.Doc.AddEventListener(root, dom.EventClick, m.onDocumentClick),
		m.env.Doc.AddEventListener(root, dom.EventKeyDown, m.onDocumentKey),
	)
	if first := dom.FirstFocusable(m.content); first != nil {
		m.env.Doc.Focus(first)
	} else {
		m.env.Doc.Focus(m.content)
	}
	m.log.Debug("opened")
}

func (m *Menu) stopListening() {
	for _, remove := range m.listening {
		remove()
	}
	m.listening = nil
}

func (m *Menu) onDocumentClick(ev *dom.Event) {
	if dom.Contains(m.trigger, ev.Target) || dom.Contains(m.content, ev.Target) {
		return
	}
	m.Close()
}

func (m *Menu) onDocumentKey(ev *dom.Event) {
	if ev.Key == "Escape" {
		ev.PreventDefault()
		m.Close()
	}
}

func (m *Menu) onContentKey(ev *dom.Event) {
	if len(m.items) == 0 {
		return
	}
	idx := -1
	for i, item := range m.items {
		if dom.Contains(item, m.env.Doc.ActiveElement()) {
			idx = i
		}
	}
	switch ev.Key {
	case "ArrowDown":
		idx = (idx + 1) % len(m.items)
	case "ArrowUp":
		if idx <= 0 {
			idx = len(m.items)
		}
		idx--
	case "Home":
		idx = 0
	case "End":
		idx = len(m.items) - 1
	default:
		return
	}
	ev.PreventDefault()
	m.env.Doc.Focus(m.items[idx])
}
