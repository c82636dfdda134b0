// Package tabs implements the tabs state machine: one active tab, its
// panel association and keyboard activation.
package tabs

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

// ActivationMode decides whether focusing a tab selects it.
type ActivationMode string

const (
	// Automatic selects a tab as soon as it receives focus.
	Automatic ActivationMode = "automatic"
	// Manual selects on click, Enter or Space only.
	Manual ActivationMode = "manual"
)

// Options configures Tabs.
type Options struct {
	// ActiveTab selects a tab up front. When empty, the first enabled tab
	// registered becomes active.
	ActiveTab      string
	ActivationMode ActivationMode
	// OnChange receives the new and previous values. prev is "" when no
	// tab was active.
	OnChange func(next, prev string)
}

// Tabs tracks the active tab.
type Tabs struct {
	env      widgets.Env
	mode     ActivationMode
	active   *state.Cell[string]
	latched  bool
	tabs     []*Tab
	byValue  map[string]*Tab
	onChange func(next, prev string)
	log      *logger.Logger
}

// New creates Tabs bound to env.
func New(env widgets.Env, opts Options) (*Tabs, error) {
	mode := opts.ActivationMode
	if mode == "" {
		mode = Automatic
	}
	if err := primerrors.Assert(mode == Automatic || mode == Manual, "tabs",
		fmt.Sprintf("unknown activation mode %q", mode), `use "automatic" or "manual"`); err != nil {
		return nil, err
	}
	return &Tabs{
		env:      env,
		mode:     mode,
		active:   state.NewCell(opts.ActiveTab),
		latched:  opts.ActiveTab != "",
		byValue:  make(map[string]*Tab),
		onChange: opts.OnChange,
		log:      env.Logger("tabs"),
	}, nil
}

// Active returns the active value, or "" before any tab is selected.
func (t *Tabs) Active() string { return t.active.Get() }

// Mode returns the activation mode.
func (t *Tabs) Mode() ActivationMode { return t.mode }

// Subscribe registers fn for active tab changes.
func (t *Tabs) Subscribe(fn func(string)) func() { return t.active.Subscribe(fn) }

// SetActiveTab applies an active value supplied by the caller without
// reporting it back through OnChange.
func (t *Tabs) SetActiveTab(value string) {
	t.latched = true
	t.active.Set(value)
}

// HandleChange makes value the active tab. Selecting the active tab again
// does nothing.
func (t *Tabs) HandleChange(value string) {
	prev := t.active.Get()
	if value == prev {
		return
	}
	if tab, ok := t.byValue[value]; ok && tab.disabled {
		return
	}
	t.active.Set(value)
	t.log.DebugFields("tab changed", map[string]any{"next": value, "prev": prev})
	if t.onChange != nil {
		t.onChange(value, prev)
	}
}

// Tab registers a tab. The first enabled tab registered becomes active
// when no active tab was given; later registrations never claim that slot.
func (t *Tabs) Tab(value string, disabled bool) (*Tab, error) {
	if err := primerrors.Assert(value != "", "tabs", "tab value is empty", "give every tab a non-empty value"); err != nil {
		return nil, err
	}
	if tab, ok := t.byValue[value]; ok {
		tab.disabled = disabled
		return tab, nil
	}

	tab := &Tab{
		tabs:     t,
		value:    value,
		disabled: disabled,
		tabID:    widgets.NewID("tab"),
		panelID:  widgets.NewID("tabpanel"),
	}
	t.tabs = append(t.tabs, tab)
	t.byValue[value] = tab

	if !t.latched && !disabled {
		t.latched = true
		t.active.Set(value)
	}
	return tab, nil
}

// Tabs returns the registered tabs in order.
func (t *Tabs) Tabs() []*Tab {
	return append([]*Tab(nil), t.tabs...)
}

// ListAttrs returns the tablist attributes.
func (t *Tabs) ListAttrs() widgets.Attrs {
	return widgets.Attrs{"role": "tablist", "data-activation": string(t.mode)}
}

func (t *Tabs) focusable() []*Tab {
	var out []*Tab
	for _, tab := range t.tabs {
		if !tab.disabled && tab.node != nil {
			out = append(out, tab)
		}
	}
	return out
}

// move focuses the tab that key leads to from current. Arrows wrap; Home
// and End jump to the ends.
func (t *Tabs) move(current *Tab, key string) bool {
	tabs := t.focusable()
	if len(tabs) == 0 {
		return false
	}
	idx := 0
	for i, tab := range tabs {
		if tab == current {
			idx = i
		}
	}
	switch key {
	case "ArrowRight", "ArrowDown":
		idx = (idx + 1) % len(tabs)
	case "ArrowLeft", "ArrowUp":
		idx = (idx - 1 + len(tabs)) % len(tabs)
	case "Home":
		idx = 0
	case "End":
		idx = len(tabs) - 1
	default:
		return false
	}
	t.env.Doc.Focus(tabs[idx].node)
	return true
}

// Tab is one tab and its panel.
type Tab struct {
	tabs     *Tabs
	value    string
	disabled bool
	tabID    string
	panelID  string
	node     *html.Node
}

// Value returns the tab value.
func (tab *Tab) Value() string { return tab.value }

// IsActive reports whether this tab is selected.
func (tab *Tab) IsActive() bool { return tab.tabs.Active() == tab.value }

// Select makes this tab active.
func (tab *Tab) Select() { tab.tabs.HandleChange(tab.value) }

// Bind attaches click, focus and keyboard handling to the rendered tab.
// Listeners are removed when the returned function runs or the owner is
// disposed.
func (tab *Tab) Bind(node *html.Node) (func(), error) {
	if err := primerrors.Assert(dom.IsElement(node), "tabs", "tab node must be an element", "bind the rendered tab button"); err != nil {
		return nil, err
	}
	doc := tab.tabs.env.Doc
	tab.node = node
	widgets.Apply(node, tab.Attrs(), widgets.AttrActive, widgets.AttrDisabled)

	removes := []func(){
		doc.AddEventListener(node, dom.EventClick, func(*dom.Event) { tab.Select() }),
		doc.AddEventListener(node, dom.EventFocus, func(*dom.Event) {
			if tab.tabs.mode == Automatic {
				tab.Select()
			}
		}),
		doc.AddEventListener(node, dom.EventKeyDown, func(ev *dom.Event) {
			switch ev.Key {
			case "Enter", " ":
				ev.PreventDefault()
				tab.Select()
			default:
				if tab.tabs.move(tab, ev.Key) {
					ev.PreventDefault()
				}
			}
		}),
	}
	unsubscribe := tab.tabs.Subscribe(func(string) {
		widgets.Apply(node, tab.Attrs(), widgets.AttrActive, widgets.AttrDisabled)
	})

	done := false
	var deregister func()
	release := func() {
		if done {
			return
		}
		done = true
		if deregister != nil {
			deregister()
		}
		unsubscribe()
		for _, remove := range removes {
			remove()
		}
		if tab.node == node {
			tab.node = nil
		}
	}
	if owner := tab.tabs.env.Owner; owner != nil {
		deregister = owner.OnCleanup(release)
	}
	return release, nil
}

// Attrs returns the tab button attributes.
func (tab *Tab) Attrs() widgets.Attrs {
	active := tab.IsActive()
	dataState := widgets.StateInactive
	if active {
		dataState = widgets.StateActive
	}
	tabindex := "-1"
	if active || (tab.tabs.Active() == "" && tab.isFirstEnabled()) {
		tabindex = "0"
	}
	return widgets.Attrs{
		"role":               "tab",
		"id":                 tab.tabID,
		"tabindex":           tabindex,
		widgets.AttrSelected: widgets.Bool(active),
		widgets.AttrControls: tab.panelID,
		widgets.AttrState:    dataState,
	}.Flag(widgets.AttrActive, active).Flag(widgets.AttrDisabled, tab.disabled)
}

// PanelAttrs returns the attributes of the panel this tab controls.
func (tab *Tab) PanelAttrs() widgets.Attrs {
	active := tab.IsActive()
	dataState := widgets.StateInactive
	if active {
		dataState = widgets.StateActive
	}
	return widgets.Attrs{
		"role":                 "tabpanel",
		"id":                   tab.panelID,
		"tabindex":             "0",
		widgets.AttrLabelledBy: tab.tabID,
		widgets.AttrState:      dataState,
	}.Flag("hidden", !active)
}

func (tab *Tab) isFirstEnabled() bool {
	for _, other := range tab.tabs.tabs {
		if !other.disabled {
			return other == tab
		}
	}
	return false
}
