// Package accordion implements the accordion state machine: a set of items
// that expand and collapse individually or one at a time.
package accordion

import (
	"fmt"
	"slices"

	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

// Type selects how many items may be expanded at once.
type Type string

const (
	Single   Type = "single"
	Multiple Type = "multiple"
)

// Options configures an Accordion.
type Options struct {
	Type Type
	// Value seeds the expanded items. A single accordion keeps at most the
	// first entry.
	Value []string
	// Collapsible lets a single accordion close its only open item.
	Collapsible bool
	Disabled    bool
	// OnValueChange makes the accordion controlled: toggles report the
	// requested selection and the caller applies it with SetValue.
	OnValueChange func([]string)
}

// Accordion tracks which items are expanded.
type Accordion struct {
	typ         Type
	collapsible bool
	disabled    bool
	value       *state.Controlled[[]string]
	items       map[string]*Item
	order       []string
	log         *logger.Logger
}

// New creates an Accordion. Type is required and cannot change afterwards.
func New(opts Options, log *logger.Logger) (*Accordion, error) {
	if err := primerrors.Assert(opts.Type == Single || opts.Type == Multiple, "accordion",
		fmt.Sprintf("unknown type %q", opts.Type), `set Type to "single" or "multiple"`); err != nil {
		return nil, err
	}
	a := &Accordion{
		typ:         opts.Type,
		collapsible: opts.Collapsible,
		disabled:    opts.Disabled,
		items:       make(map[string]*Item),
		log:         log.Component("accordion"),
	}
	a.value = state.NewControlled(a.normalize(opts.Value), opts.OnValueChange)
	return a, nil
}

// Type returns the selection type.
func (a *Accordion) Type() Type { return a.typ }

// Value returns the expanded item values.
func (a *Accordion) Value() []string {
	return slices.Clone(a.value.Value())
}

// SetValue applies a selection supplied by the caller.
func (a *Accordion) SetValue(v []string) {
	a.value.SyncExternal(a.normalize(v))
}

// Subscribe registers fn for selection changes.
func (a *Accordion) Subscribe(fn func([]string)) func() {
	return a.value.Subscribe(fn)
}

// IsExpanded reports whether value is expanded.
func (a *Accordion) IsExpanded(value string) bool {
	return slices.Contains(a.value.Value(), value)
}

// Toggle expands or collapses value.
func (a *Accordion) Toggle(value string) {
	if a.disabled {
		return
	}
	if item, ok := a.items[value]; ok && item.disabled {
		return
	}

	current := a.value.Value()
	var next []string
	switch a.typ {
	case Single:
		if len(current) > 0 && current[0] == value {
			if !a.collapsible {
				return
			}
			next = []string{}
		} else {
			next = []string{value}
		}
	case Multiple:
		if slices.Contains(current, value) {
			next = slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
		} else {
			next = append(slices.Clone(current), value)
		}
	}

	a.log.DebugFields("toggle", map[string]any{"value": value, "next": next})
	a.value.Set(next)
}

func (a *Accordion) normalize(v []string) []string {
	out := []string{}
	for _, s := range v {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	if a.typ == Single && len(out) > 1 {
		out = out[:1]
	}
	return out
}

// Item registers value and returns its handle. Registering the same value
// again returns the existing item.
func (a *Accordion) Item(value string, disabled bool) *Item {
	if item, ok := a.items[value]; ok {
		item.disabled = disabled
		return item
	}
	item := &Item{
		accordion: a,
		value:     value,
		disabled:  disabled,
		triggerID: widgets.NewID("accordion-trigger"),
		contentID: widgets.NewID("accordion-content"),
	}
	a.items[value] = item
	a.order = append(a.order, value)
	return item
}

// Items returns the registered items in registration order.
func (a *Accordion) Items() []*Item {
	out := make([]*Item, 0, len(a.order))
	for _, v := range a.order {
		out = append(out, a.items[v])
	}
	return out
}

// Attrs returns the root attributes.
func (a *Accordion) Attrs() widgets.Attrs {
	return widgets.Attrs{"data-type": string(a.typ)}.Flag(widgets.AttrDisabled, a.disabled)
}

// Item is one expandable section.
type Item struct {
	accordion *Accordion
	value     string
	disabled  bool
	triggerID string
	contentID string
}

// Value returns the item value.
func (i *Item) Value() string { return i.value }

// Expanded reports whether the item is open.
func (i *Item) Expanded() bool { return i.accordion.IsExpanded(i.value) }

// Disabled reports whether the item or the whole accordion is disabled.
func (i *Item) Disabled() bool { return i.disabled || i.accordion.disabled }

// Toggle toggles the item.
func (i *Item) Toggle() { i.accordion.Toggle(i.value) }

// Attrs returns the item wrapper attributes.
func (i *Item) Attrs() widgets.Attrs {
	return widgets.Attrs{
		widgets.AttrState: widgets.OpenState(i.Expanded()),
	}.Flag(widgets.AttrDisabled, i.Disabled())
}

// TriggerAttrs returns the attributes for the item's trigger button.
func (i *Item) TriggerAttrs() widgets.Attrs {
	expanded := i.Expanded()
	attrs := widgets.Attrs{
		"id":                 i.triggerID,
		widgets.AttrExpanded: widgets.Bool(expanded),
		widgets.AttrControls: i.contentID,
		widgets.AttrState:    widgets.OpenState(expanded),
	}
	// The open item of a non-collapsible single accordion cannot be closed.
	if i.Disabled() || (expanded && i.accordion.typ == Single && !i.accordion.collapsible) {
		attrs["aria-disabled"] = "true"
	}
	return attrs.Flag(widgets.AttrDisabled, i.Disabled())
}

// ContentAttrs returns the attributes for the item's content region.
func (i *Item) ContentAttrs() widgets.Attrs {
	expanded := i.Expanded()
	return widgets.Attrs{
		"id":                   i.contentID,
		"role":                 "region",
		widgets.AttrLabelledBy: i.triggerID,
		widgets.AttrState:      widgets.OpenState(expanded),
	}.Flag("hidden", !expanded).Flag(widgets.AttrDisabled, i.Disabled())
}
