// Package togglegroup implements groups of press-state toggles, either
// with one pressed item at most or with independent items.
package togglegroup

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
)

// Set is a set of pressed values.
type Set map[string]struct{}

// NewSet returns a Set holding values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Normalize turns a scalar, a slice or a set into a Set. nil and unknown
// types produce an empty set; other scalars use their printed form.
func Normalize(v any) Set {
	switch x := v.(type) {
	case nil:
		return Set{}
	case Set:
		return x.Clone()
	case map[string]struct{}:
		return Set(x).Clone()
	case map[string]bool:
		s := Set{}
		for k, on := range x {
			if on {
				s[k] = struct{}{}
			}
		}
		return s
	case []string:
		return NewSet(x...)
	case []any:
		s := Set{}
		for _, item := range x {
			for k := range Normalize(item) {
				s[k] = struct{}{}
			}
		}
		return s
	case string:
		return NewSet(x)
	case fmt.Stringer:
		return NewSet(x.String())
	case int, int64, float64, bool:
		return NewSet(fmt.Sprint(x))
	}
	return Set{}
}

func itemAttrs(pressed, disabled bool) widgets.Attrs {
	dataState := widgets.StateOff
	if pressed {
		dataState = widgets.StateOn
	}
	return widgets.Attrs{
		widgets.AttrPressed: widgets.Bool(pressed),
		widgets.AttrState:   dataState,
	}.Flag(widgets.AttrDisabled, disabled)
}

// SingleOptions configures a Single group.
type SingleOptions struct {
	Value    string
	Disabled bool
	// OnValueChange makes the group controlled. "" means nothing pressed.
	OnValueChange func(string)
}

// Single allows at most one pressed value. "" means none.
type Single struct {
	value    *state.Controlled[string]
	disabled bool
	log      *logger.Logger
}

// NewSingle creates a Single group.
func NewSingle(opts SingleOptions, log *logger.Logger) *Single {
	return &Single{
		value:    state.NewControlled(opts.Value, opts.OnValueChange),
		disabled: opts.Disabled,
		log:      log.Component("togglegroup"),
	}
}

// Value returns the pressed value, or "".
func (g *Single) Value() string { return g.value.Value() }

// IsPressed reports whether v is pressed.
func (g *Single) IsPressed(v string) bool { return v != "" && g.value.Value() == v }

// Toggle presses v, or clears it when it is already pressed.
func (g *Single) Toggle(v string) {
	if g.disabled {
		return
	}
	next := v
	if g.value.Value() == v {
		next = ""
	}
	g.log.DebugFields("toggle", map[string]any{"value": v, "next": next})
	g.value.Set(next)
}

// SetValue applies a value supplied by the caller.
func (g *Single) SetValue(v string) { g.value.SyncExternal(v) }

// Subscribe registers fn for value changes.
func (g *Single) Subscribe(fn func(string)) func() { return g.value.Subscribe(fn) }

// Attrs returns the group attributes.
func (g *Single) Attrs() widgets.Attrs {
	return widgets.Attrs{"role": "group", "data-type": "single"}.Flag(widgets.AttrDisabled, g.disabled)
}

// ItemAttrs returns the attributes for the item v.
func (g *Single) ItemAttrs(v string) widgets.Attrs {
	return itemAttrs(g.IsPressed(v), g.disabled)
}

// MultiOptions configures a Multi group.
type MultiOptions struct {
	// Value may be a string, []string, Set, map[string]bool or []any.
	Value    any
	Disabled bool
	// OnValueChange makes the group controlled.
	OnValueChange func(Set)
}

// Multi toggles each value independently.
type Multi struct {
	value    *state.Controlled[Set]
	disabled bool
	log      *logger.Logger
}

// NewMulti creates a Multi group.
func NewMulti(opts MultiOptions, log *logger.Logger) *Multi {
	return &Multi{
		value:    state.NewControlled(Normalize(opts.Value), opts.OnValueChange),
		disabled: opts.Disabled,
		log:      log.Component("togglegroup"),
	}
}

// Value returns a copy of the pressed set.
func (g *Multi) Value() Set { return g.value.Value().Clone() }

// IsPressed reports whether v is pressed.
func (g *Multi) IsPressed(v string) bool { return g.value.Value().Has(v) }

// Toggle flips membership of v and reports the resulting set.
func (g *Multi) Toggle(v string) {
	if g.disabled {
		return
	}
	next := g.value.Value().Clone()
	if next.Has(v) {
		delete(next, v)
	} else {
		next[v] = struct{}{}
	}
	g.log.DebugFields("toggle", map[string]any{"value": v, "next": next.Values()})
	g.value.Set(next)
}

// SetValue applies a value supplied by the caller. It accepts the same
// shapes as MultiOptions.Value.
func (g *Multi) SetValue(v any) { g.value.SyncExternal(Normalize(v)) }

// Subscribe registers fn for value changes.
func (g *Multi) Subscribe(fn func(Set)) func() { return g.value.Subscribe(fn) }

// Attrs returns the group attributes.
func (g *Multi) Attrs() widgets.Attrs {
	return widgets.Attrs{"role": "group", "data-type": "multiple"}.Flag(widgets.AttrDisabled, g.disabled)
}

// ItemAttrs returns the attributes for the item v.
func (g *Multi) ItemAttrs(v string) widgets.Attrs {
	return itemAttrs(g.IsPressed(v), g.disabled)
}
