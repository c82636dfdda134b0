// Package toggle implements a two-state press button.
package toggle

import (
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
)

// Options configures a Toggle.
type Options struct {
	Pressed  bool
	Disabled bool
	// OnChange makes the toggle controlled; apply the state with SetPressed.
	OnChange func(bool)
}

// Toggle is a pressed/unpressed button.
type Toggle struct {
	pressed  *state.Controlled[bool]
	disabled bool
}

// New creates a Toggle.
func New(opts Options) *Toggle {
	return &Toggle{pressed: state.NewControlled(opts.Pressed, opts.OnChange), disabled: opts.Disabled}
}

// Pressed reports the authoritative state.
func (t *Toggle) Pressed() bool { return t.pressed.Value() }

// Toggle flips the state.
func (t *Toggle) Toggle() {
	if t.disabled {
		return
	}
	t.pressed.Set(!t.pressed.Value())
}

// SetPressed applies a state supplied by the caller.
func (t *Toggle) SetPressed(v bool) { t.pressed.SyncExternal(v) }

// Subscribe registers fn for state changes.
func (t *Toggle) Subscribe(fn func(bool)) func() { return t.pressed.Subscribe(fn) }

// Attrs returns the button attributes.
func (t *Toggle) Attrs() widgets.Attrs {
	pressed := t.Pressed()
	dataState := widgets.StateOff
	if pressed {
		dataState = widgets.StateOn
	}
	attrs := widgets.Attrs{
		"type":              "button",
		widgets.AttrPressed: widgets.Bool(pressed),
		widgets.AttrState:   dataState,
	}
	if t.disabled {
		attrs["disabled"] = ""
	}
	return attrs.Flag(widgets.AttrDisabled, t.disabled)
}
