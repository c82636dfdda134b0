// Package widgets holds what the widget state machines share: the
// environment they run in and the DOM attribute vocabulary they emit.
package widgets

import (
	"sort"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
)

// Attribute names shared by the widgets.
const (
	AttrState           = "data-state"
	AttrActive          = "data-active"
	AttrDisabled        = "data-disabled"
	AttrReadonly        = "data-readonly"
	AttrNumber          = "data-number"
	AttrPercentSelected = "data-percent-selected"
	AttrExpanded        = "aria-expanded"
	AttrControls        = "aria-controls"
	AttrSelected        = "aria-selected"
	AttrPressed         = "aria-pressed"
	AttrLabelledBy      = "aria-labelledby"
)

// data-state values.
const (
	StateOpen     = "open"
	StateClosed   = "closed"
	StateActive   = "active"
	StateInactive = "inactive"
	StateOn       = "on"
	StateOff      = "off"
)

// Env is what a widget needs from its host: the document it renders into,
// the loop that schedules its deferred work and the owner whose disposal
// tears it down.
type Env struct {
	Doc   *dom.Document
	Loop  *loop.Loop
	Owner *loop.Owner
	Log   *logger.Logger
}

// Logger returns the env logger tagged with component.
func (e Env) Logger(component string) *logger.Logger {
	return e.Log.Component(component)
}

// NewID returns a document-unique id with a readable prefix.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Attrs is a set of attributes to write on a node. Boolean data flags are
// present with an empty value when on and absent when off.
type Attrs map[string]string

// Flag sets key to "" when on and deletes it otherwise.
func (a Attrs) Flag(key string, on bool) Attrs {
	if on {
		a[key] = ""
	} else {
		delete(a, key)
	}
	return a
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bool renders b for aria attributes.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// OpenState returns the data-state value for an open/closed widget.
func OpenState(open bool) string {
	if open {
		return StateOpen
	}
	return StateClosed
}

// Apply writes attrs on n. Names listed in managed that attrs does not
// carry are removed, so flags that turned off disappear.
func Apply(n *html.Node, attrs Attrs, managed ...string) {
	for _, key := range managed {
		if _, ok := attrs[key]; !ok {
			dom.RemoveAttr(n, key)
		}
	}
	dom.SetAttrs(n, attrs)
}
