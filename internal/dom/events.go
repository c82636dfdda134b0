package dom

import (
	"golang.org/x/net/html"
)

// Event types dispatched by the primitives.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventFocus   = "focus"
	EventBlur    = "blur"
	EventInput   = "input"
	EventPaste   = "paste"
	EventScroll  = "scroll"
)

// nonBubbling events are delivered to the target only.
var nonBubbling = map[string]bool{
	EventFocus:  true,
	EventBlur:   true,
	EventScroll: true,
}

// Event is a synthetic DOM event.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node
	// Key is set for keyboard events ("Enter", "Escape", "ArrowLeft", "a").
	Key string
	// Data carries inserted text for input events and clipboard text for
	// paste events.
	Data string

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	id      uint64
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of typ reaching n. The returned
// function removes the listener; calling it twice is harmless.
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) func() {
	d.nextID++
	l := &listener{id: d.nextID, fn: fn}

	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], l)

	return func() {
		if l.removed {
			return
		}
		l.removed = true
		d.dropListener(n, typ, l.id)
	}
}

func (d *Document) dropListener(n *html.Node, typ string, id uint64) {
	byType := d.listeners[n]
	list := byType[typ]
	for i, l := range list {
		if l.id == id {
			byType[typ] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(byType[typ]) == 0 {
		delete(byType, typ)
	}
	if len(byType) == 0 {
		delete(d.listeners, n)
	}
}

// ListenerCount returns how many listeners are attached to n.
func (d *Document) ListenerCount(n *html.Node) int {
	total := 0
	for _, list := range d.listeners[n] {
		total += len(list)
	}
	return total
}

// Dispatch delivers ev to target and then, for bubbling types, to each
// ancestor up to the document root.
func (d *Document) Dispatch(target *html.Node, ev *Event) {
	ev.Target = target
	for n := target; n != nil; n = n.Parent {
		d.deliver(n, ev)
		if ev.stopped || nonBubbling[ev.Type] {
			return
		}
	}
}

func (d *Document) deliver(n *html.Node, ev *Event) {
	list := d.listeners[n][ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*listener, len(list))
	copy(snapshot, list)

	ev.CurrentTarget = n
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(ev)
	}
}

// Click dispatches a click on n.
func (d *Document) Click(n *html.Node) *Event {
	ev := &Event{Type: EventClick}
	d.Dispatch(n, ev)
	return ev
}

// KeyDown dispatches a keydown for key on n.
func (d *Document) KeyDown(n *html.Node, key string) *Event {
	ev := &Event{Type: EventKeyDown, Key: key}
	d.Dispatch(n, ev)
	return ev
}
