package dom

import (
	"golang.org/x/net/html"
)

// ActiveElement returns the focused node, or nil.
func (d *Document) ActiveElement() *html.Node {
	return d.active
}

// Focus moves focus to n, dispatching blur on the previous element and
// focus on n. Focusing the active element again does nothing.
func (d *Document) Focus(n *html.Node) {
	if n == d.active {
		return
	}
	prev := d.active
	d.active = n
	if prev != nil {
		d.Dispatch(prev, &Event{Type: EventBlur})
	}
	if n != nil {
		d.Dispatch(n, &Event{Type: EventFocus})
	}
}

// Blur clears focus if n holds it.
func (d *Document) Blur(n *html.Node) {
	if d.active == n && n != nil {
		d.Focus(nil)
	}
}

// IsFocusable reports whether n can receive keyboard focus.
func IsFocusable(n *html.Node) bool {
	if !IsElement(n) || HasAttr(n, "disabled") {
		return false
	}
	if tabindex, ok := Attr(n, "tabindex"); ok {
		return tabindex != "-1"
	}
	switch Tag(n) {
	case "button", "select", "textarea", "summary":
		return true
	case "a":
		return HasAttr(n, "href")
	case "input":
		typ, _ := Attr(n, "type")
		return typ != "hidden"
	}
	return false
}

// FirstFocusable returns the first focusable descendant of root in
// document order, excluding root itself.
func FirstFocusable(root *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsFocusable(c) {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return found
}
