package dom

import (
	"math"

	"golang.org/x/net/html"
)

// SetScroll records the scroll state of a container without notifying.
func (d *Document) SetScroll(n *html.Node, s Scroll) {
	d.scroll[n] = s
}

// ScrollState returns the recorded scroll state of n.
func (d *Document) ScrollState(n *html.Node) Scroll {
	return d.scroll[n]
}

// ScrollTo moves the container to top and dispatches a scroll event on it.
func (d *Document) ScrollTo(n *html.Node, top float64) {
	s := d.scroll[n]
	s.Top = clampScroll(top, s)
	d.scroll[n] = s
	d.Dispatch(n, &Event{Type: EventScroll})
}

// ScrollToTop scrolls n to its start.
func (d *Document) ScrollToTop(n *html.Node) {
	d.ScrollTo(n, 0)
}

// ScrollToBottom scrolls n to its end.
func (d *Document) ScrollToBottom(n *html.Node) {
	s := d.scroll[n]
	d.ScrollTo(n, s.Height-s.ClientHeight)
}

// IsScrolledToBottom reports whether n shows its last pixel, allowing one
// pixel of rounding.
func (d *Document) IsScrolledToBottom(n *html.Node) bool {
	s := d.scroll[n]
	return math.Abs(s.Height-s.ClientHeight-s.Top) <= 1
}

func clampScroll(top float64, s Scroll) float64 {
	limit := math.Max(0, s.Height-s.ClientHeight)
	return math.Max(0, math.Min(top, limit))
}
