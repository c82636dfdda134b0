// Package dom models the small part of a browser document the primitives
// need: an html.Node tree plus the host-owned state that a browser keeps
// beside it (layout boxes, scroll offsets, listeners, focus).
//
// A Document is not safe for concurrent use. All calls must come from the
// goroutine that drives the owning loop.
package dom

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alexisbeaulieu97/primitives/internal/geometry"
)

// Node is the tree node type used throughout the primitives.
type Node = html.Node

// Scroll describes the scroll position and extent of a scroll container.
type Scroll struct {
	Top, Left    float64
	Height       float64
	ClientHeight float64
}

// Document wraps a parsed tree.
type Document struct {
	Root *html.Node

	rects     map[*html.Node]geometry.Rect
	scroll    map[*html.Node]Scroll
	viewport  geometry.Rect
	listeners map[*html.Node]map[string][]*listener
	active    *html.Node
	nextID    uint64
}

// NewDocument wraps an existing tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		Root:      root,
		rects:     make(map[*html.Node]geometry.Rect),
		scroll:    make(map[*html.Node]Scroll),
		listeners: make(map[*html.Node]map[string][]*listener),
	}
}

// Parse builds a Document from HTML source.
func Parse(src string) (*Document, error) {
	root, err := htmlquery.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

// HTMLElement returns the <html> element, or nil for fragments.
func (d *Document) HTMLElement() *html.Node {
	for c := d.Root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	return htmlquery.FindOne(d.Root, "//body")
}

// SetRect records the laid-out box of n.
func (d *Document) SetRect(n *html.Node, r geometry.Rect) {
	d.rects[n] = r
}

// Rect returns the laid-out box of n.
func (d *Document) Rect(n *html.Node) (geometry.Rect, bool) {
	r, ok := d.rects[n]
	return r, ok
}

// SetViewport records the visible area of the document.
func (d *Document) SetViewport(r geometry.Rect) {
	d.viewport = r
}

// Viewport returns the visible area of the document.
func (d *Document) Viewport() geometry.Rect {
	return d.viewport
}

// CreateElement returns a detached element with the given attributes.
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Tag returns the lowercase tag name of an element, or "".
func Tag(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Contains reports whether descendant is ancestor or lies inside it.
func Contains(ancestor, descendant *html.Node) bool {
	for n := descendant; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Closest returns the nearest inclusive ancestor matching pred.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// Render serializes n including itself.
func Render(n *html.Node) string {
	return htmlquery.OutputHTML(n, true)
}
