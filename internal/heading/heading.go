// Package heading infers heading levels from the sectioning structure
// around a node, so headings nest without authors tracking h1 to h6.
package heading

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const (
	minLevel = 1
	maxLevel = 6
)

var boundaries = map[atom.Atom]bool{
	atom.Section: true,
	atom.Article: true,
	atom.Aside:   true,
	atom.Header:  true,
	atom.Footer:  true,
	atom.Main:    true,
	atom.Nav:     true,
}

var headings = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

// IsBoundary reports whether n is a sectioning element.
func IsBoundary(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && boundaries[n.DataAtom]
}

// LevelOfHeading returns the level of an h1-h6 element.
func LevelOfHeading(n *html.Node) (int, bool) {
	if n == nil || n.Type != html.ElementNode {
		return 0, false
	}
	level, ok := headings[n.DataAtom]
	return level, ok
}

// Tag returns the element name for level, clamped to h1-h6.
func Tag(level int) string {
	return "h" + strconv.Itoa(clamp(level))
}

// Options configures a Resolver.
type Options struct {
	// StartAt is the level used when no heading is found. Defaults to 1.
	StartAt int
}

// Resolver computes and memoizes heading levels per anchor node.
type Resolver struct {
	startAt int
	cache   map[*html.Node]int
	log     *logger.Logger
}

// NewResolver creates a Resolver.
func NewResolver(opts Options, log *logger.Logger) *Resolver {
	start := opts.StartAt
	if start == 0 {
		start = minLevel
	}
	return &Resolver{startAt: clamp(start), cache: make(map[*html.Node]int), log: log.Component("heading")}
}

// LevelOf returns the level for anchor. The first result for a node is
// kept until Forget is called for it.
func (r *Resolver) LevelOf(anchor *html.Node) int {
	if level, ok := r.cache[anchor]; ok {
		return level
	}
	level := clamp(r.compute(anchor))
	r.cache[anchor] = level
	r.log.DebugFields("level resolved", map[string]any{"level": level})
	return level
}

// Forget drops the memoized level for anchor.
func (r *Resolver) Forget(anchor *html.Node) {
	delete(r.cache, anchor)
}

// Cached reports how many anchors currently hold a memoized level.
func (r *Resolver) Cached() int {
	return len(r.cache)
}

// Retag renames el to the heading element for its resolved level.
func (r *Resolver) Retag(el *html.Node) (int, error) {
	if err := primerrors.Assert(dom.IsElement(el), "heading", "retag target must be an element", "pass the element rendered for the heading"); err != nil {
		return 0, err
	}
	level := r.LevelOf(el)
	tag := Tag(level)
	el.Data = tag
	el.DataAtom = atom.Lookup([]byte(tag))
	return level, nil
}

func (r *Resolver) compute(anchor *html.Node) int {
	if anchor == nil {
		return r.startAt
	}

	section := nearestBoundary(anchor.Parent)
	if section == nil {
		return r.startAt
	}
	stopAt := nearestBoundary(section.Parent)

	for cur := section; cur != nil && cur != stopAt; cur = cur.Parent {
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if level, ok := LevelOfHeading(sib); ok {
				return level + 1
			}
			if IsBoundary(sib) {
				continue
			}
			if level, ok := lastHeadingIn(sib); ok {
				return level + 1
			}
		}
		if level, ok := firstHeadingIn(cur, anchor); ok {
			return level + 1
		}
	}
	return r.startAt
}

func nearestBoundary(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if IsBoundary(n) {
			return n
		}
	}
	return nil
}

// firstHeadingIn searches the descendants of root in document order,
// skipping nested sectioning elements and the subtree of skip.
func firstHeadingIn(root, skip *html.Node) (int, bool) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c == skip || IsBoundary(c) {
			continue
		}
		if level, ok := LevelOfHeading(c); ok {
			return level, true
		}
		if level, ok := firstHeadingIn(c, skip); ok {
			return level, true
		}
	}
	return 0, false
}

// lastHeadingIn is firstHeadingIn in reverse document order.
func lastHeadingIn(root *html.Node) (int, bool) {
	for c := root.LastChild; c != nil; c = c.PrevSibling {
		if IsBoundary(c) {
			continue
		}
		if level, ok := lastHeadingIn(c); ok {
			return level, true
		}
		if level, ok := LevelOfHeading(c); ok {
			return level, true
		}
	}
	return 0, false
}

func clamp(level int) int {
	switch {
	case level < minLevel:
		return minLevel
	case level > maxLevel:
		return maxLevel
	}
	return level
}
