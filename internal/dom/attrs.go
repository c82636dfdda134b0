package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Attr returns the value of key on n and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// SetAttrs applies every entry of attrs to n.
func SetAttrs(n *html.Node, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		SetAttr(n, k, attrs[k])
	}
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// Style parses the inline style of n.
func Style(n *html.Node) map[string]string {
	raw, _ := Attr(n, "style")
	out := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out[prop] = strings.TrimSpace(val)
	}
	return out
}

// SetStyle sets one inline style property on n.
func SetStyle(n *html.Node, prop, val string) {
	SetStyles(n, map[string]string{prop: val})
}

// SetStyles merges props into the inline style of n.
func SetStyles(n *html.Node, props map[string]string) {
	style := Style(n)
	for k, v := range props {
		style[k] = v
	}
	writeStyle(n, style)
}

// RemoveStyle deletes one inline style property from n.
func RemoveStyle(n *html.Node, prop string) {
	style := Style(n)
	delete(style, prop)
	writeStyle(n, style)
}

func writeStyle(n *html.Node, style map[string]string) {
	if len(style) == 0 {
		RemoveAttr(n, "style")
		return
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k])
	}
	SetAttr(n, "style", strings.Join(parts, "; ")+";")
}

// Query resolves selector under root. "#id" is accepted as a shorthand;
// anything else is evaluated as XPath.
func Query(root *html.Node, selector string) (*html.Node, error) {
	expr, err := toXPath(selector)
	if err != nil {
		return nil, err
	}
	return htmlquery.Query(root, expr)
}

// QueryAll resolves every match of selector under root, in document order.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	expr, err := toXPath(selector)
	if err != nil {
		return nil, err
	}
	return htmlquery.QueryAll(root, expr)
}

func toXPath(selector string) (string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return "", fmt.Errorf("empty selector")
	}
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		return fmt.Sprintf(`//*[@id=%s]`, xpathLiteral(id)), nil
	}
	return selector, nil
}

// xpathLiteral quotes s for use in an XPath expression.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// AttrEquals builds an XPath predicate matching descendants whose key
// attribute equals val.
func AttrEquals(key, val string) string {
	return fmt.Sprintf(`.//*[@%s=%s]`, key, xpathLiteral(val))
}
