// Package portal moves rendered content into named target nodes elsewhere
// in the document.
package portal

import (
	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

// AttrName marks a node as a portal target.
const AttrName = "data-portal-name"

// Reserved target names.
const (
	Popover = "popover"
	Tooltip = "tooltip"
	Modal   = "modal"
)

// FindNearestTarget walks up from origin and returns the first target named
// name found inside an ancestor's subtree, so the closest enclosing scope
// wins over document order.
func FindNearestTarget(origin *dom.Node, name string) *dom.Node {
	if origin == nil {
		return nil
	}
	selector := dom.AttrEquals(AttrName, name)
	for n := origin.Parent; n != nil; n = n.Parent {
		found, err := dom.Query(n, selector)
		if err == nil && found != nil {
			return found
		}
	}
	return nil
}

// Registry tracks registered targets and the content mounted into them.
type Registry struct {
	log     *logger.Logger
	targets map[string][]*dom.Node
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{log: log.Component("portal"), targets: make(map[string][]*dom.Node)}
}

// RegisterTarget marks node as a target named name. The returned function
// unregisters it.
func (r *Registry) RegisterTarget(name string, node *dom.Node) (func(), error) {
	if err := primerrors.Assert(name != "", "portal", "target name is empty", "pass one of popover, tooltip, modal or a custom name"); err != nil {
		return nil, err
	}
	if err := primerrors.Assert(dom.IsElement(node), "portal", "target must be an element", "register the element that should receive portaled content"); err != nil {
		return nil, err
	}

	dom.SetAttr(node, AttrName, name)
	r.targets[name] = append(r.targets[name], node)
	r.log.DebugFields("target registered", map[string]any{"name": name})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		r.unregister(name, node)
	}, nil
}

func (r *Registry) unregister(name string, node *dom.Node) {
	dom.RemoveAttr(node, AttrName)
	list := r.targets[name]
	for i, n := range list {
		if n == node {
			r.targets[name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(r.targets[name]) == 0 {
		delete(r.targets, name)
	}
	r.log.DebugFields("target unregistered", map[string]any{"name": name})
}

// Targets returns the registered targets named name.
func (r *Registry) Targets(name string) []*dom.Node {
	return append([]*dom.Node(nil), r.targets[name]...)
}

// Resolve is FindNearestTarget that fails with a descriptive error when no
// target exists.
func (r *Registry) Resolve(origin *dom.Node, name string) (*dom.Node, error) {
	target := FindNearestTarget(origin, name)
	if target == nil {
		err := primerrors.NewTargetNotFoundError(name)
		r.log.Error(err, "portal target missing")
		return nil, err
	}
	return target, nil
}

// MustResolve is Resolve that panics when no target exists.
func (r *Registry) MustResolve(origin *dom.Node, name string) *dom.Node {
	target, err := r.Resolve(origin, name)
	if err != nil {
		panic(err)
	}
	return target
}

// Mount is content re-parented into a target.
type Mount struct {
	content *dom.Node
	target  *dom.Node
	mounted bool
}

// Mount moves content, with its whole subtree, to the end of target. The
// nodes are moved, not copied.
func (r *Registry) Mount(content, target *dom.Node) (*Mount, error) {
	if err := primerrors.Assert(content != nil && target != nil, "portal", "content and target are required", "resolve the target before mounting"); err != nil {
		return nil, err
	}
	if err := primerrors.Assert(!dom.Contains(content, target), "portal", "target lies inside the content being moved", "portal into a target outside the content"); err != nil {
		return nil, err
	}

	if content.Parent != target {
		if content.Parent != nil {
			content.Parent.RemoveChild(content)
		}
		target.AppendChild(content)
	}
	return &Mount{content: content, target: target, mounted: true}, nil
}

// MountNearest resolves the nearest target named name from origin and
// mounts content there.
func (r *Registry) MountNearest(origin *dom.Node, name string, content *dom.Node) (*Mount, error) {
	target, err := r.Resolve(origin, name)
	if err != nil {
		return nil, err
	}
	return r.Mount(content, target)
}

// Target returns the node content was mounted into.
func (m *Mount) Target() *dom.Node { return m.target }

// Content returns the mounted node.
func (m *Mount) Content() *dom.Node { return m.content }

// Mounted reports whether the content is still attached to the target.
func (m *Mount) Mounted() bool { return m.mounted && m.content.Parent == m.target }

// Unmount detaches the content from the target. The subtree is left intact
// so it can be mounted again.
func (m *Mount) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	if m.content.Parent == m.target {
		m.target.RemoveChild(m.content)
	}
}
