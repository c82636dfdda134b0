package portal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const nested = `<body>
<div id="outer-target" data-portal-name="popover"></div>
<div id="scope">
  <div id="inner-target" data-portal-name="popover"></div>
  <div id="deep"><button id="origin"></button></div>
</div>
<div id="elsewhere"><button id="lonely"></button></div>
</body>`

func load(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(src)
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *dom.Document, id string) *dom.Node {
	t.Helper()
	n, err := dom.Query(doc.Root, "#"+id)
	require.NoError(t, err)
	require.NotNil(t, n, id)
	return n
}

func TestFindNearestTargetPrefersClosestScope(t *testing.T) {
	t.Parallel()

	doc := load(t, nested)
	require.Same(t, byID(t, doc, "inner-target"), FindNearestTarget(byID(t, doc, "origin"), Popover))
	require.Same(t, byID(t, doc, "outer-target"), FindNearestTarget(byID(t, doc, "lonely"), Popover))
	require.Nil(t, FindNearestTarget(byID(t, doc, "origin"), Tooltip))
}

func TestResolveFailsLoudlyWhenMissing(t *testing.T) {
	t.Parallel()

	doc := load(t, nested)
	r := NewRegistry(nil)

	_, err := r.Resolve(byID(t, doc, "origin"), Modal)
	var notFound *primerrors.TargetNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, Modal, notFound.Name)

	require.Panics(t, func() { r.MustResolve(byID(t, doc, "lonely"), Modal) })
	require.Same(t, byID(t, doc, "outer-target"), r.MustResolve(byID(t, doc, "lonely"), Popover))
}

func TestRegisterTargetMarksNode(t *testing.T) {
	t.Parallel()

	doc := load(t, nested)
	r := NewRegistry(nil)
	elsewhere := byID(t, doc, "elsewhere")

	unregister, err := r.RegisterTarget(Tooltip, elsewhere)
	require.NoError(t, err)
	require.Equal(t, []*dom.Node{elsewhere}, r.Targets(Tooltip))
	require.Same(t, elsewhere, FindNearestTarget(byID(t, doc, "lonely"), Tooltip))

	unregister()
	unregister()
	require.Empty(t, r.Targets(Tooltip))
	require.False(t, dom.HasAttr(elsewhere, AttrName))

	_, err = r.RegisterTarget("", elsewhere)
	require.Error(t, err)
	_, err = r.RegisterTarget(Tooltip, elsewhere.FirstChild)
	require.Error(t, err)
}

func TestMountMovesWithoutCopying(t *testing.T) {
	t.Parallel()

	doc := load(t, nested)
	r := NewRegistry(nil)
	deep := byID(t, doc, "deep")
	origin := byID(t, doc, "origin")

	m, err := r.MountNearest(origin, Popover, deep)
	require.NoError(t, err)
	require.Same(t, byID(t, doc, "inner-target"), deep.Parent)
	require.Same(t, deep, origin.Parent, "subtree is moved intact")
	require.True(t, m.Mounted())

	again, err := r.Mount(deep, m.Target())
	require.NoError(t, err)
	require.Same(t, deep, again.Content())
	require.Same(t, deep, m.Target().LastChild)

	m.Unmount()
	m.Unmount()
	require.Nil(t, deep.Parent)
	require.Same(t, deep, origin.Parent)
	require.False(t, m.Mounted())
}

func TestMountRejectsTargetInsideContent(t *testing.T) {
	t.Parallel()

	doc := load(t, nested)
	r := NewRegistry(nil)

	_, err := r.Mount(byID(t, doc, "scope"), byID(t, doc, "inner-target"))
	var assertErr *primerrors.AssertionError
	require.ErrorAs(t, err, &assertErr)
}
