package anchor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

type fixture struct {
	doc       *dom.Document
	lp        *loop.Loop
	owner     *loop.Owner
	binder    *Binder
	scroller  *dom.Node
	reference *dom.Node
	floating  *dom.Node
	arrow     *dom.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	doc, err := dom.Parse(`<div id="scroller"><button id="ref">Open</button></div>
<div id="float" style="top: 40px; left: 12px; color: red;"><span id="arrow"></span></div>`)
	require.NoError(t, err)

	f := &fixture{doc: doc, lp: loop.New(nil), owner: loop.NewOwner()}
	f.binder = NewBinder(doc, f.lp, f.owner, nil)
	f.scroller = f.query(t, "#scroller")
	f.reference = f.query(t, "#ref")
	f.floating = f.query(t, "#float")
	f.arrow = f.query(t, "#arrow")

	doc.SetViewport(geometry.Rect{Width: 800, Height: 600})
	doc.SetRect(f.reference, geometry.Rect{X: 100, Y: 100, Width: 50, Height: 20})
	doc.SetRect(f.floating, geometry.Rect{Width: 40, Height: 30})
	doc.SetRect(f.arrow, geometry.Rect{Width: 8, Height: 8})
	return f
}

func (f *fixture) query(t *testing.T, sel string) *dom.Node {
	t.Helper()
	n, err := dom.Query(f.doc.Root, sel)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

func (f *fixture) style() map[string]string {
	return dom.Style(f.floating)
}

func TestBindResetsOffsetsThenPositionsAsynchronously(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.binder.Bind(f.reference, f.floating, Options{Placement: geometry.BottomStart, Strategy: geometry.Fixed})
	require.NoError(t, err)

	require.Equal(t, map[string]string{"position": "fixed", "top": "0", "left": "0", "color": "red"}, f.style())

	f.lp.Flush()
	require.Equal(t, map[string]string{
		"position":   "fixed",
		"top":        "120px",
		"left":       "100px",
		"margin":     "0",
		"visibility": "visible",
		"color":      "red",
	}, f.style())
}

func TestBindSelectorFailsFastWhenNothingMatches(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.binder.BindSelector("#missing", f.floating, Options{})

	var assertErr *primerrors.AssertionError
	require.ErrorAs(t, err, &assertErr)
	require.Contains(t, assertErr.Message, "#missing")

	_, err = f.binder.BindSelector("//[", f.floating, Options{})
	require.ErrorAs(t, err, &assertErr)
}

func TestBindSelectorResolvesReference(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bd, err := f.binder.BindSelector("#ref", f.floating, Options{})
	require.NoError(t, err)
	f.lp.Flush()

	pos, ok := bd.Position()
	require.True(t, ok)
	require.Equal(t, geometry.Bottom, pos.Placement)
}

func TestBindRejectsBadArguments(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var assertErr *primerrors.AssertionError

	_, err := f.binder.Bind(f.floating, f.floating, Options{})
	require.ErrorAs(t, err, &assertErr)

	_, err = f.binder.Bind(f.reference.FirstChild, f.floating, Options{})
	require.ErrorAs(t, err, &assertErr)

	_, err = f.binder.Bind(f.reference, nil, Options{})
	require.ErrorAs(t, err, &assertErr)

	require.Panics(t, func() { f.binder.MustBind(f.reference, f.reference, Options{}) })
}

func TestHiddenReferenceHidesFloating(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.doc.SetRect(f.reference, geometry.Rect{X: 100, Y: -200, Width: 50, Height: 20})
	_, err := f.binder.Bind(f.reference, f.floating, Options{})
	require.NoError(t, err)
	f.lp.Flush()

	require.Equal(t, "hidden", f.style()["visibility"])
}

func TestAncestorScrollTriggersRecompute(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.binder.Bind(f.reference, f.floating, Options{})
	require.NoError(t, err)
	f.lp.Flush()

	f.doc.SetRect(f.reference, geometry.Rect{X: 100, Y: 60, Width: 50, Height: 20})
	f.doc.SetScroll(f.scroller, dom.Scroll{Height: 1000, ClientHeight: 100})
	f.doc.ScrollTo(f.scroller, 40)
	f.lp.Flush()

	require.Equal(t, "80px", f.style()["top"])
}

func TestResizeTriggersRecompute(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var updates int
	_, err := f.binder.Bind(f.reference, f.floating, Options{Placement: geometry.Top, OnUpdate: func(geometry.Position) { updates++ }})
	require.NoError(t, err)
	f.lp.Frame(time.Now())
	require.Equal(t, "70px", f.style()["top"])

	f.doc.SetRect(f.floating, geometry.Rect{Width: 40, Height: 50})
	f.lp.Frame(time.Now())
	require.Equal(t, "50px", f.style()["top"])
	require.GreaterOrEqual(t, updates, 2)
}

func TestFlipAgainstViewport(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.doc.SetRect(f.reference, geometry.Rect{X: 100, Y: 580, Width: 50, Height: 20})
	bd, err := f.binder.Bind(f.reference, f.floating, Options{Flip: &geometry.Flip{}, Offset: &geometry.Offset{MainAxis: 4}})
	require.NoError(t, err)
	f.lp.Flush()

	pos, _ := bd.Position()
	require.Equal(t, geometry.Top, pos.Placement)
	require.Equal(t, "546px", f.style()["top"])
}

func TestArrowIsPlacedOnSharedEdge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.binder.Bind(f.reference, f.floating, Options{Placement: geometry.BottomStart, Arrow: f.arrow})
	require.NoError(t, err)
	f.lp.Flush()

	require.Equal(t, map[string]string{"left": "21px", "top": "-4px"}, dom.Style(f.arrow))
}

func TestCloseDropsLateResultsAndReleasesListeners(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bd, err := f.binder.Bind(f.reference, f.floating, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, f.doc.ListenerCount(f.scroller))

	bd.Close()
	bd.Close()
	f.lp.Flush()

	require.Equal(t, "0", f.style()["top"])
	require.Zero(t, f.doc.ListenerCount(f.scroller))
	_, ok := bd.Position()
	require.False(t, ok)
}

func TestAnimationFramePollingFollowsReference(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.binder.Bind(f.reference, f.floating, Options{AnimationFrame: true})
	require.NoError(t, err)
	f.lp.Frame(time.Now())

	f.doc.SetRect(f.reference, geometry.Rect{X: 300, Y: 100, Width: 50, Height: 20})
	f.lp.Frame(time.Now())
	require.Equal(t, "305px", f.style()["left"])
}

func TestOwnerDisposeClosesBindings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bd, err := f.binder.Bind(f.reference, f.floating, Options{AnimationFrame: true})
	require.NoError(t, err)

	f.owner.Dispose()
	require.True(t, bd.Closed())
	require.Zero(t, f.lp.PendingFrames())
}

func TestClosedBindingLeavesOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	first, err := f.binder.Bind(f.reference, f.floating, Options{})
	require.NoError(t, err)
	settled := f.owner.Cleanups()

	for i := 0; i < 20; i++ {
		bd, err := f.binder.Bind(f.reference, f.floating, Options{})
		require.NoError(t, err)
		bd.Close()
	}
	require.Equal(t, settled, f.owner.Cleanups())

	first.Close()
	require.Equal(t, settled-1, f.owner.Cleanups())
}
