package tabs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
)

type change struct{ next, prev string }

func newEnv(t *testing.T) (widgets.Env, []*html.Node) {
	t.Helper()
	doc, err := dom.Parse(`<div role="tablist"><button id="one">One</button><button id="two">Two</button><button id="three">Three</button></div>`)
	require.NoError(t, err)

	var nodes []*html.Node
	for _, id := range []string{"one", "two", "three"} {
		n, err := dom.Query(doc.Root, "#"+id)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	return widgets.Env{Doc: doc, Loop: loop.New(nil), Owner: loop.NewOwner()}, nodes
}

func register(t *testing.T, tb *Tabs, nodes []*html.Node, disabled map[string]bool) []*Tab {
	t.Helper()
	var out []*Tab
	for i, value := range []string{"one", "two", "three"} {
		tab, err := tb.Tab(value, disabled[value])
		require.NoError(t, err)
		_, err = tab.Bind(nodes[i])
		require.NoError(t, err)
		out = append(out, tab)
	}
	return out
}

func TestFirstRenderedTabIsDefaultExactlyOnce(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	var changes []change
	tb, err := New(env, Options{OnChange: func(next, prev string) { changes = append(changes, change{next, prev}) }})
	require.NoError(t, err)
	require.Equal(t, "", tb.Active())

	_, err = tb.Tab("one", false)
	require.NoError(t, err)
	require.Equal(t, "one", tb.Active())

	tb.HandleChange("two")
	_, err = tb.Tab("two", false)
	require.NoError(t, err)
	_, err = tb.Tab("three", false)
	require.NoError(t, err)
	require.Equal(t, "two", tb.Active(), "later tabs never re-trigger default selection")
	require.Equal(t, []change{{"two", "one"}}, changes)
}

func TestExplicitActiveTabWins(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	tb, err := New(env, Options{ActiveTab: "three"})
	require.NoError(t, err)

	first, err := tb.Tab("one", false)
	require.NoError(t, err)
	require.False(t, first.IsActive())
	require.Equal(t, "three", tb.Active())
}

func TestHandleChangeReportsPreviousAndSkipsRepeats(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	var changes []change
	tb, err := New(env, Options{OnChange: func(next, prev string) { changes = append(changes, change{next, prev}) }})
	require.NoError(t, err)

	tb.HandleChange("two")
	tb.HandleChange("two")
	tb.HandleChange("one")
	require.Equal(t, []change{{"two", ""}, {"one", "two"}}, changes)
}

func TestAutomaticModeSelectsOnFocus(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{})
	require.NoError(t, err)
	register(t, tb, nodes, nil)

	env.Doc.KeyDown(nodes[0], "ArrowRight")
	require.Same(t, nodes[1], env.Doc.ActiveElement())
	require.Equal(t, "two", tb.Active())

	env.Doc.KeyDown(nodes[1], "End")
	require.Equal(t, "three", tb.Active())

	env.Doc.KeyDown(nodes[2], "ArrowRight")
	require.Equal(t, "one", tb.Active(), "arrows wrap")

	env.Doc.KeyDown(nodes[0], "ArrowLeft")
	require.Equal(t, "three", tb.Active())
}

func TestManualModeOnlyMovesFocus(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{ActivationMode: Manual})
	require.NoError(t, err)
	register(t, tb, nodes, nil)

	ev := env.Doc.KeyDown(nodes[0], "ArrowRight")
	require.True(t, ev.DefaultPrevented())
	require.Same(t, nodes[1], env.Doc.ActiveElement())
	require.Equal(t, "one", tb.Active())

	env.Doc.KeyDown(nodes[1], "Enter")
	require.Equal(t, "two", tb.Active())

	env.Doc.Click(nodes[2])
	require.Equal(t, "three", tb.Active())

	ev = env.Doc.KeyDown(nodes[2], "a")
	require.False(t, ev.DefaultPrevented())
}

func TestDisabledTabsAreSkipped(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{})
	require.NoError(t, err)
	register(t, tb, nodes, map[string]bool{"two": true})

	env.Doc.KeyDown(nodes[0], "ArrowRight")
	require.Equal(t, "three", tb.Active())

	env.Doc.Click(nodes[1])
	require.Equal(t, "three", tb.Active())
	_, disabled := dom.Attr(nodes[1], "data-disabled")
	require.True(t, disabled)
}

func TestDefaultSkipsDisabledFirstTab(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{})
	require.NoError(t, err)
	register(t, tb, nodes, map[string]bool{"one": true})
	require.Equal(t, "two", tb.Active())

	_, err = tb.Tab("four", false)
	require.NoError(t, err)
	require.Equal(t, "two", tb.Active())
}

func TestAttrsTrackActiveTab(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{})
	require.NoError(t, err)
	tabs := register(t, tb, nodes, nil)

	attrs := tabs[0].Attrs()
	panel := tabs[0].PanelAttrs()
	require.Equal(t, "true", attrs["aria-selected"])
	require.Equal(t, panel["id"], attrs["aria-controls"])
	require.Equal(t, attrs["id"], panel["aria-labelledby"])
	require.Contains(t, attrs, "data-active")
	require.NotContains(t, panel, "hidden")
	require.Equal(t, "-1", tabs[1].Attrs()["tabindex"])

	env.Doc.Click(nodes[1])
	selected, _ := dom.Attr(nodes[0], "aria-selected")
	require.Equal(t, "false", selected)
	require.False(t, dom.HasAttr(nodes[0], "data-active"))
	state, _ := dom.Attr(nodes[1], "data-state")
	require.Equal(t, "active", state)
}

func TestOwnerDisposeUnbindsTabs(t *testing.T) {
	t.Parallel()

	env, nodes := newEnv(t)
	tb, err := New(env, Options{})
	require.NoError(t, err)
	register(t, tb, nodes, nil)
	require.Equal(t, 3, env.Doc.ListenerCount(nodes[0]))

	env.Owner.Dispose()
	require.Zero(t, env.Doc.ListenerCount(nodes[0]))
	env.Doc.Click(nodes[2])
	require.Equal(t, "one", tb.Active())
}

func TestRejectsUnknownModeAndEmptyValue(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	_, err := New(env, Options{ActivationMode: "hover"})
	require.Error(t, err)

	tb, err := New(env, Options{})
	require.NoError(t, err)
	_, err = tb.Tab("", false)
	require.Error(t, err)
}
