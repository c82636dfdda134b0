package accordion

import (
	"testing"

	"github.com/stretchr/testify/require"

	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

func TestSingleNonCollapsibleKeepsOpenItem(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Single, Value: []string{"a"}}, nil)
	require.NoError(t, err)

	a.Toggle("a")
	require.Equal(t, []string{"a"}, a.Value())

	a.Toggle("b")
	require.Equal(t, []string{"b"}, a.Value())
	require.False(t, a.IsExpanded("a"))
}

func TestSingleCollapsibleClosesOpenItem(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Single, Collapsible: true, Value: []string{"a", "b"}}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, a.Value(), "single keeps the first seeded value")

	a.Toggle("a")
	require.Empty(t, a.Value())
}

func TestMultipleTogglesIndependently(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Multiple}, nil)
	require.NoError(t, err)

	a.Toggle("a")
	a.Toggle("b")
	require.Equal(t, []string{"a", "b"}, a.Value())

	a.Toggle("a")
	require.Equal(t, []string{"b"}, a.Value())
}

func TestControlledReportsWithoutMutating(t *testing.T) {
	t.Parallel()

	var requested [][]string
	a, err := New(Options{Type: Multiple, Value: []string{"a"}, OnValueChange: func(v []string) {
		requested = append(requested, v)
	}}, nil)
	require.NoError(t, err)

	a.Toggle("b")
	require.Equal(t, [][]string{{"a", "b"}}, requested)
	require.Equal(t, []string{"a"}, a.Value())

	a.SetValue(requested[0])
	require.True(t, a.IsExpanded("b"))
}

func TestDisabledItemsIgnoreToggle(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Multiple}, nil)
	require.NoError(t, err)
	item := a.Item("a", true)

	item.Toggle()
	require.False(t, item.Expanded())
	require.Equal(t, "", item.Attrs()["data-disabled"])

	whole, err := New(Options{Type: Single, Disabled: true}, nil)
	require.NoError(t, err)
	whole.Toggle("x")
	require.Empty(t, whole.Value())
}

func TestItemAttrsFollowState(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Single}, nil)
	require.NoError(t, err)
	item := a.Item("a", false)
	require.Same(t, item, a.Item("a", false))

	trigger := item.TriggerAttrs()
	content := item.ContentAttrs()
	require.Equal(t, "false", trigger["aria-expanded"])
	require.Equal(t, content["id"], trigger["aria-controls"])
	require.Equal(t, trigger["id"], content["aria-labelledby"])
	require.Equal(t, "closed", content["data-state"])
	require.Contains(t, content, "hidden")

	item.Toggle()
	trigger = item.TriggerAttrs()
	content = item.ContentAttrs()
	require.Equal(t, "true", trigger["aria-expanded"])
	require.Equal(t, "true", trigger["aria-disabled"])
	require.Equal(t, "open", content["data-state"])
	require.NotContains(t, content, "hidden")
	require.NotContains(t, trigger, "data-disabled")
}

func TestSubscribeSeesUncontrolledChanges(t *testing.T) {
	t.Parallel()

	a, err := New(Options{Type: Single, Collapsible: true}, nil)
	require.NoError(t, err)

	var seen [][]string
	stop := a.Subscribe(func(v []string) { seen = append(seen, v) })
	a.Toggle("a")
	a.Toggle("a")
	stop()
	a.Toggle("b")

	require.Equal(t, [][]string{{"a"}, {}}, seen)
}

func TestUnknownTypeIsRejected(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Type: "both"}, nil)
	var assertErr *primerrors.AssertionError
	require.ErrorAs(t, err, &assertErr)
}
