package toggle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUncontrolledToggleFlips(t *testing.T) {
	t.Parallel()

	tg := New(Options{})
	tg.Toggle()
	require.True(t, tg.Pressed())
	require.Equal(t, "true", tg.Attrs()["aria-pressed"])
	require.Equal(t, "on", tg.Attrs()["data-state"])

	tg.Toggle()
	require.False(t, tg.Pressed())
	require.Equal(t, "off", tg.Attrs()["data-state"])
}

func TestControlledToggleReports(t *testing.T) {
	t.Parallel()

	var got []bool
	tg := New(Options{OnChange: func(v bool) { got = append(got, v) }})
	tg.Toggle()
	require.Equal(t, []bool{true}, got)
	require.False(t, tg.Pressed())

	tg.SetPressed(true)
	require.True(t, tg.Pressed())
}

func TestDisabledToggleIgnoresPresses(t *testing.T) {
	t.Parallel()

	tg := New(Options{Disabled: true})
	tg.Toggle()
	require.False(t, tg.Pressed())
	require.Contains(t, tg.Attrs(), "data-disabled")
	require.Contains(t, tg.Attrs(), "disabled")
}
