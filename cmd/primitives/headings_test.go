package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const outline = `<h1 id="a">Title</h1>
<section><h1 id="b">Intro</h1><section><h6 id="c">Deep   text</h6></section></section>`

func TestHeadingsReportsResolvedLevels(t *testing.T) {
	t.Parallel()

	out, err := execute(t, outline, "headings")
	require.NoError(t, err)
	require.Equal(t, "h1 -> h1  #a \"Title\"\nh1 -> h2  #b \"Intro\"\nh6 -> h3  #c \"Deep text\"\n", out)
}

func TestHeadingsRetagFromFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "page.html", outline)
	out, err := execute(t, "", "headings", path, "--retag", "--start-at", "2")
	require.NoError(t, err)
	require.Contains(t, out, `<h2 id="a">Title</h2>`)
	require.Contains(t, out, `<h3 id="b">Intro</h3>`)
	require.Contains(t, out, `<h4 id="c">`)
}

func TestHeadingsSelector(t *testing.T) {
	t.Parallel()

	// #b keeps its source tag, so #c sits one level below an h1.
	out, err := execute(t, outline, "headings", "--selector", "#c")
	require.NoError(t, err)
	require.Equal(t, "h6 -> h2  #c \"Deep text\"\n", out)

	_, err = execute(t, outline, "headings", "--selector", "//[")
	require.ErrorContains(t, err, "invalid selector")
}
