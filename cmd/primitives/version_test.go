package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionFlagPrintsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})

	version, commit, date = "1.2.3", "abcdef1", "2025-10-03"

	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	require.Equal(t, "primitives 1.2.3 (commit abcdef1, built 2025-10-03)\n", out)
}

func TestBuildVersionDefaultsToDev(t *testing.T) {
	originalVersion := version
	t.Cleanup(func() { version = originalVersion })

	version = ""
	require.Contains(t, buildVersion(), "(commit ")
	require.NotEmpty(t, buildVersion())
}
