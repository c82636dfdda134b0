package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreviewRequiresTerminal(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "preview")
	require.ErrorIs(t, err, errNoTerminal)
}
