package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

func TestPositionDefaultsToBottom(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "position", "--reference", "10,10,40,20", "--floating", "100,50")
	require.NoError(t, err)
	require.Equal(t, "placement: bottom\nx: -20\ny: 30\n", out)
}

func TestPositionFlipsAndShiftsInsideBoundary(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "position",
		"--reference", "10,570,40,20", "--floating", "100,50",
		"--boundary", "0,0,800,600", "-o", "yaml")
	require.NoError(t, err)

	var report positionReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.Equal(t, "top", report.Placement)
	require.Equal(t, 0.0, report.X)
	require.Equal(t, 520.0, report.Y)
	require.False(t, report.Hidden.Escaped)
}

func TestPositionWithoutFlipStaysPut(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "position",
		"--reference", "10,570,40,20", "--floating", "100,50",
		"--boundary", "0,0,800,600", "--flip=false", "--shift=false")
	require.NoError(t, err)
	require.Contains(t, out, "placement: bottom")
	require.Contains(t, out, "x: -20")
}

func TestPositionPlacesArrow(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "position",
		"--reference", "100,100,40,20", "--floating", "100,50", "--arrow", "10,10", "--offset", "8")
	require.NoError(t, err)
	require.Contains(t, out, "y: 128")
	require.Contains(t, out, "arrow: x=45 (top edge)")
}

func TestPositionRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "position", "--reference", "1,2,3", "--floating", "1,1")
	require.ErrorContains(t, err, "--reference")

	_, err = execute(t, "", "position", "--reference", "0,0,1,1", "--floating", "1,1", "--placement", "middle")
	var validationErr *primerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "positioning.placement", validationErr.Field)

	_, err = execute(t, "", "position", "--reference", "0,0,1,1", "--floating", "1,1", "-o", "json")
	require.ErrorContains(t, err, "unknown output format")
}
