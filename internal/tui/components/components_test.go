package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/primitives/internal/widgets/rating"
)

func TestNewMeter(t *testing.T) {
	t.Parallel()

	m := NewMeter(5)
	require.NotNil(t, m.bar)
	require.Equal(t, 5.0, m.total)
}

func TestMeterView(t *testing.T) {
	t.Parallel()

	t.Run("renders zero total", func(t *testing.T) {
		t.Parallel()
		require.Contains(t, NewMeter(0).View(0), "0/0")
	})

	t.Run("renders fractional values", func(t *testing.T) {
		t.Parallel()
		view := NewMeter(5).View(3.5)
		require.Contains(t, view, "3.5/5")
	})

	t.Run("clamps overflow", func(t *testing.T) {
		t.Parallel()
		require.NotEmpty(t, NewMeter(5).View(9))
	})
}

func TestStars(t *testing.T) {
	t.Parallel()

	r := rating.New(rating.Options{Max: 4, Value: 2.5}, nil)
	row := Stars(r.Stars())
	require.Equal(t, 2, strings.Count(row, "★"))
	require.Equal(t, 1, strings.Count(row, "⯪"))
	require.Equal(t, 1, strings.Count(row, "☆"))
}
