package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var (
	reference = Rect{X: 100, Y: 100, Width: 50, Height: 20}
	floating  = Size{Width: 40, Height: 30}
)

func TestComputePositionBasePlacements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		placement Placement
		x, y      float64
	}{
		{Bottom, 105, 120},
		{BottomStart, 100, 120},
		{BottomEnd, 110, 120},
		{Top, 105, 70},
		{TopEnd, 110, 70},
		{Right, 150, 95},
		{RightStart, 150, 100},
		{Left, 60, 95},
		{LeftEnd, 60, 90},
	}

	for _, tc := range cases {
		t.Run(string(tc.placement), func(t *testing.T) {
			pos := ComputePosition(reference, floating, Config{Placement: tc.placement})
			require.Equal(t, tc.x, pos.X)
			require.Equal(t, tc.y, pos.Y)
			require.Equal(t, tc.placement, pos.Placement)
			require.Equal(t, Absolute, pos.Strategy)
		})
	}
}

func TestComputePositionDefaultsToBottom(t *testing.T) {
	t.Parallel()

	pos := ComputePosition(reference, floating, Config{Strategy: Fixed})
	require.Equal(t, Bottom, pos.Placement)
	require.Equal(t, Fixed, pos.Strategy)
}

func TestOffsetMovesAwayFromReference(t *testing.T) {
	t.Parallel()

	below := ComputePosition(reference, floating, Config{Placement: Bottom, Middleware: []Middleware{Offset{MainAxis: 10}}})
	require.Equal(t, 130.0, below.Y)

	above := ComputePosition(reference, floating, Config{Placement: Top, Middleware: []Middleware{Offset{MainAxis: 10, CrossAxis: 3}}})
	require.Equal(t, 60.0, above.Y)
	require.Equal(t, 108.0, above.X)
	require.Equal(t, &OffsetData{X: 3, Y: -10}, above.Data.Offset)
}

func TestOffsetAlignmentAxisMirrorsForEnd(t *testing.T) {
	t.Parallel()

	shift := 4.0
	pos := ComputePosition(reference, floating, Config{Placement: BottomEnd, Middleware: []Middleware{Offset{AlignmentAxis: &shift}}})
	require.Equal(t, 106.0, pos.X)
}

func TestFlipPicksFirstFallbackThatFits(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 10, Y: 170, Width: 50, Height: 20}
	pos := ComputePosition(ref, floating, Config{
		Placement: Bottom,
		Boundary:  Rect{Width: 300, Height: 200},
		Middleware: []Middleware{
			Flip{FallbackPlacements: []Placement{Left, Top, Right}},
		},
	})

	require.Equal(t, Top, pos.Placement)
	require.Equal(t, 140.0, pos.Y)
	require.Equal(t, 2, pos.Data.Flip.Index)
	require.Len(t, pos.Data.Flip.Overflows, 3)
}

func TestFlipDefaultsToOppositeSide(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 100, Y: 170, Width: 50, Height: 20}
	pos := ComputePosition(ref, floating, Config{
		Placement:  BottomStart,
		Boundary:   Rect{Width: 300, Height: 200},
		Middleware: []Middleware{Flip{}},
	})
	require.Equal(t, TopStart, pos.Placement)
}

func TestFlipKeepsLastFallbackWhenNothingFits(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 100, Y: 5, Width: 50, Height: 30}
	pos := ComputePosition(ref, floating, Config{
		Placement:  Bottom,
		Boundary:   Rect{Width: 300, Height: 40},
		Middleware: []Middleware{Flip{FallbackPlacements: []Placement{Top}}},
	})
	require.Equal(t, Top, pos.Placement)
	require.Equal(t, -25.0, pos.Y)
}

func TestFlipDoesNothingWhenPlacementFits(t *testing.T) {
	t.Parallel()

	pos := ComputePosition(reference, floating, Config{
		Placement:  Bottom,
		Boundary:   Rect{Width: 300, Height: 300},
		Middleware: []Middleware{Flip{FallbackPlacements: []Placement{Top}}},
	})
	require.Equal(t, Bottom, pos.Placement)
	require.Equal(t, 0, pos.Data.Flip.Index)
}

func TestFlipReappliesOffsetAfterReset(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 100, Y: 160, Width: 50, Height: 20}
	pos := ComputePosition(ref, floating, Config{
		Placement: Bottom,
		Boundary:  Rect{Width: 300, Height: 200},
		Middleware: Chain(ChainOptions{
			Offset: &Offset{MainAxis: 8},
			Flip:   &Flip{},
		}),
	})
	require.Equal(t, Top, pos.Placement)
	require.Equal(t, 160.0-30-8, pos.Y)
}

func TestShiftKeepsFloatingInsideBoundary(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 5, Y: 50, Width: 20, Height: 20}
	wide := Size{Width: 100, Height: 30}
	boundary := Rect{Width: 300, Height: 200}

	pos := ComputePosition(ref, wide, Config{Placement: Bottom, Boundary: boundary, Middleware: []Middleware{Shift{}}})
	require.Equal(t, 0.0, pos.X)
	require.Equal(t, 70.0, pos.Y)
	require.Equal(t, &ShiftData{X: 35}, pos.Data.Shift)

	padded := ComputePosition(ref, wide, Config{Placement: Bottom, Boundary: boundary, Middleware: []Middleware{Shift{Padding: 4}}})
	require.Equal(t, 4.0, padded.X)
}

func TestShiftNeverChangesPlacementAfterFlip(t *testing.T) {
	t.Parallel()

	boundary := Rect{Width: 300, Height: 200}
	for x := -50.0; x <= 350; x += 25 {
		ref := Rect{X: x, Y: 175, Width: 20, Height: 20}
		pos := ComputePosition(ref, Size{Width: 60, Height: 30}, Config{
			Placement:  Bottom,
			Boundary:   boundary,
			Middleware: Chain(ChainOptions{Flip: &Flip{}, Shift: &Shift{}}),
		})
		require.Equal(t, Top, pos.Placement)
		require.GreaterOrEqual(t, pos.X, boundary.X)
		require.LessOrEqual(t, pos.X+60, boundary.Right())
		require.Equal(t, 145.0, pos.Y)
	}
}

func TestShiftOnHorizontalPlacementMovesY(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 100, Y: 190, Width: 20, Height: 10}
	pos := ComputePosition(ref, floating, Config{Placement: Right, Boundary: Rect{Width: 300, Height: 200}, Middleware: []Middleware{Shift{}}})
	require.Equal(t, 120.0, pos.X)
	require.Equal(t, 170.0, pos.Y)
}

func TestHideFlagsClippedReference(t *testing.T) {
	t.Parallel()

	boundary := Rect{Width: 300, Height: 200}

	hidden := ComputePosition(Rect{X: -100, Y: 10, Width: 50, Height: 20}, floating, Config{
		Placement:  Bottom,
		Boundary:   boundary,
		Middleware: Chain(ChainOptions{}),
	})
	require.True(t, hidden.Data.Hide.ReferenceHidden)
	require.True(t, hidden.Data.Hide.Escaped)

	partial := ComputePosition(Rect{X: -20, Y: 10, Width: 50, Height: 20}, floating, Config{
		Placement:  Bottom,
		Boundary:   boundary,
		Middleware: Chain(ChainOptions{}),
	})
	require.False(t, partial.Data.Hide.ReferenceHidden)
}

func TestArrowCentersOnReference(t *testing.T) {
	t.Parallel()

	pos := ComputePosition(reference, floating, Config{Placement: BottomStart, Middleware: []Middleware{Arrow{Size: Size{Width: 10, Height: 10}}}})

	x := 20.0
	want := &ArrowData{X: &x, StaticSide: SideTop}
	if diff := cmp.Diff(want, pos.Data.Arrow); diff != "" {
		t.Fatalf("arrow data mismatch (-want +got):\n%s", diff)
	}
}

func TestArrowIsClampedInsideFloating(t *testing.T) {
	t.Parallel()

	ref := Rect{X: 0, Y: 100, Width: 10, Height: 200}
	pos := ComputePosition(ref, Size{Width: 40, Height: 50}, Config{Placement: RightStart, Middleware: []Middleware{Arrow{Size: Size{Width: 8, Height: 8}, Padding: 2}}})

	require.Nil(t, pos.Data.Arrow.X)
	require.Equal(t, 40.0, *pos.Data.Arrow.Y)
	require.Equal(t, SideLeft, pos.Data.Arrow.StaticSide)
	require.Equal(t, 56.0, pos.Data.Arrow.CenterOffset)
}

func TestChainOrderIsFixed(t *testing.T) {
	t.Parallel()

	custom := MiddlewareFunc{ID: "custom", Fn: func(s State) Result { return Result{X: s.X, Y: s.Y, Data: "seen"} }}
	chain := Chain(ChainOptions{
		Shift:  &Shift{},
		Offset: &Offset{},
		Flip:   &Flip{},
		Extra:  []Middleware{custom},
	})

	names := make([]string, 0, len(chain))
	for _, mw := range chain {
		names = append(names, mw.Name())
	}
	require.Equal(t, []string{"offset", "flip", "shift", "custom", "hide", "hide", "metadata"}, names)

	pos := ComputePosition(reference, floating, Config{Placement: Top, Middleware: chain})
	require.Equal(t, "seen", pos.Data.Custom["custom"])
	require.Equal(t, &MetadataData{InitialPlacement: Top, Placement: Top, Strategy: Absolute}, pos.Data.Metadata)
}

func TestParsePlacement(t *testing.T) {
	t.Parallel()

	p, err := ParsePlacement(" Top-End ")
	require.NoError(t, err)
	require.Equal(t, TopEnd, p)
	require.Equal(t, SideTop, p.Side())
	require.Equal(t, AlignEnd, p.Alignment())
	require.Equal(t, BottomEnd, p.Opposite())

	_, err = ParsePlacement("middle")
	require.Error(t, err)
}
