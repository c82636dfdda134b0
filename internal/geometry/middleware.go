package geometry

// OffsetData records the translation applied by Offset.
type OffsetData struct {
	X, Y float64
}

// FlipData tracks which candidate placement is being tried and the overflow
// measured for each one tried so far.
type FlipData struct {
	Index     int
	Overflows []PlacementOverflow
}

// PlacementOverflow is the overflow measured for one tried placement.
type PlacementOverflow struct {
	Placement Placement
	Overflow  Sides
}

// ShiftData records the cross-axis translation applied by Shift.
type ShiftData struct {
	X, Y float64
}

// HideData carries both hide signals. Either may be set by its own Hide
// middleware; the entries are merged.
type HideData struct {
	ReferenceHidden        bool
	ReferenceHiddenOffsets Sides
	Escaped                bool
	EscapedOffsets         Sides
}

// ArrowData positions the arrow inside the floating element. Only the
// coordinate on the shared edge's axis is set.
type ArrowData struct {
	X, Y         *float64
	StaticSide   Side
	CenterOffset float64
}

// MetadataData exposes the final placement to consumers.
type MetadataData struct {
	InitialPlacement Placement
	Placement        Placement
	Strategy         Strategy
}

// MiddlewareData accumulates middleware output by name. Well-known
// middleware get typed fields; anything else lands in Custom.
type MiddlewareData struct {
	Offset   *OffsetData
	Flip     *FlipData
	Shift    *ShiftData
	Hide     *HideData
	Arrow    *ArrowData
	Metadata *MetadataData
	Custom   map[string]any
}

func (d MiddlewareData) with(name string, v any) MiddlewareData {
	switch data := v.(type) {
	case nil:
	case OffsetData:
		d.Offset = &data
	case FlipData:
		d.Flip = &data
	case ShiftData:
		d.Shift = &data
	case HideData:
		d.Hide = &data
	case ArrowData:
		d.Arrow = &data
	case MetadataData:
		d.Metadata = &data
	default:
		custom := make(map[string]any, len(d.Custom)+1)
		for k, val := range d.Custom {
			custom[k] = val
		}
		custom[name] = v
		d.Custom = custom
	}
	return d
}

func hasBoundary(b Rect) bool {
	return b.Width > 0 || b.Height > 0
}

// Offset moves the floating box away from the reference along the main
// axis and slides it along the cross axis.
type Offset struct {
	MainAxis  float64
	CrossAxis float64
	// AlignmentAxis replaces CrossAxis for aligned placements and is
	// mirrored for -end.
	AlignmentAxis *float64
}

// Name implements Middleware.
func (Offset) Name() string { return "offset" }

// Apply implements Middleware.
func (o Offset) Apply(s State) Result {
	side := s.Placement.Side()
	align := s.Placement.Alignment()

	mainMulti := 1.0
	if side == SideTop || side == SideLeft {
		mainMulti = -1
	}

	cross := o.CrossAxis
	if align != AlignCenter && o.AlignmentAxis != nil {
		cross = *o.AlignmentAxis
		if align == AlignEnd {
			cross = -cross
		}
	}

	var dx, dy float64
	if side.Vertical() {
		dx, dy = cross, o.MainAxis*mainMulti
	} else {
		dx, dy = o.MainAxis*mainMulti, cross
	}

	return Result{X: s.X + dx, Y: s.Y + dy, Data: OffsetData{X: dx, Y: dy}}
}

// Flip moves the floating box to a fallback placement when the current one
// overflows the boundary on its main side. Candidates are tried in order;
// when none fits the last candidate is kept.
type Flip struct {
	// FallbackPlacements defaults to the opposite of the initial placement.
	FallbackPlacements []Placement
	// CrossAxis also treats overflow on the cross-axis sides as a reason
	// to flip.
	CrossAxis bool
	Padding   float64
}

// Name implements Middleware.
func (Flip) Name() string { return "flip" }

func (f Flip) candidates(initial Placement) []Placement {
	fallbacks := f.FallbackPlacements
	if len(fallbacks) == 0 {
		fallbacks = []Placement{initial.Opposite()}
	}
	out := []Placement{initial}
	for _, p := range fallbacks {
		if p != initial {
			out = append(out, p)
		}
	}
	return out
}

// Apply implements Middleware.
func (f Flip) Apply(s State) Result {
	res := Result{X: s.X, Y: s.Y}
	if !hasBoundary(s.Boundary) {
		return res
	}

	data := FlipData{}
	if s.Data.Flip != nil {
		data.Index = s.Data.Flip.Index
		data.Overflows = append(data.Overflows, s.Data.Flip.Overflows...)
	}

	side := s.Placement.Side()
	overflow := Overflow(s.FloatingRect(), s.Boundary, f.Padding)
	data.Overflows = append(data.Overflows, PlacementOverflow{Placement: s.Placement, Overflow: overflow})

	overflowing := overflow.Get(side) > 0
	if f.CrossAxis {
		if side.Vertical() {
			overflowing = overflowing || overflow.Left > 0 || overflow.Right > 0
		} else {
			overflowing = overflowing || overflow.Top > 0 || overflow.Bottom > 0
		}
	}

	candidates := f.candidates(s.InitialPlacement)
	if !overflowing || data.Index+1 >= len(candidates) {
		res.Data = data
		return res
	}

	data.Index++
	res.Data = data
	res.Reset = &Reset{Placement: candidates[data.Index]}
	return res
}

// Shift slides the floating box along the cross axis by the least amount
// that keeps it inside the boundary. The main axis is never touched.
type Shift struct {
	Padding float64
	// Limit keeps the floating box touching the reference on the cross
	// axis, even when that means crossing the boundary.
	Limit bool
}

// Name implements Middleware.
func (Shift) Name() string { return "shift" }

// Apply implements Middleware.
func (sh Shift) Apply(s State) Result {
	res := Result{X: s.X, Y: s.Y}
	if !hasBoundary(s.Boundary) {
		return res
	}

	b := s.Boundary
	if s.Placement.Side().Vertical() {
		res.X = clamp(b.X+sh.Padding, s.X, b.Right()-sh.Padding-s.Floating.Width)
		if sh.Limit {
			res.X = clamp(s.Reference.X-s.Floating.Width, res.X, s.Reference.Right())
		}
	} else {
		res.Y = clamp(b.Y+sh.Padding, s.Y, b.Bottom()-sh.Padding-s.Floating.Height)
		if sh.Limit {
			res.Y = clamp(s.Reference.Y-s.Floating.Height, res.Y, s.Reference.Bottom())
		}
	}

	res.Data = ShiftData{X: res.X - s.X, Y: res.Y - s.Y}
	return res
}

// HideStrategy selects which box Hide checks against the boundary.
type HideStrategy string

const (
	// ReferenceHidden is set when the reference is fully clipped.
	ReferenceHidden HideStrategy = "referenceHidden"
	// Escaped is set when the floating box is fully clipped.
	Escaped HideStrategy = "escaped"
)

// Hide flags fully clipped boxes so consumers can hide the floating element.
type Hide struct {
	Strategy HideStrategy
	Padding  float64
}

// Name implements Middleware.
func (Hide) Name() string { return "hide" }

// Apply implements Middleware.
func (h Hide) Apply(s State) Result {
	res := Result{X: s.X, Y: s.Y}

	data := HideData{}
	if s.Data.Hide != nil {
		data = *s.Data.Hide
	}
	if !hasBoundary(s.Boundary) {
		res.Data = data
		return res
	}

	switch h.Strategy {
	case Escaped:
		box := s.FloatingRect()
		data.EscapedOffsets = clippingOffsets(box, s.Boundary, h.Padding)
		data.Escaped = fullyClipped(data.EscapedOffsets)
	default:
		data.ReferenceHiddenOffsets = clippingOffsets(s.Reference, s.Boundary, h.Padding)
		data.ReferenceHidden = fullyClipped(data.ReferenceHiddenOffsets)
	}

	res.Data = data
	return res
}

// clippingOffsets is the overflow minus the box extent: a side is fully
// clipped once its offset is non-negative.
func clippingOffsets(box, boundary Rect, padding float64) Sides {
	ov := Overflow(box, boundary, padding)
	return Sides{
		Top:    ov.Top - box.Height,
		Right:  ov.Right - box.Width,
		Bottom: ov.Bottom - box.Height,
		Left:   ov.Left - box.Width,
	}
}

func fullyClipped(o Sides) bool {
	return o.Top >= 0 || o.Right >= 0 || o.Bottom >= 0 || o.Left >= 0
}

// Arrow centres an arrow of the given size on the edge the floating box
// shares with the reference, clamped inside the floating box.
type Arrow struct {
	Size    Size
	Padding float64
}

// Name implements Middleware.
func (Arrow) Name() string { return "arrow" }

// Apply implements Middleware.
func (a Arrow) Apply(s State) Result {
	side := s.Placement.Side()
	data := ArrowData{StaticSide: side.Opposite()}

	if side.Vertical() {
		center := s.Reference.X + s.Reference.Width/2 - s.X - a.Size.Width/2
		v := clamp(a.Padding, center, s.Floating.Width-a.Size.Width-a.Padding)
		data.X = &v
		data.CenterOffset = center - v
	} else {
		center := s.Reference.Y + s.Reference.Height/2 - s.Y - a.Size.Height/2
		v := clamp(a.Padding, center, s.Floating.Height-a.Size.Height-a.Padding)
		data.Y = &v
		data.CenterOffset = center - v
	}

	return Result{X: s.X, Y: s.Y, Data: data}
}

// Metadata copies the resolved placement into the middleware data.
type Metadata struct{}

// Name implements Middleware.
func (Metadata) Name() string { return "metadata" }

// Apply implements Middleware.
func (Metadata) Apply(s State) Result {
	return Result{X: s.X, Y: s.Y, Data: MetadataData{
		InitialPlacement: s.InitialPlacement,
		Placement:        s.Placement,
		Strategy:         s.Strategy,
	}}
}

// ChainOptions selects the optional stages of the standard chain.
type ChainOptions struct {
	Offset *Offset
	Flip   *Flip
	Shift  *Shift
	// Extra runs after shift and before the hide checks.
	Extra []Middleware
}

// Chain builds the standard middleware chain. The order is fixed: offset,
// flip, shift, extra, hide(referenceHidden), hide(escaped), metadata.
func Chain(opts ChainOptions) []Middleware {
	chain := make([]Middleware, 0, 6+len(opts.Extra))
	if opts.Offset != nil {
		chain = append(chain, *opts.Offset)
	}
	if opts.Flip != nil {
		chain = append(chain, *opts.Flip)
	}
	if opts.Shift != nil {
		chain = append(chain, *opts.Shift)
	}
	chain = append(chain, opts.Extra...)
	chain = append(chain,
		Hide{Strategy: ReferenceHidden},
		Hide{Strategy: Escaped},
		Metadata{},
	)
	return chain
}
