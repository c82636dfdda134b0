package geometry

// maxResets bounds how often middleware may restart the pipeline. Flip
// restarts at most once per fallback, so this is never reached in practice.
const maxResets = 50

// State is what every middleware sees: the coordinates produced so far and
// the inputs of the computation.
type State struct {
	X, Y             float64
	InitialPlacement Placement
	Placement        Placement
	Strategy         Strategy
	Reference        Rect
	Floating         Size
	Boundary         Rect
	Data             MiddlewareData
}

// FloatingRect returns the floating box at the current coordinates.
func (s State) FloatingRect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Floating.Width, Height: s.Floating.Height}
}

// Result is returned by a middleware. X and Y replace the running
// coordinates. Data is stored under the middleware name. A non-nil Reset
// restarts the pipeline from the first middleware.
type Result struct {
	X, Y  float64
	Data  any
	Reset *Reset
}

// Reset asks the pipeline to start over, optionally with a new placement.
type Reset struct {
	Placement Placement
}

// Middleware adjusts or annotates the computed position.
type Middleware interface {
	Name() string
	Apply(State) Result
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc struct {
	ID string
	Fn func(State) Result
}

// Name implements Middleware.
func (m MiddlewareFunc) Name() string { return m.ID }

// Apply implements Middleware.
func (m MiddlewareFunc) Apply(s State) Result { return m.Fn(s) }

// Config controls a single computation.
type Config struct {
	Placement  Placement
	Strategy   Strategy
	Boundary   Rect
	Middleware []Middleware
}

// Position is the outcome of ComputePosition.
type Position struct {
	X, Y      float64
	Placement Placement
	Strategy  Strategy
	Data      MiddlewareData
}

// ComputePosition places a floating box of the given size next to reference
// and runs the middleware chain over the result in order.
func ComputePosition(reference Rect, floating Size, cfg Config) Position {
	placement := cfg.Placement
	if placement == "" {
		placement = Bottom
	}
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = Absolute
	}

	initial := placement
	x, y := coordsFor(reference, floating, placement)
	data := MiddlewareData{}
	resets := 0

	for i := 0; i < len(cfg.Middleware); i++ {
		mw := cfg.Middleware[i]
		res := mw.Apply(State{
			X:                x,
			Y:                y,
			InitialPlacement: initial,
			Placement:        placement,
			Strategy:         strategy,
			Reference:        reference,
			Floating:         floating,
			Boundary:         cfg.Boundary,
			Data:             data,
		})
		x, y = res.X, res.Y
		data = data.with(mw.Name(), res.Data)

		if res.Reset != nil && resets < maxResets {
			resets++
			if res.Reset.Placement != "" {
				placement = res.Reset.Placement
			}
			x, y = coordsFor(reference, floating, placement)
			i = -1
		}
	}

	return Position{X: x, Y: y, Placement: placement, Strategy: strategy, Data: data}
}

// coordsFor returns the unadjusted top-left corner of the floating box for
// the placement: centred on the cross axis, flush with the reference side.
func coordsFor(ref Rect, fl Size, p Placement) (float64, float64) {
	commonX := ref.X + ref.Width/2 - fl.Width/2
	commonY := ref.Y + ref.Height/2 - fl.Height/2

	var x, y float64
	side := p.Side()
	switch side {
	case SideTop:
		x, y = commonX, ref.Y-fl.Height
	case SideBottom:
		x, y = commonX, ref.Bottom()
	case SideRight:
		x, y = ref.Right(), commonY
	default:
		x, y = ref.X-fl.Width, commonY
	}

	var commonAlign float64
	if side.Vertical() {
		commonAlign = ref.Width/2 - fl.Width/2
	} else {
		commonAlign = ref.Height/2 - fl.Height/2
	}

	switch p.Alignment() {
	case AlignStart:
		if side.Vertical() {
			x -= commonAlign
		} else {
			y -= commonAlign
		}
	case AlignEnd:
		if side.Vertical() {
			x += commonAlign
		} else {
			y += commonAlign
		}
	}
	return x, y
}
