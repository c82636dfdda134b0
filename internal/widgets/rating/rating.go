// Package rating implements a star rating: discrete selection by clicking
// a star, plus a range input for fractional and keyboard selection.
package rating

import (
	"math"
	"strconv"

	"github.com/alexisbeaulieu97/primitives/internal/coerce"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
)

const defaultMax = 5

// Options configures a Rating.
type Options struct {
	// Max is the number of stars. Defaults to 5.
	Max   int
	Value float64
	// Step is the range input granularity. Defaults to 1.
	Step     float64
	Readonly bool
	Disabled bool
	// OnChange makes the rating controlled; apply values with SetValue.
	OnChange func(float64)
}

// Rating holds a value in [0, Max].
type Rating struct {
	max      int
	step     float64
	readonly bool
	disabled bool
	name     string
	value    *state.Controlled[float64]
	log      *logger.Logger
}

// New creates a Rating.
func New(opts Options, log *logger.Logger) *Rating {
	total := opts.Max
	if total <= 0 {
		total = defaultMax
	}
	step := opts.Step
	if step <= 0 {
		step = 1
	}
	r := &Rating{
		max:      total,
		step:     step,
		readonly: opts.Readonly,
		disabled: opts.Disabled,
		name:     widgets.NewID("rating"),
		log:      log.Component("rating"),
	}
	r.value = state.NewControlled(r.clamp(opts.Value), opts.OnChange)
	return r
}

// Value returns the current value.
func (r *Rating) Value() float64 { return r.value.Value() }

// Max returns the number of stars.
func (r *Rating) Max() int { return r.max }

// Step returns the range input granularity.
func (r *Rating) Step() float64 { return r.step }

// Interactive reports whether the rating accepts input.
func (r *Rating) Interactive() bool { return !r.readonly && !r.disabled }

// SetValue applies a value supplied by the caller.
func (r *Rating) SetValue(v float64) { r.value.SyncExternal(r.clamp(v)) }

// Subscribe registers fn for value changes.
func (r *Rating) Subscribe(fn func(float64)) func() { return r.value.Subscribe(fn) }

// HandleChange selects n. When uncontrolled, selecting the current value
// clears the rating.
func (r *Rating) HandleChange(n float64) {
	if !r.Interactive() || math.IsNaN(n) {
		return
	}
	next := r.clamp(n)
	if !r.value.IsControlled() && next == r.value.Value() {
		next = 0
	}
	r.log.DebugFields("rating changed", map[string]any{"value": next})
	r.value.Set(next)
}

// HandleRangeInput applies the raw value of the range input. Input that is
// not a number leaves the rating unchanged.
func (r *Rating) HandleRangeInput(raw string) {
	n := coerce.ParseNumber(raw, math.NaN())
	if math.IsNaN(n) || !r.Interactive() {
		return
	}
	next := r.clamp(n)
	if next == r.value.Value() {
		return
	}
	r.value.Set(next)
}

func (r *Rating) clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > float64(r.max) {
		return float64(r.max)
	}
	return v
}

// PercentSelected returns how much of star (1-based) is lit for value:
// 100 when fully selected, 0 when not reached and the fractional share
// otherwise.
func PercentSelected(star int, value float64) float64 {
	n := float64(star)
	switch {
	case value >= n:
		return 100
	case value <= n-1:
		return 0
	}
	return math.Round((value-(n-1))*10000) / 100
}

// Star describes one rendered star.
type Star struct {
	Number          int
	PercentSelected float64
	IsSelected      bool
	IsPartial       bool
}

// Stars returns every star for the current value.
func (r *Rating) Stars() []Star {
	v := r.Value()
	stars := make([]Star, r.max)
	for i := range stars {
		n := i + 1
		pct := PercentSelected(n, v)
		stars[i] = Star{
			Number:          n,
			PercentSelected: pct,
			IsSelected:      pct == 100,
			IsPartial:       pct > 0 && pct < 100,
		}
	}
	return stars
}

// Attrs returns the root attributes.
func (r *Rating) Attrs() widgets.Attrs {
	return widgets.Attrs{
		"role":       "group",
		"data-value": formatNumber(r.Value()),
		"data-total": strconv.Itoa(r.max),
	}.Flag(widgets.AttrReadonly, r.readonly).Flag(widgets.AttrDisabled, r.disabled)
}

// StarAttrs returns the attributes of the radio input for star.
func (r *Rating) StarAttrs(star int) widgets.Attrs {
	pct := PercentSelected(star, r.Value())
	attrs := widgets.Attrs{
		"type":                      "radio",
		"name":                      r.name,
		"value":                     strconv.Itoa(star),
		"aria-label":                labelFor(star),
		widgets.AttrNumber:          strconv.Itoa(star),
		widgets.AttrPercentSelected: formatNumber(pct),
		widgets.AttrState:           starState(pct),
	}
	if float64(star) == r.Value() {
		attrs["checked"] = ""
	}
	if r.readonly {
		attrs["readonly"] = ""
	}
	if r.disabled {
		attrs["disabled"] = ""
	}
	return attrs.Flag(widgets.AttrReadonly, r.readonly).Flag(widgets.AttrDisabled, r.disabled)
}

// RangeAttrs returns the attributes of the auxiliary range input.
func (r *Rating) RangeAttrs() widgets.Attrs {
	attrs := widgets.Attrs{
		"type":  "range",
		"name":  r.name + "-range",
		"min":   "0",
		"max":   strconv.Itoa(r.max),
		"step":  formatNumber(r.step),
		"value": formatNumber(r.Value()),
	}
	if !r.Interactive() {
		attrs["disabled"] = ""
	}
	return attrs
}

func starState(pct float64) string {
	switch {
	case pct == 100:
		return "selected"
	case pct > 0:
		return "partial"
	}
	return "unselected"
}

func labelFor(star int) string {
	if star == 1 {
		return "1 star"
	}
	return strconv.Itoa(star) + " stars"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
