// Package geometry computes where a floating box goes relative to a
// reference box. It is pure: callers measure, this package does arithmetic.
package geometry

import (
	"fmt"
	"strings"
)

// Side is the primary side of a placement.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Vertical reports whether the side stacks the floating box above or below
// the reference, making y the main axis.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// Alignment is the optional suffix of a placement.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

// Placement is one of the twelve side/alignment combinations.
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// Placements lists every valid placement.
var Placements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// ParsePlacement validates s and returns it as a Placement.
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	for _, candidate := range Placements {
		if candidate == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown placement %q", s)
}

// Side returns the primary side.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment suffix, AlignCenter when absent.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// Opposite flips the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	return Join(p.Side().Opposite(), p.Alignment())
}

// Join builds a placement from its parts.
func Join(side Side, align Alignment) Placement {
	if align == AlignCenter {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

// Strategy is the CSS position used for the floating element.
type Strategy string

const (
	Absolute Strategy = "absolute"
	Fixed    Strategy = "fixed"
)

// ParseStrategy validates s, defaulting to Absolute when empty.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Absolute:
		return Absolute, nil
	case Fixed:
		return Fixed, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}
