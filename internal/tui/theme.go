package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
)

// colourSet is a semantic colour slot.
//
//   - base: the accent or text colour of the slot
//   - muted: a quieter variant for secondary content
type colourSet struct {
	base  lipgloss.Color
	muted lipgloss.Color
}

type palette struct {
	primary   colourSet
	secondary colourSet
	success   colourSet
	neutral   colourSet
	surface   colourSet
}

var lightPalette = palette{
	primary:   colourSet{base: "#2563eb", muted: "#93c5fd"},
	secondary: colourSet{base: "#7c3aed", muted: "#c084fc"},
	success:   colourSet{base: "#16a34a", muted: "#86efac"},
	neutral:   colourSet{base: "#475569", muted: "#94a3b8"},
	surface:   colourSet{base: "#111827", muted: "#cbd5e1"},
}

var darkPalette = palette{
	primary:   colourSet{base: "#60a5fa", muted: "#1d4ed8"},
	secondary: colourSet{base: "#c084fc", muted: "#6b21a8"},
	success:   colourSet{base: "#4ade80", muted: "#15803d"},
	neutral:   colourSet{base: "#94a3b8", muted: "#334155"},
	surface:   colourSet{base: "#f9fafb", muted: "#1f2937"},
}

// theme holds every style the view renders with.
type theme struct {
	scheme colorscheme.Scheme

	title       lipgloss.Style
	section     lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	cursor      lipgloss.Style
	on          lipgloss.Style
	off         lipgloss.Style
	content     lipgloss.Style
	muted       lipgloss.Style
	field       lipgloss.Style
	fieldFocus  lipgloss.Style
	panel       lipgloss.Style
}

// themeFor returns the theme of an effective scheme. Anything but dark
// renders light.
func themeFor(sc colorscheme.Scheme) theme {
	p := lightPalette
	if sc == colorscheme.Dark {
		p = darkPalette
	} else {
		sc = colorscheme.Light
	}

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.neutral.muted).
		Foreground(p.surface.base).
		Padding(0, 1)

	return theme{
		scheme:      sc,
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.secondary.base),
		section:     lipgloss.NewStyle().Bold(true).Foreground(p.primary.base).MarginTop(1),
		activeTab:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.secondary.base).Padding(0, 1),
		inactiveTab: lipgloss.NewStyle().Foreground(p.neutral.base).Padding(0, 1),
		cursor:      lipgloss.NewStyle().Bold(true).Foreground(p.secondary.base),
		on:          lipgloss.NewStyle().Foreground(p.success.base),
		off:         lipgloss.NewStyle().Foreground(p.neutral.muted),
		content:     lipgloss.NewStyle().Foreground(p.surface.base).PaddingLeft(4),
		muted:       lipgloss.NewStyle().Foreground(p.neutral.base),
		field:       field,
		fieldFocus:  field.BorderForeground(p.secondary.base),
		panel:       lipgloss.NewStyle().MarginTop(1).MarginLeft(1),
	}
}
