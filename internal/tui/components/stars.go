package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/primitives/internal/widgets/rating"
)

var (
	litStar     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("★")
	partialStar = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("⯪")
	emptyStar   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("☆")
)

// StarGlyph returns the glyph for one star.
func StarGlyph(s rating.Star) string {
	switch {
	case s.IsSelected:
		return litStar
	case s.IsPartial:
		return partialStar
	}
	return emptyStar
}

// Stars renders a row of stars.
func Stars(stars []rating.Star) string {
	glyphs := make([]string, 0, len(stars))
	for _, s := range stars {
		glyphs = append(glyphs, StarGlyph(s))
	}
	return strings.Join(glyphs, " ")
}
