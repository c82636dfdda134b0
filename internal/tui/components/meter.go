package components

import (
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Meter renders a value against its maximum as a bar.
type Meter struct {
	bar   progress.Model
	total float64
}

// NewMeter creates a meter for values in [0, total].
func NewMeter(total float64) Meter {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return Meter{bar: bar, total: total}
}

// View renders the bar for value.
func (m Meter) View(value float64) string {
	ratio := 0.0
	if m.total > 0 {
		ratio = math.Max(0, math.Min(1.0, value/m.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(formatValue(value) + "/" + formatValue(m.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", m.bar.ViewAs(ratio))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
