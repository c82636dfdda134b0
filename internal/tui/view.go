package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/primitives/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := m.session.theme

	sections := []string{
		t.title.Render("primitives • playground") + " " + t.muted.Render(string(t.scheme)),
		m.renderTabs(),
	}

	var body string
	switch m.ActivePanel() {
	case PanelAccordion:
		body = m.renderAccordion()
	case PanelRating:
		body = m.renderRating()
	case PanelToggles:
		body = m.renderToggles()
	case PanelOTP:
		body = m.renderOTP()
	}
	sections = append(sections, t.section.Render(m.ActivePanel()), t.panel.Render(body), "", m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	t := m.session.theme
	labels := make([]string, 0, len(panels))
	for _, tab := range m.tabs.Tabs() {
		if tab.IsActive() {
			labels = append(labels, t.activeTab.Render(tab.Value()))
			continue
		}
		labels = append(labels, t.inactiveTab.Render(tab.Value()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (m Model) renderAccordion() string {
	t := m.session.theme
	var lines []string
	for i, item := range accordionItems {
		marker := "▸"
		if m.accordion.IsExpanded(item.value) {
			marker = "▾"
		}
		lines = append(lines, m.row(PanelAccordion, i, fmt.Sprintf("%s %s", marker, item.title)))
		if m.accordion.IsExpanded(item.value) {
			lines = append(lines, t.content.Render(item.body))
		}
	}
	lines = append(lines, t.muted.Render(fmt.Sprintf("type: %s", m.accordion.Type())))
	return strings.Join(lines, "\n")
}

func (m Model) renderRating() string {
	t := m.session.theme
	meter := components.NewMeter(float64(m.rating.Max()))
	return strings.Join([]string{
		components.Stars(m.rating.Stars()),
		meter.View(m.rating.Value()),
		t.muted.Render("1-9 select a star (again to clear), ←/→ adjust by step"),
	}, "\n")
}

func (m Model) renderToggles() string {
	t := m.session.theme
	var lines []string
	for i, item := range toggleItems {
		state := t.off.Render("off")
		if m.toggles.IsPressed(item) {
			state = t.on.Render("on ")
		}
		lines = append(lines, m.row(PanelToggles, i, fmt.Sprintf("%s %s", state, item)))
	}
	pressed := m.toggles.Value().Values()
	lines = append(lines, t.muted.Render(fmt.Sprintf("pressed: [%s]", strings.Join(pressed, ", "))))
	return strings.Join(lines, "\n")
}

func (m Model) renderOTP() string {
	t := m.session.theme
	focused := m.focusedField()
	boxes := make([]string, 0, len(m.fields))
	for i, f := range m.fields {
		style := t.field
		if i == focused {
			style = t.fieldFocus
		}
		v := attrValue(f)
		if v == "" {
			v = "·"
		}
		boxes = append(boxes, style.Render(v))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, boxes...)}
	change := m.session.lastChange
	status := fmt.Sprintf("code: %q complete: %t", change.Code, change.Complete)
	lines = append(lines, t.muted.Render(status))
	if m.session.submitted != "" {
		lines = append(lines, t.on.Render("submitted "+m.session.submitted))
	}
	return strings.Join(lines, "\n")
}

func (m Model) row(panel string, i int, text string) string {
	t := m.session.theme
	if m.cursor[panel] == i {
		return t.cursor.Render("› " + text)
	}
	return "  " + text
}
