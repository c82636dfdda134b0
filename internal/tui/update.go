package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/dom"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		m.frames = false
		m.env.Loop.Frame(time.Time(msg))
		cmd := m.scheduleFrame()
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Scheme):
		m.cycleScheme()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
		return m, nil
	}

	switch m.ActivePanel() {
	case PanelAccordion:
		m.handleList(msg, PanelAccordion, len(accordionItems), func(i int) {
			m.accordion.Toggle(accordionItems[i].value)
		})
		if key.Matches(msg, m.keys.Reset) {
			m.accordion.SetValue(nil)
		}
	case PanelToggles:
		m.handleList(msg, PanelToggles, len(toggleItems), func(i int) {
			m.toggles.Toggle(toggleItems[i])
		})
		if key.Matches(msg, m.keys.Reset) {
			m.toggles.SetValue(nil)
		}
	case PanelRating:
		m.handleRating(msg)
	case PanelOTP:
		m.handleOTP(msg)
		cmd := m.scheduleFrame()
		return m, cmd
	}
	return m, nil
}

func (m *Model) cycleTab(delta int) {
	all := m.tabs.Tabs()
	current := 0
	for i, tab := range all {
		if tab.IsActive() {
			current = i
			break
		}
	}
	next := (current + delta + len(all)) % len(all)
	all[next].Select()
}

func (m *Model) handleList(msg tea.KeyMsg, panel string, size int, activate func(int)) {
	cur := m.cursor[panel]
	switch {
	case key.Matches(msg, m.keys.Up):
		cur = (cur - 1 + size) % size
	case key.Matches(msg, m.keys.Down):
		cur = (cur + 1) % size
	case key.Matches(msg, m.keys.Activate):
		activate(cur)
	}
	m.cursor[panel] = cur
}

func (m *Model) handleRating(msg tea.KeyMsg) {
	step := m.rating.Step()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.rating.HandleRangeInput(formatFloat(m.rating.Value() - step))
	case key.Matches(msg, m.keys.Right):
		m.rating.HandleRangeInput(formatFloat(m.rating.Value() + step))
	case key.Matches(msg, m.keys.Reset):
		m.rating.SetValue(0)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		m.rating.HandleChange(float64(msg.Runes[0] - '0'))
	}
}

func (m *Model) handleOTP(msg tea.KeyMsg) {
	doc := m.env.Doc
	i := m.focusedField()
	if i < 0 {
		i = 0
		doc.Focus(m.fields[0])
	}
	field := m.fields[i]

	switch {
	case key.Matches(msg, m.keys.Reset):
		m.otp.Reset()
		m.session.submitted = ""
	case key.Matches(msg, m.keys.Erase):
		doc.KeyDown(field, "Backspace")
	case key.Matches(msg, m.keys.Left):
		doc.KeyDown(field, "ArrowLeft")
	case key.Matches(msg, m.keys.Right):
		doc.KeyDown(field, "ArrowRight")
	case msg.Type == tea.KeyEnter:
		doc.KeyDown(field, "Enter")
	case msg.Type == tea.KeyRunes && msg.Paste:
		doc.Dispatch(field, &dom.Event{Type: dom.EventPaste, Data: string(msg.Runes)})
	case msg.Type == tea.KeyRunes:
		doc.Dispatch(field, &dom.Event{Type: dom.EventInput, Data: string(msg.Runes)})
	}
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.frames || m.env.Loop.PendingFrames() == 0 {
		return nil
	}
	m.frames = true
	return frameCmd()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var schemeOrder = []colorscheme.Scheme{colorscheme.System, colorscheme.Light, colorscheme.Dark}

// cycleScheme moves the stored preference to the next of system, light
// and dark.
func (m Model) cycleScheme() {
	next := schemeOrder[0]
	for i, sc := range schemeOrder {
		if sc == m.scheme.Preference() {
			next = schemeOrder[(i+1)%len(schemeOrder)]
		}
	}
	if err := m.scheme.SetPreference(next); err != nil {
		m.env.Log.Component("tui").Error(err, "store color scheme preference")
	}
}
