// Package tui is an interactive terminal playground that drives the widget
// state machines from the keyboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/config"
	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/accordion"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/otp"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/rating"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/tabs"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/togglegroup"
)

// Panel values double as tab values.
const (
	PanelAccordion = "accordion"
	PanelRating    = "rating"
	PanelToggles   = "toggles"
	PanelOTP       = "otp"
)

var panels = []string{PanelAccordion, PanelRating, PanelToggles, PanelOTP}

// accordionItem is one section of the demo accordion.
type accordionItem struct {
	value string
	title string
	body  string
}

var accordionItems = []accordionItem{
	{value: "positioning", title: "Positioning", body: "Offset, flip and shift keep floating content next to its anchor."},
	{value: "portals", title: "Portals", body: "Content mounts into the nearest named target above its origin."},
	{value: "headings", title: "Headings", body: "Levels follow the section structure around each heading."},
}

var toggleItems = []string{"bold", "italic", "underline"}

type frameMsg time.Time

// session holds what the widget callbacks write, so copies of Model share it.
type session struct {
	lastChange otp.Change
	submitted  string
	theme      theme
}

// Model is the Bubbletea state for the playground.
type Model struct {
	env    widgets.Env
	keys   keyMap
	help   help.Model
	width  int
	frames bool

	tabs      *tabs.Tabs
	accordion *accordion.Accordion
	rating    *rating.Rating
	toggles   *togglegroup.Multi
	otp       *otp.OTP
	fields    []*html.Node

	scheme   *colorscheme.Manager
	cursor   map[string]int
	session  *session
	quitting bool
}

// NewModel builds the playground from cfg. Widget defaults come from
// cfg.Widgets and the colours follow cfg.ColorScheme, with system as the
// scheme the terminal reports.
func NewModel(cfg config.Config, system colorscheme.Scheme, log *logger.Logger) (Model, error) {
	length := cfg.Widgets.OTP.Length
	var markup strings.Builder
	markup.WriteString(`<div id="otp">`)
	for i := 0; i < length; i++ {
		fmt.Fprintf(&markup, `<input id="otp-%d">`, i)
	}
	markup.WriteString(`</div>`)

	doc, err := dom.Parse(markup.String())
	if err != nil {
		return Model{}, fmt.Errorf("build playground document: %w", err)
	}
	env := widgets.Env{Doc: doc, Loop: loop.New(log), Owner: loop.NewOwner(), Log: log}

	m := Model{
		env:     env,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80,
		cursor:  make(map[string]int),
		session: &session{},
	}

	m.scheme, err = colorscheme.New(cfg.ColorScheme.Storage(), cfg.ColorScheme.ManagerOptions(system), log)
	if err != nil {
		return Model{}, err
	}
	s := m.session
	s.theme = themeFor(m.scheme.Current())
	env.Owner.OnCleanup(m.scheme.OnChange(func(sc colorscheme.Scheme) { s.theme = themeFor(sc) }))

	m.tabs, err = tabs.New(env, tabs.Options{ActivationMode: cfg.Widgets.TabsMode()})
	if err != nil {
		return Model{}, err
	}
	for _, p := range panels {
		if _, err := m.tabs.Tab(p, false); err != nil {
			return Model{}, err
		}
	}

	m.accordion, err = accordion.New(accordion.Options{
		Type:        cfg.Widgets.AccordionType(),
		Collapsible: cfg.Widgets.Accordion.Collapsible,
	}, log)
	if err != nil {
		return Model{}, err
	}
	for _, item := range accordionItems {
		m.accordion.Item(item.value, false)
	}

	m.rating = rating.New(rating.Options{Max: cfg.Widgets.Rating.Max, Step: cfg.Widgets.Rating.Step}, log)
	m.toggles = togglegroup.NewMulti(togglegroup.MultiOptions{}, log)

	m.otp = otp.New(env, otp.Options{
		Length:   length,
		OnChange: func(c otp.Change) { s.lastChange = c },
		OnSubmit: func(code string) { s.submitted = code },
	})
	for i := 0; i < length; i++ {
		field, err := dom.Query(doc.Root, fmt.Sprintf("#otp-%d", i))
		if err != nil {
			return Model{}, err
		}
		m.fields = append(m.fields, field)
	}
	if err := m.otp.BindFields(m.fields); err != nil {
		return Model{}, err
	}
	doc.Focus(m.fields[0])

	return m, nil
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// ActivePanel returns the selected panel.
func (m Model) ActivePanel() string {
	return m.tabs.Active()
}

// Scheme returns the effective color scheme.
func (m Model) Scheme() colorscheme.Scheme {
	return m.scheme.Current()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Close releases the widgets.
func (m Model) Close() {
	m.env.Owner.Dispose()
}

func (m Model) focusedField() int {
	active := m.env.Doc.ActiveElement()
	for i, f := range m.fields {
		if f == active {
			return i
		}
	}
	return -1
}

func attrValue(n *html.Node) string {
	v, _ := dom.Attr(n, "value")
	return v
}

func frameCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return frameMsg(t) })
}
