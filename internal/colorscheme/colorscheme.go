// Package colorscheme tracks the user's light/dark preference, persists it
// and mirrors the effective scheme onto the document.
package colorscheme

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/state"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

// StorageKey is where the preference is persisted.
const StorageKey = "primitives/color-scheme#local-preference"

// StyleProperty is the CSS property Sync writes.
const StyleProperty = "color-scheme"

// Scheme is a color scheme preference.
type Scheme string

const (
	Light  Scheme = "light"
	Dark   Scheme = "dark"
	System Scheme = "system"
)

// Parse reads a scheme name case-insensitively.
func Parse(s string) (Scheme, bool) {
	switch sc := Scheme(strings.ToLower(strings.TrimSpace(s))); sc {
	case Light, Dark, System:
		return sc, true
	}
	return "", false
}

// Options configures a Manager.
type Options struct {
	// SystemScheme is what the host reports as its preference. Defaults to
	// light.
	SystemScheme Scheme
	// Default is the preference used when storage holds none. Defaults to
	// System.
	Default Scheme
}

// Manager resolves the effective scheme from the stored preference and the
// system preference.
type Manager struct {
	storage Storage
	pref    Scheme
	system  Scheme
	current *state.Cell[Scheme]
	log     *logger.Logger
}

// New loads the stored preference. A missing or unreadable value means
// opts.Default.
func New(storage Storage, opts Options, log *logger.Logger) (*Manager, error) {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	system := opts.SystemScheme
	if system != Dark {
		system = Light
	}
	pref := System
	if sc, ok := Parse(string(opts.Default)); ok {
		pref = sc
	}
	m := &Manager{storage: storage, pref: pref, system: system, log: log.Component("colorscheme")}

	raw, ok, err := storage.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load color scheme preference: %w", err)
	}
	if ok {
		if sc, valid := Parse(raw); valid {
			m.pref = sc
		} else {
			m.log.Warn(fmt.Sprintf("ignoring stored color scheme %q", raw))
		}
	}
	m.current = state.NewCell(m.resolve())
	return m, nil
}

// Preference returns the stored preference.
func (m *Manager) Preference() Scheme { return m.pref }

// Current returns the effective scheme, light or dark.
func (m *Manager) Current() Scheme { return m.current.Get() }

// IsDark reports whether the effective scheme is dark.
func (m *Manager) IsDark() bool { return m.Current() == Dark }

// SetPreference stores sc. System removes the stored value.
func (m *Manager) SetPreference(sc Scheme) error {
	if _, ok := Parse(string(sc)); !ok {
		return primerrors.NewValidationError("color_scheme", fmt.Sprintf("unknown color scheme %q", sc), nil)
	}
	var err error
	if sc == System {
		err = m.storage.Delete(StorageKey)
	} else {
		err = m.storage.Set(StorageKey, string(sc))
	}
	if err != nil {
		return fmt.Errorf("store color scheme preference: %w", err)
	}
	m.pref = sc
	m.update()
	return nil
}

// SetSystemScheme records a change of the host preference.
func (m *Manager) SetSystemScheme(sc Scheme) {
	if sc != Dark {
		sc = Light
	}
	m.system = sc
	m.update()
}

// OnChange registers fn for changes of the effective scheme.
func (m *Manager) OnChange(fn func(Scheme)) func() {
	return m.current.Subscribe(fn)
}

// Sync writes the effective scheme to the color-scheme style of el, or of
// the <html> element when el is nil, and keeps it current until the
// returned function runs.
func (m *Manager) Sync(doc *dom.Document, el *html.Node) (func(), error) {
	if el == nil {
		el = doc.HTMLElement()
	}
	if err := primerrors.Assert(dom.IsElement(el), "colorscheme", "no element to sync", "pass an element or a document with an <html> root"); err != nil {
		return nil, err
	}
	dom.SetStyle(el, StyleProperty, string(m.Current()))
	return m.OnChange(func(sc Scheme) {
		dom.SetStyle(el, StyleProperty, string(sc))
	}), nil
}

func (m *Manager) resolve() Scheme {
	if m.pref == System {
		return m.system
	}
	return m.pref
}

func (m *Manager) update() {
	next := m.resolve()
	if next == m.current.Get() {
		return
	}
	m.log.DebugFields("color scheme changed", map[string]any{"scheme": string(next)})
	m.current.Set(next)
}
