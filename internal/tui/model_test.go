package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/config"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/accordion"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/tabs"
)

func newTestModel(t *testing.T, mutate ...func(*config.Config)) Model {
	t.Helper()

	cfg := config.Default()
	for _, fn := range mutate {
		fn(&cfg)
	}
	m, err := NewModel(cfg, colorscheme.Light, nil)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestNewModelInitialisesState(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	require.Equal(t, PanelAccordion, m.ActivePanel())
	require.Len(t, m.fields, 6)
	require.Equal(t, 0, m.focusedField())
	require.Equal(t, tabs.Automatic, m.tabs.Mode())
	require.Equal(t, accordion.Single, m.accordion.Type())
	require.Nil(t, m.Init())
}

func TestNewModelUsesWidgetSettings(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(c *config.Config) {
		c.Widgets.OTP.Length = 4
		c.Widgets.Rating.Max = 10
		c.Widgets.Accordion.Type = "multiple"
	})
	require.Len(t, m.fields, 4)
	require.Equal(t, 10, m.rating.Max())
	require.Equal(t, accordion.Multiple, m.accordion.Type())
}

func TestQuitDisposesWidgets(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.Quitting())
	require.True(t, m.env.Owner.Disposed())
	require.Empty(t, m.View())
}

func TestSchemeFollowsConfigAndCycles(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(c *config.Config) { c.ColorScheme.Preference = "dark" })
	require.Equal(t, colorscheme.Dark, m.Scheme())
	require.Equal(t, colorscheme.Dark, m.session.theme.scheme)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	require.Equal(t, colorscheme.System, m.scheme.Preference())
	require.Equal(t, colorscheme.Light, m.Scheme())
	require.Equal(t, colorscheme.Light, m.session.theme.scheme)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	require.Equal(t, colorscheme.Light, m.scheme.Preference())
	require.Contains(t, m.View(), "light")
}

func TestSchemePersistsToConfiguredStorage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scheme.yaml")
	m := newTestModel(t, func(c *config.Config) { c.ColorScheme.StoragePath = path })
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	require.Equal(t, colorscheme.Light, m.scheme.Preference())

	v, ok, err := colorscheme.NewFileStorage(path).Get(colorscheme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "light", v)
}

func TestThemeForUnknownSchemeIsLight(t *testing.T) {
	t.Parallel()

	require.Equal(t, colorscheme.Light, themeFor("").scheme)
	require.Equal(t, colorscheme.Dark, themeFor(colorscheme.Dark).scheme)
}
