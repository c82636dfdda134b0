package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `positioning:
  placement: top-start
  strategy: fixed
  offset: 8
  flip: true
  fallback_placements: [bottom-start, right]
widgets:
  otp:
    length: 4
  tabs:
    activation_mode: manual
headings:
  start_at: 2
logging:
  level: debug
  human_readable: true
`

	invalidYAML := `positioning:
  placement: [top]
`

	badPlacement := `positioning:
  placement: sideways
`

	badTabs := `widgets:
  tabs:
    activation_mode: hover
`

	cases := []struct {
		name      string
		contents  string
		wantError error
		assert    func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.Equal(t, "top-start", cfg.Positioning.Placement)
				require.Equal(t, []string{"bottom-start", "right"}, cfg.Positioning.FallbackPlacements)
				require.Equal(t, 4, cfg.Widgets.OTP.Length)
				require.Equal(t, "manual", cfg.Widgets.Tabs.ActivationMode)
				require.Equal(t, 2, cfg.Headings.StartAt)
				require.True(t, cfg.Logging.HumanReadable)
			},
		},
		{
			name:     "omitted sections keep defaults",
			contents: "headings:\n  start_at: 3\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 5, cfg.Widgets.Rating.Max)
				require.Equal(t, "bottom", cfg.Positioning.Placement)
				require.True(t, cfg.Positioning.Flip)
				require.Equal(t, "system", cfg.ColorScheme.Preference)
			},
		},
		{
			name:      "invalid yaml returns parse error",
			contents:  invalidYAML,
			wantError: &primerrors.ParseError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *primerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
				require.Equal(t, 2, parseErr.Line)
			},
		},
		{
			name:      "unknown placement returns validation error",
			contents:  badPlacement,
			wantError: &primerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *primerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "positioning.placement", validationErr.Field)
				require.Contains(t, validationErr.Message, "placement")
			},
		},
		{
			name:      "activation mode is restricted",
			contents:  badTabs,
			wantError: &primerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *primerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "widgets.tabs.activation_mode", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			if tc.wantError == nil {
				tc.assert(t, cfg, err)
				return
			}

			tc.assert(t, cfg, err)
			require.Error(t, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *primerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Zero(t, parseErr.Line)
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	require.Zero(t, extractLine(nil))
	require.Zero(t, extractLine(os.ErrInvalid))
	require.Equal(t, 7, extractLine(errors.New("yaml: line 7: did not find expected key")))
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
