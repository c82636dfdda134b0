package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/tui"
)

var errNoTerminal = errors.New("preview needs an interactive terminal")

func newPreviewCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Launch the interactive widget playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) || !isTerminal(cmd.InOrStdin()) {
				return errNoTerminal
			}

			system := colorscheme.Light
			if lipgloss.HasDarkBackground() {
				system = colorscheme.Dark
			}
			m, err := tui.NewModel(app.cfg, system, app.log)
			if err != nil {
				return err
			}
			defer m.Close()

			app.log.Info("launching playground")
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run playground: %w", err)
			}
			return nil
		},
	}

	return cmd
}
