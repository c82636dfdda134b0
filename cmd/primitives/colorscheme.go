package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/dom"
)

func newColorSchemeCmd(app *appContext) *cobra.Command {
	var system string

	manager := func() (*colorscheme.Manager, error) {
		sys, ok := colorscheme.Parse(system)
		if !ok || sys == colorscheme.System {
			return nil, fmt.Errorf("--system must be light or dark, got %q", system)
		}
		return colorscheme.New(app.cfg.ColorScheme.Storage(), app.cfg.ColorScheme.ManagerOptions(sys), app.log)
	}

	cmd := &cobra.Command{
		Use:   "color-scheme",
		Short: "Show the stored color scheme preference and the effective scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "preference: %s\ncurrent: %s\n", m.Preference(), m.Current())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&system, "system", "light", "Scheme the host reports: light or dark")

	set := &cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Store a color scheme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, ok := colorscheme.Parse(args[0])
			if !ok {
				return fmt.Errorf("unknown color scheme %q", args[0])
			}
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.SetPreference(sc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "preference: %s\ncurrent: %s\n", m.Preference(), m.Current())
			return nil
		},
	}

	var selector string
	syncCmd := &cobra.Command{
		Use:   "sync [file]",
		Short: "Write the effective scheme to the color-scheme style of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			doc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			var el *dom.Node
			if selector != "" {
				if el, err = queryRequired(doc, selector, "element"); err != nil {
					return err
				}
			}
			stop, err := m.Sync(doc, el)
			if err != nil {
				return err
			}
			defer stop()
			fmt.Fprintln(cmd.OutOrStdout(), dom.Render(doc.Root))
			return nil
		},
	}
	syncCmd.Flags().StringVar(&selector, "element", "", "XPath or #id of the element to style instead of <html>")

	cmd.AddCommand(set, syncCmd)
	return cmd
}
