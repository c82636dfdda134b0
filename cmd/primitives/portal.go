package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/portal"
)

type portalOptions struct {
	Origin string
	Name   string
	Mount  string
}

func newPortalCmd(app *appContext) *cobra.Command {
	opts := portalOptions{}

	cmd := &cobra.Command{
		Use:   "portal [file]",
		Short: "Find the portal target nearest to an element, optionally mounting content there",
		Long: `Walk up from the origin element to the closest ancestor scope holding a
[data-portal-name] target with the given name. With --mount the selected
content is moved into that target and the resulting document is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			origin, err := queryRequired(doc, opts.Origin, "origin")
			if err != nil {
				return err
			}

			registry := portal.NewRegistry(app.log)
			out := cmd.OutOrStdout()
			if opts.Mount == "" {
				target, err := registry.Resolve(origin, opts.Name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, describeElement(target))
				return nil
			}

			content, err := queryRequired(doc, opts.Mount, "content")
			if err != nil {
				return err
			}
			m, err := registry.MountNearest(origin, opts.Name, content)
			if err != nil {
				return err
			}
			app.log.DebugFields("content mounted", map[string]any{"target": describeElement(m.Target())})
			fmt.Fprintln(out, dom.Render(doc.Root))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Origin, "origin", "", "XPath or #id of the element the lookup starts from")
	cmd.Flags().StringVar(&opts.Name, "name", portal.Popover, "Target name: popover, tooltip, modal or a custom name")
	cmd.Flags().StringVar(&opts.Mount, "mount", "", "XPath or #id of content to move into the target")
	cmd.MarkFlagRequired("origin") //nolint:errcheck

	return cmd
}

func describeElement(n *dom.Node) string {
	desc := "<" + dom.Tag(n)
	if id, ok := dom.Attr(n, "id"); ok {
		desc += fmt.Sprintf(" id=%q", id)
	}
	if name, ok := dom.Attr(n, portal.AttrName); ok {
		desc += fmt.Sprintf(" %s=%q", portal.AttrName, name)
	}
	return desc + ">"
}
