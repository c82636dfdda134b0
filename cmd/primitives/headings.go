package main

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/heading"
)

const headingSelector = "//h1|//h2|//h3|//h4|//h5|//h6"

type headingsOptions struct {
	StartAt  int
	Selector string
	Retag    bool
}

func newHeadingsCmd(app *appContext) *cobra.Command {
	opts := headingsOptions{}

	cmd := &cobra.Command{
		Use:   "headings [file]",
		Short: "Resolve heading levels from the section structure of an HTML document",
		Long: `Resolve the level each heading should have from the sectioning elements
around it. Reads stdin when no file is given. With --retag the document is
printed with every heading renamed to its resolved level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolverOpts := app.cfg.Headings.ResolverOptions()
			if cmd.Flags().Changed("start-at") {
				resolverOpts.StartAt = opts.StartAt
			}

			doc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			nodes, err := dom.QueryAll(doc.Root, opts.Selector)
			if err != nil {
				return fmt.Errorf("invalid selector %q: %w", opts.Selector, err)
			}

			resolver := heading.NewResolver(resolverOpts, app.log)
			out := cmd.OutOrStdout()
			for _, n := range nodes {
				before := dom.Tag(n)
				// Headings are retagged in document order so later ones see
				// the resolved levels of earlier ones.
				level, err := resolver.Retag(n)
				if err != nil {
					return err
				}
				if !opts.Retag {
					fmt.Fprintf(out, "%s -> %s  %s\n", before, heading.Tag(level), describe(n))
				}
			}
			app.log.DebugFields("headings resolved", map[string]any{"count": len(nodes)})

			if opts.Retag {
				fmt.Fprintln(out, dom.Render(doc.Root))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.StartAt, "start-at", 1, "Level given to headings outside any section (1-6)")
	cmd.Flags().StringVar(&opts.Selector, "selector", headingSelector, "XPath or #id selecting the headings to resolve")
	cmd.Flags().BoolVar(&opts.Retag, "retag", false, "Print the document with headings renamed to their levels")

	return cmd
}

func describe(n *dom.Node) string {
	text := strings.Join(strings.Fields(htmlquery.InnerText(n)), " ")
	if id, ok := dom.Attr(n, "id"); ok && id != "" {
		return fmt.Sprintf("#%s %q", id, text)
	}
	return fmt.Sprintf("%q", text)
}
