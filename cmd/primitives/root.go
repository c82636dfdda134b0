package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at link time with -ldflags "-X main.version=...".
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

// buildVersion reports the linked version, or the module version recorded
// by the go tool for `go install` builds.
func buildVersion() string {
	v := version
	if v == "" {
		v = "dev"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s)", v, commit, date)
}

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &appContext{}

	cmd := &cobra.Command{
		Use:           "primitives",
		Short:         "Headless UI primitives: anchored positioning, portals, heading levels and widget state",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd, flags)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newPositionCmd(app))
	cmd.AddCommand(newHeadingsCmd(app))
	cmd.AddCommand(newPortalCmd(app))
	cmd.AddCommand(newColorSchemeCmd(app))
	cmd.AddCommand(newConfigCmd(app, flags))
	cmd.AddCommand(newPreviewCmd(app))

	return cmd
}
