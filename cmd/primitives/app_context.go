package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/primitives/internal/config"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
)

// appContext bundles what every command needs once flags are parsed.
type appContext struct {
	cfg config.Config
	log *logger.Logger
}

func (a *appContext) load(cmd *cobra.Command, flags *rootFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		parsed, err := config.ParseConfig(flags.configPath)
		if err != nil {
			return err
		}
		cfg = *parsed
	}

	stderr := cmd.ErrOrStderr()
	opts := cfg.Logging.LoggerOptions(stderr)
	if flags.verbose {
		opts.Level = "debug"
	}
	opts.HumanReadable = opts.HumanReadable || isTerminal(stderr)

	log, err := logger.New(opts)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log.Component("cli")
	return nil
}

func isTerminal(v any) bool {
	if file, ok := v.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
