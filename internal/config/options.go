package config

import (
	"io"

	"github.com/alexisbeaulieu97/primitives/internal/anchor"
	"github.com/alexisbeaulieu97/primitives/internal/colorscheme"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
	"github.com/alexisbeaulieu97/primitives/internal/heading"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/accordion"
	"github.com/alexisbeaulieu97/primitives/internal/widgets/tabs"
)

// AnchorOptions converts the positioning section.
func (p Positioning) AnchorOptions() (anchor.Options, error) {
	placement, err := geometry.ParsePlacement(p.Placement)
	if err != nil {
		return anchor.Options{}, err
	}
	strategy, err := geometry.ParseStrategy(p.Strategy)
	if err != nil {
		return anchor.Options{}, err
	}

	opts := anchor.Options{Placement: placement, Strategy: strategy}
	if p.Offset != 0 {
		opts.Offset = &geometry.Offset{MainAxis: p.Offset}
	}
	if p.Flip {
		flip := &geometry.Flip{Padding: p.Padding}
		for _, fp := range p.FallbackPlacements {
			parsed, err := geometry.ParsePlacement(fp)
			if err != nil {
				return anchor.Options{}, err
			}
			flip.FallbackPlacements = append(flip.FallbackPlacements, parsed)
		}
		opts.Flip = flip
	}
	if p.Shift {
		opts.Shift = &geometry.Shift{Padding: p.Padding}
	}
	return opts, nil
}

// TabsMode returns the configured activation mode.
func (w Widgets) TabsMode() tabs.ActivationMode {
	return tabs.ActivationMode(w.Tabs.ActivationMode)
}

// AccordionType returns the configured accordion type.
func (w Widgets) AccordionType() accordion.Type {
	return accordion.Type(w.Accordion.Type)
}

// ResolverOptions converts the headings section.
func (h Headings) ResolverOptions() heading.Options {
	return heading.Options{StartAt: h.StartAt}
}

// Storage returns file storage when a path is configured and in-memory
// storage otherwise.
func (c ColorScheme) Storage() colorscheme.Storage {
	if c.StoragePath == "" {
		return colorscheme.NewMemoryStorage()
	}
	return colorscheme.NewFileStorage(c.StoragePath)
}

// ManagerOptions seeds the manager with the configured preference and the
// scheme the host reports.
func (c ColorScheme) ManagerOptions(system colorscheme.Scheme) colorscheme.Options {
	return colorscheme.Options{SystemScheme: system, Default: colorscheme.Scheme(c.Preference)}
}

// LoggerOptions converts the logging section.
func (l Logging) LoggerOptions(w io.Writer) logger.Options {
	return logger.Options{Level: l.Level, HumanReadable: l.HumanReadable, Writer: w}
}
