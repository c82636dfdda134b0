package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/primitives/internal/config"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
)

type positionOptions struct {
	Reference string
	Floating  string
	Boundary  string
	Arrow     string
	Output    string

	Placement string
	Strategy  string
	Offset    float64
	Flip      bool
	Fallbacks []string
	Shift     bool
	Padding   float64
}

type positionReport struct {
	X         float64      `yaml:"x"`
	Y         float64      `yaml:"y"`
	Placement string       `yaml:"placement"`
	Strategy  string       `yaml:"strategy"`
	Hidden    hiddenReport `yaml:"hide"`
	Arrow     *arrowReport `yaml:"arrow,omitempty"`
}

type hiddenReport struct {
	ReferenceHidden bool `yaml:"reference_hidden"`
	Escaped         bool `yaml:"escaped"`
}

type arrowReport struct {
	X          *float64 `yaml:"x,omitempty"`
	Y          *float64 `yaml:"y,omitempty"`
	StaticSide string   `yaml:"static_side"`
}

func newPositionCmd(app *appContext) *cobra.Command {
	opts := positionOptions{}

	cmd := &cobra.Command{
		Use:   "position",
		Short: "Compute where a floating box goes next to a reference box",
		Example: `  primitives position --reference 10,10,40,20 --floating 100,50
  primitives position --reference 10,570,40,20 --floating 100,50 --boundary 0,0,800,600 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := app.cfg.Positioning
			f := cmd.Flags()
			if f.Changed("placement") {
				pos.Placement = opts.Placement
			}
			if f.Changed("strategy") {
				pos.Strategy = opts.Strategy
			}
			if f.Changed("offset") {
				pos.Offset = opts.Offset
			}
			if f.Changed("flip") {
				pos.Flip = opts.Flip
			}
			if f.Changed("fallback") {
				pos.FallbackPlacements = opts.Fallbacks
			}
			if f.Changed("shift") {
				pos.Shift = opts.Shift
			}
			if f.Changed("padding") {
				pos.Padding = opts.Padding
			}

			report, err := runPosition(pos, opts)
			if err != nil {
				return err
			}
			app.log.DebugFields("position computed", map[string]any{"placement": report.Placement, "x": report.X, "y": report.Y})
			return writePosition(cmd, opts.Output, report)
		},
	}

	cmd.Flags().StringVar(&opts.Reference, "reference", "", "Reference box as x,y,width,height")
	cmd.Flags().StringVar(&opts.Floating, "floating", "", "Floating box size as width,height")
	cmd.Flags().StringVar(&opts.Boundary, "boundary", "", "Clipping boundary as x,y,width,height")
	cmd.Flags().StringVar(&opts.Arrow, "arrow", "", "Arrow size as width,height")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format: text or yaml")
	cmd.Flags().StringVar(&opts.Placement, "placement", "", "Preferred placement, e.g. bottom-start")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "Positioning strategy: absolute or fixed")
	cmd.Flags().Float64Var(&opts.Offset, "offset", 0, "Distance from the reference along the main axis")
	cmd.Flags().BoolVar(&opts.Flip, "flip", true, "Flip to a fallback placement on overflow")
	cmd.Flags().StringSliceVar(&opts.Fallbacks, "fallback", nil, "Fallback placements tried in order when flipping")
	cmd.Flags().BoolVar(&opts.Shift, "shift", true, "Shift along the cross axis to stay inside the boundary")
	cmd.Flags().Float64Var(&opts.Padding, "padding", 0, "Padding kept from the boundary by flip and shift")
	cmd.MarkFlagRequired("reference") //nolint:errcheck
	cmd.MarkFlagRequired("floating")  //nolint:errcheck

	return cmd
}

func runPosition(pos config.Positioning, opts positionOptions) (positionReport, error) {
	cfg := config.Default()
	cfg.Positioning = pos
	if err := config.ValidateConfig(&cfg); err != nil {
		return positionReport{}, err
	}

	anchorOpts, err := pos.AnchorOptions()
	if err != nil {
		return positionReport{}, err
	}

	ref, err := parseRect(opts.Reference)
	if err != nil {
		return positionReport{}, fmt.Errorf("--reference: %w", err)
	}
	size, err := parseSize(opts.Floating)
	if err != nil {
		return positionReport{}, fmt.Errorf("--floating: %w", err)
	}
	var boundary geometry.Rect
	if opts.Boundary != "" {
		if boundary, err = parseRect(opts.Boundary); err != nil {
			return positionReport{}, fmt.Errorf("--boundary: %w", err)
		}
	}

	var extra []geometry.Middleware
	if opts.Arrow != "" {
		arrow, err := parseSize(opts.Arrow)
		if err != nil {
			return positionReport{}, fmt.Errorf("--arrow: %w", err)
		}
		extra = append(extra, geometry.Arrow{Size: arrow})
	}

	result := geometry.ComputePosition(ref, size, geometry.Config{
		Placement: anchorOpts.Placement,
		Strategy:  anchorOpts.Strategy,
		Boundary:  boundary,
		Middleware: geometry.Chain(geometry.ChainOptions{
			Offset: anchorOpts.Offset,
			Flip:   anchorOpts.Flip,
			Shift:  anchorOpts.Shift,
			Extra:  extra,
		}),
	})

	report := positionReport{
		X:         result.X,
		Y:         result.Y,
		Placement: string(result.Placement),
		Strategy:  string(result.Strategy),
	}
	if h := result.Data.Hide; h != nil {
		report.Hidden = hiddenReport{ReferenceHidden: h.ReferenceHidden, Escaped: h.Escaped}
	}
	if a := result.Data.Arrow; a != nil {
		report.Arrow = &arrowReport{X: a.X, Y: a.Y, StaticSide: string(a.StaticSide)}
	}
	return report, nil
}

func writePosition(cmd *cobra.Command, format string, report positionReport) error {
	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		fmt.Fprintf(out, "placement: %s\nx: %g\ny: %g\n", report.Placement, report.X, report.Y)
		if report.Hidden.ReferenceHidden {
			fmt.Fprintln(out, "reference hidden")
		}
		if report.Hidden.Escaped {
			fmt.Fprintln(out, "escaped boundary")
		}
		if a := report.Arrow; a != nil {
			if a.X != nil {
				fmt.Fprintf(out, "arrow: x=%g (%s edge)\n", *a.X, a.StaticSide)
			}
			if a.Y != nil {
				fmt.Fprintf(out, "arrow: y=%g (%s edge)\n", *a.Y, a.StaticSide)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
