package config

import (
	"fmt"

	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return primerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	pos := cfg.Positioning
	if len(pos.FallbackPlacements) > 0 && !pos.Flip {
		return primerrors.NewValidationError("positioning.fallback_placements", "fallback placements require flip to be enabled", nil)
	}

	seen := make(map[string]int, len(pos.FallbackPlacements))
	for i, p := range pos.FallbackPlacements {
		if j, ok := seen[p]; ok {
			return primerrors.NewValidationError(fmt.Sprintf("positioning.fallback_placements[%d]", i), fmt.Sprintf("duplicates entry %d (%q)", j, p), nil)
		}
		seen[p] = i
	}

	if steps := float64(cfg.Widgets.Rating.Max) / cfg.Widgets.Rating.Step; steps > 1000 {
		return primerrors.NewValidationError("widgets.rating.step", fmt.Sprintf("step %g yields %.0f range positions", cfg.Widgets.Rating.Step, steps), nil)
	}

	return nil
}
