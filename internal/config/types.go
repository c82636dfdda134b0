package config

// Config is the primitives configuration document.
type Config struct {
	Positioning Positioning `yaml:"positioning"`
	Widgets     Widgets     `yaml:"widgets"`
	Headings    Headings    `yaml:"headings"`
	ColorScheme ColorScheme `yaml:"color_scheme"`
	Logging     Logging     `yaml:"logging"`
}

// Positioning holds the default anchor options.
type Positioning struct {
	Placement          string   `yaml:"placement" validate:"required,placement"`
	Strategy           string   `yaml:"strategy" validate:"required,oneof=absolute fixed"`
	Offset             float64  `yaml:"offset,omitempty"`
	Flip               bool     `yaml:"flip"`
	FallbackPlacements []string `yaml:"fallback_placements,omitempty" validate:"omitempty,dive,placement"`
	Shift              bool     `yaml:"shift"`
	Padding            float64  `yaml:"padding,omitempty" validate:"gte=0"`
}

// Widgets holds per-widget defaults.
type Widgets struct {
	OTP       OTPSettings       `yaml:"otp"`
	Rating    RatingSettings    `yaml:"rating"`
	Tabs      TabsSettings      `yaml:"tabs"`
	Accordion AccordionSettings `yaml:"accordion"`
}

type OTPSettings struct {
	Length int `yaml:"length" validate:"min=1,max=12"`
}

type RatingSettings struct {
	Max  int     `yaml:"max" validate:"min=1,max=10"`
	Step float64 `yaml:"step" validate:"gt=0"`
}

type TabsSettings struct {
	ActivationMode string `yaml:"activation_mode" validate:"required,oneof=automatic manual"`
}

type AccordionSettings struct {
	Type        string `yaml:"type" validate:"required,oneof=single multiple"`
	Collapsible bool   `yaml:"collapsible"`
}

// Headings configures the heading-level resolver.
type Headings struct {
	StartAt int `yaml:"start_at" validate:"min=1,max=6"`
}

// ColorScheme configures the stored preference.
type ColorScheme struct {
	Preference string `yaml:"preference" validate:"required,oneof=light dark system"`
	// StoragePath persists the preference to a YAML file when set.
	StoragePath string `yaml:"storage_path,omitempty"`
}

// Logging mirrors logger.Options.
type Logging struct {
	Level         string `yaml:"level" validate:"required,oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Positioning: Positioning{
			Placement: "bottom",
			Strategy:  "absolute",
			Flip:      true,
			Shift:     true,
		},
		Widgets: Widgets{
			OTP:       OTPSettings{Length: 6},
			Rating:    RatingSettings{Max: 5, Step: 1},
			Tabs:      TabsSettings{ActivationMode: "automatic"},
			Accordion: AccordionSettings{Type: "single", Collapsible: true},
		},
		Headings:    Headings{StartAt: 1},
		ColorScheme: ColorScheme{Preference: "system"},
		Logging:     Logging{Level: "info"},
	}
}
