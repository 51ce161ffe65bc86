package restauro

import (
	"strings"

	"github.com/pkg/errors"
)

// base is the balanced starting point every bundled preset is built on.
var base = Adjustments{
	Exposure:          6,
	Contrast:          12,
	Saturation:        16,
	Vibrance:          18,
	Warmth:            4,
	SepiaReduction:    30,
	ShadowLift:        12,
	HighlightRecovery: 8,
	Clarity:           14,
	Denoise:           18,
}

// BaseAdjustments returns the balanced set the bundled presets are built on.
func BaseAdjustments() Adjustments {
	return base
}

// NeutralAdjustments returns the all-zero set that leaves a photo untouched.
// Use it to reset to the original.
func NeutralAdjustments() Adjustments {
	return Adjustments{}
}

// Preset is a named, pre-filled Adjustments value. Applying a preset
// replaces the whole parameter set; it never merges.
type Preset struct {
	Name        string
	Description string
	Adjustments Adjustments
}

// NeutralPreset is the reset-to-original preset. It is not part of Presets.
const NeutralPreset = "neutral"

func presetFromBase(edit func(a *Adjustments)) Adjustments {
	a := base
	edit(&a)
	return a
}

var presets = []Preset{
	{
		Name:        "auto",
		Description: "Balanced correction for typical faded prints",
		Adjustments: base,
	},
	{
		Name:        "cores",
		Description: "Revives washed-out colour",
		Adjustments: presetFromBase(func(a *Adjustments) {
			a.Saturation = 24
			a.Vibrance = 26
			a.Warmth = 12
			a.ShadowLift = 8
			a.HighlightRecovery = 6
		}),
	},
	{
		Name:        "detalhes",
		Description: "Brings out texture and edges",
		Adjustments: presetFromBase(func(a *Adjustments) {
			a.Clarity = 26
			a.Contrast = 18
			a.Denoise = 10
			a.ShadowLift = 10
		}),
	},
	{
		Name:        "suave",
		Description: "Gentle cleanup for grainy or noisy scans",
		Adjustments: presetFromBase(func(a *Adjustments) {
			a.Exposure = 4
			a.Contrast = 6
			a.Clarity = 6
			a.Denoise = 32
			a.Warmth = 2
			a.Vibrance = 12
		}),
	},
}

// Presets returns the bundled presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the names accepted by LookupPreset, neutral last.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return append(names, NeutralPreset)
}

// LookupPreset finds a preset by name, case-insensitively. "neutral"
// resolves to the all-zero set.
func LookupPreset(name string) (Preset, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, NeutralPreset) {
		return Preset{Name: NeutralPreset, Description: "Original photo, no correction", Adjustments: NeutralAdjustments()}, nil
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, errors.Wrapf(ErrUnknownPreset, "%q", name)
}
