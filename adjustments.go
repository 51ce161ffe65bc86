package restauro

import (
	"strings"

	"github.com/pkg/errors"
)

// Adjustments is the full parameter set of one restoration run.
// Every field is neutral at 0. Fields are independent of each other.
type Adjustments struct {
	Exposure          float64 `json:"exposure" yaml:"exposure"`
	Contrast          float64 `json:"contrast" yaml:"contrast"`
	Saturation        float64 `json:"saturation" yaml:"saturation"`
	Vibrance          float64 `json:"vibrance" yaml:"vibrance"`
	Warmth            float64 `json:"warmth" yaml:"warmth"`
	SepiaReduction    float64 `json:"sepiaReduction" yaml:"sepiaReduction"`
	ShadowLift        float64 `json:"shadowLift" yaml:"shadowLift"`
	HighlightRecovery float64 `json:"highlightRecovery" yaml:"highlightRecovery"`
	Clarity           float64 `json:"clarity" yaml:"clarity"`
	Denoise           float64 `json:"denoise" yaml:"denoise"`
}

// Param identifies one field of Adjustments.
type Param int

const (
	Exposure Param = iota
	Contrast
	Saturation
	Vibrance
	Warmth
	SepiaReduction
	ShadowLift
	HighlightRecovery
	Clarity
	Denoise

	numParams
)

var paramNames = [numParams]string{
	"exposure",
	"contrast",
	"saturation",
	"vibrance",
	"warmth",
	"sepiaReduction",
	"shadowLift",
	"highlightRecovery",
	"clarity",
	"denoise",
}

// String returns the parameter's field name as used in presets and files.
func (p Param) String() string {
	if p < 0 || p >= numParams {
		return "unknown"
	}
	return paramNames[p]
}

// Params returns every parameter in declaration order.
func Params() []Param {
	ps := make([]Param, numParams)
	for i := range ps {
		ps[i] = Param(i)
	}
	return ps
}

// ParseParam resolves a parameter by name, case-insensitively.
func ParseParam(name string) (Param, error) {
	for i, n := range paramNames {
		if strings.EqualFold(n, name) {
			return Param(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownParam, "%q", name)
}

// Range is the interval a UI offers for a parameter.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UI bounds. The pipeline trusts callers for everything except contrast,
// which it clamps to contrastLimits.
var paramBounds = [numParams]Range{
	Exposure:          {-40, 40},
	Contrast:          {-40, 60},
	Saturation:        {-40, 60},
	Vibrance:          {-30, 60},
	Warmth:            {-30, 40},
	SepiaReduction:    {0, 80},
	ShadowLift:        {0, 40},
	HighlightRecovery: {0, 40},
	Clarity:           {0, 60},
	Denoise:           {0, 60},
}

// Bounds returns the UI range of p.
func Bounds(p Param) Range {
	if p < 0 || p >= numParams {
		return Range{}
	}
	return paramBounds[p]
}

func (a *Adjustments) field(p Param) *float64 {
	switch p {
	case Exposure:
		return &a.Exposure
	case Contrast:
		return &a.Contrast
	case Saturation:
		return &a.Saturation
	case Vibrance:
		return &a.Vibrance
	case Warmth:
		return &a.Warmth
	case SepiaReduction:
		return &a.SepiaReduction
	case ShadowLift:
		return &a.ShadowLift
	case HighlightRecovery:
		return &a.HighlightRecovery
	case Clarity:
		return &a.Clarity
	case Denoise:
		return &a.Denoise
	}
	return nil
}

// Get returns the value of p, or 0 for an unknown parameter.
func (a Adjustments) Get(p Param) float64 {
	if f := a.field(p); f != nil {
		return *f
	}
	return 0
}

// Set stores v in p. Unknown parameters are ignored.
func (a *Adjustments) Set(p Param, v float64) {
	if f := a.field(p); f != nil {
		*f = v
	}
}

// IsNeutral reports whether every parameter is zero.
func (a Adjustments) IsNeutral() bool {
	return a == Adjustments{}
}

// Clamp returns a copy with every field bounded to its UI range.
func (a Adjustments) Clamp() Adjustments {
	for _, p := range Params() {
		r := paramBounds[p]
		a.Set(p, clampRange(a.Get(p), r.Min, r.Max))
	}
	return a
}

// Validate returns ErrOutOfRange for the first field outside its UI range.
// The pipeline itself does not require valid adjustments.
func (a Adjustments) Validate() error {
	for _, p := range Params() {
		if v, r := a.Get(p), paramBounds[p]; !r.Contains(v) {
			return errors.Wrapf(ErrOutOfRange, "%s=%g not in [%g,%g]", p, v, r.Min, r.Max)
		}
	}
	return nil
}
