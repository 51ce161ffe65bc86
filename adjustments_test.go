package restauro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParam(t *testing.T) {
	for _, p := range Params() {
		got, err := ParseParam(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseParam("SEPIAREDUCTION")
	require.NoError(t, err)
	assert.Equal(t, SepiaReduction, got)

	_, err = ParseParam("gamma")
	assert.True(t, errors.Is(err, ErrUnknownParam))
}

func TestParamString(t *testing.T) {
	assert.Equal(t, "highlightRecovery", HighlightRecovery.String())
	assert.Equal(t, "unknown", Param(-1).String())
	assert.Equal(t, "unknown", numParams.String())
	assert.Len(t, Params(), 10)
}

func TestAdjustmentsGetSet(t *testing.T) {
	var a Adjustments
	for i, p := range Params() {
		a.Set(p, float64(i+1))
	}
	assert.Equal(t, Adjustments{
		Exposure: 1, Contrast: 2, Saturation: 3, Vibrance: 4, Warmth: 5,
		SepiaReduction: 6, ShadowLift: 7, HighlightRecovery: 8, Clarity: 9, Denoise: 10,
	}, a)
	for i, p := range Params() {
		assert.Equal(t, float64(i+1), a.Get(p))
	}

	a.Set(Param(42), 99)
	assert.Equal(t, 0.0, a.Get(Param(42)))
}

func TestAdjustmentsIsNeutral(t *testing.T) {
	assert.True(t, NeutralAdjustments().IsNeutral())
	assert.False(t, BaseAdjustments().IsNeutral())
}

func TestAdjustmentsClamp(t *testing.T) {
	a := Adjustments{Exposure: -100, Contrast: 200, SepiaReduction: -5, Denoise: 30}
	c := a.Clamp()
	assert.Equal(t, -40.0, c.Exposure)
	assert.Equal(t, 60.0, c.Contrast)
	assert.Equal(t, 0.0, c.SepiaReduction)
	assert.Equal(t, 30.0, c.Denoise)
	assert.Equal(t, -100.0, a.Exposure, "Clamp returns a copy")
	assert.NoError(t, c.Validate())
}

func TestAdjustmentsValidate(t *testing.T) {
	assert.NoError(t, NeutralAdjustments().Validate())
	assert.NoError(t, BaseAdjustments().Validate())

	err := Adjustments{Warmth: 41}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "warmth=41")
}

func TestBounds(t *testing.T) {
	assert.Equal(t, Range{0, 80}, Bounds(SepiaReduction))
	assert.Equal(t, Range{-30, 40}, Bounds(Warmth))
	assert.Equal(t, Range{}, Bounds(Param(99)))
	assert.True(t, Bounds(Clarity).Contains(60))
	assert.False(t, Bounds(Clarity).Contains(-1))
}
