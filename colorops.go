package restauro

// Per-pixel colour operators. Every function takes channel values in
// [0,255] and returns new values clamped to [0,255].

// BT.709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Shadow/highlight dead zone. Pixels whose luminance lies in
// [shadowKnee, highlightKnee] are left alone by ShadowHighlight.
const (
	shadowKnee     = 118.0
	highlightKnee  = 170.0
	shadowGain     = 0.6
	highlightGain  = 0.7
	highlightRange = 255.0 - highlightKnee
)

// Clamp truncates v to [0,255].
func Clamp(v float64) float64 {
	return clampRange(v, 0, 255)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Luminance returns the BT.709 weighted brightness of an RGB triple.
func Luminance(r, g, b float64) float64 {
	return lumaR*r + lumaG*g + lumaB*b
}

// SaturateVibrance scales each channel's distance from the pixel's
// luminance by (1+sat) and adds a vibrance term weighted by (1-gray/255),
// so vibrance fades out as the pixel approaches white.
// sat and vib are fractions (saturation/100, vibrance/100).
func SaturateVibrance(r, g, b, sat, vib float64) (float64, float64, float64) {
	if sat == 0 && vib == 0 {
		return r, g, b
	}
	gray := Luminance(r, g, b)
	vibWeight := vib * (1 - gray/255)
	mix := func(c float64) float64 {
		d := c - gray
		return Clamp(gray + d*(1+sat) + d*vibWeight)
	}
	return mix(r), mix(g), mix(b)
}

// ShadowHighlight lifts dark pixels and pulls down bright ones by a uniform
// offset that grows linearly with the distance from the dead zone.
func ShadowHighlight(r, g, b, shadowLift, highlightRecovery float64) (float64, float64, float64) {
	gray := Luminance(r, g, b)
	if gray < shadowKnee && shadowLift > 0 {
		boost := shadowLift * ((shadowKnee - gray) / shadowKnee) * shadowGain
		r, g, b = r+boost, g+boost, b+boost
	}
	if gray > highlightKnee && highlightRecovery > 0 {
		reduction := highlightRecovery * ((gray - highlightKnee) / highlightRange) * highlightGain
		r, g, b = r-reduction, g-reduction, b-reduction
	}
	return Clamp(r), Clamp(g), Clamp(b)
}

// Per-channel pull toward the cooled neutral. Blue moves furthest to cancel
// the yellow/brown cast of faded prints.
const (
	desepiaMixR = 0.75
	desepiaMixG = 0.85
	desepiaMixB = 1.10
)

// Desepia removes a sepia cast. amount is on a 0–100 scale.
//
// Each channel is pulled toward the midpoint of the pixel's gray value and
// a cooled copy of the channel (R and G lowered, B raised by strength
// amount×0.75), by amount/100 times the channel's mix weight.
func Desepia(r, g, b, amount float64) (float64, float64, float64) {
	if amount <= 0 {
		return r, g, b
	}
	strength := amount * 0.75
	gray := Luminance(r, g, b)
	coolR := r - strength
	coolG := g - strength*0.5
	coolB := b + strength*0.6

	t := amount / 100
	r = Lerp(r, Lerp(gray, coolR, 0.5), t*desepiaMixR)
	g = Lerp(g, Lerp(gray, coolG, 0.5), t*desepiaMixG)
	b = Lerp(b, Lerp(gray, coolB, 0.5), t*desepiaMixB)
	return Clamp(r), Clamp(g), Clamp(b)
}

// Warm shifts the colour temperature. Positive values add red and some
// green and leave blue alone; negative values only take blue away, at a
// steeper rate than warming adds red.
func Warm(r, g, b, warmth float64) (float64, float64, float64) {
	if warmth == 0 {
		return r, g, b
	}
	if warmth > 0 {
		warmAmount := warmth * 1.2
		r += warmAmount
		g += warmAmount * 0.35
	} else {
		coolAmount := -warmth * 1.1
		b -= coolAmount
	}
	return Clamp(r), Clamp(g), Clamp(b)
}
