package restauro

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// ImageStats describes the damage visible in a photo.
type ImageStats struct {
	// Width and Height in pixels.
	Width, Height int

	// MeanBrightness is the average BT.709 luminance (0-255).
	MeanBrightness float64

	// Contrast is the standard deviation of luminance.
	// Faded prints usually sit well under 45.
	Contrast float64

	// MeanChroma is the average CIE HCL chroma (0 = gray, ~0.4 = vivid).
	MeanChroma float64

	// WarmCast is the average CIE Lab b* in conventional units.
	// Positive values lean yellow/brown, negative lean blue.
	WarmCast float64

	// SepiaScore estimates how strongly the photo is toned sepia (0-1).
	SepiaScore float64

	// Noise is the mean absolute luminance difference against the 3×3
	// neighbourhood mean. Clean scans stay below ~3.
	Noise float64

	// RecommendedPreset names the bundled preset that fits best.
	RecommendedPreset string
}

const (
	analyzeMaxSamples = 50000

	noisyThreshold       = 6.0
	flatContrast         = 40.0
	fadedChroma          = 0.08
	sepiaChromaCeiling   = 0.35
	sepiaHueMin          = 20.0
	sepiaHueMax          = 100.0
	sepiaChromaFloor     = 0.03
	sepiaCastedThreshold = 0.3
)

// Analyze inspects a photo and recommends a preset.
func Analyze(img image.Image) ImageStats {
	return AnalyzeBitmap(BitmapFromImage(img))
}

// AnalyzeBitmap is Analyze for a bitmap. Invalid or empty bitmaps yield
// zero stats with the "auto" recommendation.
func AnalyzeBitmap(b *Bitmap) ImageStats {
	stats := ImageStats{RecommendedPreset: "auto"}
	if b.Validate() != nil {
		return stats
	}
	stats.Width, stats.Height = b.Width, b.Height
	n := b.Width * b.Height
	if n == 0 {
		return stats
	}

	step := 1
	if n > analyzeMaxSamples {
		step = n / analyzeMaxSamples
	}

	samples := (n + step - 1) / step
	lum := make([]float64, 0, samples)
	chroma := make([]float64, 0, samples)
	labB := make([]float64, 0, samples)
	warm := 0

	for i := 0; i < n; i += step {
		off := i * 4
		r, g, bl := float64(b.Pix[off]), float64(b.Pix[off+1]), float64(b.Pix[off+2])
		lum = append(lum, Luminance(r, g, bl))

		c := colorful.Color{R: r / 255, G: g / 255, B: bl / 255}
		h, cc, _ := c.Hcl()
		_, _, lb := c.Lab()
		chroma = append(chroma, cc)
		labB = append(labB, lb*100)
		if cc > sepiaChromaFloor && h >= sepiaHueMin && h <= sepiaHueMax {
			warm++
		}
	}

	stats.MeanBrightness, stats.Contrast = stat.PopMeanStdDev(lum, nil)
	stats.MeanChroma = stat.Mean(chroma, nil)
	stats.WarmCast = stat.Mean(labB, nil)

	warmFraction := float64(warm) / float64(len(lum))
	muted := clampRange((sepiaChromaCeiling-stats.MeanChroma)/(sepiaChromaCeiling-sepiaChromaFloor), 0, 1)
	stats.SepiaScore = warmFraction * muted

	stats.Noise = estimateNoise(b)
	stats.RecommendedPreset = recommendPreset(stats)
	return stats
}

// estimateNoise compares luminance with its 3×3 mean.
func estimateNoise(b *Bitmap) float64 {
	if b.Width < 3 || b.Height < 3 {
		return 0
	}
	buf := newWorkBufferFrom(b)
	blurred := boxBlur3(buf, 0)

	diffs := make([]float64, b.Width*b.Height)
	for i := range diffs {
		off := i * 4
		orig := Luminance(buf.pix[off], buf.pix[off+1], buf.pix[off+2])
		blur := Luminance(blurred.pix[off], blurred.pix[off+1], blurred.pix[off+2])
		diffs[i] = math.Abs(orig - blur)
	}
	return stat.Mean(diffs, nil)
}

func recommendPreset(stats ImageStats) string {
	switch {
	case stats.Noise > noisyThreshold:
		return "suave"
	case stats.Contrast < flatContrast:
		return "detalhes"
	case stats.MeanChroma < fadedChroma && stats.SepiaScore < sepiaCastedThreshold:
		return "cores"
	default:
		return "auto"
	}
}

// SuggestAdjustments returns the recommended preset's adjustments with sepia
// removal raised in proportion to the detected sepia tone.
func SuggestAdjustments(stats ImageStats) Adjustments {
	p, err := LookupPreset(stats.RecommendedPreset)
	if err != nil {
		p, _ = LookupPreset("auto")
	}
	adj := p.Adjustments
	r := Bounds(SepiaReduction)
	adj.SepiaReduction = clampRange(math.Max(adj.SepiaReduction, stats.SepiaScore*r.Max), r.Min, r.Max)
	return adj
}
