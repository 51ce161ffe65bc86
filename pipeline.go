package restauro

import (
	"context"
	"math"
)

// Contrast is clamped to this range before the factor is computed.
const (
	contrastMin = -80.0
	contrastMax = 120.0
)

const (
	exposureGain   = 2.2
	denoiseMaxMix  = 0.85
	clarityBase    = 0.8
	clarityGainRed = 1.0
	clarityGainGB  = 0.9
)

// workBuffer is the float64 copy of a bitmap the pipeline works on, so
// rounding happens once at the end instead of after every pass.
type workBuffer struct {
	w, h int
	pix  []float64
}

func newWorkBuffer(w, h int) *workBuffer {
	return &workBuffer{w: w, h: h, pix: make([]float64, w*h*4)}
}

func newWorkBufferFrom(b *Bitmap) *workBuffer {
	buf := newWorkBuffer(b.Width, b.Height)
	for i, v := range b.Pix {
		buf.pix[i] = float64(v)
	}
	return buf
}

// quantize rounds every channel to the nearest integer, ties to even, after
// clamping to [0,255].
func (buf *workBuffer) quantize() *Bitmap {
	out := NewBitmap(buf.w, buf.h)
	for i, v := range buf.pix {
		out.Pix[i] = uint8(math.RoundToEven(Clamp(v)))
	}
	return out
}

// eachPixel runs fn on every pixel's four channels, rows striped across workers.
func (buf *workBuffer) eachPixel(workers int, fn func(px []float64)) {
	stride := buf.w * 4
	parallelDo(workers, 0, buf.h, func(y int) {
		row := buf.pix[y*stride : (y+1)*stride]
		for off := 0; off < len(row); off += 4 {
			fn(row[off : off+4 : off+4])
		}
	})
}

// contrastFactor computes 259(C+255) / (255(259-C)) for C clamped to
// [contrastMin, contrastMax].
func contrastFactor(contrast float64) float64 {
	c := clampRange(contrast, contrastMin, contrastMax)
	den := 255 * (259 - c)
	if den == 0 {
		den = 0.0001
	}
	return 259 * (c + 255) / den
}

// applyTone runs exposure and contrast on R, G and B.
func applyTone(buf *workBuffer, adj Adjustments, workers int) {
	shift := adj.Exposure * exposureGain
	factor := contrastFactor(adj.Contrast)
	buf.eachPixel(workers, func(px []float64) {
		for c := 0; c < 3; c++ {
			v := Clamp(px[c] + shift)
			px[c] = Clamp(factor*(v-128) + 128)
		}
	})
}

// applyColor runs saturation/vibrance, sepia removal, warmth and
// shadow/highlight in that order, then re-clamps all four channels.
func applyColor(buf *workBuffer, adj Adjustments, workers int) {
	sat := adj.Saturation / 100
	vib := adj.Vibrance / 100
	// Desepia takes a 0–100 amount; the fraction is scaled back up so the
	// net input equals SepiaReduction.
	sepiaFraction := adj.SepiaReduction / 100
	sepiaAmount := sepiaFraction * 100

	buf.eachPixel(workers, func(px []float64) {
		r, g, b := px[0], px[1], px[2]
		r, g, b = SaturateVibrance(r, g, b, sat, vib)
		r, g, b = Desepia(r, g, b, sepiaAmount)
		r, g, b = Warm(r, g, b, adj.Warmth)
		r, g, b = ShadowHighlight(r, g, b, adj.ShadowLift, adj.HighlightRecovery)
		px[0], px[1], px[2], px[3] = Clamp(r), Clamp(g), Clamp(b), Clamp(px[3])
	})
}

// applyDenoise blends R, G and B toward their 3×3 mean. Alpha keeps its
// pre-blur value.
func applyDenoise(buf *workBuffer, denoise float64, workers int) {
	mix := math.Min(denoiseMaxMix, denoise/100)
	blurred := boxBlur3(buf, workers)
	stride := buf.w * 4
	parallelDo(workers, 0, buf.h, func(y int) {
		for off := y * stride; off < (y+1)*stride; off += 4 {
			for c := 0; c < 3; c++ {
				buf.pix[off+c] = buf.pix[off+c]*(1-mix) + blurred.pix[off+c]*mix
			}
		}
	})
}

// applyClarity adds back the difference from the 3×3 mean, an unsharp mask
// with slightly more gain on red than on green and blue.
func applyClarity(buf *workBuffer, clarity float64, workers int) {
	mix := clarity / 100
	gains := [3]float64{
		clarityBase + mix*clarityGainRed,
		clarityBase + mix*clarityGainGB,
		clarityBase + mix*clarityGainGB,
	}
	blurred := boxBlur3(buf, workers)
	stride := buf.w * 4
	parallelDo(workers, 0, buf.h, func(y int) {
		for off := y * stride; off < (y+1)*stride; off += 4 {
			for c := 0; c < 3; c++ {
				detail := buf.pix[off+c] - blurred.pix[off+c]
				buf.pix[off+c] += detail * gains[c]
			}
		}
	})
}

// runPipeline restores src into a freshly allocated bitmap. It checks for
// cancellation only between steps, never inside one.
func runPipeline(ctx context.Context, src *Bitmap, adj Adjustments, opts *Options) (*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	buf := newWorkBufferFrom(src)

	if err := opts.reportProgress(ctx, StageTone, 0); err != nil {
		return nil, err
	}
	applyTone(buf, adj, opts.Workers)

	if err := opts.reportProgress(ctx, StageColor, 0.2); err != nil {
		return nil, err
	}
	applyColor(buf, adj, opts.Workers)

	if adj.Denoise > 0 {
		if err := opts.reportProgress(ctx, StageDenoise, 0.5); err != nil {
			return nil, err
		}
		applyDenoise(buf, adj.Denoise, opts.Workers)
	}

	if adj.Clarity > 0 {
		if err := opts.reportProgress(ctx, StageClarity, 0.7); err != nil {
			return nil, err
		}
		applyClarity(buf, adj.Clarity, opts.Workers)
	}

	if err := opts.reportProgress(ctx, StageQuantize, 0.9); err != nil {
		return nil, err
	}
	out := buf.quantize()

	if err := opts.reportProgress(ctx, StageDone, 1.0); err != nil {
		return nil, err
	}
	return out, nil
}
