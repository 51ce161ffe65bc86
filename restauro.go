// Package restauro restores old and degraded photographs with a fixed,
// parameterized pixel pipeline. A bitmap goes in, a corrected bitmap of the
// same size comes out.
//
// The pipeline runs in a fixed order over a float64 working copy:
//
//   - Tone: exposure, then contrast
//   - Colour: saturation/vibrance, sepia removal, warmth, shadow/highlight
//   - Denoise: blend toward a 3×3 mean (only when Denoise > 0)
//   - Clarity: unsharp mask against a 3×3 mean (only when Clarity > 0)
//   - Quantize back to 8-bit channels
//
// Parameters come as an Adjustments value, usually one of the bundled
// presets ("auto", "cores", "detalhes", "suave") or NeutralAdjustments to reset.
// Calls share no state and are safe to run concurrently.
package restauro

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Restore runs the pipeline on b with default options and returns a new
// bitmap of identical dimensions. b is never modified.
func Restore(b *Bitmap, adj Adjustments) (*Bitmap, error) {
	opts := DefaultOptions()
	return runPipeline(context.Background(), b, adj, &opts)
}

// RestoreContext is Restore with cancellation, progress reporting and worker
// control. Cancellation is observed between pipeline steps only.
func RestoreContext(ctx context.Context, b *Bitmap, adj Adjustments, opts Options) (*Bitmap, error) {
	return runPipeline(ctx, b, adj, &opts)
}

// RestoreImage restores an already-decoded image. When opts.MaxWidth or
// opts.MaxHeight is set the image is first downscaled for preview.
func RestoreImage(ctx context.Context, img image.Image, adj Adjustments, opts Options) (*Result, error) {
	if img == nil {
		return nil, errors.New("restauro: nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, errors.Errorf("restauro: empty image (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	result := &Result{
		Adjustments:        adj,
		OriginalDimensions: image.Pt(bounds.Dx(), bounds.Dy()),
	}

	if opts.MaxWidth > 0 || opts.MaxHeight > 0 {
		img = previewResize(img, opts.MaxWidth, opts.MaxHeight)
	}
	src := BitmapFromImage(img)

	start := time.Now()
	out, err := runPipeline(ctx, src, adj, &opts)
	if err != nil {
		return nil, err
	}
	result.Elapsed = time.Since(start)

	result.Image = out.NRGBA()
	result.FinalDimensions = image.Pt(out.Width, out.Height)
	result.Similarity = Similarity(src, out)
	return result, nil
}

// RestoreFile opens src, restores it and writes the result to dst. The
// output format follows dst's extension; JPEG uses opts.JPEGQuality.
func RestoreFile(ctx context.Context, src, dst string, adj Adjustments, opts Options) (*Result, error) {
	img, err := openImage(src, opts.AutoOrient)
	if err != nil {
		return nil, err
	}

	result, err := RestoreImage(ctx, img, adj, opts)
	if err != nil {
		return nil, err
	}

	if err := Save(result.Image, dst, opts.JPEGQuality); err != nil {
		return nil, err
	}

	if st, err := os.Stat(src); err == nil {
		result.OriginalSize = st.Size()
	}
	if st, err := os.Stat(dst); err == nil {
		result.OutputSize = st.Size()
	}
	return result, nil
}

// previewResize shrinks img to fit within maxW×maxH (0 = unconstrained),
// preserving aspect ratio. Images already within bounds are returned as is.
func previewResize(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return img
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Lanczos3)
}
