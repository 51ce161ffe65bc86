package restauro

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/dustin/go-humanize"
)

// Version is the library version.
const Version = "1.0.0"

// DefaultJPEGQuality is the quality used when saving restored photos as JPEG.
const DefaultJPEGQuality = 92

// ProgressStage names a step boundary of the restoration pipeline.
type ProgressStage string

const (
	StageTone     ProgressStage = "tone"
	StageColor    ProgressStage = "color"
	StageDenoise  ProgressStage = "denoise"
	StageClarity  ProgressStage = "clarity"
	StageQuantize ProgressStage = "quantize"
	StageDone     ProgressStage = "done"
)

// ProgressFunc is called at every step boundary of the pipeline.
// stage is the step about to run (or StageDone), percent is 0.0–1.0.
// Return a non-nil error to abort the run.
type ProgressFunc func(stage ProgressStage, percent float64) error

// Options configures how a restoration runs. It never changes the numeric
// result: serial and parallel runs produce identical bitmaps.
type Options struct {
	// Workers bounds the goroutines used for row-striped passes.
	// 0 means GOMAXPROCS, 1 runs everything on the calling goroutine.
	Workers int

	// MaxWidth and MaxHeight downscale the input before restoring, for
	// previews. 0 means no constraint. Aspect ratio is preserved and images
	// are never upscaled. Only used by RestoreImage and RestoreFile.
	MaxWidth  int
	MaxHeight int

	// JPEGQuality is used by RestoreFile when writing JPEG output.
	JPEGQuality int

	// AutoOrient applies EXIF orientation when opening files.
	AutoOrient bool

	// OnProgress is optional. Returning a non-nil error aborts the run.
	OnProgress ProgressFunc
}

// DefaultOptions returns sensible defaults for general use.
func DefaultOptions() Options {
	return Options{
		JPEGQuality: DefaultJPEGQuality,
		AutoOrient:  true,
	}
}

// reportProgress checks for cancellation, then invokes the progress callback.
func (o *Options) reportProgress(ctx context.Context, stage ProgressStage, percent float64) error {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	if o.OnProgress != nil {
		return o.OnProgress(stage, percent)
	}
	return nil
}

// Result describes a finished restoration.
type Result struct {
	// Image is the restored photo.
	Image *image.NRGBA

	// Adjustments are the parameters the pipeline ran with.
	Adjustments Adjustments

	// OriginalDimensions is the input size after orientation.
	OriginalDimensions image.Point

	// FinalDimensions is the output size (smaller when a preview
	// constraint was applied).
	FinalDimensions image.Point

	// Similarity is the luminance SSIM between the pipeline input and output.
	Similarity float64

	// OriginalSize and OutputSize are file sizes in bytes, set by RestoreFile.
	OriginalSize int64
	OutputSize   int64

	// Elapsed is the pipeline run time, excluding file I/O.
	Elapsed time.Duration
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	sizes := ""
	if r.OriginalSize > 0 || r.OutputSize > 0 {
		sizes = fmt.Sprintf(" | %s → %s", humanize.IBytes(uint64(r.OriginalSize)), humanize.IBytes(uint64(r.OutputSize)))
	}
	return fmt.Sprintf(
		"Restauro Result: %dx%d → %dx%d%s | SSIM: %.4f | %s",
		r.OriginalDimensions.X, r.OriginalDimensions.Y,
		r.FinalDimensions.X, r.FinalDimensions.Y,
		sizes, r.Similarity, r.Elapsed.Round(time.Millisecond),
	)
}
