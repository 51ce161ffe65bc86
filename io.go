package restauro

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// WebP scans are common from phone gallery exports.
	_ "golang.org/x/image/webp"
)

// Open loads an image from a file path and applies its EXIF orientation.
func Open(filename string) (image.Image, error) {
	return openImage(filename, true)
}

func openImage(filename string, autoOrient bool) (image.Image, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(autoOrient))
	if err != nil {
		return nil, errors.Wrapf(err, "restauro: open %q", filename)
	}
	return img, nil
}

// OpenBitmap loads an image file as an oriented bitmap.
func OpenBitmap(filename string) (*Bitmap, error) {
	img, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return BitmapFromImage(img), nil
}

// Save writes img to filename. The format follows the extension (.jpg,
// .jpeg, .png, .gif, .tif, .tiff, .bmp). JPEG output uses quality, or
// DefaultJPEGQuality when quality is out of 1–100.
func Save(img image.Image, filename string, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return errors.Wrapf(err, "restauro: unsupported extension %q", strings.ToLower(filepath.Ext(filename)))
	}
	if err := imaging.Save(img, filename, imaging.JPEGQuality(quality)); err != nil {
		return errors.Wrapf(err, "restauro: save %q", filename)
	}
	return nil
}
