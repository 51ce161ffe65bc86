package restauro

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Bitmap is a width×height grid of non-premultiplied RGBA pixels stored
// row-major, four bytes per pixel, with no row padding.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBitmap allocates a zeroed bitmap of the given size. Negative sizes
// become 0. It panics when w×h×4 does not fit in an int.
func NewBitmap(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if dimensionsOverflow(w, h) {
		panic(errors.Wrapf(ErrInvalidBitmap, "dimensions %dx%d overflow", w, h))
	}
	return &Bitmap{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

// Validate checks the buffer length invariant len(Pix) == Width*Height*4.
func (b *Bitmap) Validate() error {
	if b == nil {
		return ErrNilBitmap
	}
	if b.Width < 0 || b.Height < 0 {
		return errors.Wrapf(ErrInvalidBitmap, "negative dimensions %dx%d", b.Width, b.Height)
	}
	if dimensionsOverflow(b.Width, b.Height) {
		return errors.Wrapf(ErrInvalidBitmap, "dimensions %dx%d overflow", b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return errors.Wrapf(ErrInvalidBitmap, "pixel buffer holds %d bytes, want %d for %dx%d",
			len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// dimensionsOverflow reports whether w×h×4 overflows an int. w and h must
// be non-negative.
func dimensionsOverflow(w, h int) bool {
	return w > 0 && h > math.MaxInt/4/w
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	dst := &Bitmap{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(dst.Pix, b.Pix)
	return dst
}

// Bounds returns the bitmap rectangle anchored at the origin.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// NRGBA returns a copy of the bitmap as an *image.NRGBA.
func (b *Bitmap) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(b.Bounds())
	copy(dst.Pix, b.Pix)
	return dst
}

// BitmapFromImage copies any image into a new bitmap anchored at the origin.
// Premultiplied sources are converted to straight alpha.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if nrgba, ok := img.(*image.NRGBA); ok {
		dst := NewBitmap(w, h)
		for y := 0; y < h; y++ {
			srcOff := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*w*4:(y+1)*w*4], nrgba.Pix[srcOff:srcOff+w*4])
		}
		return dst
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Bitmap{Width: w, Height: h, Pix: dst.Pix}
}
