package restauro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedBuffer(w, h int) *workBuffer {
	buf := newWorkBuffer(w, h)
	for i := 0; i < w*h; i++ {
		buf.pix[i*4] = float64(i)
		buf.pix[i*4+3] = 255
	}
	return buf
}

func TestBoxBlurShrinkingWindow(t *testing.T) {
	// R channel:
	//   0 1 2
	//   3 4 5
	//   6 7 8
	out := boxBlur3(indexedBuffer(3, 3), 1)
	red := func(x, y int) float64 { return out.pix[(y*3+x)*4] }

	assert.Equal(t, 2.0, red(0, 0), "corner averages 4 pixels")
	assert.Equal(t, 2.5, red(1, 0), "edge averages 6 pixels")
	assert.Equal(t, 4.0, red(1, 1), "centre averages 9 pixels")
	assert.Equal(t, 6.0, red(2, 2))
	assert.Equal(t, 5.5, red(1, 2))
	for i := 0; i < 9; i++ {
		assert.Equal(t, 255.0, out.pix[i*4+3], "alpha is averaged too")
	}
}

func TestBoxBlurIncludesAlpha(t *testing.T) {
	buf := newWorkBuffer(3, 1)
	buf.pix[3] = 0
	buf.pix[7] = 90
	buf.pix[11] = 180

	out := boxBlur3(buf, 1)
	assert.Equal(t, 45.0, out.pix[3])
	assert.Equal(t, 90.0, out.pix[7])
	assert.Equal(t, 135.0, out.pix[11])
}

func TestBoxBlurSinglePixel(t *testing.T) {
	buf := newWorkBuffer(1, 1)
	copy(buf.pix, []float64{10, 20, 30, 40})
	out := boxBlur3(buf, 0)
	assert.Equal(t, buf.pix, out.pix)
}

func TestBoxBlurDoesNotTouchSource(t *testing.T) {
	buf := indexedBuffer(4, 4)
	before := append([]float64(nil), buf.pix...)
	_ = boxBlur3(buf, 0)
	assert.Equal(t, before, buf.pix)
}

func TestBoxBlurSerialMatchesParallel(t *testing.T) {
	buf := newWorkBufferFrom(makeTestBitmap(53, 41))
	serial := boxBlur3(buf, 1)
	parallel := boxBlur3(buf, 7)
	assert.Equal(t, serial.pix, parallel.pix)
}

func TestBoxBlurBitmap(t *testing.T) {
	src := makeCheckerBitmap(4, 4, 0, 90)
	out, err := BoxBlur(src)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 4, out.Height)
	// (0,0) is 90; its window holds two 90s and two 0s.
	assert.Equal(t, uint8(45), out.Pix[0])
	assert.Equal(t, uint8(255), out.Pix[3])

	_, err = BoxBlur(&Bitmap{Width: 2, Height: 2})
	assert.True(t, errors.Is(err, ErrInvalidBitmap))
}
