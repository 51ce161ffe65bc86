package restauro

// boxBlur3 returns a new buffer where every channel, alpha included, is the
// mean of the 3×3 neighbourhood around the pixel. Border pixels average only
// the neighbours that exist, so the divisor drops to 6 on edges and 4 in
// corners. Rows are independent and may be computed in any order.
func boxBlur3(src *workBuffer, workers int) *workBuffer {
	w, h := src.w, src.h
	dst := newWorkBuffer(w, h)
	stride := w * 4

	parallelDo(workers, 0, h, func(y int) {
		y0, y1 := y-1, y+1
		if y0 < 0 {
			y0 = 0
		}
		if y1 > h-1 {
			y1 = h - 1
		}
		for x := 0; x < w; x++ {
			x0, x1 := x-1, x+1
			if x0 < 0 {
				x0 = 0
			}
			if x1 > w-1 {
				x1 = w - 1
			}

			var r, g, b, a float64
			for ny := y0; ny <= y1; ny++ {
				row := ny * stride
				for nx := x0; nx <= x1; nx++ {
					off := row + nx*4
					r += src.pix[off]
					g += src.pix[off+1]
					b += src.pix[off+2]
					a += src.pix[off+3]
				}
			}

			n := float64((y1 - y0 + 1) * (x1 - x0 + 1))
			off := y*stride + x*4
			dst.pix[off] = r / n
			dst.pix[off+1] = g / n
			dst.pix[off+2] = b / n
			dst.pix[off+3] = a / n
		}
	})

	return dst
}

// BoxBlur applies the 3×3 neighbourhood mean used by denoise and clarity to
// a bitmap and returns a new, quantized bitmap.
func BoxBlur(b *Bitmap) (*Bitmap, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return boxBlur3(newWorkBufferFrom(b), 0).quantize(), nil
}
