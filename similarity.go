package restauro

import "math"

// SSIM constants from Wang et al.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)

	ssimWindow = 8
	ssimSigma  = 1.5
)

// Similarity returns the structural similarity (SSIM) of the luminance of
// two bitmaps, 1.0 meaning identical. Bitmaps of different size, or
// invalid ones, score 0.
func Similarity(a, b *Bitmap) float64 {
	if a.Validate() != nil || b.Validate() != nil {
		return 0
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0
	}
	w, h := a.Width, a.Height
	if w == 0 || h == 0 {
		return 1
	}

	lumA := luminancePlane(a)
	lumB := luminancePlane(b)
	if w < ssimWindow || h < ssimWindow {
		return ssimStats(lumA, lumB, nil)
	}
	return windowedSSIM(lumA, lumB, w, h)
}

func luminancePlane(b *Bitmap) []float64 {
	lum := make([]float64, b.Width*b.Height)
	for i := range lum {
		off := i * 4
		lum[i] = Luminance(float64(b.Pix[off]), float64(b.Pix[off+1]), float64(b.Pix[off+2]))
	}
	return lum
}

// ssimStats computes SSIM over paired samples, weighted by kernel when
// given, uniformly otherwise.
func ssimStats(a, b, kernel []float64) float64 {
	weight := func(i int) float64 {
		if kernel == nil {
			return 1 / float64(len(a))
		}
		return kernel[i]
	}

	var muA, muB float64
	for i := range a {
		muA += a[i] * weight(i)
		muB += b[i] * weight(i)
	}
	var sigAA, sigBB, sigAB float64
	for i := range a {
		da, db := a[i]-muA, b[i]-muB
		sigAA += da * da * weight(i)
		sigBB += db * db * weight(i)
		sigAB += da * db * weight(i)
	}

	num := (2*muA*muB + ssimC1) * (2*sigAB + ssimC2)
	den := (muA*muA + muB*muB + ssimC1) * (sigAA + sigBB + ssimC2)
	return num / den
}

// windowedSSIM averages SSIM over every 8×8 window, Gaussian weighted.
func windowedSSIM(lumA, lumB []float64, w, h int) float64 {
	kernel := gaussianKernel(ssimWindow, ssimSigma)
	rows := h - ssimWindow + 1
	cols := w - ssimWindow + 1
	rowSums := make([]float64, rows)

	parallelDo(0, 0, rows, func(y int) {
		winA := make([]float64, ssimWindow*ssimWindow)
		winB := make([]float64, ssimWindow*ssimWindow)
		var sum float64
		for x := 0; x < cols; x++ {
			k := 0
			for wy := 0; wy < ssimWindow; wy++ {
				row := (y + wy) * w
				for wx := 0; wx < ssimWindow; wx++ {
					winA[k] = lumA[row+x+wx]
					winB[k] = lumB[row+x+wx]
					k++
				}
			}
			sum += ssimStats(winA, winB, kernel)
		}
		rowSums[y] = sum
	})

	var total float64
	for _, s := range rowSums {
		total += s
	}
	return total / float64(rows*cols)
}

// gaussianKernel creates a normalized size×size Gaussian kernel.
func gaussianKernel(size int, sigma float64) []float64 {
	kernel := make([]float64, size*size)
	half := size / 2
	var sum float64

	idx := 0
	for y := -half; y < size-half; y++ {
		for x := -half; x < size-half; x++ {
			val := math.Exp(-float64(x*x+y*y) / (2 * sigma * sigma))
			kernel[idx] = val
			sum += val
			idx++
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
