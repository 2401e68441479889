package forensics

import (
	"image"
	"math"
)

// BlurVariance converts the image to luminance, takes the discrete gradient
// along both axes (central differences, one-sided at the borders), and
// returns the variance of the gradient magnitude field. Low variance means a
// smooth image; heavy smoothing is associated with, but not proof of,
// synthetic generation or post-processing.
func BlurVariance(img image.Image) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 601 weights on 8-bit channels.
			lum[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}

	var sum, sumSq float64
	n := float64(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := gradient(lum, y*w+x, x, w, 1)
			gy := gradient(lum, y*w+x, y, h, w)
			mag := math.Sqrt(gx*gx + gy*gy)
			sum += mag
			sumSq += mag * mag
		}
	}

	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 { // float round-off on flat fields
		return 0
	}
	return variance
}

// gradient returns the discrete derivative at position pos along an axis of
// the given length, stepping stride samples in the flattened luminance
// raster.
func gradient(lum []float64, i, pos, length, stride int) float64 {
	switch {
	case length < 2:
		return 0
	case pos == 0:
		return lum[i+stride] - lum[i]
	case pos == length-1:
		return lum[i] - lum[i-stride]
	default:
		return (lum[i+stride] - lum[i-stride]) / 2
	}
}
