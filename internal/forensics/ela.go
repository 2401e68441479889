package forensics

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// ErrorLevel re-encodes the image as JPEG at the given quality, decodes it
// back, and returns the mean absolute per-pixel difference averaged across
// the three color channels. Higher values correlate with localized
// recompression, a weak editing signal.
func ErrorLevel(img image.Image, quality int) (float64, error) {
	orig := toRGBA(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, orig, &jpeg.Options{Quality: quality}); err != nil {
		return 0, fmt.Errorf("re-encode: %w", err)
	}
	re, err := jpeg.Decode(&buf)
	if err != nil {
		return 0, fmt.Errorf("decode re-encoded image: %w", err)
	}
	rec := toRGBA(re)

	b := orig.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return 0, nil
	}

	var sumR, sumG, sumB float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := orig.PixOffset(x, y)
			j := rec.PixOffset(x, y)
			sumR += absDiff(orig.Pix[i], rec.Pix[j])
			sumG += absDiff(orig.Pix[i+1], rec.Pix[j+1])
			sumB += absDiff(orig.Pix[i+2], rec.Pix[j+2])
		}
	}

	return (sumR/n + sumG/n + sumB/n) / 3, nil
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
