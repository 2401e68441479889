package forensics

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode parses raw upload bytes into an image. JPEG, PNG and GIF are
// registered; anything else fails here, before any extractor runs.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// toRGBA normalizes any color model (alpha, paletted, grayscale) onto an
// opaque RGBA raster with bounds anchored at the origin, so pixel offsets
// line up between an original and its re-encoded copy.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
