package forensics

import (
	"fmt"
	"image"
	"math/bits"

	"github.com/corona10/goimagehash"
)

// PerceptualHash computes a 64-bit DCT perception hash and returns its
// canonical string encoding together with the set-bit count. The bit count
// serves only as a coarse structural-complexity proxy.
func PerceptualHash(img image.Image) (string, int, error) {
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", 0, fmt.Errorf("perception hash: %w", err)
	}
	return h.ToString(), bits.OnesCount64(h.GetHash()), nil
}
