package forensics

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorLevelFlatImageNearZero(t *testing.T) {
	img := flatImage(64, 64, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	ela, err := ErrorLevel(img, 90)
	require.NoError(t, err)
	// A uniform field survives JPEG re-encoding almost unchanged.
	require.GreaterOrEqual(t, ela, 0.0)
	require.Less(t, ela, 1.0)
}

func TestErrorLevelNoisyImageHigher(t *testing.T) {
	flat := flatImage(64, 64, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	noisy := noiseImage(64, 64, 1)

	flatELA, err := ErrorLevel(flat, 90)
	require.NoError(t, err)
	noisyELA, err := ErrorLevel(noisy, 90)
	require.NoError(t, err)

	require.Greater(t, noisyELA, flatELA)
}

func TestErrorLevelDeterministic(t *testing.T) {
	img := noiseImage(32, 32, 7)

	a, err := ErrorLevel(img, 90)
	require.NoError(t, err)
	b, err := ErrorLevel(img, 90)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
