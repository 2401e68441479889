package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerdictBoundaries(t *testing.T) {
	cfg := DefaultScoreConfig()

	cases := []struct {
		score float64
		want  Verdict
	}{
		{0, VerdictGenuine},
		{29.9, VerdictGenuine},
		{30, VerdictSuspicious},
		{64.9, VerdictSuspicious},
		{65, VerdictManipulated},
		{100, VerdictManipulated},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, cfg.VerdictFor(tc.score), "score %v", tc.score)
	}
}

func TestCombineELASaturation(t *testing.T) {
	cfg := DefaultScoreConfig()

	// Anything at or above the saturation mean earns the full ELA weight.
	for _, ela := range []float64{5.0, 6.0, 100.0} {
		r := cfg.Combine(Signals{ELAMean: ela, BlurVariance: cfg.BlurCeiling, HashBits: 64})
		require.Equal(t, 40.0, r.Score, "ela %v", ela)
	}

	r := cfg.Combine(Signals{ELAMean: 2.5, BlurVariance: cfg.BlurCeiling, HashBits: 64})
	require.Equal(t, 20.0, r.Score)
}

func TestCombineBlurTerm(t *testing.T) {
	cfg := DefaultScoreConfig()

	// Perfectly flat image: full blur weight.
	r := cfg.Combine(Signals{BlurVariance: 0, HashBits: 64})
	require.Equal(t, 30.0, r.Score)

	// At the ceiling the term is zero.
	r = cfg.Combine(Signals{BlurVariance: 500, HashBits: 64})
	require.Equal(t, 0.0, r.Score)

	// Sharper than the ceiling never goes negative.
	r = cfg.Combine(Signals{BlurVariance: 1000, HashBits: 64})
	require.Equal(t, 0.0, r.Score)
}

func TestCombineSparseHashBonus(t *testing.T) {
	cfg := DefaultScoreConfig()

	r := cfg.Combine(Signals{BlurVariance: cfg.BlurCeiling, HashBits: 9})
	require.Equal(t, 10.0, r.Score)

	// The threshold itself earns nothing.
	r = cfg.Combine(Signals{BlurVariance: cfg.BlurCeiling, HashBits: 10})
	require.Equal(t, 0.0, r.Score)
}

func TestCombineScenarios(t *testing.T) {
	cfg := DefaultScoreConfig()

	// Saturated ELA alone.
	r := cfg.Combine(Signals{ELAMean: 6, BlurVariance: 500, HashBits: 12})
	require.Equal(t, 40.0, r.Score)
	require.Equal(t, VerdictSuspicious, r.Verdict)

	// Flat blur plus sparse hash, no ELA.
	r = cfg.Combine(Signals{ELAMean: 0, BlurVariance: 0, HashBits: 5})
	require.Equal(t, 40.0, r.Score)
	require.Equal(t, VerdictSuspicious, r.Verdict)
}

func TestCombineClampsToHundred(t *testing.T) {
	cfg := DefaultScoreConfig()
	cfg.ELAWeight = 80
	cfg.BlurWeight = 40
	cfg.HashWeight = 20

	r := cfg.Combine(Signals{ELAMean: 10, BlurVariance: 0, HashBits: 0})
	require.Equal(t, 100.0, r.Score)
	require.Equal(t, VerdictManipulated, r.Verdict)
}

func TestCombineRoundsToOneDecimal(t *testing.T) {
	cfg := DefaultScoreConfig()

	// 0.33/5*40 = 2.64 rounds to 2.6.
	r := cfg.Combine(Signals{ELAMean: 0.33, BlurVariance: cfg.BlurCeiling, HashBits: 64})
	require.Equal(t, 2.6, r.Score)
}

func TestCombineDetails(t *testing.T) {
	cfg := DefaultScoreConfig()

	sig := Signals{
		ELAMean:      1.5,
		BlurVariance: 250,
		Hash:         "p:c3d4e5f6a1b2c3d4",
		HashBits:     31,
		Metadata:     map[string]string{"Make": "Canon"},
	}
	r := cfg.Combine(sig)

	require.Equal(t, sig.Metadata, r.Details["metadata"])
	require.Equal(t, 1.5, r.Details["ela_mean"])
	require.Equal(t, 250.0, r.Details["blur_variance"])
	require.Equal(t, sig.Hash, r.Details["phash"])
	require.Equal(t, 31, r.Details["phash_bits"])
	require.NotContains(t, r.Details, "extraction_errors")

	// Missing metadata stays an empty map, never nil.
	r = cfg.Combine(Signals{HashBits: 64})
	require.NotNil(t, r.Details["metadata"])
	require.Empty(t, r.Details["metadata"])
}

func TestCombineReportsExtractionErrors(t *testing.T) {
	cfg := DefaultScoreConfig()

	r := cfg.Combine(Signals{
		BlurVariance: cfg.BlurCeiling,
		HashBits:     cfg.HashSparseBits,
		Failures:     map[string]string{"ela": "encode failed"},
	})
	require.Equal(t, map[string]string{"ela": "encode failed"}, r.Details["extraction_errors"])
	// Degraded signals contribute nothing.
	require.Equal(t, 0.0, r.Score)
}

func TestVideoReport(t *testing.T) {
	cfg := DefaultScoreConfig()

	r := cfg.VideoReport(2048 * 1024)
	require.Equal(t, 50.0, r.Score)
	require.Equal(t, VerdictVideoReviewPending, r.Verdict)
	require.Equal(t, 2048.0, r.Details["filesize_kb"])

	r = cfg.VideoReport(1536) // 1.5 KiB
	require.Equal(t, 1.5, r.Details["filesize_kb"])
}
