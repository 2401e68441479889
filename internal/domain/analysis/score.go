package analysis

import "math"

// ScoreConfig carries the calibration constants of the heuristic combiner.
// The defaults are preserved verbatim from the original calibration; tune
// them together or not at all, the verdict thresholds assume these weights.
type ScoreConfig struct {
	// ELAQuality is the lossy re-encode quality used by the error-level
	// analyzer (0-100 JPEG scale).
	ELAQuality int

	ELAWeight     float64 // max points from the ELA term
	ELASaturation float64 // ELA mean at which the term saturates

	BlurWeight  float64 // max points from the blur term
	BlurCeiling float64 // gradient variance at/above which the term is zero

	HashWeight     float64 // flat bonus for a sparse perceptual hash
	HashSparseBits int     // set-bit count below which the bonus applies

	SuspiciousFrom  float64 // scores below this are genuine
	ManipulatedFrom float64 // scores at/above this are manipulated

	VideoScore float64 // fixed score reported for deferred video review
}

// DefaultScoreConfig returns the reference calibration.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		ELAQuality:      90,
		ELAWeight:       40,
		ELASaturation:   5.0,
		BlurWeight:      30,
		BlurCeiling:     500,
		HashWeight:      10,
		HashSparseBits:  10,
		SuspiciousFrom:  30,
		ManipulatedFrom: 65,
		VideoScore:      50,
	}
}

// Combine fuses the local signals into one bounded score and verdict.
// Each term saturates independently; the sum is clamped to [0,100] and
// rounded to one decimal place.
func (c ScoreConfig) Combine(sig Signals) Report {
	elaPts := math.Min(c.ELAWeight, sig.ELAMean/c.ELASaturation*c.ELAWeight)
	blurPts := math.Min(c.BlurWeight, math.Max(0, (c.BlurCeiling-sig.BlurVariance)/c.BlurCeiling*c.BlurWeight))

	var hashPts float64
	if sig.HashBits < c.HashSparseBits {
		hashPts = c.HashWeight
	}

	score := round1(clamp(elaPts+blurPts+hashPts, 0, 100))

	meta := sig.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	details := map[string]any{
		"metadata":      meta,
		"ela_mean":      sig.ELAMean,
		"blur_variance": sig.BlurVariance,
		"phash":         sig.Hash,
		"phash_bits":    sig.HashBits,
	}
	if len(sig.Failures) > 0 {
		details["extraction_errors"] = sig.Failures
	}

	return Report{Score: score, Verdict: c.VerdictFor(score), Details: details}
}

// VerdictFor maps a clamped score to its triage label. Total over [0,100].
func (c ScoreConfig) VerdictFor(score float64) Verdict {
	switch {
	case score < c.SuspiciousFrom:
		return VerdictGenuine
	case score < c.ManipulatedFrom:
		return VerdictSuspicious
	default:
		return VerdictManipulated
	}
}

// VideoReport defers video input to manual review: no local extraction, a
// fixed midpoint score, and the file size in KiB as the only detail.
func (c ScoreConfig) VideoReport(sizeBytes int64) Report {
	return Report{
		Score:   c.VideoScore,
		Verdict: VerdictVideoReviewPending,
		Details: map[string]any{
			"filesize_kb": round1(float64(sizeBytes) / 1024),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
