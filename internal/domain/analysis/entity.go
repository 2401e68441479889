package analysis

// Verdict is the qualitative triage label derived from the combined score.
type Verdict string

const (
	VerdictGenuine            Verdict = "genuine"
	VerdictSuspicious         Verdict = "suspicious"
	VerdictManipulated        Verdict = "manipulated"
	VerdictVideoReviewPending Verdict = "video_review_pending"
	VerdictUnknown            Verdict = "unknown"
)

// Signals holds the raw measurements from the local extractors. All four are
// produced from the same decoded image before the combiner runs.
type Signals struct {
	ELAMean      float64           `json:"ela_mean"`
	BlurVariance float64           `json:"blur_variance"`
	Hash         string            `json:"phash"`
	HashBits     int               `json:"phash_bits"`
	Metadata     map[string]string `json:"metadata"`

	// Failures records extractors that degraded to a neutral default,
	// keyed by signal name. Never fatal for the request.
	Failures map[string]string `json:"failures,omitempty"`
}

// Report is the outcome of one analysis. Immutable once returned; a later
// manual verification only flips a flag on the stored submission.
type Report struct {
	Score   float64        `json:"score"`
	Verdict Verdict        `json:"verdict"`
	Details map[string]any `json:"details"`
}
