package analysis

import "context"

// Extractor port: runs the local forensic extractors over raw image bytes.
// Returns an error only when the image cannot be decoded at all; individual
// extractor failures degrade into Signals.Failures.
type Extractor interface {
	ExtractSignals(ctx context.Context, data []byte) (Signals, error)
}
