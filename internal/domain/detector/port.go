package detector

import "context"

// Client is one external detection provider. Providers are supplementary and
// non-authoritative: their payload is merged into the report details and
// never changes the heuristic score.
type Client interface {
	// Name is the details key the provider's payload is merged under.
	Name() string
	// Detect forwards the raw file bytes and returns the provider's
	// JSON-shaped payload.
	Detect(ctx context.Context, filename string, data []byte) (map[string]any, error)
}
