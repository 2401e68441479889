package detector

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/realitylabs/reality-check/internal/domain/detector"
)

const defaultTimeout = 30 * time.Second

// Service is the gateway in front of one external detection provider. It
// enforces the call contract: at most one attempt per analysis, a bounded
// per-call timeout, and no error ever crossing its boundary — failures are
// folded into a details fragment instead.
type Service struct {
	client  domain.Client
	timeout time.Duration
}

func NewService(client domain.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{client: client, timeout: timeout}
}

// Enabled reports whether a provider is configured. An absent provider is a
// normal, silent no-op for the pipeline.
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// Inspect forwards the file to the provider and returns the details key and
// fragment to merge. A timeout yields a fragment distinguishable from a
// generic failure; the heuristic score is never affected either way.
func (s *Service) Inspect(ctx context.Context, filename string, data []byte) (string, map[string]any) {
	if !s.Enabled() {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := s.client.Detect(ctx, filename, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return s.client.Name(), map[string]any{
				"error": fmt.Sprintf("detector timeout after %s", s.timeout),
			}
		}
		return s.client.Name(), map[string]any{"error": err.Error()}
	}
	return s.client.Name(), payload
}
