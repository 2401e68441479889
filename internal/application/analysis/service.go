package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"strings"

	"github.com/google/uuid"

	"github.com/realitylabs/reality-check/internal/application"
	appdetector "github.com/realitylabs/reality-check/internal/application/detector"
	domain "github.com/realitylabs/reality-check/internal/domain/analysis"
	"github.com/realitylabs/reality-check/internal/domain/identity"
	"github.com/realitylabs/reality-check/internal/domain/submission"
)

// Input errors reject the request before any extractor runs.
var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrEmptyFilename   = errors.New("empty filename")
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrUndecodable     = errors.New("undecodable image")
)

// Service implements the analysis use-cases. Requests share no mutable state
// besides the repository, so the service is safe for concurrent use.
type Service struct {
	Repo      submission.Repository
	Extractor domain.Extractor
	Detector  *appdetector.Service
	Media     submission.MediaStore // optional
	Clock     application.Clock
	Scoring   domain.ScoreConfig
}

// AnalyzeCommand carries one upload through the pipeline. Owner is nil for
// anonymous requests — analysis fails open for identity.
type AnalyzeCommand struct {
	Filename    string
	ContentType string
	Data        []byte
	Owner       *identity.Identity
}

type AnalyzeResult struct {
	SubmissionID string         `json:"submission_id"`
	Filename     string         `json:"filename"`
	Score        float64        `json:"score"`
	Verdict      domain.Verdict `json:"verdict"`
	Details      map[string]any `json:"details"`
	MediaURL     string         `json:"media_url,omitempty"`
}

// Analyze dispatches on media type, runs the pipeline, and persists one
// submission atomically with the result.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	if len(cmd.Data) == 0 {
		return AnalyzeResult{}, ErrNoFile
	}
	if strings.TrimSpace(cmd.Filename) == "" {
		return AnalyzeResult{}, ErrEmptyFilename
	}

	mediaType := cmd.ContentType
	if mt, _, err := mime.ParseMediaType(cmd.ContentType); err == nil {
		mediaType = mt
	}

	var report domain.Report
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		r, err := s.analyzeImage(ctx, cmd)
		if err != nil {
			return AnalyzeResult{}, err
		}
		report = r
	case strings.HasPrefix(mediaType, "video/"):
		report = s.Scoring.VideoReport(int64(len(cmd.Data)))
	default:
		return AnalyzeResult{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	sub := &submission.Submission{
		ID:        submission.ID(uuid.New().String()),
		Filename:  cmd.Filename,
		Verdict:   report.Verdict,
		Score:     report.Score,
		Details:   report.Details,
		CreatedAt: s.Clock.Now().UTC(),
	}
	if cmd.Owner != nil {
		sub.OwnerID = cmd.Owner.ID
	}

	// Keep the raw upload around for manual review. Best effort: the
	// analysis stands even when object storage is down.
	if s.Media != nil {
		key := fmt.Sprintf("%s/%s", sub.ID, cmd.Filename)
		url, err := s.Media.Upload(ctx, key, cmd.ContentType, cmd.Data)
		if err != nil {
			log.Printf("media upload failed for submission %s: %v", sub.ID, err)
		} else {
			sub.MediaURL = url
		}
	}

	if err := s.Repo.Create(ctx, sub); err != nil {
		return AnalyzeResult{}, fmt.Errorf("persist submission: %w", err)
	}

	return AnalyzeResult{
		SubmissionID: string(sub.ID),
		Filename:     sub.Filename,
		Score:        sub.Score,
		Verdict:      sub.Verdict,
		Details:      sub.Details,
		MediaURL:     sub.MediaURL,
	}, nil
}

type detectorOutcome struct {
	key      string
	fragment map[string]any
}

// analyzeImage runs the external detector concurrently with local scoring.
// The detector fragment merges only after the local result exists, and the
// wait is bounded by the gateway's own timeout.
func (s *Service) analyzeImage(ctx context.Context, cmd AnalyzeCommand) (domain.Report, error) {
	var external chan detectorOutcome
	if s.Detector.Enabled() {
		external = make(chan detectorOutcome, 1)
		go func() {
			key, fragment := s.Detector.Inspect(ctx, cmd.Filename, cmd.Data)
			external <- detectorOutcome{key: key, fragment: fragment}
		}()
	}

	sig, err := s.Extractor.ExtractSignals(ctx, cmd.Data)
	if err != nil {
		return domain.Report{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	report := s.Scoring.Combine(sig)

	if external != nil {
		if out := <-external; out.fragment != nil {
			report.Details[out.key] = out.fragment
		}
	}
	return report, nil
}

// List returns the actor's own submissions, newest first, without details.
func (s *Service) List(ctx context.Context, actor *identity.Identity, limit int) ([]*submission.Summary, error) {
	if actor == nil {
		return nil, identity.ErrUnauthenticated
	}
	return s.Repo.ListByOwner(ctx, actor.ID, limit)
}

// Get returns one full submission. Fails closed: authentication is required,
// and records owned by someone else stay invisible.
func (s *Service) Get(ctx context.Context, actor *identity.Identity, id submission.ID) (*submission.Submission, error) {
	if actor == nil {
		return nil, identity.ErrUnauthenticated
	}
	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.OwnerID != "" && sub.OwnerID != actor.ID {
		return nil, submission.ErrNotFound
	}
	return sub, nil
}

// Verify marks a submission as manually reviewed. Any authenticated actor
// may verify; the transition is one-way and idempotent.
func (s *Service) Verify(ctx context.Context, actor *identity.Identity, id submission.ID) error {
	if actor == nil {
		return identity.ErrUnauthenticated
	}
	return s.Repo.Verify(ctx, id)
}
