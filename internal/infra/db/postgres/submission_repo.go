package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/realitylabs/reality-check/internal/domain/submission"
)

type SubmissionRepository struct{ db *sql.DB }

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	details, err := json.Marshal(s.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	const q = `
INSERT INTO submissions
(id, owner_id, filename, verdict, score, details, media_url, created_at, verified)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`
	_, err = r.db.ExecContext(ctx, q,
		s.ID, nullable(s.OwnerID), s.Filename, s.Verdict, s.Score,
		details, s.MediaURL, created, s.Verified,
	)
	return err
}

func (r *SubmissionRepository) Get(ctx context.Context, id domain.ID) (*domain.Submission, error) {
	const q = `
SELECT id, owner_id, filename, verdict, score, details, media_url, created_at, verified
FROM submissions
WHERE id=$1
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id)

	var s domain.Submission
	var owner sql.NullString
	var details []byte
	if err := row.Scan(
		&s.ID, &owner, &s.Filename, &s.Verdict, &s.Score,
		&details, &s.MediaURL, &s.CreatedAt, &s.Verified,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.OwnerID = owner.String
	if len(details) > 0 {
		if err := json.Unmarshal(details, &s.Details); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, filename, verdict, score, created_at, verified
FROM submissions
WHERE owner_id=$1 ORDER BY created_at DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Filename, &s.Verdict, &s.Score, &s.CreatedAt, &s.Verified); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Verify: postgres reports the row as affected even when verified was
// already true, so a zero count always means the id does not exist.
func (r *SubmissionRepository) Verify(ctx context.Context, id domain.ID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE submissions SET verified = TRUE WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
