package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/realitylabs/reality-check/internal/domain/submission"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts one fully-formed submission. No upsert: ids are assigned
// exactly once, so a duplicate key is a real failure.
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
VALUES (?,?,?,?,?,?,?,?,?);
`
	_, err = r.db.ExecContext(ctx, q,
		s.ID, nullable(s.OwnerID), s.Filename, s.Verdict, s.Score,
		details, s.MediaURL, created, s.Verified,
	)
	return err
}

// Get by id, details included.
func (r *SubmissionRepository) Get(ctx context.Context, id domain.ID) (*domain.Submission, error) {
	const q = `
SELECT id, owner_id, filename, verdict, score, details, media_url, created_at, verified
FROM submissions
WHERE id=? LIMIT 1;
`
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

// ListByOwner returns summaries newest first, details excluded.
func (r *SubmissionRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, filename, verdict, score, created_at, verified
FROM submissions
WHERE owner_id=? ORDER BY created_at DESC LIMIT ?;
`
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

// Verify flips verified in a single UPDATE, so concurrent calls on the same
// id land on the same end state. MySQL reports zero affected rows both for a
// missing id and an already-verified one; only the former is an error.
func (r *SubmissionRepository) Verify(ctx context.Context, id domain.ID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE submissions SET verified = TRUE WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM submissions WHERE id=? LIMIT 1;`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
