package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

// compile-time check that *DB implements repository.ResumeRepository
var _ repository.ResumeRepository = (*DB)(nil)

// Upsert creates or replaces the user's resume. ON CONFLICT on the user_id
// UNIQUE constraint keeps the original row id and created_at while
// overwriting the content fields — one resume per user, no versioning.
func (db *DB) Upsert(ctx context.Context, resume *model.Resume) error {
	now := time.Now()
	if resume.ID == "" {
		resume.ID = xid.New().String()
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO resumes (id, user_id, title, summary, skills, experience, education, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			skills = excluded.skills,
			experience = excluded.experience,
			education = excluded.education,
			updated_at = excluded.updated_at`,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.Summary,
		resume.Skills,
		resume.Experience,
		resume.Education,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting resume for user %s: %w", resume.UserID, err)
	}

	// Read back the canonical row so the caller sees the preserved ID and
	// created_at after an update of an existing resume.
	stored, err := db.GetByUserID(ctx, resume.UserID)
	if err != nil {
		return fmt.Errorf("sqlite: reading back resume for user %s: %w", resume.UserID, err)
	}
	*resume = *stored
	return nil
}

// GetByUserID retrieves a user's resume.
// Returns apperror.ErrNotFound if the user has never written one.
func (db *DB) GetByUserID(ctx context.Context, userID string) (*model.Resume, error) {
	var r model.Resume
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, summary, skills, experience, education, created_at, updated_at
		 FROM resumes WHERE user_id = ?`,
		userID,
	).Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Summary,
		&r.Skills,
		&r.Experience,
		&r.Education,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("resume", userID)
		}
		return nil, fmt.Errorf("sqlite: getting resume for user %s: %w", userID, err)
	}
	return &r, nil
}
