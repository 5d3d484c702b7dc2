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

// compile-time check that *DB implements repository.ContributionRepository
var _ repository.ContributionRepository = (*DB)(nil)

const contributionColumns = `id, user_id, issue_id, repository, title, description, url,
	labels, saved, completed, pr_url, summary, created_at, updated_at, completed_at`

// Create inserts a new contribution record. The UNIQUE(user_id, issue_id)
// constraint maps to apperror.ErrConflict, which the service treats as
// "someone else saved it first" during a concurrent double-save.
func (db *DB) Create(ctx context.Context, c *model.Contribution) error {
	now := time.Now()
	c.ID = xid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO contributions (id, user_id, issue_id, repository, title, description,
			url, labels, saved, completed, pr_url, summary, created_at, updated_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.UserID,
		c.IssueID,
		c.Repository,
		c.Title,
		c.Description,
		c.URL,
		c.Labels,
		c.Saved,
		c.Completed,
		c.PRUrl,
		c.Summary,
		c.CreatedAt,
		c.UpdatedAt,
		nullableTime(c.CompletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("contribution", c.IssueID)
		}
		return fmt.Errorf("sqlite: inserting contribution (user=%s issue=%s): %w",
			c.UserID, c.IssueID, err)
	}

	return nil
}

// GetByUserAndIssue retrieves the single contribution for a (user, issue)
// pair. Returns apperror.ErrNotFound when no record exists.
func (db *DB) GetByUserAndIssue(ctx context.Context, userID, issueID string) (*model.Contribution, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions
		 WHERE user_id = ? AND issue_id = ?`,
		userID, issueID,
	)

	c, err := scanContribution(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("contribution", issueID)
		}
		return nil, fmt.Errorf("sqlite: getting contribution (user=%s issue=%s): %w",
			userID, issueID, err)
	}
	return c, nil
}

// Update rewrites the mutable fields of an existing record.
func (db *DB) Update(ctx context.Context, c *model.Contribution) error {
	c.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE contributions
		 SET saved = ?, completed = ?, pr_url = ?, summary = ?, updated_at = ?, completed_at = ?
		 WHERE id = ?`,
		c.Saved,
		c.Completed,
		c.PRUrl,
		c.Summary,
		c.UpdatedAt,
		nullableTime(c.CompletedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating contribution %s: %w", c.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for contribution %s: %w", c.ID, err)
	}
	if rows == 0 {
		return apperror.NotFound("contribution", c.ID)
	}
	return nil
}

// Delete removes a contribution by its internal ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM contributions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting contribution %s: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected deleting contribution %s: %w", id, err)
	}
	if rows == 0 {
		return apperror.NotFound("contribution", id)
	}
	return nil
}

// ListSaved returns the user's currently saved contributions, newest first.
func (db *DB) ListSaved(ctx context.Context, userID string) ([]model.Contribution, error) {
	return db.listContributions(ctx,
		`SELECT `+contributionColumns+` FROM contributions
		 WHERE user_id = ? AND saved = 1
		 ORDER BY created_at DESC`,
		userID,
	)
}

// ListCompleted returns the user's completed contributions, newest first.
// Completed records survive unsaving, so this is the user's permanent
// contribution history.
func (db *DB) ListCompleted(ctx context.Context, userID string) ([]model.Contribution, error) {
	return db.listContributions(ctx,
		`SELECT `+contributionColumns+` FROM contributions
		 WHERE user_id = ? AND completed = 1
		 ORDER BY completed_at DESC`,
		userID,
	)
}

func (db *DB) listContributions(ctx context.Context, query string, args ...any) ([]model.Contribution, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contributions: %w", err)
	}
	defer rows.Close()

	var out []model.Contribution
	for rows.Next() {
		c, err := scanContribution(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning contribution: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contributions: %w", err)
	}

	if out == nil {
		out = []model.Contribution{}
	}
	return out, nil
}

// scanContribution works for both *sql.Row and *sql.Rows via their shared
// Scan signature.
func scanContribution(scan func(...any) error) (*model.Contribution, error) {
	var c model.Contribution
	var completedAt sql.NullTime

	err := scan(
		&c.ID,
		&c.UserID,
		&c.IssueID,
		&c.Repository,
		&c.Title,
		&c.Description,
		&c.URL,
		&c.Labels,
		&c.Saved,
		&c.Completed,
		&c.PRUrl,
		&c.Summary,
		&c.CreatedAt,
		&c.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		c.CompletedAt = completedAt.Time
	}
	return &c, nil
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
