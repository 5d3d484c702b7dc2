package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, username, password_hash, display_name, role, avatar_initials,
	avatar_url, level, level_progress, github_id, created_at, updated_at`

// Create inserts a new password-registered user. The username UNIQUE
// constraint turns duplicate registrations into apperror.ErrConflict.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	if user.Level == "" {
		user.Level = "beginner"
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, display_name, role,
			avatar_initials, avatar_url, level, level_progress, github_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.AvatarInitials,
		user.AvatarURL,
		user.Level,
		user.LevelProgress,
		nullableGitHubID(user.GitHubID),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username (used by login).
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user by username %q: %w", username, err)
	}
	return user, nil
}

// UpsertGitHub inserts or updates a user keyed by their GitHub ID.
//
// GitHub guarantees the numeric ID is stable and unique, so: first OAuth
// login → INSERT; later logins → UPDATE the profile fields in case they
// changed on GitHub. The existing internal ID is always preserved.
func (db *DB) UpsertGitHub(ctx context.Context, user *model.User) error {
	var existingID string
	var createdAt time.Time
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, created_at FROM users WHERE github_id = ?`, user.GitHubID,
	).Scan(&existingID, &createdAt)

	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up user by github_id %d: %w", user.GitHubID, err)
	}

	if existingID != "" {
		user.ID = existingID
		user.CreatedAt = createdAt
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET username = ?, display_name = ?, avatar_url = ?, updated_at = ?
			 WHERE id = ?`,
			user.Username,
			user.DisplayName,
			user.AvatarURL,
			user.UpdatedAt,
			user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	return db.Create(ctx, user)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var githubID sql.NullInt64

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Role,
		&u.AvatarInitials,
		&u.AvatarURL,
		&u.Level,
		&u.LevelProgress,
		&githubID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.GitHubID = githubID.Int64
	return &u, nil
}

// nullableGitHubID maps the zero value to NULL so password users don't
// collide on the github_id UNIQUE index.
func nullableGitHubID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// isUniqueViolation detects SQLite's UNIQUE constraint error. The driver
// doesn't expose a typed error for it, so we match the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
