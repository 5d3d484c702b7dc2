// Package repository defines the storage interfaces consumed by the service
// layer. The concrete implementation lives in repository/sqlite; services
// depend only on these interfaces so tests can inject in-memory mocks.
package repository

import (
	"context"

	"github.com/forgemycode/forgemycode/internal/model"
)

// UserRepository persists user accounts.
//
// Create is for username+password registration and returns
// apperror.ErrConflict when the username is taken. UpsertGitHub is for
// OAuth logins: insert on first login, refresh profile fields afterwards,
// keyed by the stable GitHub ID.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpsertGitHub(ctx context.Context, user *model.User) error
}

// ContributionRepository persists saved/completed task records.
//
// The (userID, issueID) pair is unique: GetByUserAndIssue returns
// apperror.ErrNotFound when no record exists, and Create fails with
// apperror.ErrConflict if a concurrent save already inserted one.
type ContributionRepository interface {
	Create(ctx context.Context, c *model.Contribution) error
	GetByUserAndIssue(ctx context.Context, userID, issueID string) (*model.Contribution, error)
	Update(ctx context.Context, c *model.Contribution) error
	Delete(ctx context.Context, id string) error
	ListSaved(ctx context.Context, userID string) ([]model.Contribution, error)
	ListCompleted(ctx context.Context, userID string) ([]model.Contribution, error)
}

// ResumeRepository persists the one-per-user resume. Upsert creates the
// record on first write and overwrites it afterwards, keyed by UserID.
type ResumeRepository interface {
	Upsert(ctx context.Context, resume *model.Resume) error
	GetByUserID(ctx context.Context, userID string) (*model.Resume, error)
}

// ResourceRepository persists curated learning resources.
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource *model.Resource) error
	ListResources(ctx context.Context, category string) ([]model.Resource, error)
}
