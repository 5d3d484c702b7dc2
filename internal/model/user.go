// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Two login paths create users: username+password registration (the primary
// flow) and GitHub OAuth. A password user has PasswordHash set and GitHubID
// zero; an OAuth user has GitHubID set and no password. Either way the
// internal xid string ID is the primary key, so our keys are never tied to
// a third party's numbering scheme.
//
// WHY GitHubID int64?
// GitHub user IDs are integers (e.g. 1234567). int64 avoids overflow for
// large account numbers. The UNIQUE index on github_id ensures one GitHub
// account maps to exactly one app account.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"` // never serialized
	DisplayName    string    `json:"displayName"`
	Role           string    `json:"role,omitempty"`
	AvatarInitials string    `json:"avatarInitials,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	Level          string    `json:"level"`         // "beginner" at creation
	LevelProgress  int       `json:"levelProgress"` // 0–100
	GitHubID       int64     `json:"githubId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
