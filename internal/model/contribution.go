package model

import "time"

// Contribution is the durable record of a user's engagement with one GitHub
// issue. There is at most one per (UserID, IssueID) pair — enforced by a
// UNIQUE constraint in the database, not just by find-or-create logic.
//
// Lifecycle:
//   - created on first save (Saved=true)
//   - Complete sets Completed=true and fills PRUrl/Summary
//   - Unsave on a completed record only flips Saved to false, preserving
//     the completion history; on an uncompleted record it deletes the row
type Contribution struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	IssueID     string    `json:"issueId"` // upstream GitHub issue ID
	Repository  string    `json:"repository"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Labels      string    `json:"labels"` // JSON-encoded []Label snapshot
	Saved       bool      `json:"saved"`
	Completed   bool      `json:"completed"`
	PRUrl       string    `json:"prUrl,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}
