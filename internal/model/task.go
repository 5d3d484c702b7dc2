// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Label is one GitHub issue label as returned by the search API.
// Order is preserved from the upstream response.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Task is a normalized GitHub issue presented to the user as a candidate
// contribution. It is transient: rebuilt on every search request and never
// persisted on its own. Only when a user saves or completes it does a
// durable Contribution record get created from it.
//
// GithubIssueID is the upstream issue ID kept verbatim as a string — it is
// only unique within GitHub, not globally, so durable records get their own
// xid-based identity.
type Task struct {
	GithubIssueID  string   `json:"githubIssueId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"` // ≤300 chars, newlines collapsed
	Repository     string   `json:"repository"`  // "owner/name"
	URL            string   `json:"url"`         // canonical link to the issue
	Labels         []Label  `json:"labels"`
	Difficulty     string   `json:"difficulty"` // beginner | intermediate | advanced
	EstimatedHours string   `json:"estimatedHours"`
	Tags           []string `json:"tags"`
	Language       string   `json:"language,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"` // upstream timestamp, passed through
}

// Difficulty levels inferred from issue labels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)
