// Package github implements the issue-discovery pipeline: building GitHub
// Search API queries, fetching pages of issues, and normalizing the raw
// responses into model.Task records.
//
// This is deliberately a thin client, not an engine. Each search is one
// outbound HTTP round trip (or a short best-effort fan-out over a few seed
// repositories); there is no caching, no retry policy, and no client-side
// throttling — GitHub's own 403/429 responses surface directly to the
// caller as upstream errors.
//
// PIPELINE:
//
//	Filter → BuildQuery → Client.Search (network) → Normalize → []model.Task
package github

// RawIssue is the subset of a GitHub search-API issue object we consume.
// The search endpoint conflates issues and pull requests; PullRequest is
// non-nil exactly when the item is actually a PR, and such items are
// filtered out before normalization.
type RawIssue struct {
	ID            int64      `json:"id"`
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	HTMLURL       string     `json:"html_url"`
	RepositoryURL string     `json:"repository_url"`
	Labels        []RawLabel `json:"labels"`
	State         string     `json:"state"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
	PullRequest   *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
	User struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user"`
}

// RawLabel mirrors one entry of an issue's labels array.
type RawLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SearchResponse is the body of a GET /search/issues response. On errors
// (rate limiting, bad queries) GitHub returns a body with Message set and
// no items array — Items stays nil, which Client.Search treats as failure.
type SearchResponse struct {
	TotalCount        int        `json:"total_count"`
	IncompleteResults bool       `json:"incomplete_results"`
	Items             []RawIssue `json:"items"`
	Message           string     `json:"message,omitempty"`
}
