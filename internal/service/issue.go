// Package service contains the business logic layer of the application.
//
// Services sit between the HTTP handlers and the repositories:
//
//	Handler (HTTP)    → parses requests, writes responses
//	Service (rules)   → validates, enforces preconditions, orchestrates
//	Repository (data) → reads/writes the database
//
// Every service takes its dependencies as interfaces, so tests inject
// in-memory mocks and production code injects SQLite (see main.go for the
// wiring: DB → Repository → Service → Handler).
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgemycode/forgemycode/internal/github"
	"github.com/forgemycode/forgemycode/internal/model"
)

// Pagination bounds for issue discovery.
const (
	DefaultIssuePageSize = 20
	MaxIssuePageSize     = 100

	// DefaultDifficulty is the label searched when the caller picks no
	// difficulty: the canonical entry point for first-time contributors.
	DefaultDifficulty = "good first issue"

	// minSearchTextLen: free text this short (e.g. "go", "js") matches far
	// too broadly to target, so it is treated like no text at all.
	minSearchTextLen = 3
)

// IssueSearcher is the slice of the GitHub client the issue service needs.
// *github.Client satisfies it; tests substitute a stub.
type IssueSearcher interface {
	Search(ctx context.Context, query string, page, perPage int) (*github.SearchResponse, error)
	SearchSeeds(ctx context.Context, filter github.Filter, perRepo int) (*github.SeedSearchResult, error)
}

var _ IssueSearcher = (*github.Client)(nil)

// FetchParams is the filter tuple the discovery UI sends.
type FetchParams struct {
	Language   string
	Difficulty string
	TaskType   string
	Text       string
	Page       int
	PerPage    int
}

// FetchResult is one page of discovered issues. FailedSources names seed
// repositories that could not be searched, so partial failure is visible to
// the caller rather than buried in logs.
type FetchResult struct {
	Issues        []model.Task `json:"issues"`
	HasMore       bool         `json:"hasMore"`
	Page          int          `json:"page"`
	FailedSources []string     `json:"failedSources,omitempty"`
}

// IssueService turns UI filters into GitHub searches and normalized tasks.
type IssueService struct {
	searcher IssueSearcher
	logger   *slog.Logger
}

func NewIssueService(searcher IssueSearcher, logger *slog.Logger) *IssueService {
	return &IssueService{
		searcher: searcher,
		logger:   logger,
	}
}

// FetchIssues returns one page of open, beginner-friendly issues.
//
// Two fetch strategies, picked by the free-text filter:
//
//   - Meaningful text (longer than three characters) fans out over the
//     curated seed repositories, so matches come from well-maintained
//     projects instead of whatever the text happens to hit globally.
//   - Otherwise a single global search runs, forwarding page and perPage
//     to the upstream API.
//
// HasMore is inferred from page fullness: a full page means there is
// probably another one. The search API reports total_count, but it counts
// pull requests we drop during normalization, so it overstates.
func (s *IssueService) FetchIssues(ctx context.Context, params FetchParams) (*FetchResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = DefaultIssuePageSize
	}
	if params.PerPage > MaxIssuePageSize {
		params.PerPage = MaxIssuePageSize
	}

	difficulty := strings.TrimSpace(params.Difficulty)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	filter := github.Filter{
		Language:   strings.TrimSpace(params.Language),
		Difficulty: difficulty,
		TaskType:   strings.TrimSpace(params.TaskType),
		Text:       strings.TrimSpace(params.Text),
	}

	if len(filter.Text) > minSearchTextLen {
		return s.fetchSeeds(ctx, filter, params.Page, params.PerPage)
	}
	filter.Text = ""
	return s.fetchGlobal(ctx, filter, params.Page, params.PerPage)
}

func (s *IssueService) fetchGlobal(ctx context.Context, filter github.Filter, page, perPage int) (*FetchResult, error) {
	query := github.BuildQuery(filter)
	resp, err := s.searcher.Search(ctx, query, page, perPage)
	if err != nil {
		s.logger.Error("issue search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetching issues: %w", err)
	}

	issues := github.NormalizeAll(resp.Items, github.NormalizeOptions{
		DifficultyFilter: github.DifficultyOverride(filter.Difficulty),
		Language:         filter.Language,
	})

	return &FetchResult{
		Issues: issues,
		// Count what survived normalization, not raw items: a page padded
		// with pull requests is not a full page of issues.
		HasMore: len(issues) == perPage,
		Page:    page,
	}, nil
}

func (s *IssueService) fetchSeeds(ctx context.Context, filter github.Filter, page, perPage int) (*FetchResult, error) {
	result, err := s.searcher.SearchSeeds(ctx, filter, perPage)
	if err != nil {
		return nil, fmt.Errorf("fetching issues from seed repositories: %w", err)
	}

	// The fan-out gathers up to perPage issues per repository; page through
	// the combined list locally.
	issues := paginate(result.Tasks, page, perPage)

	return &FetchResult{
		Issues:        issues,
		HasMore:       page*perPage < len(result.Tasks),
		Page:          page,
		FailedSources: result.FailedSources,
	}, nil
}

func paginate(tasks []model.Task, page, perPage int) []model.Task {
	start := (page - 1) * perPage
	if start >= len(tasks) {
		return []model.Task{}
	}
	end := start + perPage
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
