package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

// MaxSummaryLength bounds the reflection summary a user attaches to a
// completed contribution.
const MaxSummaryLength = 2000

// ContributionService tracks which issues a user saved and completed.
//
// All operations are scoped to the authenticated user's own records; the
// userID comes from the verified token, never from the request body.
type ContributionService struct {
	repo   repository.ContributionRepository
	logger *slog.Logger
}

func NewContributionService(repo repository.ContributionRepository, logger *slog.Logger) *ContributionService {
	return &ContributionService{
		repo:   repo,
		logger: logger,
	}
}

// Save records an issue as saved for later. Idempotent: saving an issue the
// user already saved returns the existing record unchanged, and re-saving a
// completed issue that was unsaved flips it back to saved.
//
// The UNIQUE (user, issue) constraint in storage backs this up — if two
// concurrent saves both miss the lookup, one insert loses with a conflict
// and we re-read the winner's record instead of failing the request.
func (s *ContributionService) Save(ctx context.Context, userID string, task *model.Task) (*model.Contribution, error) {
	if task == nil {
		return nil, apperror.ValidationFailed("task", "task payload is required")
	}
	issueID := strings.TrimSpace(task.GithubIssueID)
	if issueID == "" {
		return nil, apperror.ValidationFailed("githubIssueId", "issue ID is required")
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, apperror.ValidationFailed("title", "issue title is required")
	}

	existing, err := s.repo.GetByUserAndIssue(ctx, userID, issueID)
	switch {
	case err == nil:
		if existing.Saved {
			return existing, nil
		}
		existing.Saved = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("re-saving contribution: %w", err)
		}
		return existing, nil
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("looking up contribution: %w", err)
	}

	labels, err := json.Marshal(task.Labels)
	if err != nil {
		return nil, fmt.Errorf("encoding labels: %w", err)
	}

	contribution := &model.Contribution{
		UserID:      userID,
		IssueID:     issueID,
		Repository:  task.Repository,
		Title:       task.Title,
		Description: task.Description,
		URL:         task.URL,
		Labels:      string(labels),
		Saved:       true,
	}

	if err := s.repo.Create(ctx, contribution); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost a race against a concurrent save of the same issue.
			return s.repo.GetByUserAndIssue(ctx, userID, issueID)
		}
		s.logger.Error("failed to save contribution",
			slog.String("userID", userID),
			slog.String("issueID", issueID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving contribution: %w", err)
	}

	s.logger.Info("contribution saved",
		slog.String("userID", userID),
		slog.String("issueID", issueID),
		slog.String("repository", task.Repository),
	)
	return contribution, nil
}

// Unsave removes an issue from the saved list.
//
// A completed contribution is part of the user's track record, so unsaving
// it only flips the saved flag; an uncompleted one is deleted outright.
// Unsaving an issue that was never saved is a no-op, not an error.
func (s *ContributionService) Unsave(ctx context.Context, userID, issueID string) error {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return apperror.ValidationFailed("issueId", "issue ID is required")
	}

	contribution, err := s.repo.GetByUserAndIssue(ctx, userID, issueID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("looking up contribution: %w", err)
	}

	if contribution.Completed {
		contribution.Saved = false
		if err := s.repo.Update(ctx, contribution); err != nil {
			return fmt.Errorf("unsaving completed contribution: %w", err)
		}
		s.logger.Info("completed contribution unsaved",
			slog.String("userID", userID),
			slog.String("issueID", issueID),
		)
		return nil
	}

	if err := s.repo.Delete(ctx, contribution.ID); err != nil {
		return fmt.Errorf("deleting contribution: %w", err)
	}
	s.logger.Info("contribution removed",
		slog.String("userID", userID),
		slog.String("issueID", issueID),
	)
	return nil
}

// Complete marks a saved issue as completed, recording the pull request URL
// and an optional summary. Completing an issue that was never saved is a
// precondition failure: the record to complete does not exist.
func (s *ContributionService) Complete(ctx context.Context, userID, issueID, prURL, summary string) (*model.Contribution, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, apperror.ValidationFailed("issueId", "issue ID is required")
	}
	prURL = strings.TrimSpace(prURL)
	if prURL == "" {
		return nil, apperror.ValidationFailed("prUrl", "pull request URL is required")
	}
	summary = strings.TrimSpace(summary)
	if len(summary) > MaxSummaryLength {
		return nil, apperror.ValidationFailed("summary",
			fmt.Sprintf("summary must be %d characters or less", MaxSummaryLength))
	}

	contribution, err := s.repo.GetByUserAndIssue(ctx, userID, issueID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMsg("task not found: save the task before marking it complete")
		}
		return nil, fmt.Errorf("looking up contribution: %w", err)
	}

	contribution.Completed = true
	contribution.Saved = true
	contribution.PRUrl = prURL
	contribution.Summary = summary
	contribution.CompletedAt = time.Now()

	if err := s.repo.Update(ctx, contribution); err != nil {
		s.logger.Error("failed to complete contribution",
			slog.String("userID", userID),
			slog.String("issueID", issueID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("completing contribution: %w", err)
	}

	s.logger.Info("contribution completed",
		slog.String("userID", userID),
		slog.String("issueID", issueID),
		slog.String("prUrl", prURL),
	)
	return contribution, nil
}

// UpdateSummary rewrites the reflection summary on a completed contribution.
func (s *ContributionService) UpdateSummary(ctx context.Context, userID, issueID, summary string) (*model.Contribution, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, apperror.ValidationFailed("issueId", "issue ID is required")
	}
	summary = strings.TrimSpace(summary)
	if len(summary) > MaxSummaryLength {
		return nil, apperror.ValidationFailed("summary",
			fmt.Sprintf("summary must be %d characters or less", MaxSummaryLength))
	}

	contribution, err := s.repo.GetByUserAndIssue(ctx, userID, issueID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMsg("completed task not found")
		}
		return nil, fmt.Errorf("looking up contribution: %w", err)
	}
	if !contribution.Completed {
		return nil, apperror.NotFoundMsg("completed task not found")
	}

	contribution.Summary = summary
	if err := s.repo.Update(ctx, contribution); err != nil {
		return nil, fmt.Errorf("updating summary: %w", err)
	}

	s.logger.Info("contribution summary updated",
		slog.String("userID", userID),
		slog.String("issueID", issueID),
	)
	return contribution, nil
}

// ListSaved returns the user's saved contributions, newest first.
func (s *ContributionService) ListSaved(ctx context.Context, userID string) ([]model.Contribution, error) {
	contributions, err := s.repo.ListSaved(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list saved contributions",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing saved contributions: %w", err)
	}
	return contributions, nil
}

// ListCompleted returns the user's completed contributions, most recently
// completed first. Includes completed records that were later unsaved.
func (s *ContributionService) ListCompleted(ctx context.Context, userID string) ([]model.Contribution, error) {
	contributions, err := s.repo.ListCompleted(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list completed contributions",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing completed contributions: %w", err)
	}
	return contributions, nil
}
