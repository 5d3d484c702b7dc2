package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

const MaxResumeFieldLength = 10000

// ResumeService manages the single resume each user maintains.
type ResumeService struct {
	repo   repository.ResumeRepository
	logger *slog.Logger
}

func NewResumeService(repo repository.ResumeRepository, logger *slog.Logger) *ResumeService {
	return &ResumeService{
		repo:   repo,
		logger: logger,
	}
}

// ResumeInput is the full resume content. Updates replace the whole
// document; there is no per-field patching or version history.
type ResumeInput struct {
	Title      string
	Summary    string
	Skills     string
	Experience string
	Education  string
}

// Update creates the user's resume on first write and replaces it on every
// write after that.
func (s *ResumeService) Update(ctx context.Context, userID string, input ResumeInput) (*model.Resume, error) {
	for field, value := range map[string]string{
		"title":      input.Title,
		"summary":    input.Summary,
		"skills":     input.Skills,
		"experience": input.Experience,
		"education":  input.Education,
	} {
		if len(value) > MaxResumeFieldLength {
			return nil, apperror.ValidationFailed(field,
				fmt.Sprintf("%s must be %d characters or less", field, MaxResumeFieldLength))
		}
	}

	resume := &model.Resume{
		UserID:     userID,
		Title:      strings.TrimSpace(input.Title),
		Summary:    strings.TrimSpace(input.Summary),
		Skills:     strings.TrimSpace(input.Skills),
		Experience: strings.TrimSpace(input.Experience),
		Education:  strings.TrimSpace(input.Education),
	}

	if err := s.repo.Upsert(ctx, resume); err != nil {
		s.logger.Error("failed to upsert resume",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating resume: %w", err)
	}

	s.logger.Info("resume updated", slog.String("userID", userID))
	return resume, nil
}

// Get returns the user's resume. Returns apperror.ErrNotFound when the user
// has never written one; the handler turns that into a 404 the frontend
// treats as "show the empty editor".
func (s *ResumeService) Get(ctx context.Context, userID string) (*model.Resume, error) {
	return s.repo.GetByUserID(ctx, userID)
}
