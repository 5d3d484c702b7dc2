package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

// ResourceService serves the curated learning-resource catalog.
type ResourceService struct {
	repo   repository.ResourceRepository
	logger *slog.Logger
}

func NewResourceService(repo repository.ResourceRepository, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		repo:   repo,
		logger: logger,
	}
}

// Create adds a resource to the catalog.
func (s *ResourceService) Create(ctx context.Context, resource *model.Resource) error {
	if resource.Title == "" || resource.Link == "" || resource.Category == "" {
		return apperror.ValidationFailed("", "title, link and category are required")
	}

	if err := s.repo.CreateResource(ctx, resource); err != nil {
		s.logger.Error("failed to create resource",
			slog.String("title", resource.Title),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("creating resource: %w", err)
	}

	s.logger.Info("resource created",
		slog.String("id", resource.ID),
		slog.String("category", resource.Category),
	)
	return nil
}

// List returns learning resources, optionally filtered by category.
func (s *ResourceService) List(ctx context.Context, category string) ([]model.Resource, error) {
	resources, err := s.repo.ListResources(ctx, category)
	if err != nil {
		s.logger.Error("failed to list resources",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return resources, nil
}
