package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/service"
)

// ContributionHandler serves the saved/completed task endpoints. Every
// route is behind RequireAuth; the userID always comes from the context.
type ContributionHandler struct {
	contributions *service.ContributionService
	validate      *validator.Validate
	logger        *slog.Logger
}

func NewContributionHandler(contributions *service.ContributionService, logger *slog.Logger) *ContributionHandler {
	return &ContributionHandler{
		contributions: contributions,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		logger:        logger,
	}
}

type saveTaskRequest struct {
	GithubIssueID string        `json:"githubIssueId" validate:"required"`
	Title         string        `json:"title" validate:"required"`
	Description   string        `json:"description"`
	Repository    string        `json:"repository"`
	URL           string        `json:"url" validate:"omitempty,url"`
	Labels        []model.Label `json:"labels"`
}

type completeTaskRequest struct {
	PRUrl   string `json:"prUrl" validate:"required,url"`
	Summary string `json:"summary" validate:"max=2000"`
}

type updateSummaryRequest struct {
	Summary string `json:"summary" validate:"max=2000"`
}

// HandleSave saves an issue for later.
//
// HTTP: POST /api/tasks
func (h *ContributionHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req saveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, validationError(err))
		return
	}

	contribution, err := h.contributions.Save(r.Context(), userID, &model.Task{
		GithubIssueID: req.GithubIssueID,
		Title:         req.Title,
		Description:   req.Description,
		Repository:    req.Repository,
		URL:           req.URL,
		Labels:        req.Labels,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contribution)
}

// HandleUnsave removes an issue from the saved list.
//
// HTTP: DELETE /api/tasks/{issueID}
//
// Responds 204 whether or not a record existed; unsave is a no-op on a
// never-saved issue.
func (h *ContributionHandler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.contributions.Unsave(r.Context(), userID, r.PathValue("issueID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleComplete marks a saved issue as completed.
//
// HTTP: POST /api/tasks/{issueID}/complete
// BODY: {"prUrl": "https://github.com/o/r/pull/1", "summary": "what I did"}
func (h *ContributionHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, validationError(err))
		return
	}

	contribution, err := h.contributions.Complete(r.Context(), userID, r.PathValue("issueID"), req.PRUrl, req.Summary)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contribution)
}

// HandleUpdateSummary rewrites the reflection summary on a completed task.
//
// HTTP: PATCH /api/tasks/{issueID}/summary
func (h *ContributionHandler) HandleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req updateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, validationError(err))
		return
	}

	contribution, err := h.contributions.UpdateSummary(r.Context(), userID, r.PathValue("issueID"), req.Summary)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contribution)
}

// HandleListSaved returns the caller's saved tasks.
//
// HTTP: GET /api/tasks/saved
func (h *ContributionHandler) HandleListSaved(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.contributions.ListSaved)
}

// HandleListCompleted returns the caller's completed tasks.
//
// HTTP: GET /api/tasks/completed
func (h *ContributionHandler) HandleListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.contributions.ListCompleted)
}

func (h *ContributionHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, userID string) ([]model.Contribution, error),
) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	contributions, err := fetch(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contributions)
}

// validationError converts a validator.ValidationErrors into the domain
// validation error for the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
		case "url":
			return apperror.ValidationFailed(field, fmt.Sprintf("%s must be a valid URL", field))
		case "max":
			return apperror.ValidationFailed(field, fmt.Sprintf("%s must be %s characters or less", field, fe.Param()))
		default:
			return apperror.ValidationFailed(field, fmt.Sprintf("%s is invalid", field))
		}
	}
	return apperror.ValidationFailed("body", "invalid request body")
}

// jsonFieldName lower-cases the leading character of a struct field name to
// match the JSON casing used in requests (PRUrl → prUrl handled explicitly).
func jsonFieldName(field string) string {
	if field == "PRUrl" {
		return "prUrl"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
