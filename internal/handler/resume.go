package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/service"
)

// ResumeHandler serves the resume profile endpoints.
type ResumeHandler struct {
	resumes *service.ResumeService
	logger  *slog.Logger
}

func NewResumeHandler(resumes *service.ResumeService, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, logger: logger}
}

type resumeRequest struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

// HandleGet returns the caller's resume, or 404 if they never wrote one
// (the frontend shows the empty editor on 404).
//
// HTTP: GET /api/resume
func (h *ResumeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	resume, err := h.resumes.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

// HandlePut replaces the caller's resume, creating it on first write.
//
// HTTP: PUT /api/resume
func (h *ResumeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	resume, err := h.resumes.Update(r.Context(), userID, service.ResumeInput{
		Title:      req.Title,
		Summary:    req.Summary,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}
