package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/service"
)

// IssueHandler serves the issue discovery endpoint.
type IssueHandler struct {
	issues *service.IssueService
	logger *slog.Logger
}

func NewIssueHandler(issues *service.IssueService, logger *slog.Logger) *IssueHandler {
	return &IssueHandler{issues: issues, logger: logger}
}

// HandleList returns one page of beginner-friendly open issues.
//
// HTTP: GET /api/issues?language=Python&difficulty=good+first+issue&taskType=&search=&page=1&perPage=20
//
// All query parameters are optional; the service fills in defaults. The
// route sits behind OptionalAuth: anonymous callers browse freely, and a
// logged-in caller's searches are attributed in the debug log.
func (h *IssueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		h.logger.Debug("issue search",
			slog.String("userId", userID),
			slog.String("search", q.Get("search")),
		)
	}

	params := service.FetchParams{
		Language:   q.Get("language"),
		Difficulty: q.Get("difficulty"),
		TaskType:   q.Get("taskType"),
		Text:       q.Get("search"),
		Page:       intParam(q.Get("page")),
		PerPage:    intParam(q.Get("perPage")),
	}

	result, err := h.issues.FetchIssues(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// intParam parses a numeric query parameter; anything unparseable becomes
// zero and gets defaulted by the service.
func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
