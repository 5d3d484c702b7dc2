package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/github"
	"github.com/forgemycode/forgemycode/internal/service"
)

func TestListIssues(t *testing.T) {
	env := newTestEnv(t)

	t.Run("returns normalized issues", func(t *testing.T) {
		env.search.resp = &github.SearchResponse{Items: []github.RawIssue{
			{
				ID:            101,
				Title:         "Fix broken anchor links in docs",
				Body:          "The anchors in the contributing guide 404.",
				HTMLURL:       "https://github.com/facebook/react/issues/101",
				RepositoryURL: "https://api.github.com/repos/facebook/react",
				Labels:        []github.RawLabel{{Name: "good first issue", Color: "7057ff"}},
			},
			{
				ID:          102,
				Title:       "This one is a PR",
				PullRequest: &struct{ URL string `json:"url"` }{URL: "https://x/pull/102"},
			},
		}}

		rr := env.do(http.MethodGet, "/api/issues?search=anchor+links+docs", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var result service.FetchResult
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
		if assert.Len(t, result.Issues, 1) {
			assert.Equal(t, "101", result.Issues[0].GithubIssueID)
			assert.Equal(t, "beginner", result.Issues[0].Difficulty)
			assert.Equal(t, "facebook/react", result.Issues[0].Repository)
		}
		assert.Equal(t, 1, result.Page)
	})

	t.Run("no auth required", func(t *testing.T) {
		env.search.resp = &github.SearchResponse{Items: []github.RawIssue{}}
		rr := env.do(http.MethodGet, "/api/issues", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid cookie does not block discovery", func(t *testing.T) {
		// Auth on this route is optional: a stale or garbage token is
		// ignored, not rejected.
		env.search.resp = &github.SearchResponse{Items: []github.RawIssue{}}
		cookie := &http.Cookie{Name: auth.CookieName, Value: "not-a-jwt"}
		rr := env.do(http.MethodGet, "/api/issues", "", cookie)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("valid cookie is accepted too", func(t *testing.T) {
		_, cookie := env.authedUser(t, "alice")
		env.search.resp = &github.SearchResponse{Items: []github.RawIssue{}}
		rr := env.do(http.MethodGet, "/api/issues", "", cookie)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rate limit surfaces as 502 with the upstream message", func(t *testing.T) {
		env.search.err = apperror.Upstream("API rate limit exceeded")
		defer func() { env.search.err = nil }()

		rr := env.do(http.MethodGet, "/api/issues?search=anything+at+all", "", nil)
		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var errResp map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "upstream_error", errResp["error"])
		assert.Equal(t, "API rate limit exceeded", errResp["message"])
	})
}
