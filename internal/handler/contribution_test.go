package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgemycode/forgemycode/internal/model"
)

const saveBody = `{
	"githubIssueId": "42",
	"title": "Fix typo in README",
	"description": "small fix",
	"repository": "facebook/react",
	"url": "https://github.com/facebook/react/issues/42",
	"labels": [{"name": "good first issue", "color": "7057ff"}]
}`

func TestSaveTask(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.authedUser(t, "alice")

	t.Run("creates a saved record", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks", saveBody, cookie)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var c model.Contribution
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.Equal(t, "42", c.IssueID)
		assert.True(t, c.Saved)
		assert.False(t, c.Completed)
	})

	t.Run("saving twice is idempotent", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks", saveBody, cookie)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var c model.Contribution
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.True(t, c.Saved)
		assert.Len(t, env.contrib.byID, 1)
	})

	t.Run("requires authentication", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks", saveBody, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks", `{"githubIssueId":"7"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks", `{"githubIssueId":`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCompleteTask(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.authedUser(t, "alice")

	t.Run("completing an unsaved task is 404", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks/42/complete",
			`{"prUrl":"https://x/pull/1","summary":"done"}`, cookie)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("completes a saved task", func(t *testing.T) {
		env.do(http.MethodPost, "/api/tasks", saveBody, cookie)

		rr := env.do(http.MethodPost, "/api/tasks/42/complete",
			`{"prUrl":"https://x/pull/1","summary":"done"}`, cookie)
		assert.Equal(t, http.StatusOK, rr.Code)

		var c model.Contribution
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.True(t, c.Completed)
		assert.True(t, c.Saved)
		assert.Equal(t, "https://x/pull/1", c.PRUrl)
		assert.Equal(t, "done", c.Summary)
		assert.False(t, c.CompletedAt.IsZero())
	})

	t.Run("rejects a non-URL prUrl", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks/42/complete",
			`{"prUrl":"not a url"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects a missing prUrl", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/tasks/42/complete", `{"summary":"done"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUnsaveTask(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.authedUser(t, "alice")

	t.Run("unsave of a never-saved task is a 204 no-op", func(t *testing.T) {
		rr := env.do(http.MethodDelete, "/api/tasks/999", "", cookie)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("unsave deletes an uncompleted task", func(t *testing.T) {
		env.do(http.MethodPost, "/api/tasks", saveBody, cookie)

		rr := env.do(http.MethodDelete, "/api/tasks/42", "", cookie)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, env.contrib.byID)
	})

	t.Run("unsave keeps a completed task", func(t *testing.T) {
		env.do(http.MethodPost, "/api/tasks", saveBody, cookie)
		env.do(http.MethodPost, "/api/tasks/42/complete", `{"prUrl":"https://x/pull/1"}`, cookie)

		rr := env.do(http.MethodDelete, "/api/tasks/42", "", cookie)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = env.do(http.MethodGet, "/api/tasks/completed", "", cookie)
		assert.Equal(t, http.StatusOK, rr.Code)

		var completed []model.Contribution
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&completed))
		if assert.Len(t, completed, 1) {
			assert.False(t, completed[0].Saved)
			assert.True(t, completed[0].Completed)
		}
	})
}

func TestUpdateSummary(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.authedUser(t, "alice")

	t.Run("rejects an uncompleted task", func(t *testing.T) {
		env.do(http.MethodPost, "/api/tasks", saveBody, cookie)

		rr := env.do(http.MethodPatch, "/api/tasks/42/summary", `{"summary":"too early"}`, cookie)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("updates a completed task", func(t *testing.T) {
		env.do(http.MethodPost, "/api/tasks/42/complete", `{"prUrl":"https://x/pull/1","summary":"v1"}`, cookie)

		rr := env.do(http.MethodPatch, "/api/tasks/42/summary", `{"summary":"v2"}`, cookie)
		assert.Equal(t, http.StatusOK, rr.Code)

		var c model.Contribution
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
		assert.Equal(t, "v2", c.Summary)
	})
}

func TestTaskLists_ScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	_, aliceCookie := env.authedUser(t, "alice")
	_, bobCookie := env.authedUser(t, "bob")

	env.do(http.MethodPost, "/api/tasks", saveBody, aliceCookie)

	rr := env.do(http.MethodGet, "/api/tasks/saved", "", bobCookie)
	assert.Equal(t, http.StatusOK, rr.Code)

	var saved []model.Contribution
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&saved))
	assert.Empty(t, saved)
}
