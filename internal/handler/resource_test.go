package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgemycode/forgemycode/internal/model"
)

func TestResourceEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.authedUser(t, "alice")

	t.Run("create requires authentication", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/resources",
			`{"title":"Pro Git","link":"https://git-scm.com/book","category":"git"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("create adds to the catalog", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/resources",
			`{"title":"Pro Git","description":"The Git book","link":"https://git-scm.com/book","category":"git"}`, cookie)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resource model.Resource
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resource))
		assert.NotEmpty(t, resource.ID)
		assert.Equal(t, "Pro Git", resource.Title)
	})

	t.Run("create rejects a missing link", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/resources",
			`{"title":"No link","category":"git"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list is public", func(t *testing.T) {
		rr := env.do(http.MethodGet, "/api/resources", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resources []model.Resource
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resources))
		assert.Len(t, resources, 1)
	})

	t.Run("list filters by category", func(t *testing.T) {
		env.do(http.MethodPost, "/api/resources",
			`{"title":"Open Source Guide","link":"https://opensource.guide","category":"open-source"}`, cookie)

		rr := env.do(http.MethodGet, "/api/resources?category=open-source", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resources []model.Resource
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resources))
		if assert.Len(t, resources, 1) {
			assert.Equal(t, "Open Source Guide", resources[0].Title)
		}
	})
}
