package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/forgemycode/forgemycode/internal/apperror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		Token:   "test-token",
		BaseURL: srv.URL,
	}, testLogger())
}

func TestSearch_RequestShape(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAccept string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")

		if r.URL.Query().Get("sort") != "updated" || r.URL.Query().Get("order") != "desc" {
			t.Errorf("sort/order = %s/%s, want updated/desc",
				r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
		}
		if r.URL.Query().Get("page") != "1" || r.URL.Query().Get("per_page") != "10" {
			t.Errorf("page/per_page = %s/%s, want 1/10",
				r.URL.Query().Get("page"), r.URL.Query().Get("per_page"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_count":0,"items":[]}`))
	})

	query := BuildQuery(Filter{Language: "Python", Difficulty: "good first issue"})
	resp, err := client.Search(context.Background(), query, 1, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("Items = %v, want empty", resp.Items)
	}

	if gotPath != "/search/issues" {
		t.Errorf("path = %q, want /search/issues", gotPath)
	}
	if want := `is:issue is:open label:"good first issue" language:Python`; gotQuery != want {
		t.Errorf("q = %q, want %q", gotQuery, want)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer credential", gotAuth)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestSearch_DecodesItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"total_count": 1,
			"items": [{
				"id": 42,
				"title": "Fix typo",
				"body": "small fix",
				"html_url": "https://github.com/golang/go/issues/1",
				"repository_url": "https://api.github.com/repos/golang/go",
				"labels": [{"name": "good first issue", "color": "7057ff"}]
			}]
		}`))
	})

	resp, err := client.Search(context.Background(), "is:issue is:open", 1, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(resp.Items))
	}
	if resp.Items[0].ID != 42 || resp.Items[0].Labels[0].Name != "good first issue" {
		t.Errorf("decoded item = %+v", resp.Items[0])
	}
}

func TestSearch_RateLimitedBodyFails(t *testing.T) {
	// GitHub reports rate limiting as a JSON body with a message and no
	// items array. The error must carry the upstream message verbatim.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})

	_, err := client.Search(context.Background(), "is:issue is:open", 1, 10)
	if err == nil {
		t.Fatal("Search() should fail when items is missing")
	}
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
	if err.Error() != "API rate limit exceeded" {
		t.Errorf("error message = %q, want the upstream message", err.Error())
	}
}

func TestSearch_MalformedBodyFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.Search(context.Background(), "is:issue is:open", 1, 10)
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream for malformed body", err)
	}
}

func TestSearch_NoTokenOmitsAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("Authorization header sent without a configured token")
		}
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, testLogger())
	if _, err := client.Search(context.Background(), "is:issue is:open", 1, 5); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
}
