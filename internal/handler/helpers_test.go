package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/github"
	"github.com/forgemycode/forgemycode/internal/handler"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/service"
)

// The handler tests exercise real routes through a chi router with the
// production auth middleware, backed by in-memory fakes at the repository
// boundary. That covers routing, middleware, JSON codecs, and error
// mapping in one pass.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("user", user.Username)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.Level = "beginner"
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *memUserRepo) UpsertGitHub(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.GitHubID == user.GitHubID {
			u.Username = user.Username
			u.DisplayName = user.DisplayName
			u.AvatarURL = user.AvatarURL
			*user = *u
			return nil
		}
	}
	return m.Create(context.Background(), user)
}

// memContributionRepo is an in-memory repository.ContributionRepository
// with the same UNIQUE (user, issue) behavior as the SQLite layer.
type memContributionRepo struct {
	byID   map[string]*model.Contribution
	nextID int
}

func newMemContributionRepo() *memContributionRepo {
	return &memContributionRepo{byID: make(map[string]*model.Contribution)}
}

func (m *memContributionRepo) Create(_ context.Context, c *model.Contribution) error {
	for _, existing := range m.byID {
		if existing.UserID == c.UserID && existing.IssueID == c.IssueID {
			return apperror.Conflict("contribution", c.IssueID)
		}
	}
	m.nextID++
	c.ID = fmt.Sprintf("contrib-%d", m.nextID)
	stored := *c
	m.byID[c.ID] = &stored
	return nil
}

func (m *memContributionRepo) GetByUserAndIssue(_ context.Context, userID, issueID string) (*model.Contribution, error) {
	for _, c := range m.byID {
		if c.UserID == userID && c.IssueID == issueID {
			result := *c
			return &result, nil
		}
	}
	return nil, apperror.NotFound("contribution", issueID)
}

func (m *memContributionRepo) Update(_ context.Context, c *model.Contribution) error {
	if _, ok := m.byID[c.ID]; !ok {
		return apperror.NotFound("contribution", c.ID)
	}
	stored := *c
	m.byID[c.ID] = &stored
	return nil
}

func (m *memContributionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.NotFound("contribution", id)
	}
	delete(m.byID, id)
	return nil
}

func (m *memContributionRepo) ListSaved(_ context.Context, userID string) ([]model.Contribution, error) {
	out := []model.Contribution{}
	for _, c := range m.byID {
		if c.UserID == userID && c.Saved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memContributionRepo) ListCompleted(_ context.Context, userID string) ([]model.Contribution, error) {
	out := []model.Contribution{}
	for _, c := range m.byID {
		if c.UserID == userID && c.Completed {
			out = append(out, *c)
		}
	}
	return out, nil
}

// memResumeRepo is an in-memory repository.ResumeRepository.
type memResumeRepo struct {
	byUser map[string]*model.Resume
	nextID int
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{byUser: make(map[string]*model.Resume)}
}

func (m *memResumeRepo) Upsert(_ context.Context, resume *model.Resume) error {
	if existing, ok := m.byUser[resume.UserID]; ok {
		resume.ID = existing.ID
		resume.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		resume.ID = fmt.Sprintf("resume-%d", m.nextID)
	}
	stored := *resume
	m.byUser[resume.UserID] = &stored
	return nil
}

func (m *memResumeRepo) GetByUserID(_ context.Context, userID string) (*model.Resume, error) {
	r, ok := m.byUser[userID]
	if !ok {
		return nil, apperror.NotFound("resume", userID)
	}
	result := *r
	return &result, nil
}

// memResourceRepo is an in-memory repository.ResourceRepository.
type memResourceRepo struct {
	resources []model.Resource
	nextID    int
}

func (m *memResourceRepo) CreateResource(_ context.Context, resource *model.Resource) error {
	m.nextID++
	resource.ID = fmt.Sprintf("resource-%d", m.nextID)
	m.resources = append(m.resources, *resource)
	return nil
}

func (m *memResourceRepo) ListResources(_ context.Context, category string) ([]model.Resource, error) {
	out := []model.Resource{}
	for _, r := range m.resources {
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}

// stubSearcher serves canned GitHub search responses.
type stubSearcher struct {
	resp *github.SearchResponse
	err  error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _, _ int) (*github.SearchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubSearcher) SearchSeeds(_ context.Context, _ github.Filter, perRepo int) (*github.SeedSearchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	tasks := github.NormalizeAll(s.resp.Items, github.NormalizeOptions{})
	return &github.SeedSearchResult{Tasks: tasks}, nil
}

// testEnv bundles the router and the fakes behind it.
type testEnv struct {
	router    *chi.Mux
	tokens    *auth.TokenService
	users     *memUserRepo
	contrib   *memContributionRepo
	resumes   *memResumeRepo
	resources *memResourceRepo
	search    *stubSearcher
}

// newTestEnv builds the API routes the same way server.setupRoutes does,
// minus the database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testLogger()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)
	oauth := auth.NewGitHubProvider("", "", "")

	env := &testEnv{
		tokens:    tokens,
		users:     newMemUserRepo(),
		contrib:   newMemContributionRepo(),
		resumes:   newMemResumeRepo(),
		resources: &memResourceRepo{},
		search:    &stubSearcher{resp: &github.SearchResponse{Items: []github.RawIssue{}}},
	}

	authService := service.NewAuthService(env.users, tokens, passwords, logger)
	issueService := service.NewIssueService(env.search, logger)
	contributionService := service.NewContributionService(env.contrib, logger)
	resumeService := service.NewResumeService(env.resumes, logger)
	resourceService := service.NewResourceService(env.resources, logger)

	authHandler := handler.NewAuthHandler(authService, oauth, "http://localhost:3000", logger)
	issueHandler := handler.NewIssueHandler(issueService, logger)
	contributionHandler := handler.NewContributionHandler(contributionService, logger)
	resumeHandler := handler.NewResumeHandler(resumeService, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/auth/me", authHandler.HandleMe)

		r.With(optionalAuth).Get("/issues", issueHandler.HandleList)
		r.Get("/resources", resourceHandler.HandleList)
		r.With(requireAuth).Post("/resources", resourceHandler.HandleCreate)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/tasks", contributionHandler.HandleSave)
			r.Get("/tasks/saved", contributionHandler.HandleListSaved)
			r.Get("/tasks/completed", contributionHandler.HandleListCompleted)
			r.Delete("/tasks/{issueID}", contributionHandler.HandleUnsave)
			r.Post("/tasks/{issueID}/complete", contributionHandler.HandleComplete)
			r.Patch("/tasks/{issueID}/summary", contributionHandler.HandleUpdateSummary)

			r.Get("/resume", resumeHandler.HandleGet)
			r.Put("/resume", resumeHandler.HandlePut)
		})
	})
	env.router = r
	return env
}

// authedUser creates a user directly in the fake repo and returns the ID
// and a valid auth cookie for it.
func (env *testEnv) authedUser(t *testing.T, username string) (string, *http.Cookie) {
	t.Helper()
	user := &model.User{Username: username, DisplayName: username}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	token, err := env.tokens.Generate(user.ID)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return user.ID, &http.Cookie{Name: auth.CookieName, Value: token}
}

// do runs one request through the router and returns the recorder.
func (env *testEnv) do(method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}
