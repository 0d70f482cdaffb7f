package project_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/formlab/internal/eventbus"
	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/project/repositoryimpl"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/status"
	"github.com/formlab/formlab/pkg/cerr"
	"github.com/formlab/formlab/pkg/storage"
)

type stubSessions struct {
	name   string
	fields []schema.Field
	known  bool
}

func (s *stubSessions) Snapshot(string) (string, []schema.Field, bool) {
	return s.name, s.fields, s.known
}

func newTestRouter(t *testing.T, sessions project.SessionSource) (*chi.Mux, project.Repository, *status.Tracker) {
	t.Helper()
	repo := repositoryimpl.NewJSONRepository(storage.NewMemory())
	tracker := status.NewTracker(time.Minute)
	srv := project.NewServer(repo, sessions, eventbus.New(), tracker)

	r := chi.NewRouter()
	r.Use(cerr.NewJSONResponseChiMiddleware())
	r.Get("/api/projects", srv.HandleList)
	r.Post("/api/projects", srv.HandleSave)
	r.Get("/api/projects/{id}", srv.HandleGet)
	r.Delete("/api/projects/{id}", srv.HandleDelete)
	return r, repo, tracker
}

func TestSaveAndGetProject(t *testing.T) {
	r, _, tracker := newTestRouter(t, &stubSessions{})

	body := `{"name":"My Section","fields":[{"type":"text","id":"title","label":"Title"}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"my_section"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/my_section", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Title"`)

	notice, ok := tracker.Get(project.StatusScope)
	require.True(t, ok)
	assert.Equal(t, `saved "My Section"`, notice.Message)
}

func TestSaveFromSession(t *testing.T) {
	sessions := &stubSessions{
		name:   "Hero Banner",
		fields: []schema.Field{{Type: schema.TypeText, ID: "title", Label: "Title"}},
		known:  true,
	}
	r, repo, _ := newTestRouter(t, sessions)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"session_id":"abc"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := repo.Get(context.Background(), "hero_banner")
	require.NoError(t, err)
	assert.Equal(t, "Hero Banner", p.Name)
	assert.Len(t, p.Fields, 1)
}

func TestSaveUnknownSession(t *testing.T) {
	r, _, _ := newTestRouter(t, &stubSessions{known: false})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"session_id":"ghost"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NotFound","message":"session not found"}`, rec.Body.String())
}

func TestDeleteIsIdempotent(t *testing.T) {
	r, _, _ := newTestRouter(t, &stubSessions{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/projects/never_saved", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProjects(t *testing.T) {
	r, _, _ := newTestRouter(t, &stubSessions{})

	for _, body := range []string{`{"name":"B Section"}`, `{"name":"A Section"}`} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	// Ordered by derived id.
	assert.Regexp(t, `a_section[\s\S]*b_section`, rec.Body.String())
}
