package export_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/formlab/internal/export"
	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/project/repositoryimpl"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/session"
	"github.com/formlab/formlab/pkg/storage"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "my_section_schema.json", export.Filename("My Section", export.KindSchema))
	assert.Equal(t, "my_section_locales.json", export.Filename("My Section", export.KindLocales))
}

func TestParseKind(t *testing.T) {
	_, err := export.ParseKind("schema")
	assert.NoError(t, err)
	_, err = export.ParseKind("locales")
	assert.NoError(t, err)
	_, err = export.ParseKind("yaml")
	assert.Error(t, err)
}

func newTestRouter(t *testing.T) (*chi.Mux, *session.Manager, project.Repository) {
	t.Helper()
	manager := session.NewManager()
	repo := repositoryimpl.NewJSONRepository(storage.NewMemory())
	srv := export.NewServer(manager, repo)

	r := chi.NewRouter()
	r.Get("/api/sessions/{id}/download/{kind}", srv.HandleSessionDownload)
	r.Get("/api/projects/{id}/download/{kind}", srv.HandleProjectDownload)
	return r, manager, repo
}

func TestProjectDownload(t *testing.T) {
	r, _, repo := newTestRouter(t)

	p := project.New("My Section", []schema.Field{
		{Type: schema.TypeText, ID: "title", Label: "Title"},
	}, time.Now())
	require.NoError(t, repo.Save(context.Background(), p))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/my_section/download/schema", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="my_section_schema.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"t:sections.my_section.settings.title.label"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/missing/download/schema", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/my_section/download/exe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionDownload(t *testing.T) {
	r, manager, _ := newTestRouter(t)
	sess := manager.Create("Live Draft")
	manager.AddField(sess.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"/download/locales", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="live_draft_locales.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"live_draft"`)
}
