package export

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/pkg/cerr"
)

// SessionSource mirrors project.SessionSource; downloads work off the live
// editing state as well as saved snapshots.
type SessionSource interface {
	Snapshot(id string) (name string, fields []schema.Field, ok bool)
}

// Server writes generated documents straight to the response, so its routes
// are mounted outside the JSON response middleware.
type Server struct {
	sessions SessionSource
	projects project.Repository
}

func NewServer(sessions SessionSource, projects project.Repository) *Server {
	return &Server{sessions: sessions, projects: projects}
}

func (s *Server) HandleSessionDownload(w http.ResponseWriter, r *http.Request) {
	name, fields, ok := s.sessions.Snapshot(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.write(w, r, name, fields)
}

func (s *Server) HandleProjectDownload(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if cerr.IsCode(err, cerr.NotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "failed to load project for download", "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	s.write(w, r, p.Name, p.Fields)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, name string, fields []schema.Field) {
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := Generate(name, fields, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate document", "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	WriteAttachment(w, Filename(name, kind), doc)
}
