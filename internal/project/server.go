package project

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/formlab/formlab/internal/eventbus"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/status"
	"github.com/formlab/formlab/pkg/cerr"
)

// StatusScope is the notice scope project actions report under.
const StatusScope = "projects"

// SessionSource resolves an editing session into the (name, fields) pair a
// save action snapshots. Implemented by the session manager; declared here so
// this package does not depend on it.
type SessionSource interface {
	Snapshot(id string) (name string, fields []schema.Field, ok bool)
}

type Server struct {
	repo     Repository
	sessions SessionSource
	bus      *eventbus.Bus
	status   *status.Tracker
	now      func() time.Time
}

func NewServer(repo Repository, sessions SessionSource, bus *eventbus.Bus, tracker *status.Tracker) *Server {
	return &Server{
		repo:     repo,
		sessions: sessions,
		bus:      bus,
		status:   tracker,
		now:      time.Now,
	}
}

type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
}

func (s *Server) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repo.List(r.Context())
	if err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	cerr.SetJSONResponse(r.Context(), ListProjectsResponse{Projects: projects})
}

func (s *Server) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	cerr.SetJSONResponse(r.Context(), p)
}

type SaveProjectRequest struct {
	// SessionID snapshots a live editing session; alternatively Name and
	// Fields can be given directly.
	SessionID string         `json:"session_id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Fields    []schema.Field `json:"fields,omitempty"`
}

func (s *Server) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid request body", err)
		return
	}

	name, fields := req.Name, req.Fields
	if req.SessionID != "" {
		var ok bool
		name, fields, ok = s.sessions.Snapshot(req.SessionID)
		if !ok {
			cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
			return
		}
	}

	p := New(name, fields, s.now())
	if err := s.repo.Save(r.Context(), p); err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	s.bus.PublishNew(eventbus.TypeProjectSaved, p.ID)
	s.status.Set(StatusScope, fmt.Sprintf("saved %q", p.Name))
	cerr.SetJSONResponse(r.Context(), p)
}

type DeleteProjectResponse struct {
	ID string `json:"id"`
}

func (s *Server) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.Delete(r.Context(), id); err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	s.bus.PublishNew(eventbus.TypeProjectDeleted, id)
	s.status.Set(StatusScope, fmt.Sprintf("deleted %q", id))
	cerr.SetJSONResponse(r.Context(), DeleteProjectResponse{ID: id})
}
