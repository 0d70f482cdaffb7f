package session

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/pkg/cerr"
)

type Server struct {
	manager  *Manager
	projects project.Repository
}

func NewServer(manager *Manager, projects project.Repository) *Server {
	return &Server{manager: manager, projects: projects}
}

type CreateSessionRequest struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid request body", err)
			return
		}
	}
	cerr.SetJSONResponse(r.Context(), s.manager.Create(req.Name))
}

func (s *Server) HandleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manager.Get(chi.URLParam(r, "id"))
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

type RenameSessionRequest struct {
	Name string `json:"name"`
}

func (s *Server) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req RenameSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid request body", err)
		return
	}
	sess, ok := s.manager.Rename(chi.URLParam(r, "id"), req.Name)
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

func (s *Server) HandleAddField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manager.AddField(chi.URLParam(r, "id"))
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

func (s *Server) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid field index", err)
		return
	}
	var field schema.Field
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid request body", err)
		return
	}
	// An out-of-range index leaves the list unchanged rather than failing.
	sess, ok := s.manager.UpdateField(chi.URLParam(r, "id"), index, field)
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

func (s *Server) HandleRemoveField(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid field index", err)
		return
	}
	sess, ok := s.manager.RemoveField(chi.URLParam(r, "id"), index)
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

type OpenProjectRequest struct {
	ProjectID string `json:"project_id"`
}

// HandleOpen loads a saved project into the session, replacing its current
// name and field list.
func (s *Server) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.InvalidArgument, "invalid request body", err)
		return
	}
	p, err := s.projects.Get(r.Context(), req.ProjectID)
	if err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	sess, ok := s.manager.Replace(chi.URLParam(r, "id"), p.Name, p.Fields)
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	cerr.SetJSONResponse(r.Context(), sess)
}

type DocumentResponse struct {
	Filename string `json:"filename"`
	Document string `json:"document"`
}

// HandleSchema returns the schema document generated from the session's
// current state. Regenerated on every call; nothing is cached.
func (s *Server) HandleSchema(w http.ResponseWriter, r *http.Request) {
	s.handleDocument(w, r, schema.GenerateSchema, "_schema.json")
}

// HandleLocales returns the locale document for the session's current state.
func (s *Server) HandleLocales(w http.ResponseWriter, r *http.Request) {
	s.handleDocument(w, r, schema.GenerateLocales, "_locales.json")
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request, generate func(string, []schema.Field) (string, error), suffix string) {
	sess, ok := s.manager.Get(chi.URLParam(r, "id"))
	if !ok {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "session not found", nil)
		return
	}
	doc, err := generate(sess.Name, sess.Fields)
	if err != nil {
		cerr.SetNewJSONError(r.Context(), cerr.Internal, "server error", err)
		return
	}
	cerr.SetJSONResponse(r.Context(), DocumentResponse{
		Filename: schema.Handle(sess.Name) + suffix,
		Document: doc,
	})
}
