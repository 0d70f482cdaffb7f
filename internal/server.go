package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/formlab/formlab/internal/config"
	"github.com/formlab/formlab/internal/event"
	"github.com/formlab/formlab/internal/export"
	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/session"
	"github.com/formlab/formlab/internal/status"
	"github.com/formlab/formlab/pkg/cerr"
	"github.com/formlab/formlab/pkg/clog"
)

type Server struct {
	server        *http.Server
	env           *config.Env
	catalog       []schema.TypeInfo
	projectServer *project.Server
	sessionServer *session.Server
	exportServer  *export.Server
	statusServer  *status.Server
	eventServer   *event.Server
}

func NewServer(
	env *config.Env,
	catalog []schema.TypeInfo,
	projectServer *project.Server,
	sessionServer *session.Server,
	exportServer *export.Server,
	statusServer *status.Server,
	eventServer *event.Server,
) *Server {
	return &Server{
		env:           env,
		catalog:       catalog,
		projectServer: projectServer,
		sessionServer: sessionServer,
		exportServer:  exportServer,
		statusServer:  statusServer,
		eventServer:   eventServer,
	}
}

// ListenAndServe starts the HTTP server. The provided context is used as the
// base context for all incoming requests via http.Server.BaseContext, so the
// event stream handlers unwind when ctx is cancelled on shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(clog.SlogChiMiddleware())

		// JSON endpoints: responses and errors are collected in the request
		// context and written once by the middleware.
		r.Group(func(r chi.Router) {
			r.Use(cerr.NewJSONResponseChiMiddleware())

			r.Get("/field-types", s.handleFieldTypes)
			r.Get("/status", s.statusServer.HandleStatus)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", s.projectServer.HandleList)
				r.Post("/", s.projectServer.HandleSave)
				r.Get("/{id}", s.projectServer.HandleGet)
				r.Delete("/{id}", s.projectServer.HandleDelete)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", s.sessionServer.HandleCreate)
				r.Get("/{id}", s.sessionServer.HandleGet)
				r.Patch("/{id}", s.sessionServer.HandleRename)
				r.Post("/{id}/fields", s.sessionServer.HandleAddField)
				r.Put("/{id}/fields/{index}", s.sessionServer.HandleUpdateField)
				r.Delete("/{id}/fields/{index}", s.sessionServer.HandleRemoveField)
				r.Post("/{id}/open", s.sessionServer.HandleOpen)
				r.Get("/{id}/schema", s.sessionServer.HandleSchema)
				r.Get("/{id}/locales", s.sessionServer.HandleLocales)
			})

			r.NotFound(func(w http.ResponseWriter, r *http.Request) {
				cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
			})
		})

		// Raw endpoints write the response themselves: file downloads and the
		// server-sent event stream.
		r.Group(func(r chi.Router) {
			r.Get("/projects/{id}/download/{kind}", s.exportServer.HandleProjectDownload)
			r.Get("/sessions/{id}/download/{kind}", s.exportServer.HandleSessionDownload)
			r.Get("/events", s.eventServer.HandleStream)
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)

	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr: addr,
		Handler: h2c.NewHandler(cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(s.apiKeyMiddleware(mux)), &http2.Server{}),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type fieldTypesResponse struct {
	Types []schema.TypeInfo `json:"types"`
}

func (s *Server) handleFieldTypes(w http.ResponseWriter, r *http.Request) {
	cerr.SetJSONResponse(r.Context(), fieldTypesResponse{Types: s.catalog})
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No key configured means the API is open (single-user local setup).
		if s.env.APIKey == "" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = r.Header.Get("Authorization")
			if len(apiKey) > 7 && apiKey[:7] == "Bearer " {
				apiKey = apiKey[7:]
			}
		}
		if apiKey != s.env.APIKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
