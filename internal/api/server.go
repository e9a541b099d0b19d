// Package api implements the pedigraph HTTP server: tree storage CRUD and
// layout computation over a JSON API.
//
// # Endpoints
//
//	GET    /healthz                    liveness probe
//	POST   /api/v1/layout              compute a layout for an inline tree
//	POST   /api/v1/trees               save a tree document
//	GET    /api/v1/trees               list stored trees
//	GET    /api/v1/trees/{id}          load one tree document
//	DELETE /api/v1/trees/{id}          delete one tree document
//	GET    /api/v1/trees/{id}/layout   compute a layout for a stored tree
//
// Layout endpoints return the layout document as JSON by default; the
// format query parameter (svg, json) selects the artifact instead.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pedigraph/pedigraph/pkg/pipeline"
	"github.com/pedigraph/pedigraph/pkg/store"
)

// Server wires the HTTP layer to the store and the layout pipeline.
type Server struct {
	store  store.TreeStore
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server. The runner's cache decides whether repeated
// layout requests recompute or not; pass a NullCache-backed runner to
// disable caching.
func NewServer(ts store.TreeStore, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: ts, runner: runner, logger: logger}
}

// Router builds the chi handler with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/trees", func(r chi.Router) {
			r.Post("/", s.handleSaveTree)
			r.Get("/", s.handleListTrees)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTree)
				r.Delete("/", s.handleDeleteTree)
				r.Get("/layout", s.handleTreeLayout)
			})
		})
	})

	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
