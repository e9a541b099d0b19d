package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/pipeline"
	"github.com/pedigraph/pedigraph/pkg/store"
)

// maxBodyBytes bounds request bodies; a million-person tree serialized as
// JSON stays well under this.
const maxBodyBytes = 32 << 20

// layoutRequest is the body of POST /api/v1/layout.
type layoutRequest struct {
	Tree    graph.Tree       `json:"tree"`
	Options pipeline.Options `json:"options"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.computeAndWrite(w, r, req.Tree, req.Options)
}

func (s *Server) handleTreeLayout(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	if v := r.URL.Query().Get("child_order"); v != "" {
		opts.ChildOrder = v
	}
	s.computeAndWrite(w, r, t, opts)
}

// computeAndWrite runs the pipeline and writes either the layout document
// or a rendered artifact, depending on the format parameter.
func (s *Server) computeAndWrite(w http.ResponseWriter, r *http.Request, t graph.Tree, opts pipeline.Options) {
	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		l, err := s.runner.ComputeLayout(r.Context(), t, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, l)
		return
	}

	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "unsupported format"))
		return
	}

	opts.Formats = []string{format}
	result, err := s.runner.Execute(r.Context(), t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleSaveTree(w http.ResponseWriter, r *http.Request) {
	var t graph.Tree
	if !s.decodeBody(w, r, &t) {
		return
	}

	saved, err := s.store.Save(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if infos == nil {
		infos = []store.TreeInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON body, writing the error response itself on
// failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return false
	}
	return true
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json"
	}
}
