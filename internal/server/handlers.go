package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/graph"
	"github.com/mlorenz/asciigram/pkg/pipeline"
	"github.com/mlorenz/asciigram/pkg/store"
)

// maxBodySize caps request bodies at 1 MiB; diagram sources are small.
const maxBodySize = 1 << 20

// renderRequest is the body of POST /render. Exactly one of source and
// graph carries the diagram: source is flowchart text, graph is a
// serialized graph IR as produced by the json output format.
type renderRequest struct {
	Source    string          `json:"source,omitempty"`
	Graph     json.RawMessage `json:"graph,omitempty"`
	Format    string          `json:"format,omitempty"`
	Charset   string          `json:"charset,omitempty"`
	Padding   *int            `json:"padding,omitempty"`
	Direction string          `json:"direction,omitempty"`
	NoCache   bool            `json:"no_cache,omitempty"`
}

// renderResponse is the body of a successful render.
type renderResponse struct {
	Output    string `json:"output"`
	Format    string `json:"format"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
	CacheHit  bool   `json:"cache_hit"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type diagramRequest struct {
	Title  string `json:"title,omitempty"`
	Source string `json:"source"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.renderSource(w, r, req)
}

func (s *Server) renderSource(w http.ResponseWriter, r *http.Request, req renderRequest) {
	opts := pipeline.Options{
		Source:    req.Source,
		Format:    req.Format,
		Charset:   req.Charset,
		Padding:   req.Padding,
		Direction: req.Direction,
		NoCache:   req.NoCache,
	}
	if len(req.Graph) > 0 {
		g, err := graph.Unmarshal(req.Graph)
		if err != nil {
			writeAppError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decoding graph"))
			return
		}
		opts.Graph = g
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Output:    string(result.Output),
		Format:    orDefault(req.Format, pipeline.FormatText),
		NodeCount: result.Stats.NodeCount,
		EdgeCount: result.Stats.EdgeCount,
		CacheHit:  result.CacheHit,
	})
}

func (s *Server) handleDiagramCreate(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "source is required")
		return
	}

	d := store.NewDiagram(req.Title, req.Source)
	if err := s.store.Put(r.Context(), d); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDiagramList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*store.Diagram{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDiagramGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleDiagramRender renders a stored diagram. Render options come
// from query parameters (format, charset, direction).
func (s *Server) handleDiagramRender(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	q := r.URL.Query()
	s.renderSource(w, r, renderRequest{
		Source:    d.Source,
		Format:    q.Get("format"),
		Charset:   q.Get("charset"),
		Direction: q.Get("direction"),
	})
}

func (s *Server) handleDiagramDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads and decodes a JSON request body, writing the error
// response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "reading request body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid JSON body")
		return false
	}
	return true
}

// writeAppError maps structured error codes to HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSource,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidCharset, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound,
		errors.ErrCodeDiagramNotFound:
		status = http.StatusNotFound
	case "":
		code = errors.ErrCodeInternal
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
