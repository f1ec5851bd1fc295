package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/asciigram/pkg/graph"
	"github.com/mlorenz/asciigram/pkg/pipeline"
	"github.com/mlorenz/asciigram/pkg/store"
)

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(nil, nil, logger), st, logger)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/render", renderRequest{
		Source: "flowchart TD\na[Start] --> b[Done]",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Output, "Start") {
		t.Errorf("output missing label:\n%s", resp.Output)
	}
	if resp.NodeCount != 2 || resp.EdgeCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", resp.NodeCount, resp.EdgeCount)
	}
	if resp.Format != "text" {
		t.Errorf("format = %q, want text", resp.Format)
	}
}

func TestRenderGraphBody(t *testing.T) {
	g := graph.New(graph.LR)
	_ = g.AddNode(graph.Node{ID: "in", Label: "Input"})
	_ = g.AddNode(graph.Node{ID: "out", Label: "Output"})
	g.AddEdge(graph.Edge{From: "in", To: "out", Type: graph.Arrow})
	data, err := graph.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/render", renderRequest{
		Graph: json.RawMessage(data),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Output, "Input") || !strings.Contains(resp.Output, "Output") {
		t.Errorf("output missing labels:\n%s", resp.Output)
	}
	if resp.NodeCount != 2 || resp.EdgeCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", resp.NodeCount, resp.EdgeCount)
	}
}

func TestRenderGraphBodyInvalid(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/render", renderRequest{
		Graph: json.RawMessage(`[1, 2, 3]`),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_GRAPH" {
		t.Errorf("error code = %q, want INVALID_GRAPH", resp.Code)
	}
}

func TestRenderBadRequest(t *testing.T) {
	s := newTestServer(t, nil)

	// Empty source.
	rec := doJSON(t, s, http.MethodPost, "/render", renderRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty source status = %d, want 400", rec.Code)
	}

	// Bad format.
	rec = doJSON(t, s, http.MethodPost, "/render", renderRequest{Source: "a", Format: "pdf"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", resp.Code)
	}

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{not json"))
	rec2 := httptest.NewRecorder()
	s.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec2.Code)
	}
}

func TestDiagramsWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/diagrams", diagramRequest{Source: "a --> b"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no store is configured", rec.Code)
	}
}

func TestDiagramLifecycle(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore())

	// Create.
	rec := doJSON(t, s, http.MethodPost, "/diagrams", diagramRequest{
		Title:  "deploy",
		Source: "a --> b",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	var d store.Diagram
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.ID == "" {
		t.Fatal("created diagram should have an ID")
	}

	// Get.
	rec = doJSON(t, s, http.MethodGet, "/diagrams/"+d.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List.
	rec = doJSON(t, s, http.MethodGet, "/diagrams", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []store.Diagram
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "deploy" {
		t.Errorf("list = %+v", list)
	}

	// Render stored diagram.
	rec = doJSON(t, s, http.MethodGet, "/diagrams/"+d.ID+"/render", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Output == "" {
		t.Error("stored diagram should render to non-empty text")
	}

	// Delete.
	rec = doJSON(t, s, http.MethodDelete, "/diagrams/"+d.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/diagrams/"+d.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestDiagramCreateValidation(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore())
	rec := doJSON(t, s, http.MethodPost, "/diagrams", diagramRequest{Title: "no source"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDiagramGetMissing(t *testing.T) {
	s := newTestServer(t, store.NewMemoryStore())
	rec := doJSON(t, s, http.MethodGet, "/diagrams/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "DIAGRAM_NOT_FOUND" {
		t.Errorf("error code = %q, want DIAGRAM_NOT_FOUND", resp.Code)
	}
}
