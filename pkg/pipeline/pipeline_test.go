package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/mlorenz/asciigram/pkg/cache"
	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/graph"
)

func intPtr(v int) *int { return &v }

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Source: "a --> b"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.Format != FormatText {
		t.Errorf("format = %q, want text", opts.Format)
	}
	if opts.Charset != CharsetUnicode {
		t.Errorf("charset = %q, want unicode", opts.Charset)
	}
	if got := opts.padding(); got != 1 {
		t.Errorf("effective padding = %d, want 1", got)
	}
}

func TestOptionsPadding(t *testing.T) {
	// Unset falls back to the layout default; zero stays zero.
	unset := Options{Source: "a"}
	if got := unset.padding(); got != 1 {
		t.Errorf("unset padding = %d, want 1", got)
	}
	zero := Options{Source: "a", Padding: intPtr(0)}
	if err := zero.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if got := zero.padding(); got != 0 {
		t.Errorf("explicit zero padding = %d, want 0", got)
	}
	if got := zero.RenderKeyOpts().Padding; got != 0 {
		t.Errorf("cache key padding = %d, want 0", got)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Source: "a", Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad charset", Options{Source: "a", Charset: "fancy"}, errors.ErrCodeInvalidCharset},
		{"bad direction", Options{Source: "a", Direction: "XY"}, errors.ErrCodeInvalidDirection},
		{"negative padding", Options{Source: "a", Padding: intPtr(-1)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestExecuteText(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source: "flowchart TD\nstart[Start] --> done[Done]",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	out := string(result.Output)
	if !strings.Contains(out, "Start") || !strings.Contains(out, "Done") {
		t.Errorf("output missing labels:\n%s", out)
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("node count = %d, want 2", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 1 {
		t.Errorf("edge count = %d, want 1", result.Stats.EdgeCount)
	}
	if result.SourceHash == "" {
		t.Error("source hash should be set")
	}
	if result.CacheHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteJSON(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source: "a --> b",
		Format: FormatJSON,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	g, err := graph.Unmarshal(result.Output)
	if err != nil {
		t.Fatalf("json output does not round-trip: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("round-tripped node count = %d, want 2", g.NodeCount())
	}
}

func TestExecuteDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source: "a --> b",
		Format: FormatDOT,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(result.Output), "digraph") {
		t.Errorf("dot output missing digraph:\n%s", result.Output)
	}
}

func TestExecuteGraphInput(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "x", To: "y", Type: graph.Arrow})

	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Graph: g})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(result.Output), "x") {
		t.Errorf("output missing node:\n%s", result.Output)
	}
}

func TestExecuteDirectionOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source:    "flowchart TD\na --> b",
		Direction: "LR",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Graph.Direction() != graph.LR {
		t.Errorf("direction = %v, want LR", result.Graph.Direction())
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Source: "a --> b --> c"}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Output) != string(second.Output) {
		t.Error("cached output differs from rendered output")
	}
}

func TestExecuteZeroPadding(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	tight, err := r.Execute(context.Background(), Options{Source: "a", Padding: intPtr(0)})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(tight.Output), "│a│") {
		t.Errorf("zero padding should hug the label:\n%s", tight.Output)
	}

	wide, err := r.Execute(context.Background(), Options{Source: "a"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(wide.Output), "│ a │") {
		t.Errorf("default padding should keep one space around the label:\n%s", wide.Output)
	}
}

func TestExecuteCachesParsedGraph(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	source := "flowchart TD\na --> b"
	if _, err := r.Execute(context.Background(), Options{Source: source}); err != nil {
		t.Fatal(err)
	}

	// The serialized IR lands under the source key, so a later run with
	// different render options reuses the parse.
	key := cache.NewDefaultKeyer().SourceKey(cache.Hash([]byte(source)))
	data, hit, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("parsed graph should be cached under the source key")
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		t.Fatalf("cached graph does not round-trip: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("cached node count = %d, want 2", g.NodeCount())
	}
}

func TestExecuteNoCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Source: "a --> b", NoCache: true}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHit {
		t.Error("NoCache run should never hit the cache")
	}
}

func TestExecuteDifferentOptionsDifferentCacheKeys(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, Options{Source: "a --> b"}); err != nil {
		t.Fatal(err)
	}

	// Same source, different charset must not reuse the cached text.
	result, err := r.Execute(ctx, Options{Source: "a --> b", Charset: CharsetASCII})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheHit {
		t.Error("different charset should use a different cache key")
	}
}
