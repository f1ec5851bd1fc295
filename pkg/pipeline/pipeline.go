// Package pipeline provides the core rendering pipeline for asciigram.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI, the TUI and the HTTP server. Centralizing it here
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn flowchart source into the graph IR
//  2. Layout: Compute node positions and edge routes
//  3. Render: Emit the requested format (text, dot, svg, json)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source: "flowchart LR\na --> b",
//	    Format: pipeline.FormatText,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Output))
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/asciigram/pkg/cache"
	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/graph"
	"github.com/mlorenz/asciigram/pkg/layout"
	"github.com/mlorenz/asciigram/pkg/render"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Charset constants for the text format palette.
const (
	CharsetUnicode = "unicode"
	CharsetASCII   = "ascii"
)

// TTLRender is how long cached render results stay valid.
const TTLRender = 7 * 24 * time.Hour

// Options contains all configuration for one pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Source is the flowchart source text. Exactly one of Source and
	// Graph must be set.
	Source string `json:"source,omitempty"`

	// Graph is a pre-built graph IR, bypassing the parse stage.
	Graph *graph.Graph `json:"-"`

	// Format selects the output: text, dot, svg or json.
	Format string `json:"format,omitempty"`

	// Charset selects the text palette, unicode or ascii.
	Charset string `json:"charset,omitempty"`

	// Padding is the horizontal space inside node boxes. Nil means
	// [layout.DefaultPadding]; zero is a valid explicit value.
	Padding *int `json:"padding,omitempty"`

	// Direction overrides the direction declared in the source.
	Direction string `json:"direction,omitempty"`

	// NoCache skips cache reads and writes for this run.
	NoCache bool `json:"no_cache,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph IR.
	Graph *graph.Graph

	// SourceHash is the content hash of the serialized graph.
	SourceHash string

	// Output is the rendered artifact in the requested format.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks option fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" && o.Graph == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}

	if o.Format == "" {
		o.Format = FormatText
	}
	if err := errors.ValidateFormat(o.Format); err != nil {
		return err
	}

	switch o.Charset {
	case "":
		o.Charset = CharsetUnicode
	case CharsetUnicode, CharsetASCII:
	default:
		return errors.New(errors.ErrCodeInvalidCharset, "unknown charset %q (must be unicode or ascii)", o.Charset)
	}

	if o.Padding != nil && *o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding cannot be negative")
	}

	if o.Direction != "" {
		if _, err := graph.ParseDirection(o.Direction); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDirection, err, "direction override")
		}
	}
	return nil
}

// padding returns the effective node padding.
func (o *Options) padding() int {
	if o.Padding == nil {
		return layout.DefaultPadding
	}
	return *o.Padding
}

// charset returns the render palette for the configured charset name.
func (o *Options) charset() render.Charset {
	if o.Charset == CharsetASCII {
		return render.ASCII
	}
	return render.Unicode
}

// RenderKeyOpts returns the cache key options for this run.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:    o.Format,
		Charset:   o.Charset,
		Direction: o.Direction,
		Padding:   o.padding(),
	}
}
