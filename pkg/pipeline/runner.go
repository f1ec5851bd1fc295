package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/asciigram/pkg/cache"
	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/graph"
	"github.com/mlorenz/asciigram/pkg/layout"
	"github.com/mlorenz/asciigram/pkg/parser"
	"github.com/mlorenz/asciigram/pkg/render"
	"github.com/mlorenz/asciigram/pkg/render/dot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: parse. The serialized IR is cached under the source
	// hash, so re-rendering an unchanged source with new options skips
	// the parser.
	parseStart := time.Now()
	g := opts.Graph
	if g == nil {
		sourceKey := r.Keyer.SourceKey(cache.Hash([]byte(opts.Source)))
		if !opts.NoCache {
			if cached, hit, err := r.Cache.Get(ctx, sourceKey); err == nil && hit {
				if restored, err := graph.Unmarshal(cached); err == nil {
					g = restored
					logger.Debug("parse cache hit", "key", sourceKey)
				}
			}
		}
		if g == nil {
			g = parser.Parse(opts.Source)
			if !opts.NoCache {
				if blob, err := graph.Marshal(g); err == nil {
					_ = r.Cache.Set(ctx, sourceKey, blob, TTLRender)
				}
			}
		}
	}
	if opts.Direction != "" {
		d, err := graph.ParseDirection(opts.Direction)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDirection, err, "direction override")
		}
		g.SetDirection(d)
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Content hash over the serialized IR. Identical diagrams written
	// with different whitespace share cache entries.
	data, err := graph.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serializing graph")
	}
	result.SourceHash = cache.Hash(data)

	logger.Debug("parsed source",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// Cache lookup.
	cacheKey := r.Keyer.RenderKey(result.SourceHash, opts.RenderKeyOpts())
	if !opts.NoCache {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			result.Output = cached
			result.CacheHit = true
			logger.Debug("render cache hit", "key", cacheKey)
			return result, nil
		}
	}

	// Stages 2+3: layout and render.
	output, stats, err := r.render(ctx, g, data, opts)
	if err != nil {
		return nil, err
	}
	result.Output = output
	result.Stats.LayoutTime = stats.LayoutTime
	result.Stats.RenderTime = stats.RenderTime

	logger.Debug("rendered output",
		"format", opts.Format,
		"bytes", len(output),
		"layout", stats.LayoutTime,
		"render", stats.RenderTime)

	if !opts.NoCache {
		_ = r.Cache.Set(ctx, cacheKey, output, TTLRender)
	}
	return result, nil
}

// render produces the requested format. data is the serialized graph,
// reused for the json format.
func (r *Runner) render(ctx context.Context, g *graph.Graph, data []byte, opts Options) ([]byte, Stats, error) {
	var stats Stats

	switch opts.Format {
	case FormatJSON:
		// The serialized IR is the artifact.
		return data, stats, nil

	case FormatDOT:
		start := time.Now()
		out := []byte(dot.ToDOT(g))
		stats.RenderTime = time.Since(start)
		return out, stats, nil

	case FormatSVG:
		start := time.Now()
		svg, err := dot.RenderSVG(ctx, dot.ToDOT(g))
		if err != nil {
			return nil, stats, errors.Wrap(errors.ErrCodeInternal, err, "rendering svg")
		}
		stats.RenderTime = time.Since(start)
		return svg, stats, nil

	case FormatText:
		layoutStart := time.Now()
		res := layout.Layout(g, layout.Options{Padding: opts.padding()})
		stats.LayoutTime = time.Since(layoutStart)

		renderStart := time.Now()
		text := render.NewRenderer(opts.charset()).Render(res)
		stats.RenderTime = time.Since(renderStart)
		return []byte(text), stats, nil
	}

	return nil, stats, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", opts.Format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
