package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rectcut/pkg/cache"
	"github.com/matzehuels/rectcut/pkg/geom"
	pkgio "github.com/matzehuels/rectcut/pkg/io"
	"github.com/matzehuels/rectcut/pkg/observability"
	"github.com/matzehuels/rectcut/pkg/partition"
	"github.com/matzehuels/rectcut/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedPartition is the cache entry for the partition stage.
type cachedPartition struct {
	Rects []geom.Rect     `json:"rects"`
	Stats partition.Stats `json:"stats"`
}

// Execute runs the complete normalize → partition → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, p geom.Polygon, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Normalize
	p = p.RemoveCollinear()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.EnsureWinding()

	result := &Result{
		Polygon:   p,
		Artifacts: make(map[string][]byte),
	}

	polyData, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("hash polygon: %w", err)
	}
	result.PolygonHash = cache.Hash(polyData)

	// Stage 2: Partition
	partitionStart := time.Now()
	rects, stats, hit, err := r.partitionWithCache(ctx, p, result.PolygonHash, opts)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	result.Rects = rects
	result.Stats.Partition = stats
	result.Stats.PartitionTime = time.Since(partitionStart)
	result.CacheInfo.PartitionHit = hit

	opts.Logger.Info("partitioned polygon",
		"vertices", stats.Vertices,
		"concave", stats.Concave,
		"rects", stats.Rects,
		"duration", result.Stats.PartitionTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, p, rects, result.PolygonHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// partitionWithCache computes or retrieves the rectangle decomposition.
func (r *Runner) partitionWithCache(ctx context.Context, p geom.Polygon, hash string, opts Options) ([]geom.Rect, partition.Stats, bool, error) {
	key := r.Keyer.PartitionKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry cachedPartition
			if err := json.Unmarshal(data, &entry); err == nil {
				observability.Cache().OnCacheHit(ctx, "partition")
				return entry.Rects, entry.Stats, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "partition")
	}

	rects, stats, err := partition.PartitionWithStats(p)
	if err != nil {
		return nil, partition.Stats{}, false, err
	}

	if data, err := json.Marshal(cachedPartition{Rects: rects, Stats: stats}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLPartition); err == nil {
			observability.Cache().OnCacheSet(ctx, "partition", len(data))
		}
	}

	return rects, stats, false, nil
}

// renderWithCache produces all requested artifacts, reusing cached ones
// when every format is available.
func (r *Runner) renderWithCache(ctx context.Context, p geom.Polygon, rects []geom.Rect, hash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderFormats(p, rects, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// renderFormats produces every requested artifact from scratch.
func renderFormats(p geom.Polygon, rects []geom.Rect, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))

	// The chord analysis backs both the DOT artifact and the SVG overlay.
	var analysis *partition.Analysis
	needsAnalysis := opts.ShowChords
	for _, f := range opts.Formats {
		if f == FormatDOT {
			needsAnalysis = true
		}
	}
	if needsAnalysis {
		a, err := partition.Analyze(p)
		if err != nil {
			return nil, err
		}
		analysis = a
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := pkgio.MarshalRects(rects)
			if err != nil {
				return nil, err
			}
			out[format] = data
		case FormatSVG:
			var svgOpts []render.SVGOption
			if opts.ShowChords {
				svgOpts = append(svgOpts, render.WithChords(analysis))
			}
			out[format] = render.RenderSVG(p, rects, svgOpts...)
		case FormatDOT:
			out[format] = []byte(render.CrossingDOT(analysis))
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
