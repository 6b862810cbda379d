// Package pipeline provides the core partition pipeline for rectcut.
//
// This package implements the complete normalize → partition → render flow
// used by both the CLI and the HTTP API. Centralizing it keeps caching and
// validation behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: drop collinear points, validate the polygon contract
//  2. Partition: decompose into the minimum rectangle set
//  3. Render: produce output artifacts (JSON, SVG, DOT)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, polygon, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rectcut/pkg/cache"
	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/partition"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the partition pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Formats selects the rendered artifacts. Defaults to ["json"].
	Formats []string `json:"formats,omitempty"`

	// ShowChords overlays the candidate chords on the SVG artifact.
	ShowChords bool `json:"show_chords,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress output. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the given format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowChords: o.ShowChords,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Polygon is the normalized input polygon.
	Polygon geom.Polygon

	// PolygonHash is the content hash of the normalized polygon.
	PolygonHash string

	// Rects is the minimum rectangle decomposition.
	Rects []geom.Rect

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains partition statistics and timing.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Partition     partition.Stats
	PartitionTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PartitionHit bool // Whether the partition result came from cache
	RenderHit    bool // Whether all artifacts came from cache
}
