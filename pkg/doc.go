// Package pkg provides the core libraries for the rectcut polygon
// partitioner.
//
// # Overview
//
// Rectcut decomposes simple rectilinear polygons into the minimum number of
// axis-aligned rectangles. The pkg directory is organized into four main
// areas:
//
//  1. Geometry and algorithms ([geom], [interval], [matching], [partition])
//  2. Infrastructure ([cache], [errors], [observability], [buildinfo])
//  3. Output ([render], [io])
//  4. Orchestration ([pipeline])
//
// # Architecture
//
// The typical data flow through rectcut:
//
//	Polygon JSON document
//	         ↓
//	    [geom] package (normalize + validate)
//	         ↓
//	    [partition] package (classify → chords → König selection → splice)
//	         ↓
//	    [render] / [io] packages (SVG, DOT, JSON output)
//
// # Quick Start
//
// Partition a polygon and render the result:
//
//	import (
//	    "github.com/matzehuels/rectcut/pkg/geom"
//	    "github.com/matzehuels/rectcut/pkg/partition"
//	    "github.com/matzehuels/rectcut/pkg/render"
//	)
//
//	p := geom.Polygon{Points: []geom.Point{
//	    {X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
//	    {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
//	}}
//	rects, err := partition.Partition(p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := render.RenderSVG(p, rects)
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, p, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [geom] - Integer-lattice geometry value types: points, rectangles, and
// rectilinear polygons with validation and normalization.
//
// [interval] - Interval tree over closed integer spans, answering stabbing
// queries for the partitioner's segment lookups.
//
// [matching] - Hopcroft–Karp maximum bipartite matching, used to solve the
// chord-selection problem via König's theorem.
//
// [partition] - The core decomposition algorithm: corner classification,
// chord enumeration, maximum-independent-set chord selection, boundary
// splicing, and face extraction.
//
// [pipeline] - Complete normalize → partition → render pipeline used by CLI
// and API. Ensures consistent behavior across all entry points.
//
// [cache] - Result cache with file, Redis, MongoDB, and null backends.
//
// [render] - SVG drawings of partitions and Graphviz views of the chord
// crossing graph.
//
// [io] - JSON document reading and writing for polygons and rectangles.
//
// [errors] - Structured errors with machine-readable codes shared by CLI
// and API.
//
// [observability] - Instrumentation hooks with no-op defaults.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/partition/...  # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/geom
// [interval]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/interval
// [matching]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/matching
// [partition]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/partition
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/rectcut/pkg/buildinfo
package pkg
