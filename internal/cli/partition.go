package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rectcut/pkg/geom"
	pkgio "github.com/matzehuels/rectcut/pkg/io"
	"github.com/matzehuels/rectcut/pkg/pipeline"
)

// partitionOpts holds the command-line flags for the partition command.
type partitionOpts struct {
	output  string // output file path (stdout if empty)
	refresh bool   // bypass the cache
	noCache bool   // disable the cache entirely
	stats   bool   // print partition statistics
	batch   bool   // treat input as an array of polygons
}

// newPartitionCmd creates the partition command. It reads a polygon JSON
// document (or, with --batch, an array of them) and writes the minimal
// rectangle decomposition as JSON.
//
// Examples:
//
//	rectcut partition shape.json                # rectangles to stdout
//	rectcut partition shape.json -o rects.json  # write to file
//	rectcut partition --batch shapes.json       # many polygons with progress UI
//	rectcut partition -                         # read polygon from stdin
func newPartitionCmd(cfgPath *string) *cobra.Command {
	opts := partitionOpts{}

	cmd := &cobra.Command{
		Use:   "partition <polygon.json>",
		Short: "Decompose a rectilinear polygon into a minimal rectangle set",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			runner, err := newRunner(c.Context(), *cfgPath, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if opts.batch {
				return runBatch(c.Context(), runner, args[0], &opts)
			}
			return runPartition(c.Context(), runner, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache entirely")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print partition statistics")
	cmd.Flags().BoolVar(&opts.batch, "batch", false, "input is an array of polygons")

	return cmd
}

// newRunner builds a pipeline runner from the config file, honoring
// --no-cache.
func newRunner(ctx context.Context, cfgPath string, noCache bool) (*pipeline.Runner, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	cacheCfg := cfg.Cache
	if noCache {
		cacheCfg = CacheConfig{Backend: "none"}
	}
	c, err := openCache(ctx, cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// readPolygonArg loads a polygon from a file path, or from stdin when the
// argument is "-".
func readPolygonArg(arg string) (geom.Polygon, error) {
	if arg == "-" {
		return pkgio.ReadPolygon(os.Stdin)
	}
	return pkgio.ImportPolygon(arg)
}

// runPartition handles the single-polygon path.
func runPartition(ctx context.Context, runner *pipeline.Runner, arg string, opts *partitionOpts) error {
	logger := loggerFromContext(ctx)

	p, err := readPolygonArg(arg)
	if err != nil {
		return err
	}
	logger.Debugf("loaded polygon with %d points", len(p.Points))

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, p, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Partitioned into %d rectangles", len(result.Rects)))

	if opts.stats {
		printStats(result.Stats.Partition.Vertices, result.Stats.Partition.Concave,
			result.Stats.Partition.Rects, result.CacheInfo.PartitionHit)
	}

	return writeOutput(result.Artifacts[pipeline.FormatJSON], opts.output, logger)
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(data []byte, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
