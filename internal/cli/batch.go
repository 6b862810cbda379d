package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	pkgio "github.com/matzehuels/rectcut/pkg/io"
	"github.com/matzehuels/rectcut/pkg/pipeline"
)

// runBatch partitions every polygon in an array document, driving a
// progress list while the worker goroutine runs the pipeline. Output is a
// JSON array of rectangle documents in input order; failed entries carry an
// error field instead.
func runBatch(ctx context.Context, runner *pipeline.Runner, arg string, opts *partitionOpts) error {
	logger := loggerFromContext(ctx)

	polys, err := pkgio.ImportBatch(arg)
	if err != nil {
		return err
	}
	if len(polys) == 0 {
		return fmt.Errorf("batch file %s contains no polygons", arg)
	}

	vertCounts := make([]int, len(polys))
	for i, p := range polys {
		vertCounts[i] = len(p.Points)
	}

	prog := tea.NewProgram(newBatchModel(vertCounts))
	results := make([]json.RawMessage, len(polys))

	go func() {
		for i, p := range polys {
			prog.Send(jobStartMsg{index: i})

			result, err := runner.Execute(ctx, p, pipeline.Options{
				Formats: []string{pipeline.FormatJSON},
				Refresh: opts.refresh,
				Logger:  logger,
			})
			if err != nil {
				results[i], _ = json.Marshal(map[string]string{"error": err.Error()})
				prog.Send(jobDoneMsg{index: i, err: err})
				continue
			}

			results[i] = result.Artifacts[pipeline.FormatJSON]
			prog.Send(jobDoneMsg{
				index:  i,
				rects:  len(result.Rects),
				cached: result.CacheInfo.PartitionHit,
			})
		}
		prog.Send(batchDoneMsg{})
	}()

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("progress ui: %w", err)
	}
	failures := 0
	if m, ok := final.(batchModel); ok {
		if m.aborted {
			return fmt.Errorf("aborted")
		}
		for _, j := range m.jobs {
			if j.state == jobFailed {
				failures++
			}
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := writeOutput(data, opts.output, logger); err != nil {
		return err
	}

	if failures > 0 {
		printError("%d of %d polygons failed", failures, len(polys))
		return fmt.Errorf("%d polygons failed", failures)
	}
	printSuccess("Partitioned %d polygons", len(polys))
	return nil
}
