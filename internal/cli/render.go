package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rectcut/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string
	format     string
	showChords bool
	refresh    bool
}

// newRenderCmd creates the render command. It partitions a polygon and
// writes a drawing of the result.
//
// Examples:
//
//	rectcut render shape.json                      # shape.svg next to the input
//	rectcut render shape.json -o out.svg
//	rectcut render shape.json --show-chords        # overlay candidate chords
//	rectcut render shape.json --format dot         # crossing graph as DOT
func newRenderCmd(cfgPath *string) *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <polygon.json>",
		Short: "Render a polygon and its partition as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}

			runner, err := newRunner(c.Context(), *cfgPath, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(c.Context())
			p, err := readPolygonArg(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			result, err := runner.Execute(c.Context(), p, pipeline.Options{
				Formats:    []string{opts.format},
				ShowChords: opts.showChords,
				Refresh:    opts.refresh,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d rectangles", len(result.Rects)))

			output := opts.output
			if output == "" && args[0] != "-" {
				output = outputName(args[0], opts.format)
			}
			if err := writeOutput(result.Artifacts[opts.format], output, logger); err != nil {
				return err
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: svg or dot")
	cmd.Flags().BoolVar(&opts.showChords, "show-chords", false, "overlay candidate chords on the SVG")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")

	return cmd
}

// outputName derives the artifact filename from the input path, swapping
// the extension for the format.
func outputName(input, format string) string {
	base := input
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "." + format
}
