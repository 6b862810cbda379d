package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rectcut/pkg/partition"
	"github.com/matzehuels/rectcut/pkg/render"
)

// newChordsCmd creates the chords debug command. It prints the chord
// crossing graph of a polygon as Graphviz DOT, or renders it to SVG with
// --svg. Selected chords (the maximum independent set) are highlighted.
//
// This is a development tool for inspecting the selection stage, in the
// same spirit as dumping an optimizer's intermediate state.
func newChordsCmd() *cobra.Command {
	var (
		svgOut string
		counts bool
	)

	cmd := &cobra.Command{
		Use:   "chords <polygon.json>",
		Short: "Dump the chord crossing graph (debug)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			p, err := readPolygonArg(args[0])
			if err != nil {
				return err
			}
			p = p.RemoveCollinear()
			if err := p.Validate(); err != nil {
				return err
			}

			analysis, err := partition.Analyze(p)
			if err != nil {
				return err
			}

			if counts {
				printInfo("%d horizontal, %d vertical chords", len(analysis.Horizontal), len(analysis.Vertical))
				printDetail("%d crossings, %d selected", len(analysis.Crossings), len(analysis.Selected))
			}

			dot := render.CrossingDOT(analysis)
			if svgOut == "" {
				fmt.Print(dot)
				return nil
			}

			svg, err := render.RenderDOTSVG(dot)
			if err != nil {
				return err
			}
			if err := os.WriteFile(svgOut, svg, 0644); err != nil {
				return err
			}
			logger.Infof("Wrote %s", svgOut)
			printFile(svgOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&svgOut, "svg", "", "render the graph to an SVG file instead of printing DOT")
	cmd.Flags().BoolVar(&counts, "counts", false, "print chord and crossing counts")

	return cmd
}
