package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/rohan-flutterint/graphviz/pkg/dot"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

// previewCommand creates the preview command, which renders the input with
// Graphviz so the graph can be eyeballed next to its GXL form.
func (c *CLI) previewCommand() *cobra.Command {
	var output, from string

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a graph to SVG with Graphviz",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args, cmd.InOrStdin(), from, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&from, "from", "f", "", "input format: dot, json (default: by file extension)")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, args []string, stdin io.Reader, from, output string) error {
	input, name, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	// JSON models are rendered through their DOT form.
	if detectFormat(name, from) == errors.FormatJSON {
		opts := c.pipelineOptions()
		opts.Format = errors.FormatJSON
		g, err := pipeline.Load(ctx, input, opts)
		if err != nil {
			return err
		}
		input = dot.Marshal(g)
	}

	sp := startSpinner(ctx, statusOut, "Rendering "+name)
	svg, err := dot.RenderSVG(ctx, input)
	if err != nil {
		if sp.interrupted() {
			sp.stop()
		} else {
			sp.fail("Render failed")
		}
		return err
	}
	sp.stop()

	if err := writeOutput(c.Out, output, svg); err != nil {
		return err
	}
	if !toStdout(output) {
		printSuccess("Rendered preview")
		printFile(output)
	}
	return nil
}
