package cli

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"

	graphio "github.com/rohan-flutterint/graphviz/pkg/io"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

// dumpCommand creates the dump command, which prints the loaded graph model
// as JSON. It is useful for checking how a DOT file was understood.
func (c *CLI) dumpCommand() *cobra.Command {
	var output, from string

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the graph model as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(cmd.Context(), args, cmd.InOrStdin(), from, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&from, "from", "f", "", "input format: dot, json (default: by file extension)")

	return cmd
}

func (c *CLI) runDump(ctx context.Context, args []string, stdin io.Reader, from, output string) error {
	input, name, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	opts := c.pipelineOptions()
	opts.Format = detectFormat(name, from)
	g, err := pipeline.Load(ctx, input, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return err
	}
	if err := writeOutput(c.Out, output, buf.Bytes()); err != nil {
		return err
	}
	if !toStdout(output) {
		printSuccess("Wrote graph model")
		printFile(output)
	}
	return nil
}
