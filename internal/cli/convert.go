package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output   string // output file path (stdout if empty)
	from     string // input format: dot or json (detected from extension if empty)
	encoding string // output encoding: utf-8 or latin1
	indent   bool   // pretty-print the document
	validate bool   // check DOT input with Graphviz first
	noCache  bool   // disable the result cache
	refresh  bool   // skip cache lookup, store fresh result
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a DOT or JSON graph to GXL",
		Long: `Convert reads a graph and writes it as a GXL document.

The input is read from file, or from standard input when file is omitted or
"-". Files ending in .json are read as the gv2gxl JSON form; everything else
is parsed as DOT.`,
		Example: `  gv2gxl convert graph.gv -o graph.gxl
  dot -Tcanon graph.gv | gv2gxl convert --indent
  gv2gxl convert model.json --encoding latin1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("indent") {
				opts.indent = c.Config.Indent
			}
			if opts.encoding == "" {
				opts.encoding = c.Config.Encoding
			}
			return c.runConvert(cmd.Context(), args, cmd.InOrStdin(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "input format: dot, json (default: by file extension)")
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", "output encoding: utf-8 (default), latin1")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "indent the document")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate DOT input with Graphviz before converting")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, args []string, stdin io.Reader, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	input, name, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.pipelineOptions()
	po.Format = detectFormat(name, opts.from)
	po.Encoding = opts.encoding
	po.Indent = opts.indent
	po.Validate = opts.validate
	po.Refresh = opts.refresh

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, input, po)
	if err != nil {
		return err
	}
	if err := writeOutput(c.Out, opts.output, res.GXL); err != nil {
		return err
	}
	prog.done("Converted " + name)

	if !toStdout(opts.output) {
		printSuccess("Wrote GXL document")
		printFile(opts.output)
		printStats(res.Stats, res.CacheHit)
	}
	return nil
}
