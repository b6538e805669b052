package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

// inspectCommand creates the inspect command, which summarizes the scope
// tree of a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var from string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the subgraph tree of a graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args, cmd.InOrStdin(), from, interactive)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "input format: dot, json (default: by file extension)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse scopes and list the nodes of the selected one")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, args []string, stdin io.Reader, from string, interactive bool) error {
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

	if !interactive {
		rows := scopeRows(g)
		fmt.Fprintln(c.Out, scopeTable(rows, 0, len(rows), -1))
		return nil
	}

	final, err := tea.NewProgram(NewScopeListModel(g), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ScopeListModel); ok && m.Selected != nil {
		writeNodes(c.Out, m.Selected)
	}
	return nil
}

// writeNodes lists the member nodes of g with their out-degree in g.
func writeNodes(w io.Writer, g *agraph.Graph) {
	fmt.Fprintln(w, StyleTitle.Render(g.Name()))
	for _, n := range g.Nodes() {
		fmt.Fprintf(w, "  %s %s\n", n.Name(), StyleDim.Render(fmt.Sprintf("(%d out)", len(g.Out(n)))))
	}
}
