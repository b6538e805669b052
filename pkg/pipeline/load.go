package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/dot"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	graphio "github.com/rohan-flutterint/graphviz/pkg/io"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
)

// Load parses input in the format named by opts.
func Load(ctx context.Context, input []byte, opts Options) (g *agraph.Graph, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Format)
	start := time.Now()
	defer func() {
		n := 0
		if g != nil {
			n = g.NodeCount()
		}
		hooks.OnLoadComplete(ctx, opts.Format, n, time.Since(start), err)
	}()

	opts.Logger.Debug("loading graph", "format", opts.Format, "bytes", len(input))
	switch opts.Format {
	case errors.FormatJSON:
		return graphio.ReadJSON(bytes.NewReader(input))
	default:
		if opts.Validate {
			if err := dot.Validate(ctx, input); err != nil {
				return nil, err
			}
		}
		return dot.ParseBytes(input)
	}
}
