package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/gxl"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
)

// Convert writes g as a GXL document.
func Convert(ctx context.Context, g *agraph.Graph, opts Options) (doc []byte, stats gxl.Stats, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, gxl.Stats{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, opts.Encoding, g.NodeCount())
	start := time.Now()
	defer func() {
		hooks.OnConvertComplete(ctx, opts.Encoding, len(doc), time.Since(start), err)
	}()

	var buf bytes.Buffer
	stats, err = gxl.Write(&buf, g, opts.GXLOptions())
	if err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}
