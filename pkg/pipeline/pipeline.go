// Package pipeline provides the conversion pipeline shared by the CLI and the
// HTTP service.
//
// This package implements the load → convert flow with result caching, so
// that every entry point behaves the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Parse DOT or JSON input into the attributed graph model
//  2. Convert: Write the graph as a GXL document
//
// Results are cached by the content hash of the input and the options that
// change the output bytes. A cache hit skips both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Format:   "dot",
//	    Encoding: "utf-8",
//	    Indent:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.GXL)
//
// Run individual stages:
//
//	g, err := pipeline.Load(ctx, input, opts)
//	doc, stats, err := pipeline.Convert(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/gxl"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFormat is the input format assumed when none is given.
	DefaultFormat = errors.FormatDOT

	// DefaultCacheTTL is how long converted documents stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// MaxInputSize bounds the input accepted by Execute (32 MiB).
	MaxInputSize = 32 << 20
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Format is the input format: "dot" (default) or "json".
	Format string `json:"format,omitempty"`

	// Encoding is the output encoding label, e.g. "utf-8" or "latin1".
	Encoding string `json:"encoding,omitempty"`

	// Indent pretty-prints the document.
	Indent bool `json:"indent,omitempty"`

	// Validate additionally checks DOT input with Graphviz.
	Validate bool `json:"validate,omitempty"`

	// Refresh bypasses the cache lookup; the result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	encoding  gxl.Encoding
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded graph. It is nil on a cache hit.
	Graph *agraph.Graph

	// GXL is the converted document.
	GXL []byte

	// InputHash is the content hash of the input.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether GXL came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	gxl.Stats
	Bytes       int
	LoadTime    time.Duration
	ConvertTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes the format and encoding and applies
// defaults. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	format, err := errors.ValidateFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = format

	enc, err := gxl.ParseEncoding(o.Encoding)
	if err != nil {
		return err
	}
	o.encoding = enc
	o.Encoding = string(enc)

	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// GXLOptions returns the writer options. Call ValidateAndSetDefaults first.
func (o *Options) GXLOptions() gxl.Options {
	return gxl.Options{Encoding: o.encoding, Indent: o.Indent}
}

// ConvertKeyOpts returns cache key options for the conversion.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{
		Format:   o.Format,
		Encoding: o.Encoding,
		Indent:   o.Indent,
	}
}
