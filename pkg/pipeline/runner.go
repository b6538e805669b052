package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
)

// cacheKeyType labels converted documents in cache hooks.
const cacheKeyType = "gxl"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → convert pipeline with caching.
//
// Cache errors never fail a conversion: a failed lookup is treated as a miss
// and a failed store is logged.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateInputSize(int64(len(input)), MaxInputSize); err != nil {
		return nil, err
	}

	result := &Result{InputHash: cache.Hash(input)}
	key := r.Keyer.ConvertKey(result.InputHash, opts.ConvertKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache lookup failed", "error", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			result.GXL = data
			result.CacheHit = true
			result.Stats.Bytes = len(data)
			r.Logger.Debug("cache hit", "key", key)
			return result, nil
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := Load(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded graph",
		"format", opts.Format,
		"name", g.Name(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Convert
	convertStart := time.Now()
	doc, stats, err := Convert(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.GXL = doc
	result.Stats.Stats = stats
	result.Stats.Bytes = len(doc)
	result.Stats.ConvertTime = time.Since(convertStart)

	r.Logger.Info("converted graph",
		"encoding", opts.Encoding,
		"graphs", stats.Graphs,
		"bytes", len(doc),
		"duration", result.Stats.ConvertTime)

	if err := r.Cache.Set(ctx, key, doc, opts.CacheTTL); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(doc))
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
