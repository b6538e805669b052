package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is a Hooks implementation that keeps running totals. It is safe
// for concurrent use.
type Counters struct {
	started time.Time

	loads, loadErrors       atomic.Int64
	converts, convertErrors atomic.Int64
	convertBytes            atomic.Int64
	convertNanos            atomic.Int64

	hits, misses, sets atomic.Int64

	requests, serverErrors, clientErrors, aborted atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{started: time.Now()}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Uptime        string  `json:"uptime"`
	Loads         int64   `json:"loads"`
	LoadErrors    int64   `json:"load_errors"`
	Conversions   int64   `json:"conversions"`
	ConvertErrors int64   `json:"convert_errors"`
	BytesWritten  int64   `json:"bytes_written"`
	MeanConvertMS float64 `json:"mean_convert_ms"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	CacheSets     int64   `json:"cache_sets"`
	HitRatio      float64 `json:"hit_ratio"`
	Requests      int64   `json:"requests"`
	ClientErrors  int64   `json:"client_errors"`
	ServerErrors  int64   `json:"server_errors"`
	Aborted       int64   `json:"aborted"`
}

func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Uptime:        time.Since(c.started).Round(time.Second).String(),
		Loads:         c.loads.Load(),
		LoadErrors:    c.loadErrors.Load(),
		Conversions:   c.converts.Load(),
		ConvertErrors: c.convertErrors.Load(),
		BytesWritten:  c.convertBytes.Load(),
		CacheHits:     c.hits.Load(),
		CacheMisses:   c.misses.Load(),
		CacheSets:     c.sets.Load(),
		Requests:      c.requests.Load(),
		ClientErrors:  c.clientErrors.Load(),
		ServerErrors:  c.serverErrors.Load(),
		Aborted:       c.aborted.Load(),
	}
	if ok := s.Conversions - s.ConvertErrors; ok > 0 {
		s.MeanConvertMS = float64(c.convertNanos.Load()) / float64(ok) / float64(time.Millisecond)
	}
	if n := s.CacheHits + s.CacheMisses; n > 0 {
		s.HitRatio = float64(s.CacheHits) / float64(n)
	}
	return s
}

func (c *Counters) OnLoadStart(context.Context, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.loads.Add(1)
	if err != nil {
		c.loadErrors.Add(1)
	}
}

func (c *Counters) OnConvertStart(context.Context, string, int) {}

func (c *Counters) OnConvertComplete(_ context.Context, _ string, size int, d time.Duration, err error) {
	c.converts.Add(1)
	if err != nil {
		c.convertErrors.Add(1)
		return
	}
	c.convertBytes.Add(int64(size))
	c.convertNanos.Add(int64(d))
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.misses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) { c.sets.Add(1) }

func (c *Counters) OnRequest(context.Context, string, string, string) { c.requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	switch {
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
}

func (c *Counters) OnError(context.Context, string, string, string, error) { c.aborted.Add(1) }

var _ Hooks = (*Counters)(nil)
