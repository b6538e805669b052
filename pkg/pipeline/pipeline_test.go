package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
)

const sampleDOT = `digraph G { a -> b; b -> c }`

const sampleJSON = `{
  "name": "G",
  "directed": true,
  "nodes": [{"id": "a"}, {"id": "b"}],
  "edges": [{"from": "a", "to": "b"}]
}`

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		format   string
		encoding string
		wantErr  errors.Code
	}{
		{"defaults", Options{}, "dot", "UTF-8", ""},
		{"alias", Options{Format: "gv"}, "dot", "UTF-8", ""},
		{"json latin1", Options{Format: "json", Encoding: "latin1"}, "json", "ISO-8859-1", ""},
		{"bad format", Options{Format: "yaml"}, "", "", errors.ErrCodeInvalidFormat},
		{"bad encoding", Options{Encoding: "ebcdic"}, "", "", errors.ErrCodeInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAndSetDefaults() error: %v", err)
			}
			if opts.Format != tt.format {
				t.Errorf("Format = %q, want %q", opts.Format, tt.format)
			}
			if opts.Encoding != tt.encoding {
				t.Errorf("Encoding = %q, want %q", opts.Encoding, tt.encoding)
			}
			if opts.CacheTTL != DefaultCacheTTL {
				t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, DefaultCacheTTL)
			}
			if opts.Logger == nil {
				t.Error("Logger should be set")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		nodes  int
	}{
		{"dot", sampleDOT, "dot", 3},
		{"json", sampleJSON, "json", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load(context.Background(), []byte(tt.input), Options{Format: tt.format})
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if g.NodeCount() != tt.nodes {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.nodes)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		code   errors.Code
	}{
		{"bad dot", "digraph {", "dot", errors.ErrCodeInvalidDOT},
		{"bad json", "{", "json", errors.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), []byte(tt.input), Options{Format: tt.format})
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	ctx := context.Background()
	g, err := Load(ctx, []byte(sampleDOT), Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	doc, stats, err := Convert(ctx, g, Options{Indent: true})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if stats.Graphs != 1 || stats.Nodes != 3 || stats.Edges != 2 {
		t.Errorf("stats = %+v, want 1 graph, 3 nodes, 2 edges", stats)
	}
	out := string(doc)
	for _, want := range []string{`<?xml version="1.0"`, `<graph id="G"`, "\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q\n%s", want, out)
		}
	}
}

func TestRunner_Execute(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	first, err := r.Execute(ctx, []byte(sampleDOT), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if first.Graph == nil {
		t.Error("first run should return the graph")
	}
	if first.Stats.Nodes != 3 {
		t.Errorf("Stats.Nodes = %d, want 3", first.Stats.Nodes)
	}
	if mc.sets != 1 {
		t.Errorf("cache sets = %d, want 1", mc.sets)
	}

	second, err := r.Execute(ctx, []byte(sampleDOT), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if string(second.GXL) != string(first.GXL) {
		t.Error("cached document differs from converted document")
	}
	if second.InputHash != first.InputHash {
		t.Error("input hash should be stable")
	}
}

func TestRunner_OptionsChangeKey(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	if _, err := r.Execute(ctx, []byte(sampleDOT), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, []byte(sampleDOT), Options{Encoding: "latin1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("different encoding should not share a cache entry")
	}
	if !strings.Contains(string(res.GXL), `encoding="ISO-8859-1"`) {
		t.Errorf("expected latin1 declaration:\n%s", res.GXL)
	}
}

func TestRunner_Refresh(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	if _, err := r.Execute(ctx, []byte(sampleDOT), Options{}); err != nil {
		t.Fatal(err)
	}
	gets := mc.gets
	res, err := r.Execute(ctx, []byte(sampleDOT), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("refresh should bypass the cache")
	}
	if mc.gets != gets {
		t.Errorf("refresh should not read the cache")
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}
}

func TestRunner_NullCache(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	for i := 0; i < 2; i++ {
		res, err := r.Execute(context.Background(), []byte(sampleJSON), Options{Format: "json"})
		if err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if res.CacheHit {
			t.Error("null cache should never hit")
		}
	}
}

func TestRunner_Errors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, []byte(sampleDOT), Options{Format: "xml"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: error = %v", err)
	}
	if _, err := r.Execute(ctx, []byte("graph {"), Options{}); !errors.Is(err, errors.ErrCodeInvalidDOT) {
		t.Errorf("bad input: error = %v", err)
	}
	big := make([]byte, MaxInputSize+1)
	if _, err := r.Execute(ctx, big, Options{}); !errors.Is(err, errors.ErrCodeInputTooLarge) {
		t.Errorf("large input: error = %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(s string) {
	h.mu.Lock()
	h.events = append(h.events, s)
	h.mu.Unlock()
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.add("load") }
func (h *recordingHooks) OnConvertComplete(context.Context, string, int, time.Duration, error) {
	h.add("convert")
}
func (h *recordingHooks) OnCacheMiss(context.Context, string) { h.add("miss") }
func (h *recordingHooks) OnCacheHit(context.Context, string)  { h.add("hit") }

func TestRunner_Hooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, nil)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, []byte(sampleDOT), Options{}); err != nil {
			t.Fatal(err)
		}
	}

	got := strings.Join(h.events, ",")
	if want := "miss,load,convert,hit"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}
