package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	got, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, appName, "config.toml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	if time.Duration(cfg.Cache.TTL) != pipeline.DefaultCacheTTL {
		t.Errorf("ttl = %v, want %v", time.Duration(cfg.Cache.TTL), pipeline.DefaultCacheTTL)
	}
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	writeFile(t, mkdir(t, dir), "config.toml", `encoding = "latin1"`)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Encoding != "latin1" {
		t.Errorf("encoding = %q, want latin1", cfg.Encoding)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "full",
			content: `
indent = true
encoding = "iso-8859-1"

[cache]
backend = "redis"
ttl = "90m"

[redis]
addr = "localhost:6379"
db = 2
prefix = "test:"

[server]
addr = ":9000"
`,
			check: func(t *testing.T, cfg Config) {
				if !cfg.Indent || cfg.Encoding != "iso-8859-1" {
					t.Errorf("top level = %+v", cfg)
				}
				if cfg.Cache.Backend != backendRedis || time.Duration(cfg.Cache.TTL) != 90*time.Minute {
					t.Errorf("cache = %+v", cfg.Cache)
				}
				rc := cfg.redisCacheConfig()
				if rc.Addr != "localhost:6379" || rc.DB != 2 || rc.Prefix != "test:" {
					t.Errorf("redis = %+v", rc)
				}
				if cfg.Server.Addr != ":9000" {
					t.Errorf("server addr = %q", cfg.Server.Addr)
				}
			},
		},
		{
			name:    "partial keeps defaults",
			content: "[cache]\nbackend = \"none\"\n",
			check: func(t *testing.T, cfg Config) {
				if time.Duration(cfg.Cache.TTL) != pipeline.DefaultCacheTTL {
					t.Errorf("ttl = %v", time.Duration(cfg.Cache.TTL))
				}
			},
		},
		{name: "unknown backend", content: "[cache]\nbackend = \"memcached\"\n", wantErr: true},
		{name: "redis without addr", content: "[cache]\nbackend = \"redis\"\n", wantErr: true},
		{name: "bad ttl", content: "[cache]\nttl = \"soon\"\n", wantErr: true},
		{name: "unknown key", content: "colour = \"blue\"\n", wantErr: true},
		{name: "syntax", content: "indent = \n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			cfg, err := loadConfig(path)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingExplicit(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}
