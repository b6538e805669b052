package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
	"github.com/rohan-flutterint/graphviz/pkg/server"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config file. Command-line flags override it.
//
//	indent = true
//	encoding = "utf-8"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Indent   bool         `toml:"indent"`
	Encoding string       `toml:"encoding"`
	Cache    cacheConfig  `toml:"cache"`
	Redis    redisConfig  `toml:"redis"`
	Server   serverConfig `toml:"server"`
}

type cacheConfig struct {
	Backend string   `toml:"backend"`
	TTL     duration `toml:"ttl"`
}

type redisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type serverConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes Go duration strings such as "90m".
type duration time.Duration

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// defaultConfig returns the settings used when no config file exists.
func defaultConfig() Config {
	return Config{
		Cache:  cacheConfig{Backend: backendFile, TTL: duration(pipeline.DefaultCacheTTL)},
		Server: serverConfig{Addr: server.DefaultAddr},
	}
}

// configPath returns the config file location using XDG standard
// (~/.config/gv2gxl/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path on top of the defaults. An empty path selects the
// default location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (use file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis.addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// redisCacheConfig maps the [redis] table onto the cache package.
func (c Config) redisCacheConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		Prefix:   c.Redis.Prefix,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("cache=%s ttl=%s encoding=%q indent=%t", c.Cache.Backend, time.Duration(c.Cache.TTL), c.Encoding, c.Indent)
}
