package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rectcut/pkg/cache"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "rectcut.toml"

// Config is the rectcut.toml schema.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of: file, redis, mongo, none. Empty means file.
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty means the user cache dir.
	Dir string `toml:"dir"`

	// RedisAddr is the redis backend address (host:port).
	RedisAddr string `toml:"redis_addr"`

	// MongoURI and MongoDB configure the mongo backend.
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
	}
}

// loadConfig reads the TOML config at path. An empty path falls back to
// ./rectcut.toml when it exists, else to defaults. A named file that does
// not exist is an error; a missing default file is not.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return cfg, nil
		}
		path = defaultConfigFile
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}

// openCache constructs the configured cache backend.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend redis requires redis_addr")
		}
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("cache backend mongo requires mongo_uri")
		}
		db := cfg.MongoDB
		if db == "" {
			db = "rectcut"
		}
		return cache.NewMongoCache(ctx, cfg.MongoURI, db)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be file, redis, mongo, or none)", cfg.Backend)
	}
}

// cacheDir returns the default file cache directory under the user cache
// root.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "rectcut"), nil
}
