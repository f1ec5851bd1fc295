// Package config loads asciigram settings from a TOML file.
//
// All settings are optional; Default returns the values used when no
// config file exists. The CLI looks for the file under the user config
// directory (asciigram/config.toml) and flags override whatever the
// file says.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/graph"
)

// Config holds all user-tunable settings.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig sets the defaults applied to every render.
type RenderConfig struct {
	// Charset selects the output palette, "unicode" or "ascii".
	Charset string `toml:"charset"`
	// Padding is the horizontal space inside node boxes.
	Padding int `toml:"padding"`
	// Direction, when set, overrides the direction declared in the
	// source ("LR", "RL", "TD", "BT").
	Direction string `toml:"direction"`
}

// CacheConfig selects and tunes the render cache backend.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the user cache dir.
	Dir string `toml:"dir"`
	// RedisAddr, when set, switches the cache to Redis (host:port).
	RedisAddr string `toml:"redis_addr"`
	// KeyPrefix namespaces cache keys, keeping separate deployments
	// sharing one Redis instance apart.
	KeyPrefix string `toml:"key_prefix"`
	// TTL is how long cached renders stay valid. Zero means forever.
	TTL duration `toml:"ttl"`
}

// ServerConfig configures the HTTP server started by `asciigram serve`.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`
	// MongoURI, when set, enables the persistent diagram store.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the database name for the diagram store.
	MongoDatabase string `toml:"mongo_database"`
}

// duration wraps time.Duration so TOML files can say ttl = "24h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Duration returns the cache TTL as a time.Duration.
func (c CacheConfig) Duration() time.Duration { return time.Duration(c.TTL) }

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Charset: "unicode",
			Padding: 1,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: "asciigram",
		},
	}
}

// Load reads a TOML config file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "reading config file")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads the config from the user config directory, falling
// back to defaults when no file exists.
func LoadDefault() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(dir, "asciigram", "config.toml")
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks that all set fields carry acceptable values.
func (c Config) Validate() error {
	switch c.Render.Charset {
	case "", "unicode", "ascii":
	default:
		return errors.New(errors.ErrCodeInvalidCharset, "unknown charset %q (must be unicode or ascii)", c.Render.Charset)
	}

	if c.Render.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding cannot be negative")
	}

	if c.Render.Direction != "" {
		if _, err := graph.ParseDirection(c.Render.Direction); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDirection, err, "config render.direction")
		}
	}
	return nil
}
