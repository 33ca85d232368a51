package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/treesearch/pkg/errors"
)

// Algorithm names accepted by --algorithm and the config file.
const (
	algoIDS = "ids"
	algoDLS = "dls"
	algoBFS = "bfs"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

const (
	defaultServeAddr     = "127.0.0.1:8080"
	defaultMaxBodyBytes  = 1 << 20
	defaultServeTimeout  = 10 * time.Second
	defaultConfigFile    = "config.toml"
	defaultLogLevel      = "info"
	defaultAlgorithm     = algoIDS
	defaultOutputFormat  = formatText
	defaultHeaderTimeout = 5 * time.Second
	defaultCacheTTL      = 24 * time.Hour
	defaultServeEntries  = 1024
	defaultMongoDatabase = "treesearch"
)

// Config holds the defaults read from the config file. Command-line flags
// override every value.
//
// Example config.toml:
//
//	algorithm = "ids"
//	max_limit = 50
//	timeout = "30s"
//	format = "text"
//	log_level = "info"
//
//	[cache]
//	disabled = false
//	ttl = "24h"
//
//	[serve]
//	addr = "127.0.0.1:8080"
//	max_body_bytes = 1048576
//	cache_entries = 1024
//	redis_url = "redis://localhost:6379/0"
//	history_entries = 1024
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "treesearch"
//	retention = "168h"
type Config struct {
	Algorithm string        `toml:"algorithm"`
	MaxLimit  int           `toml:"max_limit"`
	Timeout   time.Duration `toml:"timeout"`
	Format    string        `toml:"format"`
	LogLevel  string        `toml:"log_level"`
	Cache     CacheConfig   `toml:"cache"`
	Serve     ServeConfig   `toml:"serve"`

	path string // file the config was read from, empty for defaults
}

// CacheConfig configures the search result cache.
type CacheConfig struct {
	Disabled bool          `toml:"disabled"`
	TTL      time.Duration `toml:"ttl"`
}

// ServeConfig configures the HTTP server.
//
// Results are cached in Redis when RedisURL is set and in memory otherwise.
// Runs are archived in MongoDB when MongoURI is set and in memory otherwise.
type ServeConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	CacheEntries int    `toml:"cache_entries"`
	RedisURL     string `toml:"redis_url"`

	HistoryEntries int           `toml:"history_entries"`
	MongoURI       string        `toml:"mongo_uri"`
	MongoDatabase  string        `toml:"mongo_database"`
	Retention      time.Duration `toml:"retention"`
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = defaultAlgorithm
	}
	if c.Format == "" {
		c.Format = defaultOutputFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = defaultServeAddr
	}
	if c.Serve.MaxBodyBytes == 0 {
		c.Serve.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Serve.CacheEntries == 0 {
		c.Serve.CacheEntries = defaultServeEntries
	}
	if c.Serve.HistoryEntries == 0 {
		c.Serve.HistoryEntries = defaultServeEntries
	}
	if c.Serve.MongoDatabase == "" {
		c.Serve.MongoDatabase = defaultMongoDatabase
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = defaultCacheTTL
	}
}

// Validate checks enumerations and bounds.
func (c *Config) Validate() error {
	if err := validateAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if err := validateFormat(c.Format); err != nil {
		return err
	}
	if err := errors.ValidateLimit(c.MaxLimit); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log_level")
	}
	if c.Serve.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.max_body_bytes must not be negative")
	}
	if c.Serve.CacheEntries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.cache_entries must not be negative")
	}
	if c.Serve.HistoryEntries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.history_entries must not be negative")
	}
	if c.Serve.Retention < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.retention must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

func validateAlgorithm(s string) error {
	switch s {
	case algoIDS, algoDLS, algoBFS:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid algorithm: %s (must be 'ids', 'dls', or 'bfs')", s)
}

func validateFormat(s string) error {
	switch s {
	case formatText, formatJSON:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text' or 'json')", s)
}

// LoadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error. The result has defaults
// applied and is validated.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			cfg := Config{}
			cfg.SetDefaults()
			return cfg, nil
		}
		path = filepath.Join(dir, defaultConfigFile)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = Config{}
	case stderrors.Is(err, fs.ErrNotExist):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		cfg.path = path
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treesearch/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/treesearch/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
