// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that unmarshals from TOML strings like "5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root configuration structure.
type Config struct {
	Watch     WatchConfig     `toml:"watch"`
	Libraries LibrariesConfig `toml:"libraries"`
	TVDB      TVDBConfig      `toml:"tvdb"`
	Log       LogConfig       `toml:"log"`
}

// WatchConfig controls the watch root and the event pipeline timings.
type WatchConfig struct {
	Root    string `toml:"root"`
	Backend string `toml:"backend"` // "poll" or "fsnotify"
	Workers int    `toml:"workers"`

	// DeleteSource removes the original file or bundle after processing.
	DeleteSource bool `toml:"delete_source"`

	// PollInterval is the scan period of the polling backend.
	PollInterval Duration `toml:"poll_interval"`

	// ProcessDelay is the quiet period after the last filesystem event
	// before an item is queued.
	ProcessDelay Duration `toml:"process_delay"`

	// StabilityInterval and StabilityTimeout control the size-snapshot
	// polling that confirms an item has finished being written.
	StabilityInterval Duration `toml:"stability_interval"`
	StabilityTimeout  Duration `toml:"stability_timeout"`
}

type LibrariesConfig struct {
	Movies LibraryConfig `toml:"movies"`
	Series LibraryConfig `toml:"series"`
}

type LibraryConfig struct {
	Root string `toml:"root"`
}

type TVDBConfig struct {
	APIKey string `toml:"api_key"`

	// Confidence is the minimum fuzzy-match score (0-100) for accepting
	// a metadata candidate.
	Confidence int `toml:"confidence"`

	// CachePath is the SQLite file used to cache API responses.
	// Empty disables caching.
	CachePath string `toml:"cache_path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console", "text", or "json"
}

// Defaults mirrored in Load.
const (
	DefaultWatchRoot         = "/watch"
	DefaultMovieRoot         = "/data/movies"
	DefaultSeriesRoot        = "/data/tv"
	DefaultConfidence        = 85
	DefaultProcessDelay      = 5 * time.Second
	DefaultPollInterval      = time.Second
	DefaultStabilityInterval = 2 * time.Second
	DefaultStabilityTimeout  = 5 * time.Minute
)

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Watch.Root == "" {
		c.Watch.Root = DefaultWatchRoot
	}
	if c.Watch.Backend == "" {
		c.Watch.Backend = "poll"
	}
	if c.Watch.Workers == 0 {
		c.Watch.Workers = 1
	}
	if c.Watch.PollInterval == 0 {
		c.Watch.PollInterval = Duration(DefaultPollInterval)
	}
	if c.Watch.ProcessDelay == 0 {
		c.Watch.ProcessDelay = Duration(DefaultProcessDelay)
	}
	if c.Watch.StabilityInterval == 0 {
		c.Watch.StabilityInterval = Duration(DefaultStabilityInterval)
	}
	if c.Watch.StabilityTimeout == 0 {
		c.Watch.StabilityTimeout = Duration(DefaultStabilityTimeout)
	}
	if c.Libraries.Movies.Root == "" {
		c.Libraries.Movies.Root = DefaultMovieRoot
	}
	if c.Libraries.Series.Root == "" {
		c.Libraries.Series.Root = DefaultSeriesRoot
	}
	if c.TVDB.Confidence == 0 {
		c.TVDB.Confidence = DefaultConfidence
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
