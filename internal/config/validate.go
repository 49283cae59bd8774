package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"console": true, "text": true, "json": true,
}

var validBackends = map[string]bool{
	"poll": true, "fsnotify": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Watch.Root == "" {
		errs = append(errs, "watch.root: required")
	}
	if !validBackends[c.Watch.Backend] {
		errs = append(errs, fmt.Sprintf("watch.backend: must be one of poll, fsnotify; got %q", c.Watch.Backend))
	}
	if c.Watch.Workers < 1 {
		errs = append(errs, fmt.Sprintf("watch.workers: must be at least 1, got %d", c.Watch.Workers))
	}
	if c.Watch.ProcessDelay <= 0 {
		errs = append(errs, "watch.process_delay: must be positive")
	}
	if c.Watch.StabilityInterval <= 0 {
		errs = append(errs, "watch.stability_interval: must be positive")
	}
	if c.Watch.StabilityTimeout <= 0 {
		errs = append(errs, "watch.stability_timeout: must be positive")
	}

	if c.Libraries.Movies.Root == "" && c.Libraries.Series.Root == "" {
		errs = append(errs, "libraries: at least one library (movies or series) must be configured")
	}

	if c.TVDB.APIKey == "" {
		errs = append(errs, "tvdb.api_key: required")
	}
	if c.TVDB.Confidence < 1 || c.TVDB.Confidence > 100 {
		errs = append(errs, fmt.Sprintf("tvdb.confidence: must be between 1 and 100, got %d", c.TVDB.Confidence))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of console, text, json; got %q", c.Log.Format))
	}

	return errs
}
