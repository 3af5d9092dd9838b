// Package config loads and validates the builder configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Layouts LayoutsConfig `yaml:"layouts"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Feed    FeedConfig    `yaml:"feed,omitempty"`
	State   StateConfig   `yaml:"state,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// SiteConfig carries site-wide metadata exposed to layouts and the feed.
type SiteConfig struct {
	Title       string `yaml:"title"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ContentConfig describes where posts come from. Dir is the local content
// directory; when Git.URL is set the repository is cloned/updated into Dir
// before each build.
type ContentConfig struct {
	Dir string     `yaml:"dir"`
	Git *GitConfig `yaml:"git,omitempty"`
}

// GitConfig configures an optional git content source.
type GitConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// LayoutsConfig points at the layout template directory.
type LayoutsConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// BuildConfig tunes the collection/render run.
type BuildConfig struct {
	ErrorMode   site.ErrorMode `yaml:"error_mode,omitempty"` // collect | fail_fast
	Workers     int            `yaml:"workers,omitempty"`
	Incremental bool           `yaml:"incremental,omitempty"` // Skip unchanged posts via the state store
}

// FeedConfig controls RSS feed generation.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // Relative to the output directory
	Limit   int    `yaml:"limit,omitempty"`
}

// StateConfig locates the build-state database.
type StateConfig struct {
	Path string `yaml:"path,omitempty"`
}

// WatchConfig configures watch mode. Durations are Go duration strings
// ("500ms", "2m"); the parsed values land in the typed fields during Load.
type WatchConfig struct {
	Addr            string `yaml:"addr,omitempty"` // Preview server listen address
	Debounce        string `yaml:"debounce,omitempty"`
	RebuildInterval string `yaml:"rebuild_interval,omitempty"` // Periodic full rebuild; empty disables
	NATSURL         string `yaml:"nats_url,omitempty"`         // Publish build reports when set
	NATSSubject     string `yaml:"nats_subject,omitempty"`

	DebounceDuration        time.Duration `yaml:"-"`
	RebuildIntervalDuration time.Duration `yaml:"-"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is fine.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the parts of the configuration a build cannot proceed without.
func (c *Config) Validate() error {
	if c.Content.Dir == "" {
		return errors.ConfigRequired("content.dir")
	}
	if c.Layouts.Dir == "" {
		return errors.ConfigRequired("layouts.dir")
	}
	if c.Output.Directory == "" {
		return errors.ConfigRequired("output.directory")
	}
	switch c.Build.ErrorMode {
	case site.ErrorModeCollect, site.ErrorModeFailFast:
	default:
		return errors.ValidationFailed("build.error_mode",
			"must be \"collect\" or \"fail_fast\"")
	}
	if c.Build.Workers < 1 {
		return errors.ValidationFailed("build.workers", "must be at least 1")
	}
	if c.Content.Git != nil && c.Content.Git.URL == "" {
		return errors.ConfigRequired("content.git.url")
	}
	if err := c.parseDurations(); err != nil {
		return err
	}
	return nil
}

func (c *Config) parseDurations() error {
	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil {
			return errors.ValidationFailed("watch.debounce", err.Error())
		}
		c.Watch.DebounceDuration = d
	}
	if c.Watch.RebuildInterval != "" {
		d, err := time.ParseDuration(c.Watch.RebuildInterval)
		if err != nil {
			return errors.ValidationFailed("watch.rebuild_interval", err.Error())
		}
		c.Watch.RebuildIntervalDuration = d
	}
	if c.Watch.DebounceDuration == 0 {
		c.Watch.DebounceDuration = 500 * time.Millisecond
	}
	return nil
}
