// Package config loads the engine configuration from YAML with environment expansion,
// defaults and validation.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// DefaultCategories are the upstream sections fetched when none are configured
var DefaultCategories = []string{"home", "world", "national", "business", "technology"}

// Config holds the application configuration
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream" json:"upstream" jsonschema:"description=Upstream news provider configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Fetch cycle and retention sweep timers"`
	Limits   LimitsConfig   `yaml:"limits" json:"limits" jsonschema:"description=Per-subscriber and shared item limits"`
	Identity IdentityConfig `yaml:"identity" json:"identity" jsonschema:"description=Story identity hash parameters"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Control HTTP server configuration"`
	Worker   WorkerConfig   `yaml:"worker" json:"worker" jsonschema:"description=Engine worker supervision"`
}

// UpstreamConfig defines where stories come from
type UpstreamConfig struct {
	Provider     string            `yaml:"provider" json:"provider" jsonschema:"default=nyt,enum=nyt,enum=rss,description=Upstream provider type"`
	BaseURL      string            `yaml:"base_url" json:"base_url" jsonschema:"default=https://api.nytimes.com/svc/topstories/v2,description=Top stories API base URL"`
	APIKey       string            `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Categories   []string          `yaml:"categories" json:"categories" jsonschema:"description=Categories fetched every cycle; the first one feeds home news"`
	RequestDelay time.Duration     `yaml:"request_delay" json:"request_delay" jsonschema:"default=500ms,description=Delay between category requests"`
	Timeout      time.Duration     `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UserAgent    string            `yaml:"user_agent" json:"user_agent" jsonschema:"default=newswatcher/1.0,description=User agent for HTTP requests"`
	Feeds        map[string]string `yaml:"feeds" json:"feeds,omitempty" jsonschema:"description=Feed URL per category for the rss provider"`
}

// ScheduleConfig defines timers and failure handling
type ScheduleConfig struct {
	FetchInterval  time.Duration `yaml:"fetch_interval" json:"fetch_interval" jsonschema:"default=240m,description=Catalog fetch interval"`
	SweepInterval  time.Duration `yaml:"sweep_interval" json:"sweep_interval" jsonschema:"default=24h,description=Shared item retention sweep interval"`
	Retention      time.Duration `yaml:"retention" json:"retention" jsonschema:"default=72h,description=Shared item retention"`
	MaxFailures    int           `yaml:"max_failures" json:"max_failures" jsonschema:"default=3,minimum=1,description=Consecutive failed cycles before timers stop"`
	RefreshWorkers int           `yaml:"refresh_workers" json:"refresh_workers" jsonschema:"default=1,minimum=1,description=Concurrent subscriber refreshes"`
	RunOnStart     bool          `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Run the first fetch cycle at start"`
}

// LimitsConfig defines filter and shared item limits
type LimitsConfig struct {
	MaxFilters       int `yaml:"max_filters" json:"max_filters" jsonschema:"default=5,minimum=1,description=Maximum filters per subscriber"`
	MaxFilterStories int `yaml:"max_filter_stories" json:"max_filter_stories" jsonschema:"default=15,minimum=1,description=Maximum matched stories per filter"`
	MaxSharedStories int `yaml:"max_shared_stories" json:"max_shared_stories" jsonschema:"default=30,minimum=1,description=Maximum shared items"`
}

// IdentityConfig defines story identity hash parameters. Changing any of them changes every story id.
type IdentityConfig struct {
	Salt     string `yaml:"salt" json:"salt" jsonschema:"default=newswatcher,description=Fixed salt for story identity"`
	Time     uint32 `yaml:"time" json:"time" jsonschema:"default=1,minimum=1,description=argon2 time cost"`
	MemoryKB uint32 `yaml:"memory_kb" json:"memory_kb" jsonschema:"default=8192,minimum=8,description=argon2 memory cost in KiB"`
}

// DatabaseConfig defines the sqlite store
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newswatcher.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ServerConfig defines the control HTTP server
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// WorkerConfig defines engine supervision and the control mailbox
type WorkerConfig struct {
	RestartDelay time.Duration `yaml:"restart_delay" json:"restart_delay" jsonschema:"default=5s,description=Delay before restarting a crashed engine"`
	MaxRestarts  int           `yaml:"max_restarts" json:"max_restarts" jsonschema:"default=5,description=Maximum engine restarts"`
	MailboxSize  int           `yaml:"mailbox_size" json:"mailbox_size" jsonschema:"default=100,minimum=1,description=Pending control messages limit"`
}

// Override modifies loaded configuration before defaults and validation are applied
type Override func(c *Config)

// Load reads configuration from a YAML file. Empty path means no file, only defaults and overrides.
func Load(path string, overrides ...Override) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	for _, o := range overrides {
		o(&cfg)
	}
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// upstream
	if cfg.Upstream.Provider == "" {
		cfg.Upstream.Provider = "nyt"
	}
	if cfg.Upstream.BaseURL == "" && cfg.Upstream.Provider == "nyt" {
		cfg.Upstream.BaseURL = "https://api.nytimes.com/svc/topstories/v2"
	}
	if len(cfg.Upstream.Categories) == 0 {
		cfg.Upstream.Categories = slices.Clone(DefaultCategories)
	}
	if cfg.Upstream.RequestDelay == 0 {
		cfg.Upstream.RequestDelay = 500 * time.Millisecond
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 30 * time.Second
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "newswatcher/1.0"
	}

	// schedule
	if cfg.Schedule.FetchInterval == 0 {
		cfg.Schedule.FetchInterval = 240 * time.Minute
	}
	if cfg.Schedule.SweepInterval == 0 {
		cfg.Schedule.SweepInterval = 24 * time.Hour
	}
	if cfg.Schedule.Retention == 0 {
		cfg.Schedule.Retention = 72 * time.Hour
	}
	if cfg.Schedule.MaxFailures == 0 {
		cfg.Schedule.MaxFailures = 3
	}
	if cfg.Schedule.RefreshWorkers == 0 {
		cfg.Schedule.RefreshWorkers = 1
	}

	// limits
	if cfg.Limits.MaxFilters == 0 {
		cfg.Limits.MaxFilters = 5
	}
	if cfg.Limits.MaxFilterStories == 0 {
		cfg.Limits.MaxFilterStories = 15
	}
	if cfg.Limits.MaxSharedStories == 0 {
		cfg.Limits.MaxSharedStories = 30
	}

	// identity
	if cfg.Identity.Salt == "" {
		cfg.Identity.Salt = "newswatcher"
	}
	if cfg.Identity.Time == 0 {
		cfg.Identity.Time = 1
	}
	if cfg.Identity.MemoryKB == 0 {
		cfg.Identity.MemoryKB = 8 * 1024
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newswatcher.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// worker
	if cfg.Worker.RestartDelay == 0 {
		cfg.Worker.RestartDelay = 5 * time.Second
	}
	if cfg.Worker.MaxRestarts == 0 {
		cfg.Worker.MaxRestarts = 5
	}
	if cfg.Worker.MailboxSize == 0 {
		cfg.Worker.MailboxSize = 100
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate upstream config
	switch cfg.Upstream.Provider {
	case "nyt":
		if cfg.Upstream.APIKey == "" {
			return fmt.Errorf("upstream.api_key is required for nyt provider")
		}
	case "rss":
		for _, c := range cfg.Upstream.Categories {
			if cfg.Upstream.Feeds[c] == "" {
				return fmt.Errorf("upstream.feeds has no url for category %q", c)
			}
		}
	default:
		return fmt.Errorf("unknown upstream.provider %q", cfg.Upstream.Provider)
	}
	for _, c := range cfg.Upstream.Categories {
		if c == "" {
			return fmt.Errorf("upstream.categories can't contain empty names")
		}
	}
	if cfg.Upstream.RequestDelay < 0 {
		return fmt.Errorf("upstream.request_delay must be non-negative")
	}
	if cfg.Upstream.Timeout < time.Second {
		return fmt.Errorf("upstream.timeout must be at least 1 second")
	}

	// validate schedule config
	if cfg.Schedule.FetchInterval < time.Second {
		return fmt.Errorf("schedule.fetch_interval must be at least 1 second")
	}
	if cfg.Schedule.SweepInterval < time.Second {
		return fmt.Errorf("schedule.sweep_interval must be at least 1 second")
	}
	if cfg.Schedule.Retention < 0 {
		return fmt.Errorf("schedule.retention must be positive")
	}
	if cfg.Schedule.MaxFailures < 1 {
		return fmt.Errorf("schedule.max_failures must be at least 1")
	}
	if cfg.Schedule.RefreshWorkers < 1 {
		return fmt.Errorf("schedule.refresh_workers must be at least 1")
	}

	// validate limits
	if cfg.Limits.MaxFilters < 1 || cfg.Limits.MaxFilterStories < 1 || cfg.Limits.MaxSharedStories < 1 {
		return fmt.Errorf("limits must be at least 1")
	}

	if cfg.Identity.MemoryKB < 8 {
		return fmt.Errorf("identity.memory_kb must be at least 8")
	}

	// validate server and worker config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Worker.MailboxSize < 1 {
		return fmt.Errorf("worker.mailbox_size must be at least 1")
	}
	if cfg.Worker.MaxRestarts < 0 {
		return fmt.Errorf("worker.max_restarts must be non-negative")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
