package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newswatcher/pkg/catalog"
	"github.com/umputun/newswatcher/pkg/config"
	"github.com/umputun/newswatcher/pkg/control"
	"github.com/umputun/newswatcher/pkg/feed"
	"github.com/umputun/newswatcher/pkg/filter"
	"github.com/umputun/newswatcher/pkg/repository"
	"github.com/umputun/newswatcher/pkg/scheduler"
	"github.com/umputun/newswatcher/pkg/service"
	"github.com/umputun/newswatcher/server"
)

// Opts with all CLI options, non-empty values override the config file
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file"`

	APIKey           string        `long:"api-key" env:"NYT_API_KEY" description:"upstream API key"`
	Categories       []string      `long:"category" env:"CATEGORIES" env-delim:"," description:"upstream categories"`
	FetchInterval    time.Duration `long:"fetch-interval" env:"FETCH_INTERVAL" description:"catalog fetch interval"`
	Retention        time.Duration `long:"retention" env:"RETENTION" description:"shared item retention"`
	MaxFilters       int           `long:"max-filters" env:"MAX_FILTERS" description:"maximum filters per subscriber"`
	MaxFilterStories int           `long:"max-filter-stories" env:"MAX_FILTER_STORIES" description:"maximum stories per filter"`
	MaxSharedStories int           `long:"max-shared-stories" env:"MAX_SHARED_STORIES" description:"maximum shared items"`
	RunOnStart       bool          `long:"run-on-start" env:"RUN_ON_START" description:"fetch catalog at start"`
	DB               string        `long:"db" env:"DB" description:"database DSN"`
	Listen           string        `short:"l" long:"listen" env:"LISTEN" description:"listen address"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.APIKey)
	lgr.Printf("[INFO] starting newswatcher version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires the engine and blocks until ctx is canceled or the engine gives up
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config, overrides(opts))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Upstream.APIKey != opts.APIKey {
		setupLog(opts.Debug, cfg.Upstream.APIKey) // key came from the config file
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	fetcher := feed.NewFetcher(makeProvider(cfg.Upstream), cfg.Upstream.Categories, cfg.Upstream.RequestDelay)
	builder := catalog.NewBuilder(catalog.NewHasher(catalog.HasherParams{
		Salt:     cfg.Identity.Salt,
		Time:     cfg.Identity.Time,
		MemoryKB: cfg.Identity.MemoryKB,
	}))
	evaluator := filter.NewEvaluator(cfg.Limits.MaxFilterStories, cfg.Limits.MaxFilters)
	coordinator := scheduler.NewCoordinator(repos.Catalog, repos.Subscriber, evaluator, cfg.Schedule.RefreshWorkers)
	mailbox := control.NewMailbox(cfg.Worker.MailboxSize)

	sched := scheduler.NewScheduler(scheduler.Params{
		Fetcher:       fetcher,
		Builder:       builder,
		Coordinator:   coordinator,
		Sweeper:       scheduler.NewSweeper(repos.Shared, cfg.Schedule.Retention),
		Mailbox:       mailbox,
		FetchInterval: cfg.Schedule.FetchInterval,
		SweepInterval: cfg.Schedule.SweepInterval,
		MaxFailures:   cfg.Schedule.MaxFailures,
		RunOnStart:    cfg.Schedule.RunOnStart,
	})
	engine := service.NewEngineService(repos, coordinator, sched, mailbox, cfg.Limits.MaxSharedStories)
	srv := server.New(cfg, engine, revision, opts.Debug)

	lgr.Printf("[INFO] %s provider, categories %v, fetch every %v, retention %v",
		cfg.Upstream.Provider, cfg.Upstream.Categories, cfg.Schedule.FetchInterval, cfg.Schedule.Retention)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := scheduler.Supervise(ctx, "engine", cfg.Worker.MaxRestarts, cfg.Worker.RestartDelay, sched.Run); err != nil {
			return fmt.Errorf("engine stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error { return srv.Run(ctx) })
	return g.Wait()
}

// makeProvider creates the upstream provider selected by config
func makeProvider(cfg config.UpstreamConfig) feed.Provider {
	if cfg.Provider == "rss" {
		return feed.NewRSSProvider(cfg.Feeds, cfg.Timeout, cfg.UserAgent)
	}
	return feed.NewNYTProvider(feed.NYTParams{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})
}

// overrides applies set CLI options on top of the config file
func overrides(opts Opts) config.Override {
	return func(c *config.Config) {
		if opts.APIKey != "" {
			c.Upstream.APIKey = opts.APIKey
		}
		if len(opts.Categories) > 0 {
			c.Upstream.Categories = opts.Categories
		}
		if opts.FetchInterval > 0 {
			c.Schedule.FetchInterval = opts.FetchInterval
		}
		if opts.Retention > 0 {
			c.Schedule.Retention = opts.Retention
		}
		if opts.MaxFilters > 0 {
			c.Limits.MaxFilters = opts.MaxFilters
		}
		if opts.MaxFilterStories > 0 {
			c.Limits.MaxFilterStories = opts.MaxFilterStories
		}
		if opts.MaxSharedStories > 0 {
			c.Limits.MaxSharedStories = opts.MaxSharedStories
		}
		if opts.RunOnStart {
			c.Schedule.RunOnStart = true
		}
		if opts.DB != "" {
			c.Database.DSN = opts.DB
		}
		if opts.Listen != "" {
			c.Server.Listen = opts.Listen
		}
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	nonEmpty := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
