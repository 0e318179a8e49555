package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ncsc-tools/cafscan/internal/caf"
	"github.com/ncsc-tools/cafscan/internal/config"
	"github.com/ncsc-tools/cafscan/internal/crawler"
	"github.com/ncsc-tools/cafscan/internal/database"
	"github.com/ncsc-tools/cafscan/internal/log"
	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/pipeline"
	"github.com/ncsc-tools/cafscan/internal/render"
	"github.com/ncsc-tools/cafscan/internal/report"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl the framework collection and write its documents",
		Long: `Scrape crawls the Cyber Assessment Framework collection site.

It discovers the objective pages linked from the collection page, crawls
each objective's principles with their contributing outcome tables, and
writes everything to "<output>.json". Warnings about missing sections or
padded tables go to "<output>.log" alongside the terminal.

Examples:
  # Crawl the live site into output.json
  cafscan scrape

  # Custom output stem and a Markdown digest next to the JSON
  cafscan scrape -o caf --markdown

  # Crawl a static mirror without a browser or cache
  cafscan scrape --base-url https://mirror.example.com/caf --no-browser --no-cache

  # Crawl objectives concurrently, one browser session each
  cafscan scrape --batch 4

Configuration file (.cafscan) example:
  baseURL: https://mirror.example.com/caf
  principleLinkFilter: principle
  principleReadiness:
    selector: table
    wait: present`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	// Crawl behavior flags
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Collection page to start the crawl from")
	cmd.Flags().DurationP("timeout", "t", config.DefaultReadyTimeout,
		"How long to wait for a page's content to render")
	cmd.Flags().Duration("probe-timeout", config.DefaultProbeTimeout,
		"Timeout for the HTTP existence check per page")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of objectives crawled concurrently")

	// Renderer flags
	cmd.Flags().Bool("no-browser", false,
		"Fetch pages with a plain HTTP client instead of a headless browser")
	cmd.Flags().Bool("no-cache", false,
		"Disable the SQLite page cache")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the page cache database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .cafscan in current or home directory)")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputStem,
		"Output stem: writes <stem>.json, <stem>.log, and with --markdown <stem>.md")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown digest to <stem>.md")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// The output stem may carry a directory component; everything
	// (dump, digest, log) lands next to each other.
	if dir := filepath.Dir(cfg.OutputStem); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Set up structured logging teed to the terminal and <stem>.log
	logFile, err := log.OpenLogFile(cfg.OutputStem)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := log.NewTeeLogger(os.Stderr, logFile, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.BaseURL, err = cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}

	cfg.ReadyTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ProbeTimeout, err = cmd.Flags().GetDuration("probe-timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.NoBrowser, err = cmd.Flags().GetBool("no-browser")
	if err != nil {
		return nil, err
	}

	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.OutputStem, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Markdown, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site tuning from the config file. An explicitly specified
	// path that does not exist is an error; an absent default file is
	// not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		site, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		site.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runScrape executes the crawl.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	base, err := model.ParseLink(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	logger.Info("starting crawl",
		"base", base.String(),
		"output", cfg.OutputStem,
		"batchSize", cfg.BatchSize,
		"browser", !cfg.NoBrowser,
		"cache", !cfg.NoCache,
	)

	// Open the page cache unless disabled
	var cache *database.PageCache
	if !cfg.NoCache {
		cache, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open page cache: %w", err)
		}
		defer cache.Close()
		logger.Info("page cache opened", "dir", cfg.DBDir)
	}

	factory, cleanup, err := rendererFactory(ctx, cfg, cache, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// Discovery uses its own session from the same factory.
	discoverRenderer, err := factory(ctx)
	if err != nil {
		return fmt.Errorf("failed to start renderer: %w", err)
	}
	defer func() {
		if err := discoverRenderer.Close(); err != nil {
			logger.Warn("failed to close discovery renderer", "error", err)
		}
	}()

	// Output writers
	jsonFile, err := os.Create(cfg.OutputStem + ".json")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer jsonFile.Close()

	writers := []report.Writer{report.NewJSONWriter(jsonFile, report.WithPrettyPrint())}
	if cfg.Markdown {
		mdFile, err := os.Create(cfg.OutputStem + ".md")
		if err != nil {
			return fmt.Errorf("failed to create digest file: %w", err)
		}
		defer mdFile.Close()
		writers = append(writers, report.NewMarkdownWriter(mdFile))
	}

	// Assemble the pipeline
	batch := pipeline.NewBatchCrawler(factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithEntityOptions(entityOptions(cfg, logger)...),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewDiscoverStep(
			crawler.NewDiscoverer(discoverRenderer, crawler.WithLogger(logger)),
			discoverOptions(cfg, logger)...,
		),
		pipeline.NewCrawlStep(batch),
		pipeline.NewReportStep(report.NewMultiWriter(writers...), pipeline.WithReportLogger(logger)),
	)

	run := pipeline.NewRun(base)
	startTime := time.Now()

	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Printf("Crawled %d objectives in %s\n",
		len(run.Objectives), time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Output written to %s.json\n", cfg.OutputStem)
	if cfg.Markdown {
		fmt.Printf("Digest written to %s.md\n", cfg.OutputStem)
	}

	return nil
}

// rendererFactory builds the per-worker renderer factory for the
// configured fetch mode. The returned cleanup closes whatever session
// the factory shares; per-worker sessions are closed by the batch.
func rendererFactory(ctx context.Context, cfg *config.Config, cache *database.PageCache, logger *slog.Logger) (pipeline.RendererFactory, func(), error) {
	withCache := func(r render.Renderer) render.Renderer {
		if cache == nil {
			return r
		}
		return render.NewCachedRenderer(r, cache, logger)
	}

	// The static fetcher is stateless, so one shared instance serves
	// every worker.
	if cfg.NoBrowser {
		shared := withCache(render.NewStaticRenderer(
			render.WithStaticTimeout(cfg.ProbeTimeout),
			render.WithStaticLogger(logger),
		))
		return pipeline.SharedRenderer(shared), func() { _ = shared.Close() }, nil
	}

	// Sequential crawls share one browser session.
	if cfg.BatchSize == 1 {
		chrome, err := render.NewChromeRenderer(ctx,
			render.WithReadyTimeout(cfg.ReadyTimeout),
			render.WithChromeLogger(logger),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		shared := withCache(chrome)
		return pipeline.SharedRenderer(shared), func() { _ = shared.Close() }, nil
	}

	// Concurrent crawls get one browser session per worker.
	factory := func(ctx context.Context) (render.Renderer, error) {
		chrome, err := render.NewChromeRenderer(ctx,
			render.WithReadyTimeout(cfg.ReadyTimeout),
			render.WithChromeLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return withCache(chrome), nil
	}
	return factory, func() {}, nil
}

// entityOptions translates the config file's site tuning into entity
// options for the crawl.
func entityOptions(cfg *config.Config, logger *slog.Logger) []caf.Option {
	opts := []caf.Option{caf.WithLogger(logger)}

	site := cfg.Site
	if site == nil {
		return opts
	}

	if !site.PrincipleReadiness.IsZero() {
		opts = append(opts, caf.WithPrincipleReadiness(toReadiness(site.PrincipleReadiness)))
	}
	if !site.ObjectiveReadiness.IsZero() {
		opts = append(opts, caf.WithObjectiveReadiness(toReadiness(site.ObjectiveReadiness)))
	}
	if site.PrincipleLinkFilter != "" {
		opts = append(opts, caf.WithPrincipleLinkFilter(site.PrincipleLinkFilter, render.Readiness{
			Selector: fmt.Sprintf("a[href*='%s']", site.PrincipleLinkFilter),
			Wait:     render.WaitVisible,
		}))
	}

	return opts
}

// discoverOptions translates the config file's site tuning into
// discover step options.
func discoverOptions(cfg *config.Config, logger *slog.Logger) []pipeline.DiscoverStepOption {
	opts := []pipeline.DiscoverStepOption{pipeline.WithDiscoverLogger(logger)}

	site := cfg.Site
	if site == nil {
		return opts
	}

	if site.ObjectiveLinkFilter != "" {
		opts = append(opts,
			pipeline.WithDiscoverFilter(site.ObjectiveLinkFilter),
			pipeline.WithDiscoverReadiness(render.Readiness{
				Selector: fmt.Sprintf("a[href*='%s']", site.ObjectiveLinkFilter),
				Wait:     render.WaitVisible,
			}),
		)
	}

	return opts
}

// toReadiness maps the config file's readiness form onto the
// renderer's. Any wait value other than "present" means visible.
func toReadiness(r config.Readiness) render.Readiness {
	wait := render.WaitVisible
	if r.Wait == "present" {
		wait = render.WaitPresent
	}
	return render.Readiness{Selector: r.Selector, Wait: wait}
}
