package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dealmungchi/lurecrawler/config"
	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal"
	"github.com/dealmungchi/lurecrawler/internal/crawler"
	"github.com/dealmungchi/lurecrawler/logger"
	"github.com/dealmungchi/lurecrawler/services/cache"
	"github.com/dealmungchi/lurecrawler/services/datastore"
	"github.com/dealmungchi/lurecrawler/services/imagesink"
	"github.com/dealmungchi/lurecrawler/services/publisher"
	"github.com/dealmungchi/lurecrawler/services/queue"
	"github.com/dealmungchi/lurecrawler/services/worker"
)

var (
	makerSlug string
	watch     bool
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	rootCmd := &cobra.Command{
		Use:           "lurecrawler",
		Short:         "Scrape Japanese fishing-lure maker sites into the lure catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(extractCmd(), runCmd(), sourcesCmd(), rowsCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Default.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newFactory(cfg *config.Config, cacheSvc cache.CacheService) *crawler.Factory {
	return crawler.NewFactory(crawler.Options{
		HTTP:           helpers.NewClient(cfg.RequestTimeout),
		Cache:          cacheSvc,
		BlockTime:      cfg.BlockTime,
		MaxAttempts:    cfg.MaxAttempts,
		RetryDelay:     cfg.RetryDelay,
		RequestTimeout: cfg.RequestTimeout,
		BrowserBin:     cfg.BrowserBin,
	})
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract one product page and print its record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			factory := newFactory(cfg, cache.NewMemcacheService(cfg.MemcacheAddr))
			slug := makerSlug
			if slug == "" {
				src, ok := factory.Resolve(args[0])
				if !ok {
					return fmt.Errorf("no extractor serves %s; pass --maker", args[0])
				}
				slug = src.ManufacturerSlug
			}

			ext, release, err := factory.Acquire(slug)
			defer release()
			if err != nil {
				return err
			}

			rec, err := ext.Extract(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().StringVarP(&makerSlug, "maker", "m", "", "maker slug; resolved from the URL host when empty")
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drain the work-queue into the datastore",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateSinks(); err != nil {
				return err
			}
			log := logger.ForWorker()

			ctx, cancel := signalContext()
			defer cancel()

			services, err := initializeServices(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			defer services.Cleanup()

			w := worker.NewWorker(ctx, worker.Deps{
				Factory:   newFactory(cfg, services.Cache),
				Queue:     services.Queue,
				Store:     services.Store,
				Images:    services.Images,
				Publisher: services.Publisher,
				Logger:    helpers.NewLogger(cfg.ErrorLogFile),
			}, cfg.PolitenessDelay, cfg.CrawlInterval)

			log.Info().
				Str("environment", cfg.Environment).
				Bool("watch", watch).
				Dur("politeness_delay", cfg.PolitenessDelay).
				Msg("Starting lure worker")

			if watch {
				return w.Start()
			}

			summary, err := w.Run(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep draining the queue every CRAWL_INTERVAL_SECONDS")
	return cmd
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the registered maker extractors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tMAKER\tBROWSER\tHOSTS")
			for _, src := range newFactory(cfg, nil).Sources() {
				browser := "-"
				switch {
				case src.NeedsVisibleBrowser:
					browser = "visible"
				case src.NeedsScriptedBrowser:
					browser = "headless"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", src.ManufacturerSlug, src.Manufacturer, browser, src.Hosts)
			}
			return tw.Flush()
		},
	}
}

func rowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <maker> <slug>",
		Short: "Print the stored catalog rows of one product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
				return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required")
			}
			ctx, cancel := signalContext()
			defer cancel()

			store := datastore.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseTable)
			rows, err := store.ListBySlug(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*internal.Dependencies, error) {
	services := &internal.Dependencies{}

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	services.Cache = cacheService
	logger.Info("Using Memcache at %s", cfg.MemcacheAddr)

	// Initialize publisher; the record stream is optional
	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamMaxLength,
	)
	if err := redisPublisher.Ping(); err != nil {
		logger.Warn("Redis at %s unavailable, records will not be streamed: %v", cfg.RedisAddr, err)
		redisPublisher.Close()
	} else {
		services.Publisher = redisPublisher
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	services.Queue = queue.NewAirtableQueue(queue.AirtableOptions{
		BaseURL:    cfg.AirtableURL,
		APIKey:     cfg.AirtableAPIKey,
		BaseID:     cfg.AirtableBaseID,
		URLTable:   cfg.AirtableURLTable,
		MakerTable: cfg.AirtableMakerTable,
		BatchDelay: cfg.AirtableBatchDelay,
	})
	services.Store = datastore.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseTable)
	services.Images = imagesink.NewSupabaseSink(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket, cacheService)

	return services, nil
}
