package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"weather_poster/internal/config"
	"weather_poster/internal/domain"
	"weather_poster/internal/imagegen"
	"weather_poster/internal/platform"
	"weather_poster/internal/publisher"
	"weather_poster/internal/scheduler"
	"weather_poster/internal/selection"
	"weather_poster/internal/service"
	"weather_poster/internal/state"
	"weather_poster/internal/storage/postgres"
	"weather_poster/internal/weather"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	mode := flag.String("mode", "random", "operating mode: random, daily, or daemon")
	cityID := flag.String("city", "", "process one specific city and exit")
	dryRun := flag.Bool("dry-run", false, "simulate without posting or mutating state")
	force := flag.Bool("force", false, "post regardless of the scheduled window")
	listCities := flag.Bool("list-cities", false, "list configured cities and exit")
	seed := flag.Int64("seed", 0, "selection seed, 0 means time-seeded")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if *listCities {
		printCities(cfg)
		return
	}

	cities := cfg.EnabledCities()
	if len(cities) == 0 {
		logger.Error("no enabled cities configured")
		os.Exit(1)
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	selector := selection.New(rng, logger)

	recency := state.NewRecencyTracker(cfg.State.RecencyFile, logger)
	if err := recency.Load(cfg.Posting.Retention()); err != nil {
		logger.Error("failed to load recency state", "error", err)
		os.Exit(1)
	}

	scheduleStore := state.NewScheduleStore(cfg.State.ScheduleFile, selector, cfg.Posting.CitiesPerDay, logger)

	weatherClient := weather.New(weather.Config{
		APIKey:         cfg.Weather.APIKey,
		BaseURL:        cfg.Weather.BaseURL,
		Timeout:        cfg.Weather.Timeout,
		MaxAttempts:    cfg.Weather.Retry.MaxAttempts,
		InitialBackoff: cfg.Weather.Retry.InitialBackoff,
		MaxBackoff:     cfg.Weather.Retry.MaxBackoff,
	}, logger)

	generator := imagegen.New(imagegen.Config{
		APIKey:      cfg.Image.APIKey,
		BaseURL:     cfg.Image.BaseURL,
		Model:       cfg.Image.Model,
		OutputDir:   cfg.Image.OutputDir,
		Timeout:     cfg.Image.Timeout,
		MaxAttempts: cfg.Image.MaxAttempts,
		RetryDelay:  cfg.Image.RetryDelay,
	}, logger)

	posters, err := buildPosters(cfg, cities, logger)
	if err != nil {
		logger.Error("failed to build platform clients", "error", err)
		os.Exit(1)
	}

	// Optional post-event publisher
	var events service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	// Optional post-history archive
	var history service.HistoryArchive
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		history = postgres.NewHistoryStore(db, postgres.NewTransactionManager(db))
		logger.Info("connected to database")
	}

	svc := service.NewPostService(
		cities,
		weatherClient,
		generator,
		posters,
		selector,
		recency,
		scheduleStore,
		events,
		history,
		logger,
		cfg.Posting,
		service.Options{DryRun: *dryRun, Force: *force},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *dryRun {
		logger.Info("dry run mode, no posts will be made")
	}

	if err := run(ctx, svc, *mode, *cityID, cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *service.PostService, mode, cityID string, cfg *config.Config, logger *slog.Logger) error {
	if cityID != "" {
		stats, err := svc.RunCity(ctx, cityID)
		if err != nil {
			return err
		}
		logger.Info("city run finished", "city", cityID, "success", stats.Success)
		return nil
	}

	switch mode {
	case "random":
		stats, err := svc.RunRandom(ctx)
		if err != nil {
			return err
		}
		logger.Info("random run finished", "city", stats.CityID, "success", stats.Success)
		return nil
	case "daily":
		_, err := svc.RunDaily(ctx)
		return err
	case "daemon":
		sched := scheduler.NewScheduler(svc, cfg.Posting.CheckInterval, logger)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// buildPosters creates a client for each platform that at least one
// enabled city posts to. Incomplete credentials for a needed platform
// abort startup.
func buildPosters(cfg *config.Config, cities []domain.City, logger *slog.Logger) ([]service.PlatformPoster, error) {
	var needsTwitter, needsInstagram, needsTikTok bool
	for _, c := range cities {
		needsTwitter = needsTwitter || c.Platforms.Twitter
		needsInstagram = needsInstagram || c.Platforms.Instagram
		needsTikTok = needsTikTok || c.Platforms.TikTok
	}

	var host *platform.ImageHost
	if needsInstagram || needsTikTok {
		host = platform.NewImageHost(platform.HostConfig{
			UploadURL:  cfg.Hosting.UploadURL,
			APIKey:     cfg.Hosting.APIKey,
			Timeout:    cfg.Hosting.Timeout,
			Expiration: cfg.Hosting.Expiration,
		})
	}

	var posters []service.PlatformPoster

	if needsTwitter {
		tw, err := platform.NewTwitter(platform.TwitterConfig{
			APIKey:            cfg.Platforms.Twitter.APIKey,
			APISecret:         cfg.Platforms.Twitter.APISecret,
			AccessToken:       cfg.Platforms.Twitter.AccessToken,
			AccessTokenSecret: cfg.Platforms.Twitter.AccessTokenSecret,
			UploadURL:         cfg.Platforms.Twitter.UploadURL,
			TweetURL:          cfg.Platforms.Twitter.TweetURL,
			Timeout:           cfg.Platforms.Twitter.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("twitter: %w", err)
		}
		posters = append(posters, tw)
	}

	if needsInstagram {
		ig, err := platform.NewInstagram(platform.InstagramConfig{
			AccessToken: cfg.Platforms.Instagram.AccessToken,
			AccountID:   cfg.Platforms.Instagram.AccountID,
			GraphURL:    cfg.Platforms.Instagram.GraphURL,
			Timeout:     cfg.Platforms.Instagram.Timeout,
			PostStories: cfg.Platforms.Instagram.PostStories,
		}, host, logger)
		if err != nil {
			return nil, fmt.Errorf("instagram: %w", err)
		}
		posters = append(posters, ig)
	}

	if needsTikTok {
		tk, err := platform.NewTikTok(platform.TikTokConfig{
			AccessToken:  cfg.Platforms.TikTok.AccessToken,
			BaseURL:      cfg.Platforms.TikTok.BaseURL,
			Timeout:      cfg.Platforms.TikTok.Timeout,
			PollInterval: cfg.Platforms.TikTok.PollInterval,
			MaxPolls:     cfg.Platforms.TikTok.MaxPolls,
		}, host, logger)
		if err != nil {
			return nil, fmt.Errorf("tiktok: %w", err)
		}
		posters = append(posters, tk)
	}

	return posters, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func printCities(cfg *config.Config) {
	fmt.Println("\nConfigured Cities:")
	fmt.Println(strings.Repeat("-", 40))
	for _, cc := range cfg.Cities {
		city, _ := cfg.City(cc.ID)

		status := "enabled"
		if !city.Enabled {
			status = "disabled"
		}

		var platforms []string
		if city.Platforms.Twitter {
			platforms = append(platforms, "twitter")
		}
		if city.Platforms.Instagram {
			platforms = append(platforms, "instagram")
		}
		if city.Platforms.TikTok {
			platforms = append(platforms, "tiktok")
		}

		fmt.Printf("\n%s:\n", city.ID)
		fmt.Printf("  Name: %s, %s\n", city.Name, city.Country)
		fmt.Printf("  Status: %s\n", status)
		fmt.Printf("  Weight: %d\n", city.Weight)
		fmt.Printf("  Platforms: %s\n", strings.Join(platforms, ", "))
	}
}
