package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"weather_poster/internal/config"
	"weather_poster/internal/domain"
)

// Options tweak a single run without touching persisted state rules:
// DryRun stops before posting and never mutates state; Force bypasses
// the posting window check but never the day's roster.
type Options struct {
	DryRun bool
	Force  bool
}

// PostService orchestrates one selection-and-post cycle: pick a city,
// fetch its weather, generate the image, post to the enabled
// platforms, and record state only on success.
type PostService struct {
	cities    []domain.City
	weather   WeatherSource
	images    ImageGenerator
	posters   []PlatformPoster
	selector  Selector
	recency   RecencyStore
	schedule  SchedulePlanner
	publisher EventPublisher
	history   HistoryArchive
	logger    *slog.Logger
	cfg       config.PostingConfig
	opts      Options
	now       func() time.Time
}

func NewPostService(
	cities []domain.City,
	weather WeatherSource,
	images ImageGenerator,
	posters []PlatformPoster,
	selector Selector,
	recency RecencyStore,
	schedule SchedulePlanner,
	publisher EventPublisher,
	history HistoryArchive,
	logger *slog.Logger,
	cfg config.PostingConfig,
	opts Options,
) *PostService {
	return &PostService{
		cities:    cities,
		weather:   weather,
		images:    images,
		posters:   posters,
		selector:  selector,
		recency:   recency,
		schedule:  schedule,
		publisher: publisher,
		history:   history,
		logger:    logger,
		cfg:       cfg,
		opts:      opts,
		now:       time.Now,
	}
}

// RunRandom performs the live single-pick cycle: one weighted random
// city from the enabled roster minus recently posted ones.
func (s *PostService) RunRandom(ctx context.Context) (*domain.PostStats, error) {
	excluded := s.recency.ExcludedIDs()

	city, err := s.selector.PickOne(s.cities, excluded)
	if err != nil {
		return nil, fmt.Errorf("select city: %w", err)
	}

	s.logger.Info("selected city", "city", city.ID, "excluded", len(excluded))

	stats, err := s.ProcessCity(ctx, city)
	if err != nil {
		return stats, err
	}

	if stats.Success && !s.opts.DryRun {
		s.recency.Add(city.ID)
		if err := s.recency.Save(); err != nil {
			return stats, fmt.Errorf("persist recency state: %w", err)
		}
	}

	return stats, nil
}

// RunDaily performs the daily-batch cycle: ensure today's schedule
// exists, then post every entry whose window covers now.
func (s *PostService) RunDaily(ctx context.Context) (*domain.RunStats, error) {
	start := time.Now()

	schedule, err := s.schedule.GetOrCreate(s.cities)
	if err != nil {
		return nil, fmt.Errorf("get or create schedule: %w", err)
	}

	run := &domain.RunStats{}
	now := s.now().UTC()

	for _, entry := range schedule.SelectedCities {
		due := !entry.Posted && (s.opts.Force || schedule.NeedsPosting(entry.CityID, now, s.cfg.ToleranceMinutes))
		if !due {
			run.Skipped++
			continue
		}

		city, ok := s.findCity(entry.CityID)
		if !ok {
			s.logger.Warn("scheduled city no longer configured", "city", entry.CityID)
			run.Skipped++
			continue
		}

		run.Processed++
		stats, err := s.ProcessCity(ctx, city)
		if err != nil {
			s.logger.Error("city failed", "city", entry.CityID, "error", err)
			run.Errors++
			continue
		}

		if !stats.Success {
			if !s.opts.DryRun {
				run.Errors++
			}
			continue
		}

		run.Posted++
		if !s.opts.DryRun {
			schedule.MarkPosted(entry.CityID)
			if err := s.schedule.Save(schedule); err != nil {
				return run, fmt.Errorf("persist schedule: %w", err)
			}
		}
	}

	run.Duration = time.Since(start)
	s.logger.Info("daily run completed",
		"processed", run.Processed,
		"posted", run.Posted,
		"skipped", run.Skipped,
		"errors", run.Errors,
		"duration", run.Duration,
	)

	return run, nil
}

// RunCity processes one named city immediately, outside any schedule.
// Recency is still recorded so the random mode will not repeat it.
func (s *PostService) RunCity(ctx context.Context, cityID string) (*domain.PostStats, error) {
	city, ok := s.findCity(cityID)
	if !ok {
		return nil, fmt.Errorf("city %q not found in configuration", cityID)
	}

	stats, err := s.ProcessCity(ctx, city)
	if err != nil {
		return stats, err
	}

	if stats.Success && !s.opts.DryRun {
		s.recency.Add(city.ID)
		if err := s.recency.Save(); err != nil {
			return stats, fmt.Errorf("persist recency state: %w", err)
		}
	}

	return stats, nil
}

// ProcessCity runs the full collaborator chain for one city. Weather
// or image failure aborts before any posting; a city counts as posted
// when at least one platform accepted it.
func (s *PostService) ProcessCity(ctx context.Context, city domain.City) (*domain.PostStats, error) {
	start := time.Now()
	stats := &domain.PostStats{CityID: city.ID, CityName: city.Name}

	weather, err := s.weather.Fetch(ctx, city)
	if err != nil {
		return stats, fmt.Errorf("fetch weather: %w", err)
	}

	s.logger.Info("fetched weather",
		"city", city.ID,
		"description", weather.Description,
		"temperature_c", weather.TemperatureC,
	)

	if s.opts.DryRun {
		s.logger.Info("dry run, skipping image generation and posting",
			"city", city.ID,
			"platforms", s.enabledPlatforms(city),
		)
		return stats, nil
	}

	imagePath, err := s.images.Generate(ctx, city, weather)
	if err != nil {
		return stats, fmt.Errorf("generate image: %w", err)
	}
	stats.ImagePath = imagePath

	for _, poster := range s.posters {
		if !platformEnabled(city, poster.Platform()) {
			continue
		}

		postID, err := poster.Post(ctx, city, imagePath, weather)
		result := domain.PlatformResult{Platform: poster.Platform(), PostID: postID}
		if err != nil {
			result.Error = err.Error()
			s.logger.Error("platform post failed",
				"city", city.ID,
				"platform", poster.Platform(),
				"error", err,
			)
		}
		stats.Platforms = append(stats.Platforms, result)
	}

	stats.Success = len(stats.Succeeded()) > 0
	stats.Duration = time.Since(start)

	if stats.Success {
		s.announce(ctx, stats, weather)
	}

	s.logger.Info("city processed",
		"city", city.ID,
		"success", stats.Success,
		"platforms_ok", stats.Succeeded(),
		"duration", stats.Duration,
	)

	return stats, nil
}

// announce mirrors a successful post to the optional event publisher
// and history archive. The post already happened, so failures here are
// logged but never fail the cycle.
func (s *PostService) announce(ctx context.Context, stats *domain.PostStats, weather *domain.WeatherSnapshot) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, stats, weather); err != nil {
			s.logger.Warn("publish post event failed", "city", stats.CityID, "error", err)
		}
	}
	if s.history != nil {
		if err := s.history.Record(ctx, stats, weather); err != nil {
			s.logger.Warn("record post history failed", "city", stats.CityID, "error", err)
		}
	}
}

func (s *PostService) findCity(id string) (domain.City, bool) {
	for _, c := range s.cities {
		if c.ID == id {
			return c, true
		}
	}
	return domain.City{}, false
}

func (s *PostService) enabledPlatforms(city domain.City) []string {
	var out []string
	for _, p := range s.posters {
		if platformEnabled(city, p.Platform()) {
			out = append(out, p.Platform())
		}
	}
	return out
}

func platformEnabled(city domain.City, platform string) bool {
	switch platform {
	case "twitter":
		return city.Platforms.Twitter
	case "instagram":
		return city.Platforms.Instagram
	case "tiktok":
		return city.Platforms.TikTok
	}
	return false
}
