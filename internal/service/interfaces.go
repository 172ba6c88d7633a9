package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"weather_poster/internal/domain"
)

type WeatherSource interface {
	Fetch(ctx context.Context, city domain.City) (*domain.WeatherSnapshot, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, city domain.City, weather *domain.WeatherSnapshot) (string, error)
}

type PlatformPoster interface {
	Platform() string
	Post(ctx context.Context, city domain.City, imagePath string, weather *domain.WeatherSnapshot) (string, error)
}

type Selector interface {
	PickOne(pool []domain.City, excludedIDs []string) (domain.City, error)
}

type RecencyStore interface {
	ExcludedIDs() []string
	Add(cityID string)
	Save() error
}

type SchedulePlanner interface {
	GetOrCreate(pool []domain.City) (*domain.DailySchedule, error)
	Save(schedule *domain.DailySchedule) error
}

type EventPublisher interface {
	Publish(ctx context.Context, stats *domain.PostStats, weather *domain.WeatherSnapshot) error
	Close() error
}

type HistoryArchive interface {
	Record(ctx context.Context, stats *domain.PostStats, weather *domain.WeatherSnapshot) error
}
