//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"weather_poster/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_post_history.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM post_history")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) stats() *domain.PostStats {
	return &domain.PostStats{
		CityID:   "tokyo",
		CityName: "Tokyo",
		Success:  true,
		Platforms: []domain.PlatformResult{
			{Platform: "twitter", PostID: "tw-1"},
			{Platform: "instagram", PostID: "ig-1"},
			{Platform: "tiktok", PostID: "", Error: "upload failed"},
		},
	}
}

func (s *PostgresIntegrationSuite) weather() *domain.WeatherSnapshot {
	return &domain.WeatherSnapshot{
		CityName:     "Tokyo",
		TemperatureC: 22.5,
		Description:  "scattered clouds",
	}
}

func (s *PostgresIntegrationSuite) TestHistoryStore_RecordSucceededPlatformsOnly() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))

	err := store.Record(s.ctx, s.stats(), s.weather())
	s.Require().NoError(err)

	rows, err := store.ListSince(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Len(rows, 2)

	platforms := map[string]string{}
	for _, r := range rows {
		platforms[r.Platform] = r.PostID
		s.Equal("tokyo", r.CityID)
		s.Equal(22.5, r.TemperatureC)
		s.Equal("scattered clouds", r.Description)
	}
	s.Equal("tw-1", platforms["twitter"])
	s.Equal("ig-1", platforms["instagram"])
	s.NotContains(platforms, "tiktok")
}

func (s *PostgresIntegrationSuite) TestHistoryStore_RecordNilWeather() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))

	stats := &domain.PostStats{
		CityID:    "paris",
		CityName:  "Paris",
		Success:   true,
		Platforms: []domain.PlatformResult{{Platform: "twitter", PostID: "tw-2"}},
	}

	err := store.Record(s.ctx, stats, nil)
	s.Require().NoError(err)

	rows, err := store.ListSince(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Zero(rows[0].TemperatureC)
	s.Empty(rows[0].Description)
}

func (s *PostgresIntegrationSuite) TestHistoryStore_ListSinceFiltersAndOrders() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))

	old := time.Now().UTC().Add(-48 * time.Hour)
	_, err := s.db.ExecContext(s.ctx,
		`INSERT INTO post_history (city_id, platform, post_id, temperature_c, description, posted_at)
		 VALUES ('london', 'twitter', 'tw-old', 10, 'rain', $1)`, old)
	s.Require().NoError(err)

	err = store.Record(s.ctx, s.stats(), s.weather())
	s.Require().NoError(err)

	rows, err := store.ListSince(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Len(rows, 2)
	for _, r := range rows {
		s.Equal("tokyo", r.CityID)
	}

	all, err := store.ListSince(s.ctx, time.Time{})
	s.Require().NoError(err)
	s.Len(all, 3)
	s.False(all[0].PostedAt.Before(all[len(all)-1].PostedAt))
}

func (s *PostgresIntegrationSuite) TestHistoryStore_RecordIsAtomicPerCity() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))

	_, err := s.db.ExecContext(s.ctx,
		`ALTER TABLE post_history ADD CONSTRAINT reject_tiktok CHECK (platform <> 'tiktok')`)
	s.Require().NoError(err)
	defer s.db.ExecContext(s.ctx,
		`ALTER TABLE post_history DROP CONSTRAINT reject_tiktok`)

	stats := &domain.PostStats{
		CityID:   "tokyo",
		CityName: "Tokyo",
		Success:  true,
		Platforms: []domain.PlatformResult{
			{Platform: "twitter", PostID: "tw-1"},
			{Platform: "instagram", PostID: "ig-1"},
			{Platform: "tiktok", PostID: "tt-1"},
		},
	}

	err = store.Record(s.ctx, stats, s.weather())
	s.Error(err)

	rows, err := store.ListSince(s.ctx, time.Time{})
	s.Require().NoError(err)
	s.Empty(rows, "failed insert must not leave earlier rows behind")
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollbackOnError() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))
	tm := NewTransactionManager(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := store.Record(ctx, s.stats(), s.weather()); err != nil {
			return err
		}
		return errors.New("boom")
	})
	s.Error(err)

	rows, err := store.ListSince(s.ctx, time.Time{})
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *PostgresIntegrationSuite) TestTransactionManager_Commit() {
	store := NewHistoryStore(s.db, NewTransactionManager(s.db))
	tm := NewTransactionManager(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		return store.Record(ctx, s.stats(), s.weather())
	})
	s.Require().NoError(err)

	rows, err := store.ListSince(s.ctx, time.Time{})
	s.Require().NoError(err)
	s.Len(rows, 2)
}
