package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"weather_poster/internal/domain"
)

// HistoryRow is one archived platform post.
type HistoryRow struct {
	ID           int64     `db:"id"`
	CityID       string    `db:"city_id"`
	Platform     string    `db:"platform"`
	PostID       string    `db:"post_id"`
	TemperatureC float64   `db:"temperature_c"`
	Description  string    `db:"description"`
	PostedAt     time.Time `db:"posted_at"`
}

// HistoryStore archives successful posts for analytics. The archive is
// additive observability; the JSON state files stay authoritative for
// duplicate prevention.
type HistoryStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewHistoryStore(db *sqlx.DB, tm *TransactionManager) *HistoryStore {
	return &HistoryStore{db: db, tm: tm}
}

// Record inserts one row per succeeded platform. The rows for a city
// land in a single transaction: Record joins the caller's transaction
// when one is on the context and opens its own otherwise, so a
// mid-insert failure never leaves a partial archive.
func (s *HistoryStore) Record(ctx context.Context, stats *domain.PostStats, weather *domain.WeatherSnapshot) error {
	if _, ok := transactionFromContext(ctx); ok {
		return s.record(ctx, stats, weather)
	}
	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.record(txCtx, stats, weather)
	})
}

func (s *HistoryStore) record(ctx context.Context, stats *domain.PostStats, weather *domain.WeatherSnapshot) error {
	query := `
		INSERT INTO post_history (city_id, platform, post_id, temperature_c, description, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	exec := getExecutor(ctx, s.db)
	now := time.Now().UTC()

	for _, r := range stats.Platforms {
		if r.Error != "" {
			continue
		}

		var tempC float64
		var desc string
		if weather != nil {
			tempC = weather.TemperatureC
			desc = weather.Description
		}

		if _, err := exec.ExecContext(ctx, query,
			stats.CityID,
			r.Platform,
			r.PostID,
			tempC,
			desc,
			now,
		); err != nil {
			return err
		}
	}

	return nil
}

// ListSince returns archived posts newer than the given instant,
// most recent first.
func (s *HistoryStore) ListSince(ctx context.Context, since time.Time) ([]HistoryRow, error) {
	query := `
		SELECT id, city_id, platform, post_id, temperature_c, description, posted_at
		FROM post_history
		WHERE posted_at > $1
		ORDER BY posted_at DESC`

	var rows []HistoryRow
	if err := sqlx.SelectContext(ctx, getExecutor(ctx, s.db), &rows, query, since); err != nil {
		return nil, err
	}
	return rows, nil
}
