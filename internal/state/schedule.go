package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"weather_poster/internal/domain"
	"weather_poster/internal/selection"
)

// ScheduleStore persists the daily posting schedule to a JSON file and
// lazily regenerates it once the UTC date rolls over.
type ScheduleStore struct {
	path         string
	selector     *selection.Selector
	citiesPerDay int
	logger       *slog.Logger
	now          func() time.Time
}

func NewScheduleStore(path string, selector *selection.Selector, citiesPerDay int, logger *slog.Logger) *ScheduleStore {
	return &ScheduleStore{
		path:         path,
		selector:     selector,
		citiesPerDay: citiesPerDay,
		logger:       logger,
		now:          time.Now,
	}
}

// load returns the persisted schedule, or nil if the file is missing
// or unreadable. Corruption is not fatal: the schedule regenerates.
func (s *ScheduleStore) load() *domain.DailySchedule {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read schedule state", "path", s.path, "error", err)
		}
		return nil
	}

	var schedule domain.DailySchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		s.logger.Warn("corrupt schedule state, regenerating", "path", s.path, "error", err)
		return nil
	}
	return &schedule
}

// GetOrCreate returns today's schedule, generating and persisting a
// fresh one when none exists or the persisted one is stale. Calling
// twice within the same UTC day yields the identical schedule without
// re-selecting cities.
func (s *ScheduleStore) GetOrCreate(pool []domain.City) (*domain.DailySchedule, error) {
	if schedule := s.load(); schedule != nil && schedule.IsCurrentDay(s.now()) {
		s.logger.Info("loaded existing schedule", "date", schedule.Date)
		return schedule, nil
	}

	selected, err := s.selector.Sample(pool, s.citiesPerDay)
	if err != nil {
		return nil, fmt.Errorf("select daily cities: %w", err)
	}

	nowUTC := s.now().UTC()
	times := selection.PostingTimes(len(selected), nowUTC)

	entries := make([]domain.ScheduleEntry, len(selected))
	for i, city := range selected {
		entries[i] = domain.ScheduleEntry{
			CityID:         city.ID,
			PostingTimeUTC: times[i],
		}
		s.logger.Info("scheduled city",
			"city", city.ID,
			"posting_time", times[i].Format("15:04"),
		)
	}

	schedule := &domain.DailySchedule{
		Date:                nowUTC.Format(domain.DateFormat),
		SelectedCities:      entries,
		GenerationTimestamp: nowUTC,
	}

	if err := s.Save(schedule); err != nil {
		return nil, err
	}

	s.logger.Info("generated new daily schedule", "date", schedule.Date, "cities", len(entries))
	return schedule, nil
}

// Save rewrites the schedule file. Write failures are fatal.
func (s *ScheduleStore) Save(schedule *domain.DailySchedule) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}
