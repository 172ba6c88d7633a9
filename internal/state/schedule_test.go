package state

import (
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"weather_poster/internal/domain"
	"weather_poster/internal/selection"
)

type ScheduleStoreTestSuite struct {
	suite.Suite

	path  string
	store *ScheduleStore
	clock time.Time
	pool  []domain.City
}

func (s *ScheduleStoreTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "daily_schedule.json")
	s.clock = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	selector := selection.New(rand.New(rand.NewSource(42)), logger)

	s.store = NewScheduleStore(s.path, selector, 3, logger)
	s.store.now = func() time.Time { return s.clock }

	s.pool = []domain.City{
		{ID: "tokyo", Weight: 10},
		{ID: "paris", Weight: 9},
		{ID: "london", Weight: 9},
		{ID: "reykjavik", Weight: 3},
		{ID: "marrakech", Weight: 4},
	}
}

func TestScheduleStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleStoreTestSuite))
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_GeneratesSchedule() {
	schedule, err := s.store.GetOrCreate(s.pool)

	s.Require().NoError(err)
	s.Equal("2025-06-15", schedule.Date)
	s.Require().Len(schedule.SelectedCities, 3)

	expected := []string{"00:00", "08:00", "16:00"}
	seen := map[string]bool{}
	for i, entry := range schedule.SelectedCities {
		s.Equal(expected[i], entry.PostingTimeUTC.Format("15:04"))
		s.False(entry.Posted)
		s.False(seen[entry.CityID], "city %s scheduled twice", entry.CityID)
		seen[entry.CityID] = true
	}
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_PersistsToDisk() {
	_, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	_, err = os.Stat(s.path)
	s.NoError(err)
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_SameDayReturnsExisting() {
	first, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	s.clock = s.clock.Add(6 * time.Hour)

	second, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	s.Equal(first.Date, second.Date)
	s.Equal(first.SelectedCities, second.SelectedCities)
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_RegeneratesAfterRollover() {
	first, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	s.clock = s.clock.Add(24 * time.Hour)

	second, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	s.Equal("2025-06-16", second.Date)
	s.NotEqual(first.Date, second.Date)
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_InsufficientPool() {
	small := s.pool[:2]

	_, err := s.store.GetOrCreate(small)

	s.ErrorIs(err, selection.ErrInsufficientCandidates)
}

func (s *ScheduleStoreTestSuite) TestGetOrCreate_CorruptFileRegenerates() {
	s.Require().NoError(os.WriteFile(s.path, []byte("{broken"), 0o644))

	schedule, err := s.store.GetOrCreate(s.pool)

	s.Require().NoError(err)
	s.Equal("2025-06-15", schedule.Date)
	s.Len(schedule.SelectedCities, 3)
}

func (s *ScheduleStoreTestSuite) TestSave_PreservesPostedFlags() {
	schedule, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	posted := schedule.SelectedCities[0].CityID
	schedule.MarkPosted(posted)
	s.Require().NoError(s.store.Save(schedule))

	reloaded, err := s.store.GetOrCreate(s.pool)
	s.Require().NoError(err)

	s.True(reloaded.Entry(posted).Posted)
}
