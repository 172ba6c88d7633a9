package state

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"weather_poster/internal/domain"
)

type RecencyTrackerTestSuite struct {
	suite.Suite

	path    string
	tracker *RecencyTracker
	clock   time.Time
}

func (s *RecencyTrackerTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "recent_posts.json")
	s.clock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.tracker = NewRecencyTracker(s.path, logger)
	s.tracker.now = func() time.Time { return s.clock }
}

func TestRecencyTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(RecencyTrackerTestSuite))
}

func (s *RecencyTrackerTestSuite) TestLoad_MissingFile() {
	err := s.tracker.Load(24 * time.Hour)

	s.NoError(err)
	s.Empty(s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestLoad_CorruptFile() {
	s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o644))

	err := s.tracker.Load(24 * time.Hour)

	s.NoError(err)
	s.Empty(s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestAddAndExcludedIDs() {
	s.tracker.Add("tokyo")
	s.tracker.Add("paris")

	s.Equal([]string{"tokyo", "paris"}, s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestCleanupOld() {
	s.tracker.posts = []domain.PostedRecord{
		{CityID: "stale", PostedAt: s.clock.Add(-25 * time.Hour)},
		{CityID: "boundary", PostedAt: s.clock.Add(-24 * time.Hour)},
		{CityID: "fresh", PostedAt: s.clock.Add(-1 * time.Hour)},
	}

	removed := s.tracker.CleanupOld(24 * time.Hour)

	s.Equal(1, removed)
	s.Equal([]string{"boundary", "fresh"}, s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestSaveLoadRoundTrip() {
	s.tracker.Add("tokyo")
	s.tracker.Add("paris")
	s.Require().NoError(s.tracker.Save())

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	reloaded := NewRecencyTracker(s.path, logger)
	reloaded.now = s.tracker.now

	s.Require().NoError(reloaded.Load(24 * time.Hour))
	s.Equal([]string{"tokyo", "paris"}, reloaded.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestLoad_PrunesStaleRecords() {
	s.tracker.Add("tokyo")
	s.Require().NoError(s.tracker.Save())

	// A day later tokyo has aged out of the window.
	s.clock = s.clock.Add(25 * time.Hour)

	s.Require().NoError(s.tracker.Load(24 * time.Hour))
	s.Empty(s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestExcludedIDs_KeepsDuplicates() {
	s.tracker.Add("tokyo")
	s.tracker.Add("tokyo")

	s.Equal([]string{"tokyo", "tokyo"}, s.tracker.ExcludedIDs())
}

func (s *RecencyTrackerTestSuite) TestSave_CreatesStateDir() {
	nested := filepath.Join(s.T().TempDir(), "a", "b", "recent_posts.json")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	tracker := NewRecencyTracker(nested, logger)

	tracker.Add("tokyo")
	s.NoError(tracker.Save())

	_, err := os.Stat(nested)
	s.NoError(err)
}
