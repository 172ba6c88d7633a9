package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"weather_poster/internal/domain"
)

// recencyFile is the on-disk layout of the recency state.
type recencyFile struct {
	Posts []domain.PostedRecord `json:"posts"`
}

// RecencyTracker keeps a rolling-window record of recently posted
// cities. State lives in a JSON file read once at load and rewritten
// wholesale on save; the window is pruned automatically on load.
type RecencyTracker struct {
	path   string
	posts  []domain.PostedRecord
	logger *slog.Logger
	now    func() time.Time
}

func NewRecencyTracker(path string, logger *slog.Logger) *RecencyTracker {
	return &RecencyTracker{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the state file and prunes stale records. A missing or
// corrupt file is not an error: the tracker starts empty, which fails
// open (a city may repost sooner than ideal, never the reverse).
func (t *RecencyTracker) Load(retention time.Duration) error {
	t.posts = nil

	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Warn("could not read recency state, starting empty", "path", t.path, "error", err)
		}
		return nil
	}

	var file recencyFile
	if err := json.Unmarshal(data, &file); err != nil {
		t.logger.Warn("corrupt recency state, starting empty", "path", t.path, "error", err)
		return nil
	}

	t.posts = file.Posts
	if removed := t.CleanupOld(retention); removed > 0 {
		t.logger.Debug("pruned stale recency records", "removed", removed)
	}
	return nil
}

// Add appends a posted record for the city with the current UTC time.
func (t *RecencyTracker) Add(cityID string) {
	t.posts = append(t.posts, domain.PostedRecord{
		CityID:   cityID,
		PostedAt: t.now().UTC(),
	})
}

// CleanupOld drops every record strictly older than the retention
// window and returns the number removed.
func (t *RecencyTracker) CleanupOld(retention time.Duration) int {
	cutoff := t.now().UTC().Add(-retention)

	kept := t.posts[:0]
	for _, p := range t.posts {
		if !p.PostedAt.Before(cutoff) {
			kept = append(kept, p)
		}
	}

	removed := len(t.posts) - len(kept)
	t.posts = kept
	return removed
}

// ExcludedIDs returns the city ids of all retained records. A city
// posted more than once inside the window appears more than once;
// duplicates are harmless to selection.
func (t *RecencyTracker) ExcludedIDs() []string {
	ids := make([]string, 0, len(t.posts))
	for _, p := range t.posts {
		ids = append(ids, p.CityID)
	}
	return ids
}

// Save rewrites the state file. Write failures are fatal to the
// caller: losing the ability to persist breaks duplicate prevention.
func (t *RecencyTracker) Save() error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(recencyFile{Posts: t.posts}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recency state: %w", err)
	}

	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("write recency state: %w", err)
	}
	return nil
}
