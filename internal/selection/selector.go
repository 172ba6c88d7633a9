package selection

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"weather_poster/internal/domain"
)

var (
	// ErrNoCandidates is returned when the candidate pool is empty.
	ErrNoCandidates = errors.New("no enabled candidates")

	// ErrInsufficientCandidates is returned when more candidates are
	// requested than the pool contains.
	ErrInsufficientCandidates = errors.New("insufficient candidates")
)

// Selector performs weighted random sampling over city candidates.
type Selector struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a Selector. A nil rng gets a time-seeded source;
// tests inject a fixed seed for reproducible draws.
func New(rng *rand.Rand, logger *slog.Logger) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng, logger: logger}
}

// Sample picks k distinct cities from pool by weighted random sampling
// without replacement. Each draw removes the chosen city, so the
// remaining candidates' relative odds grow for the next draw.
func (s *Selector) Sample(pool []domain.City, k int) ([]domain.City, error) {
	if k > len(pool) {
		return nil, fmt.Errorf("%w: requested %d of %d available", ErrInsufficientCandidates, k, len(pool))
	}

	remaining := make([]domain.City, len(pool))
	copy(remaining, pool)

	selected := make([]domain.City, 0, k)
	for i := 0; i < k; i++ {
		idx := s.drawIndex(remaining)
		selected = append(selected, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return selected, nil
}

// PickOne selects a single city from pool, skipping excluded ids.
// If every candidate is excluded the exclusion list is treated as
// exhausted and the draw falls back to the full pool, so some city is
// always chosen while the pool is non-empty.
func (s *Selector) PickOne(pool []domain.City, excludedIDs []string) (domain.City, error) {
	if len(pool) == 0 {
		return domain.City{}, ErrNoCandidates
	}

	excluded := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	var filtered []domain.City
	for _, c := range pool {
		if _, ok := excluded[c.ID]; !ok {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		s.logger.Warn("all candidates recently posted, falling back to full pool",
			"pool_size", len(pool),
			"excluded", len(excludedIDs),
		)
		filtered = pool
	}

	return filtered[s.drawIndex(filtered)], nil
}

// drawIndex picks one index with probability proportional to weight.
// Non-positive weights count as zero; if the pool carries no positive
// weight at all the draw degrades to uniform.
func (s *Selector) drawIndex(pool []domain.City) int {
	total := 0
	for _, c := range pool {
		if c.Weight > 0 {
			total += c.Weight
		}
	}

	if total <= 0 {
		return s.rng.Intn(len(pool))
	}

	target := s.rng.Intn(total)
	for i, c := range pool {
		if c.Weight <= 0 {
			continue
		}
		target -= c.Weight
		if target < 0 {
			return i
		}
	}

	// Unreachable while total matches the summed weights.
	return len(pool) - 1
}

// PostingTimes spreads n posting instants evenly across now's UTC
// calendar day: the i-th instant is midnight plus i*24h/n, floored to
// whole minutes.
func PostingTimes(n int, now time.Time) []time.Time {
	if n <= 0 {
		return nil
	}

	nowUTC := now.UTC()
	midnight := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	times := make([]time.Time, n)
	for i := 0; i < n; i++ {
		offsetMinutes := i * 24 * 60 / n
		times[i] = midnight.Add(time.Duration(offsetMinutes) * time.Minute)
	}
	return times
}
