package domain

import "time"

// DateFormat is the UTC calendar date layout used by daily schedules.
const DateFormat = "2006-01-02"

// PostedRecord marks one successful post of a city.
type PostedRecord struct {
	CityID   string    `json:"city_id"`
	PostedAt time.Time `json:"posted_at"`
}

// ScheduleEntry is one city slot in a daily schedule. Posted is
// monotonic: once true it never flips back.
type ScheduleEntry struct {
	CityID         string    `json:"city_id"`
	PostingTimeUTC time.Time `json:"posting_time_utc"`
	Posted         bool      `json:"posted"`
}

// DailySchedule holds the selected cities and posting times for one
// UTC calendar day. A schedule is valid only for the date it was
// generated for.
type DailySchedule struct {
	Date                string          `json:"date"`
	SelectedCities      []ScheduleEntry `json:"selected_cities"`
	GenerationTimestamp time.Time       `json:"generation_timestamp"`
}

// IsCurrentDay reports whether the schedule belongs to now's UTC date.
func (s *DailySchedule) IsCurrentDay(now time.Time) bool {
	return s.Date == now.UTC().Format(DateFormat)
}

// Entry returns the schedule entry for a city, or nil if the city is
// not on the day's roster.
func (s *DailySchedule) Entry(cityID string) *ScheduleEntry {
	for i := range s.SelectedCities {
		if s.SelectedCities[i].CityID == cityID {
			return &s.SelectedCities[i]
		}
	}
	return nil
}

// NeedsPosting reports whether a city is due: on today's roster, not
// yet posted, and within tolerance minutes of its scheduled time.
// A city absent from the roster is never due.
func (s *DailySchedule) NeedsPosting(cityID string, now time.Time, toleranceMinutes int) bool {
	entry := s.Entry(cityID)
	if entry == nil || entry.Posted {
		return false
	}

	diff := now.UTC().Sub(entry.PostingTimeUTC.UTC())
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(toleranceMinutes)*time.Minute
}

// MarkPosted flips the entry's posted flag. Idempotent; marking an
// absent city is a no-op. Callers persist the schedule afterwards.
func (s *DailySchedule) MarkPosted(cityID string) {
	if entry := s.Entry(cityID); entry != nil {
		entry.Posted = true
	}
}
