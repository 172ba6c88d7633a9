package domain

import "time"

// PlatformResult records the outcome of posting to one platform.
type PlatformResult struct {
	Platform string `json:"platform"`
	PostID   string `json:"post_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PostStats holds the outcome of processing a single city.
type PostStats struct {
	CityID    string
	CityName  string
	Success   bool
	ImagePath string
	Platforms []PlatformResult
	Duration  time.Duration
}

// Succeeded returns the names of platforms that accepted the post.
func (p *PostStats) Succeeded() []string {
	var out []string
	for _, r := range p.Platforms {
		if r.Error == "" {
			out = append(out, r.Platform)
		}
	}
	return out
}

// RunStats aggregates the outcome of one scheduler run.
type RunStats struct {
	Processed int
	Posted    int
	Skipped   int
	Errors    int
	Duration  time.Duration
}
