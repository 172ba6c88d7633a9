package domain

// PlatformFlags marks which platforms a city posts to.
type PlatformFlags struct {
	Twitter   bool `yaml:"twitter"`
	Instagram bool `yaml:"instagram"`
	TikTok    bool `yaml:"tiktok"`
}

// City is a schedulable candidate with a selection weight.
type City struct {
	ID        string
	Name      string
	NameLocal *string
	Country   string
	Timezone  string
	Lat       float64
	Lon       float64
	Landmarks []string
	Hashtags  []string
	Enabled   bool
	Weight    int // selection weight, 1-100, higher = more likely
	Platforms PlatformFlags
}
