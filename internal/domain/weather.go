package domain

import (
	"strings"
	"time"
)

// WeatherSnapshot holds current conditions for a city at one instant.
type WeatherSnapshot struct {
	CityName      string
	Country       string
	TemperatureC  float64
	FeelsLikeC    float64
	Humidity      int
	Description   string
	MainCondition string
	IconCode      string
	WindSpeedMS   float64
	CloudsPercent int
	Timestamp     time.Time
	Sunrise       time.Time
	Sunset        time.Time
}

var weatherEmoji = map[string]string{
	"clear sky":        "☀️",
	"few clouds":       "🌤️",
	"scattered clouds": "⛅",
	"broken clouds":    "🌥️",
	"overcast clouds":  "☁️",
	"shower rain":      "🌧️",
	"light rain":       "🌦️",
	"rain":             "🌧️",
	"thunderstorm":     "⛈️",
	"snow":             "🌨️",
	"mist":             "🌫️",
	"fog":              "🌫️",
	"haze":             "🌫️",
	"drizzle":          "🌧️",
}

var weatherAtmosphere = map[string]string{
	"clear":        "bright sunshine, crisp shadows, blue sky",
	"clouds":       "soft diffused light, cloudy sky, gentle shadows",
	"rain":         "wet streets, rain droplets, puddle reflections, grey sky",
	"drizzle":      "light mist, wet surfaces, overcast atmosphere",
	"thunderstorm": "dramatic dark clouds, lightning in the distance, stormy atmosphere",
	"snow":         "snow-covered roofs and streets, soft white blanket, winter wonderland",
	"mist":         "mysterious fog, soft diffused light, atmospheric haze",
	"fog":          "thick fog partially obscuring buildings, moody atmosphere",
	"haze":         "hazy atmosphere, soft sunlight filtering through",
}

// Emoji picks a weather emoji matching the description, with a
// coarser fallback on the main condition.
func (w *WeatherSnapshot) Emoji() string {
	desc := strings.ToLower(w.Description)
	for key, emoji := range weatherEmoji {
		if strings.Contains(desc, key) {
			return emoji
		}
	}

	switch {
	case strings.Contains(strings.ToLower(w.MainCondition), "clear"):
		return "☀️"
	case strings.Contains(strings.ToLower(w.MainCondition), "cloud"):
		return "☁️"
	case strings.Contains(strings.ToLower(w.MainCondition), "rain"):
		return "🌧️"
	case strings.Contains(strings.ToLower(w.MainCondition), "snow"):
		return "🌨️"
	}
	return "🌡️"
}

// AtmospherePrompt returns an atmospheric scene description used by
// the image generation prompt.
func (w *WeatherSnapshot) AtmospherePrompt() string {
	main := strings.ToLower(w.MainCondition)
	desc := strings.ToLower(w.Description)
	for key, atmosphere := range weatherAtmosphere {
		if strings.Contains(main, key) || strings.Contains(desc, key) {
			return atmosphere
		}
	}
	return "pleasant weather, natural lighting"
}

// IsDaytime reports whether the snapshot falls between sunrise and sunset.
func (w *WeatherSnapshot) IsDaytime() bool {
	return !w.Timestamp.Before(w.Sunrise) && !w.Timestamp.After(w.Sunset)
}

// TimeOfDay returns a lighting description for the image generation prompt.
func (w *WeatherSnapshot) TimeOfDay() string {
	if !w.IsDaytime() {
		return "nighttime scene with city lights glowing, stars in the sky"
	}

	hour := w.Timestamp.Hour()
	switch {
	case hour >= 5 && hour < 8:
		return "early morning golden hour, warm sunrise light"
	case hour >= 8 && hour < 11:
		return "bright morning light, crisp atmosphere"
	case hour >= 11 && hour < 14:
		return "midday sun, strong overhead lighting"
	case hour >= 14 && hour < 17:
		return "afternoon light, warm tones"
	case hour >= 17 && hour < 20:
		return "golden hour sunset, warm orange and pink sky"
	default:
		return "twilight, city transitioning to night"
	}
}

// TemperatureF converts the current temperature to Fahrenheit.
func (w *WeatherSnapshot) TemperatureF() float64 {
	return w.TemperatureC*9/5 + 32
}
