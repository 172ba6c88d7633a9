package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weather_poster/internal/domain"
)

// Config holds OpenWeatherMap client configuration.
type Config struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new OpenWeatherMap client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "weather"),
	}
}

// Fetch retrieves current weather for a city by coordinates.
func (c *Client) Fetch(ctx context.Context, city domain.City) (*domain.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", city.Lat))
	values.Set("lon", fmt.Sprintf("%f", city.Lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	var resp *apiResponse
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err = c.doRequest(ctx, reqURL)
		if err == nil {
			return c.transform(city, resp), nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("weather request failed, retrying",
			"city", city.ID,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Client) transform(city domain.City, resp *apiResponse) *domain.WeatherSnapshot {
	snapshot := &domain.WeatherSnapshot{
		CityName:      city.Name,
		Country:       city.Country,
		TemperatureC:  resp.Main.Temp,
		FeelsLikeC:    resp.Main.FeelsLike,
		Humidity:      resp.Main.Humidity,
		WindSpeedMS:   resp.Wind.Speed,
		CloudsPercent: resp.Clouds.All,
		Timestamp:     time.Unix(resp.Dt, 0).UTC(),
		Sunrise:       time.Unix(resp.Sys.Sunrise, 0).UTC(),
		Sunset:        time.Unix(resp.Sys.Sunset, 0).UTC(),
	}

	if resp.Dt == 0 {
		snapshot.Timestamp = time.Now().UTC()
	}

	if len(resp.Weather) > 0 {
		snapshot.Description = resp.Weather[0].Description
		snapshot.MainCondition = resp.Weather[0].Main
		snapshot.IconCode = resp.Weather[0].Icon
	}

	return snapshot
}
