package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather_poster/internal/domain"
)

// InstagramConfig holds Meta Graph API credentials and endpoints.
type InstagramConfig struct {
	AccessToken string
	AccountID   string
	GraphURL    string
	Timeout     time.Duration
	PostStories bool
}

// Instagram posts images through the Meta Graph API: host the image at
// a public URL, create a media container, wait for Instagram to ingest
// it, then publish.
type Instagram struct {
	httpClient  *http.Client
	accessToken string
	accountID   string
	graphURL    string
	postStories bool
	host        *ImageHost
	logger      *slog.Logger
}

func NewInstagram(cfg InstagramConfig, host *ImageHost, logger *slog.Logger) (*Instagram, error) {
	if cfg.AccessToken == "" || cfg.AccountID == "" {
		return nil, fmt.Errorf("incomplete instagram credentials")
	}

	return &Instagram{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		accessToken: cfg.AccessToken,
		accountID:   cfg.AccountID,
		graphURL:    cfg.GraphURL,
		postStories: cfg.PostStories,
		host:        host,
		logger:      logger.With("platform", "instagram"),
	}, nil
}

// Platform returns the platform identifier.
func (ig *Instagram) Platform() string {
	return "instagram"
}

type graphResponse struct {
	ID string `json:"id"`
}

// Post publishes the image to the feed and, when enabled, to a story.
// Returns the feed post id; a failed story never fails the post.
func (ig *Instagram) Post(ctx context.Context, city domain.City, imagePath string, weather *domain.WeatherSnapshot) (string, error) {
	imageURL, err := ig.host.Upload(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("host image: %w", err)
	}

	// The hosting URL needs a moment before it is reliably downloadable.
	if err := sleepCtx(ctx, 5*time.Second); err != nil {
		return "", err
	}

	caption := ig.buildCaption(city, weather)

	creationID, err := ig.createContainer(ctx, imageURL, caption, "IMAGE")
	if err != nil {
		return "", fmt.Errorf("create media container: %w", err)
	}

	// Instagram processes the container asynchronously after download.
	if err := sleepCtx(ctx, 10*time.Second); err != nil {
		return "", err
	}

	postID, err := ig.publish(ctx, creationID)
	if err != nil {
		return "", fmt.Errorf("publish media: %w", err)
	}
	ig.logger.Info("feed post published", "city", city.ID, "post_id", postID)

	if ig.postStories {
		if err := ig.postStory(ctx, city, imageURL); err != nil {
			ig.logger.Warn("story failed, feed post succeeded", "city", city.ID, "error", err)
		}
	}

	return postID, nil
}

func (ig *Instagram) postStory(ctx context.Context, city domain.City, imageURL string) error {
	creationID, err := ig.createContainer(ctx, imageURL, "", "STORIES")
	if err != nil {
		return fmt.Errorf("create story container: %w", err)
	}

	if err := sleepCtx(ctx, 5*time.Second); err != nil {
		return err
	}

	storyID, err := ig.publish(ctx, creationID)
	if err != nil {
		return fmt.Errorf("publish story: %w", err)
	}

	ig.logger.Info("story published", "city", city.ID, "story_id", storyID)
	return nil
}

// createContainer registers the hosted image with the Graph API.
// Instagram occasionally times out downloading the image; those
// attempts are retried with a growing delay.
func (ig *Instagram) createContainer(ctx context.Context, imageURL, caption, mediaType string) (string, error) {
	params := url.Values{}
	params.Set("image_url", imageURL)
	params.Set("access_token", ig.accessToken)
	if mediaType == "STORIES" {
		params.Set("media_type", "STORIES")
	} else {
		params.Set("caption", caption)
	}

	endpoint := fmt.Sprintf("%s/%s/media", ig.graphURL, ig.accountID)

	const maxRetries = 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		id, retryable, err := ig.doGraphPost(ctx, endpoint, params)
		if err == nil {
			return id, nil
		}
		lastErr = err

		if !retryable || attempt == maxRetries {
			break
		}

		delay := time.Duration(attempt) * 10 * time.Second
		ig.logger.Warn("instagram timed out downloading image, retrying",
			"attempt", attempt,
			"delay", delay,
		)
		if err := sleepCtx(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (ig *Instagram) publish(ctx context.Context, creationID string) (string, error) {
	params := url.Values{}
	params.Set("creation_id", creationID)
	params.Set("access_token", ig.accessToken)

	endpoint := fmt.Sprintf("%s/%s/media_publish", ig.graphURL, ig.accountID)
	id, _, err := ig.doGraphPost(ctx, endpoint, params)
	return id, err
}

func (ig *Instagram) doGraphPost(ctx context.Context, endpoint string, params url.Values) (id string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ig.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		// Error subcode 2207003 means Instagram timed out fetching the image.
		retryable := strings.Contains(string(raw), "2207003") || strings.Contains(string(raw), "Timeout")
		return "", retryable, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}

	var graphResp graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&graphResp); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}

	return graphResp.ID, false, nil
}

func (ig *Instagram) buildCaption(city domain.City, weather *domain.WeatherSnapshot) string {
	lines := []string{
		fmt.Sprintf("%s %s Weather Update", weather.Emoji(), city.Name),
		"",
		fmt.Sprintf("🌡️ Temperature: %.0f°C (%.0f°F)", weather.TemperatureC, weather.TemperatureF()),
		fmt.Sprintf("💨 Feels like: %.0f°C", weather.FeelsLikeC),
		fmt.Sprintf("💧 Humidity: %d%%", weather.Humidity),
		fmt.Sprintf("☁️ Conditions: %s", titleCase(weather.Description)),
		"",
		fmt.Sprintf("📅 %s", weather.Timestamp.Format("January 2, 2006")),
		"",
	}

	defaults := []string{
		hashtagFromName(city.Name),
		hashtagFromName(city.Country),
		"#Weather", "#CityWeather", "#AIArt", "#IsometricArt",
		"#3DArt", "#DailyWeather", "#TravelGram", "#CityLife",
		"#WeatherUpdate", "#AIGenerated",
	}
	tags := mergeHashtags(city.Hashtags, defaults, 25)
	lines = append(lines, strings.Join(tags, " "))

	return strings.Join(lines, "\n")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
