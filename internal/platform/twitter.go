package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"weather_poster/internal/domain"
)

// TwitterConfig holds X/Twitter API credentials and endpoints.
type TwitterConfig struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	UploadURL         string
	TweetURL          string
	Timeout           time.Duration
}

// Twitter posts images through the v1.1 media upload and v2 tweet
// endpoints, signed with OAuth1.
type Twitter struct {
	httpClient *http.Client
	uploadURL  string
	tweetURL   string
	logger     *slog.Logger
}

func NewTwitter(cfg TwitterConfig, logger *slog.Logger) (*Twitter, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("incomplete twitter credentials")
	}

	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	client := oauthCfg.Client(oauth1.NoContext, token)
	client.Timeout = cfg.Timeout

	return &Twitter{
		httpClient: client,
		uploadURL:  cfg.UploadURL,
		tweetURL:   cfg.TweetURL,
		logger:     logger.With("platform", "twitter"),
	}, nil
}

// Platform returns the platform identifier.
func (t *Twitter) Platform() string {
	return "twitter"
}

type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Post uploads the image and publishes a tweet, returning the tweet id.
func (t *Twitter) Post(ctx context.Context, city domain.City, imagePath string, weather *domain.WeatherSnapshot) (string, error) {
	mediaID, err := t.uploadMedia(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	body, err := json.Marshal(tweetRequest{
		Text:  t.buildText(city, weather),
		Media: &tweetMedia{MediaIDs: []string{mediaID}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tweetURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post tweet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}

	var tweetResp tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&tweetResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	t.logger.Info("tweet posted", "city", city.ID, "tweet_id", tweetResp.Data.ID)
	return tweetResp.Data.ID, nil
}

func (t *Twitter) uploadMedia(ctx context.Context, imagePath string) (string, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("media", filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(raw); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}

	var uploadResp mediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return uploadResp.MediaIDString, nil
}

func (t *Twitter) buildText(city domain.City, weather *domain.WeatherSnapshot) string {
	lines := []string{
		fmt.Sprintf("%s %s Weather", weather.Emoji(), city.Name),
		fmt.Sprintf("🌡️ %.0f°C (%.0f°F)", weather.TemperatureC, weather.TemperatureF()),
		fmt.Sprintf("📅 %s", weather.Timestamp.Format("January 2, 2006")),
		fmt.Sprintf("☁️ %s", titleCase(weather.Description)),
		"",
	}

	defaults := []string{hashtagFromName(city.Name), "#Weather", "#AIArt", "#CityWeather"}
	tags := mergeHashtags(city.Hashtags, defaults, 6)
	lines = append(lines, strings.Join(tags, " "))

	return strings.Join(lines, "\n")
}
