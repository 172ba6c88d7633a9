package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"weather_poster/internal/domain"
)

// TikTokConfig holds Content Posting API credentials and endpoints.
type TikTokConfig struct {
	AccessToken  string
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	MaxPolls     int
}

// TikTok posts photo content through the Content Posting API: init the
// post with a hosted image URL, then poll the publish status until
// TikTok finishes processing the media.
type TikTok struct {
	httpClient   *http.Client
	accessToken  string
	baseURL      string
	pollInterval time.Duration
	maxPolls     int
	host         *ImageHost
	logger       *slog.Logger
}

func NewTikTok(cfg TikTokConfig, host *ImageHost, logger *slog.Logger) (*TikTok, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("missing tiktok access token")
	}

	return &TikTok{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		accessToken:  cfg.AccessToken,
		baseURL:      cfg.BaseURL,
		pollInterval: cfg.PollInterval,
		maxPolls:     cfg.MaxPolls,
		host:         host,
		logger:       logger.With("platform", "tiktok"),
	}, nil
}

// Platform returns the platform identifier.
func (tk *TikTok) Platform() string {
	return "tiktok"
}

type tiktokInitRequest struct {
	PostInfo   tiktokPostInfo   `json:"post_info"`
	SourceInfo tiktokSourceInfo `json:"source_info"`
}

type tiktokPostInfo struct {
	Title          string `json:"title"`
	PrivacyLevel   string `json:"privacy_level"`
	DisableComment bool   `json:"disable_comment"`
	DisableDuet    bool   `json:"disable_duet"`
	DisableStitch  bool   `json:"disable_stitch"`
}

type tiktokSourceInfo struct {
	Source          string   `json:"source"`
	PhotoCoverIndex int      `json:"photo_cover_index"`
	PhotoImages     []string `json:"photo_images"`
}

type tiktokInitResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
	} `json:"data"`
	Error tiktokError `json:"error"`
}

type tiktokStatusResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
	Error tiktokError `json:"error"`
}

type tiktokError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Post publishes the image as a photo post and returns the publish id
// once TikTok reports processing complete.
func (tk *TikTok) Post(ctx context.Context, city domain.City, imagePath string, weather *domain.WeatherSnapshot) (string, error) {
	imageURL, err := tk.host.Upload(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("host image: %w", err)
	}

	publishID, err := tk.initPost(ctx, tk.buildDescription(city, weather), imageURL)
	if err != nil {
		return "", fmt.Errorf("init photo post: %w", err)
	}

	if err := tk.waitForPublish(ctx, publishID); err != nil {
		return "", fmt.Errorf("wait for publish: %w", err)
	}

	tk.logger.Info("photo post published", "city", city.ID, "publish_id", publishID)
	return publishID, nil
}

func (tk *TikTok) initPost(ctx context.Context, description, imageURL string) (string, error) {
	title := truncateRunes(description, 150)

	body, err := json.Marshal(tiktokInitRequest{
		PostInfo: tiktokPostInfo{
			Title:        title,
			PrivacyLevel: "PUBLIC_TO_EVERYONE",
		},
		SourceInfo: tiktokSourceInfo{
			Source:      "PULL_FROM_URL",
			PhotoImages: []string{imageURL},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/post/publish/content/init/", tk.baseURL)
	var initResp tiktokInitResponse
	if err := tk.doPost(ctx, endpoint, body, &initResp); err != nil {
		return "", err
	}

	if initResp.Data.PublishID == "" {
		return "", fmt.Errorf("init rejected: %s (%s)", initResp.Error.Message, initResp.Error.Code)
	}
	return initResp.Data.PublishID, nil
}

// waitForPublish polls the status endpoint until the post leaves the
// processing states or the poll budget runs out.
func (tk *TikTok) waitForPublish(ctx context.Context, publishID string) error {
	body, err := json.Marshal(map[string]string{"publish_id": publishID})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/post/publish/status/fetch/", tk.baseURL)

	for poll := 1; poll <= tk.maxPolls; poll++ {
		var statusResp tiktokStatusResponse
		if err := tk.doPost(ctx, endpoint, body, &statusResp); err != nil {
			return err
		}

		switch statusResp.Data.Status {
		case "PUBLISH_COMPLETE", "SEND_TO_USER_INBOX":
			return nil
		case "FAILED":
			return fmt.Errorf("publish failed: %s (%s)", statusResp.Error.Message, statusResp.Error.Code)
		}

		tk.logger.Debug("publish still processing",
			"publish_id", publishID,
			"status", statusResp.Data.Status,
			"poll", poll,
		)

		if err := sleepCtx(ctx, tk.pollInterval); err != nil {
			return err
		}
	}

	return fmt.Errorf("publish not complete after %d polls", tk.maxPolls)
}

func (tk *TikTok) doPost(ctx context.Context, endpoint string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tk.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := tk.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (tk *TikTok) buildDescription(city domain.City, weather *domain.WeatherSnapshot) string {
	lines := []string{
		fmt.Sprintf("%s %s Weather Today!", weather.Emoji(), city.Name),
		fmt.Sprintf("🌡️ %.0f°C | %s", weather.TemperatureC, titleCase(weather.Description)),
		"",
	}

	defaults := []string{
		strings.ToLower(hashtagFromName(city.Name)),
		"#weather", "#fyp", "#foryou", "#citylife",
		"#aiart", "#dailyweather",
		strings.ToLower(hashtagFromName(city.Country)),
	}
	tags := mergeHashtags(city.Hashtags, defaults, 10)
	lines = append(lines, strings.Join(tags, " "))

	return strings.Join(lines, "\n")
}
