package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ImageHost uploads a local image to public hosting. Instagram and
// TikTok both ingest media by URL, so the file must be reachable
// before their container/init calls.
type ImageHost struct {
	httpClient *http.Client
	uploadURL  string
	apiKey     string
	expiration time.Duration
}

// HostConfig holds imgbb-style hosting configuration.
type HostConfig struct {
	UploadURL  string
	APIKey     string
	Timeout    time.Duration
	Expiration time.Duration
}

func NewImageHost(cfg HostConfig) *ImageHost {
	return &ImageHost{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		uploadURL:  cfg.UploadURL,
		apiKey:     cfg.APIKey,
		expiration: cfg.Expiration,
	}
}

type hostResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload pushes the image and returns its public URL.
func (h *ImageHost) Upload(ctx context.Context, imagePath string) (string, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	form := url.Values{}
	form.Set("key", h.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(raw))
	form.Set("expiration", fmt.Sprintf("%d", int(h.expiration.Seconds())))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var hostResp hostResponse
	if err := json.NewDecoder(resp.Body).Decode(&hostResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if hostResp.Data.URL == "" {
		return "", fmt.Errorf("hosting returned no url")
	}
	return hostResp.Data.URL, nil
}
