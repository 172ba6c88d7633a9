package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"weather_poster/internal/domain"
)

// Config holds image generation configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	OutputDir   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// Generator renders isometric city-weather scenes through the Gemini
// image model and writes the result to the output directory.
type Generator struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	outputDir   string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		outputDir:   cfg.OutputDir,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		logger:      logger.With("component", "imagegen"),
		now:         time.Now,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate produces the weather image for a city and returns the
// saved file path. Generation is retried with a fixed delay.
func (g *Generator) Generate(ctx context.Context, city domain.City, weather *domain.WeatherSnapshot) (string, error) {
	prompt := buildPrompt(city, weather)

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		path, err := g.generateOnce(ctx, city, prompt)
		if err == nil {
			return path, nil
		}
		lastErr = err

		if attempt == g.maxAttempts {
			break
		}

		g.logger.Warn("image generation failed, retrying",
			"city", city.ID,
			"attempt", attempt,
			"delay", g.retryDelay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.retryDelay):
		}
	}

	return "", fmt.Errorf("after %d attempts: %w", g.maxAttempts, lastErr)
}

func (g *Generator) generateOnce(ctx context.Context, city domain.City, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	imageData := extractImage(&genResp)
	if imageData == "" {
		return "", fmt.Errorf("no image in response for %s", city.ID)
	}

	raw, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return "", fmt.Errorf("decode image data: %w", err)
	}

	return g.saveImage(city.ID, raw)
}

func extractImage(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data
			}
		}
	}
	return ""
}

func (g *Generator) saveImage(cityID string, raw []byte) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.png", cityID, g.now().Format("20060102_150405"))
	path := filepath.Join(g.outputDir, filename)

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	g.logger.Info("image saved", "city", cityID, "path", path)
	return path, nil
}

func buildPrompt(city domain.City, weather *domain.WeatherSnapshot) string {
	tempFeel := "mild"
	if weather.TemperatureC > 25 {
		tempFeel = "warm"
	} else if weather.TemperatureC < 15 {
		tempFeel = "cool"
	}

	return fmt.Sprintf(`Present a clear, 45° top-down isometric miniature 3D cartoon scene of %s, featuring its most iconic landmarks and architectural elements.

LANDMARKS TO INCLUDE:
%s

STYLE REQUIREMENTS:
- Use soft, refined textures with realistic PBR materials
- Gentle, lifelike lighting and shadows
- Clean, minimalistic composition
- Soft, solid-colored background (subtle gradient acceptable)

CURRENT WEATHER CONDITIONS TO INTEGRATE:
- Weather: %s
- %s
- Time of day: %s
- Temperature feel: %s

TEXT OVERLAY (must be clearly legible):
- At the top-center, place the title "%s" in large bold text
- Below the title: a prominent weather icon %s
- Below the icon: the date "%s" in small text
- Below the date: the temperature "%.0f°C" in medium text

TEXT STYLING:
- All text must be centered with consistent spacing
- Text may subtly overlap the tops of the buildings
- Use a clean, modern sans-serif font
- Ensure high contrast for readability

OUTPUT:
- Square 1080x1080 dimension
- High quality, suitable for social media posting`,
		city.Name,
		strings.Join(city.Landmarks, ", "),
		weather.Description,
		weather.AtmospherePrompt(),
		weather.TimeOfDay(),
		tempFeel,
		city.Name,
		weather.Emoji(),
		weather.Timestamp.Format("January 2, 2006"),
		weather.TemperatureC,
	)
}
