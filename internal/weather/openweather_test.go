package weather

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"weather_poster/internal/domain"
)

const samplePayload = `{
	"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
	"main": {"temp": 22.5, "feels_like": 21.8, "humidity": 64},
	"wind": {"speed": 3.6},
	"clouds": {"all": 40},
	"sys": {"country": "JP", "sunrise": 1750000000, "sunset": 1750050000},
	"dt": 1750030000,
	"name": "Tokyo"
}`

type WeatherClientTestSuite struct {
	suite.Suite

	logger *slog.Logger
	city   domain.City
}

func (s *WeatherClientTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.city = domain.City{ID: "tokyo", Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503}
}

func TestWeatherClientTestSuite(t *testing.T) {
	suite.Run(t, new(WeatherClientTestSuite))
}

func (s *WeatherClientTestSuite) newClient(baseURL string, maxAttempts int) *Client {
	return New(Config{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxAttempts:    maxAttempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, s.logger)
}

func (s *WeatherClientTestSuite) TestFetch_Success() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("35.676200", r.URL.Query().Get("lat"))
		s.Equal("test-key", r.URL.Query().Get("appid"))
		s.Equal("metric", r.URL.Query().Get("units"))
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := s.newClient(server.URL, 1)

	snapshot, err := client.Fetch(context.Background(), s.city)

	s.Require().NoError(err)
	s.Equal("Tokyo", snapshot.CityName)
	s.Equal("Japan", snapshot.Country)
	s.Equal(22.5, snapshot.TemperatureC)
	s.Equal("scattered clouds", snapshot.Description)
	s.Equal("Clouds", snapshot.MainCondition)
	s.Equal(64, snapshot.Humidity)
	s.Equal(time.Unix(1750030000, 0).UTC(), snapshot.Timestamp)
}

func (s *WeatherClientTestSuite) TestFetch_RetriesOnServerError() {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := s.newClient(server.URL, 3)

	snapshot, err := client.Fetch(context.Background(), s.city)

	s.Require().NoError(err)
	s.Equal(int32(3), calls.Load())
	s.Equal("Tokyo", snapshot.CityName)
}

func (s *WeatherClientTestSuite) TestFetch_ExhaustsAttempts() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := s.newClient(server.URL, 2)

	_, err := client.Fetch(context.Background(), s.city)

	s.Error(err)
	s.Contains(err.Error(), "after 2 attempts")
}

func (s *WeatherClientTestSuite) TestFetch_ContextCancelledDuringBackoff() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Config{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Timeout:        time.Second,
		MaxAttempts:    5,
		InitialBackoff: time.Minute,
		MaxBackoff:     time.Minute,
	}, s.logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := client.Fetch(ctx, s.city)

	s.ErrorIs(err, context.Canceled)
}

func (s *WeatherClientTestSuite) TestFetch_MalformedBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := s.newClient(server.URL, 1)

	_, err := client.Fetch(context.Background(), s.city)

	s.Error(err)
	s.Contains(err.Error(), "decode response")
}

func (s *WeatherClientTestSuite) TestCalculateBackoff_DoublesAndCaps() {
	client := s.newClient("http://unused", 5)

	s.Equal(time.Millisecond, client.calculateBackoff(1))
	s.Equal(2*time.Millisecond, client.calculateBackoff(2))
	s.Equal(4*time.Millisecond, client.calculateBackoff(3))
	s.Equal(5*time.Millisecond, client.calculateBackoff(4))
}
