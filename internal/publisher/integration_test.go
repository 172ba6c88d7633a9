//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"weather_poster/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishPostEvent() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-post",
		RoutingKey: "test-routing-key-post",
		QueueName:  "test-queue-post",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	stats := &domain.PostStats{
		CityID:   "tokyo",
		CityName: "Tokyo",
		Success:  true,
		Platforms: []domain.PlatformResult{
			{Platform: "twitter", PostID: "tw-1"},
			{Platform: "instagram", PostID: "", Error: "token expired"},
		},
	}
	weather := &domain.WeatherSnapshot{
		CityName:     "Tokyo",
		TemperatureC: 22.5,
		Description:  "scattered clouds",
	}

	err = pub.Publish(s.ctx, stats, weather)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.NotNil(msg)

	var received PostMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("posted", received.Action)
	s.Equal("tokyo", received.CityID)
	s.Equal("Tokyo", received.CityName)
	s.Equal(22.5, received.TemperatureC)
	s.Equal("scattered clouds", received.Description)
	s.Len(received.Platforms, 2)
	s.Equal("tw-1", received.Platforms[0].PostID)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_NilWeather() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-nilweather",
		RoutingKey: "test-routing-key-nilweather",
		QueueName:  "test-queue-nilweather",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	stats := &domain.PostStats{CityID: "paris", CityName: "Paris", Success: true}

	err = pub.Publish(s.ctx, stats, nil)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.NotNil(msg)

	var received PostMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("paris", received.CityID)
	s.Zero(received.TemperatureC)
	s.Empty(received.Description)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessagePersistence() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-persist",
		RoutingKey: "test-routing-key-persist",
		QueueName:  "test-queue-persist",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	stats := &domain.PostStats{
		CityID:   "london",
		CityName: "London",
		Success:  true,
		Platforms: []domain.PlatformResult{
			{Platform: "twitter", PostID: "tw-2"},
		},
	}

	err = pub.Publish(s.ctx, stats, nil)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.NotNil(msg)

	s.Equal("application/json", msg.ContentType)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
