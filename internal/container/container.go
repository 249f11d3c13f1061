package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/config"
	"github.com/motorline/dealership-backend/internal/infrastructure/gcs"
	"github.com/motorline/dealership-backend/internal/infrastructure/postgres"
	"github.com/motorline/dealership-backend/internal/vision"
	"github.com/motorline/dealership-backend/pkg/helpers"
)

// Container holds the shared infrastructure clients, constructed once at
// startup and passed down explicitly. Modules receive what they need from
// here instead of reaching into package globals.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	PG      *pgxpool.Pool
	Redis   *redis.Client
	ES      *elasticsearch.Client
	Storage *gcs.Storage

	JWT       *helpers.JWTManager
	Publisher *helpers.RabbitPublisher
	Extractor vision.Extractor
}

// New builds every shared client. A failure in any required backend aborts
// startup; optional backends (RabbitMQ, Elasticsearch, Gemini) degrade to
// nil and are logged, so the API can come up without them in development.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Cfg: cfg, Logger: logger}

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	c.PG = pool

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	gcsClient, err := gcs.NewClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		return nil, fmt.Errorf("gcs: %w", err)
	}
	c.Storage = gcs.NewStorage(gcsClient, cfg.GCSBucket)

	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable, public search disabled")
	} else {
		c.ES = es
	}

	if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, email jobs disabled")
	} else {
		c.Publisher = pub
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, AI extraction disabled")
	} else if gem, err := vision.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		logger.WithError(err).Warn("gemini client init failed, AI extraction disabled")
	} else {
		c.Extractor = gem
	}

	return c, nil
}

// Close releases every client the container owns.
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
