package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port           string
	Env            string
	ServiceName    string
	SessionBackend string
	RedisURL       string
	SessionTTL     time.Duration
	RequestTimeout time.Duration

	KafkaBrokers    []string
	KafkaOrderTopic string

	// SNS topics for order notifications and contact/booking requests
	OrderEventsTopicARN string
	ContactTopicARN     string

	CatalogImageBucket string
	CatalogImageURLTTL time.Duration

	AllowedOrigins     string
	RateLimitPerMinute int
	RateLimitBurst     int

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string

	UseSecrets bool
}

// SecretGetter reads a single field of a JSON secret.
type SecretGetter interface {
	GetSecretField(ctx context.Context, name, field string) (string, error)
}

// RedisSecretName holds the Redis connection URL under the "url" field.
const RedisSecretName = "storefront/REDIS"

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:                get("PORT", "8086"),
		Env:                 get("APP_ENV", "development"),
		ServiceName:         get("SERVICE_NAME", "storefront-service"),
		SessionBackend:      strings.ToLower(get("SESSION_BACKEND", SessionBackendMemory)),
		RedisURL:            get("REDIS_URL", "redis://localhost:6379/0"),
		KafkaBrokers:        splitList(getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:     get("KAFKA_ORDER_TOPIC", "order.placed"),
		OrderEventsTopicARN: getenv("ORDER_EVENTS_SNS_TOPIC_ARN"),
		ContactTopicARN:     getenv("CONTACT_SNS_TOPIC_ARN"),
		CatalogImageBucket:  getenv("CATALOG_IMAGE_BUCKET"),
		AllowedOrigins:      getenv("ALLOWED_ORIGINS"),
		CloudWatchEnabled:   getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: get("CLOUDWATCH_NAMESPACE", "Storefront"),
		CloudWatchLogGroup:  get("CLOUDWATCH_LOG_GROUP", "/storefront/services"),
		UseSecrets:          getenv("AWS_USE_SECRETS") == "true",
	}

	var err error
	if cfg.SessionTTL, err = parseDuration(get("SESSION_TTL", "168h"), "SESSION_TTL"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDuration(get("REQUEST_TIMEOUT", "10s"), "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.CatalogImageURLTTL, err = parseDuration(get("CATALOG_IMAGE_URL_TTL", "15m"), "CATALOG_IMAGE_URL_TTL"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = parsePositiveInt(get("RATE_LIMIT_PER_MINUTE", "120"), "RATE_LIMIT_PER_MINUTE"); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = parsePositiveInt(get("RATE_LIMIT_BURST", "20"), "RATE_LIMIT_BURST"); err != nil {
		return nil, err
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendMemory, SessionBackendRedis, cfg.SessionBackend)
	}
	return cfg, nil
}

// ApplySecrets overrides the Redis URL from Secrets Manager when
// AWS_USE_SECRETS is set. On error RedisURL keeps the environment value.
func (c *Config) ApplySecrets(ctx context.Context, secrets SecretGetter) error {
	if !c.UseSecrets || secrets == nil {
		return nil
	}
	url, err := secrets.GetSecretField(ctx, RedisSecretName, "url")
	if err != nil {
		return fmt.Errorf("load redis secret: %w", err)
	}
	c.RedisURL = url
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(raw, key string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func parsePositiveInt(raw, key string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}
