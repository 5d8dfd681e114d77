package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/booking"
	"storefront-service/catalog"
	"storefront-service/checkout"
	"storefront-service/common/logger"
	"storefront-service/common/middleware"
	"storefront-service/config"
	"storefront-service/contact"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/kafka"
	"storefront-service/order"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// --- AWS setup ---
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	// --- Logger (CloudWatch Logs shipping is non-fatal) ---
	var logSink io.Writer
	if cfg.CloudWatchEnabled {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, cfg.ServiceName)
		if err != nil {
			log.Printf("CloudWatch Logs init failed (non-fatal): %v", err)
		} else {
			logSink = cwLogs
		}
	}
	zl, err := logger.InitializeWithWriter(cfg.Env, logSink)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if cfg.UseSecrets {
		if err := cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg)); err != nil {
			zl.Warn("Secrets override failed, using environment", zap.Error(err))
		}
	}

	metricsClient := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)

	stop := make(chan struct{})

	// --- Session store ---
	var (
		repo        database.SessionRepository
		redisClient *redis.Client
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("Redis connection failed", zap.Error(err))
		}
		repo = database.NewRedisSessionRepository(redisClient, cfg.SessionTTL)
		zl.Info("Using Redis session store")
	default:
		memRepo := database.NewMemorySessionRepository(cfg.SessionTTL)
		go sweepSessions(memRepo, stop, zl)
		repo = memRepo
		zl.Info("Using in-memory session store")
	}

	// --- Order events ---
	snsClient := awspkg.NewSNSClient(awsCfg)
	var publishers order.Publishers
	var producer *kafka.OrderProducer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewOrderProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic, zl)
		publishers = append(publishers, producer)
	}
	if cfg.OrderEventsTopicARN != "" {
		publishers = append(publishers, services.NewSNSOrderPublisher(snsClient, cfg.OrderEventsTopicARN))
	}
	var publisher order.Publisher
	if len(publishers) > 0 {
		publisher = publishers
	}
	finalizer := order.NewFinalizer(order.NewIDGenerator(), publisher, zl)

	// --- Catalog ---
	cat, err := catalog.Default()
	if err != nil {
		zl.Fatal("Catalog load failed", zap.Error(err))
	}
	var images awspkg.ImageSigner
	if cfg.CatalogImageBucket != "" {
		images = awspkg.NewS3ImageSigner(awsCfg, cfg.CatalogImageBucket, cfg.CatalogImageURLTTL)
	}

	// --- Dependency injection ---
	storefront := services.NewStorefrontService(repo, cat, checkout.NewValidator(time.Now), finalizer, metricsClient, zl)
	catalogService := services.NewCatalogService(cat, images, zl)
	contactService := services.NewContactService(contact.NewValidator(cat.HasPlan), snsClient, cfg.ContactTopicARN, metricsClient, zl)
	bookingService := services.NewBookingService(booking.NewValidator(time.Now), snsClient, cfg.ContactTopicARN, metricsClient, zl)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, 10*time.Minute)
	go limiter.Run(stop)

	r := routes.NewRouter(routes.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: middleware.ParseOrigins(cfg.AllowedOrigins),
		RateLimiter:    limiter,
		Metrics:        metricsClient,
		RequestTimeout: cfg.RequestTimeout,
		SessionTTL:     cfg.SessionTTL,
		SecureCookies:  cfg.IsProduction(),
		Logger:         zl,
	}, routes.Controllers{
		Catalog:  controllers.NewCatalogController(catalogService),
		Cart:     controllers.NewCartController(storefront),
		Checkout: controllers.NewCheckoutController(storefront),
		Contact:  controllers.NewContactController(contactService, bookingService),
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zl.Info("Storefront Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Initiating graceful shutdown...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server shutdown error", zap.Error(err))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			zl.Error("Kafka producer close error", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zl.Error("Redis close error", zap.Error(err))
		}
	}

	zl.Info("Storefront Service stopped gracefully")
}

// sweepSessions evicts expired in-memory sessions until stop is closed.
func sweepSessions(repo *database.MemorySessionRepository, stop <-chan struct{}, zl *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := repo.Sweep(); n > 0 {
				zl.Debug("Expired sessions removed", zap.Int("count", n))
			}
		case <-stop:
			return
		}
	}
}
