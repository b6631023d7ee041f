package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	rediscache "github.com/ahsanauddry027/safetails-sub000/internal/adapter/cache/redis"
	"github.com/ahsanauddry027/safetails-sub000/internal/adapter/email"
	mongoadapter "github.com/ahsanauddry027/safetails-sub000/internal/adapter/mongo"
	natsadapter "github.com/ahsanauddry027/safetails-sub000/internal/adapter/nats"
	"github.com/ahsanauddry027/safetails-sub000/internal/adapter/storage/s3"
	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/config"
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/logger"
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/metrics"
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/tracer"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/cache"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/middleware"
	"github.com/ahsanauddry027/safetails-sub000/internal/ratelimit"
	"github.com/ahsanauddry027/safetails-sub000/internal/usecase"
)

const metricsNamespace = "safetails"

type App struct {
	cfg            *config.Config
	log            *zap.Logger
	server         *http.Server
	metricsServer  *http.Server
	mongoClient    *mongo.Client
	redisClient    *goredis.Client
	natsPublisher  *natsadapter.Publisher
	tracerProvider *sdktrace.TracerProvider
}

// New wires every dependency. Mongo is mandatory; Redis, NATS, S3, SMTP and
// the OTLP exporter are used only when configured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	appLogger := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		TimeFormat: cfg.Log.TimeFormat,
	})
	appLogger.Info("Configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("database", cfg.Mongo.Database),
	)
	if cfg.Auth.UsesDefaultSecret() {
		appLogger.Warn("JWT_SECRET is not set, using the insecure development default")
	}

	a := &App{cfg: cfg, log: appLogger}

	tp, err := tracer.InitTracer(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	a.tracerProvider = tp

	appLogger.Info("Connecting to MongoDB...")
	mongoClient, err := mongoadapter.NewMongoDBConnection(ctx, &cfg.Mongo)
	if err != nil {
		a.closeResources(ctx)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	a.mongoClient = mongoClient
	appLogger.Info("MongoDB connected", zap.String("database", cfg.Mongo.Database))
	db := mongoClient.Database(cfg.Mongo.Database)

	users := mongoadapter.NewUserMongoRepository(db, appLogger)
	posts := mongoadapter.NewPetPostMongoRepository(db, appLogger)
	testimonials := mongoadapter.NewTestimonialMongoRepository(db, appLogger)
	alerts := mongoadapter.NewAlertMongoRepository(db, appLogger)
	adoptions := mongoadapter.NewAdoptionMongoRepository(db, appLogger)
	fosters := mongoadapter.NewFosterMongoRepository(db, appLogger)
	vets := mongoadapter.NewVetDirectoryMongoRepository(db, appLogger)
	reports := mongoadapter.NewReportMongoRepository(db, appLogger)

	var cacheRepo cache.CacheRepository
	var loginLimiter, commentLimiter middleware.Limiter
	if cfg.Redis.Address != "" {
		redisClient, err := rediscache.NewRedisClient(&cfg.Redis, appLogger)
		if err != nil {
			a.closeResources(ctx)
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.redisClient = redisClient
		cacheRepo = rediscache.NewRedisCacheRepository(redisClient, appLogger)

		if cfg.RateLimit.Login > 0 {
			login, err := ratelimit.NewFixedWindowLimiter(redisClient, "ratelimit:login", cfg.RateLimit.Login, cfg.RateLimit.Window, appLogger)
			if err != nil {
				a.closeResources(ctx)
				return nil, fmt.Errorf("failed to initialize login limiter: %w", err)
			}
			comment, err := ratelimit.NewFixedWindowLimiter(redisClient, "ratelimit:comment", cfg.RateLimit.Login, cfg.RateLimit.Window, appLogger)
			if err != nil {
				a.closeResources(ctx)
				return nil, fmt.Errorf("failed to initialize comment limiter: %w", err)
			}
			loginLimiter, commentLimiter = login, comment
		}
	} else {
		appLogger.Info("Redis address not configured, caching and rate limiting are disabled")
	}

	var publisher usecase.EventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := natsadapter.NewNATSPublisher(&cfg.NATS, appLogger)
		if err != nil {
			a.closeResources(ctx)
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		a.natsPublisher = natsPublisher
		publisher = natsPublisher
	} else {
		appLogger.Info("NATS URL not configured, domain events are disabled")
	}

	var storage usecase.ImageStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := s3.NewS3Storage(ctx, &cfg.S3, appLogger)
		if err != nil {
			a.closeResources(ctx)
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		storage = s3Storage
	} else {
		appLogger.Info("S3 endpoint not configured, image uploads are disabled")
	}

	var mailer usecase.Mailer
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPMailer(&cfg.SMTP, appLogger)
	} else {
		appLogger.Info("SMTP host not configured, mail links are logged instead")
		mailer = email.NewLogMailer(appLogger)
	}

	metricsManager := metrics.NewMetricsManager(metricsNamespace)
	a.metricsServer = metrics.StartMetricsServer(cfg.Metrics.Port, appLogger, metricsManager)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	cookies := auth.CookieIssuer{Secure: cfg.App.IsProduction(), MaxAge: cfg.Auth.TokenTTL}
	validator := rest.NewValidator()

	authUC := usecase.NewAuthUseCase(users, tokens, mailer, metricsManager, cfg.App.BaseURL, appLogger)
	userUC := usecase.NewUserUseCase(users, posts, testimonials, reports, publisher, cacheRepo, appLogger)
	postUC := usecase.NewPetPostUseCase(posts, publisher, metricsManager, appLogger)
	alertUC := usecase.NewAlertUseCase(alerts, publisher, metricsManager, appLogger)
	adoptionUC := usecase.NewAdoptionUseCase(adoptions, appLogger)
	fosterUC := usecase.NewFosterUseCase(fosters, appLogger)
	vetUC := usecase.NewVetDirectoryUseCase(vets, cacheRepo, cfg.Redis.CacheTTL, appLogger)
	reportUC := usecase.NewReportUseCase(reports, publisher, appLogger)
	testimonialUC := usecase.NewTestimonialUseCase(testimonials, cacheRepo, cfg.Redis.CacheTTL, appLogger)
	mediaUC := usecase.NewMediaUseCase(storage, appLogger)

	if cfg.Bootstrap.AdminEmail != "" {
		if err := authUC.SeedAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName); err != nil {
			appLogger.Error("Failed to seed administrator", zap.Error(err))
		}
	}

	router := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authUC, cookies, validator, appLogger),
		Users:      rest.NewUserHandler(userUC, validator, appLogger),
		Posts:      rest.NewPostHandler(postUC, validator, appLogger),
		Alerts:     rest.NewAlertHandler(alertUC, validator, appLogger),
		Listings:   rest.NewListingHandler(adoptionUC, fosterUC, validator, appLogger),
		Vets:       rest.NewVetHandler(vetUC, validator, appLogger),
		Moderation: rest.NewModerationHandler(reportUC, testimonialUC, validator, appLogger),
		Media:      rest.NewMediaHandler(mediaUC, appLogger),
	}, rest.RouterOptions{
		Authenticator:  authUC,
		Cookies:        cookies,
		Metrics:        metricsManager,
		LoginLimiter:   loginLimiter,
		CommentLimiter: commentLimiter,
		TracerName:     cfg.Tracing.ServiceName,
		Health:         a.health,
		Logger:         appLogger,
	})

	a.server = &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return a, nil
}

func (a *App) health(ctx context.Context) error {
	return a.mongoClient.Ping(ctx, readpref.Primary())
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		a.log.Info("Received shutdown signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		a.log.Error("HTTP server failed", zap.Error(err))
		runErr = err
	}

	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during HTTP server shutdown", zap.Error(err))
	} else {
		a.log.Info("HTTP server stopped")
	}
	a.closeResources(shutdownCtx)
	a.log.Info("Application shut down")
	_ = a.log.Sync()
	return runErr
}

func (a *App) closeResources(ctx context.Context) {
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.log.Error("Error stopping metrics server", zap.Error(err))
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Error("Error disconnecting from MongoDB", zap.Error(err))
		} else {
			a.log.Info("MongoDB connection closed")
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis client", zap.Error(err))
		} else {
			a.log.Info("Redis client closed")
		}
	}
	if a.natsPublisher != nil {
		a.natsPublisher.Close()
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}
}
