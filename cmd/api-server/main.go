package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cineforo/database"
	"cineforo/internal/cache"
	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/catalog/warmup"
	"cineforo/internal/config"
	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/repository"
	"cineforo/internal/microservices/http-api/router"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/microservices/websocket"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

const tokenSweepInterval = time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sentryEnabled := cfg.SentryDSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.GoEnv,
			AttachStacktrace: true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		// Flush buffered events before the program terminates.
		defer sentry.Flush(2 * time.Second)
	}

	// 1. Database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// 2. Cache, the catalog still works without it
	redisOpts, err := cache.ParseRedisURL(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("invalid redis config: %v", err)
	}
	movieCache, err := cache.NewRedisCache(redisOpts)
	if err != nil {
		logger.Warn("redis unavailable, catalog responses will not be cached", "redis_addr", redisOpts.Addr, "error", err)
	} else {
		defer movieCache.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Live topic feed
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// 4. Repositories and services
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	catalog := tmdb.NewClient(tmdb.Options{
		BaseURL:  cfg.TMDBAPIURL,
		ImageURL: cfg.TMDBImageURL,
		APIKey:   cfg.TMDBAPIKey,
		Language: cfg.TMDBLanguage,
		Logger:   logger,
	})

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, cfg)
	topicService := service.NewTopicService(topicRepo, hub)
	commentService := service.NewCommentService(commentRepo, topicRepo, userRepo, hub)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	movieService := service.NewMovieService(catalog, movieCache, cfg.CacheDuration())

	// 5. HTTP
	r := router.NewRouter(router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Reference: handler.NewReferenceHandler(),
		Topic:     handler.NewTopicHandler(topicService),
		Comment:   handler.NewCommentHandler(commentService),
		Movie:     handler.NewMovieHandler(movieService),
		Favorite:  handler.NewFavoriteHandler(favoriteService),
	}, router.Options{
		Validator:   authService,
		Hub:         hub,
		TopicExists: topicService.TopicExists,
		CORSOrigins: cfg.CORSOrigins,
		Sentry:      sentryEnabled,
	})

	go sweepRefreshTokens(ctx, refreshTokenRepo, logger)

	warmer := warmup.NewWarmer(movieService, warmup.Options{
		Pages:    cfg.CatalogWarmPages,
		Workers:  cfg.CatalogWarmWorkers,
		Interval: cfg.CacheDuration(),
		Logger:   logger,
	})
	if movieCache != nil && warmer.Enabled() {
		go warmer.Run(ctx)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	logger.Info("server_stopped_gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// sweepRefreshTokens drops expired and revoked refresh tokens once an hour
func sweepRefreshTokens(ctx context.Context, repo repository.RefreshTokenRepository, logger *slog.Logger) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				logger.Error("refresh_token_sweep_failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("refresh_tokens_swept", "removed", removed)
			}
		}
	}
}
