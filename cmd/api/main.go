package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/cache"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/events"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/handlers"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/middleware"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/routes"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/views"
	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/bootstrap"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	"github.com/zatekoja/hpv-prevention/backend/pkg/config"
	"github.com/zatekoja/hpv-prevention/backend/pkg/secrets"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	vaultCtx, vaultCancel := context.WithTimeout(context.Background(), 10*time.Second)
	vaultResult, vaultErr := secrets.ApplyVaultSecrets(vaultCtx, secrets.LoadVaultConfigFromEnv(), nil)
	vaultCancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	if vaultErr != nil {
		log.Warn().Err(vaultErr).Str("path", vaultResult.Path).Msg("failed to load secrets from Vault")
	} else if vaultResult.Enabled {
		log.Info().Str("path", vaultResult.Path).Int("loaded", vaultResult.Loaded).Int("skipped", vaultResult.Skipped).Msg("loaded secrets from Vault")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis is optional; without it every lookup goes upstream and no
	// search events are published.
	var (
		cacheProvider providers.CacheProvider
		tracker       services.SearchTracker
	)
	if cfg.Cache.Enabled || cfg.Events.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache or search events")
		} else {
			defer redisClient.Close()
			if cfg.Cache.Enabled {
				cacheProvider = cache.NewRedisAdapter(redisClient.Client())
			}
			if cfg.Events.Enabled {
				eventBus := events.NewRedisEventBus(redisClient.Client())
				defer eventBus.Close()
				tracker = services.NewSearchAnalyticsService(eventBus, cfg.Events.Channel)
			}
		}
	}

	finderService, err := bootstrap.FinderService(cfg, bootstrap.Dependencies{
		Cache:   cacheProvider,
		Metrics: metrics,
		Tracker: tracker,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize finder")
	}

	if cacheProvider != nil && len(cfg.Cache.WarmLocations) > 0 {
		warmer := services.NewCacheWarmingService(finderService, cfg.Cache.WarmLocations)
		go warmer.WarmCache(ctx)
	}

	contentService, err := services.NewContentService()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content")
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(
			cacheProvider,
			routes.DefaultCacheRoutes(cfg.Cache.ContentTTLSeconds, cfg.Cache.GeocodeTTLSeconds),
			metrics,
		)
	}

	router := routes.NewRouter(
		handlers.NewFacilityHandler(finderService),
		handlers.NewGeolocationHandler(finderService),
		handlers.NewFinderPageHandler(finderService, renderer),
		handlers.NewContentHandler(contentService, services.NewRiskAssessmentService()),
		routes.Options{
			CacheMiddleware: cacheMiddleware,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			Metrics:         metrics,
		},
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	// Write timeout covers a geocode plus a full Overpass query.
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Geocoder.Timeout + cfg.Overpass.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
