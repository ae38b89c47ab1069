package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rxradar/backend/internal/adapters/cache"
	"github.com/rxradar/backend/internal/adapters/database"
	"github.com/rxradar/backend/internal/adapters/directory"
	"github.com/rxradar/backend/internal/api/handlers"
	"github.com/rxradar/backend/internal/api/routes"
	"github.com/rxradar/backend/internal/application/services"
	"github.com/rxradar/backend/internal/domain/providers"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/clients/gemini"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
	"github.com/rxradar/backend/internal/infrastructure/clients/redis"
	"github.com/rxradar/backend/internal/infrastructure/observability"
	"github.com/rxradar/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client; the application works without caching
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Load the drug directory
	drugDirectory, err := directory.NewJSONDirectory(cfg.Directory.KnownNamesPath, cfg.Directory.BrandMapPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load drug directory")
	}
	log.Info().
		Int("known_names", len(drugDirectory.KnownNames())).
		Msg("Drug directory loaded")

	// Initialize the alert composer
	geminiClient, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	medicationAdapter := database.NewMedicationAdapter(pgClient)
	interactionLogAdapter := database.NewInteractionLogAdapter(pgClient)

	var interactionAdapter repositories.InteractionRepository = database.NewInteractionAdapter(pgClient)
	if cacheProvider != nil {
		interactionAdapter = database.NewCachedInteractionAdapter(interactionAdapter, cacheProvider, metrics)
		log.Info().Msg("Interaction adapter wrapped with caching layer")
	}

	// Initialize services
	resolver := services.NewNameResolver(drugDirectory)
	analysisService := services.NewAnalysisService(interactionAdapter, interactionLogAdapter, geminiClient, metrics)
	authService := services.NewAuthService(userAdapter)
	medicationService := services.NewMedicationService(userAdapter, medicationAdapter)

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	interactionHandler := handlers.NewInteractionHandler(analysisService)
	resolutionHandler := handlers.NewResolutionHandler(resolver)
	authHandler := handlers.NewAuthHandler(authService, medicationService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)

	// Set up router
	router := routes.NewRouter(
		analysisHandler,
		interactionHandler,
		resolutionHandler,
		authHandler,
		medicationHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
