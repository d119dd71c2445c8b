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

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/travelplanner/internal/adapters/cache"
	"github.com/zatekoja/travelplanner/internal/adapters/database"
	"github.com/zatekoja/travelplanner/internal/adapters/events"
	"github.com/zatekoja/travelplanner/internal/api/handlers"
	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/api/routes"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/openai"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/redis"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	"github.com/zatekoja/travelplanner/pkg/config"
)

const cacheKeyPrefix = "travelplanner:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
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
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis backs the cache and the event bus; without it the cache stays in process
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory cache without catalog events")
		cacheProvider = cache.NewMemoryAdapter(time.Duration(cfg.Cache.RegionTTLSeconds)*time.Second, time.Minute)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient, cacheKeyPrefix)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
	}

	// Adapters
	regionRepo := database.NewCachedRegionAdapter(database.NewRegionAdapter(pgClient), cacheProvider, metrics, cfg.Cache.RegionTTLSeconds)
	hotelRepo := database.NewHotelAdapter(pgClient)
	restaurantRepo := database.NewRestaurantAdapter(pgClient)
	cuisineRepo := database.NewCuisineAdapter(pgClient)
	placeRepo := database.NewPlaceAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	tripRepo := database.NewTripAdapter(pgClient)

	var generator providers.ItineraryGenerator
	if cfg.OpenAI.APIKey != "" {
		client, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize OpenAI client")
		}
		generator = client
		log.Info().Str("model", cfg.OpenAI.Model).Msg("Itinerary generator initialized")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, itinerary generation will return the fallback plan")
	}

	// Services
	promptContexts := services.NewPromptContextService(regionRepo, hotelRepo, restaurantRepo)
	itineraryService := services.NewItineraryService(promptContexts, generator, metrics)
	tripService := services.NewTripService(tripRepo, hotelRepo, restaurantRepo)
	bookingService := services.NewBookingService(bookingRepo, hotelRepo, cfg.Booking.DeleteWindow)
	regionService := services.NewRegionService(regionRepo, eventBus)
	hotelService := services.NewHotelService(hotelRepo, eventBus)
	restaurantService := services.NewRestaurantService(restaurantRepo, cuisineRepo, eventBus)
	placeService := services.NewPlaceService(placeRepo, eventBus)
	destinationService := services.NewDestinationService(regionRepo, hotelRepo, restaurantRepo, placeRepo)
	userService := services.NewUserService(userRepo)

	var cacheInvalidation *services.CacheInvalidationService
	if eventBus != nil {
		cacheInvalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
		}
	}

	warmCtx, warmCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := services.NewCacheWarmingService(regionRepo, cacheProvider).WarmCache(warmCtx); err != nil {
		log.Warn().Err(err).Msg("Cache warming failed")
	}
	warmCancel()

	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, authenticated routes will reject every request")
	}

	router := routes.NewRouter(routes.Handlers{
		Health:     handlers.NewHealthHandler(pgClient),
		Itinerary:  handlers.NewItineraryHandler(itineraryService),
		Trip:       handlers.NewTripHandler(tripService),
		Booking:    handlers.NewBookingHandler(bookingService),
		Region:     handlers.NewRegionHandler(regionService, destinationService),
		Hotel:      handlers.NewHotelHandler(hotelService),
		Restaurant: handlers.NewRestaurantHandler(restaurantService),
		Place:      handlers.NewPlaceHandler(placeService),
		User:       handlers.NewUserHandler(userService),
	}, middleware.NewAuthenticator(cfg.Auth.JWTSecret), metrics, cfg.Server.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		// Itinerary generation waits on the model
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if cacheInvalidation != nil {
		cacheInvalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
