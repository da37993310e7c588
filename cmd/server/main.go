package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cementrack/tracking-api/internal/api"
	"github.com/cementrack/tracking-api/internal/core/service"
	mongodb "github.com/cementrack/tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cementrack/tracking-api/internal/infrastructure/db/redis"
	"github.com/cementrack/tracking-api/internal/infrastructure/geocoding"
	"github.com/cementrack/tracking-api/internal/pkg/config"
	"github.com/cementrack/tracking-api/internal/pkg/geo"
	"github.com/cementrack/tracking-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not up yet
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting cement tracking api")

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	deliveryRepo := mongodb.NewDeliveryRepository(db)
	trackingRepo := mongodb.NewTrackingRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	operatorRepo := mongodb.NewOperatorRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"deliveries":       deliveryRepo.EnsureIndexes,
		"tracking_updates": trackingRepo.EnsureIndexes,
		"operators":        operatorRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Geocoding: Mapbox behind a Redis cache ---
	mapbox := geocoding.NewMapboxGeocoder(geocoding.Config{
		Token:    cfg.Mapbox.Token,
		BaseURL:  cfg.Mapbox.BaseURL,
		Country:  cfg.Mapbox.Country,
		Language: cfg.Mapbox.Language,
	}, log)
	geocoder := redisdb.NewCachedGeocoder(mapbox, rdb, log)

	// --- Services ---
	estimator := geo.NewEstimator(cfg.Tracking.AvgSpeedKmh)
	deliveryService := service.NewDeliveryService(
		deliveryRepo, trackingRepo, customerRepo, geocoder, estimator, cfg.AppBaseURL, log)
	trackingService := service.NewTrackingService(
		deliveryRepo, trackingRepo, customerRepo, geocoder, log)
	customerService := service.NewCustomerService(customerRepo, log)
	authService := service.NewAuthService(operatorRepo, cfg.JWTSecret, 24*time.Hour)

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
		Deliveries: deliveryService,
		Tracking:   trackingService,
		Customers:  customerService,
		Auth:       authService,
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}
