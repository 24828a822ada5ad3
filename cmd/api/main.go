package main

import (
	"log"

	"trackmate/internal/core/cache"
	"trackmate/internal/core/config"
	"trackmate/internal/core/httpclient"
	"trackmate/internal/core/logger"
	"trackmate/internal/core/server"
	carriershandler "trackmate/internal/features/carriers/handler"
	carriersservice "trackmate/internal/features/carriers/service"
	diagnosishandler "trackmate/internal/features/diagnosis/handler"
	diagnosisservice "trackmate/internal/features/diagnosis/service"
	inquiryhandler "trackmate/internal/features/inquiry/handler"
	inquiryservice "trackmate/internal/features/inquiry/service"
	parsinghandler "trackmate/internal/features/parsing/handler"
	parsingservice "trackmate/internal/features/parsing/service"
	predictionhandler "trackmate/internal/features/prediction/handler"
	predictionservice "trackmate/internal/features/prediction/service"
	trackingadapter "trackmate/internal/features/tracking/adapters"
	trackinghandler "trackmate/internal/features/tracking/handler"
	"trackmate/internal/features/tracking/ports"
	trackingservice "trackmate/internal/features/tracking/service"

	"go.uber.org/zap"
)

// @title TrackMate API
// @version 1.0
// @description Korean parcel tracking API: free-text extraction, multi-carrier lookup, arrival prediction, and delivery diagnosis.
// @contact.name API Support
// @contact.email support@trackmate.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Select the cache backend: Redis when configured, in-process otherwise.
	var cacheStore cache.Cache
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Redis connection failed", zap.Error(err))
		}
		cacheStore = redisCache
		l.Info("Redis cache connected")
	} else {
		cacheStore = cache.NewMemoryAdapter()
		l.Info("Using in-process cache")
	}
	defer cacheStore.Close()

	// Select the tracking source: mock without an API key.
	var fetcher ports.Fetcher
	if cfg.MockMode() {
		fetcher = trackingadapter.NewMockAdapter()
		l.Warn("No Sweet Tracker API key configured, serving mock data")
	} else {
		client := httpclient.NewClient(cfg.RequestTimeout(), cfg.Outbound.RequestsPerSecond)
		fetcher = trackingadapter.NewSweetTrackerAdapter(
			cfg.SweetTracker.APIKey,
			cfg.SweetTracker.BaseURL,
			client,
			cacheStore,
			cfg.CompanyListTTL(),
		)
	}

	// Services
	trackingSvc := trackingservice.NewTrackingService(fetcher)
	parserSvc := parsingservice.NewParserService()
	diagnosisSvc := diagnosisservice.NewDiagnosisService()
	predictionSvc := predictionservice.NewPredictionService()
	inquirySvc := inquiryservice.NewInquiryService()
	carriersSvc := carriersservice.NewCarriersService(fetcher)

	// Handlers
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc)
	parseHdl := parsinghandler.NewParseHandler(parserSvc)
	diagnosisHdl := diagnosishandler.NewDiagnosisHandler(trackingSvc, diagnosisSvc)
	predictionHdl := predictionhandler.NewPredictionHandler(trackingSvc, predictionSvc)
	inquiryHdl := inquiryhandler.NewInquiryHandler(trackingSvc, inquirySvc)
	carriersHdl := carriershandler.NewCarriersHandler(carriersSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/parse", parseHdl.Parse)
	srv.App.Post("/tracking/bulk", trackingHdl.TrackBulk)
	srv.App.Get("/tracking/:number/diagnosis", diagnosisHdl.Diagnose)
	srv.App.Get("/tracking/:number/arrival", predictionHdl.Predict)
	srv.App.Get("/tracking/:number/inquiry", inquiryHdl.Draft)
	srv.App.Get("/tracking/:number", trackingHdl.Track)
	srv.App.Get("/carriers/upstream", carriersHdl.ListUpstream)
	srv.App.Get("/carriers", carriersHdl.List)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
