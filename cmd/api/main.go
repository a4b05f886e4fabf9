package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"greek-courier-tracker/internal/core/cache"
	"greek-courier-tracker/internal/core/config"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/core/server"
	trackingadapter "greek-courier-tracker/internal/features/tracking/adapters"
	trackinghandler "greek-courier-tracker/internal/features/tracking/handler"
	"greek-courier-tracker/internal/features/tracking/ports"
	trackingservice "greek-courier-tracker/internal/features/tracking/service"
	trackingstore "greek-courier-tracker/internal/features/tracking/store"

	"go.uber.org/zap"
)

// @title Greek Courier Tracker API
// @version 1.0
// @description Shipment status tracking across Greek courier networks.
// @contact.name API Support
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot store: Redis-backed when configured, in-memory otherwise.
	var snapshots ports.SnapshotStore = trackingstore.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			l.Fatal("Redis ping failed", zap.Error(err))
		}
		snapshots = trackingstore.NewRedisStore(redisCache)
		l.Info("Snapshot persistence enabled", zap.String("backend", "redis"))
	}

	providers := []ports.CourierProvider{
		trackingadapter.NewEltaAdapter(cfg.Couriers.EltaURL),
		trackingadapter.NewACSAdapter(cfg.Couriers.ACSURL),
		trackingadapter.NewSpeedexAdapter(cfg.Couriers.SpeedexURL),
		trackingadapter.NewBoxNowAdapter(cfg.Couriers.BoxNowURL),
		trackingadapter.NewCourierCenterAdapter(cfg.Couriers.CourierCenterURL),
		trackingadapter.NewGenikiAdapter(cfg.Couriers.GenikiURL),
	}

	coordinator := trackingservice.NewCoordinator(
		providers,
		snapshots,
		time.Duration(cfg.Tracking.FetchTimeoutSeconds)*time.Second,
		cfg.Tracking.FetchConcurrency,
	)

	items := make([]trackingservice.TrackedItem, 0)
	for _, entry := range cfg.Tracking.Entries() {
		items = append(items, trackingservice.TrackedItem{
			TrackingNumber: entry.TrackingNumber,
			DisplayName:    entry.Name,
		})
	}
	if err := coordinator.Configure(ctx, items); err != nil {
		l.Fatal("Failed to configure tracking numbers", zap.Error(err))
	}
	l.Info("Tracking numbers configured", zap.Int("count", len(items)))

	// The coordinator exposes single refresh cycles; the interval timer
	// lives here, caller-side.
	go runScheduler(ctx, coordinator, time.Duration(cfg.Tracking.ScanIntervalMinutes)*time.Minute)

	trackingHdl := trackinghandler.NewTrackingHandler(coordinator)

	srv := server.New(cfg)

	srv.App.Get("/tracking", trackingHdl.ListSnapshots)
	srv.App.Post("/tracking", trackingHdl.Register)
	srv.App.Get("/tracking/:number", trackingHdl.GetSnapshot)
	srv.App.Delete("/tracking/:number", trackingHdl.Deregister)
	srv.App.Post("/refresh", trackingHdl.Refresh)
	srv.App.Get("/detect/:number", trackingHdl.Detect)

	go func() {
		<-ctx.Done()
		l.Info("Shutting down")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// runScheduler runs one refresh cycle immediately and then on every tick
// until the context is cancelled.
func runScheduler(ctx context.Context, coordinator *trackingservice.Coordinator, interval time.Duration) {
	l := logger.Get()

	runCycle := func() {
		started := time.Now()
		results := coordinator.RefreshCycle(ctx)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		l.Info("Refresh cycle finished",
			zap.Int("items", len(results)),
			zap.Int("failed", failed),
			zap.Duration("duration", time.Since(started)),
		)
	}

	runCycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCycle()
		}
	}
}
