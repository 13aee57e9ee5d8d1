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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/flowpilot-api/internal/application/service"
	"github.com/sangkips/flowpilot-api/internal/config"
	"github.com/sangkips/flowpilot-api/internal/domain/analytics"
	domainRepo "github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/internal/infrastructure/cache"
	"github.com/sangkips/flowpilot-api/internal/infrastructure/database"
	"github.com/sangkips/flowpilot-api/internal/infrastructure/repository"
	"github.com/sangkips/flowpilot-api/internal/infrastructure/repository/mongorepo"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/handler"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/middleware"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/routes"
	"github.com/sangkips/flowpilot-api/pkg/logger"
	"github.com/sangkips/flowpilot-api/pkg/metrics"
	"github.com/sangkips/flowpilot-api/pkg/utils"
	"go.uber.org/zap"
)

// stores bundles the repositories of the selected backend
type stores struct {
	orders    domainRepo.OrderRepository
	inventory domainRepo.InventoryRepository
	health    routes.HealthCheck
	close     func(ctx context.Context) error
}

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.Init(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the order and inventory store
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Warn("Failed to close store", zap.Error(err))
		}
	}()

	checks := map[string]routes.HealthCheck{"store": st.health}

	// Report cache
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		redisStore := cache.NewRedisStore(client)
		if err := redisStore.Health(ctx); err != nil {
			log.Warn("Redis unreachable, reports will be recomputed until it recovers", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		checks["cache"] = redisStore.Health
		store = redisStore
	}
	reportCache := cache.New(store, cfg.Cache.TTL, log.Named("cache"))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry, "flowpilot")

	// Initialize services
	analyticsService := service.NewAnalyticsService(st.orders, st.inventory, reportCache, m, service.AnalyticsSettings{
		DefaultPrice: cfg.Analytics.DefaultPrice,
		Workers:      cfg.Analytics.Workers,
		WindowDays:   cfg.Analytics.WindowDays,
		ForecastDays: cfg.Analytics.ForecastHistoryDays,
		Rates: analytics.FinancialRates{
			StorageRate:      cfg.Analytics.StorageRate,
			OpportunityRate:  cfg.Analytics.OpportunityRate,
			DepreciationRate: cfg.Analytics.DepreciationRate,
		},
	})
	inventoryService := service.NewInventoryService(st.inventory, m)
	orderService := service.NewOrderService(st.orders)

	// Initialize handlers
	handlers := &routes.Handlers{
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Order:     handler.NewOrderHandler(orderService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours),
		Cfg:         cfg,
		Log:         log,
		Metrics:     m,
		Gatherer:    registry,
		RateLimiter: rateLimiter,
		Checks:      checks,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("redis_cache", cfg.Redis.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		// Run auto-migrations
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		if cfg.Database.Seed {
			if err := database.SeedDemoData(db, time.Now(), log); err != nil {
				log.Warn("Failed to seed demo data", zap.Error(err))
			}
		}

		return &stores{
			orders:    repository.NewOrderRepository(db),
			inventory: repository.NewInventoryRepository(db),
			health: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: func(context.Context) error { return database.ClosePostgres(db) },
		}, nil

	case config.DriverMongo:
		client, db, err := database.NewMongoDB(ctx, &cfg.Mongo, log)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		return &stores{
			orders:    mongorepo.NewOrderRepository(db),
			inventory: mongorepo.NewInventoryRepository(db),
			health:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:     func(ctx context.Context) error { return database.CloseMongo(ctx, client, log) },
		}, nil
	}

	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
}
