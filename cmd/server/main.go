// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trial-balance/internal/config"
	"trial-balance/internal/handler"
	"trial-balance/internal/metrics"
	"trial-balance/internal/models"
	"trial-balance/internal/repository"
	"trial-balance/internal/service"
	"trial-balance/pkg/database"
	"trial-balance/pkg/logger"
	"trial-balance/pkg/middleware"
	"trial-balance/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("trial-balance", cfg.Environment)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize data source
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open data source", zap.Error(err), zap.String("kind", cfg.Source.Kind))
	}
	defer closeSource()

	dataset, err := service.LoadDataset(ctx, src, log)
	if err != nil {
		log.Fatal("failed to load dataset", zap.Error(err))
	}

	// Initialize report store
	var store *service.ReportStore
	if cfg.Report.CacheEnabled {
		var redisClient *redis.Client
		if cfg.Redis.Addr != "" {
			redisClient = redis.NewRedisClient(cfg.Redis.Addr)
			if err := redisClient.Ping(ctx); err != nil {
				log.Fatal("failed to connect to redis", zap.Error(err))
			}
			defer redisClient.Close()
		}
		store = service.NewReportStore(redisClient, cfg.Redis.TTL, log)
		defer store.Close()
	}

	// Initialize services
	reportMetrics := metrics.NewReportMetrics(prometheus.DefaultRegisterer)
	reportService := service.NewReportService(dataset, store, reportMetrics, log)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService, log)

	// Setup router
	router := setupRouter(reportHandler, reportService, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting trial balance service",
			zap.String("port", cfg.Server.Port),
			zap.String("source", dataset.Source))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// openSource returns the configured dataset source and a func releasing it
func openSource(ctx context.Context, cfg config.Config) (service.DatasetSource, func(), error) {
	switch cfg.Source.Kind {
	case "file":
		return repository.NewFileRepository(cfg.Source.JournalPath, cfg.Source.AccountsPath), func() {}, nil
	case "postgres":
		db, err := database.NewPostgresDB(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewLedgerRepository(db.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		return repo, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", models.ErrUnknownSource, cfg.Source.Kind)
	}
}

func setupRouter(reportHandler *handler.ReportHandler, reportService *service.ReportService, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		ds := reportService.Dataset()
		if ds == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "ready",
			"source":        ds.Source,
			"journal_lines": len(ds.Journal),
			"accounts":      len(ds.Accounts),
			"loaded_at":     ds.LoadedAt,
			"report_store":  reportService.StoreStats(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	reportHandler.RegisterRoutes(v1)

	return router
}
