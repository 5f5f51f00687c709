package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mesa-admin/resto-bo-api/api/swagger"
	"github.com/mesa-admin/resto-bo-api/internal/handler"
	"github.com/mesa-admin/resto-bo-api/internal/repository"
	"github.com/mesa-admin/resto-bo-api/internal/router"
	"github.com/mesa-admin/resto-bo-api/internal/service"
	"github.com/mesa-admin/resto-bo-api/pkg/cache"
	"github.com/mesa-admin/resto-bo-api/pkg/config"
	"github.com/mesa-admin/resto-bo-api/pkg/database"
	"github.com/mesa-admin/resto-bo-api/pkg/export"
	"github.com/mesa-admin/resto-bo-api/pkg/jobs"
	"github.com/mesa-admin/resto-bo-api/pkg/logger"
	"github.com/mesa-admin/resto-bo-api/pkg/memcache"
	"github.com/mesa-admin/resto-bo-api/pkg/storage"
)

// @title Mesa Back-Office API
// @version 1.0.0
// @description Restaurant back-office: staff scheduling, menu, sales, and async reports
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Shared infrastructure.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Menu.CacheTTL, logr, true)
	localMenuCache := memcache.New(cfg.Menu.LocalCacheTTL, time.Minute)
	defer localMenuCache.Close()

	// Services.
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "resto-bo-api",
		Audience:           []string{"resto-bo"},
	})
	userSvc := service.NewUserService(userRepo, nil, logr)
	restaurantSvc := service.NewRestaurantService(restaurantRepo, nil, logr)
	menuSvc := service.NewMenuService(menuRepo, cacheSvc, localMenuCache, nil, logr, service.MenuServiceConfig{
		CacheTTL:      cfg.Menu.CacheTTL,
		LocalCacheTTL: cfg.Menu.LocalCacheTTL,
	})
	scheduleSvc := service.NewScheduleService(shiftRepo, restaurantRepo, nil, logr)
	shiftSvc := service.NewShiftService(shiftRepo, restaurantRepo, cacheSvc, nil, logr, service.ShiftServiceConfig{
		EnforceBusinessHours: cfg.Schedule.EnforceBusinessHours,
	})
	salesSvc := service.NewSalesService(saleRepo, menuRepo, userRepo, cacheSvc, nil, logr)
	dashboardSvc := service.NewDashboardService(saleRepo, shiftRepo, scheduleSvc, cacheSvc, logr, service.DashboardServiceConfig{
		Enabled:  cfg.Dashboard.Enabled,
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	// Report pipeline: local export storage, signed URLs, in-process queue.
	store, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init report storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exportSvc := service.NewExportService(saleRepo, menuRepo, store, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Reports.SignedURLTTL,
	}, logr, export.NewCSVExporter(), export.NewPDFExporter())

	reportWorker := service.NewReportWorker(reportRepo, exportSvc, cfg.Reports.WorkerRetries, logr)
	reportQueue := jobs.NewQueue("reports", reportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Reports.WorkerConcurrency,
		MaxRetries: cfg.Reports.WorkerRetries,
		Logger:     logr,
	})
	reportSvc := service.NewReportService(reportRepo, reportQueue, exportSvc, nil, logr, service.ReportServiceConfig{
		ResultTTL: cfg.Reports.SignedURLTTL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reports.Enabled {
		reportQueue.Start(ctx)
		reportSvc.RecoverPendingJobs(ctx)
		reportSvc.StartCleanup(ctx)
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Users:      handler.NewUserHandler(userSvc),
		Restaurant: handler.NewRestaurantHandler(restaurantSvc),
		Menu:       handler.NewMenuHandler(menuSvc),
		Shifts:     handler.NewShiftHandler(shiftSvc),
		Schedule:   handler.NewScheduleHandler(scheduleSvc),
		Sales:      handler.NewSalesHandler(salesSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Reports:    handler.NewReportHandler(reportSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}

	engine := router.New(cfg, logr, authSvc, metricsSvc, userRepo, handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Sugar().Infow("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	if cfg.Reports.Enabled {
		reportQueue.Stop()
	}
}
