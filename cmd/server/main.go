package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/salary-backend/internal/config"
	"github.com/ignatzorin/salary-backend/internal/db"
	httpRouter "github.com/ignatzorin/salary-backend/internal/http/router"
	"github.com/ignatzorin/salary-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/salary-backend/internal/interface/http/handler"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
	"github.com/ignatzorin/salary-backend/internal/scheduler"
	"github.com/ignatzorin/salary-backend/internal/service"
	"github.com/ignatzorin/salary-backend/internal/usecase/analytics"
	"github.com/ignatzorin/salary-backend/internal/usecase/catalog"
	"github.com/ignatzorin/salary-backend/internal/usecase/moderation"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Redis опционален: без него счётчики квот живут в памяти процесса.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("main: ошибка подключения к redis: %v", err)
		}
		defer safeCloseRedis(redisClient)
	}

	submitLimiter, err := ratelimit.New(cfg.SubmitRate, "submit", redisClient)
	if err != nil {
		log.Fatalf("main: SUBMIT_RATE: %v", err)
	}
	pendingLimiter, err := ratelimit.New(cfg.PendingListRate, "pending", redisClient)
	if err != nil {
		log.Fatalf("main: PENDING_LIST_RATE: %v", err)
	}
	maintenanceLimiter, err := ratelimit.New(cfg.MaintenanceRate, "maintenance", redisClient)
	if err != nil {
		log.Fatalf("main: MAINTENANCE_RATE: %v", err)
	}

	cache := service.NewCacheService(cfg.AnalyticsCacheTTL)
	if cache.Enabled() {
		cache.StartCleanup(ctx, cfg.AnalyticsCacheTTL)
	}

	// Репозитории.
	submissionRepo := persistence.NewSubmissionRepositoryAdapter(dbConn)
	reportRepo := persistence.NewReportRepositoryAdapter(dbConn)
	universityRepo := persistence.NewUniversityRepositoryAdapter(dbConn)

	// Use cases.
	submitUC := moderation.NewSubmitSalaryUseCase(submissionRepo, submitLimiter, time.Now)
	listPendingUC := moderation.NewListPendingUseCase(submissionRepo)
	approveUC := moderation.NewApproveSubmissionUseCase(submissionRepo, cache, time.Now)
	rejectUC := moderation.NewRejectSubmissionUseCase(submissionRepo, time.Now)
	normalizeUC := moderation.NewNormalizeLocationsUseCase(reportRepo, cache)
	reportAnalytics := analytics.NewReportAnalytics(reportRepo, cache, time.Now)
	catalogUC := catalog.NewCatalog(reportRepo, universityRepo)

	// HTTP хэндлеры.
	healthHandler := handler.NewHealthHandler(dbConn, redisClient)
	submissionHandler := handler.NewSubmissionHandler(submitUC)
	catalogHandler := handler.NewCatalogHandler(catalogUC)
	analyticsHandler := handler.NewAnalyticsHandler(reportAnalytics)
	adminHandler := handler.NewAdminHandler(listPendingUC, approveUC, rejectUC, normalizeUC)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, submissionHandler, catalogHandler, analyticsHandler, adminHandler,
		httpRouter.Limiters{PendingList: pendingLimiter, Maintenance: maintenanceLimiter})

	// Плановое обслуживание.
	if cfg.MaintenanceSchedule != "" {
		sched, err := scheduler.New(cfg.MaintenanceSchedule, normalizeUC, listPendingUC)
		if err != nil {
			log.Fatalf("main: MAINTENANCE_SCHEDULE: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

func safeCloseRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Printf("main: ошибка закрытия redis: %v", err)
	}
}
