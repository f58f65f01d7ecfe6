package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/salary-backend/internal/config"
	"github.com/ignatzorin/salary-backend/internal/http/middleware"
	"github.com/ignatzorin/salary-backend/internal/interface/http/handler"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
)

// Limiters - квоты на административные маршруты.
// Квота на отправку заявок проверяется внутри use case.
type Limiters struct {
	PendingList ratelimit.Limiter
	Maintenance ratelimit.Limiter
}

func SetupRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	submissionHandler *handler.SubmissionHandler,
	catalogHandler *handler.CatalogHandler,
	analyticsHandler *handler.AnalyticsHandler,
	adminHandler *handler.AdminHandler,
	limiters Limiters,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Без настроенных прокси ClientIP - адрес соединения; X-Forwarded-For игнорируется.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.WithError(err).Warn("Invalid TRUSTED_PROXIES, forwarded headers are ignored")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	// Приём заявок
	r.POST("/submit-salary", submissionHandler.SubmitSalary)

	// Публичные списки
	r.GET("/all-salaries", catalogHandler.ListSalaries)
	r.GET("/all-companies", catalogHandler.ListCompanies)
	r.GET("/all-locations", catalogHandler.ListLocations)
	r.GET("/all-roles", catalogHandler.ListRoles)
	r.GET("/all-universities", catalogHandler.ListUniversities)
	r.GET("/internship-roles", catalogHandler.InternshipRoles)

	company := r.Group("/company")
	{
		company.GET("/all-salaries", catalogHandler.CompanySalaries)
		company.GET("/average-salary", catalogHandler.CompanyAverageSalary)
		company.GET("/top-university", catalogHandler.CompanyTopUniversity)
		company.GET("/top-location", catalogHandler.CompanyTopLocation)
	}

	analytics := r.Group("/analytics")
	{
		analytics.GET("/overview", analyticsHandler.Overview)
		analytics.GET("/salary-trends", analyticsHandler.SalaryTrends)
		analytics.GET("/top-companies", analyticsHandler.TopCompanies)
		analytics.GET("/top-universities", analyticsHandler.TopUniversities)
		analytics.GET("/top-locations", analyticsHandler.TopLocations)
		analytics.GET("/top-roles", analyticsHandler.TopRoles)
		analytics.GET("/salary-distribution", analyticsHandler.SalaryDistribution)
		analytics.GET("/company-comparison", analyticsHandler.CompanyComparison)
		analytics.GET("/yearly-growth", analyticsHandler.YearlyGrowth)
		analytics.GET("/salary-by-term", analyticsHandler.SalaryByTerm)
		analytics.GET("/market-insights", analyticsHandler.MarketInsights)
	}

	// Модерация
	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(middleware.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}))
	{
		admin.GET("/pending-submissions", middleware.RateLimitMiddleware(limiters.PendingList), adminHandler.ListPending)
		admin.POST("/approve/:id", adminHandler.Approve)
		admin.POST("/reject/:id", adminHandler.Reject)
		admin.POST("/maintenance/normalize-locations", middleware.RateLimitMiddleware(limiters.Maintenance), adminHandler.NormalizeLocations)
	}

	return r
}
