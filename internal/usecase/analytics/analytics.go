// Package analytics собирает агрегаты по одобренным отчётам для публичных эндпоинтов /analytics.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	stats "github.com/ignatzorin/salary-backend/internal/analytics"
	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// Пороги групп и лимиты по умолчанию.
const (
	TopPayingCompanyMinReports = 3
	TopCompaniesMinReports     = 2
	TopUniversitiesMinReports  = 3
	TopLocationsMinReports     = 2
	TopRolesMinReports         = 2

	DefaultTopCompaniesLimit = 15
	DefaultTopLimit          = 10
	MaxTopLimit              = 100
)

// NotAvailable подставляется вместо имени, когда данных нет.
const NotAvailable = "N/A"

// CachePrefix - общий префикс ключей кэша; сбрасывается целиком при изменении данных.
const CachePrefix = "analytics:"

// Cache хранит вычисленные агрегаты между запросами.
type Cache interface {
	Remember(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error)
}

type Overview struct {
	TotalReports             int
	AverageSalary            float64
	MedianSalary             float64
	TopPayingCompany         string
	TopPayingCompanyAverage  float64
	MostReportedCompany      string
	MostReportedCompanyCount int
	TotalCompanies           int
	TotalUniversities        int
	TotalLocations           int
}

type YearTrend struct {
	Year    int
	Average float64
	Median  float64
	Count   int
}

type MarketInsights struct {
	TotalReports        int
	Percentile25        float64
	Percentile75        float64
	Percentile90        float64
	RecentAverage       float64
	OlderAverage        float64
	Improvement         float64
	MostCommonRole      string
	MostCommonRoleCount int
	TopLocation         string
	TopLocationCount    int
}

type ReportAnalytics struct {
	reportRepo repository.ReportRepository
	cache      Cache
	now        func() time.Time
}

// NewReportAnalytics создаёт сервис аналитики. cache может быть nil.
func NewReportAnalytics(reportRepo repository.ReportRepository, cache Cache, now func() time.Time) *ReportAnalytics {
	if now == nil {
		now = time.Now
	}
	return &ReportAnalytics{reportRepo: reportRepo, cache: cache, now: now}
}

// cached выполняет fn через кэш, если он подключён.
func cached[T any](ctx context.Context, a *ReportAnalytics, key string, fn func() (T, error)) (T, error) {
	if a.cache == nil {
		return fn()
	}
	value, err := a.cache.Remember(ctx, CachePrefix+key, func() (interface{}, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

func (a *ReportAnalytics) loadReports(ctx context.Context) ([]*entity.ApprovedReport, error) {
	reports, err := a.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить отчёты")
	}
	return reports, nil
}

func (a *ReportAnalytics) Overview(ctx context.Context) (*Overview, error) {
	return cached(ctx, a, "overview", func() (*Overview, error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}

		salaries := stats.Salaries(reports)
		result := &Overview{
			TotalReports:        len(reports),
			AverageSalary:       stats.Mean(salaries),
			MedianSalary:        stats.Median(salaries),
			TopPayingCompany:    NotAvailable,
			MostReportedCompany: NotAvailable,
			TotalCompanies:      stats.CountDistinct(reports, stats.ByCompany),
			TotalUniversities:   stats.CountDistinct(reports, stats.ByUniversity),
			TotalLocations:      stats.CountDistinct(reports, stats.ByLocation),
		}

		if top, ok := stats.Top(reports, stats.ByCompany, TopPayingCompanyMinReports, stats.OrderByMean); ok {
			result.TopPayingCompany = top.Key
			result.TopPayingCompanyAverage = top.Mean
		}
		if most, ok := stats.Top(reports, stats.ByCompany, 1, stats.OrderByCount); ok {
			result.MostReportedCompany = most.Key
			result.MostReportedCompanyCount = most.Count
		}
		return result, nil
	})
}

// SalaryTrends - среднее и медиана по годам, годы по возрастанию.
func (a *ReportAnalytics) SalaryTrends(ctx context.Context) ([]YearTrend, error) {
	return cached(ctx, a, "salary-trends", func() ([]YearTrend, error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}

		groups := stats.GroupAggregate(reports, stats.ByYear, stats.GroupOptions{MinCount: 1, OrderBy: stats.OrderByKey})
		trends := make([]YearTrend, 0, len(groups))
		for _, g := range groups {
			trends = append(trends, YearTrend{
				Year:    g.Key,
				Average: g.Mean,
				Median:  stats.Median(g.Salaries),
				Count:   g.Count,
			})
		}
		return trends, nil
	})
}

func (a *ReportAnalytics) TopCompanies(ctx context.Context, limit int) ([]stats.Group[string], error) {
	return a.topBy(ctx, "top-companies", stats.ByCompany, TopCompaniesMinReports, clampLimit(limit, DefaultTopCompaniesLimit))
}

func (a *ReportAnalytics) TopUniversities(ctx context.Context, limit int) ([]stats.Group[string], error) {
	return a.topBy(ctx, "top-universities", stats.ByUniversity, TopUniversitiesMinReports, clampLimit(limit, DefaultTopLimit))
}

// TopLocations учитывает только отчёты с заполненной локацией.
func (a *ReportAnalytics) TopLocations(ctx context.Context, limit int) ([]stats.Group[string], error) {
	return a.topBy(ctx, "top-locations", stats.ByLocation, TopLocationsMinReports, clampLimit(limit, DefaultTopLimit))
}

func (a *ReportAnalytics) TopRoles(ctx context.Context, limit int) ([]stats.Group[string], error) {
	return a.topBy(ctx, "top-roles", stats.ByRole, TopRolesMinReports, clampLimit(limit, DefaultTopLimit))
}

func (a *ReportAnalytics) topBy(
	ctx context.Context,
	name string,
	key stats.KeyFunc[string],
	minCount, limit int,
) ([]stats.Group[string], error) {
	return cached(ctx, a, fmt.Sprintf("%s:%d", name, limit), func() ([]stats.Group[string], error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}
		return stats.GroupAggregate(reports, key, stats.GroupOptions{
			MinCount: minCount,
			OrderBy:  stats.OrderByMean,
			Limit:    limit,
		}), nil
	})
}

func (a *ReportAnalytics) SalaryDistribution(ctx context.Context) ([]stats.BucketCount, error) {
	return cached(ctx, a, "salary-distribution", func() ([]stats.BucketCount, error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}
		return stats.Distribution(stats.Salaries(reports), stats.DefaultBuckets), nil
	})
}

// CompanyComparison принимает имена через запятую. Компании без отчётов опускаются.
func (a *ReportAnalytics) CompanyComparison(ctx context.Context, companies string) (map[string]stats.CompanyStats, error) {
	names := ParseCompanyList(companies)
	if len(names) == 0 {
		return nil, apperror.Validation("укажите хотя бы одну компанию")
	}

	reports, err := a.loadReports(ctx)
	if err != nil {
		return nil, err
	}
	return stats.CompareCompanies(reports, names), nil
}

// YearlyGrowth считает прирост числа отчётов год к году по счётчикам из хранилища.
func (a *ReportAnalytics) YearlyGrowth(ctx context.Context) ([]stats.YearGrowth, error) {
	return cached(ctx, a, "yearly-growth", func() ([]stats.YearGrowth, error) {
		counts, err := a.reportRepo.CountByYear(ctx)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать отчёты по годам")
		}

		series := make([]stats.YearCount, 0, len(counts))
		for _, c := range counts {
			series = append(series, stats.YearCount{Year: c.Year, Count: c.Count})
		}
		return stats.YearOverYearGrowth(series), nil
	})
}

// SalaryByTerm - среднее по номеру стажировки; отчёты без срока пропускаются.
func (a *ReportAnalytics) SalaryByTerm(ctx context.Context) ([]stats.Group[int], error) {
	return cached(ctx, a, "salary-by-term", func() ([]stats.Group[int], error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}
		return stats.GroupAggregate(reports, stats.ByTerm, stats.GroupOptions{MinCount: 1, OrderBy: stats.OrderByKey}), nil
	})
}

// MarketInsights: "свежие" отчёты - за текущий и прошлый год по часам сервиса.
func (a *ReportAnalytics) MarketInsights(ctx context.Context) (*MarketInsights, error) {
	currentYear := a.now().Year()
	return cached(ctx, a, fmt.Sprintf("market-insights:%d", currentYear), func() (*MarketInsights, error) {
		reports, err := a.loadReports(ctx)
		if err != nil {
			return nil, err
		}

		salaries := stats.Salaries(reports)
		result := &MarketInsights{
			TotalReports:   len(reports),
			Percentile25:   stats.Quantile(salaries, 1, 4),
			Percentile75:   stats.Quantile(salaries, 3, 4),
			Percentile90:   stats.Quantile(salaries, 9, 10),
			MostCommonRole: NotAvailable,
			TopLocation:    NotAvailable,
		}

		var recent, older []float64
		for _, r := range reports {
			if r.Year >= currentYear-1 {
				recent = append(recent, r.Salary)
			} else {
				older = append(older, r.Salary)
			}
		}
		result.RecentAverage = stats.Mean(recent)
		result.OlderAverage = stats.Mean(older)
		if result.OlderAverage > 0 {
			result.Improvement = (result.RecentAverage - result.OlderAverage) / result.OlderAverage * 100
		}

		if role, ok := stats.Top(reports, stats.ByRole, 1, stats.OrderByCount); ok {
			result.MostCommonRole = role.Key
			result.MostCommonRoleCount = role.Count
		}
		if loc, ok := stats.Top(reports, stats.ByLocation, 1, stats.OrderByCount); ok {
			result.TopLocation = loc.Key
			result.TopLocationCount = loc.Count
		}
		return result, nil
	})
}

// ParseCompanyList разбивает строку по запятым, обрезает пробелы и убирает пустые и повторные имена.
func ParseCompanyList(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		names = append(names, p)
	}
	return names
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}
