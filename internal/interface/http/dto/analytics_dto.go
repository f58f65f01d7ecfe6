package dto

import (
	stats "github.com/ignatzorin/salary-backend/internal/analytics"
	"github.com/ignatzorin/salary-backend/internal/usecase/analytics"
)

// Деньги округляются до 2 знаков, проценты до 1.
func money(x float64) float64   { return stats.Round(x, 2) }
func percent(x float64) float64 { return stats.Round(x, 1) }

type OverviewResponse struct {
	TotalReports             int     `json:"total_reports"`
	AvgSalary                float64 `json:"avg_salary"`
	MedianSalary             float64 `json:"median_salary"`
	TopPayingCompany         string  `json:"top_paying_company"`
	TopPayingCompanyAvg      float64 `json:"top_paying_company_avg"`
	MostReportedCompany      string  `json:"most_reported_company"`
	MostReportedCompanyCount int     `json:"most_reported_company_count"`
	TotalCompanies           int     `json:"total_companies"`
	TotalUniversities        int     `json:"total_universities"`
	TotalLocations           int     `json:"total_locations"`
}

func ToOverviewResponse(o *analytics.Overview) OverviewResponse {
	return OverviewResponse{
		TotalReports:             o.TotalReports,
		AvgSalary:                money(o.AverageSalary),
		MedianSalary:             money(o.MedianSalary),
		TopPayingCompany:         o.TopPayingCompany,
		TopPayingCompanyAvg:      money(o.TopPayingCompanyAverage),
		MostReportedCompany:      o.MostReportedCompany,
		MostReportedCompanyCount: o.MostReportedCompanyCount,
		TotalCompanies:           o.TotalCompanies,
		TotalUniversities:        o.TotalUniversities,
		TotalLocations:           o.TotalLocations,
	}
}

type SalaryTrendResponse struct {
	Year         int     `json:"year"`
	AvgSalary    float64 `json:"avg_salary"`
	MedianSalary float64 `json:"median_salary"`
	Count        int     `json:"count"`
}

func ToSalaryTrendResponses(trends []analytics.YearTrend) []SalaryTrendResponse {
	result := make([]SalaryTrendResponse, len(trends))
	for i, t := range trends {
		result[i] = SalaryTrendResponse{
			Year:         t.Year,
			AvgSalary:    money(t.Average),
			MedianSalary: money(t.Median),
			Count:        t.Count,
		}
	}
	return result
}

type CompanyStatsResponse struct {
	Company        string  `json:"company"`
	AvgSalary      float64 `json:"avg_salary"`
	TotalReports   int     `json:"total_reports"`
	SalaryRangeMin float64 `json:"salary_range_min"`
	SalaryRangeMax float64 `json:"salary_range_max"`
}

func ToCompanyStatsResponses(groups []stats.Group[string]) []CompanyStatsResponse {
	result := make([]CompanyStatsResponse, len(groups))
	for i, g := range groups {
		result[i] = CompanyStatsResponse{
			Company:        g.Key,
			AvgSalary:      money(g.Mean),
			TotalReports:   g.Count,
			SalaryRangeMin: money(g.Min),
			SalaryRangeMax: money(g.Max),
		}
	}
	return result
}

type UniversityStatsResponse struct {
	University   string  `json:"university"`
	AvgSalary    float64 `json:"avg_salary"`
	TotalReports int     `json:"total_reports"`
}

func ToUniversityStatsResponses(groups []stats.Group[string]) []UniversityStatsResponse {
	result := make([]UniversityStatsResponse, len(groups))
	for i, g := range groups {
		result[i] = UniversityStatsResponse{University: g.Key, AvgSalary: money(g.Mean), TotalReports: g.Count}
	}
	return result
}

type LocationStatsResponse struct {
	Location     string  `json:"location"`
	AvgSalary    float64 `json:"avg_salary"`
	TotalReports int     `json:"total_reports"`
}

func ToLocationStatsResponses(groups []stats.Group[string]) []LocationStatsResponse {
	result := make([]LocationStatsResponse, len(groups))
	for i, g := range groups {
		result[i] = LocationStatsResponse{Location: g.Key, AvgSalary: money(g.Mean), TotalReports: g.Count}
	}
	return result
}

type RoleStatsResponse struct {
	Role         string  `json:"role"`
	AvgSalary    float64 `json:"avg_salary"`
	TotalReports int     `json:"total_reports"`
}

func ToRoleStatsResponses(groups []stats.Group[string]) []RoleStatsResponse {
	result := make([]RoleStatsResponse, len(groups))
	for i, g := range groups {
		result[i] = RoleStatsResponse{Role: g.Key, AvgSalary: money(g.Mean), TotalReports: g.Count}
	}
	return result
}

type SalaryDistributionResponse struct {
	SalaryRange string  `json:"salary_range"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

func ToSalaryDistributionResponses(buckets []stats.BucketCount) []SalaryDistributionResponse {
	result := make([]SalaryDistributionResponse, len(buckets))
	for i, b := range buckets {
		result[i] = SalaryDistributionResponse{SalaryRange: b.Label, Count: b.Count, Percentage: percent(b.Percentage)}
	}
	return result
}

type CompanyComparisonEntry struct {
	AvgSalary    float64   `json:"avg_salary"`
	MedianSalary float64   `json:"median_salary"`
	MinSalary    float64   `json:"min_salary"`
	MaxSalary    float64   `json:"max_salary"`
	TotalReports int       `json:"total_reports"`
	SalaryData   []float64 `json:"salary_data"`
}

func ToCompanyComparisonResponse(m map[string]stats.CompanyStats) map[string]CompanyComparisonEntry {
	result := make(map[string]CompanyComparisonEntry, len(m))
	for name, s := range m {
		result[name] = CompanyComparisonEntry{
			AvgSalary:    money(s.Mean),
			MedianSalary: money(s.Median),
			MinSalary:    money(s.Min),
			MaxSalary:    money(s.Max),
			TotalReports: s.Count,
			SalaryData:   s.Salaries,
		}
	}
	return result
}

type YearlyGrowthResponse struct {
	Year         int     `json:"year"`
	TotalReports int     `json:"total_reports"`
	GrowthRate   float64 `json:"growth_rate"`
}

func ToYearlyGrowthResponses(growth []stats.YearGrowth) []YearlyGrowthResponse {
	result := make([]YearlyGrowthResponse, len(growth))
	for i, g := range growth {
		result[i] = YearlyGrowthResponse{Year: g.Year, TotalReports: g.Count, GrowthRate: percent(g.GrowthRate)}
	}
	return result
}

type SalaryByTermResponse struct {
	Term         int     `json:"term"`
	AvgSalary    float64 `json:"avg_salary"`
	TotalReports int     `json:"total_reports"`
}

func ToSalaryByTermResponses(groups []stats.Group[int]) []SalaryByTermResponse {
	result := make([]SalaryByTermResponse, len(groups))
	for i, g := range groups {
		result[i] = SalaryByTermResponse{Term: g.Key, AvgSalary: money(g.Mean), TotalReports: g.Count}
	}
	return result
}

type SalaryPercentiles struct {
	P25 float64 `json:"25th"`
	P75 float64 `json:"75th"`
	P90 float64 `json:"90th"`
}

type RecentVsOlder struct {
	RecentAvg   float64 `json:"recent_avg"`
	OlderAvg    float64 `json:"older_avg"`
	Improvement float64 `json:"improvement"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type MarketInsightsResponse struct {
	TotalReports               int               `json:"total_reports"`
	SalaryPercentiles          SalaryPercentiles `json:"salary_percentiles"`
	RecentVsOlder              RecentVsOlder     `json:"recent_vs_older"`
	MostCommonRole             RoleCount         `json:"most_common_role"`
	TopLocationByOpportunities LocationCount     `json:"top_location_by_opportunities"`
}

func ToMarketInsightsResponse(mi *analytics.MarketInsights) MarketInsightsResponse {
	return MarketInsightsResponse{
		TotalReports: mi.TotalReports,
		SalaryPercentiles: SalaryPercentiles{
			P25: money(mi.Percentile25),
			P75: money(mi.Percentile75),
			P90: money(mi.Percentile90),
		},
		RecentVsOlder: RecentVsOlder{
			RecentAvg:   money(mi.RecentAverage),
			OlderAvg:    money(mi.OlderAverage),
			Improvement: percent(mi.Improvement),
		},
		MostCommonRole:             RoleCount{Role: mi.MostCommonRole, Count: mi.MostCommonRoleCount},
		TopLocationByOpportunities: LocationCount{Location: mi.TopLocation, Count: mi.TopLocationCount},
	}
}
