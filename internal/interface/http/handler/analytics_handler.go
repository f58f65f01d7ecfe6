package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/salary-backend/internal/interface/http/dto"
	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	analytics *analytics.ReportAnalytics
}

func NewAnalyticsHandler(a *analytics.ReportAnalytics) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	o, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOverviewResponse(o))
}

func (h *AnalyticsHandler) SalaryTrends(c *gin.Context) {
	trends, err := h.analytics.SalaryTrends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSalaryTrendResponses(trends))
}

func (h *AnalyticsHandler) TopCompanies(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	groups, err := h.analytics.TopCompanies(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCompanyStatsResponses(groups))
}

func (h *AnalyticsHandler) TopUniversities(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	groups, err := h.analytics.TopUniversities(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUniversityStatsResponses(groups))
}

func (h *AnalyticsHandler) TopLocations(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	groups, err := h.analytics.TopLocations(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLocationStatsResponses(groups))
}

func (h *AnalyticsHandler) TopRoles(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	groups, err := h.analytics.TopRoles(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToRoleStatsResponses(groups))
}

func (h *AnalyticsHandler) SalaryDistribution(c *gin.Context) {
	buckets, err := h.analytics.SalaryDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSalaryDistributionResponses(buckets))
}

func (h *AnalyticsHandler) CompanyComparison(c *gin.Context) {
	result, err := h.analytics.CompanyComparison(c.Request.Context(), c.Query("companies"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCompanyComparisonResponse(result))
}

func (h *AnalyticsHandler) YearlyGrowth(c *gin.Context) {
	growth, err := h.analytics.YearlyGrowth(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToYearlyGrowthResponses(growth))
}

func (h *AnalyticsHandler) SalaryByTerm(c *gin.Context) {
	groups, err := h.analytics.SalaryByTerm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSalaryByTermResponses(groups))
}

func (h *AnalyticsHandler) MarketInsights(c *gin.Context) {
	mi, err := h.analytics.MarketInsights(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToMarketInsightsResponse(mi))
}
