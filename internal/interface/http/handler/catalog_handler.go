package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/salary-backend/internal/interface/http/dto"
	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) ListSalaries(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	page := catalog.NewPage(limit, offset)

	reports, total, err := h.catalog.ListSalaries(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToReportResponses(reports), total, page.Limit, page.Offset)
}

func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	h.respondList(c, h.catalog.Companies)
}

func (h *CatalogHandler) ListLocations(c *gin.Context) {
	h.respondList(c, h.catalog.Locations)
}

func (h *CatalogHandler) ListRoles(c *gin.Context) {
	h.respondList(c, h.catalog.Roles)
}

func (h *CatalogHandler) ListUniversities(c *gin.Context) {
	h.respondList(c, h.catalog.Universities)
}

func (h *CatalogHandler) InternshipRoles(c *gin.Context) {
	response.Success(c, catalog.InternshipRoles)
}

func (h *CatalogHandler) CompanySalaries(c *gin.Context) {
	reports, err := h.catalog.CompanySalaries(c.Request.Context(), c.Query("company"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToReportResponses(reports))
}

func (h *CatalogHandler) CompanyAverageSalary(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	avg, err := h.catalog.CompanyAverage(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCompanyAverageResponse(company, avg))
}

func (h *CatalogHandler) CompanyTopUniversity(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	vc, err := h.catalog.CompanyTopUniversity(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCompanyTopValueResponse(company, vc))
}

func (h *CatalogHandler) CompanyTopLocation(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	vc, err := h.catalog.CompanyTopLocation(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCompanyTopValueResponse(company, vc))
}

func (h *CatalogHandler) respondList(c *gin.Context, fn func(ctx context.Context) ([]string, error)) {
	values, err := fn(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, values)
}
