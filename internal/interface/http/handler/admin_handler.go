package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/interface/http/dto"
	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/usecase/moderation"
)

type AdminHandler struct {
	listPendingUC *moderation.ListPendingUseCase
	approveUC     *moderation.ApproveSubmissionUseCase
	rejectUC      *moderation.RejectSubmissionUseCase
	normalizeUC   *moderation.NormalizeLocationsUseCase
}

func NewAdminHandler(
	listPendingUC *moderation.ListPendingUseCase,
	approveUC *moderation.ApproveSubmissionUseCase,
	rejectUC *moderation.RejectSubmissionUseCase,
	normalizeUC *moderation.NormalizeLocationsUseCase,
) *AdminHandler {
	return &AdminHandler{
		listPendingUC: listPendingUC,
		approveUC:     approveUC,
		rejectUC:      rejectUC,
		normalizeUC:   normalizeUC,
	}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	submissions, err := h.listPendingUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPendingSubmissionResponses(submissions))
}

func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	report, err := h.approveUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	reportDTO := dto.ToReportResponse(report)
	response.Success(c, dto.DecisionResponse{
		SubmissionID: id,
		Status:       valueobject.SubmissionApproved.String(),
		Report:       &reportDTO,
	})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	if err := h.rejectUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.DecisionResponse{
		SubmissionID: id,
		Status:       valueobject.SubmissionRejected.String(),
	})
}

func (h *AdminHandler) NormalizeLocations(c *gin.Context) {
	fixes, err := h.normalizeUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	changes := make([]dto.LocationFixResponse, len(fixes))
	for i, f := range fixes {
		changes[i] = dto.LocationFixResponse{ID: f.ID, Before: f.Before, After: f.After}
	}
	response.Success(c, dto.NormalizeLocationsResponse{Updated: len(fixes), Changes: changes})
}
