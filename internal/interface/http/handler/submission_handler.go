package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/salary-backend/internal/interface/http/dto"
	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/usecase/moderation"
)

type SubmissionHandler struct {
	submitUC *moderation.SubmitSalaryUseCase
}

func NewSubmissionHandler(submitUC *moderation.SubmitSalaryUseCase) *SubmissionHandler {
	return &SubmissionHandler{submitUC: submitUC}
}

// SubmitSalary обрабатывает POST /submit-salary. Квота на адрес проверяется внутри use case.
func (h *SubmissionHandler) SubmitSalary(c *gin.Context) {
	var req dto.SubmitSalaryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	submission, err := h.submitUC.Execute(c.Request.Context(), req.ToInput(c.ClientIP()))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToSubmissionResponse(submission))
}
