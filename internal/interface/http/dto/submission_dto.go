package dto

import (
	"time"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/usecase/moderation"
)

// SubmitSalaryRequest - тело POST /submit-salary. Неизвестные поля отклоняются.
type SubmitSalaryRequest struct {
	Company     string   `json:"company" binding:"required"`
	Role        string   `json:"role" binding:"required"`
	Salary      *float64 `json:"salary" binding:"required"`
	Bonus       *float64 `json:"bonus"`
	Year        int      `json:"year" binding:"required"`
	Term        *int     `json:"term"`
	University  string   `json:"university" binding:"required"`
	Location    *string  `json:"location"`
	Arrangement *string  `json:"arrangement"`
}

func (r SubmitSalaryRequest) ToInput(origin string) moderation.SubmitInput {
	var salary float64
	if r.Salary != nil {
		salary = *r.Salary
	}
	return moderation.SubmitInput{
		Company:     r.Company,
		Role:        r.Role,
		Salary:      salary,
		Bonus:       r.Bonus,
		Year:        r.Year,
		Term:        r.Term,
		University:  r.University,
		Location:    r.Location,
		Arrangement: r.Arrangement,
		Origin:      origin,
	}
}

type ReportResponse struct {
	ID            int64    `json:"id"`
	Company       string   `json:"company"`
	Role          string   `json:"role"`
	Salary        float64  `json:"salary"`
	Bonus         *float64 `json:"bonus"`
	Year          int      `json:"year"`
	Term          *int     `json:"term"`
	University    string   `json:"university"`
	Location      *string  `json:"location"`
	Arrangement   *string  `json:"arrangement"`
	SchemaVersion int      `json:"schema_version"`
}

type SubmissionResponse struct {
	ReportResponse
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	DecidedAt   *time.Time `json:"decided_at"`
}

// PendingSubmissionResponse - вид заявки для администратора, с адресом отправителя.
type PendingSubmissionResponse struct {
	SubmissionResponse
	SubmitterAddress string `json:"submitter_address"`
}

func toReportResponse(id int64, f entity.ReportFields) ReportResponse {
	return ReportResponse{
		ID:            id,
		Company:       f.Company,
		Role:          f.Role,
		Salary:        f.Salary,
		Bonus:         f.Bonus,
		Year:          f.Year,
		Term:          f.Term,
		University:    f.University,
		Location:      f.Location,
		Arrangement:   f.Arrangement,
		SchemaVersion: f.SchemaVersion,
	}
}

func ToReportResponse(r *entity.ApprovedReport) ReportResponse {
	return toReportResponse(r.ID, r.ReportFields)
}

func ToReportResponses(reports []*entity.ApprovedReport) []ReportResponse {
	result := make([]ReportResponse, len(reports))
	for i, r := range reports {
		result[i] = ToReportResponse(r)
	}
	return result
}

func ToSubmissionResponse(s *entity.Submission) SubmissionResponse {
	return SubmissionResponse{
		ReportResponse: toReportResponse(s.ID, s.ReportFields),
		Status:         s.Status.String(),
		SubmittedAt:    s.SubmittedAt,
		DecidedAt:      s.DecidedAt,
	}
}

func ToPendingSubmissionResponses(submissions []*entity.Submission) []PendingSubmissionResponse {
	result := make([]PendingSubmissionResponse, len(submissions))
	for i, s := range submissions {
		result[i] = PendingSubmissionResponse{
			SubmissionResponse: ToSubmissionResponse(s),
			SubmitterAddress:   s.SubmitterAddress,
		}
	}
	return result
}

// DecisionResponse - результат approve/reject.
type DecisionResponse struct {
	SubmissionID int64           `json:"submission_id"`
	Status       string          `json:"status"`
	Report       *ReportResponse `json:"report,omitempty"`
}

type LocationFixResponse struct {
	ID     int64  `json:"id"`
	Before string `json:"before"`
	After  string `json:"after"`
}

type NormalizeLocationsResponse struct {
	Updated int                   `json:"updated"`
	Changes []LocationFixResponse `json:"changes"`
}
