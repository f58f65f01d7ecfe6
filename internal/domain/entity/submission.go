package entity

import (
	"time"

	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/validation"
)

// Submission - заявка, ожидающая решения администратора.
type Submission struct {
	ID int64
	ReportFields
	Status           valueobject.SubmissionStatus
	SubmitterAddress string
	SubmittedAt      time.Time
	DecidedAt        *time.Time
}

// NewSubmission валидирует кандидата и создаёт заявку в статусе pending.
// Локация приводится к форме "Город, Регион".
func NewSubmission(fields ReportFields, submitterAddress string, now time.Time) (*Submission, error) {
	company, err := validation.ValidateNonEmpty("компания", fields.Company)
	if err != nil {
		return nil, err
	}
	role, err := validation.ValidateNonEmpty("должность", fields.Role)
	if err != nil {
		return nil, err
	}
	university, err := validation.ValidateNonEmpty("университет", fields.University)
	if err != nil {
		return nil, err
	}

	salary, err := valueobject.NewHourlyRate(fields.Salary)
	if err != nil {
		return nil, err
	}
	bonus, err := valueobject.NewOptionalAmount(fields.Bonus)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateYear(fields.Year, now.Year()); err != nil {
		return nil, err
	}
	if err := validation.ValidateTerm(fields.Term); err != nil {
		return nil, err
	}
	if err := validation.ValidateLocation(fields.Location); err != nil {
		return nil, err
	}
	arrangement, err := validation.NormalizeArrangement(fields.Arrangement)
	if err != nil {
		return nil, err
	}

	return &Submission{
		ReportFields: ReportFields{
			Company:       company,
			Role:          role,
			Salary:        salary.Float64(),
			Bonus:         bonus,
			Year:          fields.Year,
			Term:          fields.Term,
			University:    university,
			Location:      valueobject.NormalizeOptionalLocation(fields.Location),
			Arrangement:   arrangement,
			SchemaVersion: CurrentSchemaVersion,
		},
		Status:           valueobject.SubmissionPending,
		SubmitterAddress: submitterAddress,
		SubmittedAt:      now,
	}, nil
}

// Approve переводит заявку в approved и возвращает отчёт для вставки.
func (s *Submission) Approve(now time.Time) (*ApprovedReport, error) {
	if err := s.transition(valueobject.SubmissionApproved, now); err != nil {
		return nil, err
	}
	return &ApprovedReport{ReportFields: s.ReportFields}, nil
}

// Reject переводит заявку в rejected; отчёт не создаётся.
func (s *Submission) Reject(now time.Time) error {
	return s.transition(valueobject.SubmissionRejected, now)
}

func (s *Submission) transition(next valueobject.SubmissionStatus, now time.Time) error {
	if !s.Status.CanTransitionTo(next) {
		return apperror.ErrAlreadyDecided
	}
	s.Status = next
	s.DecidedAt = &now
	return nil
}

func (s *Submission) IsPending() bool {
	return s.Status == valueobject.SubmissionPending
}
