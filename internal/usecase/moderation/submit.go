package moderation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
)

type SubmitInput struct {
	Company     string
	Role        string
	Salary      float64
	Bonus       *float64
	Year        int
	Term        *int
	University  string
	Location    *string
	Arrangement *string
	// Origin - адрес отправителя, ключ квоты.
	Origin string
}

type SubmitSalaryUseCase struct {
	submissionRepo repository.SubmissionRepository
	limiter        ratelimit.Limiter
	now            func() time.Time
}

func NewSubmitSalaryUseCase(
	submissionRepo repository.SubmissionRepository,
	limiter ratelimit.Limiter,
	now func() time.Time,
) *SubmitSalaryUseCase {
	if now == nil {
		now = time.Now
	}
	return &SubmitSalaryUseCase{submissionRepo: submissionRepo, limiter: limiter, now: now}
}

// Execute сначала проверяет квоту отправителя, затем валидирует и сохраняет заявку.
// При отказе по квоте в хранилище ничего не пишется.
func (uc *SubmitSalaryUseCase) Execute(ctx context.Context, input SubmitInput) (*entity.Submission, error) {
	decision, err := uc.limiter.Allow(ctx, input.Origin)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, apperror.ErrRateLimitUnavailable.Message)
	}
	if !decision.Allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	submission, err := entity.NewSubmission(entity.ReportFields{
		Company:     input.Company,
		Role:        input.Role,
		Salary:      input.Salary,
		Bonus:       input.Bonus,
		Year:        input.Year,
		Term:        input.Term,
		University:  input.University,
		Location:    input.Location,
		Arrangement: input.Arrangement,
	}, input.Origin, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.submissionRepo.Create(ctx, submission); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить заявку")
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"company":       submission.Company,
	}).Info("Salary submission received")

	return submission, nil
}
