package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/usecase/analytics"
)

const AnalyticsCachePrefix = analytics.CachePrefix

// CacheInvalidator сбрасывает закэшированные агрегаты.
type CacheInvalidator interface {
	InvalidateByPrefix(prefix string)
}

type ApproveSubmissionUseCase struct {
	submissionRepo repository.SubmissionRepository
	cache          CacheInvalidator
	now            func() time.Time
}

func NewApproveSubmissionUseCase(
	submissionRepo repository.SubmissionRepository,
	cache CacheInvalidator,
	now func() time.Time,
) *ApproveSubmissionUseCase {
	if now == nil {
		now = time.Now
	}
	return &ApproveSubmissionUseCase{submissionRepo: submissionRepo, cache: cache, now: now}
}

// Execute одобряет заявку и создаёт ровно один отчёт с её полями.
func (uc *ApproveSubmissionUseCase) Execute(ctx context.Context, id int64) (*entity.ApprovedReport, error) {
	report, err := uc.submissionRepo.Decide(ctx, id, func(s *entity.Submission) (*entity.ApprovedReport, error) {
		return s.Approve(uc.now().UTC())
	})
	if err != nil {
		return nil, decisionError(err, id, "approve")
	}

	if uc.cache != nil {
		uc.cache.InvalidateByPrefix(AnalyticsCachePrefix)
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": id,
		"report_id":     report.ID,
		"decision":      "approve",
	}).Info("Submission approved")

	return report, nil
}

type RejectSubmissionUseCase struct {
	submissionRepo repository.SubmissionRepository
	now            func() time.Time
}

func NewRejectSubmissionUseCase(submissionRepo repository.SubmissionRepository, now func() time.Time) *RejectSubmissionUseCase {
	if now == nil {
		now = time.Now
	}
	return &RejectSubmissionUseCase{submissionRepo: submissionRepo, now: now}
}

// Execute отклоняет заявку; отчёт не создаётся.
func (uc *RejectSubmissionUseCase) Execute(ctx context.Context, id int64) error {
	_, err := uc.submissionRepo.Decide(ctx, id, func(s *entity.Submission) (*entity.ApprovedReport, error) {
		return nil, s.Reject(uc.now().UTC())
	})
	if err != nil {
		return decisionError(err, id, "reject")
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": id,
		"decision":      "reject",
	}).Info("Submission rejected")

	return nil
}

func decisionError(err error, id int64, decision string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperror.ErrCodeAlreadyDecided {
			logger.Log.WithFields(logrus.Fields{
				"submission_id": id,
				"decision":      decision,
			}).Warn("Submission already decided")
		}
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить решение")
}
