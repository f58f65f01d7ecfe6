package moderation

import (
	"context"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

type ListPendingUseCase struct {
	submissionRepo repository.SubmissionRepository
}

func NewListPendingUseCase(submissionRepo repository.SubmissionRepository) *ListPendingUseCase {
	return &ListPendingUseCase{submissionRepo: submissionRepo}
}

// Execute возвращает ожидающие заявки, старые первыми.
func (uc *ListPendingUseCase) Execute(ctx context.Context) ([]*entity.Submission, error) {
	submissions, err := uc.submissionRepo.ListByStatus(ctx, valueobject.SubmissionPending)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявки")
	}
	if submissions == nil {
		submissions = []*entity.Submission{}
	}
	return submissions, nil
}

// CountPending - размер очереди модерации.
func (uc *ListPendingUseCase) CountPending(ctx context.Context) (int, error) {
	count, err := uc.submissionRepo.CountByStatus(ctx, valueobject.SubmissionPending)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать заявки")
	}
	return count, nil
}
