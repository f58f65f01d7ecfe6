package repository

import (
	"context"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
)

// DecisionFunc применяет переход к заблокированной заявке.
// Возвращённый отчёт (если не nil) вставляется в той же транзакции.
type DecisionFunc func(s *entity.Submission) (*entity.ApprovedReport, error)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	// ListByStatus возвращает заявки в порядке submitted_at, id по возрастанию.
	ListByStatus(ctx context.Context, status valueobject.SubmissionStatus) ([]*entity.Submission, error)
	CountByStatus(ctx context.Context, status valueobject.SubmissionStatus) (int, error)
	// Decide атомарно: блокирует заявку, вызывает fn, вставляет отчёт и сохраняет новый статус.
	// Для неизвестного id возвращает apperror.ErrSubmissionNotFound.
	Decide(ctx context.Context, id int64, fn DecisionFunc) (*entity.ApprovedReport, error)
}
