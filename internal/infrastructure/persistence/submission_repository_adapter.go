package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/repository/common"
)

type SubmissionRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSubmissionRepositoryAdapter(db *sqlx.DB) *SubmissionRepositoryAdapter {
	return &SubmissionRepositoryAdapter{db: db}
}

const submissionColumns = `id, company, role, salary, bonus, year, term, university, location, arrangement,
	schema_version, status, submitter_address, submitted_at, decided_at`

func (r *SubmissionRepositoryAdapter) Create(ctx context.Context, s *entity.Submission) error {
	query := `
		INSERT INTO pending_salaries (company, role, salary, bonus, year, term, university, location, arrangement,
			schema_version, status, submitter_address, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		s.Company, s.Role, s.Salary, s.Bonus, s.Year, s.Term, s.University, s.Location, s.Arrangement,
		s.SchemaVersion, s.Status, s.SubmitterAddress, s.SubmittedAt,
	).Scan(&s.ID)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить заявку")
	}
	return nil
}

func (r *SubmissionRepositoryAdapter) ListByStatus(ctx context.Context, status valueobject.SubmissionStatus) ([]*entity.Submission, error) {
	var rows []submissionRow
	query := `SELECT ` + submissionColumns + ` FROM pending_salaries WHERE status = $1 ORDER BY submitted_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query, status); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список заявок")
	}

	result := make([]*entity.Submission, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *SubmissionRepositoryAdapter) CountByStatus(ctx context.Context, status valueobject.SubmissionStatus) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pending_salaries WHERE status = $1`, status); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать заявки")
	}
	return count, nil
}

// Decide блокирует строку (FOR UPDATE), поэтому параллельные решения по одной заявке
// сериализуются; UPDATE дополнительно проверяет status = 'pending'.
func (r *SubmissionRepositoryAdapter) Decide(ctx context.Context, id int64, fn repository.DecisionFunc) (*entity.ApprovedReport, error) {
	var report *entity.ApprovedReport

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var row submissionRow
		query := `SELECT ` + submissionColumns + ` FROM pending_salaries WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.ErrSubmissionNotFound
			}
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявку")
		}

		submission := row.toEntity()
		created, err := fn(submission)
		if err != nil {
			return err
		}

		if created != nil {
			if err := insertReport(ctx, tx, created); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE pending_salaries SET status = $2, decided_at = $3
			WHERE id = $1 AND status = 'pending'
		`, submission.ID, submission.Status, submission.DecidedAt)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус заявки")
		}
		if err := common.ExpectOneRow(res, apperror.ErrAlreadyDecided); err != nil {
			return err
		}

		report = created
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить решение по заявке")
	}

	return report, nil
}

func insertReport(ctx context.Context, tx *sqlx.Tx, report *entity.ApprovedReport) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO reported_salaries (company, role, salary, bonus, year, term, university, location, arrangement, schema_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, report.Company, report.Role, report.Salary, report.Bonus, report.Year, report.Term,
		report.University, report.Location, report.Arrangement, report.SchemaVersion,
	).Scan(&report.ID)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать одобренный отчёт")
	}
	return nil
}

type submissionRow struct {
	reportRow
	Status           valueobject.SubmissionStatus `db:"status"`
	SubmitterAddress string                       `db:"submitter_address"`
	SubmittedAt      time.Time                    `db:"submitted_at"`
	DecidedAt        *time.Time                   `db:"decided_at"`
}

func (r *submissionRow) toEntity() *entity.Submission {
	return &entity.Submission{
		ID:               r.ID,
		ReportFields:     r.fields(),
		Status:           r.Status,
		SubmitterAddress: r.SubmitterAddress,
		SubmittedAt:      r.SubmittedAt,
		DecidedAt:        r.DecidedAt,
	}
}
