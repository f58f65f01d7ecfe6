package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/repository/common"
)

type ReportRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReportRepositoryAdapter(db *sqlx.DB) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

const reportColumns = `id, company, role, salary, bonus, year, term, university, location, arrangement, schema_version`

func (r *ReportRepositoryAdapter) List(ctx context.Context, limit, offset int) ([]*entity.ApprovedReport, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reported_salaries`); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать отчёты")
	}

	var rows []reportRow
	query := `SELECT ` + reportColumns + ` FROM reported_salaries ORDER BY year DESC, id DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отчёты")
	}
	return toReportEntities(rows), total, nil
}

func (r *ReportRepositoryAdapter) ListAll(ctx context.Context) ([]*entity.ApprovedReport, error) {
	var rows []reportRow
	query := `SELECT ` + reportColumns + ` FROM reported_salaries ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отчёты")
	}
	return toReportEntities(rows), nil
}

func (r *ReportRepositoryAdapter) ListByCompany(ctx context.Context, company string) ([]*entity.ApprovedReport, error) {
	var rows []reportRow
	query := `SELECT ` + reportColumns + ` FROM reported_salaries WHERE company = $1 ORDER BY year DESC, id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, company); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отчёты компании")
	}
	return toReportEntities(rows), nil
}

func (r *ReportRepositoryAdapter) Distinct(ctx context.Context, column repository.ReportColumn) ([]string, error) {
	if !column.IsValid() {
		return nil, fmt.Errorf("persistence: недопустимая колонка %q", column)
	}

	values := []string{}
	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s FROM reported_salaries
		WHERE %[1]s IS NOT NULL AND %[1]s <> ''
		ORDER BY %[1]s
	`, column)
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список значений")
	}
	return values, nil
}

func (r *ReportRepositoryAdapter) CountByYear(ctx context.Context) ([]repository.YearCount, error) {
	counts := []repository.YearCount{}
	query := `SELECT year, COUNT(id) AS count FROM reported_salaries GROUP BY year ORDER BY year`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать отчёты по годам")
	}
	return counts, nil
}

func (r *ReportRepositoryAdapter) MostFrequentForCompany(ctx context.Context, company string, column repository.ReportColumn) (*repository.ValueCount, error) {
	if !column.IsValid() {
		return nil, fmt.Errorf("persistence: недопустимая колонка %q", column)
	}

	var vc repository.ValueCount
	query := fmt.Sprintf(`
		SELECT %[1]s AS value, COUNT(id) AS count FROM reported_salaries
		WHERE company = $1 AND %[1]s IS NOT NULL AND %[1]s <> ''
		GROUP BY %[1]s
		ORDER BY COUNT(id) DESC, %[1]s ASC
		LIMIT 1
	`, column)
	if err := r.db.GetContext(ctx, &vc, query, company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrCompanyNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить статистику компании")
	}
	return &vc, nil
}

// NormalizeLocations проходит по всем локациям в одной транзакции и переписывает
// те, что меняются под действием fn. Пустая строка всегда становится NULL.
func (r *ReportRepositoryAdapter) NormalizeLocations(ctx context.Context, fn func(string) string) ([]repository.LocationFix, error) {
	fixes := []repository.LocationFix{}

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var rows []struct {
			ID       int64  `db:"id"`
			Location string `db:"location"`
		}
		if err := tx.SelectContext(ctx, &rows, `
			SELECT id, location FROM reported_salaries
			WHERE location IS NOT NULL
			ORDER BY id
			FOR UPDATE
		`); err != nil {
			return err
		}

		for _, row := range rows {
			after := fn(row.Location)
			if after == row.Location && row.Location != "" {
				continue
			}

			var value interface{} = after
			if after == "" {
				value = nil
			}
			if _, err := tx.ExecContext(ctx, `UPDATE reported_salaries SET location = $2 WHERE id = $1`, row.ID, value); err != nil {
				return err
			}
			fixes = append(fixes, repository.LocationFix{ID: row.ID, Before: row.Location, After: after})
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось нормализовать локации")
	}
	return fixes, nil
}

type reportRow struct {
	ID            int64    `db:"id"`
	Company       string   `db:"company"`
	Role          string   `db:"role"`
	Salary        float64  `db:"salary"`
	Bonus         *float64 `db:"bonus"`
	Year          int      `db:"year"`
	Term          *int     `db:"term"`
	University    string   `db:"university"`
	Location      *string  `db:"location"`
	Arrangement   *string  `db:"arrangement"`
	SchemaVersion int      `db:"schema_version"`
}

func (r *reportRow) fields() entity.ReportFields {
	return entity.ReportFields{
		Company:       r.Company,
		Role:          r.Role,
		Salary:        r.Salary,
		Bonus:         r.Bonus,
		Year:          r.Year,
		Term:          r.Term,
		University:    r.University,
		Location:      r.Location,
		Arrangement:   r.Arrangement,
		SchemaVersion: r.SchemaVersion,
	}
}

func toReportEntities(rows []reportRow) []*entity.ApprovedReport {
	result := make([]*entity.ApprovedReport, len(rows))
	for i := range rows {
		result[i] = &entity.ApprovedReport{ID: rows[i].ID, ReportFields: rows[i].fields()}
	}
	return result
}
