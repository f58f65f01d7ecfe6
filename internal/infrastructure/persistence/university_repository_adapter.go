package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// UniversityRepositoryAdapter читает справочник университетов (заполняется офлайн-загрузкой).
type UniversityRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUniversityRepositoryAdapter(db *sqlx.DB) *UniversityRepositoryAdapter {
	return &UniversityRepositoryAdapter{db: db}
}

func (r *UniversityRepositoryAdapter) ListNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM universities ORDER BY name`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список университетов")
	}
	return names, nil
}
