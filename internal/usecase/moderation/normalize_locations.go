package moderation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

type NormalizeLocationsUseCase struct {
	reportRepo repository.ReportRepository
	cache      CacheInvalidator
}

func NewNormalizeLocationsUseCase(reportRepo repository.ReportRepository, cache CacheInvalidator) *NormalizeLocationsUseCase {
	return &NormalizeLocationsUseCase{reportRepo: reportRepo, cache: cache}
}

// Execute приводит сохранённые локации одобренных отчётов к форме "Город, Регион".
// Повторный запуск ничего не меняет.
func (uc *NormalizeLocationsUseCase) Execute(ctx context.Context) ([]repository.LocationFix, error) {
	fixes, err := uc.reportRepo.NormalizeLocations(ctx, valueobject.NormalizeLocation)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось нормализовать локации")
	}
	if fixes == nil {
		fixes = []repository.LocationFix{}
	}

	if len(fixes) > 0 && uc.cache != nil {
		uc.cache.InvalidateByPrefix(AnalyticsCachePrefix)
	}

	logger.Log.WithFields(logrus.Fields{
		"updated": len(fixes),
	}).Info("Location normalization finished")

	return fixes, nil
}
