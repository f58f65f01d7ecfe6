// Package scheduler запускает периодическое обслуживание данных по cron-расписанию.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/goroutine"
	"github.com/ignatzorin/salary-backend/internal/logger"
)

// jobTimeout ограничивает один прогон обслуживания.
const jobTimeout = 2 * time.Minute

// LocationNormalizer - проход нормализации локаций.
type LocationNormalizer interface {
	Execute(ctx context.Context) ([]repository.LocationFix, error)
}

// PendingCounter сообщает размер очереди модерации.
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// Scheduler оборачивает robfig/cron.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	normalizer LocationNormalizer
	pending    PendingCounter
}

// New проверяет расписание и регистрирует задачу обслуживания.
func New(spec string, normalizer LocationNormalizer, pending PendingCounter) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(),
		spec:       spec,
		normalizer: normalizer,
		pending:    pending,
	}

	if _, err := s.cron.AddFunc(spec, func() {
		goroutine.Run("maintenance", func() { s.RunOnce(context.Background()) })
	}); err != nil {
		return nil, fmt.Errorf("scheduler: некорректное расписание %q: %w", spec, err)
	}

	return s, nil
}

// Start запускает cron в фоне.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.WithField("spec", s.spec).Info("Maintenance scheduler started")
}

// Stop останавливает cron и ждёт завершения текущей задачи.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("Maintenance scheduler stopped")
}

// RunOnce выполняет один прогон: нормализация локаций и запись размера очереди.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	fields := logrus.Fields{}

	fixes, err := s.normalizer.Execute(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Scheduled location normalization failed")
	} else {
		fields["locations_updated"] = len(fixes)
	}

	if s.pending != nil {
		count, err := s.pending.CountPending(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to count pending submissions")
		} else {
			fields["pending_submissions"] = count
		}
	}

	logger.Log.WithFields(fields).Info("Maintenance run finished")
}
