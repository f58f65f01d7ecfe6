package moderation_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// memoryStore - потокобезопасная замена Postgres для обеих таблиц.
type memoryStore struct {
	mu               sync.Mutex
	nextSubmissionID int64
	nextReportID     int64
	submissions      map[int64]*entity.Submission
	reports          []*entity.ApprovedReport
	createErr        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{submissions: make(map[int64]*entity.Submission)}
}

var (
	_ repository.SubmissionRepository = (*memoryStore)(nil)
	_ repository.ReportRepository     = (*memoryStore)(nil)
)

func (m *memoryStore) Create(ctx context.Context, s *entity.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextSubmissionID++
	s.ID = m.nextSubmissionID
	cp := *s
	m.submissions[s.ID] = &cp
	return nil
}

// submission возвращает копию сохранённой заявки (nil, если её нет).
func (m *memoryStore) submission(id int64) *entity.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

func (m *memoryStore) ListByStatus(ctx context.Context, status valueobject.SubmissionStatus) ([]*entity.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*entity.Submission
	for _, s := range m.submissions {
		if s.Status == status {
			cp := *s
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.Before(result[j].SubmittedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *memoryStore) CountByStatus(ctx context.Context, status valueobject.SubmissionStatus) (int, error) {
	list, _ := m.ListByStatus(ctx, status)
	return len(list), nil
}

func (m *memoryStore) Decide(ctx context.Context, id int64, fn repository.DecisionFunc) (*entity.ApprovedReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.submissions[id]
	if !ok {
		return nil, apperror.ErrSubmissionNotFound
	}
	cp := *stored
	report, err := fn(&cp)
	if err != nil {
		return nil, err
	}
	if report != nil {
		m.nextReportID++
		report.ID = m.nextReportID
		saved := *report
		m.reports = append(m.reports, &saved)
	}
	m.submissions[id] = &cp
	return report, nil
}

func (m *memoryStore) List(ctx context.Context, limit, offset int) ([]*entity.ApprovedReport, int, error) {
	all, _ := m.ListAll(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].ID > all[j].ID
	})
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *memoryStore) ListAll(ctx context.Context) ([]*entity.ApprovedReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*entity.ApprovedReport, 0, len(m.reports))
	for _, r := range m.reports {
		cp := *r
		result = append(result, &cp)
	}
	return result, nil
}

func (m *memoryStore) ListByCompany(ctx context.Context, company string) ([]*entity.ApprovedReport, error) {
	all, _ := m.ListAll(ctx)
	var result []*entity.ApprovedReport
	for _, r := range all {
		if r.Company == company {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memoryStore) Distinct(ctx context.Context, column repository.ReportColumn) ([]string, error) {
	all, _ := m.ListAll(ctx)
	seen := make(map[string]struct{})
	for _, r := range all {
		if v := columnValue(r, column); v != "" {
			seen[v] = struct{}{}
		}
	}
	result := make([]string, 0, len(seen))
	for v := range seen {
		result = append(result, v)
	}
	sort.Strings(result)
	return result, nil
}

func (m *memoryStore) CountByYear(ctx context.Context) ([]repository.YearCount, error) {
	all, _ := m.ListAll(ctx)
	counts := make(map[int]int)
	for _, r := range all {
		counts[r.Year]++
	}
	result := make([]repository.YearCount, 0, len(counts))
	for y, c := range counts {
		result = append(result, repository.YearCount{Year: y, Count: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

func (m *memoryStore) MostFrequentForCompany(ctx context.Context, company string, column repository.ReportColumn) (*repository.ValueCount, error) {
	reports, _ := m.ListByCompany(ctx, company)
	if len(reports) == 0 {
		return nil, apperror.ErrCompanyNotFound
	}
	counts := make(map[string]int)
	for _, r := range reports {
		if v := columnValue(r, column); v != "" {
			counts[v]++
		}
	}
	var best *repository.ValueCount
	for v, c := range counts {
		if best == nil || c > best.Count || (c == best.Count && v < best.Value) {
			best = &repository.ValueCount{Value: v, Count: c}
		}
	}
	if best == nil {
		return nil, apperror.ErrCompanyNotFound
	}
	return best, nil
}

func (m *memoryStore) NormalizeLocations(ctx context.Context, fn func(string) string) ([]repository.LocationFix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fixes []repository.LocationFix
	for _, r := range m.reports {
		if r.Location == nil {
			continue
		}
		before := *r.Location
		after := fn(before)
		if after == before && before != "" {
			continue
		}
		if after == "" {
			r.Location = nil
		} else {
			r.Location = &after
		}
		fixes = append(fixes, repository.LocationFix{ID: r.ID, Before: before, After: after})
	}
	return fixes, nil
}

// insertReport добавляет одобренный отчёт напрямую, минуя модерацию (только для подготовки данных).
func (m *memoryStore) insertReport(r entity.ApprovedReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextReportID++
	r.ID = m.nextReportID
	m.reports = append(m.reports, &r)
}

func (m *memoryStore) reportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

func columnValue(r *entity.ApprovedReport, column repository.ReportColumn) string {
	switch column {
	case repository.ColumnCompany:
		return r.Company
	case repository.ColumnUniversity:
		return r.University
	case repository.ColumnRole:
		return r.Role
	case repository.ColumnLocation:
		return r.LocationValue()
	}
	return ""
}

type spyCache struct {
	mu       sync.Mutex
	prefixes []string
}

func (c *spyCache) InvalidateByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefixes = append(c.prefixes, prefix)
}

type denyLimiter struct{}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
}
