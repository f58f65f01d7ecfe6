package analytics

import (
	"cmp"
	"slices"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
)

// OrderBy - порядок групп в результате.
type OrderBy int

const (
	// OrderByKey - по возрастанию ключа (годы, сроки стажировки).
	OrderByKey OrderBy = iota
	// OrderByMean - по убыванию средней зарплаты.
	OrderByMean
	// OrderByCount - по убыванию числа отчётов ("самые упоминаемые").
	OrderByCount
)

// GroupOptions задаёт порог, порядок и лимит.
type GroupOptions struct {
	// MinCount - группы с меньшим числом отчётов отбрасываются.
	MinCount int
	OrderBy  OrderBy
	// Limit 0 - без ограничения.
	Limit int
}

// Group - агрегат по одному значению ключа.
type Group[K cmp.Ordered] struct {
	Key      K
	Count    int
	Mean     float64
	Min      float64
	Max      float64
	Salaries []float64
}

// KeyFunc извлекает ключ группы; false исключает отчёт из группировки.
type KeyFunc[K cmp.Ordered] func(r *entity.ApprovedReport) (K, bool)

// GroupAggregate группирует отчёты, отбрасывает группы меньше MinCount, сортирует и обрезает.
// Перед сортировкой по метрике группы упорядочены по ключу, а сортировка стабильная,
// поэтому при равенстве метрики побеждает меньший ключ.
func GroupAggregate[K cmp.Ordered](reports []*entity.ApprovedReport, key KeyFunc[K], opts GroupOptions) []Group[K] {
	buckets := make(map[K][]float64)
	for _, r := range reports {
		k, ok := key(r)
		if !ok {
			continue
		}
		buckets[k] = append(buckets[k], r.Salary)
	}

	groups := make([]Group[K], 0, len(buckets))
	for k, salaries := range buckets {
		if len(salaries) < opts.MinCount {
			continue
		}
		lo, hi := MinMax(salaries)
		groups = append(groups, Group[K]{
			Key:      k,
			Count:    len(salaries),
			Mean:     Mean(salaries),
			Min:      lo,
			Max:      hi,
			Salaries: salaries,
		})
	}

	slices.SortFunc(groups, func(a, b Group[K]) int { return cmp.Compare(a.Key, b.Key) })
	switch opts.OrderBy {
	case OrderByMean:
		slices.SortStableFunc(groups, func(a, b Group[K]) int { return cmp.Compare(b.Mean, a.Mean) })
	case OrderByCount:
		slices.SortStableFunc(groups, func(a, b Group[K]) int { return cmp.Compare(b.Count, a.Count) })
	case OrderByKey:
	}

	if opts.Limit > 0 && len(groups) > opts.Limit {
		groups = groups[:opts.Limit]
	}
	return groups
}

// Top возвращает первую группу или false, если групп нет.
func Top[K cmp.Ordered](reports []*entity.ApprovedReport, key KeyFunc[K], minCount int, orderBy OrderBy) (Group[K], bool) {
	groups := GroupAggregate(reports, key, GroupOptions{MinCount: minCount, OrderBy: orderBy, Limit: 1})
	if len(groups) == 0 {
		return Group[K]{}, false
	}
	return groups[0], true
}

// Ключи группировки.

func ByCompany(r *entity.ApprovedReport) (string, bool) { return r.Company, true }

func ByUniversity(r *entity.ApprovedReport) (string, bool) { return r.University, true }

func ByRole(r *entity.ApprovedReport) (string, bool) { return r.Role, true }

func ByYear(r *entity.ApprovedReport) (int, bool) { return r.Year, true }

// ByLocation пропускает отчёты без локации.
func ByLocation(r *entity.ApprovedReport) (string, bool) {
	loc := r.LocationValue()
	return loc, loc != ""
}

// ByTerm пропускает отчёты без номера срока.
func ByTerm(r *entity.ApprovedReport) (int, bool) {
	if r.Term == nil {
		return 0, false
	}
	return *r.Term, true
}

// Salaries извлекает зарплаты из отчётов.
func Salaries(reports []*entity.ApprovedReport) []float64 {
	values := make([]float64, len(reports))
	for i, r := range reports {
		values[i] = r.Salary
	}
	return values
}

// CountDistinct считает различные непустые значения ключа.
func CountDistinct(reports []*entity.ApprovedReport, key KeyFunc[string]) int {
	seen := make(map[string]struct{})
	for _, r := range reports {
		if k, ok := key(r); ok && k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
