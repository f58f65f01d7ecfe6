package analytics

import "github.com/ignatzorin/salary-backend/internal/domain/entity"

// YearCount - число отчётов за год.
type YearCount struct {
	Year  int
	Count int
}

// YearGrowth - прирост числа отчётов относительно предыдущего года в процентах.
type YearGrowth struct {
	Year       int
	Count      int
	GrowthRate float64
}

// YearOverYearGrowth ожидает ряд, упорядоченный по году.
// У первого года базы нет, поэтому прирост 0.
func YearOverYearGrowth(series []YearCount) []YearGrowth {
	result := make([]YearGrowth, len(series))
	for i, yc := range series {
		result[i] = YearGrowth{Year: yc.Year, Count: yc.Count}
		if i == 0 {
			continue
		}
		prev := series[i-1].Count
		if prev == 0 {
			continue
		}
		result[i].GrowthRate = float64(yc.Count-prev) / float64(prev) * 100
	}
	return result
}

// CompanyStats - сводка по одной компании для сравнения.
type CompanyStats struct {
	Mean     float64
	Median   float64
	Min      float64
	Max      float64
	Count    int
	Salaries []float64
}

// CompareCompanies считает сводку по каждой запрошенной компании независимо.
// Компании без отчётов в результат не попадают.
func CompareCompanies(reports []*entity.ApprovedReport, names []string) map[string]CompanyStats {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	byCompany := make(map[string][]float64)
	for _, r := range reports {
		if _, ok := wanted[r.Company]; ok {
			byCompany[r.Company] = append(byCompany[r.Company], r.Salary)
		}
	}

	result := make(map[string]CompanyStats, len(byCompany))
	for name, salaries := range byCompany {
		lo, hi := MinMax(salaries)
		result[name] = CompanyStats{
			Mean:     Mean(salaries),
			Median:   Median(salaries),
			Min:      lo,
			Max:      hi,
			Count:    len(salaries),
			Salaries: salaries,
		}
	}
	return result
}
