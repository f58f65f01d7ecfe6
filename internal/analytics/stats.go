// Package analytics содержит чистые статистические функции над одобренными отчётами.
// Округление выполняется только на границе ответа (Round); внутри считается с полной точностью.
package analytics

import (
	"math"
	"sort"
)

// Mean - среднее арифметическое, 0 для пустого набора.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median - медиана; для чётной длины среднее двух центральных значений.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Quantile возвращает cut-ю из n-1 точек разбиения на n равновероятных интервалов.
//
// Метод "exclusive" (как statistics.quantiles в Python): m = len+1,
// j = floor(cut*m/n) с ограничением [1, len-1], delta = cut*m - j*n,
// результат (x[j-1]*(n-delta) + x[j]*delta) / n. На краях это линейная экстраполяция.
func Quantile(values []float64, cut, n int) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	if n < 1 || cut < 1 || cut >= n {
		return 0
	}

	sorted := sortedCopy(values)
	ld := len(sorted)
	m := ld + 1

	j := cut * m / n
	if j < 1 {
		j = 1
	} else if j > ld-1 {
		j = ld - 1
	}
	delta := cut*m - j*n

	return (sorted[j-1]*float64(n-delta) + sorted[j]*float64(delta)) / float64(n)
}

// Percentile - p-й процентиль тем же методом, что и Quantile.
func Percentile(values []float64, p int) float64 {
	return Quantile(values, p, 100)
}

// MinMax возвращает минимум и максимум, нули для пустого набора.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Round округляет до places знаков после запятой.
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
