package analytics

import "math"

// Bucket - диапазон [Min, Max) для гистограммы зарплат.
type Bucket struct {
	Label string
	Min   float64
	Max   float64
}

// DefaultBuckets - почасовые диапазоны $0–15, $15–20, … $45–50, $50+.
var DefaultBuckets = []Bucket{
	{Label: "$0-$15", Min: 0, Max: 15},
	{Label: "$15-$20", Min: 15, Max: 20},
	{Label: "$20-$25", Min: 20, Max: 25},
	{Label: "$25-$30", Min: 25, Max: 30},
	{Label: "$30-$35", Min: 30, Max: 35},
	{Label: "$35-$40", Min: 35, Max: 40},
	{Label: "$40-$45", Min: 40, Max: 45},
	{Label: "$45-$50", Min: 45, Max: 50},
	{Label: "$50+", Min: 50, Max: math.Inf(1)},
}

// BucketCount - результат по одному диапазону.
type BucketCount struct {
	Bucket
	Count      int
	Percentage float64
}

// Distribution считает попадания в каждый диапазон и долю от всей выборки.
// Для пустой выборки доли равны 0.
func Distribution(values []float64, buckets []Bucket) []BucketCount {
	result := make([]BucketCount, len(buckets))
	for i, b := range buckets {
		result[i].Bucket = b
	}

	for _, v := range values {
		for i, b := range buckets {
			if v >= b.Min && v < b.Max {
				result[i].Count++
				break
			}
		}
	}

	total := len(values)
	if total == 0 {
		return result
	}
	for i := range result {
		result[i].Percentage = float64(result[i].Count) / float64(total) * 100
	}
	return result
}
