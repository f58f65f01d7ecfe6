package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 25.5, Mean([]float64{25.5}))
	assert.InDelta(t, 20.0, Mean([]float64{10, 20, 30}), 1e-9)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 25.0, Median([]float64{10, 20, 30, 40}))
	assert.Equal(t, 20.0, Median([]float64{10, 20, 30}))
	assert.Equal(t, 20.0, Median([]float64{30, 10, 20}), "вход не обязан быть отсортирован")
	assert.Equal(t, 0.0, Median(nil))
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQuantile_ExclusiveMethod(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	cases := []struct {
		name   string
		cut, n int
		want   float64
	}{
		{"lower quartile", 1, 4, 2.75},
		{"median", 2, 4, 5.5},
		{"upper quartile", 3, 4, 8.25},
		{"ninth decile", 9, 10, 9.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Quantile(values, tc.cut, tc.n), 1e-9)
		})
	}
}

func TestQuantile_ExtrapolatesOnSmallSamples(t *testing.T) {
	values := []float64{1, 2}
	assert.InDelta(t, 0.75, Quantile(values, 1, 4), 1e-9)
	assert.InDelta(t, 1.5, Quantile(values, 2, 4), 1e-9)
	assert.InDelta(t, 2.25, Quantile(values, 3, 4), 1e-9)
}

func TestQuantile_EdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Quantile(nil, 1, 4))
	assert.Equal(t, 42.0, Quantile([]float64{42}, 3, 4))
	assert.Equal(t, 0.0, Quantile([]float64{1, 2, 3}, 4, 4), "cut должен быть меньше n")
}

func TestPercentile_MatchesQuantile(t *testing.T) {
	values := []float64{18, 22.5, 19, 31, 27, 45, 16, 24}
	assert.InDelta(t, Quantile(values, 1, 4), Percentile(values, 25), 1e-9)
	assert.InDelta(t, Quantile(values, 3, 4), Percentile(values, 75), 1e-9)
	assert.InDelta(t, Quantile(values, 9, 10), Percentile(values, 90), 1e-9)
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{20, 15, 35})
	assert.Equal(t, 15.0, lo)
	assert.Equal(t, 35.0, hi)

	lo, hi = MinMax(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 25.57, Round(25.5666, 2))
	assert.Equal(t, 33.3, Round(100.0/3, 1))
	assert.Equal(t, -40.0, Round(-40.0, 1))
	assert.False(t, math.IsNaN(Round(0, 2)))
}
