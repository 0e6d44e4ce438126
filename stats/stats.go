package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Thin wrappers over gonum/stat with empty-slice guards, so callers never
// have to check lengths before asking for a number.

// Mean returns the arithmetic mean of x.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Std returns the sample standard deviation of x.
func Std(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.StdDev(x, nil)
}

// Percentile returns the p-th percentile of x (0 <= p <= 100) using the
// empirical quantile of the sorted sample. The input is not modified.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[len(cp)-1]
	}
	return stat.Quantile(p/100, stat.Empirical, cp, nil)
}

// Correlation returns the Pearson correlation coefficient between x and y.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// Summary holds the describe-style statistics for one numeric column.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe computes count, mean, std, min, quartiles, and max for x.
func Describe(x []float64) Summary {
	if len(x) == 0 {
		return Summary{}
	}
	return Summary{
		Count:  len(x),
		Mean:   Mean(x),
		Std:    Std(x),
		Min:    floats.Min(x),
		P25:    Percentile(x, 25),
		Median: Percentile(x, 50),
		P75:    Percentile(x, 75),
		Max:    floats.Max(x),
	}
}
