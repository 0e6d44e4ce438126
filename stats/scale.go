package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Standardizer scales feature columns to zero mean and unit variance.
// Columns with zero spread are passed through centered only.
type Standardizer struct {
	Mean []float64
	Std  []float64

	fitted bool
}

// NewStandardizer returns an unfitted Standardizer.
func NewStandardizer() *Standardizer { return &Standardizer{} }

// Fit records per-column mean and standard deviation.
func (s *Standardizer) Fit(X [][]float64) {
	if len(X) == 0 {
		return
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.StdDev(col, nil)
		if s.Std[j] == 0 || math.IsNaN(s.Std[j]) {
			s.Std[j] = 1
		}
	}
	s.fitted = true
}

// Transform returns a standardized copy of X using the fitted parameters.
func (s *Standardizer) Transform(X [][]float64) [][]float64 {
	if !s.fitted {
		return X
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out
}

// FitTransform fits the standardizer and transforms X in one call.
func (s *Standardizer) FitTransform(X [][]float64) [][]float64 {
	s.Fit(X)
	return s.Transform(X)
}
