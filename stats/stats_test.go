package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMean(t *testing.T) {
	tests := []struct {
		x    []float64
		want float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		if got := Mean(tt.x); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("Mean(%v) = %v; want %v", tt.x, got, tt.want)
		}
	}
}

func TestStd(t *testing.T) {
	// Sample standard deviation: var = 32/7 for this classic example.
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	want := math.Sqrt(32.0 / 7.0)
	if got := Std(x); !almostEqual(got, want, 1e-9) {
		t.Errorf("Std = %v; want %v", got, want)
	}
	if got := Std([]float64{3}); got != 0 {
		t.Errorf("Std of single element = %v; want 0", got)
	}
	if got := Std(nil); got != 0 {
		t.Errorf("Std of empty = %v; want 0", got)
	}
}

func TestPercentile(t *testing.T) {
	x := []float64{3, 1, 5, 2, 4} // unsorted on purpose

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 2},
		{50, 3},
		{100, 5},
	}
	for _, tt := range tests {
		if got := Percentile(x, tt.p); got != tt.want {
			t.Errorf("Percentile(%v) = %v; want %v", tt.p, got, tt.want)
		}
	}

	// The input must not be reordered.
	if x[0] != 3 || x[2] != 5 {
		t.Errorf("Percentile mutated its input: %v", x)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	if got := Correlation(x, y); !almostEqual(got, 1, 1e-12) {
		t.Errorf("perfect positive correlation: got %v, want 1", got)
	}

	down := []float64{10, 8, 6, 4, 2}
	if got := Correlation(x, down); !almostEqual(got, -1, 1e-12) {
		t.Errorf("perfect negative correlation: got %v, want -1", got)
	}

	if got := Correlation(x, []float64{1, 2}); got != 0 {
		t.Errorf("length mismatch should return 0, got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	d := Describe([]float64{1, 2, 3, 4, 5})
	if d.Count != 5 {
		t.Errorf("Count: got %d, want 5", d.Count)
	}
	if d.Mean != 3 {
		t.Errorf("Mean: got %v, want 3", d.Mean)
	}
	if d.Min != 1 || d.Max != 5 {
		t.Errorf("Min/Max: got %v/%v, want 1/5", d.Min, d.Max)
	}
	if d.Median != 3 {
		t.Errorf("Median: got %v, want 3", d.Median)
	}

	empty := Describe(nil)
	if empty.Count != 0 || empty.Mean != 0 {
		t.Errorf("Describe(nil) = %+v, want zero value", empty)
	}
}

func TestStandardizer(t *testing.T) {
	X := [][]float64{
		{1, 10},
		{2, 10},
		{3, 10},
	}
	s := NewStandardizer()
	out := s.FitTransform(X)

	// First column: zero mean after scaling.
	sum := 0.0
	for _, row := range out {
		sum += row[0]
	}
	if !almostEqual(sum, 0, 1e-9) {
		t.Errorf("standardized column mean: got %v, want 0", sum/3)
	}

	// Constant column passes through centered, not NaN.
	for i, row := range out {
		if math.IsNaN(row[1]) {
			t.Fatalf("row %d: constant column produced NaN", i)
		}
		if row[1] != 0 {
			t.Errorf("row %d: constant column = %v, want 0", i, row[1])
		}
	}

	// The input itself must stay untouched.
	if X[0][0] != 1 || X[2][1] != 10 {
		t.Errorf("FitTransform mutated its input: %v", X)
	}
}
