package matutils

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{0, 0, 0}, 0},
		{[]float64{1, 3, 2}, 1},
		{[]float64{5, 5, 1}, 0},
		{[]float64{1, 4, 4, 2}, 1},
		{[]float64{-3, -1, -2}, 1},
		{[]float64{2, 1, 0, 7}, 3},
	}

	for _, test := range tests {
		v := mat.NewVecDense(len(test.values), test.values)
		if got := MaxVec(v); got != test.want {
			t.Errorf("maxVec(%v): expected %v, got %v", test.values,
				test.want, got)
		}
	}
}

func TestEqual(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.DenseCopyOf(a)

	if !Equal(a, b) {
		t.Error("equal: copies should be equal")
	}

	b.Set(1, 1, 4.0000001)
	if Equal(a, b) {
		t.Error("equal: matrices differ at (1, 1)")
	}

	if Equal(a, mat.NewDense(1, 2, nil)) {
		t.Error("equal: matrices of different shapes are not equal")
	}
}

func TestFormat(t *testing.T) {
	s := Format(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if !strings.Contains(s, "1") || !strings.Contains(s, "4") {
		t.Errorf("format: missing elements in %q", s)
	}
}
