package skyrmion

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SpinField holds the three spin components on an N×N lattice. Row index is
// y, column index is x.
type SpinField struct {
	Sx, Sy, Sz *mat.Dense
}

func newSpinField(n int) SpinField {
	return SpinField{
		Sx: mat.NewDense(n, n, nil),
		Sy: mat.NewDense(n, n, nil),
		Sz: mat.NewDense(n, n, nil),
	}
}

// Size returns N, or 0 for an empty field.
func (f SpinField) Size() int {
	if f.Sz == nil {
		return 0
	}
	r, _ := f.Sz.Dims()
	return r
}

// At returns the spin at lattice column x, row y.
func (f SpinField) At(x, y int) (sx, sy, sz float64) {
	return f.Sx.At(y, x), f.Sy.At(y, x), f.Sz.At(y, x)
}

// Magnitude returns |S| at column x, row y.
func (f SpinField) Magnitude(x, y int) float64 {
	sx, sy, sz := f.At(x, y)
	return math.Sqrt(sx*sx + sy*sy + sz*sz)
}

// Clone deep-copies the field.
func (f SpinField) Clone() SpinField {
	if f.Sz == nil {
		return SpinField{}
	}
	return SpinField{
		Sx: mat.DenseCopyOf(f.Sx),
		Sy: mat.DenseCopyOf(f.Sy),
		Sz: mat.DenseCopyOf(f.Sz),
	}
}
