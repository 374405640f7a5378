/*
 * v3.go, part of godock.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package v3 implements a container for sets of vectors in 3D space,
//backed by a gonum dense matrix. Within the package a "vector" is a row
//vector, i.e. the cartesian coordinates of a point in 3D space.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one vector per row.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Empty coordinate slice", []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-initialized Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//Dense2Matrix wraps a gonum Dense into a Matrix. The matrix must have
//3 columns, otherwise the function panics.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Vec returns the ith vector as a 3-element array. Panics if out of range.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the ith vector to v. Panics if out of range.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//Copy returns a deep copy of the matrix.
func (F *Matrix) Copy() *Matrix {
	r, c := F.Dims()
	N := mat.NewDense(r, c, nil)
	N.Copy(F.Dense)
	return &Matrix{N}
}

//SomeVecs returns a new matrix with the vectors at the positions given
//by indexes, in order. It returns an error if any index is out of range.
func (F *Matrix) SomeVecs(indexes []int) (*Matrix, error) {
	n := F.NVecs()
	N := Zeros(len(indexes))
	for k, j := range indexes {
		if j < 0 || j >= n {
			return nil, Error{fmt.Sprintf("Vector requested (position %d, value %d) out of range", k, j), []string{"SomeVecs"}, true}
		}
		N.SetVec(k, F.Vec(j))
	}
	return N, nil
}

//Extents returns the per-axis minimum and maximum over all vectors.
func (F *Matrix) Extents() (min, max [3]float64) {
	r := F.NVecs()
	for j := 0; j < 3; j++ {
		min[j] = math.Inf(1)
		max[j] = math.Inf(-1)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			v := F.At(i, j)
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	return min, max
}

//RMSD returns the root of the mean square deviation between the
//corresponding vectors of test and template, without superposition.
//Both matrices must have the same number of vectors.
func RMSD(test, template *Matrix) (float64, error) {
	if test.NVecs() != template.NVecs() {
		return 0, Error{fmt.Sprintf("Mismatched vector counts for RMSD: %d vs %d", test.NVecs(), template.NVecs()), []string{"RMSD"}, true}
	}
	n := test.NVecs()
	if n == 0 {
		return 0, Error{"Empty matrices for RMSD", []string{"RMSD"}, true}
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := test.Vec(i)
		b := template.Vec(i)
		for j := 0; j < 3; j++ {
			d := a[j] - b[j]
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(n)), nil
}
