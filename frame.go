/*
 * frame.go, part of trajectory-parser.
 *
 * Copyright 2026 The trajectory-parser authors
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

package dump

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Frame is one snapshot of a dump trajectory. Both the text and the binary readers
//fill the same structure. A Frame holds no reference to the Parser that produced it.
type Frame struct {
	Timestep int64
	Natoms   int64
	Box      [6]float64 //xlo, xhi, ylo, yhi, zlo, zhi
	Tilt     [3]float64 //xy, xz, yz. All zero for an orthogonal box.
	Boundary [3]string  //boundary style per axis, such as "pp" or "fs". May be empty.
	Columns  []string
	Data     []float64 //row-major, the value for atom a, column c is Data[a*len(Columns)+c]
}

//NCols returns the number of per-atom columns.
func (F *Frame) NCols() int {
	return len(F.Columns)
}

//Triclinic returns true if any tilt factor is non-zero.
func (F *Frame) Triclinic() bool {
	return F.Tilt != [3]float64{}
}

//Consistent returns true if the data table has exactly Natoms rows of NCols values.
func (F *Frame) Consistent() bool {
	return int64(len(F.Data)) == F.Natoms*int64(len(F.Columns))
}

//At returns the value of column col for atom atom. It panics if either is out of range.
func (F *Frame) At(atom, col int) float64 {
	n := len(F.Columns)
	if col < 0 || col >= n {
		panic(fmt.Sprintf("dump: column %d out of range [0,%d)", col, n))
	}
	return F.Data[atom*n+col]
}

//ColIndex returns the position of the column called name, or -1.
func (F *Frame) ColIndex(name string) int {
	for i, v := range F.Columns {
		if v == name {
			return i
		}
	}
	return -1
}

//Dense returns the per-atom table as a Natoms x NCols matrix. The matrix shares
//its storage with F.Data. It returns nil for a frame with no atoms or no columns.
func (F *Frame) Dense() *mat.Dense {
	if F.Natoms == 0 || len(F.Columns) == 0 || !F.Consistent() {
		return nil
	}
	return mat.NewDense(int(F.Natoms), len(F.Columns), F.Data)
}

//Col returns a Natoms x len(names) matrix with a copy of the named columns, in the
//order given.
func (F *Frame) Col(names ...string) (*mat.Dense, error) {
	if len(F.Columns) == 0 {
		return nil, fmt.Errorf("dump: frame at timestep %d has no column names", F.Timestep)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("dump: no column names given")
	}
	if F.Natoms == 0 {
		return nil, fmt.Errorf("dump: frame at timestep %d has no atoms", F.Timestep)
	}
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = F.ColIndex(name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("dump: column %q not in frame at timestep %d", name, F.Timestep)
		}
	}
	full := F.Dense()
	if full == nil {
		return nil, fmt.Errorf("dump: frame at timestep %d has %d values for %d atoms and %d columns", F.Timestep, len(F.Data), F.Natoms, len(F.Columns))
	}
	out := mat.NewDense(int(F.Natoms), len(names), nil)
	for j, c := range idx {
		out.SetCol(j, mat.Col(nil, c, full))
	}
	return out, nil
}
