/*
 * frame_test.go, part of trajectory-parser.
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
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func threeAtoms() *Frame {
	return &Frame{
		Timestep: 100,
		Natoms:   3,
		Columns:  []string{"id", "x", "y"},
		Data: []float64{
			1, 0.5, 1.5,
			2, 2.5, 3.5,
			3, 4.5, 5.5,
		},
	}
}

func TestFrameAccess(Te *testing.T) {
	F := threeAtoms()
	require.Equal(Te, 3, F.NCols())
	require.True(Te, F.Consistent())
	require.False(Te, F.Triclinic())
	require.Equal(Te, 3.5, F.At(1, 2))
	require.Equal(Te, 2, F.ColIndex("y"))
	require.Equal(Te, -1, F.ColIndex("z"))
	require.Panics(Te, func() { F.At(0, 3) })

	D := F.Dense()
	require.NotNil(Te, D)
	r, c := D.Dims()
	require.Equal(Te, 3, r)
	require.Equal(Te, 3, c)
	D.Set(0, 1, 9)
	require.Equal(Te, 9.0, F.Data[1], "Dense must share storage with Data")

	F.Data = F.Data[:8]
	require.False(Te, F.Consistent())
	require.Nil(Te, F.Dense())
}

func TestFrameCol(Te *testing.T) {
	F := threeAtoms()
	xy, err := F.Col("y", "x")
	require.NoError(Te, err)
	want := mat.NewDense(3, 2, []float64{
		1.5, 0.5,
		3.5, 2.5,
		5.5, 4.5,
	})
	require.True(Te, mat.Equal(want, xy))
	xy.Set(0, 0, -1)
	require.Equal(Te, 1.5, F.At(0, 2), "Col must copy")

	_, err = F.Col("z")
	require.Error(Te, err)
	_, err = F.Col()
	require.Error(Te, err)
	_, err = (&Frame{Columns: []string{"x"}}).Col("x")
	require.Error(Te, err)
}
