/*
 * fixture.go, part of trajectory-parser
 *
 * Copyright 2026 The trajectory-parser authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

//Package fixture writes small LAMMPS dump trajectories, in both encodings, for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
)

//Magic is the magic string written in binary frame headers.
const Magic = "DUMPCUSTOM"

//Columns are the columns of the frames built by Series.
var Columns = []string{"id", "type", "x", "y", "z"}

//Series returns n frames of natoms atoms each, with timesteps 0, 50, 100...
//Every value is different, so frames can't be mistaken for one another.
func Series(n, natoms int, triclinic bool) []*dump.Frame {
	ret := make([]*dump.Frame, n)
	ncols := len(Columns)
	for k := range ret {
		F := &dump.Frame{
			Timestep: int64(50 * k),
			Natoms:   int64(natoms),
			Box:      [6]float64{0, 10.5, -1.25, 9, 0, 20 + float64(k)},
			Boundary: [3]string{"pp", "pp", "fs"},
			Columns:  append([]string(nil), Columns...),
			Data:     make([]float64, natoms*ncols),
		}
		if triclinic {
			F.Tilt = [3]float64{0.5, 0, -0.25}
		}
		for i := 0; i < natoms; i++ {
			row := F.Data[i*ncols : (i+1)*ncols]
			row[0] = float64(i + 1)
			row[1] = float64(i%2 + 1)
			row[2] = 0.1*float64(i) + float64(k)
			row[3] = -0.2*float64(i) + 0.01*float64(k)
			row[4] = 1e-3 * float64(i*k+1)
		}
		ret[k] = F
	}
	return ret
}

//TextOptions controls the optional sections of text dumps.
type TextOptions struct {
	Units string //if not empty, an ITEM: UNITS section is written
	Time  bool   //write an ITEM: TIME section
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

//Text encodes frames as a text dump.
func Text(o TextOptions, frames ...*dump.Frame) []byte {
	var b bytes.Buffer
	for _, F := range frames {
		if o.Units != "" {
			fmt.Fprintf(&b, "ITEM: UNITS\n%s\n", o.Units)
		}
		if o.Time {
			fmt.Fprintf(&b, "ITEM: TIME\n%s\n", ftoa(0.005*float64(F.Timestep)))
		}
		fmt.Fprintf(&b, "ITEM: TIMESTEP\n%d\n", F.Timestep)
		fmt.Fprintf(&b, "ITEM: NUMBER OF ATOMS\n%d\n", F.Natoms)
		b.WriteString("ITEM: BOX BOUNDS ")
		if F.Triclinic() {
			b.WriteString("xy xz yz ")
		}
		fmt.Fprintf(&b, "%s\n", strings.Join(boundary(F), " "))
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&b, "%s %s", ftoa(F.Box[2*i]), ftoa(F.Box[2*i+1]))
			if F.Triclinic() {
				fmt.Fprintf(&b, " %s", ftoa(F.Tilt[i]))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "ITEM: ATOMS %s\n", strings.Join(F.Columns, " "))
		ncols := len(F.Columns)
		for i := 0; i < int(F.Natoms); i++ {
			row := make([]string, ncols)
			for j := range row {
				row[j] = ftoa(F.Data[i*ncols+j])
			}
			fmt.Fprintf(&b, "%s\n", strings.Join(row, " "))
		}
	}
	return b.Bytes()
}

func boundary(F *dump.Frame) []string {
	ret := make([]string, 3)
	for i, v := range F.Boundary {
		if v == "" {
			v = "pp"
		}
		ret[i] = v
	}
	return ret
}

//BinaryOptions controls how binary dumps are written.
type BinaryOptions struct {
	Magic    bool  //write the magic header. Without it, the revision is 0.
	Revision int32 //format revision written in the header. Above 1, units, time and column names are written.
	Endian   int32 //endianness marker, 1 if zero
	//Write the six boundary flags LAMMPS puts after the triclinic flag.
	BoundaryFlags bool
	//Sizes of the data chunks, written as given, even if they don't add up to the
	//frame's data. Missing values are written as 0. Nil means one chunk with everything.
	Chunks []int
}

//Binary encodes frames as a binary dump.
func Binary(o BinaryOptions, frames ...*dump.Frame) []byte {
	var b bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
			panic(err) //a bytes.Buffer doesn't fail
		}
	}
	for _, F := range frames {
		revision := int32(0)
		if o.Magic {
			revision = o.Revision
			endian := o.Endian
			if endian == 0 {
				endian = 1
			}
			w(-int64(len(Magic)))
			b.WriteString(Magic)
			w(endian)
			w(revision)
		}
		w(F.Timestep)
		w(F.Natoms)
		triclinic := F.Triclinic()
		if triclinic {
			w(int32(1))
		} else {
			w(int32(0))
		}
		if o.BoundaryFlags {
			for _, v := range boundary(F) {
				if len(v) == 1 {
					v += v
				}
				w(flag(v[0]))
				w(flag(v[1]))
			}
		}
		w(F.Box[:])
		if triclinic {
			w(F.Tilt[:])
		}
		w(int32(len(F.Columns)))
		if revision > 1 {
			w(int32(2))
			b.WriteString("lj")
			w(uint8(1))
			w(0.005 * float64(F.Timestep))
			names := strings.Join(F.Columns, " ")
			w(int32(len(names)))
			b.WriteString(names)
		}
		chunks := o.Chunks
		if chunks == nil {
			chunks = []int{len(F.Data)}
		}
		w(int32(len(chunks)))
		pos := 0
		for _, n := range chunks {
			w(int32(n))
			for i := 0; i < n; i++ {
				v := 0.0
				if pos < len(F.Data) {
					v = F.Data[pos]
				}
				w(v)
				pos++
			}
		}
	}
	return b.Bytes()
}

func flag(c byte) int32 {
	switch c {
	case 'f':
		return 1
	case 's':
		return 2
	case 'm':
		return 3
	}
	return 0
}

//Gzip compresses data with gzip.
func Gzip(data []byte) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Write(data)
	w.Close()
	return b.Bytes()
}

//Zstd compresses data with zstd.
func Zstd(data []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

//LZ4 compresses data into an lz4 frame.
func LZ4(data []byte) []byte {
	var b bytes.Buffer
	w := lz4.NewWriter(&b)
	w.Write(data)
	w.Close()
	return b.Bytes()
}

//Write puts data in the file name inside dir and returns its path.
func Write(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, data, 0o644))
	return path
}

//Append adds data to the end of the file at path.
func Append(tb testing.TB, path string, data []byte) {
	tb.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(tb, err)
	_, err = f.Write(data)
	require.NoError(tb, err)
	require.NoError(tb, f.Close())
}
