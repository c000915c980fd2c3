/*
 * txt_test.go, part of trajectory-parser
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

package txt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/internal/cursor"
	"github.com/M-S-Jacobs2727/trajectory-parser/internal/fixture"
)

func over(Te *testing.T, data []byte, bufsize int) (*Reader, *cursor.Cursor) {
	Te.Helper()
	c, err := cursor.New(bytes.NewReader(data), bufsize)
	require.NoError(Te, err)
	return NewReader(c, "test.lammpstrj", nil).(*Reader), c
}

func requireKind(Te *testing.T, err error, k dump.Kind) *dump.Error {
	Te.Helper()
	var e *dump.Error
	require.True(Te, errors.As(err, &e), "expected a *dump.Error, got %v", err)
	require.Equal(Te, k, e.Kind(), err.Error())
	return e
}

func TestReadSkipEquivalence(Te *testing.T) {
	cases := []struct {
		name   string
		opts   fixture.TextOptions
		frames []*dump.Frame
	}{
		{"orthogonal", fixture.TextOptions{}, fixture.Series(4, 5, false)},
		{"triclinic", fixture.TextOptions{}, fixture.Series(3, 2, true)},
		{"units and time", fixture.TextOptions{Units: "lj", Time: true}, fixture.Series(3, 3, false)},
		{"no atoms", fixture.TextOptions{}, fixture.Series(2, 0, false)},
	}
	for _, tc := range cases {
		Te.Run(tc.name, func(Te *testing.T) {
			data := fixture.Text(tc.opts, tc.frames...)
			for _, bufsize := range []int{16, 0} {
				rd, rc := over(Te, data, bufsize)
				sk, sc := over(Te, data, bufsize)
				for i, want := range tc.frames {
					got, err := rd.ReadFrame()
					require.NoError(Te, err, "frame %d", i)
					if diff := cmp.Diff(want, got); diff != "" {
						Te.Errorf("frame %d mismatch (-want +got):\n%s", i, diff)
					}
					require.True(Te, got.Consistent())
					ts, err := sk.SkipFrame()
					require.NoError(Te, err, "frame %d", i)
					require.Equal(Te, want.Timestep, ts)
					require.Equal(Te, rc.Offset(), sc.Offset(), "frame %d", i)
				}
				require.Equal(Te, int64(len(data)), rc.Offset())
				_, err := rd.ReadFrame()
				require.True(Te, dump.IsLastFrame(err), err)
				_, err = sk.SkipFrame()
				require.True(Te, dump.IsLastFrame(err), err)
			}
		})
	}
}

func TestTriclinicDetection(Te *testing.T) {
	rd, _ := over(Te, fixture.Text(fixture.TextOptions{}, fixture.Series(1, 2, true)...), 0)
	F, err := rd.ReadFrame()
	require.NoError(Te, err)
	require.True(Te, F.Triclinic())
	require.Equal(Te, [3]float64{0.5, 0, -0.25}, F.Tilt)
	require.Equal(Te, [3]string{"pp", "pp", "fs"}, F.Boundary)

	rd, _ = over(Te, fixture.Text(fixture.TextOptions{}, fixture.Series(1, 2, false)...), 0)
	F, err = rd.ReadFrame()
	require.NoError(Te, err)
	require.False(Te, F.Triclinic())
	require.Equal(Te, [3]float64{}, F.Tilt)
}

func TestPeekTimestep(Te *testing.T) {
	frames := fixture.Series(2, 3, false)
	data := fixture.Text(fixture.TextOptions{Units: "real", Time: true}, frames...)
	rd, c := over(Te, data, 0)
	ts, err := rd.PeekTimestep()
	require.NoError(Te, err)
	require.Equal(Te, int64(0), ts)
	require.NoError(Te, c.Seek(0))
	_, err = rd.SkipFrame()
	require.NoError(Te, err)
	ts, err = rd.PeekTimestep()
	require.NoError(Te, err)
	require.Equal(Te, int64(50), ts)

	rd, _ = over(Te, []byte("ITEM: NUMBER OF ATOMS\n1\nITEM: ATOMS x\n1.0\n"), 0)
	_, err = rd.PeekTimestep()
	requireKind(Te, err, dump.ParseError)

	rd, _ = over(Te, nil, 0)
	_, err = rd.PeekTimestep()
	require.True(Te, dump.IsLastFrame(err), err)
}

func TestTrailingWhitespaceIsCleanEnd(Te *testing.T) {
	data := fixture.Text(fixture.TextOptions{}, fixture.Series(1, 2, false)...)
	data = append(data, "\n\n   \t\n"...)
	rd, _ := over(Te, data, 0)
	_, err := rd.ReadFrame()
	require.NoError(Te, err)
	_, err = rd.ReadFrame()
	require.True(Te, dump.IsLastFrame(err), err)
}

func TestStructuralErrors(Te *testing.T) {
	cases := map[string]string{
		"garbage at frame start": "TIMESTEP\n0\n",
		"unknown keyword":        "ITEM: TIMESTEP\n0\nITEM: BOGUS\n",
		"missing ITEM":           "ITEM: TIMESTEP\n0\nNUMBER OF ATOMS\n1\n",
		"bad timestep":           "ITEM: TIMESTEP\nzero\n",
		"no number of atoms":     "ITEM: TIMESTEP\n0\nITEM: ATOMS x\n",
		"no timestep":            "ITEM: NUMBER OF ATOMS\n0\nITEM: ATOMS x\n",
		"negative atoms":         "ITEM: TIMESTEP\n0\nITEM: NUMBER OF ATOMS\n-1\nITEM: ATOMS x\n",
		"atoms without columns":  "ITEM: TIMESTEP\n0\nITEM: NUMBER OF ATOMS\n1\nITEM: ATOMS\n1.0\n",
		"bad value":              "ITEM: TIMESTEP\n0\nITEM: NUMBER OF ATOMS\n1\nITEM: ATOMS x\nnope\n",
	}
	for name, text := range cases {
		rd, _ := over(Te, []byte(text), 0)
		_, err := rd.ReadFrame()
		require.False(Te, dump.IsLastFrame(err), name)
		requireKind(Te, err, dump.ParseError)
	}
	rd, _ := over(Te, []byte(cases["unknown keyword"]), 0)
	_, err := rd.SkipFrame()
	e := requireKind(Te, err, dump.ParseError)
	require.Equal(Te, "BOGUS", e.Found())
	require.True(Te, e.Critical())
}

func TestTruncatedFrame(Te *testing.T) {
	data := fixture.Text(fixture.TextOptions{}, fixture.Series(1, 3, false)...)
	//drop the last atom line
	cut := bytes.LastIndexByte(data[:len(data)-1], '\n') + 1
	data = data[:cut]
	rd, _ := over(Te, data, 0)
	_, err := rd.ReadFrame()
	requireKind(Te, err, dump.ParseError)
	require.True(Te, errors.Is(err, io.ErrUnexpectedEOF), err)

	sk, _ := over(Te, data, 0)
	_, err = sk.SkipFrame()
	requireKind(Te, err, dump.ParseError)
	require.True(Te, errors.Is(err, io.ErrUnexpectedEOF), err)
}

//Wherever a frame is cut, read, skip and peek see it end early, never a
//broken frame, so a file caught while being written isn't mistaken for a bad one.
func TestEveryCutIsUnexpectedEOF(Te *testing.T) {
	data := fixture.Text(fixture.TextOptions{Units: "lj", Time: true}, fixture.Series(1, 2, true)...)
	for cut := 1; cut < len(data); cut++ {
		rd, _ := over(Te, data[:cut], 0)
		_, err := rd.ReadFrame()
		requireKind(Te, err, dump.ParseError)
		require.True(Te, errors.Is(err, io.ErrUnexpectedEOF), "ReadFrame cut at %d: %v", cut, err)

		sk, _ := over(Te, data[:cut], 16)
		_, err = sk.SkipFrame()
		requireKind(Te, err, dump.ParseError)
		require.True(Te, errors.Is(err, io.ErrUnexpectedEOF), "SkipFrame cut at %d: %v", cut, err)

		pk, _ := over(Te, data[:cut], 0)
		if _, err = pk.PeekTimestep(); err != nil {
			require.True(Te, errors.Is(err, io.ErrUnexpectedEOF), "PeekTimestep cut at %d: %v", cut, err)
		}
	}
}
