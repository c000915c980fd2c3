/*
 * index_test.go, part of trajectory-parser.
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
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexLifecycle(Te *testing.T) {
	I := newIndex(0)
	require.Equal(Te, 1, I.Len())
	require.Equal(Te, 0, I.Visited())
	off, ok := I.frontier()
	require.True(Te, ok)
	require.Equal(Te, int64(0), off)

	require.NoError(Te, I.extend(100, 0))
	require.NoError(Te, I.extend(250, 10))
	require.NoError(Te, I.extend(400, 10))
	require.Equal(Te, 4, I.Len())
	require.Equal(Te, 3, I.Visited())
	require.Equal(Te, []int64{0, 100, 250, 400}, I.offsets)

	require.Error(Te, I.extend(400, 20), "an empty frame must be rejected")
	require.Error(Te, I.extend(300, 20), "offsets must increase")

	I.finish()
	require.True(Te, I.complete)
	require.Equal(Te, 3, I.Len())
	require.Equal(Te, I.Len(), I.Visited())
	_, ok = I.frontier()
	require.False(Te, ok)
	require.Error(Te, I.extend(500, 30))
	I.finish()
	require.Equal(Te, 3, I.Len(), "finish must pop only once")

	I.reopen()
	require.False(Te, I.complete)
	off, ok = I.frontier()
	require.True(Te, ok)
	require.Equal(Te, int64(400), off)
	require.NoError(Te, I.extend(520, 30))
	require.Equal(Te, []int64{0, 10, 10, 30}, I.timesteps)
}

func TestIndexSearch(Te *testing.T) {
	I := newIndex(16)
	for i, ts := range []int64{0, 50, 50, 100} {
		require.NoError(Te, I.extend(int64(16+10*(i+1)), ts))
	}
	cases := []struct {
		t   int64
		pos int
		ok  bool
	}{
		{-5, 0, true},
		{0, 0, true},
		{1, 1, true},
		{50, 1, true},
		{100, 3, true},
		{101, -1, false},
	}
	for _, c := range cases {
		pos, ok := I.search(c.t)
		require.Equal(Te, c.ok, ok, "t=%d", c.t)
		require.Equal(Te, c.pos, pos, "t=%d", c.t)
	}
}

func TestErrorKinds(Te *testing.T) {
	E := NewError(ParseError, "run.lammpstrj", 42, "unknown section", "sections").Tokens("TIMESTEP", "BOGUS").Wrap(io.ErrUnexpectedEOF)
	msg := E.Error()
	require.Contains(Te, msg, "run.lammpstrj")
	require.Contains(Te, msg, "parse error at byte 42")
	require.Contains(Te, msg, `expected "TIMESTEP", found "BOGUS"`)
	require.True(Te, E.Critical())
	require.True(Te, errors.Is(E, io.ErrUnexpectedEOF))

	wrapped := fmt.Errorf("outer: %w", Decorate(E, "Load"))
	require.True(Te, IsKind(wrapped, ParseError))
	require.False(Te, IsKind(wrapped, NotFound))
	require.Equal(Te, []string{"sections", "Load"}, E.Decorate(""))

	nf := NewError(NotFound, "run.lammpstrj", -1, "timestep 3 not in file")
	require.False(Te, nf.Critical())
	require.NotContains(Te, nf.Error(), "at byte")
	require.Equal(Te, "not found", NotFound.String())

	last := NewLastFrameError("run.lammpstrj", "SkipFrame")
	require.True(Te, IsLastFrame(last))
	require.True(Te, IsLastFrame(fmt.Errorf("wrapped: %w", last)))
	require.False(Te, IsLastFrame(E))
	require.False(Te, IsLastFrame(nil))
	require.NoError(Te, Decorate(nil, "Load"))
	plain := errors.New("plain")
	require.Equal(Te, plain, Decorate(plain, "Load"))
}
