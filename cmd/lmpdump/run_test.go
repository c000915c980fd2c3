/*
 * run_test.go, part of trajectory-parser
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

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/internal/fixture"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj/txt"
)

func quiet() *dump.Options {
	O := dump.DefaultOptions()
	O.Logger(log.New(io.Discard, "", 0))
	return O
}

func TestSummarize(Te *testing.T) {
	F := fixture.Series(1, 4, false)[0]
	S := summarize("run.lammpstrj", 0, F)
	require.NotNil(Te, S.Index)
	require.Equal(Te, 0, *S.Index)
	require.Nil(Te, S.Tilt)
	require.Len(Te, S.Columns, len(fixture.Columns))
	require.Equal(Te, "id", S.Columns[0].Name)
	require.Equal(Te, 1.0, S.Columns[0].Min)
	require.Equal(Te, 4.0, S.Columns[0].Max)
	require.Equal(Te, 2.5, S.Columns[0].Mean)
	require.InDelta(Te, 0.3, S.Columns[2].Max, 1e-12)

	var b bytes.Buffer
	require.NoError(Te, printSummary(&b, S))
	out := b.String()
	require.Contains(Te, out, "file: run.lammpstrj")
	require.Contains(Te, out, "timestep: 0")
	require.Contains(Te, out, "name: id")

	S = summarize("run.lammpstrj", -1, fixture.Series(1, 2, true)[0])
	require.Nil(Te, S.Index)
	require.Len(Te, S.Tilt, 3)
}

func TestFollowGivesUpPastTimestep(Te *testing.T) {
	name := fixture.Write(Te, Te.TempDir(), "run.lammpstrj", fixture.Text(fixture.TextOptions{}, fixture.Series(3, 2, false)...))
	P, err := txt.New(name, quiet())
	require.NoError(Te, err)
	defer P.Close()
	start := time.Now()
	_, err = follow(P, 25, 100, time.Hour)
	require.True(Te, dump.IsKind(err, dump.NotFound), err)
	require.False(Te, P.Complete())
	require.Less(Te, time.Since(start), time.Minute)

	F, err := follow(P, 100, 1, 0)
	require.NoError(Te, err)
	require.Equal(Te, int64(100), F.Timestep)
}

func TestFollowRetries(Te *testing.T) {
	name := fixture.Write(Te, Te.TempDir(), "run.lammpstrj", fixture.Text(fixture.TextOptions{}, fixture.Series(2, 2, false)...))
	P, err := txt.New(name, quiet())
	require.NoError(Te, err)
	defer P.Close()
	_, err = follow(P, 500, 3, time.Millisecond)
	require.True(Te, dump.IsKind(err, dump.NotFound), err)
	require.True(Te, P.Complete())
	require.Equal(Te, 2, P.Len())
}

func TestFollowWaitsForPartialFrame(Te *testing.T) {
	frames := fixture.Series(3, 2, false)
	third := fixture.Text(fixture.TextOptions{}, frames[2])
	name := fixture.Write(Te, Te.TempDir(), "run.lammpstrj", fixture.Text(fixture.TextOptions{}, frames[:2]...))
	fixture.Append(Te, name, third[:60])
	P, err := txt.New(name, quiet())
	require.NoError(Te, err)
	defer P.Close()

	_, err = follow(P, 100, 2, time.Millisecond)
	require.True(Te, dump.IsKind(err, dump.NotFound), err)
	require.True(Te, P.Pending())
	require.False(Te, P.Complete())

	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(20 * time.Millisecond)
		f, err := os.OpenFile(name, os.O_APPEND|os.O_WRONLY, 0)
		if err != nil {
			return
		}
		f.Write(third[60:])
		f.Close()
	}()
	F, err := follow(P, 100, 1000, 5*time.Millisecond)
	<-done
	require.NoError(Te, err)
	require.Equal(Te, frames[2].Data, F.Data)
}
