/*
 * open_test.go, part of trajectory-parser
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

package traj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/M-S-Jacobs2727/trajectory-parser/internal/fixture"
)

func TestIsBinary(Te *testing.T) {
	cases := map[string]bool{
		"run.bin":         true,
		"run.BIN":         true,
		"run.bin.gz":      true,
		"run.bin.zst":     true,
		"run.bin.zstd":    true,
		"run.bin.lz4":     true,
		"run.lammpstrj":   false,
		"run.dump.gz":     false,
		"bin":             false,
		"dir.bin/run.txt": false,
	}
	for name, want := range cases {
		require.Equal(Te, want, IsBinary(name), name)
	}
}

func TestOpenPicksReader(Te *testing.T) {
	dir := Te.TempDir()
	frames := fixture.Series(3, 4, false)
	txtname := filepath.Join(dir, "run.lammpstrj")
	binname := filepath.Join(dir, "run.bin")
	require.NoError(Te, os.WriteFile(txtname, fixture.Text(fixture.TextOptions{}, frames...), 0o644))
	require.NoError(Te, os.WriteFile(binname, fixture.Binary(fixture.BinaryOptions{Revision: 2, Magic: true}, frames...), 0o644))
	for _, name := range []string{txtname, binname} {
		P, err := Open(name)
		require.NoError(Te, err, name)
		require.NoError(Te, P.ScanAll(), name)
		require.Equal(Te, 3, P.Len(), name)
		f, err := P.Load(2)
		require.NoError(Te, err, name)
		require.Equal(Te, frames[2].Data, f.Data, name)
		require.NoError(Te, P.Close())
	}
}
