/*
 * open.go, part of trajectory-parser
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

//Package traj opens LAMMPS dump trajectories in either encoding, choosing
//the reader from the file name.
package traj

import (
	"path/filepath"
	"strings"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj/bin"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj/txt"
)

//IsBinary returns true if name, once a compression suffix
//(.gz, .zst, .zstd, .lz4) is removed, ends in .bin.
func IsBinary(name string) bool {
	name = strings.ToLower(name)
	switch filepath.Ext(name) {
	case ".gz", ".zst", ".zstd", ".lz4":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Ext(name) == ".bin"
}

//Open opens a dump trajectory. Files ending in .bin are read as binary dumps,
//everything else as text.
func Open(name string, opts ...*dump.Options) (*dump.Parser, error) {
	if IsBinary(name) {
		return bin.New(name, opts...)
	}
	return txt.New(name, opts...)
}
