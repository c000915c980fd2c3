/*
 * options.go, part of trajectory-parser.
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
	"log"
	"strings"
)

//Compression names accepted by Options.Compression.
const (
	CompressionAuto = ""     //deduce from the file extension
	CompressionNone = "none" //read the file as it is
	CompressionGzip = "gz"
	CompressionZstd = "zst"
	CompressionLZ4  = "lz4"
)

//Options contains the settings for opening a Parser.
type Options struct {
	logger      *log.Logger
	compression string
	spoolDir    string //where compressed dumps are inflated. Empty means os.TempDir().
	bufferSize  int
	flags       bool //binary frames carry 6 int32 boundary flags after the triclinic flag
}

//DefaultOptions returns options that log to the standard logger, deduce the
//compression from the file name, and use a 64 KiB read buffer.
func DefaultOptions() *Options {
	r := new(Options)
	r.logger = log.Default()
	r.compression = CompressionAuto
	r.bufferSize = 64 * 1024
	return r
}

//Returns the logger used for heads-up messages,
//and sets it to a new value, if given.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}

//Returns the compression of the file to be opened,
//and sets it to a new value, if given. Unknown names are
//logged and ignored.
func (O *Options) Compression(c ...string) string {
	if len(c) > 0 {
		switch v := strings.ToLower(strings.TrimPrefix(c[0], ".")); v {
		case CompressionAuto, CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4:
			O.compression = v
		case "zstd":
			O.compression = CompressionZstd
		case "gzip":
			O.compression = CompressionGzip
		default:
			O.logger.Printf("Compression %s not supported. Will keep %q", c[0], O.compression)
		}
	}
	return O.compression
}

//Returns the directory where compressed dumps are inflated,
//and sets it to a new value, if given.
func (O *Options) SpoolDir(d ...string) string {
	if len(d) > 0 {
		O.spoolDir = d[0]
	}
	return O.spoolDir
}

//Returns the size of the read buffer, in bytes,
//and sets it to a new value, if given.
func (O *Options) BufferSize(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.bufferSize = n[0]
	}
	return O.bufferSize
}

//Returns true if binary frames are read with the six int32 boundary
//flags that current LAMMPS versions write after the triclinic flag,
//and sets it to a new value, if given. The default is false: the
//box doubles follow the triclinic flag directly.
func (O *Options) BoundaryFlags(b ...bool) bool {
	if len(b) > 0 {
		O.flags = b[0]
	}
	return O.flags
}
