/*
 * bin.go, part of trajectory-parser
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

package bin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/internal/cursor"
)

//MaxMagic is the longest magic string accepted. LAMMPS writes at most "DUMPCUSTOM".
const MaxMagic = 1024

var boundaries = [4]string{"p", "f", "s", "m"}

//Reader reads frames from a binary dump. It implements dump.FrameReader.
type Reader struct {
	c        *cursor.Cursor
	filename string
	endian   binary.ByteOrder
	flags    bool //frames carry boundary flags
}

//New opens a binary dump trajectory for reading.
func New(filename string, opts ...*dump.Options) (*dump.Parser, error) {
	return dump.NewParser(filename, NewReader, opts...)
}

//NewReader returns a binary frame reader over c. It is a dump.ReaderMaker.
//If O.BoundaryFlags() is true, frames are read with the boundary flags
//LAMMPS writes after the triclinic flag. O may be nil.
func NewReader(c *cursor.Cursor, filename string, O *dump.Options) dump.FrameReader {
	R := &Reader{c: c, filename: filename, endian: binary.LittleEndian}
	if O != nil {
		R.flags = O.BoundaryFlags()
	}
	return R
}

func (R *Reader) parseErr(caller, message string) *dump.Error {
	return dump.NewError(dump.ParseError, R.filename, R.c.Offset(), message, caller)
}

//read fills data from the file. Any shortage is a ParseError wrapping io.ErrUnexpectedEOF,
//since read is never used for the first bytes of a frame.
func (R *Reader) read(data any, what, caller string) error {
	if err := binary.Read(R.c, R.endian, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return R.parseErr(caller, "unable to read "+what).Wrap(err)
	}
	return nil
}

func (R *Reader) skip(n int64, what, caller string) error {
	if err := R.c.Skip(n); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return R.parseErr(caller, "unable to skip "+what).Wrap(err)
	}
	return nil
}

//blob reads an int32 length and that many bytes. If keep is false the bytes are
//skipped and "" is returned.
func (R *Reader) blob(keep bool, what, caller string) (string, error) {
	var n int32
	if err := R.read(&n, what+" length", caller); err != nil {
		return "", err
	}
	if n < 0 {
		return "", R.parseErr(caller, "negative "+what+" length").Tokens("length >= 0", fmt.Sprint(n))
	}
	if !keep {
		return "", R.skip(int64(n), what, caller)
	}
	b := make([]byte, n)
	if err := R.read(b, what, caller); err != nil {
		return "", err
	}
	return string(b), nil
}

//timestep reads the timestep, and the magic header before it if there is one.
//A clean end of file before the first byte is the end of the trajectory.
func (R *Reader) timestep(caller string) (ts int64, revision int32, err error) {
	if err = binary.Read(R.c, R.endian, &ts); err != nil {
		if err == io.EOF {
			return 0, 0, dump.NewLastFrameError(R.filename, caller)
		}
		if err == io.ErrUnexpectedEOF {
			return 0, 0, R.parseErr(caller, "truncated timestep").Wrap(err)
		}
		return 0, 0, R.parseErr(caller, "unable to read timestep").Wrap(err)
	}
	if ts >= 0 {
		return ts, 0, nil
	}
	if -ts > MaxMagic {
		return 0, 0, R.parseErr(caller, "magic string too long").Tokens(fmt.Sprintf("at most %d bytes", MaxMagic), fmt.Sprint(-ts))
	}
	if err = R.skip(-ts, "magic string", caller); err != nil {
		return 0, 0, err
	}
	var endian int32
	if err = R.read(&endian, "endianness marker", caller); err != nil {
		return 0, 0, err
	}
	if endian != 1 {
		return 0, 0, R.parseErr(caller, "unsupported endianness").Tokens("1", fmt.Sprint(endian))
	}
	if err = R.read(&revision, "format revision", caller); err != nil {
		return 0, 0, err
	}
	if err = R.read(&ts, "timestep", caller); err != nil {
		return 0, 0, err
	}
	return ts, revision, nil
}

//frame walks one frame and returns its timestep. If keep is not nil, the frame
//is read into it, otherwise only the fields that decide where the frame ends are
//decoded, and everything else is skipped.
func (R *Reader) frame(keep *dump.Frame, caller string) (int64, error) {
	ts, revision, err := R.timestep(caller)
	if err != nil {
		return 0, err
	}
	var natoms int64
	var triclinic int32
	if err := R.read(&natoms, "number of atoms", caller); err != nil {
		return 0, err
	}
	if natoms < 0 {
		return 0, R.parseErr(caller, "negative number of atoms").Tokens("natoms >= 0", fmt.Sprint(natoms))
	}
	if err := R.read(&triclinic, "triclinic flag", caller); err != nil {
		return 0, err
	}
	//The read and skip paths share these, so they agree on the widths.
	var flags [6]int32
	var box [9]float64
	fl := flags[:0]
	if R.flags {
		fl = flags[:]
	}
	bx := box[:6]
	if triclinic != 0 {
		bx = box[:]
	}
	if keep == nil {
		if err := R.skip(int64(binary.Size(fl)+binary.Size(bx)), "box", caller); err != nil {
			return 0, err
		}
	} else {
		keep.Timestep = ts
		keep.Natoms = natoms
		if len(fl) > 0 {
			if err := R.read(fl, "boundary flags", caller); err != nil {
				return 0, err
			}
			for i := 0; i < 3; i++ {
				b, err := R.boundary(fl[2*i], fl[2*i+1], caller)
				if err != nil {
					return 0, err
				}
				keep.Boundary[i] = b
			}
		}
		if err := R.read(bx, "box", caller); err != nil {
			return 0, err
		}
		copy(keep.Box[:], bx[:6])
		copy(keep.Tilt[:], bx[6:])
	}
	var ncols int32
	if err := R.read(&ncols, "number of columns", caller); err != nil {
		return 0, err
	}
	if ncols < 0 || (natoms > 0 && ncols == 0) {
		return 0, R.parseErr(caller, "bad number of columns").Tokens("ncols > 0", fmt.Sprint(ncols))
	}
	var names string
	if revision > 1 {
		if _, err := R.blob(false, "units string", caller); err != nil {
			return 0, err
		}
		var hastime uint8
		if err := R.read(&hastime, "time flag", caller); err != nil {
			return 0, err
		}
		if hastime != 0 {
			if err := R.skip(8, "time", caller); err != nil {
				return 0, err
			}
		}
		if names, err = R.blob(keep != nil, "column names", caller); err != nil {
			return 0, err
		}
	}
	if keep != nil {
		if keep.Columns, err = R.columns(names, int(ncols), revision > 1, caller); err != nil {
			return 0, err
		}
		keep.Data = make([]float64, natoms*int64(ncols))
	}
	return ts, R.chunks(keep, natoms*int64(ncols), caller)
}

//boundary turns the lo and hi flags of one axis into the two letter style
//LAMMPS prints in text dumps, such as "pp" or "fs".
func (R *Reader) boundary(lo, hi int32, caller string) (string, error) {
	if lo < 0 || lo > 3 || hi < 0 || hi > 3 {
		return "", R.parseErr(caller, "bad boundary flag").Tokens("0 to 3", fmt.Sprintf("%d %d", lo, hi))
	}
	return boundaries[lo] + boundaries[hi], nil
}

func (R *Reader) columns(names string, ncols int, named bool, caller string) ([]string, error) {
	if !named {
		cols := make([]string, ncols)
		for i := range cols {
			cols[i] = fmt.Sprintf("c%d", i+1)
		}
		return cols, nil
	}
	fields := strings.Fields(names)
	if len(fields) < ncols {
		return nil, R.parseErr(caller, "too few column names").Tokens(fmt.Sprint(ncols), fmt.Sprint(len(fields)))
	}
	return fields[:ncols:ncols], nil
}

//chunks reads, or skips, the chunks of atom data, which must add up to total values.
func (R *Reader) chunks(keep *dump.Frame, total int64, caller string) error {
	var nchunks int32
	if err := R.read(&nchunks, "number of chunks", caller); err != nil {
		return err
	}
	if nchunks < 0 {
		return R.parseErr(caller, "negative number of chunks").Tokens("nchunks >= 0", fmt.Sprint(nchunks))
	}
	var pos int64
	for i := int32(0); i < nchunks; i++ {
		var n int32
		if err := R.read(&n, "chunk size", caller); err != nil {
			return err
		}
		if n < 0 || pos+int64(n) > total {
			return R.parseErr(caller, fmt.Sprintf("chunk %d overflows the atom data", i)).Tokens(fmt.Sprintf("at most %d values", total-pos), fmt.Sprint(n))
		}
		if keep == nil {
			if err := R.skip(int64(n)*8, "atom data", caller); err != nil {
				return err
			}
		} else if err := R.read(keep.Data[pos:pos+int64(n)], "atom data", caller); err != nil {
			return err
		}
		pos += int64(n)
	}
	if pos != total {
		return R.parseErr(caller, "chunks don't add up to natoms*ncols").Tokens(fmt.Sprint(total), fmt.Sprint(pos))
	}
	return nil
}

//ReadFrame reads the next frame.
func (R *Reader) ReadFrame() (*dump.Frame, error) {
	F := new(dump.Frame)
	if _, err := R.frame(F, "ReadFrame"); err != nil {
		return nil, err
	}
	return F, nil
}

//SkipFrame passes over the next frame and returns its timestep.
func (R *Reader) SkipFrame() (int64, error) {
	return R.frame(nil, "SkipFrame")
}

//PeekTimestep reads the next frame only up to its timestep.
func (R *Reader) PeekTimestep() (int64, error) {
	ts, _, err := R.timestep("PeekTimestep")
	return ts, err
}
