/*
 * txt.go, part of trajectory-parser
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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/internal/cursor"
)

const item = "ITEM:"

//Reader reads frames from a text dump. It implements dump.FrameReader.
type Reader struct {
	c        *cursor.Cursor
	filename string
}

//New opens a text dump trajectory for reading.
func New(filename string, opts ...*dump.Options) (*dump.Parser, error) {
	return dump.NewParser(filename, NewReader, opts...)
}

//NewReader returns a text frame reader over c. It is a dump.ReaderMaker;
//no option changes how text frames are read.
func NewReader(c *cursor.Cursor, filename string, _ *dump.Options) dump.FrameReader {
	return &Reader{c: c, filename: filename}
}

//header collects what the sections before the atom table say.
type header struct {
	timestep    int64
	natoms      int64
	box         [6]float64
	tilt        [3]float64
	boundary    [3]string
	columns     []string
	ncols       int
	hasTimestep bool
	hasNatoms   bool
}

//parseErr builds a ParseError at the cursor. If the offending token ran into the
//end of the file, the error wraps io.ErrUnexpectedEOF: the rest of it may not have
//been written yet.
func (R *Reader) parseErr(caller, message string) *dump.Error {
	E := dump.NewError(dump.ParseError, R.filename, R.c.Offset(), message, caller)
	if R.c.AtEOF() {
		E.Wrap(io.ErrUnexpectedEOF)
	}
	return E
}

//end fails if the last line of a frame has no newline. LAMMPS ends every line, so
//such a frame is taken to be still being written.
func (R *Reader) end(caller string) error {
	if R.c.AtEOF() {
		return R.ioErr(caller, "end of frame", io.ErrUnexpectedEOF)
	}
	return nil
}

//ioErr turns an error from the cursor into a ParseError. Running out of file inside
//a frame is reported as io.ErrUnexpectedEOF.
func (R *Reader) ioErr(caller, what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return R.parseErr(caller, "unable to read "+what).Wrap(err)
}

//token returns the next token, failing if there is none.
func (R *Reader) token(caller, what string) (string, error) {
	tok, err := R.c.Token()
	if err != nil {
		return "", R.ioErr(caller, what, err)
	}
	return tok, nil
}

func (R *Reader) int64Token(caller, what string) (int64, error) {
	tok, err := R.token(caller, what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, R.parseErr(caller, "bad "+what).Tokens("integer", tok)
	}
	return v, nil
}

func (R *Reader) float64Token(caller, what string) (float64, error) {
	tok, err := R.token(caller, what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, R.parseErr(caller, "bad "+what).Tokens("number", tok)
	}
	return v, nil
}

//start consumes the "ITEM:" that opens a frame. End of file there, with or without
//whitespace before it, is the normal end of the trajectory.
func (R *Reader) start(caller string) error {
	tok, err := R.c.Token()
	if err == io.EOF {
		return dump.NewLastFrameError(R.filename, caller)
	}
	if err != nil {
		return R.ioErr(caller, "frame start", err)
	}
	if tok != item {
		return R.parseErr(caller, "invalid start of frame").Tokens(item, tok)
	}
	return nil
}

//sections walks the header of a frame, from the keyword after the first "ITEM:" to the
//end of the ATOMS line. Read and skip share it, so they consume the same bytes; keep
//only decides whether the box values are parsed or their lines passed over.
//If toTimestep is true it returns as soon as the timestep has been read.
func (R *Reader) sections(h *header, keep, toTimestep bool, caller string) error {
	for {
		kw, err := R.token(caller, "section keyword")
		if err != nil {
			return err
		}
		switch kw {
		case "TIMESTEP":
			if h.timestep, err = R.int64Token(caller, "timestep"); err != nil {
				return err
			}
			h.hasTimestep = true
			if toTimestep {
				return R.end(caller)
			}
		case "TIME", "UNITS":
			if _, err := R.token(caller, strings.ToLower(kw)); err != nil {
				return err
			}
		case "BOX":
			if err := R.box(h, keep, caller); err != nil {
				return err
			}
		case "NUMBER":
			if err := R.c.SkipLine(); err != nil {
				return R.ioErr(caller, "NUMBER OF ATOMS line", err)
			}
			if h.natoms, err = R.int64Token(caller, "number of atoms"); err != nil {
				return err
			}
			if h.natoms < 0 {
				return R.parseErr(caller, "negative number of atoms").Tokens("natoms >= 0", fmt.Sprint(h.natoms))
			}
			h.hasNatoms = true
		case "ATOMS":
			if toTimestep {
				return R.parseErr(caller, "ATOMS section before TIMESTEP").Tokens("TIMESTEP", kw)
			}
			return R.atoms(h, keep, caller)
		default:
			return R.parseErr(caller, "unknown section").Tokens("TIMESTEP, TIME, UNITS, BOX, NUMBER or ATOMS", kw)
		}
		tok, err := R.token(caller, "section start")
		if err != nil {
			return err
		}
		if tok != item {
			return R.parseErr(caller, "invalid start of section").Tokens(item, tok)
		}
	}
}

//box reads the rest of the "BOX BOUNDS" line and the three lines after it.
//"xy xz yz" in the BOUNDS line means a triclinic box, with a tilt factor on each line.
func (R *Reader) box(h *header, keep bool, caller string) error {
	line, err := R.c.Line()
	if err != nil {
		return R.ioErr(caller, "BOX BOUNDS line", err)
	}
	fields := strings.Fields(line)
	triclinic := false
	for _, v := range fields {
		if v == "xy" {
			triclinic = true
			break
		}
	}
	if n := len(fields); n >= 4 {
		copy(h.boundary[:], fields[n-3:])
	}
	if !keep {
		for i := 0; i < 3; i++ {
			if err := R.c.SkipLine(); err != nil {
				return R.ioErr(caller, "box bounds", err)
			}
		}
		return nil
	}
	for i := 0; i < 3; i++ {
		if h.box[2*i], err = R.float64Token(caller, "lower box bound"); err != nil {
			return err
		}
		if h.box[2*i+1], err = R.float64Token(caller, "upper box bound"); err != nil {
			return err
		}
		if triclinic {
			if h.tilt[i], err = R.float64Token(caller, "tilt factor"); err != nil {
				return err
			}
		}
	}
	return nil
}

//atoms reads the column names at the end of the "ITEM: ATOMS" line.
func (R *Reader) atoms(h *header, keep bool, caller string) error {
	line, err := R.c.Line()
	if err != nil && err != io.EOF {
		return R.ioErr(caller, "ATOMS line", err)
	}
	fields := strings.Fields(line)
	h.ncols = len(fields)
	if keep {
		h.columns = fields
	}
	if !h.hasTimestep {
		return R.parseErr(caller, "frame has no TIMESTEP section").Tokens("TIMESTEP", "ATOMS")
	}
	if !h.hasNatoms {
		return R.parseErr(caller, "frame has no NUMBER OF ATOMS section").Tokens("NUMBER", "ATOMS")
	}
	if h.natoms > 0 && h.ncols == 0 {
		return R.parseErr(caller, "ATOMS section names no columns")
	}
	return nil
}

//ReadFrame reads the next frame.
func (R *Reader) ReadFrame() (*dump.Frame, error) {
	const caller = "ReadFrame"
	if err := R.start(caller); err != nil {
		return nil, err
	}
	var h header
	if err := R.sections(&h, true, false, caller); err != nil {
		return nil, err
	}
	F := &dump.Frame{
		Timestep: h.timestep,
		Natoms:   h.natoms,
		Box:      h.box,
		Tilt:     h.tilt,
		Boundary: h.boundary,
		Columns:  h.columns,
		Data:     make([]float64, h.natoms*int64(h.ncols)),
	}
	var err error
	for i := range F.Data {
		if F.Data[i], err = R.float64Token(caller, "atom data"); err != nil {
			return nil, err
		}
	}
	//Finish the last line, so we stop where SkipFrame would.
	if len(F.Data) > 0 {
		if err := R.c.SkipLine(); err != nil && err != io.EOF {
			return nil, R.ioErr(caller, "end of atom data", err)
		}
	}
	if err := R.end(caller); err != nil {
		return nil, err
	}
	return F, nil
}

//SkipFrame passes over the next frame, parsing only what it needs to find its end:
//the timestep, which it returns, and the number of atoms. The atom lines are not parsed.
func (R *Reader) SkipFrame() (int64, error) {
	const caller = "SkipFrame"
	if err := R.start(caller); err != nil {
		return 0, err
	}
	var h header
	if err := R.sections(&h, false, false, caller); err != nil {
		return 0, err
	}
	for i := int64(0); i < h.natoms; i++ {
		if err := R.c.SkipLine(); err != nil {
			return 0, R.ioErr(caller, fmt.Sprintf("atom line %d of %d", i+1, h.natoms), err)
		}
	}
	if err := R.end(caller); err != nil {
		return 0, err
	}
	return h.timestep, nil
}

//PeekTimestep reads the next frame only up to its timestep.
func (R *Reader) PeekTimestep() (int64, error) {
	const caller = "PeekTimestep"
	if err := R.start(caller); err != nil {
		return 0, err
	}
	var h header
	if err := R.sections(&h, false, true, caller); err != nil {
		return 0, err
	}
	return h.timestep, nil
}
