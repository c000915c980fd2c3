/*
 * errors.go, part of trajectory-parser.
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
	"strings"
)

//Kind tells what sort of failure an Error describes.
type Kind int

const (
	OpenError     Kind = iota + 1 //the file could not be opened (or inflated)
	ParseError                    //the file breaks the structure of its encoding
	NotFound                      //the requested frame or timestep is not in the file
	Inconsistency                 //the index and the file disagree
)

func (k Kind) String() string {
	switch k {
	case OpenError:
		return "open error"
	case ParseError:
		return "parse error"
	case NotFound:
		return "not found"
	case Inconsistency:
		return "inconsistency"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

//Error is the general structure for dump trajectory errors. It fullfills TrajError.
type Error struct {
	kind     Kind
	message  string
	filename string //the input file that has problems, or empty string if none.
	offset   int64  //byte offset where the problem was found, -1 if unknown
	expected string
	found    string
	deco     []string
	critical bool
	err      error
}

//NewError returns an Error of the given kind. NotFound errors are the only
//non-critical ones. deco, if given, starts the decoration trail.
func NewError(kind Kind, filename string, offset int64, message string, deco ...string) *Error {
	return &Error{
		kind:     kind,
		message:  message,
		filename: filename,
		offset:   offset,
		deco:     deco,
		critical: kind != NotFound,
	}
}

//Tokens records what the parser expected and what it got instead. It returns E.
func (E *Error) Tokens(expected, found string) *Error {
	E.expected = expected
	E.found = found
	return E
}

//Wrap sets the underlying cause of E. It returns E.
func (E *Error) Wrap(err error) *Error {
	E.err = err
	return E
}

func (E *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dump file %s %s", E.filename, E.kind)
	if E.offset >= 0 {
		fmt.Fprintf(&b, " at byte %d", E.offset)
	}
	b.WriteString(": ")
	b.WriteString(E.message)
	if E.expected != "" || E.found != "" {
		fmt.Fprintf(&b, " (expected %q, found %q)", E.expected, E.found)
	}
	if E.err != nil {
		b.WriteString(": ")
		b.WriteString(E.err.Error())
	}
	return b.String()
}

//Unwrap returns the underlying cause, if any.
func (E *Error) Unwrap() error { return E.err }

//Decorate Adds new information to the error
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the kind of the error
func (E *Error) Kind() Kind { return E.kind }

//Offset returns the byte offset where the error was detected, or -1.
func (E *Error) Offset() int64 { return E.offset }

//Expected returns the token or field that the parser was expecting, if recorded.
func (E *Error) Expected() string { return E.expected }

//Found returns the token or field that the parser found instead, if recorded.
func (E *Error) Found() string { return E.found }

//Filename returns the file to which the failing trajectory was associated
func (E *Error) FileName() string { return E.filename }

//Format returns the format of the file associated to the error
func (E *Error) Format() string { return "lammps dump" }

//Critical returns true if the error is critical, false otherwise
func (E *Error) Critical() bool { return E.critical }

//IsKind returns true if err, or anything it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}
	return false
}

//IsLastFrame returns true if err marks the normal end of a trajectory.
func IsLastFrame(err error) bool {
	var e LastFrameError
	return errors.As(err, &e)
}

//Decorate is a helper function that, if err implements Decorator,
//decorates it with the caller's name. Other errors are returned unchanged.
func Decorate(err error, caller string) error {
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}

//lastFrameError implements LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//lastFrameError does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "lammps dump" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//NewLastFrameError returns the error a FrameReader uses to signal that the trajectory
//ended cleanly, at a frame boundary.
func NewLastFrameError(filename string, caller string) error {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
