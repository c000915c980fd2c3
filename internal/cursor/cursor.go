/*
 * cursor.go, part of trajectory-parser
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

//Package cursor implements the buffered, seekable byte stream that a dump parser
//and its frame reader share. The cursor always knows the absolute offset of the
//next byte it will return, so frame boundaries can be recorded without asking
//the operating system.
package cursor

import (
	"bufio"
	"errors"
	"io"
)

const defaultBufSize = 64 * 1024

//Cursor is a buffered reader over an io.ReadSeeker that tracks its own offset.
//It is not safe for concurrent use.
type Cursor struct {
	f   io.ReadSeeker
	r   *bufio.Reader
	off int64
	tok []byte
	eof bool //the last Token, Line or SkipLine ran into the end of the stream
}

//New returns a cursor positioned at the current offset of f.
//A bufsize <= 0 selects the default buffer size.
func New(f io.ReadSeeker, bufsize int) (*Cursor, error) {
	if bufsize <= 0 {
		bufsize = defaultBufSize
	}
	off, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &Cursor{f: f, r: bufio.NewReaderSize(f, bufsize), off: off, tok: make([]byte, 0, 64)}, nil
}

//Offset returns the absolute offset of the next byte to be read.
func (C *Cursor) Offset() int64 {
	return C.off
}

//Seek moves the cursor to the absolute offset off, dropping any buffered data.
func (C *Cursor) Seek(off int64) error {
	if off < 0 {
		return errors.New("cursor: negative offset")
	}
	C.eof = false
	if off == C.off {
		return nil
	}
	//Short forward jumps inside the buffer don't need a syscall.
	if d := off - C.off; d > 0 && d <= int64(C.r.Buffered()) {
		n, err := C.r.Discard(int(d))
		C.off += int64(n)
		return err
	}
	if _, err := C.f.Seek(off, io.SeekStart); err != nil {
		return err
	}
	C.r.Reset(C.f)
	C.off = off
	return nil
}

//AtEOF returns true if the last Token, Line or SkipLine stopped at the end of
//the stream rather than at a delimiter. In a file that is still being written,
//that token or line may not be whole yet.
func (C *Cursor) AtEOF() bool {
	return C.eof
}

//Read implements io.Reader.
func (C *Cursor) Read(p []byte) (int, error) {
	n, err := C.r.Read(p)
	C.off += int64(n)
	return n, err
}

//ReadFull fills p completely. It returns io.EOF only if no byte could be read,
//and io.ErrUnexpectedEOF if the stream ended part way through p.
func (C *Cursor) ReadFull(p []byte) error {
	n, err := io.ReadFull(C.r, p)
	C.off += int64(n)
	return err
}

//ReadByte implements io.ByteReader.
func (C *Cursor) ReadByte() (byte, error) {
	b, err := C.r.ReadByte()
	if err == nil {
		C.off++
	}
	return b, err
}

//UnreadByte steps back over the last byte returned by ReadByte.
func (C *Cursor) UnreadByte() error {
	if err := C.r.UnreadByte(); err != nil {
		return err
	}
	C.off--
	return nil
}

//Skip advances the cursor n bytes without returning them. Jumps larger than
//the buffered data are done with a seek, after checking the size of the
//underlying stream, so skipping past the end reports io.ErrUnexpectedEOF
//instead of silently landing beyond it.
func (C *Cursor) Skip(n int64) error {
	if n < 0 {
		return errors.New("cursor: negative skip")
	}
	if n <= int64(C.r.Buffered()) {
		d, err := C.r.Discard(int(n))
		C.off += int64(d)
		return err
	}
	target := C.off + n
	size, err := C.f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if target > size {
		target = size
		err = io.ErrUnexpectedEOF
	}
	if _, serr := C.f.Seek(target, io.SeekStart); serr != nil {
		return serr
	}
	C.r.Reset(C.f)
	C.off = target
	return err
}

//Token returns the next whitespace-delimited token. The delimiter that ends the
//token is left unread. It returns "" and io.EOF if only whitespace remains.
func (C *Cursor) Token() (string, error) {
	var b byte
	var err error
	C.eof = false
	for {
		b, err = C.ReadByte()
		if err != nil {
			C.eof = err == io.EOF
			return "", err
		}
		if !isSpace(b) {
			break
		}
	}
	C.tok = append(C.tok[:0], b)
	for {
		b, err = C.ReadByte()
		if err == io.EOF {
			C.eof = true
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			if err := C.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		C.tok = append(C.tok, b)
	}
	return string(C.tok), nil
}

//Line returns the rest of the current line, without the trailing newline, and
//leaves the cursor at the start of the next line. A final line without newline
//is returned with a nil error; io.EOF is returned only if nothing was left.
func (C *Cursor) Line() (string, error) {
	s, err := C.r.ReadString('\n')
	C.off += int64(len(s))
	C.eof = err == io.EOF
	if err == io.EOF && len(s) > 0 {
		err = nil
	}
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	return s, err
}

//SkipLine discards the rest of the current line, newline included, without
//allocating. It returns io.EOF only if nothing was left to discard.
func (C *Cursor) SkipLine() error {
	read := 0
	for {
		b, err := C.r.ReadSlice('\n')
		read += len(b)
		C.off += int64(len(b))
		C.eof = err == io.EOF
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == io.EOF && read > 0:
			return nil
		default:
			return err
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
