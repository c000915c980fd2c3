/*
 * parser.go, part of trajectory-parser.
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
	"math"

	"github.com/M-S-Jacobs2727/trajectory-parser/internal/cursor"
)

//Parser gives random access to the frames of one dump file. It owns the open file,
//the cursor over it and the frame index. The same engine serves both encodings;
//only the FrameReader changes.
//A Parser is not safe for concurrent use.
type Parser struct {
	filename string
	src      *source
	cur      *cursor.Cursor
	rd       FrameReader
	idx      *index
	opts     *Options
	pending  bool //the frame at the frontier was found cut short
}

//NewParser opens filename and prepares it to be read with the FrameReader built
//by mk. Only the first Options given is used; DefaultOptions() if none.
//Nothing beyond the head of the file is read until a frame is requested.
func NewParser(filename string, mk ReaderMaker, opts ...*Options) (*Parser, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	src, err := openSource(filename, O)
	if err != nil {
		return nil, Decorate(err, "NewParser")
	}
	cur, err := cursor.New(src.file, O.BufferSize())
	if err != nil {
		src.close()
		return nil, NewError(OpenError, filename, -1, "unable to position file", "NewParser").Wrap(err)
	}
	P := &Parser{
		filename: filename,
		src:      src,
		cur:      cur,
		opts:     O,
		idx:      newIndex(cur.Offset()),
	}
	P.rd = mk(cur, filename, O)
	return P, nil
}

//Filename returns the name the Parser was opened with.
func (P *Parser) Filename() string {
	return P.filename
}

//Len returns the number of frames whose start is known. Before the index is
//complete this includes the frontier, which may turn out to be the end of the file.
func (P *Parser) Len() int {
	return P.idx.Len()
}

//Complete returns true once the end of the file has been seen at a frame boundary.
//From then on Len is the number of frames in the file.
func (P *Parser) Complete() bool {
	return P.idx.complete
}

//Offsets returns a copy of the frame start offsets known so far.
func (P *Parser) Offsets() []int64 {
	return append([]int64(nil), P.idx.offsets...)
}

//Timesteps returns a copy of the timesteps of the frames visited so far.
func (P *Parser) Timesteps() []int64 {
	return append([]int64(nil), P.idx.timesteps...)
}

//Pending returns true if the last attempt to read the frame at the frontier ran
//into the end of the file part way through it. That is what a file still being
//written looks like: the frame is not indexed, and the next Scan, Load or
//LoadTimestep tries it again.
func (P *Parser) Pending() bool {
	return P.pending
}

//partial returns true if err is a frame that ended early. Only at the frontier
//does that mean anything other than a broken file.
func partial(err error) bool {
	return IsKind(err, ParseError) && errors.Is(err, io.ErrUnexpectedEOF)
}

//cutShort logs and records that the frame at the frontier is not whole yet.
func (P *Parser) cutShort(err error) {
	if !P.pending {
		start, _ := P.idx.frontier()
		P.opts.Logger().Printf("Frame %d of %s, at byte %d, is incomplete. Treating it as not written yet: %s", P.idx.Len()-1, P.filename, start, err)
	}
	P.pending = true
}

//Close releases the file, and the spool file if there is one. The Parser can't be used afterwards.
func (P *Parser) Close() error {
	return P.src.close()
}

func (P *Parser) seek(off int64, caller string) error {
	if err := P.cur.Seek(off); err != nil {
		return NewError(ParseError, P.filename, off, "unable to seek", "cursor.Seek", caller).Wrap(err)
	}
	return nil
}

//extend records the frame that just ended at the cursor.
func (P *Parser) extend(ts int64, caller string) error {
	if err := P.idx.extend(P.cur.Offset(), ts); err != nil {
		return NewError(Inconsistency, P.filename, P.cur.Offset(), err.Error(), caller)
	}
	P.pending = false
	return nil
}

//finish marks the index complete; the end of the file was found at a frame boundary.
func (P *Parser) finish() {
	P.idx.finish()
	P.pending = false
}

//ScanAll indexes the whole file, as far as it currently goes.
func (P *Parser) ScanAll() error {
	return Decorate(P.Scan(math.MaxInt), "ScanAll")
}

//Scan extends the index until the start of frame n is known, or the file ends.
//It does nothing, and no I/O, if the index is complete or already reaches n.
//If the file ends inside the frame at the frontier, Scan stops there without
//error and leaves the index open; see Pending.
func (P *Parser) Scan(n int) error {
	if P.idx.complete || n < P.idx.Len() {
		return nil
	}
	start, _ := P.idx.frontier()
	if err := P.seek(start, "Scan"); err != nil {
		return err
	}
	for !P.idx.complete && P.idx.Len() <= n {
		ts, err := P.rd.SkipFrame()
		if err != nil {
			if IsLastFrame(err) {
				P.finish()
				break
			}
			if partial(err) {
				P.cutShort(err)
				break
			}
			return Decorate(err, "Scan")
		}
		if err := P.extend(ts, "Scan"); err != nil {
			return err
		}
	}
	return nil
}

//Load returns frame i, counting from 0. It returns nil and no error if the file
//ends before frame i, or inside it when i is the frontier.
func (P *Parser) Load(i int) (*Frame, error) {
	if i < 0 {
		return nil, NewError(NotFound, P.filename, -1, fmt.Sprintf("negative frame index %d", i), "Load")
	}
	if i >= P.idx.Len() {
		if err := P.Scan(i); err != nil {
			return nil, Decorate(err, "Load")
		}
		if i >= P.idx.Len() {
			return nil, nil
		}
	}
	off := P.idx.offsets[i]
	if err := P.seek(off, "Load"); err != nil {
		return nil, err
	}
	f, err := P.rd.ReadFrame()
	atFrontier := !P.idx.complete && i == P.idx.Len()-1
	if err != nil {
		if atFrontier && partial(err) {
			P.cutShort(err)
			return nil, nil
		}
		if !IsLastFrame(err) {
			return nil, Decorate(err, "Load")
		}
		if !atFrontier {
			return nil, NewError(Inconsistency, P.filename, off, fmt.Sprintf("indexed frame %d is no longer in the file", i), "Load")
		}
		P.finish()
		return nil, nil
	}
	switch {
	case i == P.idx.Visited() && !P.idx.complete:
		if err := P.extend(f.Timestep, "Load"); err != nil {
			return nil, err
		}
	case i < P.idx.Visited() && P.idx.timesteps[i] != f.Timestep:
		return nil, NewError(Inconsistency, P.filename, off, fmt.Sprintf("timestep of frame %d changed", i), "Load").
			Tokens(fmt.Sprint(P.idx.timesteps[i]), fmt.Sprint(f.Timestep))
	}
	return f, nil
}

//LoadTimestep returns the frame with timestep t. Timesteps are assumed to never
//decrease along the file.
//It returns a NotFound error if the file has no such frame as far as it currently
//goes. If that is because the file ended, at a frame boundary or inside the frame at
//the frontier, the error wraps io.EOF, and the frame may still show up once the file
//grows. If a later timestep was found first it doesn't. If the index already holds a
//later timestep but not t, the error is an Inconsistency.
func (P *Parser) LoadTimestep(t int64) (*Frame, error) {
	if pos, ok := P.idx.search(t); ok {
		if got := P.idx.timesteps[pos]; got != t {
			return nil, NewError(Inconsistency, P.filename, P.idx.offsets[pos], fmt.Sprintf("index has no timestep %d at frame %d", t, pos), "LoadTimestep").
				Tokens(fmt.Sprint(t), fmt.Sprint(got))
		}
		return P.Load(pos)
	}
	notFound := func(atEnd bool) (*Frame, error) {
		E := NewError(NotFound, P.filename, -1, fmt.Sprintf("timestep %d not in file", t), "LoadTimestep")
		if atEnd {
			E.Wrap(io.EOF)
		}
		return nil, E
	}
	for {
		start, ok := P.idx.frontier()
		if !ok {
			return notFound(true)
		}
		if err := P.seek(start, "LoadTimestep"); err != nil {
			return nil, err
		}
		ts, err := P.rd.PeekTimestep()
		if err != nil {
			if IsLastFrame(err) {
				P.finish()
				return notFound(true)
			}
			if partial(err) {
				P.cutShort(err)
				return notFound(true)
			}
			return nil, Decorate(err, "LoadTimestep")
		}
		if ts > t {
			return notFound(false)
		}
		if ts == t {
			f, err := P.Load(P.idx.Len() - 1)
			if err == nil && f == nil {
				return notFound(true)
			}
			return f, Decorate(err, "LoadTimestep")
		}
		if err := P.seek(start, "LoadTimestep"); err != nil {
			return nil, err
		}
		if _, err := P.rd.SkipFrame(); err != nil {
			if partial(err) {
				P.cutShort(err)
				return notFound(true)
			}
			return nil, Decorate(err, "LoadTimestep")
		}
		if err := P.extend(ts, "LoadTimestep"); err != nil {
			return nil, err
		}
	}
}

//Refresh prepares the Parser to follow a file that is still being written. If the
//index was complete, its last end offset becomes the frontier again, so the next
//Scan, Load or LoadTimestep goes on from there. It returns an Inconsistency error if
//the head of the file is no longer what it was when it was opened, in which case the
//index can't be trusted.
//Spooled (compressed) files never grow, so Refresh does nothing for them.
func (P *Parser) Refresh() error {
	changed, err := P.src.changed()
	if err != nil {
		return NewError(ParseError, P.filename, 0, "unable to read file head", "fingerprint", "Refresh").Wrap(err)
	}
	if changed {
		return NewError(Inconsistency, P.filename, 0, "file was replaced or rewritten since it was opened", "Refresh")
	}
	if P.idx.complete && P.src.spool == "" {
		P.opts.Logger().Printf("Reopening the index of %s after %d frames", P.filename, P.idx.Len())
		P.idx.reopen()
	}
	return nil
}
