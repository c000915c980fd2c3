/*
 * interfaces.go, part of trajectory-parser.
 *
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
 *
 */

package dump

import "github.com/M-S-Jacobs2727/trajectory-parser/internal/cursor"

//FrameReader is the encoding-specific part of a Parser. It works on the cursor it
//was built with, starting at whatever offset the Parser left the cursor on, which is
//always the start of a frame.
//All three methods report the normal end of the trajectory, that is, no more
//bytes where a frame should start, with an error that implements LastFrameError.
//Anything else that goes wrong is a ParseError.
type FrameReader interface {

	//Reads the whole frame and leaves the cursor at the start of the next one.
	ReadFrame() (*Frame, error)

	//Passes over one frame without keeping its values, leaving the cursor exactly
	//where ReadFrame would have left it. Returns the timestep of the skipped frame.
	SkipFrame() (int64, error)

	//Reads only as far as the timestep of the frame. The cursor is left inside the
	//frame, so the caller must seek back before reading or skipping it.
	PeekTimestep() (int64, error)
}

//ReaderMaker builds a FrameReader over the cursor of a Parser. The filename is only
//used to decorate errors. O holds the options the Parser was opened with, never nil.
type ReaderMaker func(c *cursor.Cursor, filename string, O *Options) FrameReader

//Errors

// Decorator is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Decorator interface {
	Error() string
	Decorate(string) []string //Adds the caller's name to the trail. Passing an empty string just returns the current trail.
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Decorator
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so  they can be
// filtered in a typeswith that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
