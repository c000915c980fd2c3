/*
 * doc.go, part of trajectory-parser.
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

//Package bin reads the binary encoding of LAMMPS dump trajectories,
//as written by the "dump atom/binary" and "dump custom/binary" styles.

/******************** Format, as read by this package ***************************************************

All numbers are little-endian. A frame is:

int64            timestep. If negative, the frame starts with a header, and -timestep is
                 the length of the magic string that follows:
  [len]byte        magic string ("DUMPATOM" or "DUMPCUSTOM")
  int32            endianness marker, must be 1
  int32            format revision
  int64            the actual timestep
int64            natoms
int32            triclinic, 0 or 1
[6 x int32]      boundary flags, lo and hi for each axis: 0=p 1=f 2=s 3=m.
                 Only read if Options.BoundaryFlags() is true.
6 x float64      xlo xhi ylo yhi zlo zhi
3 x float64      xy xz yz, only if triclinic
int32            ncols
if revision > 1:
  int32 + bytes    units string
  uint8            1 if a float64 time follows
  float64          time
  int32 + bytes    column names, separated by spaces
int32            nchunks
nchunks times:
  int32            n
  n x float64      atom data, row by row

The data of all the chunks together is natoms*ncols values. Files without a
column name string get columns named c1, c2... Frames read without
boundary flags leave Frame.Boundary empty.

*********************************************************************************************************/

package bin
