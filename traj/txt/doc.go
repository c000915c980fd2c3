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

//Package txt reads the text encoding of LAMMPS dump trajectories.

/******************** Format, as read by this package ***************************************************

A frame is a sequence of sections. Each section starts with the token "ITEM:" followed by a
keyword, and the sections of a frame look like this:

ITEM: UNITS             (optional, one token follows)
lj
ITEM: TIME              (optional, one token follows)
0.005
ITEM: TIMESTEP
1000
ITEM: NUMBER OF ATOMS
4000
ITEM: BOX BOUNDS pp pp pp
0.0 16.79
0.0 16.79
0.0 16.79
ITEM: ATOMS id type x y z
1 1 0.1 0.2 0.3
...

A triclinic box has "xy xz yz" before the boundary styles in the BOX line, and a third value,
the tilt factor, on each of the three box lines.

ITEM: ATOMS ends the header. The rest of its line names the columns, and exactly
natoms lines with one value per column follow.

Tokens are separated by any amount of whitespace, except that the ATOMS line and the lines
of the box are read as lines. A frame that starts with end of file, or with nothing but
whitespace, is the normal end of the trajectory.

*********************************************************************************************************/

package txt
