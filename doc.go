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

/*Package dump gives random access to LAMMPS dump trajectories, by frame position or by
simulation timestep, without loading the whole file.

	**Capabilities**

    Reads the text ("dump custom"/"dump atom") and the binary dump encodings. The
	format readers live in traj/txt and traj/bin; traj.Open picks one from the file name.

    Builds the frame index lazily. Only as much of the file as a request needs is
	visited, and frames that are only passed over are skipped without parsing
	their atom data.

    Follows files that are still being written: a Parser that reached the end of a
	trajectory can be Refresh-ed and will continue from the last frame it saw. A last
	frame that is only partly written is left out of the index until it is whole.

    Reads gzip, zstd and lz4 compressed dumps, by inflating them once into a
	temporary spool file.

    Frames expose their per-atom table as a flat row-major slice and as gonum
	mat.Dense views, with column selection by name.

A Parser is meant for a single goroutine. Guard it with a lock if it has to be shared.

*/
package dump
