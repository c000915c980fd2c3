/*
 * index.go, part of trajectory-parser.
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

import "fmt"

//index is the append-only record of where frames start. offsets[i] is the first
//byte of frame i and timesteps[i] its timestep.
//While the file is not complete, the last offset is the frontier: the end of the
//last visited frame, where the next frame should start. It has no timestep yet,
//so len(timesteps) == len(offsets)-1. Once the end of the file is seen at the
//frontier, the frontier is popped (and kept as tail) and both lengths are equal.
type index struct {
	offsets   []int64
	timesteps []int64
	tail      int64
	complete  bool
}

func newIndex(start int64) *index {
	return &index{offsets: []int64{start}, tail: start}
}

//Len returns the number of frames with a known start, the frontier included.
func (I *index) Len() int {
	return len(I.offsets)
}

//Visited returns the number of frames whose timestep is known.
func (I *index) Visited() int {
	return len(I.timesteps)
}

//frontier returns the offset where the next unvisited frame should start.
//ok is false once the index is complete.
func (I *index) frontier() (off int64, ok bool) {
	if I.complete {
		return I.tail, false
	}
	return I.offsets[len(I.offsets)-1], true
}

//extend records that the frontier frame has timestep ts and ends at end,
//which becomes the new frontier.
func (I *index) extend(end, ts int64) error {
	start, ok := I.frontier()
	if !ok {
		return fmt.Errorf("index already complete")
	}
	if end <= start {
		return fmt.Errorf("frame %d ends at %d, not after its start at %d", len(I.timesteps), end, start)
	}
	I.timesteps = append(I.timesteps, ts)
	I.offsets = append(I.offsets, end)
	return nil
}

//finish drops the frontier, which turned out to be the end of the file.
func (I *index) finish() {
	if I.complete {
		return
	}
	I.tail = I.offsets[len(I.offsets)-1]
	I.offsets = I.offsets[:len(I.offsets)-1]
	I.complete = true
}

//reopen undoes finish, so scanning can go on if the file grew.
func (I *index) reopen() {
	if !I.complete {
		return
	}
	I.offsets = append(I.offsets, I.tail)
	I.complete = false
}

//search returns the position of the first recorded timestep that is >= t.
//ok is false if there is none.
func (I *index) search(t int64) (pos int, ok bool) {
	for i, v := range I.timesteps {
		if v >= t {
			return i, true
		}
	}
	return -1, false
}
