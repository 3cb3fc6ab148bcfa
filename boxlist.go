/*
Copyright © 2026 the boxgrid authors.
This file is part of boxgrid.

boxgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

boxgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with boxgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package boxgrid

import (
	"sort"
	"strings"
)

// BoxList is a plain sequence of boxes. Unlike a BoxArray it has no
// shared storage and no spatial index; it is the result type of the
// set operations.
type BoxList []Box

// NumPts returns the total number of indices in the list.
func (bl BoxList) NumPts() int64 {
	var n int64
	for _, b := range bl {
		n += b.NumPts()
	}
	return n
}

// MinimalBox returns the smallest box containing every box in the
// list, or an empty box if the list is empty.
func (bl BoxList) MinimalBox() Box {
	if len(bl) == 0 {
		return EmptyBox()
	}
	mb := bl[0]
	for _, b := range bl[1:] {
		mb = mb.MinBox(b)
	}
	return mb
}

// ContainsPoint reports whether any box in the list contains p.
func (bl BoxList) ContainsPoint(p IntVect) bool {
	for _, b := range bl {
		if b.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// MaxSize chops every box so that no box is longer than block on any
// axis. Pieces along an axis differ in length by at most one.
func (bl BoxList) MaxSize(block IntVect) BoxList {
	out := make(BoxList, 0, len(bl))
	for _, b := range bl {
		typ := b.Type
		pieces := BoxList{b.EnclosedCells()}
		for d := 0; d < SpaceDim; d++ {
			pieces = chopDir(pieces, d, block[d])
		}
		for _, p := range pieces {
			out = append(out, p.Convert(typ))
		}
	}
	return out
}

func chopDir(in BoxList, dir, block int) BoxList {
	out := make(BoxList, 0, len(in))
	for _, b := range in {
		n := b.Hi[dir] - b.Lo[dir] + 1
		if block <= 0 || n <= block {
			out = append(out, b)
			continue
		}
		nblk := (n + block - 1) / block
		size, extra := n/nblk, n%nblk
		lo := b.Lo[dir]
		for k := 0; k < nblk; k++ {
			sz := size
			if k < extra {
				sz++
			}
			p := b
			p.Lo[dir] = lo
			p.Hi[dir] = lo + sz - 1
			out = append(out, p)
			lo += sz
		}
	}
	return out
}

// Simplify merges boxes that share a complete face until no more
// merges are possible. It returns the number of merges performed.
func (bl *BoxList) Simplify() int {
	total := 0
	for {
		n := 0
		for d := 0; d < SpaceDim; d++ {
			n += bl.simplifyDir(d)
		}
		if n == 0 {
			return total
		}
		total += n
	}
}

func (bl *BoxList) simplifyDir(dir int) int {
	boxes := *bl
	if len(boxes) < 2 {
		return 0
	}
	sort.Slice(boxes, func(i, j int) bool {
		a, b := boxes[i], boxes[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		for d := 0; d < SpaceDim; d++ {
			if d == dir {
				continue
			}
			if a.Lo[d] != b.Lo[d] {
				return a.Lo[d] < b.Lo[d]
			}
			if a.Hi[d] != b.Hi[d] {
				return a.Hi[d] < b.Hi[d]
			}
		}
		return a.Lo[dir] < b.Lo[dir]
	})
	merged := 0
	out := boxes[:1]
	for _, b := range boxes[1:] {
		cur := &out[len(out)-1]
		if faceAdjacent(*cur, b, dir) {
			cur.Hi[dir] = b.Hi[dir]
			merged++
			continue
		}
		out = append(out, b)
	}
	*bl = out
	return merged
}

// faceAdjacent reports whether b begins exactly where a ends along dir
// and the two boxes have identical extents on every other axis.
func faceAdjacent(a, b Box, dir int) bool {
	if a.Type != b.Type {
		return false
	}
	for d := 0; d < SpaceDim; d++ {
		if d == dir {
			continue
		}
		if a.Lo[d] != b.Lo[d] || a.Hi[d] != b.Hi[d] {
			return false
		}
	}
	gap := 1
	if a.Type.Nodal(dir) {
		gap = 0
	}
	return b.Lo[dir] == a.Hi[dir]+gap
}

func (bl BoxList) String() string {
	s := make([]string, len(bl))
	for i, b := range bl {
		s[i] = b.String()
	}
	return "[" + strings.Join(s, " ") + "]"
}
