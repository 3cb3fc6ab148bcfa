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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Intersection is one result of a spatial query: the index of a box in
// the BoxArray and its overlap with the query box.
type Intersection struct {
	Index int
	Box   Box
}

// hashIndex returns the spatial hash of the store, building it first
// if necessary.
func (s *boxStore) hashIndex() (hash map[IntVect][]int, crsn IntVect, bbox Box) {
	if !s.hasHashIndex() {
		s.buildHash(ZeroVector())
	}
	return s.hash, s.crsn, s.bbox
}

// buildHash buckets every stored box by the cells of the index space
// coarsened by ratio that it touches. A zero ratio selects one from the
// mean box size. Building is serialized by buildMu and the result is
// published by setting hashReady, so concurrent readers either wait
// for the build or see the finished index.
func (s *boxStore) buildHash(ratio IntVect) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if s.hashReady.Load() {
		return
	}
	if ratio == ZeroVector() {
		ratio = hashRatio(s.boxes)
	}
	hash := make(map[IntVect][]int)
	bbox := EmptyBox()
	for i, b := range s.boxes {
		b = hashExtent(b)
		if i == 0 {
			bbox = b
		} else {
			bbox = bbox.MinBox(b)
		}
		forEachIndex(b.Coarsen(ratio), func(iv IntVect) bool {
			hash[iv] = append(hash[iv], i)
			return true
		})
	}
	s.hash, s.crsn, s.bbox = hash, ratio, bbox
	s.hashReady.Store(true)
	Log.WithFields(logrus.Fields{
		"boxes":   len(s.boxes),
		"buckets": len(hash),
		"ratio":   ratio,
	}).Debug("boxgrid: built box hash index")
}

// hashExtent returns the region a stored box is filed under. A stored
// box narrower than one cell still reads as a single layer of nodes
// through a node-centered transform, so it is filed under its low
// corner.
func hashExtent(b Box) Box {
	b.Hi = b.Hi.Max(b.Lo)
	return b
}

// hashRatio returns the rounded-up mean length of the stored boxes
// along each axis.
func hashRatio(boxes []Box) IntVect {
	var sum [SpaceDim]int64
	n := int64(0)
	for _, b := range boxes {
		for d, l := range hashExtent(b).Length() {
			sum[d] += int64(l)
		}
		n++
	}
	r := UnitVector()
	if n == 0 {
		return r
	}
	for d := range r {
		if m := int((sum[d] + n - 1) / n); m > 1 {
			r[d] = m
		}
	}
	return r
}

// forEachIndex calls fn for every index in b, with axis 0 varying
// fastest, until fn returns false.
func forEachIndex(b Box, fn func(IntVect) bool) {
	if !b.Ok() {
		return
	}
	iv := b.Lo
	for {
		if !fn(iv) {
			return
		}
		d := 0
		for ; d < SpaceDim; d++ {
			iv[d]++
			if iv[d] <= b.Hi[d] {
				break
			}
			iv[d] = b.Lo[d]
		}
		if d == SpaceDim {
			return
		}
	}
}

// Intersections returns every box in ba that, grown by ng, overlaps
// bx, together with the overlap. If firstOnly is true the search stops
// at the first hit. The order of the results is unspecified. bx must
// have the same index type as ba.
func (ba *BoxArray) Intersections(bx Box, firstOnly bool, ng IntVect) []Intersection {
	var isects []Intersection
	ba.intersections(bx, ng, -1, func(i int, isect Box) bool {
		isects = append(isects, Intersection{Index: i, Box: isect})
		return !firstOnly
	})
	return isects
}

// Intersects reports whether bx overlaps any box of ba grown by ng.
func (ba *BoxArray) Intersects(bx Box, ng IntVect) bool {
	found := false
	ba.intersections(bx, ng, -1, func(int, Box) bool {
		found = true
		return false
	})
	return found
}

// intersections is the query loop behind the public intersection
// methods. The box at index skip is never reported. fn returns false
// to stop the search.
func (ba *BoxArray) intersections(bx Box, ng IntVect, skip int, fn func(int, Box) bool) {
	s := ba.store()
	if len(s.boxes) == 0 || !bx.Ok() {
		return
	}
	if bx.Type != ba.IxType() {
		panic(fmt.Errorf("boxgrid: query box type %v does not match array type %v", bx.Type, ba.IxType()))
	}
	hash, crsn, bbox := s.hashIndex()
	if !bbox.Ok() {
		return
	}
	lo, hi := ba.bat.searchWindow(bx.Grow(ng))
	lo, hi = lo.Max(bbox.Lo), hi.Min(bbox.Hi)
	if !lo.AllLE(hi) {
		return
	}
	probe := Box{Lo: lo.Coarsen(crsn), Hi: hi.Coarsen(crsn)}
	forEachIndex(probe, func(key IntVect) bool {
		for _, i := range hash[key] {
			if i == skip {
				continue
			}
			stored := s.boxes[i]
			// A box sits in every bucket it touches; only report it from
			// the first of those inside the probe.
			if stored.Lo.Coarsen(crsn).Max(probe.Lo) != key {
				continue
			}
			isect := bx.Intersect(ba.bat.Apply(stored).Grow(ng))
			if isect.Ok() {
				if !fn(i, isect) {
					return false
				}
			}
		}
		return true
	})
}

// ClearHash discards the spatial hash so that it is rebuilt on the next
// query.
func (ba *BoxArray) ClearHash() {
	if ba.ref != nil {
		ba.ref.s.clearHash()
	}
}
