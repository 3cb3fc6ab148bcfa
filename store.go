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
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// boxStore holds the untransformed boxes shared by one or more
// BoxArray handles, along with a spatial hash of those boxes that is
// built on first use.
//
// Boxes are always stored cell-centered; the index type lives in the
// Transform of each handle.
type boxStore struct {
	boxes []Box

	// refs counts the handles sharing the store. A handle may only
	// modify boxes in place when it holds the only reference.
	refs atomic.Int32

	// The fields below are written only while buildMu is held and are
	// published to readers by hashReady.
	buildMu   sync.Mutex
	hashReady atomic.Bool
	bbox      Box     // bounding box of the stored boxes
	crsn      IntVect // hash bucket size
	hash      map[IntVect][]int
}

func newStore(boxes []Box) *boxStore {
	s := &boxStore{boxes: boxes}
	s.refs.Store(1)
	return s
}

// hasHashIndex reports whether the spatial hash is ready to use. It is
// safe to call from concurrent readers.
func (s *boxStore) hasHashIndex() bool { return s.hashReady.Load() }

// clearHash drops the spatial hash. The caller must own the store
// exclusively.
func (s *boxStore) clearHash() {
	s.buildMu.Lock()
	s.hashReady.Store(false)
	s.hash = nil
	s.buildMu.Unlock()
}

// define replaces the contents of an empty store.
func (s *boxStore) define(boxes []Box) {
	if len(s.boxes) != 0 {
		panic("boxgrid: store already defined; clear it first")
	}
	s.boxes = boxes
	s.clearHash()
}

// resize truncates the box sequence or extends it with empty boxes.
func (s *boxStore) resize(n int) {
	switch {
	case n <= len(s.boxes):
		s.boxes = s.boxes[:n]
	case n <= cap(s.boxes):
		old := len(s.boxes)
		s.boxes = s.boxes[:n]
		for i := old; i < n; i++ {
			s.boxes[i] = EmptyBox()
		}
	default:
		grown := make([]Box, n)
		copy(grown, s.boxes)
		for i := len(s.boxes); i < n; i++ {
			grown[i] = EmptyBox()
		}
		s.boxes = grown
	}
	s.clearHash()
}

// clone returns a private deep copy of the boxes with no spatial hash.
func (s *boxStore) clone() *boxStore {
	boxes := make([]Box, len(s.boxes))
	copy(boxes, s.boxes)
	Log.WithFields(logrus.Fields{
		"boxes": len(boxes),
		"refs":  s.refs.Load(),
	}).Debug("boxgrid: copying shared box store")
	return newStore(boxes)
}

func (s *boxStore) retain() { s.refs.Add(1) }

func (s *boxStore) release() { s.refs.Add(-1) }

// unique reports whether the caller holds the only reference.
func (s *boxStore) unique() bool { return s.refs.Load() <= 1 }
