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

import "fmt"

// IndexType describes the centering of a box on each axis.
// Bit d is set when the box is node-centered on axis d; otherwise
// it is cell-centered on that axis. Boxes that are nodal on some but
// not all axes are face- or edge-centered.
type IndexType uint8

// CellType returns the cell-centered index type.
func CellType() IndexType { return 0 }

// NodeType returns the index type that is node-centered on every axis.
func NodeType() IndexType { return IndexType(1<<SpaceDim - 1) }

// IndexTypeFromVect converts a vector of 0 (cell) and 1 (node)
// flags into an IndexType. Any non-zero component is treated as nodal.
func IndexTypeFromVect(v IntVect) IndexType {
	var t IndexType
	for d, c := range v {
		if c != 0 {
			t = t.SetNodal(d)
		}
	}
	return t
}

// CellCentered reports whether t is cell-centered on every axis.
func (t IndexType) CellCentered() bool { return t == 0 }

// NodeCentered reports whether t is node-centered on every axis.
func (t IndexType) NodeCentered() bool { return t == NodeType() }

// Nodal reports whether t is node-centered on axis dir.
func (t IndexType) Nodal(dir int) bool { return t&(1<<uint(dir)) != 0 }

// SetNodal returns t made node-centered on axis dir.
func (t IndexType) SetNodal(dir int) IndexType { return t | 1<<uint(dir) }

// SetCell returns t made cell-centered on axis dir.
func (t IndexType) SetCell(dir int) IndexType { return t &^ (1 << uint(dir)) }

// IxType returns t as a vector of 0 (cell) and 1 (node) flags.
func (t IndexType) IxType() IntVect {
	var v IntVect
	for d := range v {
		if t.Nodal(d) {
			v[d] = 1
		}
	}
	return v
}

func (t IndexType) String() string { return t.IxType().String() }

// Side is the low or high side of an axis.
type Side int

// The two sides of an axis.
const (
	Low Side = iota
	High
)

// Orientation names one face of a box: an axis and a side.
type Orientation struct {
	Dir  int
	Side Side
}

// CoordDir returns the axis the face is perpendicular to.
func (o Orientation) CoordDir() int { return o.Dir }

// IsLow reports whether the face is on the low side of its axis.
func (o Orientation) IsLow() bool { return o.Side == Low }

// IsHigh reports whether the face is on the high side of its axis.
func (o Orientation) IsHigh() bool { return o.Side == High }

// Flip returns the opposite face on the same axis.
func (o Orientation) Flip() Orientation {
	if o.Side == Low {
		return Orientation{Dir: o.Dir, Side: High}
	}
	return Orientation{Dir: o.Dir, Side: Low}
}

func (o Orientation) String() string {
	if o.Side == Low {
		return fmt.Sprintf("lo%d", o.Dir)
	}
	return fmt.Sprintf("hi%d", o.Dir)
}
