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

// Box is an axis-aligned rectangle in integer index space. Lo and Hi
// are both inclusive. Type gives the centering of the indices on each
// axis.
type Box struct {
	Lo, Hi IntVect
	Type   IndexType
}

// NewBox returns a cell-centered box spanning lo to hi.
func NewBox(lo, hi IntVect) Box { return Box{Lo: lo, Hi: hi} }

// EmptyBox returns a cell-centered box containing no indices.
func EmptyBox() Box { return Box{Lo: UnitVector(), Hi: ZeroVector()} }

// Ok reports whether the box is non-empty.
func (b Box) Ok() bool { return b.Lo.AllLE(b.Hi) }

// Length returns the number of indices along each axis.
func (b Box) Length() IntVect { return b.Hi.Sub(b.Lo).Add(UnitVector()) }

// Size is the same as Length.
func (b Box) Size() IntVect { return b.Length() }

// NumPts returns the number of indices in the box, or 0 if the box
// is empty.
func (b Box) NumPts() int64 {
	if !b.Ok() {
		return 0
	}
	return b.Length().Product()
}

// DNumPts is NumPts accumulated in floating point.
func (b Box) DNumPts() float64 {
	if !b.Ok() {
		return 0
	}
	n := 1.0
	for _, l := range b.Length() {
		n *= float64(l)
	}
	return n
}

// ContainsPoint reports whether p is inside the box.
func (b Box) ContainsPoint(p IntVect) bool {
	return b.Lo.AllLE(p) && p.AllLE(b.Hi)
}

// Contains reports whether o is entirely inside b. Both boxes must
// have the same index type.
func (b Box) Contains(o Box) bool {
	mustSameType(b, o)
	return b.Lo.AllLE(o.Lo) && o.Hi.AllLE(b.Hi)
}

// Intersects reports whether b and o share at least one index. Both
// boxes must have the same index type.
func (b Box) Intersects(o Box) bool {
	mustSameType(b, o)
	return b.Lo.Max(o.Lo).AllLE(b.Hi.Min(o.Hi))
}

// Intersect returns the intersection of b and o, which is empty
// (not Ok) if they do not overlap.
func (b Box) Intersect(o Box) Box {
	mustSameType(b, o)
	return Box{Lo: b.Lo.Max(o.Lo), Hi: b.Hi.Min(o.Hi), Type: b.Type}
}

// MinBox returns the smallest box containing both b and o.
func (b Box) MinBox(o Box) Box {
	mustSameType(b, o)
	return Box{Lo: b.Lo.Min(o.Lo), Hi: b.Hi.Max(o.Hi), Type: b.Type}
}

// Grow extends the box by n[d] indices on both sides of each axis.
// Negative values shrink it.
func (b Box) Grow(n IntVect) Box {
	b.Lo = b.Lo.Sub(n)
	b.Hi = b.Hi.Add(n)
	return b
}

// GrowDir extends the box by n indices on both sides of axis dir.
func (b Box) GrowDir(dir, n int) Box {
	b.Lo[dir] -= n
	b.Hi[dir] += n
	return b
}

// GrowLo extends the low end of axis dir by n indices.
func (b Box) GrowLo(dir, n int) Box {
	b.Lo[dir] -= n
	return b
}

// GrowHi extends the high end of axis dir by n indices.
func (b Box) GrowHi(dir, n int) Box {
	b.Hi[dir] += n
	return b
}

// Shift translates the box by v.
func (b Box) Shift(v IntVect) Box {
	b.Lo = b.Lo.Add(v)
	b.Hi = b.Hi.Add(v)
	return b
}

// Refine maps the box to an index space ratio times finer.
func (b Box) Refine(ratio IntVect) Box {
	for d := range b.Lo {
		b.Lo[d] *= ratio[d]
		if b.Type.Nodal(d) {
			b.Hi[d] *= ratio[d]
		} else {
			b.Hi[d] = (b.Hi[d]+1)*ratio[d] - 1
		}
	}
	return b
}

// Coarsen maps the box to an index space ratio times coarser. On
// node-centered axes the high end is rounded up so that the coarse box
// still covers every fine node.
func (b Box) Coarsen(ratio IntVect) Box {
	for d := range b.Lo {
		b.Lo[d] = floorDiv(b.Lo[d], ratio[d])
		if b.Type.Nodal(d) {
			hi := floorDiv(b.Hi[d], ratio[d])
			if hi*ratio[d] != b.Hi[d] {
				hi++
			}
			b.Hi[d] = hi
		} else {
			b.Hi[d] = floorDiv(b.Hi[d], ratio[d])
		}
	}
	return b
}

// Coarsenable reports whether the box can be coarsened by ratio
// without loss and the result is at least minWidth wide on every axis.
func (b Box) Coarsenable(ratio, minWidth IntVect) bool {
	if !b.Length().AllGE(ratio.Mul(minWidth)) {
		return false
	}
	return b.Coarsen(ratio).Refine(ratio) == b
}

// Convert changes the index type of the box. Converting a cell axis to
// a node axis adds one to the high end; the reverse removes it.
func (b Box) Convert(t IndexType) Box {
	for d := range b.Lo {
		from, to := b.Type.Nodal(d), t.Nodal(d)
		switch {
		case !from && to:
			b.Hi[d]++
		case from && !to:
			b.Hi[d]--
		}
	}
	b.Type = t
	return b
}

// SurroundingNodes converts the box to node-centering on every axis.
func (b Box) SurroundingNodes() Box { return b.Convert(NodeType()) }

// SurroundingNodesDir converts the box to node-centering on axis dir.
func (b Box) SurroundingNodesDir(dir int) Box { return b.Convert(b.Type.SetNodal(dir)) }

// EnclosedCells converts the box to cell-centering on every axis.
func (b Box) EnclosedCells() Box { return b.Convert(CellType()) }

// EnclosedCellsDir converts the box to cell-centering on axis dir.
func (b Box) EnclosedCellsDir(dir int) Box { return b.Convert(b.Type.SetCell(dir)) }

func (b Box) String() string {
	return fmt.Sprintf("(%v %v %v)", b.Lo, b.Hi, b.Type.IxType())
}

// BoxDiff returns b1 with b2 removed, as a list of disjoint boxes.
func BoxDiff(b1, b2 Box) BoxList {
	if !b1.Ok() {
		return nil
	}
	if !b1.Intersects(b2) {
		return BoxList{b1}
	}
	var out BoxList
	lo, hi := b1.Lo, b1.Hi
	for d := range lo {
		if b2.Lo[d] > lo[d] {
			piece := Box{Lo: lo, Hi: hi, Type: b1.Type}
			piece.Hi[d] = b2.Lo[d] - 1
			out = append(out, piece)
			lo[d] = b2.Lo[d]
		}
		if b2.Hi[d] < hi[d] {
			piece := Box{Lo: lo, Hi: hi, Type: b1.Type}
			piece.Lo[d] = b2.Hi[d] + 1
			out = append(out, piece)
			hi[d] = b2.Hi[d]
		}
	}
	return out
}

func mustSameType(a, b Box) {
	if a.Type != b.Type {
		panic(fmt.Errorf("boxgrid: mismatched index types %v and %v", a.Type, b.Type))
	}
}
