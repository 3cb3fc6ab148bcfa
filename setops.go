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

// BoxComplement returns the indices of b1 that are not in b2.
func BoxComplement(b1, b2 Box) BoxList {
	return BoxDiff(b1, b2)
}

// ComplementIn returns the indices of b that are not in any box of ba.
func ComplementIn(b Box, ba *BoxArray) BoxList {
	return ba.ComplementIn(b)
}

// Intersect returns the overlaps of b with every box of ba grown by ng.
func Intersect(ba *BoxArray, b Box, ng IntVect) BoxList {
	isects := ba.Intersections(b, false, ng)
	out := make(BoxList, len(isects))
	for i, isect := range isects {
		out[i] = isect.Box
	}
	return out
}

// IntersectArrays returns the overlaps between the boxes of a and the
// boxes of b.
func IntersectArrays(a, b *BoxArray) BoxList {
	var out BoxList
	for _, bx := range b.Boxes() {
		out = append(out, Intersect(a, bx, ZeroVector())...)
	}
	return out
}

// IntersectList returns the overlaps between the boxes of ba and the
// boxes of bl.
func IntersectList(ba *BoxArray, bl BoxList) BoxList {
	var out BoxList
	for _, bx := range bl {
		out = append(out, Intersect(ba, bx, ZeroVector())...)
	}
	return out
}

// Convert returns a copy of ba with its boxes converted to typ.
func Convert(ba *BoxArray, typ IndexType) *BoxArray {
	out := ba.Clone()
	out.Convert(typ)
	return out
}

// Coarsen returns a copy of ba with its boxes coarsened by ratio.
func Coarsen(ba *BoxArray, ratio IntVect) *BoxArray {
	out := ba.Clone()
	out.Coarsen(ratio)
	return out
}

// Refine returns a copy of ba with its boxes refined by ratio.
func Refine(ba *BoxArray, ratio IntVect) *BoxArray {
	out := ba.Clone()
	out.Refine(ratio)
	return out
}

// Match reports whether x and y present the same boxes in the same
// order. Their storage and transforms may differ.
func Match(x, y *BoxArray) bool { return x.Equal(y) }

// GetBndryCells returns the indices within ngrow cells of the boxes of
// ba that are not themselves covered by ba, as a disjoint list of boxes
// of the array's index type.
func GetBndryCells(ba *BoxArray, ngrow int) BoxList {
	typ := ba.IxType()
	cells := Convert(ba, CellType())
	var ghosts BoxList
	for _, b := range cells.Boxes() {
		ghosts = append(ghosts, cells.ComplementIn(b.Grow(Uniform(ngrow)))...)
	}
	if len(ghosts) == 0 {
		return nil
	}
	uniq := NewBoxArrayFromList(ghosts)
	uniq.RemoveOverlap(false)
	out := uniq.BoxList()
	for i, b := range out {
		out[i] = b.Convert(typ)
	}
	return out
}
