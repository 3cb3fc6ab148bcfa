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

// TransformKind identifies the shape of a Transform.
type TransformKind uint8

// The closed set of Transform shapes.
const (
	// TransformNull returns stored boxes unchanged.
	TransformNull TransformKind = iota
	// TransformIndexType converts stored boxes to another index type.
	TransformIndexType
	// TransformCoarsenRatio coarsens stored boxes.
	TransformCoarsenRatio
	// TransformIndexTypeCoarsenRatio coarsens, then converts.
	TransformIndexTypeCoarsenRatio
	// TransformBoundary maps each box to a patch straddling one of its faces.
	TransformBoundary
)

func (k TransformKind) String() string {
	switch k {
	case TransformNull:
		return "null"
	case TransformIndexType:
		return "indexType"
	case TransformCoarsenRatio:
		return "coarsenRatio"
	case TransformIndexTypeCoarsenRatio:
		return "indexType+coarsenRatio"
	case TransformBoundary:
		return "boundary"
	default:
		return fmt.Sprintf("TransformKind(%d)", uint8(k))
	}
}

// Transform is a deferred mapping applied to every box read out of a
// BoxArray's storage. It is a value type; the zero value is the null
// transform with a ratio of one.
//
// Which fields are meaningful depends on kind. The boundary fields are
// only read when kind is TransformBoundary.
type Transform struct {
	kind  TransformKind
	typ   IndexType
	ratio IntVect // zero means unit

	face           Orientation
	loShft, hiShft IntVect
	doiLo, doiHi   IntVect
}

// NewTransform returns the transform that converts cell-centered
// boxes to index type t.
func NewTransform(t IndexType) Transform {
	if t.CellCentered() {
		return Transform{}
	}
	return Transform{kind: TransformIndexType, typ: t}
}

// NewBoundaryTransform returns a transform that maps each box to the
// region around its face. For a face on a cell-centered axis of typ the
// region extends inRad indices into the box and outRad indices out of
// it. On a node-centered axis it is the single layer of nodes on the
// face. Every other axis is widened by extentRad.
func NewBoundaryTransform(face Orientation, typ IndexType, inRad, outRad, extentRad int) Transform {
	t := Transform{
		kind:   TransformBoundary,
		typ:    typ,
		ratio:  UnitVector(),
		face:   face,
		loShft: Uniform(-extentRad),
		hiShft: Uniform(extentRad),
	}
	nodal := typ.IxType()
	t.hiShft = t.hiShft.Add(nodal)
	d := face.CoordDir()
	if nodal[d] != 0 {
		if face.IsLow() {
			t.loShft[d] = 0
			t.hiShft[d] = 0
		} else {
			t.loShft[d] = 1
			t.hiShft[d] = 1
		}
		t.doiLo = ZeroVector()
		t.doiHi = nodal
		return t
	}
	if face.IsLow() {
		t.loShft[d] = nodal[d] - outRad
		t.hiShft[d] = nodal[d] + inRad - 1
	} else {
		t.loShft[d] = 1 - inRad
		t.hiShft[d] = outRad
	}
	t.doiLo = Uniform(extentRad)
	t.doiHi = Uniform(extentRad).Add(nodal)
	if face.IsLow() {
		t.doiLo[d] = outRad
		t.doiHi[d] = 0
	} else {
		t.doiLo[d] = 0
		t.doiHi[d] = outRad
	}
	return t
}

// Kind returns the shape of the transform.
func (t Transform) Kind() TransformKind { return t.kind }

// Apply maps a stored box to the box seen through the transform.
func (t Transform) Apply(b Box) Box {
	switch t.kind {
	case TransformNull:
		return b
	case TransformIndexType:
		return b.Convert(t.typ)
	case TransformCoarsenRatio:
		return b.Coarsen(t.ratio)
	case TransformIndexTypeCoarsenRatio:
		return b.Coarsen(t.ratio).Convert(t.typ)
	case TransformBoundary:
		lo := b.Lo.Coarsen(t.ratio)
		hi := b.Hi.Coarsen(t.ratio)
		d := t.face.CoordDir()
		if t.face.IsLow() {
			hi[d] = lo[d]
		} else {
			lo[d] = hi[d]
		}
		return Box{Lo: lo.Add(t.loShft), Hi: hi.Add(t.hiShft), Type: t.typ}
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// CoarsenOnly applies only the coarsening ratio of the transform,
// leaving the index type of b unchanged.
func (t Transform) CoarsenOnly(b Box) Box {
	switch t.kind {
	case TransformNull, TransformIndexType:
		return b
	case TransformCoarsenRatio, TransformIndexTypeCoarsenRatio, TransformBoundary:
		return b.Coarsen(t.ratio)
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// DoiLo returns how far the transformed box reaches below the low end
// of the coarsened stored box.
func (t Transform) DoiLo() IntVect {
	switch t.kind {
	case TransformNull, TransformIndexType, TransformCoarsenRatio, TransformIndexTypeCoarsenRatio:
		return ZeroVector()
	case TransformBoundary:
		return t.doiLo
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// DoiHi returns how far the transformed box reaches above the high end
// of the coarsened stored box.
func (t Transform) DoiHi() IntVect {
	switch t.kind {
	case TransformNull, TransformCoarsenRatio:
		return ZeroVector()
	case TransformIndexType, TransformIndexTypeCoarsenRatio:
		return t.typ.IxType()
	case TransformBoundary:
		return t.doiHi
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// IndexType returns the index type of the boxes the transform produces.
func (t Transform) IndexType() IndexType {
	switch t.kind {
	case TransformNull, TransformCoarsenRatio:
		return CellType()
	case TransformIndexType, TransformIndexTypeCoarsenRatio, TransformBoundary:
		return t.typ
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// CoarsenRatio returns the ratio the transform coarsens by.
func (t Transform) CoarsenRatio() IntVect {
	switch t.kind {
	case TransformNull, TransformIndexType:
		return UnitVector()
	case TransformCoarsenRatio, TransformIndexTypeCoarsenRatio, TransformBoundary:
		return t.ratio
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// IsNull reports whether the transform is the identity.
func (t Transform) IsNull() bool { return t.kind == TransformNull }

// IsSimple reports whether the transform is fully described by its
// index type and coarsening ratio.
func (t Transform) IsSimple() bool { return t.kind != TransformBoundary }

// SetCoarsenRatio replaces the coarsening ratio, moving between the
// simple shapes as needed. A unit ratio removes coarsening.
func (t *Transform) SetCoarsenRatio(ratio IntVect) {
	unit := ratio == UnitVector()
	switch t.kind {
	case TransformNull:
		if !unit {
			t.kind = TransformCoarsenRatio
			t.ratio = ratio
		}
	case TransformIndexType:
		if !unit {
			t.kind = TransformIndexTypeCoarsenRatio
			t.ratio = ratio
		}
	case TransformCoarsenRatio:
		if unit {
			*t = Transform{}
		} else {
			t.ratio = ratio
		}
	case TransformIndexTypeCoarsenRatio:
		if unit {
			*t = Transform{kind: TransformIndexType, typ: t.typ}
		} else {
			t.ratio = ratio
		}
	case TransformBoundary:
		t.ratio = ratio
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// SetIndexType replaces the output index type, moving between the
// simple shapes as needed. Cell-centering removes the conversion.
func (t *Transform) SetIndexType(typ IndexType) {
	cell := typ.CellCentered()
	switch t.kind {
	case TransformNull:
		if !cell {
			t.kind = TransformIndexType
			t.typ = typ
		}
	case TransformIndexType:
		if cell {
			*t = Transform{}
		} else {
			t.typ = typ
		}
	case TransformCoarsenRatio:
		if !cell {
			t.kind = TransformIndexTypeCoarsenRatio
			t.typ = typ
		}
	case TransformIndexTypeCoarsenRatio:
		if cell {
			*t = Transform{kind: TransformCoarsenRatio, ratio: t.ratio}
		} else {
			t.typ = typ
		}
	case TransformBoundary:
		t.typ = typ
	default:
		panic(fmt.Errorf("boxgrid: invalid transform kind %v", t.kind))
	}
}

// Equal reports whether two transforms map every box identically.
// Boundary transforms only equal other boundary transforms with the
// same parameters.
func (t Transform) Equal(o Transform) bool {
	if t.kind == TransformBoundary || o.kind == TransformBoundary {
		if t.kind != o.kind {
			return false
		}
		return t.face == o.face && t.typ == o.typ && t.ratio == o.ratio &&
			t.loShft == o.loShft && t.hiShft == o.hiShft &&
			t.doiLo == o.doiLo && t.doiHi == o.doiHi
	}
	return t.IndexType() == o.IndexType() && t.CoarsenRatio() == o.CoarsenRatio()
}

// searchWindow returns the range of stored, uncoarsened cell indices
// whose transformed boxes can overlap q.
func (t Transform) searchWindow(q Box) (lo, hi IntVect) {
	switch t.kind {
	case TransformBoundary:
		lo = q.Lo.Sub(t.hiShft)
		hi = q.Hi.Sub(t.loShft)
	default:
		lo = q.Lo.Sub(t.DoiHi())
		hi = q.Hi.Add(t.DoiLo())
	}
	r := t.CoarsenRatio()
	lo = lo.Mul(r)
	hi = hi.Add(UnitVector()).Mul(r).Sub(UnitVector())
	return lo, hi
}

func (t Transform) String() string {
	switch t.kind {
	case TransformBoundary:
		return fmt.Sprintf("boundary{face: %v, type: %v, ratio: %v, shift: %v %v}",
			t.face, t.typ, t.ratio, t.loShft, t.hiShft)
	default:
		return fmt.Sprintf("%v{type: %v, ratio: %v}", t.kind, t.IndexType(), t.CoarsenRatio())
	}
}
