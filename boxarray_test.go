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
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestCopyOnWrite(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), cube(4, 7))
	want := a.Boxes()

	c := a.Clone()
	if !c.SameRefs(a) || c.RefID() != a.RefID() {
		t.Fatal("clone should share storage")
	}
	if refs := a.store().refs.Load(); refs != 2 {
		t.Errorf("refs: have %d, want 2", refs)
	}

	c.Grow(UnitVector())
	if c.SameRefs(a) {
		t.Error("modified clone still shares storage")
	}
	if have := a.Boxes(); !reflect.DeepEqual(have, want) {
		t.Errorf("original changed: %v", pretty.Diff(have, want))
	}
	if have := c.Get(0); have != cube(-1, 4) {
		t.Errorf("clone: have %v, want %v", have, cube(-1, 4))
	}
	if refs := a.store().refs.Load(); refs != 1 {
		t.Errorf("refs after copy: have %d, want 1", refs)
	}

	// Mutating the sole owner works in place.
	id := a.RefID()
	a.Shift(IntVect{1, 0, 0})
	if a.RefID() != id {
		t.Error("unshared array was copied")
	}
}

func TestTransformOnlyMutators(t *testing.T) {
	a := NewBoxArrayFromBox(cube(0, 7))
	c := a.Clone()
	c.Coarsen(Uniform(2))
	c.SurroundingNodes()
	if !c.SameRefs(a) {
		t.Error("coarsen and convert should not copy storage")
	}
	if have, want := c.Get(0), (Box{Lo: Uniform(0), Hi: Uniform(4), Type: NodeType()}); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
	if have := a.Get(0); have != cube(0, 7) {
		t.Errorf("original changed to %v", have)
	}
	if have := c.CellCenteredBox(0); have != cube(0, 3) {
		t.Errorf("cell centered box: have %v", have)
	}
	if c.IxType() != NodeType() || c.CrseRatio() != Uniform(2) {
		t.Errorf("type %v ratio %v", c.IxType(), c.CrseRatio())
	}

	c.Uniqify()
	if c.SameRefs(a) {
		t.Error("uniqify should give the array its own storage")
	}
	if c.CrseRatio() != UnitVector() {
		t.Errorf("ratio after uniqify: %v", c.CrseRatio())
	}
	if have, want := c.Get(0), (Box{Lo: Uniform(0), Hi: Uniform(4), Type: NodeType()}); have != want {
		t.Errorf("after uniqify: have %v, want %v", have, want)
	}

	c.EnclosedCells()
	c.Refine(Uniform(2))
	if have := c.Get(0); have != cube(0, 7) {
		t.Errorf("after refine: have %v", have)
	}
}

func TestNumPts(t *testing.T) {
	a := NewBoxArrayFromBoxes(
		cube(0, 3),
		NewBox(IntVect{0, 0, 0}, IntVect{1, 2, 4}),
		NewBox(IntVect{10, 0, 0}, IntVect{10, 0, 9}),
	)
	if have := a.NumPts(); have != 64+30+10 {
		t.Errorf("numPts: have %d, want 104", have)
	}
	if have := a.DNumPts(); have != 104 {
		t.Errorf("dNumPts: have %g, want 104", have)
	}
	a.SurroundingNodes()
	if have := a.NumPts(); have != 125+3*4*6+2*2*11 {
		t.Errorf("nodal numPts: have %d", have)
	}
	if have := NewBoxArray().NumPts(); have != 0 {
		t.Errorf("empty numPts: have %d", have)
	}
}

func TestIsDisjoint(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), cube(3, 6))
	if a.IsDisjoint() {
		t.Error("overlapping boxes reported disjoint")
	}
	a.Set(1, cube(4, 6))
	if !a.IsDisjoint() {
		t.Error("shrunk boxes reported overlapping")
	}
	a.SurroundingNodes()
	if a.IsDisjoint() {
		t.Error("node boxes sharing a face reported disjoint")
	}
}

func TestEqualAndMatch(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), cube(4, 7))
	b := NewBoxArrayFromList(BoxList{cube(0, 3), cube(4, 7)})
	if !a.Equal(b) || !Match(a, b) {
		t.Error("arrays with the same boxes should match")
	}
	if a.SameRefs(b) {
		t.Error("separately built arrays should not share storage")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal arrays have different fingerprints")
	}

	// Same logical boxes through different storage and transforms.
	fine := NewBoxArrayFromBoxes(cube(0, 7), cube(8, 15))
	if !Match(Coarsen(fine, Uniform(2)), a) {
		t.Error("coarsened array should match")
	}

	n := Convert(a, NodeType())
	if n.Equal(a) {
		t.Error("node array equal to cell array")
	}
	if !n.CellEqual(a) {
		t.Error("node array should be cell-equal")
	}
	if a.Equal(NewBoxArrayFromBox(cube(0, 3))) {
		t.Error("arrays of different size are equal")
	}
}

func TestGetOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewBoxArrayFromBox(cube(0, 1)).Get(1)
}

func TestDefineMixedTypesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewBoxArrayFromBoxes(cube(0, 1), cube(0, 1).SurroundingNodes())
}

func TestNewTransformed(t *testing.T) {
	a := NewBoxArrayFromBox(cube(0, 3))
	tr := NewBoundaryTransform(Orientation{Dir: 0, Side: Low}, CellType(), 0, 1, 0)
	b := NewTransformed(a, tr)
	if !b.SameRefs(a) {
		t.Error("transformed array should share storage")
	}
	if have, want := b.Get(0), NewBox(IntVect{-1, 0, 0}, IntVect{-1, 3, 3}); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
	if !b.Intersects(NewBox(IntVect{-1, 0, 0}, IntVect{-1, 0, 0}), ZeroVector()) {
		t.Error("boundary band not found by query")
	}
	if b.Intersects(cube(0, 0), ZeroVector()) {
		t.Error("interior reported in boundary band")
	}

	// Structural changes materialize the band.
	b.Shift(IntVect{1, 0, 0})
	if b.SameRefs(a) || !b.Transform().IsSimple() {
		t.Error("shift should materialize the boundary transform")
	}
	if have, want := b.Get(0), NewBox(IntVect{0, 0, 0}, IntVect{0, 3, 3}); have != want {
		t.Errorf("after shift: have %v, want %v", have, want)
	}
	if have := a.Get(0); have != cube(0, 3) {
		t.Errorf("original changed to %v", have)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a transform on a transformed array")
		}
	}()
	NewTransformed(NewTransformed(a, tr), tr)
}

func TestRemoveOverlap(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), cube(2, 5), cube(0, 1))
	a.RemoveOverlap(false)
	if !a.IsDisjoint() {
		t.Errorf("not disjoint: %v", a)
	}
	if have := a.NumPts(); have != 64+64-8 {
		t.Errorf("numPts: have %d, want 120", have)
	}

	b := NewBoxArrayFromBoxes(cube(0, 3), NewBox(IntVect{4, 0, 0}, IntVect{7, 3, 3}))
	b.RemoveOverlap(true)
	if b.Size() != 1 || b.Get(0) != NewBox(IntVect{0, 0, 0}, IntVect{7, 3, 3}) {
		t.Errorf("simplify: have %v", b)
	}
}

func TestContains(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), NewBox(IntVect{4, 0, 0}, IntVect{7, 3, 3}))
	if !a.Contains(IntVect{5, 1, 1}) || a.Contains(IntVect{8, 0, 0}) {
		t.Error("point containment")
	}
	span := NewBox(IntVect{2, 0, 0}, IntVect{5, 3, 3})
	for _, disjoint := range []bool{true, false} {
		if !a.ContainsBox(span, disjoint, ZeroVector()) {
			t.Errorf("assumeDisjoint=%v: box spanning two boxes not contained", disjoint)
		}
		if a.ContainsBox(cube(2, 4), disjoint, ZeroVector()) {
			t.Errorf("assumeDisjoint=%v: box sticking out reported contained", disjoint)
		}
	}
	if !a.ContainsBox(cube(-1, 3), false, UnitVector()) {
		t.Error("ghost cells should count toward containment")
	}
	if !a.ContainsArray(NewBoxArrayFromBoxes(cube(1, 2), span), true, ZeroVector()) {
		t.Error("array containment")
	}
	if a.ContainsArray(NewBoxArrayFromBox(cube(6, 9)), true, ZeroVector()) {
		t.Error("array sticking out reported contained")
	}
	if NewBoxArray().ContainsBox(cube(0, 0), false, ZeroVector()) {
		t.Error("empty array contains nothing")
	}
}

func TestComplementIn(t *testing.T) {
	a := NewBoxArrayFromBox(cube(0, 3))
	b := NewBox(IntVect{0, 0, 0}, IntVect{7, 3, 3})
	have := a.ComplementIn(b)
	want := BoxList{NewBox(IntVect{4, 0, 0}, IntVect{7, 3, 3})}
	if !reflect.DeepEqual(have, want) {
		t.Error(pretty.Diff(have, want))
	}
	if have := ComplementIn(cube(1, 2), a); len(have) != 0 {
		t.Errorf("covered box: have %v", have)
	}
	if have := BoxComplement(cube(0, 3), cube(1, 2)).NumPts(); have != 56 {
		t.Errorf("box complement numPts: have %d", have)
	}
}

func TestIntersectFunctions(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 3), NewBox(IntVect{4, 0, 0}, IntVect{7, 3, 3}))
	span := NewBox(IntVect{2, 0, 0}, IntVect{5, 0, 0})
	if have := Intersect(a, span, ZeroVector()).NumPts(); have != 4 {
		t.Errorf("intersect: have %d points", have)
	}
	if have := IntersectList(a, BoxList{span, cube(100, 101)}).NumPts(); have != 4 {
		t.Errorf("intersect list: have %d points", have)
	}
	b := NewBoxArrayFromBoxes(span, cube(3, 4))
	if have := IntersectArrays(a, b).NumPts(); have != 4+2 {
		t.Errorf("intersect arrays: have %d points", have)
	}
}

func TestGetBndryCells(t *testing.T) {
	a := NewBoxArrayFromBox(cube(0, 3))
	bndry := GetBndryCells(a, 1)
	if have := bndry.NumPts(); have != 216-64 {
		t.Errorf("numPts: have %d, want 152", have)
	}
	ba := NewBoxArrayFromList(bndry)
	if !ba.IsDisjoint() || ba.Intersects(cube(0, 3), ZeroVector()) {
		t.Error("boundary cells overlap each other or the array")
	}

	two := NewBoxArrayFromBoxes(cube(0, 3), NewBox(IntVect{4, 0, 0}, IntVect{7, 3, 3}))
	if have := GetBndryCells(two, 1).NumPts(); have != 10*6*6-128 {
		t.Errorf("two boxes: have %d, want %d", have, 10*6*6-128)
	}
}

func TestMaxSize(t *testing.T) {
	a := NewBoxArrayFromBox(NewBox(IntVect{0, 0, 0}, IntVect{15, 7, 7}))
	a.SurroundingNodes()
	npts := a.Clone()
	npts.EnclosedCells()
	want := npts.NumPts()
	a.MaxSize(Uniform(8))
	if a.Size() != 2 {
		t.Errorf("size: have %d, want 2", a.Size())
	}
	if a.IxType() != NodeType() {
		t.Errorf("type: have %v", a.IxType())
	}
	a.EnclosedCells()
	if have := a.NumPts(); have != want {
		t.Errorf("numPts: have %d, want %d", have, want)
	}

	b := NewBoxArrayWithMaxSize(BoxList{cube(0, 9)}, Uniform(4))
	if b.Size() != 27 || b.NumPts() != 1000 {
		t.Errorf("size %d numPts %d", b.Size(), b.NumPts())
	}
	if !b.IsDisjoint() {
		t.Error("chopped boxes overlap")
	}
}

func TestSizeAndSet(t *testing.T) {
	a := NewBoxArraySize(3)
	if a.Size() != 3 || a.Ok() {
		t.Fatalf("size %d ok %v", a.Size(), a.Ok())
	}
	node := NodeType()
	a.Set(0, cube(0, 1).Convert(node))
	a.Set(1, cube(2, 3).Convert(node))
	a.Set(2, cube(4, 5).Convert(node))
	if !a.Ok() || a.IxType() != node {
		t.Errorf("ok %v type %v", a.Ok(), a.IxType())
	}
	if have := a.Get(2); have != cube(4, 5).Convert(node) {
		t.Errorf("have %v", have)
	}
	a.Resize(1)
	if a.Size() != 1 {
		t.Errorf("resize: have %d", a.Size())
	}
	a.Clear()
	if !a.Empty() || a.IxType() != CellType() {
		t.Error("clear")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b := NewBoxArraySize(2)
	b.Set(1, cube(0, 1).Convert(node))
}

func TestCoarsenable(t *testing.T) {
	if NewBoxArray().Coarsenable(Uniform(2), UnitVector()) {
		t.Error("empty array reported coarsenable")
	}
	a := NewBoxArrayFromBoxes(cube(0, 7), cube(8, 11))
	if !a.Coarsenable(Uniform(4), UnitVector()) {
		t.Error("should coarsen by 4")
	}
	if a.Coarsenable(Uniform(8), UnitVector()) {
		t.Error("should not coarsen by 8")
	}
}

func TestMinimalBox(t *testing.T) {
	a := NewBoxArrayFromBoxes(cube(0, 1), cube(4, 5))
	mb, avg := a.MinimalBoxAvg()
	if mb != cube(0, 5) || avg != 8 {
		t.Errorf("have %v %d", mb, avg)
	}
	if NewBoxArray().MinimalBox().Ok() {
		t.Error("empty array has a minimal box")
	}
}

func TestGrowAndShift(t *testing.T) {
	a := NewBoxArrayFromBox(cube(0, 3))
	a.GrowLo(0, 1)
	a.GrowHi(1, 2)
	a.GrowDir(2, 1)
	a.ShiftDir(0, 10)
	want := NewBox(IntVect{9, 0, -1}, IntVect{13, 5, 4})
	if have := a.Get(0); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
	a.GrowCoarsen(UnitVector(), Uniform(2))
	want = NewBox(IntVect{4, -1, -1}, IntVect{7, 3, 2})
	if have := a.Get(0); have != want {
		t.Errorf("growCoarsen: have %v, want %v", have, want)
	}
	a.ConvertFunc(func(b Box) Box { return b.SurroundingNodesDir(0) })
	if have := a.IxType(); have != CellType().SetNodal(0) {
		t.Errorf("convertFunc type: have %v", have)
	}
}
