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
)

func cube(lo, hi int) Box { return NewBox(Uniform(lo), Uniform(hi)) }

func TestBoxConvert(t *testing.T) {
	b := NewBox(IntVect{-2, 0, 3}, IntVect{5, 7, 9})
	types := []IndexType{CellType(), NodeType(), CellType().SetNodal(0), CellType().SetNodal(1).SetNodal(2)}
	for _, a := range types {
		for _, c := range types {
			have := b.Convert(a).Convert(c)
			want := b.Convert(c)
			if have != want {
				t.Errorf("convert %v then %v: have %v, want %v", a, c, have, want)
			}
		}
	}
	n := b.SurroundingNodes()
	if want := (IntVect{6, 8, 10}); n.Hi != want {
		t.Errorf("surrounding nodes: have %v, want %v", n.Hi, want)
	}
	if n.EnclosedCells() != b {
		t.Errorf("enclosed cells: have %v, want %v", n.EnclosedCells(), b)
	}
	if have := b.SurroundingNodesDir(1).Type; have != CellType().SetNodal(1) {
		t.Errorf("surrounding nodes dir: have %v", have)
	}
}

func TestBoxRefineCoarsen(t *testing.T) {
	tests := []struct {
		name   string
		b      Box
		ratio  IntVect
		refine Box
		crsn   Box
	}{
		{
			name:   "cell",
			b:      cube(0, 7),
			ratio:  Uniform(2),
			refine: cube(0, 15),
			crsn:   cube(0, 3),
		},
		{
			name:   "negative cell",
			b:      cube(-3, -1),
			ratio:  Uniform(2),
			refine: cube(-6, -1),
			crsn:   cube(-2, -1),
		},
		{
			name:   "node",
			b:      cube(0, 9).Convert(NodeType()),
			ratio:  Uniform(2),
			refine: Box{Lo: Uniform(0), Hi: Uniform(20), Type: NodeType()},
			crsn:   Box{Lo: Uniform(0), Hi: Uniform(5), Type: NodeType()},
		},
		{
			name:   "anisotropic",
			b:      cube(0, 11),
			ratio:  IntVect{1, 2, 4},
			refine: NewBox(IntVect{0, 0, 0}, IntVect{11, 23, 47}),
			crsn:   NewBox(IntVect{0, 0, 0}, IntVect{11, 5, 2}),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if have := test.b.Refine(test.ratio); have != test.refine {
				t.Errorf("refine: have %v, want %v", have, test.refine)
			}
			if have := test.b.Coarsen(test.ratio); have != test.crsn {
				t.Errorf("coarsen: have %v, want %v", have, test.crsn)
			}
		})
	}
}

func TestBoxCoarsenable(t *testing.T) {
	b := cube(0, 7)
	if !b.Coarsenable(Uniform(2), Uniform(4)) {
		t.Error("8-cell box should coarsen by 2 to width 4")
	}
	if b.Coarsenable(Uniform(2), Uniform(5)) {
		t.Error("8-cell box cannot coarsen by 2 to width 5")
	}
	if cube(1, 8).Coarsenable(Uniform(2), UnitVector()) {
		t.Error("misaligned box should not be coarsenable")
	}
}

func TestBoxIntersect(t *testing.T) {
	a := cube(0, 3)
	b := cube(2, 5)
	if !a.Intersects(b) {
		t.Error("boxes should intersect")
	}
	if have, want := a.Intersect(b), cube(2, 3); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
	if a.Intersects(cube(4, 5)) {
		t.Error("adjacent cell boxes should not intersect")
	}
	if !a.SurroundingNodes().Intersects(cube(4, 5).SurroundingNodes()) {
		t.Error("adjacent node boxes share a face")
	}
	if have, want := a.MinBox(cube(8, 9)), cube(0, 9); have != want {
		t.Errorf("minbox: have %v, want %v", have, want)
	}
}

func TestBoxMixedTypesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	cube(0, 3).Intersects(cube(0, 3).SurroundingNodes())
}

func TestBoxDiff(t *testing.T) {
	b1 := cube(0, 3)
	b2 := cube(1, 2)
	diff := BoxDiff(b1, b2)
	if have, want := diff.NumPts(), b1.NumPts()-b2.NumPts(); have != want {
		t.Errorf("numPts: have %d, want %d", have, want)
	}
	for i, a := range diff {
		if a.Intersects(b2) {
			t.Errorf("piece %v overlaps removed box", a)
		}
		for _, c := range diff[i+1:] {
			if a.Intersects(c) {
				t.Errorf("pieces %v and %v overlap", a, c)
			}
		}
	}
	if have := BoxDiff(b1, cube(5, 6)); !reflect.DeepEqual(have, BoxList{b1}) {
		t.Errorf("disjoint diff: have %v", have)
	}
	if have := BoxDiff(b2, b1); len(have) != 0 {
		t.Errorf("covered diff: have %v", have)
	}
}

func TestParseBox(t *testing.T) {
	b := NewBox(IntVect{-1, 2, 3}, IntVect{4, 5, 6}).Convert(CellType().SetNodal(2))
	have, err := ParseBox(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if have != b {
		t.Errorf("have %v, want %v", have, b)
	}
	have, err = ParseBox("((0,0) (3,4))")
	if err != nil {
		t.Fatal(err)
	}
	if want := NewBox(IntVect{0, 0, 0}, IntVect{3, 4, 0}); have != want {
		t.Errorf("padded: have %v, want %v", have, want)
	}
	for _, bad := range []string{"((0,0,0) (1,1,1)", "((0,0,0,0) (1,1,1,1))", "((0,0,0) (1,1))", "((a) (b))", "((0,0,0) (1,1,1)) x"} {
		if _, err := ParseBox(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
