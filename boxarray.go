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
	"runtime"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/boxgrid/internal/hash"
)

// BoxArray is an ordered collection of boxes of a single index type.
// The boxes are held in storage that is shared between arrays created
// with Clone or NewTransformed and copied only when one of them is
// modified. Every box read from the array passes through the array's
// Transform.
//
// The zero value is an empty array. A BoxArray must not be copied by
// value; use Clone. Any number of goroutines may read an array
// concurrently, but modifying it requires exclusive access.
type BoxArray struct {
	bat Transform
	ref *storeRef
}

// storeRef is the handle's claim on a store. It is released when the
// handle is garbage collected.
type storeRef struct {
	s *boxStore
}

func (r *storeRef) release() { r.s.release() }

// emptyStore backs arrays that have never held a box. It is never
// modified.
var emptyStore = newStore(nil)

// store returns the storage of ba for reading.
func (ba *BoxArray) store() *boxStore {
	if ba.ref == nil {
		return emptyStore
	}
	return ba.ref.s
}

// attach points ba at s, which must already count ba among its
// references, and releases the store ba held before.
func (ba *BoxArray) attach(s *boxStore) {
	if ba.ref == nil {
		ba.ref = &storeRef{s: s}
		runtime.AddCleanup(ba, (*storeRef).release, ba.ref)
		return
	}
	old := ba.ref.s
	ba.ref.s = s
	old.release()
}

// own returns the storage of ba for writing, first copying it if it is
// shared with another array. The spatial hash is discarded.
func (ba *BoxArray) own() *boxStore {
	if ba.ref == nil {
		ba.attach(newStore(nil))
		return ba.ref.s
	}
	s := ba.ref.s
	if s.unique() {
		s.clearHash()
		return s
	}
	ba.attach(s.clone())
	return ba.ref.s
}

// Uniqify gives ba storage of its own and folds any coarsening held in
// the transform into the stored boxes. Afterwards the transform is at
// most an index type conversion.
func (ba *BoxArray) Uniqify() {
	if !ba.bat.IsSimple() {
		ba.materialize()
		return
	}
	s := ba.own()
	if r := ba.bat.CoarsenRatio(); r != UnitVector() {
		for i, b := range s.boxes {
			s.boxes[i] = b.Coarsen(r)
		}
		ba.bat.SetCoarsenRatio(UnitVector())
	}
}

// materialize replaces the stored boxes with the boxes seen through the
// transform, in fresh storage, leaving a simple transform.
func (ba *BoxArray) materialize() {
	typ := ba.bat.IndexType()
	src := ba.store().boxes
	boxes := make([]Box, len(src))
	for i, b := range src {
		boxes[i] = ba.bat.Apply(b).EnclosedCells()
	}
	ba.attach(newStore(boxes))
	ba.bat = NewTransform(typ)
}

// simple ensures ba has a simple transform so that index type and
// coarsening changes can be folded into it.
func (ba *BoxArray) simple() {
	if !ba.bat.IsSimple() {
		ba.materialize()
	}
}

// NewBoxArray returns an empty BoxArray.
func NewBoxArray() *BoxArray { return &BoxArray{} }

// NewBoxArrayFromBox returns a BoxArray holding the single box b.
func NewBoxArrayFromBox(b Box) *BoxArray {
	return NewBoxArrayFromList(BoxList{b})
}

// NewBoxArrayFromBoxes returns a BoxArray holding boxes, which must all
// have the same index type.
func NewBoxArrayFromBoxes(boxes ...Box) *BoxArray {
	return NewBoxArrayFromList(BoxList(boxes))
}

// NewBoxArrayFromList returns a BoxArray holding the boxes of bl, which
// must all have the same index type.
func NewBoxArrayFromList(bl BoxList) *BoxArray {
	ba := new(BoxArray)
	ba.Define(bl)
	return ba
}

// NewBoxArrayWithMaxSize returns a BoxArray holding the boxes of bl
// chopped so that none is longer than maxGrid on any axis.
func NewBoxArrayWithMaxSize(bl BoxList, maxGrid IntVect) *BoxArray {
	return NewBoxArrayFromList(bl.MaxSize(maxGrid))
}

// NewBoxArraySize returns a cell-centered BoxArray of n empty boxes,
// to be filled in with Set.
func NewBoxArraySize(n int) *BoxArray {
	ba := new(BoxArray)
	ba.Resize(n)
	return ba
}

// NewTransformed returns an array that shares the storage of ba and
// reads it through t. ba must not have a transform of its own.
func NewTransformed(ba *BoxArray, t Transform) *BoxArray {
	if !ba.bat.IsNull() {
		panic(fmt.Errorf("boxgrid: cannot attach a transform to an array that already has one (%v)", ba.bat))
	}
	out := ba.Clone()
	out.bat = t
	return out
}

// Clone returns an array with the same boxes and transform as ba.
// The storage is shared until one of the two arrays is modified.
func (ba *BoxArray) Clone() *BoxArray {
	out := &BoxArray{bat: ba.bat}
	if ba.ref != nil {
		s := ba.ref.s
		s.retain()
		out.attach(s)
	}
	return out
}

// Size returns the number of boxes.
func (ba *BoxArray) Size() int { return len(ba.store().boxes) }

// Empty reports whether ba holds no boxes.
func (ba *BoxArray) Empty() bool { return ba.Size() == 0 }

// Get returns box i as seen through the transform. It panics if i is
// out of range.
func (ba *BoxArray) Get(i int) Box {
	boxes := ba.store().boxes
	if i < 0 || i >= len(boxes) {
		panic(fmt.Errorf("boxgrid: box index %d out of range [0, %d)", i, len(boxes)))
	}
	return ba.bat.Apply(boxes[i])
}

// CellCenteredBox returns box i coarsened by the transform's ratio but
// still cell-centered.
func (ba *BoxArray) CellCenteredBox(i int) Box {
	boxes := ba.store().boxes
	if i < 0 || i >= len(boxes) {
		panic(fmt.Errorf("boxgrid: box index %d out of range [0, %d)", i, len(boxes)))
	}
	return ba.bat.CoarsenOnly(boxes[i])
}

// Boxes returns every box as seen through the transform.
func (ba *BoxArray) Boxes() []Box {
	src := ba.store().boxes
	out := make([]Box, len(src))
	for i, b := range src {
		out[i] = ba.bat.Apply(b)
	}
	return out
}

// BoxList returns the boxes as a BoxList.
func (ba *BoxArray) BoxList() BoxList { return BoxList(ba.Boxes()) }

// NumPts returns the total number of indices in the boxes.
func (ba *BoxArray) NumPts() int64 {
	var n int64
	for _, b := range ba.store().boxes {
		n += ba.bat.Apply(b).NumPts()
	}
	return n
}

// DNumPts returns the total number of indices in the boxes, summed in
// floating point so that it cannot overflow.
func (ba *BoxArray) DNumPts() float64 {
	boxes := ba.store().boxes
	n := make([]float64, len(boxes))
	for i, b := range boxes {
		n[i] = ba.bat.Apply(b).DNumPts()
	}
	return floats.Sum(n)
}

// IxType returns the index type of the boxes.
func (ba *BoxArray) IxType() IndexType { return ba.bat.IndexType() }

// CrseRatio returns the ratio the stored boxes are coarsened by when
// read.
func (ba *BoxArray) CrseRatio() IntVect { return ba.bat.CoarsenRatio() }

// Transform returns the transform boxes are read through.
func (ba *BoxArray) Transform() Transform { return ba.bat }

// MinimalBox returns the smallest box containing every box in ba, or
// an empty box of the array's index type if ba is empty.
func (ba *BoxArray) MinimalBox() Box {
	mb, _ := ba.MinimalBoxAvg()
	return mb
}

// MinimalBoxAvg returns the smallest box containing every box in ba
// and the mean number of indices per box.
func (ba *BoxArray) MinimalBoxAvg() (Box, int64) {
	n := ba.Size()
	if n == 0 {
		return EmptyBox().Convert(ba.IxType()), 0
	}
	mb := ba.Get(0)
	npts := mb.NumPts()
	for i := 1; i < n; i++ {
		b := ba.Get(i)
		mb = mb.MinBox(b)
		npts += b.NumPts()
	}
	return mb, npts / int64(n)
}

// Ok reports whether every box is non-empty.
func (ba *BoxArray) Ok() bool {
	for _, b := range ba.store().boxes {
		if !ba.bat.Apply(b).Ok() {
			return false
		}
	}
	return true
}

// Coarsenable reports whether every box can be coarsened by ratio
// without loss to a box at least minWidth wide. It returns false for
// an empty array.
func (ba *BoxArray) Coarsenable(ratio, minWidth IntVect) bool {
	n := ba.Size()
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if !ba.Get(i).Coarsenable(ratio, minWidth) {
			return false
		}
	}
	return true
}

// Define replaces the contents of ba with the boxes of bl, which must
// all have the same index type. The transform is reset.
func (ba *BoxArray) Define(bl BoxList) {
	ba.Clear()
	if len(bl) == 0 {
		return
	}
	typ := bl[0].Type
	boxes := make([]Box, len(bl))
	for i, b := range bl {
		if b.Type != typ {
			panic(fmt.Errorf("boxgrid: box %d has index type %v, want %v", i, b.Type, typ))
		}
		boxes[i] = b.EnclosedCells()
	}
	ba.own().define(boxes)
	ba.bat = NewTransform(typ)
}

// Clear removes every box and resets the transform.
func (ba *BoxArray) Clear() {
	ba.bat = Transform{}
	if ba.ref != nil {
		ba.attach(newStore(nil))
	}
}

// Resize truncates ba to n boxes or pads it with empty boxes.
func (ba *BoxArray) Resize(n int) {
	ba.Uniqify()
	ba.store().resize(n)
}

// MaxSize chops the boxes so that none is longer than block on any
// axis.
func (ba *BoxArray) MaxSize(block IntVect) {
	typ := ba.IxType()
	bl := ba.BoxList().MaxSize(block)
	ba.Define(bl)
	ba.bat.SetIndexType(typ)
}

// Refine refines every box by ratio.
func (ba *BoxArray) Refine(ratio IntVect) {
	ba.Uniqify()
	s := ba.store()
	for i, b := range s.boxes {
		s.boxes[i] = b.Refine(ratio)
	}
}

// RefineN refines every box by n on every axis.
func (ba *BoxArray) RefineN(n int) { ba.Refine(Uniform(n)) }

// Coarsen coarsens every box by ratio. Only the transform changes; the
// stored boxes are untouched.
func (ba *BoxArray) Coarsen(ratio IntVect) {
	ba.simple()
	ba.bat.SetCoarsenRatio(ba.bat.CoarsenRatio().Mul(ratio))
}

// CoarsenN coarsens every box by n on every axis.
func (ba *BoxArray) CoarsenN(n int) { ba.Coarsen(Uniform(n)) }

// GrowCoarsen grows every box by n and then coarsens it by ratio.
func (ba *BoxArray) GrowCoarsen(n, ratio IntVect) {
	ba.editBoxes(func(b Box) Box { return b.Grow(n).Coarsen(ratio) })
}

// Grow grows every box by n[d] on both sides of each axis.
func (ba *BoxArray) Grow(n IntVect) {
	ba.editBoxes(func(b Box) Box { return b.Grow(n) })
}

// GrowDir grows every box by n on both sides of axis dir.
func (ba *BoxArray) GrowDir(dir, n int) {
	ba.editBoxes(func(b Box) Box { return b.GrowDir(dir, n) })
}

// GrowLo grows the low end of every box by n along axis dir.
func (ba *BoxArray) GrowLo(dir, n int) {
	ba.editBoxes(func(b Box) Box { return b.GrowLo(dir, n) })
}

// GrowHi grows the high end of every box by n along axis dir.
func (ba *BoxArray) GrowHi(dir, n int) {
	ba.editBoxes(func(b Box) Box { return b.GrowHi(dir, n) })
}

// Shift translates every box by v.
func (ba *BoxArray) Shift(v IntVect) {
	ba.editBoxes(func(b Box) Box { return b.Shift(v) })
}

// ShiftDir translates every box by n along axis dir.
func (ba *BoxArray) ShiftDir(dir, n int) {
	ba.Shift(BaseVector(dir).Scale(n))
}

// editBoxes rewrites every stored box with fn. Stored boxes are
// cell-centered versions of the boxes the array presents, and fn must
// give the same result on either form.
func (ba *BoxArray) editBoxes(fn func(Box) Box) {
	ba.Uniqify()
	s := ba.store()
	for i, b := range s.boxes {
		s.boxes[i] = fn(b)
	}
}

// SurroundingNodes makes every box node-centered on every axis.
func (ba *BoxArray) SurroundingNodes() { ba.Convert(NodeType()) }

// SurroundingNodesDir makes every box node-centered on axis dir.
func (ba *BoxArray) SurroundingNodesDir(dir int) {
	ba.Convert(ba.IxType().SetNodal(dir))
}

// EnclosedCells makes every box cell-centered on every axis.
func (ba *BoxArray) EnclosedCells() { ba.Convert(CellType()) }

// EnclosedCellsDir makes every box cell-centered on axis dir.
func (ba *BoxArray) EnclosedCellsDir(dir int) {
	ba.Convert(ba.IxType().SetCell(dir))
}

// Convert changes the index type of every box. Only the transform
// changes; the stored boxes are untouched.
func (ba *BoxArray) Convert(typ IndexType) {
	ba.simple()
	ba.bat.SetIndexType(typ)
}

// ConvertFunc replaces every box b with fn(b). The results must all
// have the same index type.
func (ba *BoxArray) ConvertFunc(fn func(Box) Box) {
	bl := ba.BoxList()
	for i, b := range bl {
		bl[i] = fn(b)
	}
	ba.Define(bl)
}

// Set replaces box i with b. Setting box 0 sets the index type of the
// array; every other box must already match it.
func (ba *BoxArray) Set(i int, b Box) {
	ba.Uniqify()
	s := ba.store()
	if i < 0 || i >= len(s.boxes) {
		panic(fmt.Errorf("boxgrid: box index %d out of range [0, %d)", i, len(s.boxes)))
	}
	if i == 0 {
		ba.bat.SetIndexType(b.Type)
	} else if b.Type != ba.IxType() {
		panic(fmt.Errorf("boxgrid: cannot set box of type %v in array of type %v", b.Type, ba.IxType()))
	}
	s.boxes[i] = b.EnclosedCells()
}

// RemoveOverlap replaces the boxes with a disjoint set covering the
// same indices. Where boxes overlap, the earlier box keeps the
// overlapping indices. If simplify is true, boxes sharing a complete
// face are merged afterwards.
func (ba *BoxArray) RemoveOverlap(simplify bool) {
	typ := ba.IxType()
	var out BoxList
	for i, b := range ba.Boxes() {
		pieces := BoxList{b}
		for _, isect := range ba.Intersections(b, false, ZeroVector()) {
			if isect.Index >= i {
				continue
			}
			pieces = subtract(pieces, isect.Box)
		}
		out = append(out, pieces...)
	}
	if simplify {
		out.Simplify()
	}
	ba.Define(out)
	ba.bat.SetIndexType(typ)
}

// subtract removes b from every box in bl.
func subtract(bl BoxList, b Box) BoxList {
	out := make(BoxList, 0, len(bl))
	for _, p := range bl {
		out = append(out, BoxDiff(p, b)...)
	}
	return out
}

// IsDisjoint reports whether no two boxes share an index.
func (ba *BoxArray) IsDisjoint() bool {
	for i, b := range ba.Boxes() {
		overlap := false
		ba.intersections(b, ZeroVector(), i, func(int, Box) bool {
			overlap = true
			return false
		})
		if overlap {
			return false
		}
	}
	return true
}

// Contains reports whether any box contains p.
func (ba *BoxArray) Contains(p IntVect) bool {
	if ba.Empty() {
		return false
	}
	return ba.Intersects(Box{Lo: p, Hi: p, Type: ba.IxType()}, ZeroVector())
}

// ContainsBox reports whether b is covered by the boxes of ba grown by
// ng. If assumeDisjoint is true the grown boxes must not overlap one
// another, which makes the check cheaper.
func (ba *BoxArray) ContainsBox(b Box, assumeDisjoint bool, ng IntVect) bool {
	if ba.Empty() || !b.Ok() {
		return false
	}
	isects := ba.Intersections(b, false, ng)
	if assumeDisjoint {
		var n int64
		for _, isect := range isects {
			n += isect.Box.NumPts()
		}
		return n == b.NumPts()
	}
	remaining := BoxList{b}
	for _, isect := range isects {
		remaining = subtract(remaining, isect.Box)
		if len(remaining) == 0 {
			return true
		}
	}
	return len(remaining) == 0
}

// ContainsArray reports whether every box of o is covered by the boxes
// of ba grown by ng.
func (ba *BoxArray) ContainsArray(o *BoxArray, assumeDisjoint bool, ng IntVect) bool {
	if ba.Empty() {
		return false
	}
	if o.Empty() {
		return true
	}
	if !ba.MinimalBox().Grow(ng).Contains(o.MinimalBox()) {
		return false
	}
	for _, b := range o.Boxes() {
		if !ba.ContainsBox(b, assumeDisjoint, ng) {
			return false
		}
	}
	return true
}

// ComplementIn returns the indices of b that are not in any box of ba,
// as a list of disjoint boxes.
func (ba *BoxArray) ComplementIn(b Box) BoxList {
	if !b.Ok() {
		return nil
	}
	remaining := BoxList{b}
	for _, isect := range ba.Intersections(b, false, ZeroVector()) {
		remaining = subtract(remaining, isect.Box)
		if len(remaining) == 0 {
			break
		}
	}
	remaining.Simplify()
	return remaining
}

// Equal reports whether ba and o present the same sequence of boxes.
func (ba *BoxArray) Equal(o *BoxArray) bool {
	if ba.store() == o.store() && ba.bat.Equal(o.bat) {
		return true
	}
	n := ba.Size()
	if n != o.Size() || ba.IxType() != o.IxType() {
		return false
	}
	for i := 0; i < n; i++ {
		if ba.Get(i) != o.Get(i) {
			return false
		}
	}
	return true
}

// CellEqual reports whether ba and o hold the same boxes once both are
// converted to cell-centering.
func (ba *BoxArray) CellEqual(o *BoxArray) bool {
	n := ba.Size()
	if n != o.Size() {
		return false
	}
	for i := 0; i < n; i++ {
		if ba.Get(i).EnclosedCells() != o.Get(i).EnclosedCells() {
			return false
		}
	}
	return true
}

// RefID identifies the storage behind a BoxArray. Arrays with the same
// RefID share storage; arrays holding equal boxes in separate storage
// have different RefIDs.
type RefID struct {
	s *boxStore
}

func (id RefID) String() string { return fmt.Sprintf("%p", id.s) }

// RefID returns the identity of the storage behind ba. It changes when
// ba is modified in a way that gives it new storage.
func (ba *BoxArray) RefID() RefID { return RefID{s: ba.store()} }

// SameRefs reports whether ba and o share storage.
func (ba *BoxArray) SameRefs(o *BoxArray) bool { return ba.store() == o.store() }

// Fingerprint returns a digest of the boxes ba presents. Equal arrays
// have equal fingerprints regardless of how their boxes are stored.
func (ba *BoxArray) Fingerprint() string {
	return hash.Key(ba.Boxes())
}

func (ba *BoxArray) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(BoxArray %d", ba.Size())
	for _, bx := range ba.Boxes() {
		b.WriteString(" ")
		b.WriteString(bx.String())
	}
	b.WriteString(")")
	return b.String()
}
