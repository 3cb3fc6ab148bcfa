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
	"bytes"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
)

func TestBinaryRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := NewBoxArrayFromList(randomBoxes(rng, 100))
	a.SurroundingNodes()
	data, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	again, err := a.Clone().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("encoding is not deterministic")
	}
	b := NewBoxArray()
	if err := b.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if !Match(a, b) {
		t.Error(pretty.Diff(b.Boxes(), a.Boxes()))
	}
	if err := b.UnmarshalBinary([]byte{0xff}); err == nil {
		t.Error("expected error for bad input")
	}
}

func TestSaveLoad(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := NewBoxArrayFromList(randomBoxes(rng, 20))
	b := Convert(a, NodeType())
	c := NewBoxArray()
	var buf bytes.Buffer
	if err := Save(&buf, a, b, c); err != nil {
		t.Fatal(err)
	}
	arrays, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(arrays) != 3 {
		t.Fatalf("have %d arrays, want 3", len(arrays))
	}
	for i, want := range []*BoxArray{a, b, c} {
		if !Match(arrays[i], want) {
			t.Errorf("array %d: %v", i, pretty.Diff(arrays[i].Boxes(), want.Boxes()))
		}
	}
}
