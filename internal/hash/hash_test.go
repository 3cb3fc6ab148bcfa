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

package hash

import "testing"

type point struct{ X, Y int }

type hidden struct{ x int }

func TestKey(t *testing.T) {
	a := Key([]point{{1, 2}, {3, 4}})
	b := Key([]point{{1, 2}, {3, 4}})
	c := Key([]point{{1, 2}, {3, 5}})
	if a != b {
		t.Errorf("equal values: have %s and %s", a, b)
	}
	if a == c {
		t.Errorf("different values share key %s", a)
	}
	if len(a) != 32 {
		t.Errorf("key length: have %d, want 32", len(a))
	}
}

func TestKeySpewFallback(t *testing.T) {
	a := Key(hidden{x: 1})
	b := Key(hidden{x: 2})
	if a == b {
		t.Errorf("unexported fields ignored: both keys are %s", a)
	}
	if a != Key(hidden{x: 1}) {
		t.Error("fallback key is not stable")
	}
}
