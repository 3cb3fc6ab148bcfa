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
	"strconv"
	"strings"
)

// SpaceDim is the number of spatial dimensions of index space.
const SpaceDim = 3

// IntVect is a point in integer index space.
type IntVect [SpaceDim]int

// UnitVector returns a vector with all components equal to 1.
func UnitVector() IntVect { return Uniform(1) }

// ZeroVector returns a vector with all components equal to 0.
func ZeroVector() IntVect { return IntVect{} }

// Uniform returns a vector with all components equal to n.
func Uniform(n int) IntVect {
	var v IntVect
	for d := range v {
		v[d] = n
	}
	return v
}

// BaseVector returns the unit vector along axis dir.
func BaseVector(dir int) IntVect {
	var v IntVect
	v[dir] = 1
	return v
}

// Add returns v + o.
func (v IntVect) Add(o IntVect) IntVect {
	for d := range v {
		v[d] += o[d]
	}
	return v
}

// Sub returns v - o.
func (v IntVect) Sub(o IntVect) IntVect {
	for d := range v {
		v[d] -= o[d]
	}
	return v
}

// Mul returns the component-wise product of v and o.
func (v IntVect) Mul(o IntVect) IntVect {
	for d := range v {
		v[d] *= o[d]
	}
	return v
}

// Scale returns v multiplied by n.
func (v IntVect) Scale(n int) IntVect {
	for d := range v {
		v[d] *= n
	}
	return v
}

// Coarsen divides v by ratio, rounding toward negative infinity.
func (v IntVect) Coarsen(ratio IntVect) IntVect {
	for d := range v {
		v[d] = floorDiv(v[d], ratio[d])
	}
	return v
}

// Min returns the component-wise minimum of v and o.
func (v IntVect) Min(o IntVect) IntVect {
	for d := range v {
		if o[d] < v[d] {
			v[d] = o[d]
		}
	}
	return v
}

// Max returns the component-wise maximum of v and o.
func (v IntVect) Max(o IntVect) IntVect {
	for d := range v {
		if o[d] > v[d] {
			v[d] = o[d]
		}
	}
	return v
}

// AllLE reports whether v[d] <= o[d] for every axis.
func (v IntVect) AllLE(o IntVect) bool {
	for d := range v {
		if v[d] > o[d] {
			return false
		}
	}
	return true
}

// AllLT reports whether v[d] < o[d] for every axis.
func (v IntVect) AllLT(o IntVect) bool {
	for d := range v {
		if v[d] >= o[d] {
			return false
		}
	}
	return true
}

// AllGE reports whether v[d] >= o[d] for every axis.
func (v IntVect) AllGE(o IntVect) bool { return o.AllLE(v) }

// Product returns the product of the components as an int64.
func (v IntVect) Product() int64 {
	p := int64(1)
	for _, c := range v {
		p *= int64(c)
	}
	return p
}

func (v IntVect) String() string {
	s := make([]string, len(v))
	for d, c := range v {
		s[d] = strconv.Itoa(c)
	}
	return "(" + strings.Join(s, ",") + ")"
}

// floorDiv divides a by b rounding toward negative infinity.
// b must be positive.
func floorDiv(a, b int) int {
	if b == 1 {
		return a
	}
	if a >= 0 {
		return a / b
	}
	return -((-a + b - 1) / b)
}
