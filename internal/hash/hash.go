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

// Package hash computes content digests of arbitrary values.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// dumper writes a stable textual form of values gob cannot encode.
var dumper = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Key returns the hex form of Sum(object).
func Key(object interface{}) string {
	return fmt.Sprintf("%x", Sum(object))
}

// Sum returns the 128-bit FNV-1a digest of the gob encoding of object.
// Values that gob cannot encode, such as structs without exported
// fields, are digested from their spew dump instead.
func Sum(object interface{}) []byte {
	h := fnv.New128a()
	if err := gob.NewEncoder(h).Encode(object); err != nil {
		h.Reset()
		dumper.Fprintf(h, "%#v", object)
	}
	return h.Sum(nil)
}
