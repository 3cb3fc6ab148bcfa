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
	"encoding/gob"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes Core Deterministic CBOR so that equal arrays always
// encode to identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("boxgrid: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("boxgrid: CBOR decoder initialization failed: " + err.Error())
	}
}

// binaryArray is the CBOR form of a BoxArray: the index type shared by
// every box and the corners of each box.
type binaryArray struct {
	Type  IndexType    `cbor:"1,keyasint"`
	Boxes [][2]IntVect `cbor:"2,keyasint"`
}

// MarshalBinary encodes the boxes of ba, as seen through its transform,
// as CBOR.
func (ba *BoxArray) MarshalBinary() ([]byte, error) {
	out := binaryArray{
		Type:  ba.IxType(),
		Boxes: make([][2]IntVect, ba.Size()),
	}
	for i, b := range ba.Boxes() {
		out.Boxes[i] = [2]IntVect{b.Lo, b.Hi}
	}
	data, err := encMode.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("boxgrid: encoding box array: %v", err)
	}
	return data, nil
}

// UnmarshalBinary replaces the contents of ba with boxes encoded by
// MarshalBinary.
func (ba *BoxArray) UnmarshalBinary(data []byte) error {
	var in binaryArray
	if err := decMode.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("boxgrid: decoding box array: %v", err)
	}
	if in.Type > NodeType() {
		return fmt.Errorf("boxgrid: decoding box array: invalid index type %d", in.Type)
	}
	bl := make(BoxList, len(in.Boxes))
	for i, c := range in.Boxes {
		bl[i] = Box{Lo: c[0], Hi: c[1], Type: in.Type}
	}
	ba.Define(bl)
	ba.bat.SetIndexType(in.Type)
	return nil
}

// Save writes arrays to w as a gob stream.
func Save(w io.Writer, arrays ...*BoxArray) error {
	if err := gob.NewEncoder(w).Encode(arrays); err != nil {
		return fmt.Errorf("boxgrid: saving box arrays: %v", err)
	}
	return nil
}

// Load reads box arrays written by Save.
func Load(r io.Reader) ([]*BoxArray, error) {
	var arrays []*BoxArray
	if err := gob.NewDecoder(r).Decode(&arrays); err != nil {
		return nil, fmt.Errorf("boxgrid: loading box arrays: %v", err)
	}
	return arrays, nil
}
