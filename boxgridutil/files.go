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

package boxgridutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/boxgrid"
)

// fileFormat reports whether path names a binary (.cbor) file and
// whether it is zstd compressed (.zst).
func fileFormat(path string) (binary, compressed bool) {
	if strings.HasSuffix(path, ".zst") {
		compressed = true
		path = strings.TrimSuffix(path, ".zst")
	}
	return filepath.Ext(path) == ".cbor", compressed
}

// ReadBoxArray reads a box array from path, which is "-" for standard
// input. legacy selects the legacy text layout.
func ReadBoxArray(path string, legacy bool) (*boxgrid.BoxArray, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		path = os.ExpandEnv(path)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("boxgrid: opening box array: %v", err)
		}
		defer f.Close()
		r = f
	}
	binary, compressed := fileFormat(path)
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("boxgrid: opening compressed box array: %v", err)
		}
		defer dec.Close()
		r = dec
	}
	var ba *boxgrid.BoxArray
	if binary {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("boxgrid: reading box array: %v", err)
		}
		ba = boxgrid.NewBoxArray()
		if err := ba.UnmarshalBinary(data); err != nil {
			return nil, err
		}
	} else {
		var err error
		var ndims int
		ba, ndims, err = boxgrid.ReadBoxArray(r, legacy)
		if err != nil {
			return nil, err
		}
		if ndims != boxgrid.SpaceDim {
			boxgrid.Log.WithFields(logrus.Fields{
				"file":  path,
				"ndims": ndims,
			}).Warn("boxgrid: box array has fewer dimensions; padding with zeros")
		}
	}
	boxgrid.Log.WithFields(logrus.Fields{
		"file":  path,
		"boxes": ba.Size(),
	}).Info("boxgrid: read box array")
	return ba, nil
}

// WriteBoxArray writes ba to path, or to stdout if path is "-".
func WriteBoxArray(path string, ba *boxgrid.BoxArray, stdout io.Writer) (err error) {
	var w io.Writer = stdout
	if path != "-" {
		path = os.ExpandEnv(path)
		f, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("boxgrid: creating box array file: %v", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("boxgrid: closing box array file: %v", cerr)
			}
		}()
		w = f
	}
	binary, compressed := fileFormat(path)
	if compressed {
		enc, zerr := zstd.NewWriter(w)
		if zerr != nil {
			return fmt.Errorf("boxgrid: compressing box array: %v", zerr)
		}
		defer func() {
			if cerr := enc.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("boxgrid: compressing box array: %v", cerr)
			}
		}()
		w = enc
	}
	if binary {
		data, err := ba.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("boxgrid: writing box array: %v", err)
		}
		return nil
	}
	return ba.WriteText(w)
}

// Info writes a summary of ba to w.
func Info(w io.Writer, ba *boxgrid.BoxArray) error {
	mb, avg := ba.MinimalBoxAvg()
	_, err := fmt.Fprintf(w, "boxes:       %d\n"+
		"points:      %d\n"+
		"index type:  %v\n"+
		"minimal box: %v\n"+
		"mean points: %d\n"+
		"disjoint:    %v\n"+
		"fingerprint: %s\n",
		ba.Size(), ba.NumPts(), ba.IxType(), mb, avg, ba.IsDisjoint(), ba.Fingerprint())
	return err
}

// Intersections writes the index of every box of ba that, grown by ng,
// intersects q, and the intersection, one per line in index order.
func Intersections(w io.Writer, ba *boxgrid.BoxArray, q boxgrid.Box, firstOnly bool, ng boxgrid.IntVect) error {
	if q.Type != ba.IxType() {
		return fmt.Errorf("boxgrid: box type %v does not match box array type %v", q.Type, ba.IxType())
	}
	isects := ba.Intersections(q, firstOnly, ng)
	sortIntersections(isects)
	for _, isect := range isects {
		if _, err := fmt.Fprintf(w, "%d %v\n", isect.Index, isect.Box); err != nil {
			return err
		}
	}
	return nil
}

func sortIntersections(isects []boxgrid.Intersection) {
	sort.Slice(isects, func(i, j int) bool { return isects[i].Index < isects[j].Index })
}
