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
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/boxgrid"
	"github.com/spf13/cast"
)

// IntVect converts a configuration value to a vector. A single number
// is used for every axis; a list gives one number per axis. Strings
// may hold either form, with list elements separated by commas.
func IntVect(v interface{}) (boxgrid.IntVect, error) {
	var parts []interface{}
	switch t := v.(type) {
	case string:
		t = strings.Trim(strings.TrimSpace(t), "()[]")
		for _, s := range strings.Split(t, ",") {
			parts = append(parts, strings.TrimSpace(s))
		}
	case []interface{}:
		parts = t
	case []int:
		for _, n := range t {
			parts = append(parts, n)
		}
	case []int64:
		for _, n := range t {
			parts = append(parts, n)
		}
	default:
		parts = []interface{}{t}
	}
	var iv boxgrid.IntVect
	if len(parts) != 1 && len(parts) != boxgrid.SpaceDim {
		return iv, fmt.Errorf("need 1 or %d components but have %d in %v", boxgrid.SpaceDim, len(parts), v)
	}
	for d := range iv {
		p := parts[0]
		if len(parts) > 1 {
			p = parts[d]
		}
		n, err := cast.ToIntE(p)
		if err != nil {
			return iv, err
		}
		iv[d] = n
	}
	return iv, nil
}

// IndexType parses an index type: "cell", "node", or a list of 0
// (cell) and 1 (node) flags such as "1,0,0".
func IndexType(s string) (boxgrid.IndexType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cell":
		return boxgrid.CellType(), nil
	case "node":
		return boxgrid.NodeType(), nil
	}
	iv, err := IntVect(s)
	if err != nil {
		return 0, fmt.Errorf("boxgrid: invalid index type %q: %v", s, err)
	}
	for _, c := range iv {
		if c != 0 && c != 1 {
			return 0, fmt.Errorf("boxgrid: invalid index type %q: flags must be 0 or 1", s)
		}
	}
	return boxgrid.IndexTypeFromVect(iv), nil
}

// Face parses a face name such as "lo0" or "hi2".
func Face(s string) (boxgrid.Orientation, error) {
	var o boxgrid.Orientation
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "lo"):
		o.Side = boxgrid.Low
	case strings.HasPrefix(s, "hi"):
		o.Side = boxgrid.High
	default:
		return o, fmt.Errorf("boxgrid: invalid face %q: must start with lo or hi", s)
	}
	dir, err := cast.ToIntE(s[2:])
	if err != nil || dir < 0 || dir >= boxgrid.SpaceDim {
		return o, fmt.Errorf("boxgrid: invalid face %q: axis must be between 0 and %d", s, boxgrid.SpaceDim-1)
	}
	o.Dir = dir
	return o, nil
}

// Step is one operation applied to a box array.
type Step struct {
	// Op is one of refine, coarsen, grow, shift, maxsize, convert,
	// removeoverlap, boundary or uniqify.
	Op string

	// Vector is the ratio, growth, shift or block size, depending on
	// Op. It may hold one component for every axis or just one.
	Vector []int

	// Type is the index type for convert and boundary.
	Type string

	// Face, In, Out and Extent configure the boundary transform.
	Face            string
	In, Out, Extent int

	// Simplify merges boxes after removeoverlap.
	Simplify bool
}

// Pipeline is an ordered list of operations.
type Pipeline struct {
	Steps []Step
}

// ReadPipeline reads a pipeline from a TOML file of [[Steps]] tables.
func ReadPipeline(path string) (*Pipeline, error) {
	p := new(Pipeline)
	md, err := toml.DecodeFile(os.ExpandEnv(path), p)
	if err != nil {
		return nil, fmt.Errorf("boxgrid: reading steps file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("boxgrid: unknown keys in steps file: %v", undecoded)
	}
	return p, nil
}

// PipelineFromConfig builds a pipeline from the individual operation
// options in cfg, skipping the ones left at their neutral values.
func PipelineFromConfig(cfg *viper.Viper) (*Pipeline, error) {
	p := new(Pipeline)
	if t := cfg.GetString("type"); t != "" {
		p.Steps = append(p.Steps, Step{Op: "convert", Type: t})
	}
	for _, op := range []struct {
		name    string
		neutral boxgrid.IntVect
	}{
		{"coarsen", boxgrid.UnitVector()},
		{"refine", boxgrid.UnitVector()},
		{"grow", boxgrid.ZeroVector()},
		{"maxsize", boxgrid.ZeroVector()},
	} {
		v, err := IntVect(cfg.Get(op.name))
		if err != nil {
			return nil, fmt.Errorf("boxgrid: %s: %v", op.name, err)
		}
		if v != op.neutral {
			p.Steps = append(p.Steps, Step{Op: op.name, Vector: v[:]})
		}
	}
	if cfg.GetBool("removeoverlap") {
		p.Steps = append(p.Steps, Step{Op: "removeoverlap", Simplify: cfg.GetBool("simplify")})
	}
	return p, nil
}

// Apply runs the steps on ba in order. Every step is checked before
// any is applied, so ba is unchanged if an error is returned.
func (p *Pipeline) Apply(ba *boxgrid.BoxArray) error {
	ops := make([]func(*boxgrid.BoxArray), len(p.Steps))
	for i, s := range p.Steps {
		op, err := s.compile()
		if err != nil {
			return fmt.Errorf("boxgrid: step %d: %v", i+1, err)
		}
		ops[i] = op
	}
	for _, op := range ops {
		op(ba)
	}
	return nil
}

func (s Step) vector(lowest int) (boxgrid.IntVect, error) {
	v, err := IntVect(s.Vector)
	if err != nil {
		return v, err
	}
	for _, c := range v {
		if c < lowest {
			return v, fmt.Errorf("%s components must be at least %d, have %v", s.Op, lowest, v)
		}
	}
	return v, nil
}

func (s Step) compile() (func(*boxgrid.BoxArray), error) {
	switch strings.ToLower(s.Op) {
	case "refine":
		v, err := s.vector(1)
		return func(ba *boxgrid.BoxArray) { ba.Refine(v) }, err
	case "coarsen":
		v, err := s.vector(1)
		return func(ba *boxgrid.BoxArray) { ba.Coarsen(v) }, err
	case "grow":
		v, err := IntVect(s.Vector)
		return func(ba *boxgrid.BoxArray) { ba.Grow(v) }, err
	case "shift":
		v, err := IntVect(s.Vector)
		return func(ba *boxgrid.BoxArray) { ba.Shift(v) }, err
	case "maxsize":
		v, err := s.vector(1)
		return func(ba *boxgrid.BoxArray) { ba.MaxSize(v) }, err
	case "convert":
		t, err := IndexType(s.Type)
		return func(ba *boxgrid.BoxArray) { ba.Convert(t) }, err
	case "removeoverlap":
		return func(ba *boxgrid.BoxArray) { ba.RemoveOverlap(s.Simplify) }, nil
	case "uniqify":
		return func(ba *boxgrid.BoxArray) { ba.Uniqify() }, nil
	case "boundary":
		face, err := Face(s.Face)
		if err != nil {
			return nil, err
		}
		t := boxgrid.CellType()
		if s.Type != "" {
			if t, err = IndexType(s.Type); err != nil {
				return nil, err
			}
		}
		bt := boxgrid.NewBoundaryTransform(face, t, s.In, s.Out, s.Extent)
		return func(ba *boxgrid.BoxArray) {
			// Fold any existing transform into the boxes first.
			ba.Uniqify()
			ba.Convert(boxgrid.CellType())
			out := boxgrid.NewTransformed(ba, bt)
			out.Uniqify()
			ba.Define(out.BoxList())
		}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", s.Op)
	}
}
