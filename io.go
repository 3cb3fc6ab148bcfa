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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText writes the boxes of ba in the text layout
//
//	(N 0
//	((lo) (hi) (type))
//	...
//	)
//
// Only the boxes seen through the transform are written; the transform
// itself is not.
func (ba *BoxArray) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "(%d 0\n", ba.Size())
	for _, b := range ba.Boxes() {
		fmt.Fprintln(bw, b)
	}
	fmt.Fprintln(bw, ")")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("boxgrid: writing box array: %v", err)
	}
	return nil
}

// ReadText replaces the contents of ba with a box array read from r in
// the layout written by WriteText. It returns the number of dimensions
// the boxes were written with. Boxes written with fewer than SpaceDim
// dimensions are padded with zero, cell-centered axes.
func (ba *BoxArray) ReadText(r io.Reader) (ndims int, err error) {
	out, ndims, err := ReadBoxArray(r, false)
	if err != nil {
		return 0, err
	}
	ba.Define(out.BoxList())
	return ndims, nil
}

// ReadBoxArray reads a box array from r. If legacy is false the input
// must be in the layout written by WriteText. Otherwise it is the older
// layout: a bare box count followed by the boxes, with no enclosing
// parentheses, in which the index type of each box may be left out.
// It also returns the number of dimensions the boxes were written with.
func ReadBoxArray(r io.Reader, legacy bool) (*BoxArray, int, error) {
	s := newTextScanner(r)
	bl, ndims, err := s.boxArray(legacy)
	if err != nil {
		return nil, 0, fmt.Errorf("boxgrid: reading box array: %v", err)
	}
	for i, b := range bl {
		if b.Type != bl[0].Type {
			return nil, 0, fmt.Errorf("boxgrid: reading box array: box %d has index type %v, want %v", i, b.Type, bl[0].Type)
		}
	}
	return NewBoxArrayFromList(bl), ndims, nil
}

// ParseBox parses a box in the form written by Box.String, for example
// "((0,0,0) (7,7,7) (0,0,0))". The index type may be left out.
func ParseBox(str string) (Box, error) {
	s := newTextScanner(strings.NewReader(str))
	b, _, err := s.box()
	if err == nil {
		s.skipSpace()
		if c, ok := s.peek(); ok {
			err = fmt.Errorf("unexpected %q after box", c)
		}
	}
	if err != nil {
		return Box{}, fmt.Errorf("boxgrid: parsing box %q: %v", str, err)
	}
	return b, nil
}

// textScanner reads the tokens of the box array text layout one byte at
// a time, so that nothing after the array is consumed from r.
type textScanner struct {
	r io.ByteScanner
}

func newTextScanner(r io.Reader) *textScanner {
	if bs, ok := r.(io.ByteScanner); ok {
		return &textScanner{r: bs}
	}
	return &textScanner{r: bufio.NewReader(r)}
}

func (s *textScanner) peek() (byte, bool) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, false
	}
	s.r.UnreadByte()
	return c, true
}

func (s *textScanner) skipSpace() {
	for {
		c, ok := s.peek()
		if !ok || !isSpace(c) {
			return
		}
		s.r.ReadByte()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *textScanner) expect(want byte) error {
	s.skipSpace()
	c, err := s.r.ReadByte()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	} else if err != nil {
		return err
	}
	if c != want {
		return fmt.Errorf("expected %q, found %q", want, c)
	}
	return nil
}

func (s *textScanner) int() (int, error) {
	s.skipSpace()
	var digits []byte
	for {
		c, ok := s.peek()
		if !ok {
			break
		}
		if (c == '-' || c == '+') && len(digits) == 0 || c >= '0' && c <= '9' {
			digits = append(digits, c)
			s.r.ReadByte()
			continue
		}
		break
	}
	if len(digits) == 0 || len(digits) == 1 && (digits[0] == '-' || digits[0] == '+') {
		if c, ok := s.peek(); ok {
			return 0, fmt.Errorf("expected integer, found %q", c)
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(string(digits))
}

// tuple reads a parenthesized, comma-separated list of integers.
func (s *textScanner) tuple() ([]int, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	var v []int
	for {
		n, err := s.int()
		if err != nil {
			return nil, err
		}
		v = append(v, n)
		s.skipSpace()
		c, ok := s.peek()
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		s.r.ReadByte()
		switch c {
		case ',':
		case ')':
			return v, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')', found %q", c)
		}
	}
}

func padVect(v []int) (IntVect, error) {
	var iv IntVect
	if len(v) > SpaceDim {
		return iv, fmt.Errorf("%d components exceed the %d supported dimensions", len(v), SpaceDim)
	}
	copy(iv[:], v)
	return iv, nil
}

// box reads one box and returns it along with the number of
// dimensions it was written with.
func (s *textScanner) box() (Box, int, error) {
	var b Box
	if err := s.expect('('); err != nil {
		return b, 0, err
	}
	lo, err := s.tuple()
	if err != nil {
		return b, 0, err
	}
	hi, err := s.tuple()
	if err != nil {
		return b, 0, err
	}
	if len(lo) != len(hi) {
		return b, 0, fmt.Errorf("corners have %d and %d components", len(lo), len(hi))
	}
	if b.Lo, err = padVect(lo); err != nil {
		return b, 0, err
	}
	if b.Hi, err = padVect(hi); err != nil {
		return b, 0, err
	}
	s.skipSpace()
	if c, ok := s.peek(); ok && c == '(' {
		typ, err := s.tuple()
		if err != nil {
			return b, 0, err
		}
		tv, err := padVect(typ)
		if err != nil {
			return b, 0, err
		}
		b.Type = IndexTypeFromVect(tv)
	}
	if err := s.expect(')'); err != nil {
		return b, 0, err
	}
	return b, len(lo), nil
}

func (s *textScanner) boxArray(legacy bool) (BoxList, int, error) {
	if !legacy {
		if err := s.expect('('); err != nil {
			return nil, 0, err
		}
	}
	n, err := s.int()
	if err != nil {
		return nil, 0, err
	}
	if n < 0 {
		return nil, 0, fmt.Errorf("negative box count %d", n)
	}
	if !legacy {
		// Hash signature; always zero.
		if _, err := s.int(); err != nil {
			return nil, 0, err
		}
	}
	ndims := SpaceDim
	bl := make(BoxList, 0, min(n, 1<<12))
	for i := 0; i < n; i++ {
		b, nd, err := s.box()
		if err != nil {
			return nil, 0, fmt.Errorf("box %d: %v", i, err)
		}
		if i == 0 {
			ndims = nd
		}
		bl = append(bl, b)
	}
	if !legacy {
		if err := s.expect(')'); err != nil {
			return nil, 0, err
		}
	}
	return bl, ndims, nil
}
