// Package jarray implements the polymorphic n-dimensional array model
// ("noun") that every value in the interpreter is built from: a tagged
// array over one of eight element kinds, with shape, reshape, cell
// iteration, kind inference and fill-promotion.
package jarray

import (
	"fmt"
	"math/big"

	"github.com/sambacha/jgo/internal/numeric"
)

// Kind identifies the element representation of an Array. The numeric
// kinds mirror numeric.Kind; Char and Box are peaks disjoint from the
// numeric tower.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindExtInt
	KindRational
	KindFloat
	KindComplex
	KindChar
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindExtInt:
		return "ExtInt"
	case KindRational:
		return "Rational"
	case KindFloat:
		return "Float"
	case KindComplex:
		return "Complex"
	case KindChar:
		return "Char"
	case KindBox:
		return "Box"
	default:
		return "Unknown"
	}
}

func numKindToArrayKind(k numeric.Kind) Kind {
	switch k {
	case numeric.KindBool:
		return KindBool
	case numeric.KindInt:
		return KindInt
	case numeric.KindExtInt:
		return KindExtInt
	case numeric.KindRational:
		return KindRational
	case numeric.KindFloat:
		return KindFloat
	case numeric.KindComplex:
		return KindComplex
	}
	return KindBool
}

func (k Kind) isNumeric() bool { return k <= KindComplex }

func (k Kind) toNumericKind() numeric.Kind {
	switch k {
	case KindBool:
		return numeric.KindBool
	case KindInt:
		return numeric.KindInt
	case KindExtInt:
		return numeric.KindExtInt
	case KindRational:
		return numeric.KindRational
	case KindFloat:
		return numeric.KindFloat
	case KindComplex:
		return numeric.KindComplex
	}
	panic("jarray: not a numeric kind")
}

// Elem is a single scalar array element: a Num, a Char, or a Boxed
// sub-array. The total order among Elems is Num < Char < Boxed; within
// Num, numeric order.
type Elem struct {
	IsChar  bool
	IsBoxed bool
	Num     numeric.Num
	Char    rune
	Boxed   Array
}

// NumElem wraps a Num as an Elem.
func NumElem(n numeric.Num) Elem { return Elem{Num: n} }

// CharElem wraps a rune as a Char Elem.
func CharElem(r rune) Elem { return Elem{IsChar: true, Char: r} }

// BoxElem wraps an Array as a Boxed Elem.
func BoxElem(a Array) Elem { return Elem{IsBoxed: true, Boxed: a} }

func (e Elem) kind() Kind {
	switch {
	case e.IsBoxed:
		return KindBox
	case e.IsChar:
		return KindChar
	default:
		return numKindToArrayKind(e.Num.Kind)
	}
}

// Array is an immutable, tagged, n-dimensional rectangular array ("noun").
// Shape holds the extent of every axis; Kind is the minimal element kind
// that can hold every element losslessly. The element slice holds exactly Len() items
// in row-major order, interpreted according to Kind:
//   - numeric kinds: as numeric.Num via Nums
//   - KindChar: as rune via Chars
//   - KindBox: as Array via Boxes
//
// Exactly one of Nums/Chars/Boxes is populated, selected by Kind.
type Array struct {
	Shape []int
	Kind  Kind
	Nums  []numeric.Num
	Chars []rune
	Boxes []Array
}

// Rank returns the number of axes (|Shape|).
func (a Array) Rank() int { return len(a.Shape) }

// Tally returns the length of the leading axis (d0), or 1 for a rank-0
// atom.
func (a Array) Tally() int {
	if len(a.Shape) == 0 {
		return 1
	}
	return a.Shape[0]
}

// Len returns the total element count, the product of all axes (1 for an
// atom).
func (a Array) Len() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// IsAtom reports whether a has rank 0.
func (a Array) IsAtom() bool { return len(a.Shape) == 0 }

// Elem returns the i-th element (row-major) as an Elem.
func (a Array) Elem(i int) Elem {
	switch a.Kind {
	case KindChar:
		return CharElem(a.Chars[i])
	case KindBox:
		return BoxElem(a.Boxes[i])
	default:
		return NumElem(a.Nums[i])
	}
}

// NewAtom builds a rank-0 array from a single Elem.
func NewAtom(e Elem) Array {
	a := Array{Shape: nil, Kind: e.kind()}
	switch a.Kind {
	case KindChar:
		a.Chars = []rune{e.Char}
	case KindBox:
		a.Boxes = []Array{e.Boxed}
	default:
		a.Nums = []numeric.Num{e.Num}
	}
	return a
}

// NewNumAtom builds a rank-0 numeric array.
func NewNumAtom(n numeric.Num) Array {
	return Array{Shape: nil, Kind: numKindToArrayKind(n.Kind), Nums: []numeric.Num{n}}
}

// NewIntAtom builds a rank-0 integer array from an int64; 0 and 1 demote
// to Bool, every other value is Int.
func NewIntAtom(v int64) Array { return NewNumAtom(numeric.FromInt(v).Demote()) }

// NewCharVector builds a rank-1 Char array from a Go string.
func NewCharVector(s string) Array {
	rs := []rune(s)
	return Array{Shape: []int{len(rs)}, Kind: KindChar, Chars: rs}
}

// NewBox builds a rank-0 Box array wrapping inner.
func NewBox(inner Array) Array {
	return Array{Shape: nil, Kind: KindBox, Boxes: []Array{inner}}
}

// NewIntVector builds a rank-1 Int array from a slice of ints, demoted to
// the narrowest kind.
func NewIntVector(vs []int) Array {
	nums := make([]numeric.Num, len(vs))
	maxKind := numeric.KindBool
	for i, v := range vs {
		nums[i] = numeric.FromInt(int64(v)).Demote()
		if nums[i].Kind > maxKind {
			maxKind = nums[i].Kind
		}
	}
	return Array{Shape: []int{len(vs)}, Kind: numKindToArrayKind(maxKind), Nums: widenNums(nums, maxKind)}
}

func widenNums(nums []numeric.Num, k numeric.Kind) []numeric.Num {
	out := make([]numeric.Num, len(nums))
	for i, n := range nums {
		out[i] = widenTo(n, k)
	}
	return out
}

func widenTo(n numeric.Num, k numeric.Kind) numeric.Num {
	if n.Kind == k {
		return n
	}
	// promote against a zero of the target kind to force widening
	zero := zeroOfKind(k)
	return numeric.Add(n, zero)
}

func zeroOfKind(k numeric.Kind) numeric.Num {
	switch k {
	case numeric.KindBool:
		return numeric.FromBool(false)
	case numeric.KindInt:
		return numeric.FromInt(0)
	case numeric.KindExtInt:
		return numeric.FromExtInt(big.NewInt(0))
	case numeric.KindRational:
		return numeric.FromRational(big.NewRat(0, 1))
	case numeric.KindFloat:
		return numeric.FromFloat(0)
	case numeric.KindComplex:
		return numeric.FromComplex(0)
	}
	return numeric.FromBool(false)
}

// IntAt returns element i interpreted as an int, used by shape-manipulating
// primitives.
func (a Array) IntAt(i int) (int, bool) {
	if a.Kind == KindChar || a.Kind == KindBox {
		return 0, false
	}
	return a.Nums[i].AsLen()
}

// ShapeArray returns a's Shape as an integer list array (the result of `$`).
func (a Array) ShapeArray() Array {
	return NewIntVector(a.Shape)
}

// String implements a debug string for error messages; display.Render is the
// user-facing renderer.
func (a Array) String() string {
	return fmt.Sprintf("Array{shape=%v kind=%v len=%d}", a.Shape, a.Kind, a.Len())
}
