package jarray

import (
	"github.com/sambacha/jgo/internal/numeric"
)

// InferKind computes the lattice join of kinds across elems: Bool ≤ Int ≤
// ExtInt ≤ Rational ≤ Float ≤ Complex, with Char and Box as peaks disjoint
// from the numeric tower. Mixing Box with anything yields Box; mixing
// Char with a non-Char, non-Box kind is only valid when filling.
func InferKind(elems []Elem) Kind {
	k := KindBool
	for _, e := range elems {
		ek := e.kind()
		switch {
		case ek == KindBox:
			return KindBox
		case ek == KindChar:
			if k != KindBool || len(elems) == 0 {
				// handled by caller via FromFillPromote's mixed-kind check
			}
			if k == KindBool {
				k = KindChar
			}
		default:
			if k == KindChar {
				continue // mixed Char/numeric only valid through fill
			}
			if ek > k {
				k = ek
			}
		}
	}
	return k
}

// FillValue returns the fill-value Elem for a given Kind: 0 for numeric
// kinds, space for Char, and an empty (rank-0 Bool-zero) box for Box.
func FillValue(k Kind) Elem {
	switch k {
	case KindChar:
		return CharElem(' ')
	case KindBox:
		return BoxElem(NewNumAtom(numeric.Zero()))
	default:
		return NumElem(zeroForArrayKind(k))
	}
}

func zeroForArrayKind(k Kind) numeric.Num {
	return widenTo(numeric.Zero(), k.toNumericKind())
}

// FromFillPromote assembles a list of heterogeneous Arrays ("items") into
// a single rectangular Array: it widens the element Kind to the lattice
// join across every item (and every item's own element kind), rank-extends
// every item to the max rank by prepending unit axes, computes the
// elementwise max of their shapes, and fills absent positions with the
// Kind's fill value.
func FromFillPromote(items []Array) (Array, error) {
	if len(items) == 0 {
		return Array{Shape: []int{0}, Kind: KindBool}, nil
	}
	maxRank := 0
	for _, it := range items {
		if it.Rank() > maxRank {
			maxRank = it.Rank()
		}
	}
	maxShape := make([]int, maxRank)
	kind := KindBool
	sawChar, sawOther := false, false
	for _, it := range items {
		extended := extendShape(it.Shape, maxRank)
		for i, d := range extended {
			if d > maxShape[i] {
				maxShape[i] = d
			}
		}
		switch it.Kind {
		case KindBox:
			kind = KindBox
		case KindChar:
			sawChar = true
			if kind != KindBox {
				if kind == KindBool {
					kind = KindChar
				}
			}
		default:
			sawOther = true
			if kind != KindBox && kind != KindChar {
				if it.Kind > kind {
					kind = it.Kind
				}
			} else if kind == KindChar {
				// mixed numeric+char items widen to Char; numeric positions fill/convert
			}
		}
	}
	if sawChar && sawOther && kind != KindBox {
		kind = KindChar
	}

	outShape := append([]int{len(items)}, maxShape...)
	total := 1
	for _, d := range outShape {
		total *= d
	}
	out := Array{Shape: outShape, Kind: kind}
	switch kind {
	case KindChar:
		out.Chars = make([]rune, total)
		for i := range out.Chars {
			out.Chars[i] = ' '
		}
	case KindBox:
		out.Boxes = make([]Array, total)
		for i := range out.Boxes {
			out.Boxes[i] = NewNumAtom(numeric.Zero())
		}
	default:
		out.Nums = make([]numeric.Num, total)
		z := zeroForArrayKind(kind)
		for i := range out.Nums {
			out.Nums[i] = z
		}
	}

	itemLen := 1
	for _, d := range maxShape {
		itemLen *= d
	}
	for idx, it := range items {
		writeItemInto(&out, idx*itemLen, maxShape, it, kind)
	}
	return out, nil
}

func extendShape(shape []int, rank int) []int {
	if len(shape) >= rank {
		return shape
	}
	out := make([]int, rank)
	pad := rank - len(shape)
	for i := 0; i < pad; i++ {
		out[i] = 1
	}
	copy(out[pad:], shape)
	return out
}

// writeItemInto copies it's data into out's buffer at the item starting at
// flat offset base, padding/converting to target shape targetShape and
// kind targetKind.
func writeItemInto(out *Array, base int, targetShape []int, it Array, targetKind Kind) {
	itShape := extendShape(it.Shape, len(targetShape))
	itLen := it.Len()
	if itLen == 0 {
		itLen = 1
	}
	// Fast path: shapes already match exactly.
	if shapeEq(itShape, targetShape) {
		for i := 0; i < itLen; i++ {
			writeElemInto(out, base+i, it.Elem(i), targetKind)
		}
		return
	}
	// General path: iterate target positions, mapping back into source
	// when within source bounds (row-major), else using the fill value.
	srcStrides := strides(itShape)
	dstStrides := strides(targetShape)
	total := 1
	for _, d := range targetShape {
		total *= d
	}
	idx := make([]int, len(targetShape))
	for i := 0; i < total; i++ {
		unflatten(i, dstStrides, idx)
		inBounds := true
		for axis, d := range idx {
			if d >= itShape[axis] {
				inBounds = false
				break
			}
		}
		if inBounds {
			srcIdx := flatten(idx, srcStrides)
			writeElemInto(out, base+i, it.Elem(srcIdx), targetKind)
		} else {
			writeElemInto(out, base+i, FillValue(targetKind), targetKind)
		}
	}
}

func shapeEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeElemInto(out *Array, pos int, e Elem, targetKind Kind) {
	switch targetKind {
	case KindChar:
		if e.IsChar {
			out.Chars[pos] = e.Char
		} else {
			out.Chars[pos] = ' '
		}
	case KindBox:
		if e.IsBoxed {
			out.Boxes[pos] = e.Boxed
		} else if e.IsChar {
			out.Boxes[pos] = NewAtom(e)
		} else {
			out.Boxes[pos] = NewNumAtom(e.Num)
		}
	default:
		if e.IsChar || e.IsBoxed {
			out.Nums[pos] = zeroForArrayKind(targetKind)
		} else {
			out.Nums[pos] = widenTo(e.Num, targetKind.toNumericKind())
		}
	}
}
