package jarray

import (
	"github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/numeric"
)

// Reshape returns an array with the given shape, cycling a's ravel when
// the new size exceeds the old, and truncating when it is smaller.
// Negative dimensions fail with DomainError.
func Reshape(shape []int, a Array) (Array, error) {
	for _, d := range shape {
		if d < 0 {
			return Array{}, jerr.Domain("reshape: negative dimension %d", d)
		}
	}
	total := 1
	for _, d := range shape {
		total *= d
	}
	out := Array{Shape: append([]int{}, shape...), Kind: a.Kind}
	src := a.Len()
	if src == 0 {
		src = 1 // atoms act as a length-1 source for cycling purposes
	}
	switch a.Kind {
	case KindChar:
		out.Chars = make([]rune, total)
		for i := 0; i < total; i++ {
			out.Chars[i] = a.Chars[i%len(a.Chars)]
		}
	case KindBox:
		out.Boxes = make([]Array, total)
		for i := 0; i < total; i++ {
			out.Boxes[i] = a.Boxes[i%len(a.Boxes)]
		}
	default:
		out.Nums = make([]numeric.Num, total)
		for i := 0; i < total; i++ {
			out.Nums[i] = a.Nums[i%len(a.Nums)]
		}
	}
	return out, nil
}

// ToShape is a cheap reinterpretation of a's data under a new shape when
// the element count is unchanged (no cycling/truncation); it falls back to
// Reshape otherwise.
func ToShape(shape []int, a Array) (Array, error) {
	total := 1
	for _, d := range shape {
		total *= d
	}
	if total == a.Len() {
		out := a
		out.Shape = append([]int{}, shape...)
		return out, nil
	}
	return Reshape(shape, a)
}

// cellShape returns the trailing rank axes of shape, clamped so a rank
// greater than len(shape) yields the whole shape (rank clamps to the
// whole argument, per the agreement edge rules).
func cellShape(shape []int, rank int) []int {
	if rank >= len(shape) {
		return append([]int{}, shape...)
	}
	if rank < 0 {
		rank = 0
	}
	return append([]int{}, shape[len(shape)-rank:]...)
}

// FrameOf returns the leading axes of shape not consumed by a verb of the
// given rank (the "frame"), clamping rank per the agreement edge rules.
func FrameOf(shape []int, rank int) []int {
	if rank >= len(shape) {
		return nil
	}
	if rank < 0 {
		rank = 0
	}
	return append([]int{}, shape[:len(shape)-rank]...)
}

// Cell returns the cell at row-major position idx among cells of the
// given rank (i.e. the idx-th element along the leading frame axes).
func (a Array) Cell(rank, idx int) Array {
	cs := cellShape(a.Shape, rank)
	cellLen := 1
	for _, d := range cs {
		cellLen *= d
	}
	if cellLen == 0 {
		cellLen = 1
	}
	start := idx * cellLen
	out := Array{Shape: cs, Kind: a.Kind}
	switch a.Kind {
	case KindChar:
		out.Chars = append([]rune{}, a.Chars[start:start+cellLen]...)
	case KindBox:
		out.Boxes = append([]Array{}, a.Boxes[start:start+cellLen]...)
	default:
		out.Nums = append([]numeric.Num{}, a.Nums[start:start+cellLen]...)
	}
	return out
}

// NumCells returns how many cells of the given rank a's frame contains.
func (a Array) NumCells(rank int) int {
	frame := FrameOf(a.Shape, rank)
	n := 1
	for _, d := range frame {
		n *= d
	}
	return n
}

// RankIter yields every cell of the given rank in row-major order over
// the leading frame axes.
func (a Array) RankIter(rank int) []Array {
	n := a.NumCells(rank)
	out := make([]Array, n)
	for i := 0; i < n; i++ {
		out[i] = a.Cell(rank, i)
	}
	return out
}

// OuterIter yields items along axis 0 (cells of rank Rank()-1).
func (a Array) OuterIter() []Array {
	if a.IsAtom() {
		return []Array{a}
	}
	return a.RankIter(a.Rank() - 1)
}

// Transpose reverses the order of all axes (monadic |:).
func Transpose(a Array) Array {
	r := a.Rank()
	if r <= 1 {
		return a
	}
	newShape := make([]int, r)
	for i, d := range a.Shape {
		newShape[r-1-i] = d
	}
	out := Array{Shape: newShape, Kind: a.Kind}
	total := a.Len()
	oldStrides := strides(a.Shape)
	newStrides := strides(newShape)
	perm := make([]int, r)
	for i := range perm {
		perm[i] = r - 1 - i
	}
	switch a.Kind {
	case KindChar:
		out.Chars = make([]rune, total)
	case KindBox:
		out.Boxes = make([]Array, total)
	default:
		out.Nums = make([]numeric.Num, total)
	}
	idx := make([]int, r)
	for i := 0; i < total; i++ {
		unflatten(i, oldStrides, idx)
		newIdx := make([]int, r)
		for axis, d := range idx {
			newIdx[perm[axis]] = d
		}
		j := flatten(newIdx, newStrides)
		switch a.Kind {
		case KindChar:
			out.Chars[j] = a.Chars[i]
		case KindBox:
			out.Boxes[j] = a.Boxes[i]
		default:
			out.Nums[j] = a.Nums[i]
		}
	}
	return out
}

func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func unflatten(i int, strides []int, out []int) {
	for axis, s := range strides {
		out[axis] = i / s
		i %= s
	}
}

func flatten(idx []int, strides []int) int {
	n := 0
	for axis, s := range strides {
		n += idx[axis] * s
	}
	return n
}

// SelectAxis returns a new array keeping only the given indices along the
// leading axis (axis 0); this is the engine behind `{`.
func SelectAxis(a Array, indices []int) (Array, error) {
	if a.IsAtom() {
		return Array{}, jerr.Rank("select: cannot select from an atom")
	}
	cellLen := 1
	for _, d := range a.Shape[1:] {
		cellLen *= d
	}
	out := Array{Shape: append([]int{len(indices)}, a.Shape[1:]...), Kind: a.Kind}
	switch a.Kind {
	case KindChar:
		out.Chars = make([]rune, len(indices)*cellLen)
	case KindBox:
		out.Boxes = make([]Array, len(indices)*cellLen)
	default:
		out.Nums = make([]numeric.Num, len(indices)*cellLen)
	}
	for outI, srcI := range indices {
		if srcI < 0 || srcI >= a.Tally() {
			return Array{}, jerr.Index("index %d out of bounds for tally %d", srcI, a.Tally())
		}
		switch a.Kind {
		case KindChar:
			copy(out.Chars[outI*cellLen:(outI+1)*cellLen], a.Chars[srcI*cellLen:(srcI+1)*cellLen])
		case KindBox:
			copy(out.Boxes[outI*cellLen:(outI+1)*cellLen], a.Boxes[srcI*cellLen:(srcI+1)*cellLen])
		default:
			copy(out.Nums[outI*cellLen:(outI+1)*cellLen], a.Nums[srcI*cellLen:(srcI+1)*cellLen])
		}
	}
	return out, nil
}
