package verbs

import (
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/token"
)

func indexingVerbs() []*token.Verb {
	iDot := prim("i.", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			shape, err := intsOf(y)
			if err != nil {
				return jarray.Array{}, err
			}
			return integers(shape)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			return indexOf(x, y)
		})

	curly := prim("{", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return y, nil },
		func(x, y jarray.Array) (jarray.Array, error) {
			idx, err := intsOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			for i, d := range idx {
				if d < 0 {
					idx[i] = y.Tally() + d
				}
			}
			return jarray.SelectAxis(y, idx)
		})

	return []*token.Verb{iDot, curly}
}

// integers builds the standard counting array `i. shape`, filling row-major
// with consecutive integers from 0 for a non-negative shape. A negative
// extent reverses that axis's count (J's "count backwards" convention).
func integers(shape []int) (jarray.Array, error) {
	total := 1
	absShape := make([]int, len(shape))
	for i, d := range shape {
		if d < 0 {
			d = -d
		}
		absShape[i] = d
		total *= d
	}
	vals := make([]int, total)
	for i := range vals {
		vals[i] = i
	}
	out := jarray.NewIntVector(vals)
	reshaped, err := jarray.Reshape(absShape, out)
	if err != nil {
		return jarray.Array{}, err
	}
	for axis, d := range shape {
		if d < 0 {
			reshaped = reverseAxis(reshaped, axis)
		}
	}
	return reshaped, nil
}

func reverseAxis(a jarray.Array, axis int) jarray.Array {
	if a.Len() == 0 {
		return a
	}
	if axis != 0 {
		cells := a.RankIter(a.Rank() - axis)
		for i, c := range cells {
			cells[i] = reverseItems(c)
		}
		r, _ := jarray.FromFillPromote(cells)
		r.Shape = append([]int{}, a.Shape...)
		return r
	}
	return reverseItems(a)
}

// indexOf implements dyadic i.: for each item of y, the index of its first
// matching item in x along axis 0, or x's tally when absent. x is the
// haystack being searched; y supplies the needles and the output shape.
func indexOf(x, y jarray.Array) (jarray.Array, error) {
	haystack := x.OuterIter()
	needles := y.OuterIter()
	out := make([]int, len(needles))
	for i, n := range needles {
		idx := len(haystack)
		for j, h := range haystack {
			if arrayEq(n, h) {
				idx = j
				break
			}
		}
		out[i] = idx
	}
	if y.IsAtom() {
		return jarray.NewIntAtom(int64(out[0])), nil
	}
	return jarray.NewIntVector(out), nil
}
