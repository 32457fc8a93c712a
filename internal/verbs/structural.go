package verbs

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

func structuralVerbs() []*token.Verb {
	comma := prim(",", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			return jarray.Reshape([]int{y.Len()}, y)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			xi, yi := x.OuterIter(), y.OuterIter()
			return jarray.FromFillPromote(append(append([]jarray.Array{}, xi...), yi...))
		})

	semi := prim(";", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return raze(y) },
		func(x, y jarray.Array) (jarray.Array, error) {
			return jarray.FromFillPromote([]jarray.Array{jarray.NewBox(x), jarray.NewBox(y)})
		})

	head := prim("{.", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			if y.Tally() == 0 {
				return jarray.NewAtom(jarray.FillValue(y.Kind)), nil
			}
			return y.Cell(y.Rank()-1, 0), nil
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			n, err := intOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			return take(n, y)
		})

	behead := prim("}.", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return dropN(1, y) },
		func(x, y jarray.Array) (jarray.Array, error) {
			n, err := intOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			return dropN(n, y)
		})

	reverse := prim("|.", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return reverseItems(y), nil },
		func(x, y jarray.Array) (jarray.Array, error) {
			n, err := intOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			return rotate(n, y), nil
		})

	transp := prim("|:", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return jarray.Transpose(y), nil },
		func(x, y jarray.Array) (jarray.Array, error) {
			// Dyadic transpose with a full axis permutation: x must
			// name one axis of y per entry, else a LengthError.
			perm, err := intsOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			if len(perm) != y.Rank() {
				return jarray.Array{}, jerr.Length("|: dyad: permutation length %d != rank %d", len(perm), y.Rank())
			}
			return permuteAxes(y, perm)
		})

	return []*token.Verb{comma, semi, head, behead, reverse, transp}
}

func raze(y jarray.Array) (jarray.Array, error) {
	if y.Kind != jarray.KindBox {
		return y, nil
	}
	return jarray.FromFillPromote(y.Boxes)
}

func intOf(a jarray.Array) (int, error) {
	if !a.IsAtom() && a.Len() != 1 {
		return 0, jerr.Domain("expected a single integer, got shape %v", a.Shape)
	}
	v, ok := a.Nums[0].AsInt64()
	if !ok {
		return 0, jerr.Domain("expected an integer")
	}
	return int(v), nil
}

func take(n int, y jarray.Array) (jarray.Array, error) {
	items := y.OuterIter()
	count := n
	if count < 0 {
		count = -count
	}
	out := make([]jarray.Array, count)
	fill := jarray.NewAtom(jarray.FillValue(y.Kind))
	if n >= 0 {
		for i := 0; i < count; i++ {
			if i < len(items) {
				out[i] = items[i]
			} else {
				out[i] = fill
			}
		}
	} else {
		start := len(items) - count
		for i := 0; i < count; i++ {
			srcIdx := start + i
			if srcIdx >= 0 && srcIdx < len(items) {
				out[i] = items[srcIdx]
			} else {
				out[i] = fill
			}
		}
	}
	if len(out) == 0 {
		return jarray.Array{Shape: append([]int{0}, y.Shape[1:]...), Kind: y.Kind}, nil
	}
	return jarray.FromFillPromote(out)
}

func dropN(n int, y jarray.Array) (jarray.Array, error) {
	items := y.OuterIter()
	var kept []jarray.Array
	if n >= 0 {
		if n > len(items) {
			n = len(items)
		}
		kept = items[n:]
	} else {
		k := len(items) + n
		if k < 0 {
			k = 0
		}
		kept = items[:k]
	}
	if len(kept) == 0 {
		return jarray.Array{Shape: append([]int{0}, y.Shape[1:]...), Kind: y.Kind}, nil
	}
	return jarray.FromFillPromote(kept)
}

func reverseItems(y jarray.Array) jarray.Array {
	items := y.OuterIter()
	out := make([]jarray.Array, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	r, _ := jarray.FromFillPromote(out)
	return r
}

func rotate(n int, y jarray.Array) jarray.Array {
	items := y.OuterIter()
	l := len(items)
	if l == 0 {
		return y
	}
	n = ((n % l) + l) % l
	out := make([]jarray.Array, l)
	for i := range items {
		out[i] = items[(i+n)%l]
	}
	r, _ := jarray.FromFillPromote(out)
	return r
}

func permuteAxes(y jarray.Array, perm []int) (jarray.Array, error) {
	r := y.Rank()
	newShape := make([]int, r)
	for axis, p := range perm {
		if p < 0 || p >= r {
			return jarray.Array{}, jerr.Domain("|: dyad: axis %d out of range", p)
		}
		newShape[p] = y.Shape[axis]
	}
	// General permutation via explicit index remap.
	total := y.Len()
	out := jarray.Array{Shape: newShape, Kind: y.Kind}
	switch y.Kind {
	case jarray.KindChar:
		out.Chars = make([]rune, total)
	case jarray.KindBox:
		out.Boxes = make([]jarray.Array, total)
	default:
		out.Nums = make([]numeric.Num, total)
	}
	oldStrides := stridesOf(y.Shape)
	newStrides := stridesOf(newShape)
	idx := make([]int, r)
	for i := 0; i < total; i++ {
		unflattenInto(i, oldStrides, idx)
		newIdx := make([]int, r)
		for axis, p := range perm {
			newIdx[p] = idx[axis]
		}
		j := 0
		for axis, s := range newStrides {
			j += newIdx[axis] * s
		}
		switch y.Kind {
		case jarray.KindChar:
			out.Chars[j] = y.Chars[i]
		case jarray.KindBox:
			out.Boxes[j] = y.Boxes[i]
		default:
			out.Nums[j] = y.Nums[i]
		}
	}
	return out, nil
}

func stridesOf(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func unflattenInto(i int, strides []int, out []int) {
	for axis, s := range strides {
		out[axis] = i / s
		i %= s
	}
}
