package verbs

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/token"
)

func shapeVerbs() []*token.Verb {
	dollar := prim("$", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return y.ShapeArray(), nil },
		func(x, y jarray.Array) (jarray.Array, error) {
			shape, err := intsOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			return jarray.Reshape(shape, y)
		})

	hash := prim("#", token.Ranks{Monad: token.Infinite, Left: 1, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) { return jarray.NewIntAtom(int64(y.Tally())), nil },
		func(x, y jarray.Array) (jarray.Array, error) {
			counts, err := intsOf(x)
			if err != nil {
				return jarray.Array{}, err
			}
			items := y.OuterIter()
			if len(counts) == 1 && len(items) > 1 {
				c := counts[0]
				wide := make([]int, len(items))
				for i := range wide {
					wide[i] = c
				}
				counts = wide
			}
			if len(counts) != len(items) {
				return jarray.Array{}, jerr.Length("#: %d counts for %d items", len(counts), len(items))
			}
			var out []jarray.Array
			for i, c := range counts {
				if c < 0 {
					return jarray.Array{}, jerr.Domain("#: negative copy count %d", c)
				}
				for k := 0; k < c; k++ {
					out = append(out, items[i])
				}
			}
			if len(out) == 0 {
				return jarray.Array{Shape: []int{0}, Kind: y.Kind}, nil
			}
			return jarray.FromFillPromote(out)
		})

	return []*token.Verb{dollar, hash}
}

// intsOf reads a numeric array as a plain []int, used by every primitive
// taking an integer-list argument ($  reshape target, #  copy counts,
// {  indices, |: axis permutation, i. shape).
func intsOf(a jarray.Array) ([]int, error) {
	if a.Kind == jarray.KindChar || a.Kind == jarray.KindBox {
		return nil, jerr.Domain("expected a numeric integer list")
	}
	n := a.Len()
	if n == 0 {
		n = 1
	}
	out := make([]int, 0, n)
	if a.IsAtom() {
		v, ok := a.Nums[0].AsInt64()
		if !ok {
			return nil, jerr.Domain("expected an integer")
		}
		return []int{int(v)}, nil
	}
	for _, num := range a.Nums {
		v, ok := num.AsInt64()
		if !ok {
			return nil, jerr.Domain("expected integers")
		}
		out = append(out, int(v))
	}
	return out, nil
}
