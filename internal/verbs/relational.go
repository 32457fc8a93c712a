package verbs

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

func boolAtom(b bool) jarray.Array { return jarray.NewNumAtom(numeric.FromBool(b)) }

func cmpVerb(name string, cmp func(int) bool) *token.Verb {
	return prim(name, token.Ranks{Monad: 0, Left: 0, Right: 0},
		nil, // monad filled per-primitive below where it differs
		func(x, y jarray.Array) (jarray.Array, error) {
			xn, err := atomNum(x)
			if err != nil {
				return jarray.Array{}, err
			}
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			c, err := numeric.Cmp(xn, yn)
			if err != nil {
				return jarray.Array{}, err
			}
			return boolAtom(cmp(c)), nil
		})
}

func relationalVerbs() []*token.Verb {
	lt := cmpVerb("<", func(c int) bool { return c < 0 })
	lt.Ranks.Monad = token.Infinite
	lt.Monad = func(y jarray.Array) (jarray.Array, error) { return jarray.NewBox(y), nil }

	gt := cmpVerb(">", func(c int) bool { return c > 0 })
	gt.Monad = func(y jarray.Array) (jarray.Array, error) {
		if y.Kind != jarray.KindBox {
			return jarray.Array{}, jerr.Domain("open (>): argument is not boxed")
		}
		if len(y.Boxes) != 1 {
			return jarray.Array{}, jerr.Domain("open (>): expected a single boxed atom")
		}
		return y.Boxes[0], nil
	}

	eq := cmpVerb("=", func(c int) bool { return c == 0 })
	eq.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
		return boolAtom(elemEq(x, y)), nil
	}
	eq.Monad = selfClassify

	ne := prim("~:", token.Ranks{Monad: token.Infinite, Left: 0, Right: 0}, nubSieve,
		func(x, y jarray.Array) (jarray.Array, error) {
			return boolAtom(!elemEq(x, y)), nil
		})

	le := cmpVerb("<:", func(c int) bool { return c <= 0 })
	le.Monad = func(y jarray.Array) (jarray.Array, error) {
		yn, err := atomNum(y)
		if err != nil {
			return jarray.Array{}, err
		}
		return jarray.NewNumAtom(numeric.Sub(yn, numeric.One())), nil
	}
	ge := cmpVerb(">:", func(c int) bool { return c >= 0 })
	ge.Monad = func(y jarray.Array) (jarray.Array, error) {
		yn, err := atomNum(y)
		if err != nil {
			return jarray.Array{}, err
		}
		return jarray.NewNumAtom(numeric.Add(yn, numeric.One())), nil
	}

	return []*token.Verb{lt, gt, eq, ne, le, ge}
}

func elemEq(x, y jarray.Array) bool {
	if x.Kind != y.Kind {
		if x.Kind == jarray.KindBox || y.Kind == jarray.KindBox {
			return false
		}
	}
	switch x.Kind {
	case jarray.KindChar:
		return y.Kind == jarray.KindChar && len(x.Chars) == len(y.Chars) && x.Chars[0] == y.Chars[0]
	case jarray.KindBox:
		return false
	default:
		yn, err := atomNum(y)
		if err != nil {
			return false
		}
		xn, _ := atomNum(x)
		return numeric.Eq(xn, yn)
	}
}

// selfClassify implements monadic `=`: the "nub classification" — for each
// item of y, the index into the list of distinct items seen so far.
func selfClassify(y jarray.Array) (jarray.Array, error) {
	items := y.OuterIter()
	seen := []jarray.Array{}
	classes := make([]int, len(items))
	for i, it := range items {
		idx := -1
		for j, s := range seen {
			if arrayEq(s, it) {
				idx = j
				break
			}
		}
		if idx == -1 {
			idx = len(seen)
			seen = append(seen, it)
		}
		classes[i] = idx
	}
	return jarray.NewIntVector(classes), nil
}

// nubSieve implements monadic `~:`: a boolean mask marking, for each item,
// whether it is the first occurrence of its value.
func nubSieve(y jarray.Array) (jarray.Array, error) {
	items := y.OuterIter()
	seen := []jarray.Array{}
	mask := make([]numeric.Num, len(items))
	for i, it := range items {
		isNew := true
		for _, s := range seen {
			if arrayEq(s, it) {
				isNew = false
				break
			}
		}
		mask[i] = numeric.FromBool(isNew)
		if isNew {
			seen = append(seen, it)
		}
	}
	return jarray.Array{Shape: []int{len(items)}, Kind: jarray.KindBool, Nums: mask}, nil
}

func arrayEq(a, b jarray.Array) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		ea, eb := a.Elem(i), b.Elem(i)
		if ea.IsChar != eb.IsChar || ea.IsBoxed != eb.IsBoxed {
			return false
		}
		switch {
		case ea.IsBoxed:
			if !arrayEq(ea.Boxed, eb.Boxed) {
				return false
			}
		case ea.IsChar:
			if ea.Char != eb.Char {
				return false
			}
		default:
			if !numeric.Eq(ea.Num, eb.Num) {
				return false
			}
		}
	}
	return true
}
