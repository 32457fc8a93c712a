package modifiers

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/rank"
	"github.com/sambacha/jgo/internal/token"
)

func adverbs() []*token.Modifier {
	return []*token.Modifier{
		{Kind: token.KindAdverb, Name: "/", FormAdverb: formInsert},
		{Kind: token.KindAdverb, Name: "\\", FormAdverb: formPrefix},
		{Kind: token.KindAdverb, Name: "~", FormAdverb: formReflexive},
		{Kind: token.KindAdverb, Name: "/.", FormAdverb: formKey},
	}
}

// formInsert builds the Insert/Table adverb u/: monadic fold of u across
// y's items (right to left), dyadic outer table of u over x's and y's
// items.
func formInsert(u token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("/: operand must be a verb")
	}
	v := u.Verb
	return derived(v.Name+"/", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			items := y.OuterIter()
			if len(items) == 0 {
				return jarray.Array{}, jerr.Domain("%s/: insert over an empty list has no identity", v.Name)
			}
			acc := items[len(items)-1]
			for i := len(items) - 2; i >= 0; i-- {
				r, err := rank.ApplyDyad(v, items[i], acc)
				if err != nil {
					return jarray.Array{}, err
				}
				acc = r
			}
			return acc, nil
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			xi, yi := x.OuterIter(), y.OuterIter()
			rows := make([]jarray.Array, len(xi))
			for i, xv := range xi {
				cols := make([]jarray.Array, len(yi))
				for j, yv := range yi {
					r, err := rank.ApplyDyad(v, xv, yv)
					if err != nil {
						return jarray.Array{}, err
					}
					cols[j] = r
				}
				row, err := jarray.FromFillPromote(cols)
				if err != nil {
					return jarray.Array{}, err
				}
				rows[i] = row
			}
			return jarray.FromFillPromote(rows)
		}), nil
}

// formPrefix builds the Prefix/Infix adverb u\: monadic application of u to
// every prefix of y (length 1..#y), dyadic application of u to every
// contiguous infix of y of length x.
func formPrefix(u token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("\\: operand must be a verb")
	}
	v := u.Verb
	return derived(v.Name+"\\", token.Ranks{Monad: token.Infinite, Left: 0, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			items := y.OuterIter()
			results := make([]jarray.Array, len(items))
			for i := range items {
				prefix, err := jarray.FromFillPromote(items[:i+1])
				if err != nil {
					return jarray.Array{}, err
				}
				r, err := rank.ApplyMonad(v, prefix)
				if err != nil {
					return jarray.Array{}, err
				}
				results[i] = r
			}
			return jarray.FromFillPromote(results)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			if x.Kind == jarray.KindChar || x.Kind == jarray.KindBox || len(x.Nums) == 0 {
				return jarray.Array{}, jerr.Domain("\\: infix width must be a positive integer")
			}
			n, ok := x.Nums[0].AsLen()
			if !ok || n <= 0 {
				return jarray.Array{}, jerr.Domain("\\: infix width must be a positive integer")
			}
			items := y.OuterIter()
			if n > len(items) {
				return jarray.Array{Shape: []int{0}, Kind: y.Kind}, nil
			}
			count := len(items) - n + 1
			results := make([]jarray.Array, count)
			for i := 0; i < count; i++ {
				window, err := jarray.FromFillPromote(items[i : i+n])
				if err != nil {
					return jarray.Array{}, err
				}
				r, err := rank.ApplyMonad(v, window)
				if err != nil {
					return jarray.Array{}, err
				}
				results[i] = r
			}
			return jarray.FromFillPromote(results)
		}), nil
}

// formReflexive builds the Reflexive/Passive adverb u~: monadic y applies
// u to (y,y); dyadic x,y applies u to the swapped pair (y,x).
func formReflexive(u token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("~: operand must be a verb")
	}
	v := u.Verb
	return derived(v.Name+"~", v.Ranks,
		func(y jarray.Array) (jarray.Array, error) { return rank.ApplyDyad(v, y, y) },
		func(x, y jarray.Array) (jarray.Array, error) { return rank.ApplyDyad(v, y, x) }), nil
}

// formKey builds the Key adverb u/.: dyadic x u/. y groups y's items by
// equal corresponding items of x (first occurrence order) and applies u
// monadically to each group.
func formKey(u token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("/.: operand must be a verb")
	}
	v := u.Verb
	return derived(v.Name+"/.", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		nil,
		func(x, y jarray.Array) (jarray.Array, error) {
			keys := x.OuterIter()
			items := y.OuterIter()
			if len(keys) != len(items) {
				return jarray.Array{}, jerr.Length("/.: key tally %d != item tally %d", len(keys), len(items))
			}
			var distinct []jarray.Array
			var groups [][]jarray.Array
			for i, k := range keys {
				idx := -1
				for j, d := range distinct {
					if deepEq(d, k) {
						idx = j
						break
					}
				}
				if idx == -1 {
					distinct = append(distinct, k)
					groups = append(groups, nil)
					idx = len(distinct) - 1
				}
				groups[idx] = append(groups[idx], items[i])
			}
			results := make([]jarray.Array, len(groups))
			for i, g := range groups {
				arr, err := jarray.FromFillPromote(g)
				if err != nil {
					return jarray.Array{}, err
				}
				r, err := rank.ApplyMonad(v, arr)
				if err != nil {
					return jarray.Array{}, err
				}
				results[i] = r
			}
			return jarray.FromFillPromote(results)
		}), nil
}

func deepEq(a, b jarray.Array) bool {
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
			if !deepEq(ea.Boxed, eb.Boxed) {
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
